package repository

import (
	"context"
	"errors"
	"testing"

	"walkin/pkg/model"
)

func TestMemoryAppointmentRepository(t *testing.T) {
	runLedgerContract(t, func(t *testing.T) AppointmentRepository {
		return NewMemoryAppointmentRepository()
	})
}

func TestMemoryAppointmentRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	appt := newAppointment("2025-03-10", "9:00 AM")
	if err := repo.InsertIfAbsent(context.Background(), appt); err != nil {
		t.Fatalf("InsertIfAbsent: %v", err)
	}

	appt.Status = model.StatusCompleted
	got, err := repo.FindByID(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Status != model.StatusConfirmed {
		t.Errorf("caller mutation leaked into the ledger: status = %s", got.Status)
	}
}

func TestMemoryAppointmentRepository_CancelledContext(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.InsertIfAbsent(ctx, newAppointment("2025-03-10", "9:00 AM")); !errors.Is(err, context.Canceled) {
		t.Errorf("InsertIfAbsent error = %v, want context.Canceled", err)
	}
	labels, err := repo.ListBookedLabels(context.Background(), "2025-03-10")
	if err != nil || len(labels) != 0 {
		t.Errorf("ledger changed after cancelled insert: %v, %v", labels, err)
	}
}
