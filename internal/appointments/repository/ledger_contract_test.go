package repository

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	appointmentserrors "walkin/internal/appointments/errors"
	"walkin/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ledgerFactory returns an empty ledger for one subtest.
type ledgerFactory func(t *testing.T) AppointmentRepository

func newAppointment(date, label string) *model.Appointment {
	return &model.Appointment{
		PartyID:     primitive.NewObjectID().Hex(),
		Date:        date,
		TimeLabel:   label,
		IDType:      "Passport",
		IDReference: "P1234567A",
		Status:      model.StatusConfirmed,
	}
}

func runLedgerContract(t *testing.T, newLedger ledgerFactory) {
	ctx := context.Background()

	t.Run("insert assigns identity and timestamps", func(t *testing.T) {
		repo := newLedger(t)
		appt := newAppointment("2025-03-10", "9:00 AM")

		if err := repo.InsertIfAbsent(ctx, appt); err != nil {
			t.Fatalf("InsertIfAbsent: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(appt.ID); err != nil {
			t.Errorf("ID %q is not an ObjectID hex", appt.ID)
		}
		if appt.CreatedAt.IsZero() || !appt.CreatedAt.Equal(appt.UpdatedAt) {
			t.Errorf("timestamps not set: created=%v updated=%v", appt.CreatedAt, appt.UpdatedAt)
		}

		got, err := repo.FindByID(ctx, appt.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got.Date != "2025-03-10" || got.TimeLabel != "9:00 AM" || got.Status != model.StatusConfirmed {
			t.Errorf("FindByID returned %+v", got)
		}
	})

	t.Run("second active insert for the slot is rejected", func(t *testing.T) {
		repo := newLedger(t)
		if err := repo.InsertIfAbsent(ctx, newAppointment("2025-03-10", "10:00 AM")); err != nil {
			t.Fatalf("first insert: %v", err)
		}

		second := newAppointment("2025-03-10", "10:00 AM")
		err := repo.InsertIfAbsent(ctx, second)
		if !errors.Is(err, appointmentserrors.ErrSlotTaken) {
			t.Fatalf("second insert error = %v, want ErrSlotTaken", err)
		}
		if second.ID != "" {
			t.Errorf("rejected appointment got ID %q", second.ID)
		}

		if err := repo.InsertIfAbsent(ctx, newAppointment("2025-03-11", "10:00 AM")); err != nil {
			t.Errorf("same label on another date should be free: %v", err)
		}
		if err := repo.InsertIfAbsent(ctx, newAppointment("2025-03-10", "11:00 AM")); err != nil {
			t.Errorf("another label on the same date should be free: %v", err)
		}
	})

	t.Run("concurrent inserts for one slot admit exactly one", func(t *testing.T) {
		repo := newLedger(t)
		const n = 16

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			ok, lost int
			other    []error
		)
		start := make(chan struct{})
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				err := repo.InsertIfAbsent(ctx, newAppointment("2025-03-10", "1:00 PM"))

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					ok++
				case errors.Is(err, appointmentserrors.ErrSlotTaken):
					lost++
				default:
					other = append(other, err)
				}
			}()
		}
		close(start)
		wg.Wait()

		if len(other) > 0 {
			t.Fatalf("unexpected errors: %v", other)
		}
		if ok != 1 || lost != n-1 {
			t.Errorf("ok=%d lost=%d, want 1 and %d", ok, lost, n-1)
		}

		labels, err := repo.ListBookedLabels(ctx, "2025-03-10")
		if err != nil {
			t.Fatalf("ListBookedLabels: %v", err)
		}
		if !slices.Equal(labels, []string{"1:00 PM"}) {
			t.Errorf("booked labels = %v", labels)
		}
	})

	t.Run("find active ignores inactive appointments", func(t *testing.T) {
		repo := newLedger(t)
		appt := newAppointment("2025-03-10", "2:00 PM")
		if err := repo.InsertIfAbsent(ctx, appt); err != nil {
			t.Fatalf("InsertIfAbsent: %v", err)
		}

		found, err := repo.FindActive(ctx, "2025-03-10", "2:00 PM")
		if err != nil || found.ID != appt.ID {
			t.Fatalf("FindActive = %+v, %v", found, err)
		}

		if _, err := repo.SetStatus(ctx, appt.ID, model.StatusCancelled); err != nil {
			t.Fatalf("SetStatus: %v", err)
		}
		if _, err := repo.FindActive(ctx, "2025-03-10", "2:00 PM"); !errors.Is(err, appointmentserrors.ErrNotFound) {
			t.Errorf("FindActive after cancel error = %v, want ErrNotFound", err)
		}
	})

	t.Run("cancel frees the slot", func(t *testing.T) {
		repo := newLedger(t)
		appt := newAppointment("2025-03-10", "3:00 PM")
		if err := repo.InsertIfAbsent(ctx, appt); err != nil {
			t.Fatalf("InsertIfAbsent: %v", err)
		}

		cancelled, err := repo.SetStatus(ctx, appt.ID, model.StatusCancelled)
		if err != nil {
			t.Fatalf("SetStatus: %v", err)
		}
		if cancelled.Status != model.StatusCancelled {
			t.Errorf("status = %s, want cancelled", cancelled.Status)
		}
		if cancelled.UpdatedAt.Before(cancelled.CreatedAt) {
			t.Errorf("updated_at %v before created_at %v", cancelled.UpdatedAt, cancelled.CreatedAt)
		}

		labels, err := repo.ListBookedLabels(ctx, "2025-03-10")
		if err != nil {
			t.Fatalf("ListBookedLabels: %v", err)
		}
		if len(labels) != 0 {
			t.Errorf("booked labels after cancel = %v", labels)
		}

		rebooked := newAppointment("2025-03-10", "3:00 PM")
		if err := repo.InsertIfAbsent(ctx, rebooked); err != nil {
			t.Errorf("re-booking a cancelled slot: %v", err)
		}
	})

	t.Run("status transitions", func(t *testing.T) {
		tests := []struct {
			name    string
			initial model.AppointmentStatus
			steps   []model.AppointmentStatus
			wantErr error
		}{
			{name: "pending to confirmed", initial: model.StatusPending, steps: []model.AppointmentStatus{model.StatusConfirmed}},
			{name: "pending to cancelled", initial: model.StatusPending, steps: []model.AppointmentStatus{model.StatusCancelled}},
			{name: "confirmed to completed", initial: model.StatusConfirmed, steps: []model.AppointmentStatus{model.StatusCompleted}},
			{
				name:    "cancelled twice",
				initial: model.StatusConfirmed,
				steps:   []model.AppointmentStatus{model.StatusCancelled, model.StatusCancelled},
				wantErr: appointmentserrors.ErrInvalidTransition,
			},
			{
				name:    "pending to completed",
				initial: model.StatusPending,
				steps:   []model.AppointmentStatus{model.StatusCompleted},
				wantErr: appointmentserrors.ErrInvalidTransition,
			},
			{
				name:    "completed to cancelled",
				initial: model.StatusConfirmed,
				steps:   []model.AppointmentStatus{model.StatusCompleted, model.StatusCancelled},
				wantErr: appointmentserrors.ErrInvalidTransition,
			},
			{
				name:    "back to pending",
				initial: model.StatusConfirmed,
				steps:   []model.AppointmentStatus{model.StatusPending},
				wantErr: appointmentserrors.ErrInvalidTransition,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newLedger(t)
				appt := newAppointment("2025-03-12", "9:00 AM")
				appt.Status = tt.initial
				if err := repo.InsertIfAbsent(ctx, appt); err != nil {
					t.Fatalf("InsertIfAbsent: %v", err)
				}

				var err error
				for _, step := range tt.steps {
					if _, err = repo.SetStatus(ctx, appt.ID, step); err != nil {
						break
					}
				}

				if tt.wantErr == nil {
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					return
				}
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				var transitionErr *appointmentserrors.TransitionError
				if !errors.As(err, &transitionErr) {
					t.Fatalf("error %v is not a TransitionError", err)
				}
				if transitionErr.To != tt.steps[len(tt.steps)-1] {
					t.Errorf("TransitionError.To = %s", transitionErr.To)
				}
			})
		}
	})

	t.Run("concurrent cancels succeed once", func(t *testing.T) {
		repo := newLedger(t)
		appt := newAppointment("2025-03-13", "4:00 PM")
		if err := repo.InsertIfAbsent(ctx, appt); err != nil {
			t.Fatalf("InsertIfAbsent: %v", err)
		}

		const n = 8
		results := make(chan error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.SetStatus(ctx, appt.ID, model.StatusCancelled)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			switch {
			case err == nil:
				succeeded++
			case !errors.Is(err, appointmentserrors.ErrInvalidTransition):
				t.Errorf("unexpected error: %v", err)
			}
		}
		if succeeded != 1 {
			t.Errorf("%d cancels succeeded, want 1", succeeded)
		}
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		repo := newLedger(t)
		missing := primitive.NewObjectID().Hex()

		if _, err := repo.FindByID(ctx, missing); !errors.Is(err, appointmentserrors.ErrNotFound) {
			t.Errorf("FindByID(missing) = %v, want ErrNotFound", err)
		}
		if _, err := repo.SetStatus(ctx, missing, model.StatusCancelled); !errors.Is(err, appointmentserrors.ErrNotFound) {
			t.Errorf("SetStatus(missing) = %v, want ErrNotFound", err)
		}
		if _, err := repo.FindByID(ctx, "not-an-id"); !errors.Is(err, appointmentserrors.ErrInvalidID) {
			t.Errorf("FindByID(malformed) = %v, want ErrInvalidID", err)
		}
		if _, err := repo.SetStatus(ctx, "not-an-id", model.StatusCancelled); !errors.Is(err, appointmentserrors.ErrInvalidID) {
			t.Errorf("SetStatus(malformed) = %v, want ErrInvalidID", err)
		}
	})
}
