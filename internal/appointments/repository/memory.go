package repository

import (
	"context"
	"fmt"
	"sync"

	appointmentserrors "walkin/internal/appointments/errors"
	mongox "walkin/pkg/db/mongo"
	"walkin/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type slotKey struct {
	date      string
	timeLabel string
}

// memoryAppointmentRepository keeps the ledger in process. A single mutex
// makes check and insert one critical section.
type memoryAppointmentRepository struct {
	mu           sync.RWMutex
	appointments map[string]*model.Appointment
	active       map[slotKey]string
}

func NewMemoryAppointmentRepository() AppointmentRepository {
	return &memoryAppointmentRepository{
		appointments: make(map[string]*model.Appointment),
		active:       make(map[slotKey]string),
	}
}

func (r *memoryAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := parseID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	appointment, ok := r.appointments[id]
	if !ok {
		return nil, appointmentserrors.ErrNotFound
	}
	return clone(appointment), nil
}

func (r *memoryAppointmentRepository) FindActive(ctx context.Context, date, timeLabel string) (*model.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.active[slotKey{date, timeLabel}]
	if !ok {
		return nil, appointmentserrors.ErrNotFound
	}
	return clone(r.appointments[id]), nil
}

func (r *memoryAppointmentRepository) ListBookedLabels(ctx context.Context, date string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	labels := make([]string, 0)
	for key := range r.active {
		if key.date == date {
			labels = append(labels, key.timeLabel)
		}
	}
	return labels, nil
}

func (r *memoryAppointmentRepository) InsertIfAbsent(ctx context.Context, appointment *model.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey{appointment.Date, appointment.TimeLabel}
	active := appointment.Status.IsActive()
	if _, taken := r.active[key]; taken && active {
		return fmt.Errorf("%w: %s %s", appointmentserrors.ErrSlotTaken, appointment.Date, appointment.TimeLabel)
	}

	now := mongox.Now()
	appointment.ID = primitive.NewObjectID().Hex()
	appointment.Active = active
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	r.appointments[appointment.ID] = clone(appointment)
	if active {
		r.active[key] = appointment.ID
	}
	return nil
}

func (r *memoryAppointmentRepository) SetStatus(ctx context.Context, id string, status model.AppointmentStatus) (*model.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := parseID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[id]
	if !ok {
		return nil, appointmentserrors.ErrNotFound
	}
	if !stored.Status.CanTransitionTo(status) {
		return nil, &appointmentserrors.TransitionError{From: stored.Status, To: status}
	}

	key := slotKey{stored.Date, stored.TimeLabel}
	if status.IsActive() {
		if holder, taken := r.active[key]; taken && holder != id {
			return nil, fmt.Errorf("%w: %s", appointmentserrors.ErrSlotTaken, id)
		}
		r.active[key] = id
	} else if r.active[key] == id {
		delete(r.active, key)
	}

	stored.Status = status
	stored.Active = status.IsActive()
	stored.UpdatedAt = mongox.Now()
	return clone(stored), nil
}

func clone(a *model.Appointment) *model.Appointment {
	c := *a
	return &c
}
