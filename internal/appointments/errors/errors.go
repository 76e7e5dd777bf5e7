package errors

import (
	"errors"
	"fmt"

	"walkin/pkg/model"
)

var (
	ErrNotFound = errors.New("appointment not found")

	ErrInvalidID = errors.New("invalid appointment ID format")

	ErrSlotTaken = errors.New("time slot already has an active appointment")

	ErrInvalidTransition = errors.New("appointment status transition not allowed")
)

// TransitionError records a rejected status change. It matches
// ErrInvalidTransition under errors.Is.
type TransitionError struct {
	From model.AppointmentStatus
	To   model.AppointmentStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
