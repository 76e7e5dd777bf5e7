package model

import (
	"time"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

var Statuses = []AppointmentStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

func StatusValues() []string {
	values := make([]string, len(Statuses))
	for i, s := range Statuses {
		values[i] = string(s)
	}
	return values
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsActive reports whether an appointment in this status occupies its slot.
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo reports whether from -> to is an allowed lifecycle step.
func (s AppointmentStatus) CanTransitionTo(to AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted
	default:
		return false
	}
}

// TransitionSources returns every status from which to is reachable in one step.
func TransitionSources(to AppointmentStatus) []AppointmentStatus {
	var sources []AppointmentStatus
	for _, from := range Statuses {
		if from.CanTransitionTo(to) {
			sources = append(sources, from)
		}
	}
	return sources
}

// Appointment is one walk-in booking. Date is a calendar day in YYYY-MM-DD form
// and TimeLabel one of the daily template labels.
type Appointment struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	PartyID     string            `json:"userId" bson:"party_id"`
	Date        string            `json:"date" bson:"date"`
	TimeLabel   string            `json:"time" bson:"time_label"`
	IDType      IDType            `json:"idType" bson:"id_type"`
	IDReference string            `json:"idPresented" bson:"id_reference"`
	Status      AppointmentStatus `json:"status" bson:"status"`
	// Active mirrors Status.IsActive and backs the partial unique slot index.
	Active    bool      `json:"-" bson:"active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// AppointmentDetails is an appointment with its party summary populated.
type AppointmentDetails struct {
	*Appointment
	User *Party `json:"user"`
}

// Stored field limits, in characters. The collection schemas enforce the
// same bounds, so the validate tags below must stay in step with these.
const (
	MaxIDReferenceLength = 200
	MaxNameLength        = 100
	MaxEmailLength       = 254
	MaxPhoneLength       = 32
)

// BookingRequest is the payload accepted by the booking endpoint.
type BookingRequest struct {
	Date        string    `json:"date" validate:"required,calendar_date"`
	Time        string    `json:"time" validate:"required,time_label"`
	IDType      string    `json:"idType" validate:"required,notblank,id_type"`
	IDPresented string    `json:"idPresented" validate:"required,max=200"`
	UserInfo    *UserInfo `json:"userInfo" validate:"required"`
}

type UserInfo struct {
	Email     string `json:"email" validate:"required,max=254"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// BookingResult is returned after a successful booking.
type BookingResult struct {
	Appointment *Appointment `json:"appointment"`
	User        *Party       `json:"user"`
}

// Availability is a point-in-time view of one day's slots. It reserves nothing.
type Availability struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
	BookedSlots    []string `json:"bookedSlots"`
}
