package events

import (
	"context"
	"fmt"
	"time"

	"walkin/pkg/kafka"
	"walkin/pkg/middleware"
	"walkin/pkg/model"

	"github.com/google/uuid"
)

const (
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentCancelled = "appointment.cancelled"

	SchemaVersion = "1"
	Source        = "walkin-appointments"

	defaultPublishTimeout = 2 * time.Second
)

// AppointmentEvent is the payload of every lifecycle message. Messages are
// keyed by appointment id so one appointment's events stay ordered.
type AppointmentEvent struct {
	AppointmentID string                  `json:"appointmentId"`
	PartyID       string                  `json:"userId"`
	Date          string                  `json:"date"`
	Time          string                  `json:"time"`
	IDType        model.IDType            `json:"idType"`
	Status        model.AppointmentStatus `json:"status"`
	OccurredAt    time.Time               `json:"occurredAt"`
}

// Publisher announces committed appointment changes.
type Publisher interface {
	Publish(ctx context.Context, eventType string, appointment *model.Appointment) error
	Close() error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer MessagePublisher
	timeout  time.Duration
}

// NewKafkaPublisher bounds every write by timeout. A non-positive timeout
// falls back to the package default.
func NewKafkaPublisher(producer MessagePublisher, timeout time.Duration) Publisher {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &kafkaPublisher{producer: producer, timeout: timeout}
}

// Publish detaches from the caller's cancellation: the appointment is
// already committed when this runs.
func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, appointment *model.Appointment) error {
	msg := NewEventMessage(ctx, eventType, appointment)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s for appointment %s: %w", eventType, appointment.ID, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// NewEventMessage builds the Kafka message for one lifecycle event. The
// request id, when present, becomes the correlation id.
func NewEventMessage(ctx context.Context, eventType string, appointment *model.Appointment) kafka.Message {
	event := AppointmentEvent{
		AppointmentID: appointment.ID,
		PartyID:       appointment.PartyID,
		Date:          appointment.Date,
		Time:          appointment.TimeLabel,
		IDType:        appointment.IDType,
		Status:        appointment.Status,
		OccurredAt:    appointment.UpdatedAt,
	}

	return kafka.NewMessage().
		WithKey(appointment.ID).
		WithValue(event).
		WithEventID(uuid.NewString()).
		WithEventType(eventType).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithTimestamp(event.OccurredAt).
		Build()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event. Used when
// events are disabled.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, *model.Appointment) error { return nil }

func (noopPublisher) Close() error { return nil }
