package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "kiosk.appointments")

	msg := NewMessage().
		WithKey("appt-1").
		WithValue(map[string]string{"status": "confirmed"}).
		WithEventType("appointment.booked").
		WithCorrelationID("req-1").
		Build()

	if err := p.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(w.messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(w.messages))
	}
	got := w.messages[0]
	if string(got.Key) != "appt-1" {
		t.Errorf("key = %q", got.Key)
	}
	if header(got, HeaderEventType) != "appointment.booked" {
		t.Errorf("event type header = %q", header(got, HeaderEventType))
	}
	if header(got, HeaderEventID) == "" {
		t.Error("event id header should be generated")
	}
	if header(got, HeaderCorrelationID) != "req-1" {
		t.Errorf("correlation header = %q", header(got, HeaderCorrelationID))
	}
}

func TestProducer_PublishRejectsInvalidMessages(t *testing.T) {
	p := NewProducerWithWriter(&fakeWriter{}, "topic")

	tests := []struct {
		name string
		msg  Message
		want error
	}{
		{"empty key", NewMessage().WithValue("x").Build(), ErrEmptyKey},
		{"empty value", NewMessage().WithKey("k").Build(), ErrEmptyValue},
		{"unencodable value", NewMessage().WithKey("k").WithValue(make(chan int)).Build(), ErrEmptyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.Publish(context.Background(), tt.msg); !errors.Is(err, tt.want) {
				t.Errorf("Publish() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestProducer_Closed(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "topic")

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if !w.closed {
		t.Error("writer should be closed")
	}

	msg := NewMessage().WithKey("k").WithValue("v").Build()
	if err := p.Publish(context.Background(), msg); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("Publish() after close = %v, want ErrProducerClosed", err)
	}
}

func TestProducer_DLQOnFailure(t *testing.T) {
	writeErr := errors.New("leader not available")
	w := &fakeWriter{err: writeErr}
	dlq := &fakeWriter{}
	p := newProducer(w, dlq, "kiosk.appointments", "kiosk.appointments.dlq")

	msg := NewMessage().WithKey("appt-1").WithValue("v").Build()
	err := p.Publish(context.Background(), msg)

	if !errors.Is(err, writeErr) {
		t.Fatalf("Publish() error = %v, want %v", err, writeErr)
	}
	if len(dlq.messages) != 1 {
		t.Fatalf("dlq got %d messages, want 1", len(dlq.messages))
	}
	if got := header(dlq.messages[0], HeaderOriginalTopic); got != "kiosk.appointments" {
		t.Errorf("original topic header = %q", got)
	}
	if got := header(dlq.messages[0], HeaderDLQError); got != writeErr.Error() {
		t.Errorf("dlq error header = %q", got)
	}
	if _, ok := msg.Headers[HeaderDLQError]; ok {
		t.Error("caller's headers must not be mutated")
	}
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	p := NewProducerWithWriter(&fakeWriter{}, "topic")

	var order []string
	for _, name := range []string{"first", "second"} {
		p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
			order = append(order, name)
			return next(ctx, msg)
		})
	}

	msg := NewMessage().WithKey("k").WithValue("v").Build()
	if err := p.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("middleware order = %v", order)
	}
}
