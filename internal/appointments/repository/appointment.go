package repository

import (
	"context"
	"errors"
	"fmt"

	appointmentserrors "walkin/internal/appointments/errors"
	"walkin/pkg/config"
	mongox "walkin/pkg/db/mongo"
	"walkin/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Appointments"
)

// AppointmentRepository is the reservation ledger. InsertIfAbsent and
// SetStatus are its only mutating operations, and each is atomic with respect
// to the one-active-appointment-per-slot invariant.
type AppointmentRepository interface {
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	FindActive(ctx context.Context, date, timeLabel string) (*model.Appointment, error)
	ListBookedLabels(ctx context.Context, date string) ([]string, error)
	InsertIfAbsent(ctx context.Context, appointment *model.Appointment) error
	SetStatus(ctx context.Context, id string, status model.AppointmentStatus) (*model.Appointment, error)
}

type mongoAppointmentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAppointmentRepository(cfg *config.Config) AppointmentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAppointmentRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", appointmentserrors.ErrInvalidID, id)
	}
	return objectID, nil
}

func (r *mongoAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := mongox.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *mongoAppointmentRepository) FindActive(ctx context.Context, date, timeLabel string) (*model.Appointment, error) {
	ctx, cancel := mongox.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{
		"date":       date,
		"time_label": timeLabel,
		"active":     true,
	})
}

func (r *mongoAppointmentRepository) findOne(ctx context.Context, filter bson.M) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.collection.FindOne(ctx, filter).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appointmentserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}
	return &appointment, nil
}

func (r *mongoAppointmentRepository) ListBookedLabels(ctx context.Context, date string) ([]string, error) {
	ctx, cancel := mongox.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	values, err := r.collection.Distinct(ctx, "time_label", bson.M{
		"date":   date,
		"active": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list booked labels: %w", err)
	}

	labels := make([]string, 0, len(values))
	for _, v := range values {
		if label, ok := v.(string); ok {
			labels = append(labels, label)
		}
	}
	return labels, nil
}

// InsertIfAbsent relies on the partial unique index over (date, time_label)
// for active documents; the existence check and the write are one server-side
// operation.
func (r *mongoAppointmentRepository) InsertIfAbsent(ctx context.Context, appointment *model.Appointment) error {
	ctx, cancel := mongox.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := mongox.Now()
	appointment.ID = ""
	appointment.Active = appointment.Status.IsActive()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s %s", appointmentserrors.ErrSlotTaken, appointment.Date, appointment.TimeLabel)
		}
		return fmt.Errorf("failed to insert appointment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		appointment.ID = oid.Hex()
	}
	return nil
}

// SetStatus is a compare-and-set on the current status: the update only
// matches documents whose status may legally move to the target.
func (r *mongoAppointmentRepository) SetStatus(ctx context.Context, id string, status model.AppointmentStatus) (*model.Appointment, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := mongox.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	sources := model.TransitionSources(status)
	if len(sources) == 0 {
		return nil, r.rejectTransition(ctx, objectID, status)
	}

	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$in": sources},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"active":     status.IsActive(),
			"updated_at": mongox.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Appointment
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	switch {
	case err == nil:
		return &updated, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, r.rejectTransition(ctx, objectID, status)
	case mongo.IsDuplicateKeyError(err):
		return nil, fmt.Errorf("%w: %s", appointmentserrors.ErrSlotTaken, id)
	default:
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
}

// rejectTransition tells a missing appointment apart from one whose current
// status does not allow the move.
func (r *mongoAppointmentRepository) rejectTransition(ctx context.Context, objectID primitive.ObjectID, to model.AppointmentStatus) error {
	current, err := r.findOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	return &appointmentserrors.TransitionError{From: current.Status, To: to}
}
