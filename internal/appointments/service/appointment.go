package service

import (
	"context"
	"errors"

	appointmentserrors "walkin/internal/appointments/errors"
	"walkin/internal/appointments/events"
	"walkin/internal/appointments/repository"
	"walkin/internal/appointments/slots"
	"walkin/internal/appointments/validator"
	partiesrepository "walkin/internal/parties/repository"
	partiesservice "walkin/internal/parties/service"
	"walkin/pkg/config"
	apperrors "walkin/pkg/errors"
	"walkin/pkg/model"
	"walkin/pkg/sanitizer"
)

// AppointmentService is the allocation protocol: availability queries,
// booking, lookup and cancellation. Every error it returns is an
// *apperrors.AppError.
type AppointmentService interface {
	GetAvailableSlots(ctx context.Context, date string) (*model.Availability, error)
	IDTypes() []string
	BookSlot(ctx context.Context, req *model.BookingRequest) (*model.BookingResult, error)
	GetByID(ctx context.Context, id string) (*model.AppointmentDetails, error)
	Cancel(ctx context.Context, id string) (*model.Appointment, error)
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	parties   partiesservice.PartyResolver
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	parties partiesservice.PartyResolver,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) AppointmentService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &appointmentService{
		repo:      repo,
		parties:   parties,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// GetAvailableSlots is a point-in-time view. It reserves nothing, so a slot
// reported free may be taken before the caller books it.
func (s *appointmentService) GetAvailableSlots(ctx context.Context, date string) (*model.Availability, error) {
	day, ok := slots.CanonicalDate(date)
	if !ok {
		return nil, apperrors.InvalidField("date", "Invalid date format")
	}

	taken, err := s.repo.ListBookedLabels(ctx, day)
	if err != nil {
		s.cfg.Log.Error("Failed to list booked slots",
			"date", day,
			"error", err,
		)
		return nil, storeError("Failed to retrieve available slots", err)
	}

	available, booked := slots.Partition(taken)
	return &model.Availability{
		Date:           day,
		AvailableSlots: available,
		BookedSlots:    booked,
	}, nil
}

func (s *appointmentService) IDTypes() []string {
	return model.IDTypeValues()
}

// BookSlot validates before touching any store, resolves the party, then
// claims the slot with a single conditional insert. A party created here is
// kept even when the slot turns out to be taken.
func (s *appointmentService) BookSlot(ctx context.Context, req *model.BookingRequest) (*model.BookingResult, error) {
	if req == nil {
		return nil, apperrors.InvalidInput("Request body is required")
	}
	req = sanitize(req)

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking request rejected",
			"date", req.Date,
			"time", req.Time,
			"error", err,
		)
		return nil, err
	}
	day, _ := slots.CanonicalDate(req.Date)

	party, err := s.parties.Resolve(ctx, req.UserInfo)
	if err != nil {
		return nil, storeError("Failed to resolve user", err)
	}

	appointment := &model.Appointment{
		PartyID:     party.ID,
		Date:        day,
		TimeLabel:   req.Time,
		IDType:      model.IDType(req.IDType),
		IDReference: req.IDPresented,
		Status:      model.StatusConfirmed,
	}

	if err := s.repo.InsertIfAbsent(ctx, appointment); err != nil {
		if errors.Is(err, appointmentserrors.ErrSlotTaken) {
			s.cfg.Log.Info("Slot already taken",
				"date", day,
				"time", req.Time,
				"party_id", party.ID,
			)
			return nil, apperrors.SlotTaken(day, req.Time)
		}
		s.cfg.Log.Error("Failed to book appointment",
			"date", day,
			"time", req.Time,
			"error", err,
		)
		return nil, storeError("Failed to book appointment", err)
	}

	s.cfg.Log.Info("Appointment booked",
		"appointment_id", appointment.ID,
		"party_id", party.ID,
		"date", day,
		"time", req.Time,
	)
	s.publish(ctx, events.EventAppointmentBooked, appointment)

	return &model.BookingResult{
		Appointment: appointment,
		User:        party,
	}, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*model.AppointmentDetails, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	details := &model.AppointmentDetails{Appointment: appointment}

	party, err := s.parties.GetByID(ctx, appointment.PartyID)
	switch {
	case err == nil:
		details.User = party
	case errors.Is(err, partiesrepository.ErrNotFound), errors.Is(err, partiesrepository.ErrInvalidID):
		s.cfg.Log.Warn("Appointment references a missing user",
			"appointment_id", id,
			"party_id", appointment.PartyID,
		)
	default:
		s.cfg.Log.Error("Failed to load appointment user",
			"appointment_id", id,
			"party_id", appointment.PartyID,
			"error", err,
		)
		return nil, storeError("Failed to retrieve appointment", err)
	}

	return details, nil
}

func (s *appointmentService) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	appointment, err := s.repo.SetStatus(ctx, id, model.StatusCancelled)
	if err != nil {
		var transitionErr *appointmentserrors.TransitionError
		if errors.As(err, &transitionErr) {
			s.cfg.Log.Warn("Appointment cannot be cancelled",
				"appointment_id", id,
				"status", transitionErr.From,
			)
			return nil, apperrors.InvalidTransition(string(transitionErr.From), string(transitionErr.To))
		}
		return nil, s.lookupError(id, err)
	}

	s.cfg.Log.Info("Appointment cancelled",
		"appointment_id", id,
		"date", appointment.Date,
		"time", appointment.TimeLabel,
	)
	s.publish(ctx, events.EventAppointmentCancelled, appointment)

	return appointment, nil
}

// publish never affects the outcome of the committed operation.
func (s *appointmentService) publish(ctx context.Context, eventType string, appointment *model.Appointment) {
	if err := s.publisher.Publish(ctx, eventType, appointment); err != nil {
		s.cfg.Log.Warn("Failed to publish appointment event",
			"event_type", eventType,
			"appointment_id", appointment.ID,
			"error", err,
		)
	}
}

// lookupError treats malformed ids as absent ones.
func (s *appointmentService) lookupError(id string, err error) error {
	if errors.Is(err, appointmentserrors.ErrNotFound) || errors.Is(err, appointmentserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("Appointment", id)
	}
	s.cfg.Log.Error("Failed to access appointment",
		"appointment_id", id,
		"error", err,
	)
	return storeError("Failed to retrieve appointment", err)
}

func storeError(message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout(message)
	}
	return apperrors.Internal(message, err)
}

// sanitize returns a trimmed copy of req. The ID type is left exactly as
// submitted.
func sanitize(req *model.BookingRequest) *model.BookingRequest {
	c := *req
	c.Date = sanitizer.TrimAndNormalize(c.Date)
	c.Time = sanitizer.TrimAndNormalize(c.Time)
	c.IDPresented = sanitizer.NormalizeIDReference(c.IDPresented)

	if req.UserInfo != nil {
		info := *req.UserInfo
		info.Email = sanitizer.NormalizeEmail(info.Email)
		info.FirstName = sanitizer.NormalizeName(info.FirstName)
		info.LastName = sanitizer.NormalizeName(info.LastName)
		c.UserInfo = &info
	}
	return &c
}
