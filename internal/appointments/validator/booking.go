package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"walkin/internal/appointments/slots"
	apperrors "walkin/pkg/errors"
	"walkin/pkg/logger"
	"walkin/pkg/model"

	"github.com/go-playground/validator/v10"
	nonstandard "github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	tagRequired     = "required"
	tagNotBlank     = "notblank"
	tagMax          = "max"
	tagCalendarDate = "calendar_date"
	tagTimeLabel    = "time_label"
	tagIDType       = "id_type"
)

// BookingValidator is the gate every booking request passes before any party
// or ledger access.
type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	custom := map[string]validator.Func{
		tagCalendarDate: validateCalendarDate,
		tagTimeLabel:    validateTimeLabel,
		tagIDType:       validateIDType,
		tagNotBlank:     nonstandard.NotBlank,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register validator", "tag", tag, "error", err)
		}
	}

	log.Debug("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	return slots.IsValidDate(fl.Field().String())
}

func validateTimeLabel(fl validator.FieldLevel) bool {
	return slots.IsValidLabel(fl.Field().String())
}

func validateIDType(fl validator.FieldLevel) bool {
	return model.IDType(fl.Field().String()).IsValid()
}

// Validate checks a booking request. Missing or blank fields are reported
// first, in field order; then the first malformed or oversized field in the
// same order, so a bad date wins over a bad ID type.
func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	if req == nil {
		return apperrors.InvalidInput("Request body is required")
	}

	fieldErrs, err := v.fieldErrors(req)
	if err != nil || len(fieldErrs) == 0 {
		return err
	}

	if missing := firstMissing(fieldErrs); missing != nil {
		return apperrors.MissingField(fieldPath(missing))
	}
	return v.translate(fieldErrs[0])
}

// ValidateRequiredFields reports only absent or empty fields.
func (v *BookingValidator) ValidateRequiredFields(req *model.BookingRequest) error {
	if req == nil {
		return apperrors.InvalidInput("Request body is required")
	}

	fieldErrs, err := v.fieldErrors(req)
	if err != nil {
		return err
	}
	if missing := firstMissing(fieldErrs); missing != nil {
		return apperrors.MissingField(fieldPath(missing))
	}
	return nil
}

// ValidateIDType is an exact, case-sensitive membership test.
func (v *BookingValidator) ValidateIDType(value string) error {
	if !model.IDType(value).IsValid() {
		return apperrors.UnknownIDType(value)
	}
	return nil
}

func (v *BookingValidator) fieldErrors(req *model.BookingRequest) (validator.ValidationErrors, error) {
	err := v.validate.Struct(req)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs, nil
	}
	return nil, apperrors.Internal("Failed to validate booking request", err)
}

// firstMissing returns the first absent, empty or whitespace-only field.
func firstMissing(errs validator.ValidationErrors) validator.FieldError {
	for _, fe := range errs {
		if fe.Tag() == tagRequired || fe.Tag() == tagNotBlank {
			return fe
		}
	}
	return nil
}

// fieldPath drops the root struct name, e.g. "userInfo.email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func (v *BookingValidator) translate(fe validator.FieldError) error {
	value := fmt.Sprint(fe.Value())

	switch fe.Tag() {
	case tagIDType:
		return apperrors.UnknownIDType(value)
	case tagCalendarDate:
		return apperrors.InvalidField(fieldPath(fe), fmt.Sprintf("%q is not a valid date, expected YYYY-MM-DD", value))
	case tagTimeLabel:
		return apperrors.InvalidField(fieldPath(fe), fmt.Sprintf("%q is not an offered time slot", value))
	case tagMax:
		return apperrors.InvalidField(fieldPath(fe), fmt.Sprintf("%s must be at most %s characters", fieldPath(fe), fe.Param()))
	}

	v.logger.Warn("Unhandled validation tag", "tag", fe.Tag(), "field", fieldPath(fe))
	return apperrors.InvalidField(fieldPath(fe), fmt.Sprintf("%s is invalid", fieldPath(fe)))
}
