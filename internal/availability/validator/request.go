package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"hotelops/pkg/logger"
	"hotelops/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// RequestValidator validates the availability API's request DTOs before they
// reach the engine. Structural checks only; conflict and lifecycle rules
// stay in the engine.
type RequestValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRequestValidator(log *logger.Logger) *RequestValidator {
	v := validator.New()

	if err := v.RegisterValidation("resource_kind", validateResourceKind); err != nil {
		log.Fatal("Failed to register 'resource_kind' validator",
			"error", err,
		)
	}
	if err := v.RegisterValidation("booking_status", validateBookingStatus); err != nil {
		log.Fatal("Failed to register 'booking_status' validator",
			"error", err,
		)
	}

	return &RequestValidator{
		validate: v,
		logger:   log,
	}
}

func validateResourceKind(fl validator.FieldLevel) bool {
	return model.ResourceKind(fl.Field().String()).Valid()
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	return model.BookingStatus(fl.Field().String()).Valid()
}

func (v *RequestValidator) ValidateCheck(req *model.CheckRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return v.validateInterval(req.Interval)
}

func (v *RequestValidator) ValidateReserve(req *model.ReserveRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return v.validateInterval(req.Interval)
}

func (v *RequestValidator) ValidateTransition(req *model.TransitionRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *RequestValidator) validateInterval(i model.Interval) error {
	if i.Start.IsZero() || i.End.IsZero() {
		return ValidationErrors{
			ValidationError{
				Field:   "Interval",
				Message: "interval start and end are required",
			},
		}
	}
	if !i.Start.Before(i.End) {
		return ValidationErrors{
			ValidationError{
				Field:   "Interval",
				Message: "interval start must be strictly before end",
			},
		}
	}
	return nil
}

func (v *RequestValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "resource_kind":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), kindList())
		case "booking_status":
			message = fmt.Sprintf("%s must be a known booking status", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func kindList() string {
	kinds := model.AllResourceKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
