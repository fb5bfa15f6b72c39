package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"maison/pkg/config"
	"maison/pkg/model"
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

type BookingValidator struct {
	validate *validator.Validate
	cfg      *config.Config
}

// NewBookingValidator builds a validator bound to the configured slot
// grid: the time_slot tag accepts only slots the building offers.
func NewBookingValidator(cfg *config.Config) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("date_only", validateDateOnly); err != nil {
		cfg.Log.Fatal("Failed to register 'date_only' validator",
			"error", err,
		)
	}

	if err := v.RegisterValidation("time_slot", func(fl validator.FieldLevel) bool {
		return cfg.IsValidSlot(fl.Field().String())
	}); err != nil {
		cfg.Log.Fatal("Failed to register 'time_slot' validator",
			"error", err,
		)
	}

	return &BookingValidator{
		validate: v,
		cfg:      cfg,
	}
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "date_only":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "time_slot":
			message = fmt.Sprintf("%s must be one of the daily slots: %s", err.Field(), strings.Join(v.cfg.TimeSlots, " "))
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
