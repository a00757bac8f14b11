package ops

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jacksmith/trips/internal/model"
)

// TripValidator checks edited trips before they are saved.
// Start and end dates must be YYYY-MM-DD and the end may not precede the start.
// Duplicate titles are allowed.
type TripValidator struct {
	v *validator.Validate
}

// NewTripValidator creates a validator that reports fields by their JSON names.
func NewTripValidator() *TripValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &TripValidator{v: v}
}

// Validate returns a *ValidationError, or nil if t is valid.
func (tv *TripValidator) Validate(t model.Trip) error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Title) == "" {
		fields["title"] = "is required"
	}

	if err := tv.v.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields[fe.Field()] = friendlyMessage(fe)
		}
	}

	_, startBad := fields["startDate"]
	_, endBad := fields["endDate"]
	if !startBad && !endBad && t.End().Before(t.Start()) {
		fields["endDate"] = "must not be before startDate"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
