// Package validate wraps struct validation behind a result type: a nil
// FieldErrors means the payload is usable, otherwise every offending field
// maps to one message. Nothing is persisted while any field error exists.
package validate

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern      = regexp.MustCompile(`^\+?\d+$`)
	nationalIDPattern = regexp.MustCompile(`^\d{6}/\d{4}$`)
)

// FieldErrors maps a field's JSON name to a human message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("national_id", func(fl validator.FieldLevel) bool {
		return nationalIDPattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct validates s and returns nil when it passes.
func (val *Validator) Struct(s any) FieldErrors {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"_": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

// ContractDates checks the cross-field ordering rules: validity on or after
// conclusion, ending strictly after validity.
func ContractDates(conclusion, validity, ending time.Time) FieldErrors {
	out := FieldErrors{}
	if validity.Before(conclusion) {
		out["validityDate"] = "Validity date must be after or equal to conclusion date"
	}
	if !ending.After(validity) {
		out["endingDate"] = "Ending date must be after validity date"
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email"
	case "phone":
		return "Invalid phone number format (optional + followed by digits)"
	case "national_id":
		return "National id must be in format 123456/7890"
	case "min":
		return "Must be at least " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param()
	case "oneof":
		return "Must be one of: " + fe.Param()
	default:
		return "Invalid value"
	}
}
