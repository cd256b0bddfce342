package movie

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"moviedb/internal/services"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
		return ValidYear(fl.Field().String())
	})
	return v
}

// ValidYear reports whether value starts with four digits. Series ranges such
// as "2008–2013" are accepted.
func ValidYear(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) < 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// Validate checks the record's field rules. Failures wrap
// services.ErrInvalidInput and name every offending field.
func (m Movie) Validate() error {
	err := validate.Struct(m.Normalize())
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return services.Wrap(services.ErrInvalidInput, "movie", "validate", "", err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.ToLower(fieldErr.Field()), fieldMessage(fieldErr)))
	}
	sort.Strings(msgs)
	return services.Wrap(services.ErrInvalidInput, "movie", "validate", strings.Join(msgs, "; "), nil)
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("maximum length is %s", err.Param())
	case "year":
		return "must start with a 4-digit year"
	default:
		return fmt.Sprintf("failed %s check", err.Tag())
	}
}
