package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^(\+40|0)[0-9]{9}$`)
)

// IsValidEmail applies the RFC-light local@domain.tld check.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidPhone accepts Romanian numbers: +40 or a leading 0 followed by
// exactly nine digits. Internal whitespace is ignored.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(strings.ReplaceAll(s, " ", ""))
}

// FirstMissing returns the first field whose value is empty after
// trimming, in the order given. ok is false when such a field exists.
func FirstMissing(fields []string, values map[string]string) (field string, ok bool) {
	for _, f := range fields {
		if strings.TrimSpace(values[f]) == "" {
			return f, false
		}
	}
	return "", true
}
