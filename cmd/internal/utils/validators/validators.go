// Package validators holds the custom validator.v10 rules registered in
// main.go.
package validators

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// IsDateOnly accepts "YYYY-MM-DD" dates.
func IsDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// IsClockTime accepts "HH:MM" times of day.
func IsClockTime(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}
