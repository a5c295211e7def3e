// Package validate holds the per-field checks the screens run synchronously
// before submitting a form. Each validator is a pure predicate returning nil
// or an error whose message is shown inline next to the field.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// NowFunc supplies the current time for date validators (injectable for testing).
var NowFunc = time.Now

// DateLayout is the wire format of date-only form fields.
const DateLayout = "2006-01-02"

// Required fails on blank values.
func Required(label, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", label)
	}
	return nil
}

// PositiveNumber fails unless the value parses as a number strictly greater
// than zero.
func PositiveNumber(label, value string) error {
	n, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s must be a number", label)
	}
	if !n.IsPositive() {
		return fmt.Errorf("%s must be greater than zero", label)
	}
	return nil
}

// NonNegativeNumber fails unless the value parses as a number greater than
// or equal to zero.
func NonNegativeNumber(label, value string) error {
	n, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s must be a number", label)
	}
	if n.IsNegative() {
		return fmt.Errorf("%s must not be negative", label)
	}
	return nil
}

// DigitString fails unless the value is exactly length digits. The phone
// field uses length 9.
func DigitString(label, value string, length int) error {
	if len(value) != length {
		return fmt.Errorf("%s must be exactly %d digits", label, length)
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("%s must contain only digits", label)
		}
	}
	return nil
}

// FutureDate fails unless the value parses as a date strictly after today.
func FutureDate(label, value string) error {
	date, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s must be a date in the form %s", label, DateLayout)
	}
	if !date.After(NowFunc()) {
		return fmt.Errorf("%s must be in the future", label)
	}
	return nil
}

// MinLength fails on values shorter than min. The secret field uses min 6.
func MinLength(label, value string, min int) error {
	if len(value) < min {
		return fmt.Errorf("%s must be at least %d characters", label, min)
	}
	return nil
}

// Email performs a basic format check.
func Email(label, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s is required", label)
	}
	if !strings.Contains(value, "@") || !strings.Contains(value, ".") {
		return fmt.Errorf("%s is not a valid email address", label)
	}
	return nil
}

// MatchingSecrets fails when the secret and its confirmation field differ.
func MatchingSecrets(secret, confirmation string) error {
	if secret != confirmation {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}
