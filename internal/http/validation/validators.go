// Package validation implements the client-side form rules. Each form shows
// at most one message; checks run in the form's declared order and stop at
// the first failure, so message wording and precedence here are part of the
// user-visible contract.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// Required validates that a field is not blank.
func Required(fieldName string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return fieldName + " is required."
		}
		return ""
	}
}

// MinLen validates that a non-blank field has at least minLen characters.
// Uses rune count for proper Unicode support. Blank values are left to Required.
func MinLen(fieldName string, minLen int) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		if utf8.RuneCountInString(v) < minLen {
			return fmt.Sprintf("%s must be at least %d characters.", fieldName, minLen)
		}
		return ""
	}
}

// Email validates the address shape. Blank values are left to Required.
func Email() Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		if !emailRe.MatchString(v) {
			return "Invalid email format."
		}
		return ""
	}
}

// Mobile validates a bare 10-digit subscriber number, before any country
// prefix is applied. The message differs between forms, so callers supply it.
func Mobile(message string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		if !mobileRe.MatchString(v) {
			return message
		}
		return ""
	}
}

// Equals validates that the value matches other exactly. Used for password
// confirmation fields.
func Equals(other, message string) Validator {
	return func(v string) string {
		if v != other {
			return message
		}
		return ""
	}
}

// FormValidator runs checks in declaration order and keeps only the first
// failure, which is the message the form displays.
type FormValidator struct {
	msg string
}

// New creates a new FormValidator instance.
func New() *FormValidator {
	return &FormValidator{}
}

// Check validates a value with one or more validators. Once any check has
// failed, later calls are no-ops.
func (fv *FormValidator) Check(value string, validators ...Validator) *FormValidator {
	if fv.msg != "" {
		return fv
	}
	for _, v := range validators {
		if err := v(value); err != "" {
			fv.msg = err
			break
		}
	}
	return fv
}

// CheckAll fails with a single shared message when any of the values is
// blank. Used by forms that report "All fields are required." instead of a
// per-field message.
func (fv *FormValidator) CheckAll(message string, values ...string) *FormValidator {
	if fv.msg != "" {
		return fv
	}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			fv.msg = message
			break
		}
	}
	return fv
}

// Error returns the first failure message, or "" when every check passed.
func (fv *FormValidator) Error() string {
	return fv.msg
}
