// Package identifier classifies login identifiers.
//
// An identifier is either an email address (local@domain.tld, no spaces) or
// a mobile number made of exactly ten digits. Nothing else is accepted.
package identifier

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field names a profile attribute an identifier can be matched against.
type Field string

const (
	FieldEmail  Field = "email"
	FieldMobile Field = "mobile"
)

// ErrInvalidFormat is returned when a string is neither an email nor a mobile number.
var ErrInvalidFormat = errors.New("invalid identifier format")

var (
	reEmail  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reMobile = regexp.MustCompile(`^[0-9]{10}$`)
)

// IsEmail reports whether s looks like local@domain.tld.
func IsEmail(s string) bool { return reEmail.MatchString(s) }

// IsMobile reports whether s is exactly ten ASCII digits.
func IsMobile(s string) bool { return reMobile.MatchString(s) }

// Classify returns the field s should be looked up by.
// Email wins when both patterns could apply.
func Classify(s string) (Field, error) {
	s = strings.TrimSpace(s)
	switch {
	case IsEmail(s):
		return FieldEmail, nil
	case IsMobile(s):
		return FieldMobile, nil
	default:
		return "", ErrInvalidFormat
	}
}

// RegisterValidators adds the "identifier" and "account_email" tags to v.
// account_email applies the same rule registration does, which is looser
// than validator's built-in email tag.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
		return IsEmail(strings.TrimSpace(fl.Field().String()))
	}); err != nil {
		return err
	}
	return v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		_, err := Classify(fl.Field().String())
		return err == nil
	})
}
