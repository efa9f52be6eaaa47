// Package validation performs local, pre-dispatch checks on user input.
// Failures wrap ErrInvalid and never reach the network layer.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is wrapped by every error returned from this package.
var ErrInvalid = errors.New("invalid input")

// CodeLength is the fixed number of digits in a one-time code. Completion is
// always a length-equality check, never a partial match.
const CodeLength = 6

// MinResetPasswordLen applies to the password chosen during a reset.
const MinResetPasswordLen = 6

var validate = validator.New()

type emailInput struct {
	Email string `validate:"required,email"`
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registrationInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// Email checks a lone address, as entered on the reset-request screen.
func Email(email string) error {
	return wrap(validate.Struct(emailInput{Email: email}))
}

// LoginInput checks credentials before a login attempt.
func LoginInput(email, password string) error {
	return wrap(validate.Struct(loginInput{Email: email, Password: password}))
}

// RegistrationInput enforces the account-creation password policy: at least
// 8 characters with upper, lower, digit and special classes present.
func RegistrationInput(email, password string) error {
	if err := wrap(validate.Struct(registrationInput{Email: email, Password: password})); err != nil {
		return err
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	switch {
	case !upper:
		return invalidf("password must contain an uppercase letter")
	case !lower:
		return invalidf("password must contain a lowercase letter")
	case !digit:
		return invalidf("password must contain a digit")
	case !special:
		return invalidf("password must contain a special character")
	}
	return nil
}

// NewPassword checks the reset-confirmation pair.
func NewPassword(password, confirm string) error {
	if len(password) < MinResetPasswordLen {
		return invalidf("password must be at least %d characters", MinResetPasswordLen)
	}
	if password != confirm {
		return invalidf("passwords do not match")
	}
	return nil
}

// Code checks a complete one-time code: exact length, digits only.
func Code(code string) error {
	if len(code) != CodeLength {
		return invalidf("code must be %d digits", CodeLength)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return invalidf("code must contain only digits")
		}
	}
	return nil
}

func invalidf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, a...))
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return invalidf("%s", strings.Join(msgs, "; "))
	}
	return err
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
