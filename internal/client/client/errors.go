package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks transport failures: the authority could not be
	// reached at all. It never clears session state; retry is user-initiated.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks a rejected access credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotVerified marks a login rejected because the account has not
	// completed email verification. Callers route to the OTP flow instead of
	// showing a generic failure.
	ErrNotVerified = errors.New("account not verified")

	// ErrArtifactExpired marks a one-time code or reset ticket the authority
	// rejected as expired or invalid.
	ErrArtifactExpired = errors.New("code or ticket expired")
)

// APIError is a non-2xx authority response. Detail carries the
// authority-provided message when present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("authority rejected request (status %d)", e.Status)
}

// remap substitutes selected HTTP statuses with sentinel-wrapped errors,
// keeping the authority's message in the error text. Other errors pass
// through unchanged.
func remap(err error, statuses map[int]error) error {
	var ae *APIError
	if !errors.As(err, &ae) {
		return err
	}
	if sentinel, ok := statuses[ae.Status]; ok {
		return fmt.Errorf("%w: %s", sentinel, ae.Error())
	}
	return err
}
