package client

import (
	"context"

	"github.com/dkolesov/flashdeck/internal/client/models"
)

// Client is the authority contract consumed by the session, verification and
// reset flows. Exact routes and encodings are an implementation binding of
// HTTPClient.
type Client interface {
	Close() error

	// Me resolves the bearer credential to the authenticated user profile.
	Me(ctx context.Context, accessToken string) (*models.User, error)

	// Login exchanges credentials for an access token. A not-yet-verified
	// account yields ErrNotVerified.
	Login(ctx context.Context, email, password string) (string, error)

	// Register creates an account; the authority issues an OTP challenge
	// server-side on success.
	Register(ctx context.Context, email, password string) error

	// VerifyOTP proves control of the email for account activation and
	// returns an access token.
	VerifyOTP(ctx context.Context, email, code string) (string, error)

	// ResendOTP reissues the account-verification challenge.
	ResendOTP(ctx context.Context, email string) error

	// RequestReset starts (or reissues) a password-reset challenge.
	RequestReset(ctx context.Context, email string) error

	// VerifyResetOTP proves control of the email for the reset flow and
	// returns a single-use reset ticket.
	VerifyResetOTP(ctx context.Context, email, code string) (string, error)

	// ConfirmReset consumes the reset ticket and sets the new password.
	ConfirmReset(ctx context.Context, resetTicket, newPassword string) error

	// ListUsers returns all accounts (admin only).
	ListUsers(ctx context.Context, accessToken string) ([]models.User, error)

	// UpdateTokenBalance sets a user's token balance (admin only) and
	// returns the updated record.
	UpdateTokenBalance(ctx context.Context, accessToken string, userID int64, tokens int) (*models.User, error)
}
