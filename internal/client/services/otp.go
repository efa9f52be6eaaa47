package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dkolesov/flashdeck/internal/client/client"
	"github.com/dkolesov/flashdeck/internal/client/validation"
	"github.com/dkolesov/flashdeck/internal/logging"
	"github.com/dkolesov/flashdeck/internal/timex"
)

// Purpose selects which authority endpoints an OTP challenge talks to.
type Purpose int

const (
	// PurposeAccount verifies a new account; success yields an access token.
	PurposeAccount Purpose = iota + 1
	// PurposeReset verifies a password reset; success yields a reset ticket.
	PurposeReset
)

// ChallengeState is the lifecycle of a single OTP challenge.
type ChallengeState int

const (
	StateIdle ChallengeState = iota
	StatePending
	StateVerifying
	StateVerified
	StateFailed
)

func (s ChallengeState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateVerifying:
		return "verifying"
	case StateVerified:
		return "verified"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ChallengeTTLSeconds is the resend lockout: a fresh code must age out
// before another may be requested.
const ChallengeTTLSeconds = 300

// OTPChallenge drives one email-verification round: collecting the digits,
// submitting the complete code, and gating resends behind a countdown.
//
// The code is fixed-length and digit-only; Submit refuses to dispatch
// anything shorter or while a previous submission is still in flight. A
// challenge the authority reported as expired stays unusable until reissued.
type OTPChallenge struct {
	mu        sync.Mutex
	client    client.Client
	log       logging.Logger
	purpose   Purpose
	state     ChallengeState
	email     string
	digits    [validation.CodeLength]rune
	countdown *timex.Countdown
	expired   bool
}

func NewOTPChallenge(apiClient client.Client, purpose Purpose, log logging.Logger) *OTPChallenge {
	return &OTPChallenge{
		client:    apiClient,
		log:       log,
		purpose:   purpose,
		state:     StateIdle,
		countdown: timex.NewCountdown(ChallengeTTLSeconds),
	}
}

// Issue arms the challenge for the given address. The authority has already
// dispatched the code; Issue only readies local state and starts the resend
// countdown.
func (c *OTPChallenge) Issue(ctx context.Context, email string) {
	c.mu.Lock()
	c.email = email
	c.state = StatePending
	c.digits = [validation.CodeLength]rune{}
	c.expired = false
	c.mu.Unlock()
	c.countdown.Reset(ctx)
}

// SetDigit places a single digit at the given position.
func (c *OTPChallenge) SetDigit(pos int, r rune) error {
	if pos < 0 || pos >= validation.CodeLength {
		return fmt.Errorf("%w: position out of range", validation.ErrInvalid)
	}
	if r < '0' || r > '9' {
		return fmt.Errorf("%w: code accepts digits only", validation.ErrInvalid)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.digits[pos] = r
	return nil
}

// ClearDigit empties the slot at the given position.
func (c *OTPChallenge) ClearDigit(pos int) {
	if pos < 0 || pos >= validation.CodeLength {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.digits[pos] = 0
}

// Paste fills the code from arbitrary pasted text: non-digits are dropped,
// the rest is truncated to the code length and placed left-aligned from the
// first slot. It returns the index of the last filled slot, or -1 when the
// input held no digits.
func (c *OTPChallenge) Paste(s string) int {
	var digits []rune
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			if len(digits) == validation.CodeLength {
				break
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.digits = [validation.CodeLength]rune{}
	for i, r := range digits {
		c.digits[i] = r
	}
	return len(digits) - 1
}

// Code returns the digits entered so far.
func (c *OTPChallenge) Code() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codeLocked()
}

func (c *OTPChallenge) codeLocked() string {
	var b strings.Builder
	for _, r := range c.digits {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Complete reports whether every slot is filled.
func (c *OTPChallenge) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.codeLocked()) == validation.CodeLength
}

// Submit dispatches the entered code. On success it returns the credential
// the authority issued for this purpose: an access token for account
// verification, a reset ticket for the reset flow.
//
// A failed attempt leaves the challenge retryable unless the authority
// reported the code expired, in which case only a reissue helps.
func (c *OTPChallenge) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.state == StateVerifying {
		c.mu.Unlock()
		return "", fmt.Errorf("%w: submission already in flight", validation.ErrInvalid)
	}
	if c.state != StatePending && c.state != StateFailed {
		c.mu.Unlock()
		return "", fmt.Errorf("%w: no active challenge", validation.ErrInvalid)
	}
	if c.expired {
		c.mu.Unlock()
		return "", fmt.Errorf("%w: code expired, request a new one", validation.ErrInvalid)
	}
	code := c.codeLocked()
	if err := validation.Code(code); err != nil {
		c.mu.Unlock()
		return "", err
	}
	email := c.email
	c.state = StateVerifying
	c.mu.Unlock()

	var credential string
	var err error
	switch c.purpose {
	case PurposeReset:
		credential, err = c.client.VerifyResetOTP(ctx, email, code)
	default:
		credential, err = c.client.VerifyOTP(ctx, email, code)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateFailed
		if errors.Is(err, client.ErrArtifactExpired) {
			c.expired = true
		}
		c.log.Warn(ctx, "code verification failed", "email", email, "error", err)
		return "", err
	}
	c.state = StateVerified
	c.countdown.Stop()
	return credential, nil
}

// Resend requests a fresh code. It refuses while the countdown is still
// running or a submission is in flight; on success the challenge rearms
// with empty digits and a restarted countdown.
func (c *OTPChallenge) Resend(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateVerifying {
		c.mu.Unlock()
		return fmt.Errorf("%w: submission in flight", validation.ErrInvalid)
	}
	email := c.email
	c.mu.Unlock()

	if !c.countdown.Completed() {
		return fmt.Errorf("%w: wait %s before requesting a new code",
			validation.ErrInvalid, timex.FormatMMSS(c.countdown.Remaining()))
	}

	var err error
	if c.purpose == PurposeReset {
		err = c.client.RequestReset(ctx, email)
	} else {
		err = c.client.ResendOTP(ctx, email)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.digits = [validation.CodeLength]rune{}
	c.state = StatePending
	c.expired = false
	c.mu.Unlock()
	c.countdown.Reset(ctx)
	return nil
}

// ResendAllowed reports whether the lockout has elapsed.
func (c *OTPChallenge) ResendAllowed() bool {
	return c.countdown.Completed()
}

// Remaining returns the seconds left on the resend lockout.
func (c *OTPChallenge) Remaining() int {
	return c.countdown.Remaining()
}

// Done exposes the lockout-elapsed signal of the current countdown run.
func (c *OTPChallenge) Done() <-chan struct{} {
	return c.countdown.Done()
}

func (c *OTPChallenge) State() ChallengeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *OTPChallenge) Email() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.email
}

// RequiresReissue reports whether the authority has declared the current
// code expired, making further submissions pointless.
func (c *OTPChallenge) RequiresReissue() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

// Teardown stops the countdown. Call when leaving the verification screen.
func (c *OTPChallenge) Teardown() {
	c.countdown.Stop()
}
