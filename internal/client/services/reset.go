package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkolesov/flashdeck/internal/client/client"
	"github.com/dkolesov/flashdeck/internal/client/ephemeral"
	"github.com/dkolesov/flashdeck/internal/client/validation"
	"github.com/dkolesov/flashdeck/internal/logging"
)

// ResetStage identifies a step of the password-reset flow.
type ResetStage int

const (
	// StageRequest collects the account email.
	StageRequest ResetStage = iota + 1
	// StageVerify collects the emailed one-time code.
	StageVerify
	// StageConfirm collects the new password.
	StageConfirm
)

const (
	resetEmailKey  = "reset_email"
	resetTicketKey = "reset_ticket"
)

// ErrTicketMissing is returned when the confirm stage runs without a reset
// ticket, e.g. after the artifacts were purged.
var ErrTicketMissing = errors.New("no reset ticket held")

// ResetFlow drives the three-stage password reset: request a code for an
// email, verify it for a single-use ticket, consume the ticket with the new
// password. Stage artifacts live in the ephemeral store so the flow survives
// navigation but never an application restart.
type ResetFlow struct {
	client    client.Client
	store     *ephemeral.Store
	log       logging.Logger
	challenge *OTPChallenge
}

func NewResetFlow(apiClient client.Client, store *ephemeral.Store, log logging.Logger) *ResetFlow {
	return &ResetFlow{client: apiClient, store: store, log: log}
}

// Enter checks whether the requested stage has its prerequisite artifact.
// When it does not, Enter returns the stage to fall back to and a reason for
// the user; otherwise it returns the requested stage unchanged.
func (f *ResetFlow) Enter(stage ResetStage) (ResetStage, string) {
	switch stage {
	case StageVerify:
		if _, ok := f.store.Get(resetEmailKey); !ok {
			return StageRequest, "start by entering your email"
		}
	case StageConfirm:
		if _, ok := f.store.Get(resetTicketKey); !ok {
			return StageRequest, "verification required before choosing a new password"
		}
	}
	return stage, ""
}

// Request asks the authority to email a reset code and arms the verify
// stage. Calling it again restarts the flow for the new address.
func (f *ResetFlow) Request(ctx context.Context, email string) error {
	if err := validation.Email(email); err != nil {
		return err
	}
	if err := f.client.RequestReset(ctx, email); err != nil {
		return err
	}

	f.store.Set(resetEmailKey, email)
	f.store.Delete(resetTicketKey)
	if f.challenge != nil {
		f.challenge.Teardown()
	}
	f.challenge = NewOTPChallenge(f.client, PurposeReset, f.log)
	f.challenge.Issue(ctx, email)
	return nil
}

// Challenge returns the active verify-stage challenge, nil before Request.
func (f *ResetFlow) Challenge() *OTPChallenge {
	return f.challenge
}

// SubmitCode verifies the entered code and stores the issued reset ticket,
// readying the confirm stage.
func (f *ResetFlow) SubmitCode(ctx context.Context) error {
	if f.challenge == nil {
		return fmt.Errorf("%w: no code requested yet", validation.ErrInvalid)
	}
	ticket, err := f.challenge.Submit(ctx)
	if err != nil {
		return err
	}
	f.store.Set(resetTicketKey, ticket)
	return nil
}

// Confirm consumes the reset ticket with the chosen password. An expired
// ticket purges all stage artifacts so the flow restarts cleanly; success
// clears them so nothing leaks into a later session.
func (f *ResetFlow) Confirm(ctx context.Context, password, confirm string) error {
	ticket, ok := f.store.Get(resetTicketKey)
	if !ok {
		return ErrTicketMissing
	}
	if err := validation.NewPassword(password, confirm); err != nil {
		return err
	}

	if err := f.client.ConfirmReset(ctx, ticket, password); err != nil {
		if errors.Is(err, client.ErrArtifactExpired) {
			f.log.Warn(ctx, "reset ticket expired, restarting flow")
			f.purge()
		}
		return err
	}

	f.purge()
	return nil
}

// Teardown stops the verify-stage countdown without touching the stored
// artifacts, so navigating away and back resumes the flow.
func (f *ResetFlow) Teardown() {
	if f.challenge != nil {
		f.challenge.Teardown()
	}
}

func (f *ResetFlow) purge() {
	f.store.Delete(resetEmailKey)
	f.store.Delete(resetTicketKey)
	if f.challenge != nil {
		f.challenge.Teardown()
		f.challenge = nil
	}
}
