package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dkolesov/flashdeck/internal/client/services"
	"github.com/dkolesov/flashdeck/internal/client/validation"
	"github.com/dkolesov/flashdeck/internal/timex"
)

// Verify lets the user finish activating an account outside the login or
// registration handoff. A fresh code is dispatched first, since the one from
// the original registration may long be stale.
func (a *App) Verify(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := validation.Email(email); err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.api.ResendOTP(ctx, email); err != nil {
		printlnFn("Could not send a code:", err.Error())
		return err
	}

	return a.verifyScreen(ctx, email)
}

// verifyScreen runs the account-activation challenge for email. On success
// the issued access token logs the user straight in.
func (a *App) verifyScreen(ctx context.Context, email string) error {
	ch := services.NewOTPChallenge(a.api, services.PurposeAccount, a.log)
	ch.Issue(ctx, email)
	defer ch.Teardown()

	var token string
	ok, err := a.collectCode(ctx, ch, func(ctx context.Context) error {
		t, err := ch.Submit(ctx)
		if err != nil {
			return err
		}
		token = t
		return nil
	})
	if err != nil || !ok {
		return err
	}

	if err := a.sessions.Login(ctx, token, email); err != nil {
		a.log.Error(ctx, "storing verified session", "error", err)
		printlnFn("Verification succeeded but the session could not be stored:", err.Error())
		return err
	}

	printlnFn("Email verified, you are now logged in.")
	return nil
}

// collectCode reads code-entry input until a submission succeeds or the user
// cancels. submit performs the stage-specific submission using the digits
// held by ch. The returned bool is false when the user cancelled.
func (a *App) collectCode(ctx context.Context, ch *services.OTPChallenge, submit func(context.Context) error) (bool, error) {
	for {
		hint := ""
		if !ch.ResendAllowed() {
			hint = fmt.Sprintf(" (resend in %s)", timex.FormatMMSS(ch.Remaining()))
		}
		prompt := fmt.Sprintf("Enter the %d-digit code sent to %s, 'resend'%s or 'cancel'",
			validation.CodeLength, ch.Email(), hint)

		line, err := getSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return false, err
		}

		switch line {
		case "cancel":
			return false, nil
		case "resend":
			if err := ch.Resend(ctx); err != nil {
				printlnFn(err.Error())
				continue
			}
			printlnFn("A new code is on its way.")
			continue
		}

		ch.Paste(line)
		if !ch.Complete() {
			printlnFn(fmt.Sprintf("The code must be %d digits.", validation.CodeLength))
			continue
		}

		if err := submit(ctx); err != nil {
			printlnFn(err.Error())
			if ch.RequiresReissue() {
				printlnFn("Type 'resend' to request a new code.")
			}
			continue
		}
		return true, nil
	}
}
