package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dkolesov/flashdeck/internal/client/client"
	"github.com/dkolesov/flashdeck/internal/client/services"
	"github.com/dkolesov/flashdeck/internal/common"
)

// Reset walks the user through the three-stage password reset. Every stage
// transition passes through the flow's Enter guard, so a stage whose
// prerequisite artifact is missing falls back with an explanation rather
// than trusting the navigation order.
func (a *App) Reset(ctx context.Context) error {
	defer a.reset.Teardown()

	stage := services.StageRequest
	for {
		entered, reason := a.reset.Enter(stage)
		if reason != "" {
			printlnFn(reason)
		}
		stage = entered

		switch stage {
		case services.StageRequest:
			email, err := getSimpleText(a.reader, "Enter account email (or 'cancel')", os.Stdout)
			if err != nil {
				return err
			}
			if email == "cancel" {
				return nil
			}
			if err := a.reset.Request(ctx, email); err != nil {
				printlnFn(err.Error())
				continue
			}
			printlnFn("A reset code is on its way.")
			stage = services.StageVerify

		case services.StageVerify:
			ok, err := a.collectCode(ctx, a.reset.Challenge(), a.reset.SubmitCode)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			stage = services.StageConfirm

		case services.StageConfirm:
			password, err := getPassword(os.Stdout, "New password")
			if err != nil {
				return err
			}
			confirm, err := getPassword(os.Stdout, "Repeat new password")
			if err != nil {
				common.WipeByteArray(password)
				return err
			}

			err = a.reset.Confirm(ctx, string(password), string(confirm))
			common.WipeByteArray(password)
			common.WipeByteArray(confirm)
			if err != nil {
				printlnFn(err.Error())
				if errors.Is(err, client.ErrArtifactExpired) {
					stage = services.StageRequest
				}
				continue
			}

			printlnFn("Password updated, you can now log in.")
			return nil
		}
	}
}
