package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dkolesov/flashdeck/internal/client/client"
	"github.com/dkolesov/flashdeck/internal/client/validation"
	"github.com/dkolesov/flashdeck/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and tries to authenticate.
//
// A rejection carrying the not-verified subtype does not fail outright: the
// user is routed to the verification screen with the entered email, matching
// the account-activation handoff. On success the issued token is handed to
// the session manager, which persists it and resolves the profile.
//
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validation.LoginInput(email, string(password)); err != nil {
		printlnFn(err.Error())
		return err
	}

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrNotVerified) {
			printlnFn("This account has not been verified yet.")
			return a.verifyScreen(ctx, email)
		}
		a.log.Warn(ctx, "login failed", "error", err)
		printlnFn("Login failed:", err.Error())
		return err
	}

	if err := a.sessions.Login(ctx, token, email); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn("Logged in as", email)
	return nil
}

// Register prompts the user for an email and password and attempts to create
// a new account. A rejected registration always surfaces a message and never
// proceeds to verification; on success the authority has already emailed a
// code, so the user continues straight into the verification screen.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Choose a password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validation.RegistrationInput(email, string(password)); err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.api.Register(ctx, email, string(password)); err != nil {
		a.log.Warn(ctx, "registration failed", "error", err)
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Account created, check your inbox for the verification code.")
	return a.verifyScreen(ctx, email)
}

// Logout clears the durable credential and the in-memory session. Local
// only; it never waits on the network.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current account and the session expiry hint.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.sessions.Snapshot()
	if snap.User == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn(fmt.Sprintf("%s (%s), %d tokens", snap.User.Email, snap.User.Role, snap.User.TokenBalance))
	if _, exp, ok := a.sessions.TokenInfo(); ok && !exp.IsZero() {
		printlnFn("Session expires", exp.Local().Format("15:04 on 2 Jan"))
	}
	return nil
}
