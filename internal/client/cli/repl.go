package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Verify(ctx context.Context) error
	Reset(ctx context.Context) error
	Whoami(ctx context.Context) error
	Docs(ctx context.Context) error
	Open(ctx context.Context, id string) error
	Tokens(ctx context.Context) error
	Admin(ctx context.Context) error
	SetTokens(ctx context.Context, id, balance string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the FlashDeck CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               — show available commands
//	  - login              — authenticate
//	  - register           — create an account
//	  - verify             — verify an account by one-time code
//	  - reset              — reset a forgotten password
//	  - exit | quit        — leave the program
//
//	Logged in:
//	  - help               — show available commands
//	  - whoami             — show the current account
//	  - docs               — list uploaded documents
//	  - open <id>          — show a document's card set
//	  - tokens             — show the token balance
//	  - admin              — list all accounts (admin)
//	  - settokens <id> <n> — set an account's token balance (admin)
//	  - logout             — log out
//	  - exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fd> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, docs, open <id>, tokens, admin, settokens <id> <n>, logout, exit")
			} else {
				printlnFn("Available commands: login, register, verify, reset, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "docs":
			_ = a.Docs(ctx)

		case "open":
			if len(args) != 1 {
				printlnFn("Usage: open <id>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "tokens":
			_ = a.Tokens(ctx)

		case "admin":
			_ = a.Admin(ctx)

		case "settokens":
			if len(args) != 2 {
				printlnFn("Usage: settokens <id> <balance>")
				continue
			}
			_ = a.SetTokens(ctx, args[0], args[1])

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
