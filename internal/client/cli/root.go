package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// getStatus renders the prompt suffix: empty when signed out, the account
// email and session expiry hint when signed in.
func (a *App) getStatus() string {
	snap := a.sessions.Snapshot()
	if snap.Loading {
		return "(loading)"
	}
	if snap.User == nil {
		return ""
	}

	s := snap.User.Email
	if _, exp, ok := a.sessions.TokenInfo(); ok && !exp.IsZero() {
		s = fmt.Sprintf("%s exp %s", s, exp.Local().Format("15:04"))
	}
	return "(" + s + ")"
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to FlashDeck CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
