package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dkolesov/flashdeck/internal/client/guard"
)

// admit resolves path for the current session and reports the user-facing
// outcome for anything but an admission.
func (a *App) admit(path string) bool {
	switch guard.Resolve(a.sessions.Snapshot(), path) {
	case guard.Allow:
		return true
	case guard.RedirectLogin:
		printlnFn("Please log in first.")
	default:
		printlnFn("Not found.")
	}
	return false
}

// Docs lists the account's uploaded documents.
func (a *App) Docs(ctx context.Context) error {
	if !a.admit(guard.PathDashboard) {
		return nil
	}

	user := a.sessions.Snapshot().User
	if len(user.Documents) == 0 {
		printlnFn("No documents uploaded yet.")
		return nil
	}
	for _, d := range user.Documents {
		printlnFn(fmt.Sprintf("%4d  %-30s %-10s %3d cards  %s", d.ID, d.Name, d.Status, len(d.Cards), d.CreatedAt))
	}
	return nil
}

// Open shows the card set of one document. The guard admits only documents
// the account actually owns; everything else is not found.
func (a *App) Open(ctx context.Context, id string) error {
	if !a.admit(guard.PathFlashcards + id) {
		return nil
	}

	docID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		printlnFn("Not found.")
		return nil
	}
	doc, _ := a.sessions.Snapshot().User.Document(docID)

	printlnFn(fmt.Sprintf("%s (%s)", doc.Name, doc.Status))
	if len(doc.Cards) == 0 {
		printlnFn("No cards generated yet.")
		return nil
	}
	for i, card := range doc.Cards {
		printlnFn(fmt.Sprintf("%d. Q: %s", i+1, card.Question))
		printlnFn(fmt.Sprintf("   A: %s", card.Answer))
	}
	return nil
}

// Tokens shows the account's token balance.
func (a *App) Tokens(ctx context.Context) error {
	if !a.admit(guard.PathTokens) {
		return nil
	}

	user := a.sessions.Snapshot().User
	printlnFn(fmt.Sprintf("Token balance: %d", user.TokenBalance))
	return nil
}

// Admin lists all accounts. Reachable only with the admin role.
func (a *App) Admin(ctx context.Context) error {
	if !a.admit(guard.PathAdmin) {
		return nil
	}

	users, err := a.sessions.ListUsers(ctx)
	if err != nil {
		printlnFn("Listing users failed:", err.Error())
		return err
	}
	for _, u := range users {
		printlnFn(fmt.Sprintf("%4d  %-30s %-6s %4d tokens  %d documents", u.ID, u.Email, u.Role, u.TokenBalance, len(u.Documents)))
	}
	return nil
}

// SetTokens sets an account's token balance. The printed result always comes
// from the authority's answer, not the requested value.
func (a *App) SetTokens(ctx context.Context, id, balance string) error {
	if !a.admit(guard.PathAdmin) {
		return nil
	}

	userID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		printlnFn("Usage: settokens <id> <balance>")
		return nil
	}
	tokens, err := strconv.Atoi(balance)
	if err != nil || tokens < 0 {
		printlnFn("The balance must be a non-negative number.")
		return nil
	}

	updated, err := a.sessions.UpdateTokenBalance(ctx, userID, tokens)
	if err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("User %d now holds %d tokens.", updated.ID, updated.TokenBalance))
	return nil
}
