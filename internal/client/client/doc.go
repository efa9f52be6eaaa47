// Package client contains client-side building blocks for the FlashDeck CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the FlashDeck authority: identity lookup, login/registration, OTP
//     verification and resend, the password-reset request/verify/confirm
//     trio, and the admin token-balance operations.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that attaches
//     bearer credentials and a correlation id to each request, surfaces the
//     authority's error messages, and maps response statuses to sentinel
//     errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     for the CLI, wiring an SQLite database and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotVerified,
// ErrArtifactExpired. The authority's own message, when present, is carried
// in the error text.
//
// Concurrency & Contexts
//
// Implementations should be safe for concurrent use unless stated otherwise.
// All operations accept context.Context and must honor cancellation/timeouts.
package client
