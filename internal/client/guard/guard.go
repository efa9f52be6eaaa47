// Package guard centralizes route-access decisions. Resolve is a pure
// function of the session snapshot and the requested path; it is re-evaluated
// on every navigation and every session change, and has no side effects.
package guard

import (
	"strconv"
	"strings"

	"github.com/dkolesov/flashdeck/internal/client/models"
)

// Decision is the outcome of a navigation request.
type Decision int

const (
	// Defer means the initial session refresh has not resolved yet; the
	// caller must wait rather than treat the interval as signed-out.
	Defer Decision = iota
	// Allow admits the requested path.
	Allow
	// RedirectLogin sends a signed-out caller to the login surface.
	RedirectLogin
	// NotFound rejects a path that does not exist for this session.
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Defer:
		return "defer"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case NotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Paths of the signed-out surface.
const (
	PathLogin        = "/login"
	PathRegister     = "/register"
	PathVerify       = "/verify"
	PathResetRequest = "/reset-password"
	PathResetVerify  = "/reset-password/verify"
	PathResetConfirm = "/reset-password/confirm"
)

// Paths of the signed-in surface.
const (
	PathRoot       = "/"
	PathDashboard  = "/dashboard"
	PathTokens     = "/tokens"
	PathAdmin      = "/admin"
	PathFlashcards = "/flashcards/"
)

var unauthenticatedPaths = map[string]struct{}{
	PathLogin:        {},
	PathRegister:     {},
	PathVerify:       {},
	PathResetRequest: {},
	PathResetVerify:  {},
	PathResetConfirm: {},
}

// Resolve decides whether the session may visit path.
//
// A loading session defers every decision. A signed-out session reaches only
// the unauthenticated flow; everything else resolves to the login surface. A
// signed-in session reaches the main screens, document card sets it actually
// owns, and the admin screen when the role permits; unknown paths are not
// found rather than redirected.
func Resolve(session models.Session, path string) Decision {
	if session.Loading {
		return Defer
	}

	if session.User == nil {
		if _, ok := unauthenticatedPaths[path]; ok {
			return Allow
		}
		return RedirectLogin
	}

	switch path {
	case PathRoot, PathDashboard, PathTokens:
		return Allow
	case PathAdmin:
		if session.User.Role == models.RoleAdmin {
			return Allow
		}
		return NotFound
	}

	if raw, ok := strings.CutPrefix(path, PathFlashcards); ok && raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return NotFound
		}
		if _, ok := session.User.Document(id); ok {
			return Allow
		}
		return NotFound
	}

	return NotFound
}
