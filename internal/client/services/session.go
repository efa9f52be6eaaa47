// Package services contains the application services of the FlashDeck
// client: the session manager, the one-time-code challenge, and the
// password-reset flow.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dkolesov/flashdeck/internal/client/client"
	"github.com/dkolesov/flashdeck/internal/client/models"
	"github.com/dkolesov/flashdeck/internal/client/repositories/credentials"
	"github.com/dkolesov/flashdeck/internal/common"
	"github.com/dkolesov/flashdeck/internal/dbx"
	"github.com/dkolesov/flashdeck/internal/logging"
)

// SessionManager owns the durable access token and the authenticated user
// profile. It is the only component that mutates session state; everyone
// else receives immutable snapshots via Snapshot or Subscribe.
//
// Contract:
//   - Refresh never fails from the caller's point of view: every rejection
//     or transport problem resolves into the signed-out state.
//   - Login persists the credential, then refreshes; on return either the
//     user reflects the new session or state is fully cleared.
//   - Logout is local-only and always succeeds.
//   - Durable storage and in-memory state never disagree: each operation
//     performs exactly one durable write or clear.
type SessionManager struct {
	mu      sync.Mutex
	client  client.Client
	db      *sql.DB
	creds   credentials.Repository
	log     logging.Logger
	user    *models.User
	token   string
	loading bool
	subs    map[int]chan models.Session
	nextSub int
}

func NewSessionManager(apiClient client.Client, db *sql.DB, creds credentials.Repository, log logging.Logger) *SessionManager {
	return &SessionManager{
		client:  apiClient,
		db:      db,
		creds:   creds,
		log:     log,
		loading: true,
		subs:    make(map[int]chan models.Session),
	}
}

// Snapshot returns the current session. The user is deep-copied; readers
// cannot mutate manager state through it.
func (m *SessionManager) Snapshot() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.Session{User: m.user.Clone(), Loading: m.loading}
}

// Subscribe registers for session-change notifications. The channel holds
// the latest snapshot only; slow consumers never block the manager. The
// returned cancel func must be called when done.
func (m *SessionManager) Subscribe() (<-chan models.Session, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan models.Session, 1)
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
	return ch, cancel
}

// Refresh reconciles the in-memory session with the authority. With no
// stored credential the session resolves to signed-out. With one, the
// identity endpoint decides: success populates the user, anything else
// discards the credential and clears the session. Refresh never reports an
// error; callers read the resulting snapshot.
func (m *SessionManager) Refresh(ctx context.Context) {
	token, err := m.creds.Get(ctx, credentials.KeyAccessToken)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			m.log.Error(ctx, "reading stored credential", "error", err)
		}
		m.setSession(nil, "")
		return
	}

	user, err := m.client.Me(ctx, token)
	if err != nil {
		m.log.Warn(ctx, "session refresh rejected", "error", err)
		m.discardCredential(ctx)
		m.setSession(nil, "")
		return
	}

	m.setSession(user, token)
}

// Login persists the freshly issued access token and refreshes. If the
// authority rejects the token right back, state is fully cleared and
// client.ErrUnauthorized is returned; no partial state survives.
func (m *SessionManager) Login(ctx context.Context, token, email string) error {
	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := credentials.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, credentials.KeyAccessToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, credentials.KeyAccountEmail, email)
	})
	if err != nil {
		return fmt.Errorf("persisting credential: %w", err)
	}

	m.Refresh(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return client.ErrUnauthorized
	}
	return nil
}

// Logout clears the durable credential and the in-memory session. It is a
// local operation: no network round-trip, cannot fail from the caller's
// point of view.
func (m *SessionManager) Logout(ctx context.Context) {
	if err := m.creds.Clear(ctx); err != nil {
		m.log.Error(ctx, "clearing stored credential", "error", err)
	}
	m.setSession(nil, "")
}

// ListUsers fetches all accounts through the authenticated wrapper.
func (m *SessionManager) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := m.do(ctx, func(token string) error {
		var err error
		users, err = m.client.ListUsers(ctx, token)
		return err
	})
	return users, err
}

// UpdateTokenBalance sets a user's token balance and returns the record the
// authority answered with, so callers can reconcile optimistic UI state.
func (m *SessionManager) UpdateTokenBalance(ctx context.Context, userID int64, tokens int) (*models.User, error) {
	var updated *models.User
	err := m.do(ctx, func(token string) error {
		var err error
		updated, err = m.client.UpdateTokenBalance(ctx, token, userID, tokens)
		return err
	})
	return updated, err
}

// TokenInfo returns the subject and expiry of the held access token, parsed
// without signature verification. Display hints only; the authority remains
// the judge of validity.
func (m *SessionManager) TokenInfo() (subject string, expiry time.Time, ok bool) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token == "" {
		return "", time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", time.Time{}, false
	}
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	return claims.Subject, expiry, true
}

// do runs fn with the current access token. An unauthorized answer clears
// the session immediately and locally; transport failures leave it intact.
func (m *SessionManager) do(ctx context.Context, fn func(token string) error) error {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token == "" {
		return client.ErrUnauthorized
	}

	err := fn(token)
	if errors.Is(err, client.ErrUnauthorized) {
		m.log.Warn(ctx, "credential rejected mid-session, signing out")
		m.discardCredential(ctx)
		m.setSession(nil, "")
	}
	return err
}

func (m *SessionManager) discardCredential(ctx context.Context) {
	if err := m.creds.Delete(ctx, credentials.KeyAccessToken); err != nil {
		m.log.Error(ctx, "discarding stored credential", "error", err)
	}
}

func (m *SessionManager) setSession(user *models.User, token string) {
	m.mu.Lock()
	m.user = user
	m.token = token
	m.loading = false
	snap := models.Session{User: m.user.Clone(), Loading: false}
	subs := make([]chan models.Session, 0, len(m.subs))
	for _, ch := range m.subs {
		subs = append(subs, ch)
	}
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
