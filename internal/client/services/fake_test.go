package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dkolesov/flashdeck/internal/client/models"
	"github.com/dkolesov/flashdeck/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeClient records the last arguments of every call and answers with
// configurable results.
type fakeClient struct {
	mu sync.Mutex

	meUser *models.User
	meErr  error

	loginToken string
	loginErr   error

	registerErr error

	verifyCredential string
	verifyErr        error
	verifyCalls      int

	resendErr   error
	resendCalls int

	requestResetErr   error
	requestResetCalls int

	confirmErr error

	users   []models.User
	listErr error

	updated   *models.User
	updateErr error

	lastToken    string
	lastEmail    string
	lastCode     string
	lastTicket   string
	lastPassword string
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Me(ctx context.Context, accessToken string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastToken = accessToken
	return f.meUser, f.meErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEmail, f.lastPassword = email, password
	return f.loginToken, f.loginErr
}

func (f *fakeClient) Register(ctx context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEmail, f.lastPassword = email, password
	return f.registerErr
}

func (f *fakeClient) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCalls++
	f.lastEmail, f.lastCode = email, code
	return f.verifyCredential, f.verifyErr
}

func (f *fakeClient) ResendOTP(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resendCalls++
	f.lastEmail = email
	return f.resendErr
}

func (f *fakeClient) RequestReset(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requestResetCalls++
	f.lastEmail = email
	return f.requestResetErr
}

func (f *fakeClient) VerifyResetOTP(ctx context.Context, email, code string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCalls++
	f.lastEmail, f.lastCode = email, code
	return f.verifyCredential, f.verifyErr
}

func (f *fakeClient) ConfirmReset(ctx context.Context, resetTicket, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTicket, f.lastPassword = resetTicket, newPassword
	return f.confirmErr
}

func (f *fakeClient) ListUsers(ctx context.Context, accessToken string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastToken = accessToken
	return f.users, f.listErr
}

func (f *fakeClient) UpdateTokenBalance(ctx context.Context, accessToken string, userID int64, tokens int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastToken = accessToken
	return f.updated, f.updateErr
}

func (f *fakeClient) calls() (verify, resend, requestReset int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verifyCalls, f.resendCalls, f.requestResetCalls
}
