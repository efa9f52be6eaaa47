package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkolesov/flashdeck/internal/client/client"
	"github.com/dkolesov/flashdeck/internal/client/ephemeral"
	"github.com/dkolesov/flashdeck/internal/client/models"
	"github.com/dkolesov/flashdeck/internal/client/services"
	"github.com/dkolesov/flashdeck/internal/logging"
)

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

// stubTextQueue replaces getSimpleText with a stub popping answers in order.
func stubTextQueue(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		next := answers[0]
		answers = answers[1:]
		return next, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

// stubPasswordQueue replaces getPassword with a stub popping answers in order.
func stubPasswordQueue(t *testing.T, answers ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(answers) == 0 {
			return nil, io.EOF
		}
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

// fakeAPI answers authority calls with configurable results and records the
// last arguments seen.
type fakeAPI struct {
	meUser *models.User
	meErr  error

	loginToken string
	loginErr   error

	registerErr   error
	registerCalls int

	verifyCredential string
	verifyErr        error
	verifyCalls      int

	resendErr error

	requestResetErr error

	confirmErr error

	users     []models.User
	listErr   error
	listCalls int

	updated   *models.User
	updateErr error

	lastEmail    string
	lastPassword string
	lastCode     string
	lastTicket   string
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) Me(_ context.Context, token string) (*models.User, error) {
	return f.meUser, f.meErr
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (string, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.loginToken, f.loginErr
}

func (f *fakeAPI) Register(_ context.Context, email, password string) error {
	f.registerCalls++
	f.lastEmail, f.lastPassword = email, password
	return f.registerErr
}

func (f *fakeAPI) VerifyOTP(_ context.Context, email, code string) (string, error) {
	f.verifyCalls++
	f.lastEmail, f.lastCode = email, code
	return f.verifyCredential, f.verifyErr
}

func (f *fakeAPI) ResendOTP(_ context.Context, email string) error {
	f.lastEmail = email
	return f.resendErr
}

func (f *fakeAPI) RequestReset(_ context.Context, email string) error {
	f.lastEmail = email
	return f.requestResetErr
}

func (f *fakeAPI) VerifyResetOTP(_ context.Context, email, code string) (string, error) {
	f.verifyCalls++
	f.lastEmail, f.lastCode = email, code
	return f.verifyCredential, f.verifyErr
}

func (f *fakeAPI) ConfirmReset(_ context.Context, ticket, newPassword string) error {
	f.lastTicket, f.lastPassword = ticket, newPassword
	return f.confirmErr
}

func (f *fakeAPI) ListUsers(context.Context, string) ([]models.User, error) {
	f.listCalls++
	return f.users, f.listErr
}

func (f *fakeAPI) UpdateTokenBalance(context.Context, string, int64, int) (*models.User, error) {
	return f.updated, f.updateErr
}

// newTestApp wires an App over a fake authority and a throwaway local store.
func newTestApp(t *testing.T, api *fakeAPI) *App {
	t.Helper()
	silencePrintln(t)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	repos, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.DB.Close() })

	return &App{
		log:      log,
		api:      api,
		sessions: services.NewSessionManager(api, repos.DB, repos.Credentials, log),
		reset:    services.NewResetFlow(api, ephemeral.NewStore(), log),
		reader:   bufio.NewReader(strings.NewReader("")),
	}
}
