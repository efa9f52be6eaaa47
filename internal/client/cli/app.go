package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/dkolesov/flashdeck/internal/client/client"
	"github.com/dkolesov/flashdeck/internal/client/config"
	"github.com/dkolesov/flashdeck/internal/client/ephemeral"
	"github.com/dkolesov/flashdeck/internal/client/services"
	"github.com/dkolesov/flashdeck/internal/filex"
	"github.com/dkolesov/flashdeck/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	api      client.Client
	sessions *services.SessionManager
	reset    *services.ResetFlow
	reader   *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	repos, err := client.InitDatabase(ctx, filepath.Join(dataDir, "flashdeck.db"))
	if err != nil {
		log.Error(ctx, "initializing local store", "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)

	sessions := services.NewSessionManager(api, repos.DB, repos.Credentials, log)
	reset := services.NewResetFlow(api, ephemeral.NewStore(), log)

	return &App{
		config:   c,
		log:      log,
		api:      api,
		sessions: sessions,
		reset:    reset,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run resolves the stored session first, so the prompt never treats the
// pre-resolution interval as signed-out, then hands over to the REPL.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.api.Close() }()
	a.sessions.Refresh(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Snapshot().Authenticated()
}
