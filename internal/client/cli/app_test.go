package cli

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dkolesov/flashdeck/internal/client/config"
	"github.com/dkolesov/flashdeck/internal/logging"
)

func TestNewApp(t *testing.T) {
	silencePrintln(t)

	cfg := &config.Config{
		ServerEndpointAddr: "http://127.0.0.1:8000",
		RequestTimeout:     time.Second,
		DataDir:            t.TempDir(),
		LogLevel:           "error",
	}
	log := logging.NewConsoleLogger(io.Discard, "error")

	a, err := NewApp(cfg, log)
	require.NoError(t, err)
	require.NotNil(t, a)
	require.False(t, a.isLoggedIn())
}
