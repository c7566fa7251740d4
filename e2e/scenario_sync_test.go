package e2e

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"chat-sync/reconcile"
	"chat-sync/transport"
)

// TestInitialSync connects to a live server and waits for the bootstrap
// frame to populate the projection. Opt-in: set E2E_SERVER_URL.
func TestInitialSync(t *testing.T) {
	req := require.New(t)
	cfg, err := LoadConfig()
	req.NoError(err)
	if cfg.ServerURL == "" {
		t.Skip("E2E_SERVER_URL not set, skipping end-to-end suite")
	}

	timeout, err := time.ParseDuration(cfg.SyncTimeout)
	req.NoError(err)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	engine := reconcile.NewEngine(log)
	client := transport.NewClient(cfg.ServerURL, cfg.SessionToken, engine, log, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	go func() {
		_ = client.Run(ctx)
	}()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if len(engine.Snapshot().Rooms) > 0 {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("no rooms synced from %s within %s", cfg.ServerURL, timeout)
}
