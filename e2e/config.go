package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_SERVER_URL points at a live chat server websocket endpoint.
	// Leaving it empty skips the end-to-end suite.
	ServerURL    string `envconfig:"E2E_SERVER_URL"`
	SessionToken string `envconfig:"E2E_SESSION_TOKEN"`
	// E2E_SYNC_TIMEOUT bounds how long the suite waits for the bootstrap
	// frame to land in the projection.
	SyncTimeout string `envconfig:"E2E_SYNC_TIMEOUT" default:"10s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
