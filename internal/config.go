package internal

import "time"

type Config struct {
	ServerURL      string        `env:"CHAT_SERVER_URL,required=true"`
	SessionToken   string        `env:"CHAT_SESSION_TOKEN"`
	LogLevel       string        `env:"LOG_LEVEL,required=true"`
	BadgerFilepath string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string        `env:"BLUGE_FILEPATH,required=true"`
	LimitMessages  *int          `env:"LIMIT_MESSAGES"`
	ReconnectDelay time.Duration `env:"RECONNECT_DELAY,default=2s"`
	ReportInterval time.Duration `env:"REPORT_INTERVAL,default=30s"`
	ExpiryWarning  time.Duration `env:"TOKEN_EXPIRY_WARNING,default=1h"`
	DebugPort      int           `env:"DEBUG_PORT,default=8090"`
}
