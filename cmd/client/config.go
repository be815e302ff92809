package main

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config defines the client-side environment variables. The keepalive
// period must stay comfortably under the relay's CLIENT_TIMEOUT or the
// sweeper will evict a silently-reading user.
type Config struct {
	ServerHost      string        `env:"SERVER_HOST,default=localhost" validate:"required"`
	ServerPort      int           `env:"SERVER_PORT,default=5001" validate:"gte=0,lte=65535"`
	PingInterval    time.Duration `env:"PING_INTERVAL,default=15s" validate:"required,gt=0"`
	ReceiveTimeout  time.Duration `env:"RECEIVE_TIMEOUT,default=1s" validate:"required,gt=0"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"required,gt=0"`
	Colours         bool          `env:"COLOURS,default=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=warn"`
}

// Validate rejects zero or negative durations before any worker starts;
// a non-positive ping interval would otherwise panic the keepalive ticker.
func (c Config) Validate() error {
	return validate.Struct(c)
}
