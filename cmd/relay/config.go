package main

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config defines the relay-side environment variables. The relay binds
// to loopback by default; set RELAY_HOST to 0.0.0.0 for network-wide
// access.
type Config struct {
	Host            string        `env:"RELAY_HOST,default=127.0.0.1" validate:"required"`
	Port            int           `env:"RELAY_PORT,default=5001" validate:"gte=0,lte=65535"`
	ClientTimeout   time.Duration `env:"CLIENT_TIMEOUT,default=30s" validate:"required,gt=0"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL,default=10s" validate:"required,gt=0"`
	ReceiveTimeout  time.Duration `env:"RECEIVE_TIMEOUT,default=1s" validate:"required,gt=0"`
	StatsInterval   time.Duration `env:"STATS_INTERVAL,default=30s" validate:"required,gt=0"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"required,gt=0"`
	RosterDump      bool          `env:"ROSTER_DUMP,default=false"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
}

// Validate enforces the liveness ordering on top of the field rules:
// a well-behaved idle client must never be falsely evicted, so the
// expiry threshold has to exceed the sweep period.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.ClientTimeout <= c.SweepInterval {
		return fmt.Errorf("CLIENT_TIMEOUT (%s) must exceed SWEEP_INTERVAL (%s)",
			c.ClientTimeout, c.SweepInterval)
	}
	return nil
}
