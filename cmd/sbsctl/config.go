package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting; flags override the environment.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Backend  string `env:"BACKEND"   envDefault:"smbus"`
	Bus      int    `env:"BUS"       envDefault:"1"`
	Address  uint16 `env:"ADDRESS"   envDefault:"11"`
	Retries  uint64 `env:"RETRIES"   envDefault:"3"`

	Charger        string `env:"CHARGER"         envDefault:"sbs"`
	ChargerAddress uint16 `env:"CHARGER_ADDRESS" envDefault:"9"`
	RSNSB          uint32 `env:"RSNSB_UOHM"      envDefault:"10000"`
	RSNSI          uint32 `env:"RSNSI_UOHM"`
	Cells          uint8  `env:"CELLS"`

	OSIndex int `env:"OS_INDEX"`

	Listen  string        `env:"LISTEN"  envDefault:":9101"`
	Name    string        `env:"NAME"    envDefault:"battery0"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"2s"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "SBSCTL_"}); err != nil {
		return cfg, fmt.Errorf("could not parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case "smbus", "sim", "os":
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	switch c.Charger {
	case "sbs", "ltc4015", "none":
	default:
		return fmt.Errorf("unknown charger %q", c.Charger)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
