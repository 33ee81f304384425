package cli

import (
	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `env:"WARDEN_SERVER" envDefault:"http://localhost:8080"`
	Token     string `env:"WARDEN_TOKEN"`
	Output    string `env:"WARDEN_OUTPUT" envDefault:"text"`
}

// DefaultConfig returns a Config populated from the environment
func DefaultConfig() *Config {
	cfg := &Config{}
	// Parse cannot fail for a struct of plain strings
	_ = env.Parse(cfg)
	return cfg
}
