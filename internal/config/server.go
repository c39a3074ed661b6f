package config

import (
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ServerConfig holds settings for the game server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// AllowOrigins is the CORS origin list, comma separated.
	AllowOrigins string
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:         ":8080",
		AllowOrigins: "*",
	}
}

func (s *ServerConfig) validate() error {
	if !strings.Contains(s.Addr, ":") {
		return errors.Wrapf(errors.ErrInvalidConfig, "server address %q has no port", s.Addr)
	}
	return nil
}
