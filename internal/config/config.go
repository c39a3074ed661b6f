// Package config provides configuration for the chess rules engine, its
// command line tools and its game server.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	// Per-concern settings
	Game   *GameConfig
	Bot    *BotConfig
	Server *ServerConfig

	// Workers is the number of parallel replay workers (0 = one per CPU).
	Workers int

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Game:       NewGameConfig(),
		Bot:        NewBotConfig(),
		Server:     NewServerConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Logf writes a log line when the verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c == nil || c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}

// Validate checks the configuration for values no component can use.
func (c *Config) Validate() error {
	switch {
	case c.Verbosity < 0 || c.Verbosity > 2:
		return errors.Wrapf(errors.ErrInvalidConfig, "verbosity %d out of range 0-2", c.Verbosity)
	case c.Workers < 0:
		return errors.Wrapf(errors.ErrInvalidConfig, "workers %d is negative", c.Workers)
	case c.Game == nil || c.Bot == nil || c.Server == nil:
		return errors.Wrap(errors.ErrInvalidConfig, "missing section")
	}
	if err := c.Game.validate(); err != nil {
		return err
	}
	if err := c.Bot.validate(); err != nil {
		return err
	}
	return c.Server.validate()
}

// positive rejects negative durations.
func positive(name string, d time.Duration) error {
	if d < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "%s %v is negative", name, d)
	}
	return nil
}
