package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithMoveTimeout bounds the wait for each move.
func (b *ConfigBuilder) WithMoveTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Game.MoveTimeout = d
	return b
}

// WithPromotionTimeout bounds the wait for a promotion piece.
func (b *ConfigBuilder) WithPromotionTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Game.PromotionTimeout = d
	return b
}

// WithBot sets the remote move service and search depth.
func (b *ConfigBuilder) WithBot(baseURL string, depth int) *ConfigBuilder {
	b.cfg.Bot.BaseURL = baseURL
	b.cfg.Bot.Depth = depth
	return b
}

// WithBotTimeout bounds one request to the move service.
func (b *ConfigBuilder) WithBotTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Bot.Timeout = d
	return b
}

// WithServerAddr sets the listen address.
func (b *ConfigBuilder) WithServerAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithAllowOrigins sets the CORS origin list.
func (b *ConfigBuilder) WithAllowOrigins(origins string) *ConfigBuilder {
	b.cfg.Server.AllowOrigins = origins
	return b
}

// WithWorkers sets the number of replay workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
