package config

import (
	"net/url"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Depth bounds accepted by the remote move service.
const (
	MinBotDepth = 1
	MaxBotDepth = 15
)

// BotConfig holds settings for the remote move-suggestion player.
type BotConfig struct {
	// BaseURL of the move service; queried with ?fen=&depth=.
	BaseURL string

	// Depth is the requested search depth, clamped to MinBotDepth..MaxBotDepth.
	Depth int

	// Timeout bounds one request.
	Timeout time.Duration
}

// NewBotConfig creates a BotConfig with default values.
func NewBotConfig() *BotConfig {
	return &BotConfig{
		BaseURL: "https://stockfish.online/api/s/v2.php",
		Depth:   10,
		Timeout: 10 * time.Second,
	}
}

// ClampedDepth returns Depth limited to the accepted range.
func (b *BotConfig) ClampedDepth() int {
	switch {
	case b.Depth < MinBotDepth:
		return MinBotDepth
	case b.Depth > MaxBotDepth:
		return MaxBotDepth
	}
	return b.Depth
}

func (b *BotConfig) validate() error {
	u, err := url.Parse(b.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "bot base URL %q", b.BaseURL)
	}
	return positive("bot timeout", b.Timeout)
}
