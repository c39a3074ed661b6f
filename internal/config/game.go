package config

import (
	"time"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// GameConfig holds settings for the turn loop.
type GameConfig struct {
	// MoveTimeout bounds each wait for a player's move (0 = wait forever).
	MoveTimeout time.Duration

	// PromotionTimeout bounds the wait for a promotion piece (0 = wait forever).
	PromotionTimeout time.Duration

	// RepetitionLimit is the occurrence count that draws by repetition.
	RepetitionLimit int

	// FiftyMoveLimit is the number of half-moves without a pawn move or
	// capture that draws the game.
	FiftyMoveLimit int
}

// NewGameConfig creates a GameConfig with default values.
func NewGameConfig() *GameConfig {
	return &GameConfig{
		RepetitionLimit: 3,
		FiftyMoveLimit:  50,
	}
}

func (g *GameConfig) validate() error {
	if err := positive("move timeout", g.MoveTimeout); err != nil {
		return err
	}
	if err := positive("promotion timeout", g.PromotionTimeout); err != nil {
		return err
	}
	if g.RepetitionLimit < 2 {
		return errors.Wrapf(errors.ErrInvalidConfig, "repetition limit %d below 2", g.RepetitionLimit)
	}
	if g.FiftyMoveLimit < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "fifty-move limit %d below 1", g.FiftyMoveLimit)
	}
	return nil
}
