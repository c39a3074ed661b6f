package game

import (
	"context"
	"sync"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Player supplies moves for one colour.
//
// GetMove blocks until a move is available or ctx is done. fen is the
// current position, for players that compute their move from it.
type Player interface {
	Colour() chess.Colour
	GetMove(ctx context.Context, fen string) (chess.Move, error)
}

// HumanPlayer waits for moves pushed by a user interface. At most one move
// can be pending at a time.
type HumanPlayer struct {
	colour chess.Colour
	moves  chan chess.Move
	done   chan struct{}
	once   sync.Once
}

// NewHumanPlayer creates a player for colour with an empty move slot.
func NewHumanPlayer(colour chess.Colour) *HumanPlayer {
	return &HumanPlayer{
		colour: colour,
		moves:  make(chan chess.Move, 1),
		done:   make(chan struct{}),
	}
}

// Colour returns the colour this player controls.
func (h *HumanPlayer) Colour() chess.Colour { return h.colour }

// GetMove waits for the next submitted move.
func (h *HumanPlayer) GetMove(ctx context.Context, _ string) (chess.Move, error) {
	select {
	case m := <-h.moves:
		return m, nil
	case <-h.done:
		return chess.Move{}, errors.Wrapf(errors.ErrAborted, "%s player closed", h.colour)
	case <-ctx.Done():
		return chess.Move{}, ctx.Err()
	}
}

// Submit hands a move to a waiting GetMove. It fails with
// errors.ErrMovePending when an earlier move has not been taken yet.
func (h *HumanPlayer) Submit(m chess.Move) error {
	select {
	case <-h.done:
		return errors.Wrapf(errors.ErrAborted, "%s player closed", h.colour)
	default:
	}
	select {
	case h.moves <- m:
		return nil
	default:
		return errors.ErrMovePending
	}
}

// Close aborts any current and future GetMove. It is safe to call more
// than once.
func (h *HumanPlayer) Close() {
	h.once.Do(func() { close(h.done) })
}

// ScriptedPlayer replays a fixed list of moves. When the list runs out
// GetMove fails with errors.ErrAborted.
type ScriptedPlayer struct {
	colour chess.Colour
	moves  []chess.Move
	next   int
}

// NewScriptedPlayer creates a player that returns moves in order.
func NewScriptedPlayer(colour chess.Colour, moves ...chess.Move) *ScriptedPlayer {
	return &ScriptedPlayer{colour: colour, moves: moves}
}

// Colour returns the colour this player controls.
func (s *ScriptedPlayer) Colour() chess.Colour { return s.colour }

// GetMove returns the next scripted move.
func (s *ScriptedPlayer) GetMove(ctx context.Context, _ string) (chess.Move, error) {
	if err := ctx.Err(); err != nil {
		return chess.Move{}, err
	}
	if s.next >= len(s.moves) {
		return chess.Move{}, errors.Wrapf(errors.ErrAborted, "%s script exhausted", s.colour)
	}
	m := s.moves[s.next]
	s.next++
	return m, nil
}
