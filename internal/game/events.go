package game

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Event is a state-change notification. The set of events is closed: only
// the types in this file implement it.
type Event interface {
	// Type returns a stable lower-case name, used on the wire.
	Type() string
	isEvent()
}

// Observer receives events synchronously on the game goroutine, in the
// order they are produced. An observer must not touch the board; it may
// fulfil a rendezvous with Game.Promote or HumanPlayer.Submit.
type Observer func(Event)

// Sound cue names.
const (
	SoundGameStart = "game-start"
	SoundGameEnd   = "game-end"
	SoundIllegal   = "illegal"
	SoundCastle    = "castle"
	SoundPromote   = "promote"
	SoundCheck     = "move-check"
	SoundCapture   = "capture"
	SoundMove      = "move-self"
)

// Check is emitted at the start of a turn when the side to move is in
// check but can still move.
type Check struct {
	Colour chess.Colour
}

// Checkmate ends the game.
type Checkmate struct {
	Winner chess.Colour
}

// Stalemate ends the game in a draw.
type Stalemate struct{}

// DrawByRepetition ends the game when a position occurs for the third time.
type DrawByRepetition struct {
	Reason string
}

// DrawByFiftyMoves ends the game after fifty half-moves without a pawn
// move or capture.
type DrawByFiftyMoves struct {
	Reason string
}

// Promotion announces that the pawn moved From reached To and waits for a
// piece choice.
type Promotion struct {
	Colour chess.Colour
	From   chess.Square
	To     chess.Square
}

// BoardUpdated is emitted after every change to the board.
type BoardUpdated struct{}

// ActivePlayerChanged opens every turn.
type ActivePlayerChanged struct {
	Colour chess.Colour
}

// SoundCue names a sound for an audio collaborator.
type SoundCue struct {
	Name string
}

func (Check) Type() string               { return "check" }
func (Checkmate) Type() string           { return "checkmate" }
func (Stalemate) Type() string           { return "stalemate" }
func (DrawByRepetition) Type() string    { return "draw-repetition" }
func (DrawByFiftyMoves) Type() string    { return "draw-fifty-moves" }
func (Promotion) Type() string           { return "promotion" }
func (BoardUpdated) Type() string        { return "board-updated" }
func (ActivePlayerChanged) Type() string { return "active-player" }
func (SoundCue) Type() string            { return "sound" }

func (Check) isEvent()               {}
func (Checkmate) isEvent()           {}
func (Stalemate) isEvent()           {}
func (DrawByRepetition) isEvent()    {}
func (DrawByFiftyMoves) isEvent()    {}
func (Promotion) isEvent()           {}
func (BoardUpdated) isEvent()        {}
func (ActivePlayerChanged) isEvent() {}
func (SoundCue) isEvent()            {}
