// Package game runs a chess game between two players: turn order, move
// validation, end-of-game detection and event notification.
package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/history"
)

// Result classifies how a game ended.
type Result int

const (
	Ongoing Result = iota
	Checkmated
	Stalemated
	DrawnByRepetition
	DrawnByFiftyMoves
)

// String returns the string representation of a result.
func (r Result) String() string {
	switch r {
	case Checkmated:
		return "checkmate"
	case Stalemated:
		return "stalemate"
	case DrawnByRepetition:
		return "threefold repetition"
	case DrawnByFiftyMoves:
		return "fifty-move rule"
	}
	return "ongoing"
}

// Outcome is the final state of a game. Winner is only meaningful after
// checkmate.
type Outcome struct {
	Result Result
	Winner chess.Colour
}

// Over returns true once the game has ended.
func (o Outcome) Over() bool { return o.Result != Ongoing }

// Score returns the game result in PGN form.
func (o Outcome) Score() string {
	switch o.Result {
	case Ongoing:
		return "*"
	case Checkmated:
		if o.Winner == chess.White {
			return "1-0"
		}
		return "0-1"
	}
	return "1/2-1/2"
}

// Game owns a board and drives turns between two players. All board
// access happens on the goroutine running Play; other goroutines interact
// through players, Promote and Close.
type Game struct {
	cfg     *config.Config
	board   *chess.Board
	players [2]Player
	active  chess.Colour

	history       *history.PositionHistory
	halfmoveClock int
	moves         []chess.Move
	outcome       Outcome

	observers  []Observer
	promotions chan chess.PieceType
	done       chan struct{}
	closeOnce  sync.Once

	promotionMu      sync.Mutex
	pendingPromotion bool // Between the Promotion event and the end of the wait
}

// New creates a game in the initial position. A nil cfg uses defaults.
func New(cfg *config.Config, white, black Player) (*Game, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if white == nil || black == nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "both players are required")
	}
	if white.Colour() != chess.White || black.Colour() != chess.Black {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "players do not match their colours")
	}
	return &Game{
		cfg:        cfg,
		board:      engine.NewInitialBoard(),
		players:    [2]Player{white, black},
		active:     chess.White,
		history:    history.NewPositionHistory(),
		promotions: make(chan chess.PieceType, 1),
		done:       make(chan struct{}),
	}, nil
}

// LoadFEN replaces the position. The side to move and the halfmove clock
// come from the FEN; the repetition history starts afresh. The game is
// unchanged when the FEN is invalid.
func (g *Game) LoadFEN(fen string) error {
	board, setup, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return err
	}
	g.board = board
	g.active = setup.ToMove
	g.halfmoveClock = setup.HalfmoveClock
	g.history.Reset()
	g.moves = nil
	g.outcome = Outcome{}
	return nil
}

// Subscribe registers an observer. It must be called before Play.
func (g *Game) Subscribe(o Observer) {
	g.observers = append(g.observers, o)
}

// Board returns the game's board.
func (g *Game) Board() *chess.Board { return g.board }

// Active returns the colour to move.
func (g *Game) Active() chess.Colour { return g.active }

// HalfmoveClock returns the number of half-moves since the last pawn move
// or capture.
func (g *Game) HalfmoveClock() int { return g.halfmoveClock }

// Outcome returns the result so far.
func (g *Game) Outcome() Outcome { return g.outcome }

// Moves returns the moves played, with promotion choices filled in.
func (g *Game) Moves() []chess.Move {
	out := make([]chess.Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// Repetitions returns how often each simplified position has occurred.
func (g *Game) Repetitions() map[string]int { return g.history.Snapshot() }

// MostRepeated returns the position seen most often and its count.
func (g *Game) MostRepeated() (string, int) { return g.history.MostRepeated() }

// FEN returns the current position.
func (g *Game) FEN() string {
	return engine.BoardToFEN(g.board, g.active, g.halfmoveClock)
}

// SimplifiedFEN returns the four-field position key used for repetition.
func (g *Game) SimplifiedFEN() string {
	return engine.SimplifiedFEN(g.board, g.active)
}

// LegalMoves returns the legal moves of the side to move.
func (g *Game) LegalMoves() []chess.Move {
	return engine.LegalMoves(g.board, g.active)
}

// Play runs turns until the game ends, a player fails or ctx is done.
// Player failures and cancellation are reported as errors wrapping
// errors.ErrAborted; the game can be resumed with another call to Play.
func (g *Game) Play(ctx context.Context) (Outcome, error) {
	if g.outcome.Over() {
		return g.outcome, errors.ErrGameOver
	}
	g.emit(SoundCue{Name: SoundGameStart})
	for {
		if err := ctx.Err(); err != nil {
			return g.outcome, aborted(err)
		}
		if g.beginTurn() {
			g.cfg.Logf(1, "Game over after %d plies: %s (%s)\n", len(g.moves), g.outcome.Result, g.outcome.Score())
			return g.outcome, nil
		}
		if err := g.playTurn(ctx); err != nil {
			return g.outcome, err
		}
	}
}

// beginTurn announces the side to move and checks every end condition in
// order. It returns true when the game is over.
func (g *Game) beginTurn() bool {
	colour := g.active
	g.emit(ActivePlayerChanged{Colour: colour})

	if engine.CannotMoveWithoutMate(g.board, colour) {
		g.emit(SoundCue{Name: SoundGameEnd})
		if engine.IsCheck(g.board, colour) {
			g.outcome = Outcome{Result: Checkmated, Winner: colour.Opposite()}
			g.emit(Checkmate{Winner: colour.Opposite()})
		} else {
			g.outcome = Outcome{Result: Stalemated}
			g.emit(Stalemate{})
		}
		return true
	}
	if engine.IsCheck(g.board, colour) {
		g.emit(Check{Colour: colour})
	}
	key := g.SimplifiedFEN()
	g.history.Record(key)
	if g.history.Reached(key, g.cfg.Game.RepetitionLimit) {
		g.emit(SoundCue{Name: SoundGameEnd})
		g.outcome = Outcome{Result: DrawnByRepetition}
		g.emit(DrawByRepetition{Reason: DrawnByRepetition.String()})
		return true
	}
	if g.halfmoveClock >= g.cfg.Game.FiftyMoveLimit {
		g.emit(SoundCue{Name: SoundGameEnd})
		g.outcome = Outcome{Result: DrawnByFiftyMoves}
		g.emit(DrawByFiftyMoves{Reason: DrawnByFiftyMoves.String()})
		return true
	}
	return false
}

// playTurn asks the active player for moves until one is accepted.
func (g *Game) playTurn(ctx context.Context) error {
	player := g.players[g.active]
	for {
		moveCtx, cancel := withTimeout(ctx, g.cfg.Game.MoveTimeout)
		m, err := player.GetMove(moveCtx, g.FEN())
		cancel()
		if err != nil {
			return aborted(errors.Wrapf(err, "waiting for %s", g.active))
		}

		err = g.SetMove(ctx, m)
		if err == nil {
			g.active = g.active.Opposite()
			return nil
		}
		if errors.Is(err, errors.ErrPromotionAbandoned) {
			return err
		}
		g.cfg.Logf(2, "%s: %v\n", g.active, err)
	}
}

// SetMove validates and plays m for the side to move. It fails without
// touching the board, after an "illegal" sound cue, when the origin is
// empty, the piece belongs to the other side, or the destination is not a
// legal target. The turn does not pass; Play does that.
//
// A pawn reaching the last rank waits for Promote unless m.Promotion is
// set. If that wait ends without a piece the move is rolled back and an
// error wrapping errors.ErrPromotionAbandoned is returned.
func (g *Game) SetMove(ctx context.Context, m chess.Move) error {
	if g.outcome.Over() {
		return errors.ErrGameOver
	}
	if err := g.validate(m); err != nil {
		g.emit(SoundCue{Name: SoundIllegal})
		return &errors.MoveError{Err: err, Ply: len(g.moves) + 1, Move: m.String()}
	}

	b := g.board
	piece := b.PieceAt(m.From)
	captured := b.PieceAt(m.To) != nil
	rookLeg, castle := engine.CastlingRookMove(b, m)
	victim, enPassant := engine.EnPassantVictim(b, m)
	promotion := engine.IsPromotion(b, m)
	state := b.SaveState()
	clock := g.halfmoveClock

	if err := engine.ApplyMove(b, m, false); err != nil {
		g.emit(SoundCue{Name: SoundIllegal})
		return &errors.MoveError{Err: err, Ply: len(g.moves) + 1, Move: m.String()}
	}
	if castle {
		if err := engine.ApplyMove(b, rookLeg, true); err != nil {
			b.RestoreState(state)
			g.emit(SoundCue{Name: SoundIllegal})
			return &errors.MoveError{Err: err, Ply: len(g.moves) + 1, Move: m.String()}
		}
	}
	if enPassant {
		b.Remove(victim)
	}

	if piece.Type() == chess.Pawn || captured || enPassant {
		g.halfmoveClock = 0
	} else {
		g.halfmoveClock++
	}

	if promotion {
		g.emit(SoundCue{Name: SoundPromote})
		g.emit(BoardUpdated{})
		if m.Promotion == chess.NoPieceType {
			g.setPromotionPending(true)
		}
		g.emit(Promotion{Colour: piece.Colour(), From: m.From, To: m.To})
		kind, err := g.awaitPromotion(ctx, m.Promotion)
		if err == nil {
			err = engine.Promote(b, m.To, kind)
		}
		if err != nil {
			b.RestoreState(state)
			g.halfmoveClock = clock
			g.emit(BoardUpdated{})
			return &errors.MoveError{
				Err:  fmt.Errorf("%w: %w", errors.ErrPromotionAbandoned, err),
				Ply:  len(g.moves) + 1,
				Move: m.String(),
			}
		}
		m.Promotion = kind
	} else {
		m.Promotion = chess.NoPieceType
		g.emit(SoundCue{Name: g.moveSound(piece.Colour(), castle, captured || enPassant)})
	}

	g.moves = append(g.moves, m)
	g.cfg.Logf(2, "%d. %s %s\n", len(g.moves), piece.Colour(), m)
	g.emit(BoardUpdated{})
	return nil
}

// validate applies the checks of SetMove in order and returns the first
// failure.
func (g *Game) validate(m chess.Move) error {
	p := g.board.PieceAt(m.From)
	switch {
	case p == nil:
		return errors.ErrNoPiece
	case p.Colour() != g.active:
		return errors.ErrWrongTurn
	case !engine.IsLegal(g.board, m):
		return errors.ErrIllegalMove
	}
	if target := g.board.PieceAt(m.To); target != nil && target.Colour() == p.Colour() {
		return errors.ErrIllegalMove
	}
	if engine.IsPromotion(g.board, m) && m.Promotion != chess.NoPieceType && !m.Promotion.IsPromotionTarget() {
		return errors.Wrapf(errors.ErrIllegalMove, "cannot promote to %s", m.Promotion)
	}
	return nil
}

// moveSound picks the single cue describing a completed non-promotion move.
func (g *Game) moveSound(mover chess.Colour, castle, capture bool) string {
	switch {
	case engine.IsCheck(g.board, mover.Opposite()):
		return SoundCheck
	case castle:
		return SoundCastle
	case capture:
		return SoundCapture
	}
	return SoundMove
}

// Promote supplies the piece for a pending promotion. It may be called
// from any goroutine, including an observer handling the Promotion event.
// Outside a promotion wait it fails with ErrNoPromotionPending.
func (g *Game) Promote(kind chess.PieceType) error {
	if !kind.IsPromotionTarget() {
		return errors.Wrapf(errors.ErrIllegalMove, "cannot promote to %s", kind)
	}
	select {
	case <-g.done:
		return errors.Wrap(errors.ErrAborted, "game closed")
	default:
	}

	g.promotionMu.Lock()
	defer g.promotionMu.Unlock()
	if !g.pendingPromotion {
		return errors.ErrNoPromotionPending
	}
	select {
	case g.promotions <- kind:
		return nil
	default:
		return errors.ErrMovePending
	}
}

// PromotionPending reports whether a promotion is waiting for Promote.
func (g *Game) PromotionPending() bool {
	g.promotionMu.Lock()
	defer g.promotionMu.Unlock()
	return g.pendingPromotion
}

// setPromotionPending opens or closes the promotion window. Closing it
// discards a choice that arrived too late to be read.
func (g *Game) setPromotionPending(pending bool) {
	g.promotionMu.Lock()
	defer g.promotionMu.Unlock()
	g.pendingPromotion = pending
	if !pending {
		select {
		case <-g.promotions:
		default:
		}
	}
}

// awaitPromotion returns preset when the move carried a choice, otherwise
// it waits for Promote.
func (g *Game) awaitPromotion(ctx context.Context, preset chess.PieceType) (chess.PieceType, error) {
	if preset != chess.NoPieceType {
		return preset, nil
	}
	defer g.setPromotionPending(false)
	ctx, cancel := withTimeout(ctx, g.cfg.Game.PromotionTimeout)
	defer cancel()
	select {
	case kind := <-g.promotions:
		return kind, nil
	case <-g.done:
		return chess.NoPieceType, errors.Wrap(errors.ErrAborted, "game closed")
	case <-ctx.Done():
		return chess.NoPieceType, ctx.Err()
	}
}

// Close aborts a pending promotion wait and rejects later Promote calls.
// Players are closed separately.
func (g *Game) Close() {
	g.closeOnce.Do(func() { close(g.done) })
}

func (g *Game) emit(e Event) {
	for _, o := range g.observers {
		o(e)
	}
}

// withTimeout derives a context bounded by d; zero means no bound.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// aborted makes sure err matches errors.ErrAborted.
func aborted(err error) error {
	if errors.Is(err, errors.ErrAborted) {
		return err
	}
	return fmt.Errorf("%w: %w", errors.ErrAborted, err)
}
