package server

import (
	"encoding/json"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
)

// Client message types.
const (
	MessageTypeMove    = "move"
	MessageTypePromote = "promote"
)

// Server-only message types. Game events use their own Type names.
const (
	MessageTypeState    = "state"
	MessageTypeGameOver = "game-over"
	MessageTypeError    = "error"
)

// Message is a websocket frame in either direction.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// outbound is a message waiting to be written to a client.
type outbound struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// CreateRequest is the body of POST /api/games.
type CreateRequest struct {
	FEN string      `json:"fen"`
	Bot *BotRequest `json:"bot"`
}

// BotRequest puts the remote engine in charge of one side.
type BotRequest struct {
	Colour string `json:"colour"`
	Depth  int    `json:"depth"`
}

// MoveRequest is a move in coordinate form.
type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// Move converts the request to a chess.Move.
func (r MoveRequest) Move() (chess.Move, error) {
	from, err := chess.ParseSquare(r.From)
	if err != nil {
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "from %q", r.From)
	}
	to, err := chess.ParseSquare(r.To)
	if err != nil {
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "to %q", r.To)
	}
	m := chess.NewMove(from, to)
	if r.Promotion != "" {
		kind, err := parsePiece(r.Promotion)
		if err != nil {
			return chess.Move{}, err
		}
		m.Promotion = kind
	}
	return m, nil
}

// PromoteRequest names the piece for a pending promotion.
type PromoteRequest struct {
	Piece string `json:"piece"`
}

// parsePiece accepts a piece letter or a piece name.
func parsePiece(s string) (chess.PieceType, error) {
	var kind chess.PieceType
	switch strings.ToLower(s) {
	case "q", "queen":
		kind = chess.Queen
	case "r", "rook":
		kind = chess.Rook
	case "b", "bishop":
		kind = chess.Bishop
	case "n", "knight":
		kind = chess.Knight
	default:
		return chess.NoPieceType, errors.Wrapf(errors.ErrIllegalMove, "cannot promote to %q", s)
	}
	return kind, nil
}

// PromotionState describes a promotion waiting for a piece.
type PromotionState struct {
	Colour string `json:"colour"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// State is a snapshot of a session, safe to hand to any goroutine.
type State struct {
	ID            string          `json:"id"`
	FEN           string          `json:"fen"`
	Active        string          `json:"active"`
	Status        string          `json:"status"`
	Result        string          `json:"result"`
	Reason        string          `json:"reason,omitempty"`
	Moves         []string        `json:"moves"`
	LegalMoves    []string        `json:"legalMoves"`
	HalfmoveClock int             `json:"halfmoveClock"`
	Checkers      []string        `json:"checkers,omitempty"` // Squares giving check to the side to move
	Promotion     *PromotionState `json:"promotion,omitempty"`
	Over          bool            `json:"over"`
	Error         string          `json:"error,omitempty"`
}

// eventPayload renders a game event for the wire.
func eventPayload(e game.Event) interface{} {
	switch ev := e.(type) {
	case game.Check:
		return map[string]string{"colour": colourName(ev.Colour)}
	case game.Checkmate:
		return map[string]string{"winner": colourName(ev.Winner)}
	case game.DrawByRepetition:
		return map[string]string{"reason": ev.Reason}
	case game.DrawByFiftyMoves:
		return map[string]string{"reason": ev.Reason}
	case game.Promotion:
		return promotionState(ev)
	case game.ActivePlayerChanged:
		return map[string]string{"colour": colourName(ev.Colour)}
	case game.SoundCue:
		return map[string]string{"name": ev.Name}
	}
	return nil
}

func promotionState(p game.Promotion) *PromotionState {
	return &PromotionState{Colour: colourName(p.Colour), From: p.From.String(), To: p.To.String()}
}

func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}
