// Package bot provides a Player that asks a remote engine service for the
// best move in the current position.
package bot

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// response is the JSON body returned by the move service.
type response struct {
	Success  bool   `json:"success"`
	BestMove string `json:"bestmove"`
	Data     string `json:"data"`
}

// Player is a game.Player backed by the remote move service.
type Player struct {
	cfg    *config.Config
	colour chess.Colour
}

// New creates a bot playing colour. A nil cfg uses defaults.
func New(cfg *config.Config, colour chess.Colour) *Player {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Player{cfg: cfg, colour: colour}
}

// Colour returns the colour this player controls.
func (p *Player) Colour() chess.Colour { return p.colour }

// GetMove queries the service for fen. A promotion suffix in the reply is
// carried on the returned move.
func (p *Player) GetMove(ctx context.Context, fen string) (chess.Move, error) {
	bestMove, err := p.BestMove(ctx, fen)
	if err != nil {
		return chess.Move{}, err
	}
	m, err := ParseBestMove(bestMove)
	if err != nil {
		return chess.Move{}, err
	}
	p.cfg.Logf(2, "%s bot plays %s\n", p.colour, m)
	return m, nil
}

// BestMove returns the raw "bestmove" field for fen.
func (p *Player) BestMove(ctx context.Context, fen string) (string, error) {
	type result struct {
		resp response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		var resp response
		err := p.fetch(fen, &resp)
		done <- result{resp, err}
	}()

	select {
	case <-ctx.Done():
		return "", errors.Wrapf(errors.ErrEngineUnavailable, "%v", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		if !r.resp.Success {
			return "", errors.Wrapf(errors.ErrEngineUnavailable, "service reported failure: %s", r.resp.Data)
		}
		if r.resp.BestMove == "" {
			return "", errors.Wrap(errors.ErrEngineUnavailable, "no best move in reply")
		}
		return r.resp.BestMove, nil
	}
}

// fetch performs one GET request and decodes the reply into resp.
func (p *Player) fetch(fen string, resp *response) error {
	bot := p.cfg.Bot
	query := url.Values{}
	query.Set("fen", fen)
	query.Set("depth", strconv.Itoa(bot.ClampedDepth()))
	target := bot.BaseURL + "?" + query.Encode()
	p.cfg.Logf(2, "GET %s\n", target)

	agent := fiber.Get(target)
	if bot.Timeout > 0 {
		agent.Timeout(bot.Timeout)
	}
	code, body, errs := agent.Struct(resp)
	if len(errs) > 0 {
		return errors.Wrapf(errors.ErrEngineUnavailable, "%v", errs[0])
	}
	if code != fiber.StatusOK {
		return errors.Wrapf(errors.ErrEngineUnavailable, "HTTP %d: %s", code, strings.TrimSpace(string(body)))
	}
	return nil
}

// Ping reports whether the service answers at all.
func (p *Player) Ping() bool {
	agent := fiber.Get(p.cfg.Bot.BaseURL)
	if p.cfg.Bot.Timeout > 0 {
		agent.Timeout(p.cfg.Bot.Timeout)
	}
	code, _, errs := agent.Bytes()
	return len(errs) == 0 && code == fiber.StatusOK
}

// ParseBestMove extracts the move from a reply such as
// "bestmove e2e4 ponder e7e5". A bare move is accepted too.
func ParseBestMove(field string) (chess.Move, error) {
	fields := strings.Fields(field)
	var raw string
	switch {
	case len(fields) >= 2 && fields[0] == "bestmove":
		raw = fields[1]
	case len(fields) == 1 && fields[0] != "bestmove":
		raw = fields[0]
	default:
		return chess.Move{}, errors.Wrapf(errors.ErrEngineUnavailable, "malformed best move %q", field)
	}
	m, err := ParseUCIMove(raw)
	if err != nil {
		return chess.Move{}, fmt.Errorf("%w: %w", errors.ErrEngineUnavailable, err)
	}
	return m, nil
}

// ParseUCIMove parses a coordinate move of four characters, or five with a
// promotion letter such as "e7e8q".
func ParseUCIMove(s string) (chess.Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "malformed move %q", s)
	}
	from, err := chess.ParseSquare(s[0:2])
	if err != nil {
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "malformed move %q", s)
	}
	to, err := chess.ParseSquare(s[2:4])
	if err != nil {
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "malformed move %q", s)
	}
	m := chess.NewMove(from, to)
	if len(s) == 5 {
		m.Promotion = chess.PieceTypeFromLetter(s[4])
		if !m.Promotion.IsPromotionTarget() {
			return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "bad promotion in %q", s)
		}
	}
	return m, nil
}
