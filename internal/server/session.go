package server

import (
	"context"
	"sync"

	"github.com/lgbarn/chess-rules-go/internal/bot"
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
)

// listenerBuffer is the number of messages queued per client before new
// ones are dropped.
const listenerBuffer = 64

// Session is one game played over the server. The game runs on its own
// goroutine; handlers only see State snapshots taken by the observer.
type Session struct {
	ID string

	cfg    *config.Config
	game   *game.Game
	humans [2]*game.HumanPlayer

	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.RWMutex
	state     State
	active    chess.Colour
	over      bool
	listeners map[int]chan outbound
	nextID    int
}

// newSession builds a session from req without starting it.
func newSession(cfg *config.Config, id string, req CreateRequest) (*Session, error) {
	s := &Session{
		ID:        id,
		cfg:       cfg,
		done:      make(chan struct{}),
		listeners: make(map[int]chan outbound),
	}

	botColour, hasBot, err := req.botColour()
	if err != nil {
		return nil, err
	}
	var players [2]game.Player
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if hasBot && colour == botColour {
			players[colour] = bot.New(botConfig(cfg, req.Bot.Depth), colour)
			continue
		}
		h := game.NewHumanPlayer(colour)
		s.humans[colour] = h
		players[colour] = h
	}

	g, err := game.New(cfg, players[chess.White], players[chess.Black])
	if err != nil {
		return nil, err
	}
	if req.FEN != "" {
		if err := g.LoadFEN(req.FEN); err != nil {
			return nil, err
		}
	}
	s.game = g
	g.Subscribe(s.observe)
	s.refresh(nil)
	return s, nil
}

// botColour returns the side requested for the engine, if any.
func (r CreateRequest) botColour() (chess.Colour, bool, error) {
	if r.Bot == nil {
		return chess.White, false, nil
	}
	colour, ok := chess.ParseColour(r.Bot.Colour)
	if !ok {
		return chess.White, false, errors.Wrapf(errors.ErrInvalidConfig, "bot colour %q", r.Bot.Colour)
	}
	return colour, true, nil
}

// botConfig copies cfg with the requested search depth.
func botConfig(cfg *config.Config, depth int) *config.Config {
	if depth == 0 {
		return cfg
	}
	c := *cfg
	b := *cfg.Bot
	b.Depth = depth
	c.Bot = &b
	return &c
}

// start runs the game until it ends or the session is closed.
func (s *Session) start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(ctx)
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	_, err := s.game.Play(ctx)

	s.mu.Lock()
	s.over = true
	s.state = s.snapshot(nil)
	s.state.Over = true
	if err != nil {
		s.state.Error = err.Error()
		s.cfg.Logf(1, "Session %s stopped: %v\n", s.ID, err)
	}
	state := s.state
	s.mu.Unlock()

	s.broadcast(outbound{Type: MessageTypeGameOver, Payload: state})
}

// observe runs on the game goroutine for every event.
func (s *Session) observe(e game.Event) {
	s.broadcast(outbound{Type: e.Type(), Payload: eventPayload(e)})

	switch ev := e.(type) {
	case game.ActivePlayerChanged, game.Checkmate, game.Stalemate,
		game.DrawByRepetition, game.DrawByFiftyMoves:
		s.refresh(nil)
	case game.Promotion:
		if !s.game.PromotionPending() {
			return
		}
		s.refresh(promotionState(ev))
	default:
		return
	}
	s.broadcast(outbound{Type: MessageTypeState, Payload: s.State()})
}

// refresh replaces the snapshot. It must run on the game goroutine or
// before the game starts.
func (s *Session) refresh(promotion *PromotionState) {
	state := s.snapshot(promotion)
	s.mu.Lock()
	s.state = state
	s.active = s.game.Active()
	s.mu.Unlock()
}

func (s *Session) snapshot(promotion *PromotionState) State {
	g := s.game
	b := g.Board()
	moves := g.Moves()
	legal := g.LegalMoves()

	state := State{
		ID:            s.ID,
		FEN:           g.FEN(),
		Active:        colourName(g.Active()),
		Status:        engine.PositionStatus(b, g.Active()).String(),
		Result:        g.Outcome().Score(),
		Moves:         make([]string, len(moves)),
		LegalMoves:    make([]string, len(legal)),
		HalfmoveClock: g.HalfmoveClock(),
		Promotion:     promotion,
	}
	if o := g.Outcome(); o.Over() {
		state.Reason = o.Result.String()
	}
	for i, m := range moves {
		state.Moves[i] = m.String()
	}
	for i, m := range legal {
		state.LegalMoves[i] = m.String()
	}
	for _, sq := range engine.Checkers(b, g.Active()) {
		state.Checkers = append(state.Checkers, sq.String())
	}
	return state
}

// State returns the latest snapshot.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SubmitMove hands m to the human player whose turn it is.
func (s *Session) SubmitMove(m chess.Move) error {
	s.mu.RLock()
	active, over := s.active, s.over
	s.mu.RUnlock()

	if over {
		return errors.ErrGameOver
	}
	h := s.humans[active]
	if h == nil {
		return errors.Wrapf(errors.ErrWrongTurn, "%s is played by the engine", active)
	}
	return h.Submit(m)
}

// Promote supplies the piece for a pending promotion.
func (s *Session) Promote(kind chess.PieceType) error {
	s.mu.RLock()
	over := s.over
	s.mu.RUnlock()
	if over {
		return errors.ErrGameOver
	}
	return s.game.Promote(kind)
}

// Subscribe registers a client. Messages arrive on the returned channel
// until Unsubscribe is called.
func (s *Session) Subscribe() (int, <-chan outbound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan outbound, listenerBuffer)
	s.listeners[id] = ch
	return id, ch
}

// Unsubscribe removes a client registered with Subscribe.
func (s *Session) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.listeners[id]; ok {
		delete(s.listeners, id)
		close(ch)
	}
}

// send queues msg for one client.
func (s *Session) send(id int, msg outbound) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ch, ok := s.listeners[id]; ok {
		select {
		case ch <- msg:
		default:
			s.cfg.Logf(1, "Session %s: client %d is not reading, dropped %s\n", s.ID, id, msg.Type)
		}
	}
}

func (s *Session) broadcast(msg outbound) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, ch := range s.listeners {
		select {
		case ch <- msg:
		default:
			s.cfg.Logf(1, "Session %s: client %d is not reading, dropped %s\n", s.ID, id, msg.Type)
		}
	}
}

// Close stops the game and waits for its goroutine.
func (s *Session) Close() {
	for _, h := range s.humans {
		if h != nil {
			h.Close()
		}
	}
	s.game.Close()
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

// Done is closed when the game goroutine has finished.
func (s *Session) Done() <-chan struct{} { return s.done }
