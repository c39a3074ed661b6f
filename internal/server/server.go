// Package server exposes games over HTTP and websockets. Each game runs in
// a session with its own goroutine; clients submit moves and promotion
// choices and receive game events as JSON.
package server

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Server wires the session manager to a fiber app.
type Server struct {
	cfg     *config.Config
	app     *fiber.App
	manager *Manager
}

// New creates a server with all routes registered. A nil cfg uses
// defaults.
func New(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	s := &Server{
		cfg:     cfg,
		manager: NewManager(cfg),
		app: fiber.New(fiber.Config{
			AppName:               "chess-rules",
			DisableStartupMessage: true,
		}),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	app := s.app
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	app.Use(s.logRequests)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "sessions": s.manager.Len()})
	})

	games := app.Group("/api/games")
	games.Post("/", s.createGame)
	games.Get("/:id", s.getGame)
	games.Delete("/:id", s.deleteGame)
	games.Get("/:id/moves", s.legalMoves)
	games.Post("/:id/moves", s.submitMove)
	games.Post("/:id/promotion", s.promote)

	app.Get("/ws/games/:id", s.upgrade, websocket.New(s.serveSocket, websocket.Config{
		Origins:         origins(s.cfg.Server.AllowOrigins),
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Manager returns the session manager.
func (s *Server) Manager() *Manager { return s.manager }

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.cfg.Logf(1, "Listening on %s\n", s.cfg.Server.Addr)
	return s.app.Listen(s.cfg.Server.Addr)
}

// Shutdown stops every session and the HTTP server.
func (s *Server) Shutdown() error {
	s.manager.Close()
	return s.app.Shutdown()
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	err := c.Next()
	s.cfg.Logf(2, "%s %s -> %d\n", c.Method(), c.Path(), c.Response().StatusCode())
	return err
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req CreateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorResponse(c, errors.Wrapf(errors.ErrInvalidConfig, "request body: %v", err))
		}
	}
	sess, err := s.manager.Create(req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sess.State())
}

func (s *Server) getGame(c *fiber.Ctx) error {
	sess, err := s.manager.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(sess.State())
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.manager.Delete(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) legalMoves(c *fiber.Ctx) error {
	sess, err := s.manager.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	state := sess.State()
	return c.JSON(fiber.Map{"active": state.Active, "moves": state.LegalMoves})
}

func (s *Server) submitMove(c *fiber.Ctx) error {
	sess, err := s.manager.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, errors.Wrapf(errors.ErrIllegalMove, "request body: %v", err))
	}
	m, err := req.Move()
	if err != nil {
		return errorResponse(c, err)
	}
	if err := sess.SubmitMove(m); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"move": m.String()})
}

func (s *Server) promote(c *fiber.Ctx) error {
	sess, err := s.manager.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	var req PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, errors.Wrapf(errors.ErrIllegalMove, "request body: %v", err))
	}
	kind, err := parsePiece(req.Piece)
	if err != nil {
		return errorResponse(c, err)
	}
	if err := sess.Promote(kind); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"piece": kind.String()})
}

// upgrade admits websocket requests for existing sessions.
func (s *Server) upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	sess, err := s.manager.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	c.Locals("session", sess)
	return c.Next()
}

// serveSocket pushes session messages to the client while a second
// goroutine reads client commands.
func (s *Server) serveSocket(conn *websocket.Conn) {
	sess := conn.Locals("session").(*Session)
	id, messages := sess.Subscribe()
	defer sess.Unsubscribe(id)

	sess.send(id, outbound{Type: MessageTypeState, Payload: sess.State()})
	go s.readSocket(conn, sess, id)

	for msg := range messages {
		if err := conn.WriteJSON(msg); err != nil {
			s.cfg.Logf(2, "Session %s: write error: %v\n", sess.ID, err)
			return
		}
	}
}

func (s *Server) readSocket(conn *websocket.Conn, sess *Session, id int) {
	defer sess.Unsubscribe(id)
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			sess.send(id, errorMessage(errors.Wrapf(errors.ErrIllegalMove, "malformed message: %v", err)))
			continue
		}
		if err := handleMessage(sess, msg); err != nil {
			sess.send(id, errorMessage(err))
		}
	}
}

// handleMessage applies one client command to the session.
func handleMessage(sess *Session, msg Message) error {
	switch msg.Type {
	case MessageTypeMove:
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return errors.Wrapf(errors.ErrIllegalMove, "move payload: %v", err)
		}
		m, err := req.Move()
		if err != nil {
			return err
		}
		return sess.SubmitMove(m)
	case MessageTypePromote:
		var req PromoteRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return errors.Wrapf(errors.ErrIllegalMove, "promote payload: %v", err)
		}
		kind, err := parsePiece(req.Piece)
		if err != nil {
			return err
		}
		return sess.Promote(kind)
	}
	return errors.Wrapf(errors.ErrIllegalMove, "unknown message type %q", msg.Type)
}

func errorMessage(err error) outbound {
	return outbound{Type: MessageTypeError, Payload: fiber.Map{"error": err.Error()}}
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errors.ErrGameOver),
		errors.Is(err, errors.ErrMovePending),
		errors.Is(err, errors.ErrNoPromotionPending),
		errors.Is(err, errors.ErrWrongTurn),
		errors.Is(err, errors.ErrAborted):
		return fiber.StatusConflict
	case errors.Is(err, errors.ErrInvalidFEN),
		errors.Is(err, errors.ErrIllegalMove),
		errors.Is(err, errors.ErrInvalidConfig):
		return fiber.StatusBadRequest
	case errors.Is(err, errors.ErrEngineUnavailable):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// origins splits a comma separated origin list.
func origins(list string) []string {
	var out []string
	for _, o := range strings.Split(list, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
