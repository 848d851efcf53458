// Package web is the browser presentation adapter: a fiber server that
// serves the chat page, exposes user intents over HTTP and pushes session
// state changes to connected pages over a WebSocket.
package web

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"expediente/config"
	"expediente/internal/game"
	"expediente/internal/logger"
)

type Server struct {
	app     *fiber.App
	session *game.Session
	log     *logger.Log
	addr    string

	mu      sync.Mutex
	clients map[uuid.UUID]*websocket.Conn
}

func New(cfg *config.Config) *Server {
	engine := html.New(cfg.Web.Static, ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		log:     logger.New(),
		addr:    cfg.Web.Addr,
		clients: make(map[uuid.UUID]*websocket.Conn),
	}

	app.Get("/", s.indexPage)
	app.Get("/api/state", s.state)
	app.Post("/api/message", s.postMessage)
	app.Post("/api/speaker", s.postSpeaker)
	app.Get("/ws", s.upgradeMiddleware, websocket.New(s.handleWebSocket))

	return s
}

// Bind attaches the session after construction, mirroring the terminal
// adapter: session and presenter reference each other.
func (s *Server) Bind(sess *game.Session) {
	s.session = sess
}

// Listen starts the game in the background and serves until the listener
// fails. Pages connecting mid-startup catch up via /api/state.
func (s *Server) Listen(ctx context.Context) error {
	go func() {
		if err := s.session.Start(ctx); err != nil {
			s.log.WithError(err).Error("game startup failed")
			s.Notice("Could not start a new case. Reload to try again.")
		}
	}()

	s.log.Info("🚀 serving the investigation on " + s.addr)
	return s.app.Listen(s.addr)
}

func (s *Server) indexPage(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{})
}

type stateResponse struct {
	Ready         bool             `json:"ready"`
	Active        int              `json:"active"`
	Attempts      int              `json:"attempts"`
	Opening       string           `json:"opening,omitempty"`
	Scenario      string           `json:"scenario,omitempty"`
	Suspects      []suspectCard    `json:"suspects"`
	NarratorImage string           `json:"narrator_image"`
	Histories     [][]game.Message `json:"histories"` // index = speaker id
}

type suspectCard struct {
	Name              string `json:"name"`
	Personality       string `json:"personality"`
	Alibi             string `json:"alibi"`
	AdditionalDetails string `json:"additional_details"`
	Image             string `json:"image"`
}

func (s *Server) state(c *fiber.Ctx) error {
	resp := stateResponse{
		Ready:         s.session.Ready(),
		Active:        int(s.session.ActiveSpeaker()),
		Attempts:      s.session.Attempts(),
		NarratorImage: s.session.NarratorImage(),
		Suspects:      []suspectCard{},
	}

	g := s.session.Game()
	if resp.Ready && g != nil {
		resp.Opening = g.Opening
		resp.Scenario = g.Scenario
		images := s.session.SuspectImages()
		for i, sp := range g.Suspects {
			card := suspectCard{
				Name:              sp.Name,
				Personality:       sp.Personality,
				Alibi:             sp.Alibi,
				AdditionalDetails: sp.AdditionalDetails,
			}
			if i < len(images) {
				card.Image = images[i]
			}
			resp.Suspects = append(resp.Suspects, card)
		}
		resp.Histories = make([][]game.Message, len(g.Suspects)+1)
		for id := range resp.Histories {
			resp.Histories[id] = s.session.HistoryFor(game.Speaker(id))
		}
	}

	return c.JSON(resp)
}

type messageRequest struct {
	Text string `json:"text"`
}

func (s *Server) postMessage(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
	defer cancel()

	err := s.session.Submit(ctx, req.Text)
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusNoContent)
	case errors.Is(err, game.ErrEmptyMessage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty message"})
	case errors.Is(err, game.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "answer still pending"})
	case errors.Is(err, game.ErrNotReady):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "game still loading"})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
}

type speakerRequest struct {
	Speaker int `json:"speaker"`
}

func (s *Server) postSpeaker(c *fiber.Ctx) error {
	var req speakerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if err := s.session.SelectSpeaker(game.Speaker(req.Speaker)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) upgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (s *Server) handleWebSocket(c *websocket.Conn) {
	id := uuid.New()

	s.mu.Lock()
	s.clients[id] = c
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, id)
		s.mu.Unlock()
		_ = c.Close()
	}()

	// Push-only socket: the read loop just detects the page going away.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
