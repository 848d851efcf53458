package web

import (
	"time"

	"expediente/internal/game"
)

// event is the JSON envelope pushed to connected pages.
type event struct {
	Type     string         `json:"type"`
	Step     string         `json:"step,omitempty"`
	Tip      string         `json:"tip,omitempty"`
	Speaker  *int           `json:"speaker,omitempty"`
	Message  *game.Message  `json:"message,omitempty"`
	Messages []game.Message `json:"messages,omitempty"`
	Attempts *int           `json:"attempts,omitempty"`
	Millis   int64          `json:"millis,omitempty"`
	Text     string         `json:"text,omitempty"`
}

func (s *Server) broadcast(e event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.clients {
		if err := c.WriteJSON(e); err != nil {
			s.log.WithError(err).Debug("dropping websocket client")
			_ = c.Close()
			delete(s.clients, id)
		}
	}
}

// --- game.Presenter ---

func (s *Server) LoadingStep(step, tip string) {
	s.broadcast(event{Type: "loading_step", Step: step, Tip: tip})
}

func (s *Server) Reveal(game.Briefing) {
	// The page pulls the full snapshot from /api/state on reveal; the
	// event only unblocks it.
	s.broadcast(event{Type: "reveal"})
}

func (s *Server) ConversationReplaced(sp game.Speaker, msgs []game.Message) {
	id := int(sp)
	s.broadcast(event{Type: "conversation", Speaker: &id, Messages: msgs})
}

func (s *Server) MessageAppended(sp game.Speaker, m game.Message) {
	id := int(sp)
	s.broadcast(event{Type: "message", Speaker: &id, Message: &m})
}

func (s *Server) AttemptsChanged(remaining int) {
	s.broadcast(event{Type: "attempts", Attempts: &remaining})
}

func (s *Server) HighlightSuspects(d time.Duration) {
	s.broadcast(event{Type: "highlight", Millis: d.Milliseconds()})
}

func (s *Server) Notice(text string) {
	s.broadcast(event{Type: "notice", Text: text})
}
