package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"expediente/config"
	"expediente/internal/api"
	"expediente/internal/logger"
	"expediente/internal/portrait"
)

var (
	ErrEmptyMessage   = errors.New("empty message")
	ErrBusy           = errors.New("a question for this speaker is still pending")
	ErrUnknownSpeaker = errors.New("unknown speaker")
	ErrNotReady       = errors.New("game has not finished loading")
)

var loadSteps = []string{
	"Loading the story...",
	"Loading the characters...",
	"Dotting the i's...",
	"Generating portraits...",
}

var loadTips = []string{
	"Tip: Study every clue carefully.",
	"Tip: Always question the narrator first.",
	"Tip: Check everyone's alibi.",
	"Tip: Never underestimate a suspect.",
}

// The service reports start_time via Python's isoformat, which may omit
// the timezone.
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Session owns the state of one game: the scenario, per-speaker
// transcripts, the active speaker and the remaining accusation attempts.
// All mutation goes through its methods; adapters only read snapshots and
// receive Presenter signals.
type Session struct {
	svc       Service
	portraits PortraitResolver
	presenter Presenter
	log       *logger.Log

	stepDelay    time.Duration
	highlightFor time.Duration

	history *History
	now     func() time.Time

	mu            sync.Mutex
	game          *api.Game
	startTime     time.Time
	suspectImages []string
	attempts      int
	active        Speaker
	ready         bool
	inflight      map[Speaker]bool
}

func NewSession(cfg *config.Config, svc Service, portraits PortraitResolver, p Presenter) *Session {
	return &Session{
		svc:          svc,
		portraits:    portraits,
		presenter:    p,
		log:          logger.New(),
		stepDelay:    time.Duration(cfg.Game.LoadStepMillis) * time.Millisecond,
		highlightFor: time.Duration(cfg.Game.HighlightMillis) * time.Millisecond,
		history:      NewHistory(),
		now:          time.Now,
		attempts:     cfg.Game.Attempts,
		active:       Narrator,
		inflight:     make(map[Speaker]bool),
	}
}

// Start runs the initialization protocol: game creation, history seeding
// and portrait resolution in one goroutine, the cosmetic loading sequence
// in another. The UI is revealed only after both have settled, so the
// overlay shows for max(cosmetic duration, network duration). A failed
// game creation is fatal.
func (s *Session) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.bootstrap(gctx) })
	g.Go(func() error { return s.loadingSequence(gctx) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	s.mu.Lock()
	s.ready = true
	s.active = Narrator
	b := Briefing{
		Opening:   s.game.Opening,
		Scenario:  s.game.Scenario,
		Suspects:  s.game.Suspects,
		Portraits: append([]string(nil), s.suspectImages...),
		Attempts:  s.attempts,
	}
	attempts := s.attempts
	s.mu.Unlock()

	s.presenter.Reveal(b)
	s.presenter.ConversationReplaced(Narrator, s.history.Messages(Narrator))
	s.presenter.AttemptsChanged(attempts)
	return nil
}

func (s *Session) bootstrap(ctx context.Context) error {
	game, err := s.svc.StartGame(ctx)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	start, err := parseStartTime(game.StartTime)
	if err != nil {
		s.log.WithError(err).Warn("unparseable start_time, using local clock")
		start = s.now()
	}

	s.history.Seed(game.IntroNarrator, len(game.Suspects))

	descs := make([]string, len(game.Suspects))
	for i, sp := range game.Suspects {
		descs[i] = fmt.Sprintf("Portrait of %s, %s", sp.Name, sp.Description)
	}
	images := s.portraits.ResolveAll(ctx, descs)

	s.mu.Lock()
	s.game = game
	s.startTime = start
	s.suspectImages = images
	s.mu.Unlock()
	return nil
}

func (s *Session) loadingSequence(ctx context.Context) error {
	for i := range loadSteps {
		s.presenter.LoadingStep(loadSteps[i], loadTips[i])
		select {
		case <-time.After(s.stepDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// SelectSpeaker switches the active counterpart. Pure state transition:
// no network call, the target's stored transcript is re-rendered as is.
func (s *Session) SelectSpeaker(sp Speaker) error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotReady
	}
	if sp < Narrator || sp.SuspectIndex() >= len(s.game.Suspects) {
		s.mu.Unlock()
		return ErrUnknownSpeaker
	}
	s.active = sp
	attempts := s.attempts
	s.mu.Unlock()

	s.presenter.ConversationReplaced(sp, s.history.Messages(sp))
	if sp.IsNarrator() {
		s.presenter.AttemptsChanged(attempts)
	}
	return nil
}

// Submit sends the user's message to the active speaker's endpoint.
// Whitespace-only input is rejected before any state changes. The message
// is recorded optimistically; on failure it stays in the transcript, no
// counterpart message is added and the presenter gets a blocking notice.
// Submissions are serialized per speaker: a second one while the first is
// pending returns ErrBusy. A late response always lands in the transcript
// of the speaker it was sent to.
func (s *Session) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotReady
	}
	sp := s.active
	if s.inflight[sp] {
		s.mu.Unlock()
		return ErrBusy
	}
	s.inflight[sp] = true
	game := s.game
	start := s.startTime
	attempts := s.attempts
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, sp)
		s.mu.Unlock()
	}()

	msg := Message{Sender: SenderUser, Text: text}
	s.history.Append(sp, msg)
	s.presenter.MessageAppended(sp, msg)

	if sp.IsNarrator() {
		return s.askNarrator(ctx, text, game, start, attempts)
	}
	return s.askSuspect(ctx, sp, text, game, start)
}

func (s *Session) askNarrator(ctx context.Context, text string, g *api.Game, start time.Time, attempts int) error {
	req := &api.NarratorRequest{
		Question:          text,
		StartTime:         start.Format(time.RFC3339),
		CurrentTime:       s.now().Format(time.RFC3339),
		History:           s.transcript(Narrator),
		AttemptsRemaining: attempts,
		DetectivesCount:   1,
		Scenario:          g.Scenario,
		Suspects:          g.Suspects,
		MurderDetails:     g.MurderDetails,
		HumorCharacter:    g.HumorCharacter,
		IntroNarrator:     g.IntroNarrator,
	}

	resp, err := s.svc.AskNarrator(ctx, req)
	if err != nil {
		s.log.WithError(err).Error("narrator request failed")
		s.presenter.Notice("The narrator could not be reached. Your question was kept, ask again.")
		return fmt.Errorf("ask narrator: %w", err)
	}

	s.appendBot(Narrator, resp.Answer)
	if resp.Warning != "" {
		s.appendBot(Narrator, "⚠️ "+resp.Warning)
	}
	if len(resp.Feedback) > 0 {
		// Diagnostic only, never rendered.
		s.log.Debug(fmt.Sprintf("narrator feedback: %v", resp.Feedback))
	}
	if resp.AttemptsRemaining != nil {
		s.applyAttempts(*resp.AttemptsRemaining)
	}
	if strings.HasPrefix(resp.Type, "tutorial:perso") {
		s.presenter.HighlightSuspects(s.highlightFor)
	}
	return nil
}

func (s *Session) askSuspect(ctx context.Context, sp Speaker, text string, g *api.Game, start time.Time) error {
	req := &api.SuspectRequest{
		Question:     text,
		StartTime:    start.Format(time.RFC3339),
		CurrentTime:  s.now().Format(time.RFC3339),
		History:      s.transcript(sp),
		SuspectIndex: sp.SuspectIndex(),
		Suspects:     g.Suspects,
	}

	answer, err := s.svc.AskSuspect(ctx, req)
	if err != nil {
		name := g.Suspects[sp.SuspectIndex()].Name
		s.log.WithError(err).Error(fmt.Sprintf("suspect request failed [suspect:%s]", name))
		s.presenter.Notice(fmt.Sprintf("%s could not be reached. Your question was kept, ask again.", name))
		return fmt.Errorf("ask suspect %q: %w", name, err)
	}

	s.appendBot(sp, answer)
	return nil
}

func (s *Session) appendBot(sp Speaker, text string) {
	m := Message{Sender: SenderBot, Text: text}
	s.history.Append(sp, m)
	s.presenter.MessageAppended(sp, m)
}

func (s *Session) applyAttempts(n int) {
	if n < 0 {
		n = 0
	}
	s.mu.Lock()
	s.attempts = n
	s.mu.Unlock()
	s.presenter.AttemptsChanged(n)
}

// transcript renders a speaker's log as role-tagged lines, the format the
// service expects as conversational context.
func (s *Session) transcript(sp Speaker) []string {
	counterpart := "Narrator"
	if !sp.IsNarrator() {
		counterpart = "Suspect"
	}

	msgs := s.history.Messages(sp)
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		who := "Detective"
		if m.Sender == SenderBot {
			who = counterpart
		}
		lines[i] = who + ": " + m.Text
	}
	return lines
}

// --- snapshot accessors for presentation adapters ---

func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *Session) Game() *api.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game
}

func (s *Session) ActiveSpeaker() Speaker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Session) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func (s *Session) HistoryFor(sp Speaker) []Message {
	return s.history.Messages(sp)
}

// NarratorImage is the fixed narrator portrait.
func (s *Session) NarratorImage() string {
	return portrait.Narrator
}

// SuspectImages returns the resolved portraits, index-aligned with the
// suspects list.
func (s *Session) SuspectImages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.suspectImages...)
}

// SpeakerName resolves a speaker id to a display name.
func (s *Session) SpeakerName(sp Speaker) string {
	if sp.IsNarrator() {
		return "Narrator"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil || sp.SuspectIndex() >= len(s.game.Suspects) {
		return fmt.Sprintf("Suspect %d", sp.SuspectIndex()+1)
	}
	return s.game.Suspects[sp.SuspectIndex()].Name
}

func parseStartTime(v string) (time.Time, error) {
	var err error
	for _, layout := range startTimeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
