// Package ui is the terminal presentation adapter: it renders session
// state to stdout and forwards user intents back into the controller.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"expediente/internal/game"
	"expediente/internal/logger"
	"expediente/internal/tts"
)

var (
	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	tipStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	headingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	botStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	attemptsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	castStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

type Terminal struct {
	session *game.Session
	log     *logger.Log

	voice      tts.Tts
	voiceModel string

	scanner *bufio.Scanner
}

func New(voice tts.Tts, voiceModel string) *Terminal {
	return &Terminal{
		log:        logger.New(),
		voice:      voice,
		voiceModel: voiceModel,
		scanner:    bufio.NewScanner(os.Stdin),
	}
}

// Bind attaches the session after construction; the session needs the
// presenter at construction time, the presenter needs the session to
// forward intents.
func (t *Terminal) Bind(s *game.Session) {
	t.session = s
}

func (t *Terminal) Run(ctx context.Context) error {
	if err := t.session.Start(ctx); err != nil {
		fmt.Println(noticeStyle.Render("Could not start a new case. Please try again later."))
		return err
	}
	return t.gameLoop(ctx)
}

func (t *Terminal) gameLoop(ctx context.Context) error {
	fmt.Println("Type 'help' for available commands.")

	for {
		line := t.prompt("> ")
		parts := strings.SplitN(line, " ", 2)
		if parts[0] == "" {
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "help":
			t.showHelp()

		case "list":
			t.listSuspects()

		case "attempts":
			fmt.Println(t.attemptsLine(t.session.Attempts()))

		case "interview":
			if len(parts) < 2 {
				fmt.Println("Usage: interview <suspect>")
				continue
			}
			t.interview(ctx, parts[1])

		case "quit", "exit":
			fmt.Println("Goodbye detective.")
			return nil

		default:
			// Anything else goes to the narrator.
			t.submit(ctx, line)
		}
	}
}

func (t *Terminal) interview(ctx context.Context, name string) {
	sp, ok := t.findSuspect(name)
	if !ok {
		fmt.Printf("No suspect named '%s' found. Enter 'list' to see the cast.\n", name)
		return
	}

	if err := t.session.SelectSpeaker(sp); err != nil {
		t.log.WithError(err).Error("speaker switch failed")
		return
	}

	fmt.Printf("\n🎭 You are now interviewing %s (type 'exit' to stop)\n", t.session.SpeakerName(sp))

	for {
		q := t.prompt("Q: ")
		if q == "exit" || q == "quit" {
			fmt.Println("Interview ended")
			break
		}
		if q == "" {
			continue
		}
		t.submit(ctx, q)
	}

	_ = t.session.SelectSpeaker(game.Narrator)
}

func (t *Terminal) submit(ctx context.Context, text string) {
	err := t.session.Submit(ctx, text)
	switch {
	case err == nil:
	case errors.Is(err, game.ErrEmptyMessage):
	case errors.Is(err, game.ErrBusy):
		fmt.Println("Still waiting for an answer, hold on.")
	default:
		// The notice was already rendered through the Presenter.
		t.log.WithError(err).Debug("submission failed")
	}
}

func (t *Terminal) findSuspect(name string) (game.Speaker, bool) {
	g := t.session.Game()
	if g == nil {
		return game.Narrator, false
	}

	name = strings.ToLower(strings.TrimSpace(name))
	for i := range g.Suspects {
		if strings.Contains(strings.ToLower(g.Suspects[i].Name), name) {
			return game.SuspectAt(i), true
		}
	}

	// try individual words
	for _, word := range strings.Fields(name) {
		for i := range g.Suspects {
			if strings.Contains(strings.ToLower(g.Suspects[i].Name), word) {
				return game.SuspectAt(i), true
			}
		}
	}

	return game.Narrator, false
}

func (t *Terminal) prompt(p string) string {
	fmt.Print(p)
	if !t.scanner.Scan() {
		return "exit"
	}
	return strings.TrimSpace(t.scanner.Text())
}

func (t *Terminal) showHelp() {
	fmt.Println("Available Commands:")
	fmt.Println("  help                 - Show this help message")
	fmt.Println("  list                 - List all suspects")
	fmt.Println("  interview <suspect>  - Question a suspect")
	fmt.Println("  attempts             - Show remaining accusation attempts")
	fmt.Println("  quit/exit            - Exit the game")
	fmt.Println("Anything else is asked to the narrator, accusations included.")
}

func (t *Terminal) listSuspects() {
	g := t.session.Game()
	if g == nil {
		return
	}
	fmt.Println("\nSuspects in this case:")
	for _, s := range g.Suspects {
		fmt.Println(castStyle.Render(fmt.Sprintf("  • %s (%s) — alibi: %s", s.Name, s.Personality, s.Alibi)))
	}
	fmt.Println()
}

func (t *Terminal) attemptsLine(n int) string {
	return attemptsStyle.Render("Attempts " + strings.Repeat("⬤", n))
}

// --- game.Presenter ---

func (t *Terminal) LoadingStep(step, tip string) {
	fmt.Println(stepStyle.Render(step))
	fmt.Println(tipStyle.Render(tip))
}

func (t *Terminal) Reveal(b game.Briefing) {
	fmt.Println()
	fmt.Println(headingStyle.Render("🔍 The investigation begins"))
	fmt.Println()
	fmt.Println(b.Opening)
	fmt.Println()
	fmt.Println(headingStyle.Render("Scene"))
	fmt.Println(b.Scenario)
	fmt.Println()
	fmt.Println(headingStyle.Render("Objective"))
	fmt.Println("  🔪 The murder weapon")
	fmt.Println("  📍 Where it happened")
	fmt.Println("  ⏰ The exact time")
	fmt.Println("  🕵️ Who did it")
	fmt.Println()
	fmt.Println(headingStyle.Render("Rules"))
	fmt.Printf("  • You have %d attempts. Every wrong accusation costs one.\n", b.Attempts)
	fmt.Println("  • Interview the suspects, check their alibis.")
	fmt.Println("  • Ask the narrator for help or to confirm a suspicion.")
	fmt.Println("  • Guess everything before the attempts run out.")
	fmt.Println()
	fmt.Println(headingStyle.Render("Cast"))
	for _, s := range b.Suspects {
		fmt.Println(castStyle.Render(fmt.Sprintf("  • %s — %s", s.Name, s.Personality)))
	}
	fmt.Println()
}

func (t *Terminal) ConversationReplaced(sp game.Speaker, msgs []game.Message) {
	if len(msgs) == 0 {
		return
	}
	name := t.session.SpeakerName(sp)
	fmt.Printf("\n— Conversation with %s —\n", name)
	for _, m := range msgs {
		t.printMessage(name, m)
	}
}

func (t *Terminal) MessageAppended(sp game.Speaker, m game.Message) {
	if m.Sender == game.SenderUser {
		// The user just typed it.
		return
	}
	name := t.session.SpeakerName(sp)
	t.printMessage(name, m)

	if sp.IsNarrator() && t.voice != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := t.voice.Speak(ctx, m.Text, t.voiceModel); err != nil {
			t.log.WithError(err).Error("narrator has lost their voice")
		}
	}
}

func (t *Terminal) printMessage(name string, m game.Message) {
	if m.Sender == game.SenderUser {
		fmt.Println(userStyle.Render("You: " + m.Text))
		return
	}
	fmt.Println(botStyle.Render(name + ": " + m.Text))
}

func (t *Terminal) AttemptsChanged(remaining int) {
	fmt.Println(t.attemptsLine(remaining))
}

func (t *Terminal) HighlightSuspects(time.Duration) {
	fmt.Println(tipStyle.Render("👉 Take a look at the suspects: type 'list'."))
}

func (t *Terminal) Notice(text string) {
	fmt.Println(noticeStyle.Render("❌ " + text))
}
