package game

import (
	"time"

	"expediente/internal/api"
)

// Briefing is the one-time introduction shown when the game becomes
// interactive: objective, rules and the cast with resolved portraits.
type Briefing struct {
	Opening   string
	Scenario  string
	Suspects  []api.Suspect
	Portraits []string // index-aligned with Suspects
	Attempts  int
}

// Presenter is the narrow rendering surface the session drives. Adapters
// (terminal, browser) implement it; the session never touches a terminal
// or socket itself.
type Presenter interface {
	// LoadingStep reports one cosmetic loading phase with its tip.
	LoadingStep(step, tip string)

	// Reveal unblocks the interactive UI once startup has settled.
	Reveal(b Briefing)

	// ConversationReplaced re-renders a speaker's full transcript, used
	// on speaker switches.
	ConversationReplaced(s Speaker, msgs []Message)

	// MessageAppended renders a single new transcript entry.
	MessageAppended(s Speaker, m Message)

	AttemptsChanged(remaining int)

	// HighlightSuspects is a transient cue to emphasize the character
	// panel, not a state change.
	HighlightSuspects(d time.Duration)

	// Notice surfaces a blocking failure to the user.
	Notice(text string)
}
