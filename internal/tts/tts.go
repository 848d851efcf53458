package tts

import "context"

// Tts speaks narrator lines aloud. voice selects the synthesis voice,
// empty means the engine default.
type Tts interface {
	Speak(ctx context.Context, text, voice string) error
	Name() string
}
