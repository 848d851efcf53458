package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistorySeed(t *testing.T) {
	h := NewHistory()
	h.Seed("Welcome, detective.", 3)

	require.Equal(t, 4, h.Speakers())

	narrator := h.Messages(Narrator)
	require.Len(t, narrator, 1)
	assert.Equal(t, SenderBot, narrator[0].Sender)
	assert.Equal(t, "Welcome, detective.", narrator[0].Text)

	for i := 0; i < 3; i++ {
		assert.Empty(t, h.Messages(SuspectAt(i)))
	}
}

func TestHistoryAppendOrder(t *testing.T) {
	h := NewHistory()
	h.Seed("intro", 1)

	h.Append(SuspectAt(0), Message{Sender: SenderUser, Text: "Where were you?"})
	h.Append(SuspectAt(0), Message{Sender: SenderBot, Text: "Home"})

	msgs := h.Messages(SuspectAt(0))
	require.Len(t, msgs, 2)
	assert.Equal(t, "Where were you?", msgs[0].Text)
	assert.Equal(t, "Home", msgs[1].Text)

	// Other speakers untouched.
	assert.Len(t, h.Messages(Narrator), 1)
}

func TestHistoryMessagesReturnsCopy(t *testing.T) {
	h := NewHistory()
	h.Seed("intro", 0)

	msgs := h.Messages(Narrator)
	msgs[0].Text = "tampered"

	assert.Equal(t, "intro", h.Messages(Narrator)[0].Text)
}
