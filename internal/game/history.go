package game

import "sync"

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// History is the per-speaker transcript store. Messages are appended and
// never removed or reordered; reads return copies. The controller is the
// only writer, presentation adapters read from their own goroutines.
type History struct {
	mu   sync.RWMutex
	logs map[Speaker][]Message
}

func NewHistory() *History {
	return &History{logs: make(map[Speaker][]Message)}
}

// Seed creates one entry per speaker: the narrator log opens with the
// intro message, suspect logs start empty.
func (h *History) Seed(intro string, suspects int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logs = make(map[Speaker][]Message, suspects+1)
	h.logs[Narrator] = []Message{{Sender: SenderBot, Text: intro}}
	for i := 0; i < suspects; i++ {
		h.logs[SuspectAt(i)] = []Message{}
	}
}

func (h *History) Append(s Speaker, m Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logs[s] = append(h.logs[s], m)
}

// Messages returns a copy of the speaker's transcript.
func (h *History) Messages(s Speaker) []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msgs := make([]Message, len(h.logs[s]))
	copy(msgs, h.logs[s])
	return msgs
}

func (h *History) Len(s Speaker) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.logs[s])
}

// Speakers reports how many entries the store holds.
func (h *History) Speakers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.logs)
}
