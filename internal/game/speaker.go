package game

// Speaker identifies a conversation counterpart: 0 is the narrator,
// 1..N is the suspect at index-1.
type Speaker int

const Narrator Speaker = 0

// SuspectAt maps a zero-based suspect index to its Speaker id.
func SuspectAt(index int) Speaker {
	return Speaker(index + 1)
}

func (s Speaker) IsNarrator() bool {
	return s == Narrator
}

// SuspectIndex returns the zero-based suspect index. Only meaningful for
// non-narrator speakers.
func (s Speaker) SuspectIndex() int {
	return int(s) - 1
}
