package api

// Wire types for the narrative service. Field names follow the service
// contract, which uses Spanish keys for suspect fields.

// Suspect as delivered by /start_game and echoed back on every /ask call.
type Suspect struct {
	Name              string `json:"name"`
	Personality       string `json:"personality"`
	Description       string `json:"descripcion"`
	Alibi             string `json:"coartada"`
	AdditionalDetails string `json:"detalles_adicionales"`
	Guilty            bool   `json:"culpable,omitempty"`
}

// Game is the full scenario payload created by /start_game.
type Game struct {
	Scenario       string            `json:"scenario"`
	Opening        string            `json:"inicio"`
	StartTime      string            `json:"start_time"` // ISO 8601
	IntroNarrator  string            `json:"intro_narrator"`
	Suspects       []Suspect         `json:"suspects"`
	MurderDetails  map[string]string `json:"murder_details"`
	HumorCharacter string            `json:"humor_character,omitempty"`
}

type startGameResponse struct {
	Data Game `json:"data"`
}

type portraitRequest struct {
	Description string `json:"description"`
}

type portraitResponse struct {
	Image string `json:"image"`
}

// NarratorRequest carries the full story context plus the narrator
// transcript so the service can answer statefully.
type NarratorRequest struct {
	Question          string            `json:"question"`
	StartTime         string            `json:"start_time"`
	CurrentTime       string            `json:"current_time"`
	History           []string          `json:"history"`
	AttemptsRemaining int               `json:"attempts_remaining"`
	DetectivesCount   int               `json:"detectives_count"`
	Scenario          string            `json:"scenario"`
	Suspects          []Suspect         `json:"suspects"`
	MurderDetails     map[string]string `json:"murder_details"`
	HumorCharacter    string            `json:"humor_character,omitempty"`
	IntroNarrator     string            `json:"intro_narrator,omitempty"`
}

type NarratorResponse struct {
	Answer   string          `json:"answer"`
	Type     string          `json:"type"`
	Feedback map[string]bool `json:"feedback,omitempty"`
	Warning  string          `json:"warning,omitempty"`

	// AttemptsRemaining is an extension to the base contract: when the
	// service reports an updated count (after a judged accusation) the
	// client adopts it. Absent means unchanged.
	AttemptsRemaining *int `json:"attempts_remaining,omitempty"`
}

type SuspectRequest struct {
	Question     string    `json:"question"`
	StartTime    string    `json:"start_time"`
	CurrentTime  string    `json:"current_time"`
	History      []string  `json:"history"`
	SuspectIndex int       `json:"suspect_index"`
	Suspects     []Suspect `json:"suspects"`
}

type suspectResponse struct {
	Answer string `json:"answer"`
}
