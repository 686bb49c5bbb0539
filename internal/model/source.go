package model

import "time"

// SourceType says what kind of upstream produced a report fragment.
type SourceType string

const (
	SourceAI        SourceType = "ai"
	SourceWeb       SourceType = "web"
	SourcePitchbook SourceType = "pitchbook"
)

// Source is one entry in the session's append-only source ledger. A source is
// recorded once per external call that yielded usable data and is never
// mutated afterwards.
type Source struct {
	ID         string     `json:"id"`
	Type       SourceType `json:"type"`
	Model      string     `json:"model,omitempty"`
	Title      string     `json:"title"`
	Timestamp  time.Time  `json:"timestamp"`
	DataPoints []string   `json:"dataPoints"`
	URL        string     `json:"url,omitempty"`
}
