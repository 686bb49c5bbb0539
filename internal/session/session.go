// Package session holds the state of one active research session: the single
// in-progress report, the append-only source ledger, and the per-section
// deep-dive guards. The report and ledger live only as long as the session.
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/snapshot/internal/model"
)

// Section names one deep-dive section of the report.
type Section string

const (
	SectionCompetitors Section = "competitors"
	SectionFunding     Section = "funding"
	SectionTeam        Section = "team"
)

// Sections lists all deep-dive sections.
func Sections() []Section {
	return []Section{SectionCompetitors, SectionFunding, SectionTeam}
}

// ParseSection validates a section name.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionCompetitors, SectionFunding, SectionTeam:
		return Section(s), nil
	}
	return "", eris.Errorf("session: unknown section %q", s)
}

// SectionState tracks where a deep dive stands, independent of whether its
// report fields happen to be populated.
type SectionState string

const (
	SectionNotStarted SectionState = "not_started"
	SectionInFlight   SectionState = "in_flight"
	SectionPopulated  SectionState = "populated"
)

// Session is the mutable state of one research session. All methods are safe
// for concurrent use; each merge is atomic relative to other merges, so
// racing deep-dive completions resolve last-merge-wins.
type Session struct {
	mu         sync.Mutex
	report     *model.Report
	sources    []model.Source
	states     map[Section]SectionState
	selections map[int]bool
}

// New creates an empty session.
func New() *Session {
	return &Session{
		states: map[Section]SectionState{
			SectionCompetitors: SectionNotStarted,
			SectionFunding:     SectionNotStarted,
			SectionTeam:        SectionNotStarted,
		},
	}
}

// Reset clears the session back to its initial state: no report, empty
// ledger, no selections, every section NotStarted. Called when a new
// analysis begins so nothing carries over from the previous company.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = nil
	s.sources = nil
	s.selections = nil
	for section := range s.states {
		s.states[section] = SectionNotStarted
	}
}

// Report returns a copy of the current report, or nil before the initial flow
// has completed.
func (s *Session) Report() *model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.report == nil {
		return nil
	}
	r := *s.report
	return &r
}

// SetReport replaces the working report in full.
func (s *Session) SetReport(r *model.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = r
}

// MergeFragment overlays the fragment's top-level fields onto the current
// report: new fields are added, same-named fields overwritten, everything
// else kept. If the fragment cannot be applied the report is left untouched.
func (s *Session) MergeFragment(fragment json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.report == nil {
		return eris.New("session: no report to merge into")
	}

	var patch map[string]json.RawMessage
	if err := json.Unmarshal(fragment, &patch); err != nil {
		return eris.Wrap(err, "session: decode fragment")
	}

	current, err := json.Marshal(s.report)
	if err != nil {
		return eris.Wrap(err, "session: encode report")
	}
	var base map[string]json.RawMessage
	if err := json.Unmarshal(current, &base); err != nil {
		return eris.Wrap(err, "session: decode report")
	}

	for k, v := range patch {
		base[k] = v
	}

	merged, err := json.Marshal(base)
	if err != nil {
		return eris.Wrap(err, "session: encode merged report")
	}

	var next model.Report
	if err := json.Unmarshal(merged, &next); err != nil {
		return eris.Wrap(err, "session: fragment does not fit report")
	}

	s.report = &next
	return nil
}

// AddSource appends a ledger entry, assigning its ID and timestamp. Entries
// are never mutated or removed.
func (s *Session) AddSource(src model.Source) model.Source {
	s.mu.Lock()
	defer s.mu.Unlock()

	src.ID = uuid.New().String()
	src.Timestamp = time.Now().UTC()
	s.sources = append(s.sources, src)
	return src
}

// Sources returns a copy of the ledger in append order.
func (s *Session) Sources() []model.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Source, len(s.sources))
	copy(out, s.sources)
	return out
}

// Begin marks a section in flight. It returns false when a dive for that
// section is already outstanding; flags are independent across sections.
func (s *Session) Begin(section Section) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[section] == SectionInFlight {
		return false
	}
	s.states[section] = SectionInFlight
	return true
}

// End clears the in-flight flag unconditionally. On success the section is
// Populated; on failure it returns to Populated only if an earlier run
// already filled it, else NotStarted (re-triggerable).
func (s *Session) End(section Section, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok || s.sectionFilled(section) {
		s.states[section] = SectionPopulated
		return
	}
	s.states[section] = SectionNotStarted
}

// State returns the current deep-dive state of a section.
func (s *Session) State(section Section) SectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[section]
}

// sectionFilled reports whether the report already carries data for the
// section. Caller holds s.mu.
func (s *Session) sectionFilled(section Section) bool {
	if s.report == nil {
		return false
	}
	switch section {
	case SectionCompetitors:
		return len(s.report.CompetitorDetails) > 0
	case SectionFunding:
		return s.report.FundingDetails != nil
	case SectionTeam:
		return len(s.report.TeamDetails) > 0
	}
	return false
}

// SetSelections stores the competitor pre-selection flags derived at the end
// of the initial flow (index into TopCompetitors → selected).
func (s *Session) SetSelections(sel map[int]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections = make(map[int]bool, len(sel))
	for k, v := range sel {
		s.selections[k] = v
	}
}

// Selections returns a copy of the competitor selection flags.
func (s *Session) Selections() map[int]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]bool, len(s.selections))
	for k, v := range s.selections {
		out[k] = v
	}
	return out
}

// SelectedCompetitors resolves the selection flags against the report's
// competitor list, in index order.
func (s *Session) SelectedCompetitors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.report == nil {
		return nil
	}
	var names []string
	for i, c := range s.report.TopCompetitors {
		if s.selections[i] {
			names = append(names, c.Name)
		}
	}
	return names
}
