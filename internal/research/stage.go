package research

import "github.com/rotisserie/eris"

// Mode selects how the initial flow handles failure: strict fails visibly,
// lenient substitutes deterministic synthetic data so the caller never sees
// an empty result.
type Mode string

const (
	ModeStrict  Mode = "strict"
	ModeLenient Mode = "lenient"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStrict, ModeLenient:
		return Mode(s), nil
	}
	return "", eris.Errorf("research: unknown mode %q", s)
}

// Stage is one step of the initial research flow. Errored is an absorbing
// state reachable from any stage.
type Stage string

const (
	StageSearching        Stage = "searching"
	StageCrossReferencing Stage = "cross_referencing"
	StageFinalizing       Stage = "finalizing"
	StageDone             Stage = "done"
	StageErrored          Stage = "errored"
)

// Message returns the user-visible progress message for a stage.
func (s Stage) Message() string {
	switch s {
	case StageSearching:
		return "Analyzing..."
	case StageCrossReferencing:
		return "Cross-referencing data..."
	case StageFinalizing:
		return "Finalizing analysis..."
	case StageDone:
		return "Done"
	case StageErrored:
		return "Failed to analyze startup. Please try again."
	}
	return ""
}
