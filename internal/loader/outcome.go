package loader

// Outcome classifies what happened to a single target.
type Outcome int

const (
	// OutcomeLoaded means the target parsed and registered cleanly.
	OutcomeLoaded Outcome = iota
	// OutcomeSkipped means the target failed with a missing library matched
	// by the known-fail set and the batch moved on.
	OutcomeSkipped
)

// String returns a short human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result records the outcome for one target. Err is non-nil only for skipped
// targets, holding the tolerated failure.
type Result struct {
	Target  string
	Outcome Outcome
	Err     error
}
