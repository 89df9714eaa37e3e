package query

import "github.com/strelka-labs/meeting-assistant/internal/model"

// Outcome classifies a candidate list for a mutating action.
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeUnique
	OutcomeAmbiguous
)

// Resolution is the result of applying the strict disambiguation policy.
// Meeting is set only for OutcomeUnique; Candidates only for
// OutcomeAmbiguous, in the same ascending start-time order the store
// returned them.
type Resolution struct {
	Outcome    Outcome
	Meeting    *model.Meeting
	Candidates []*model.Meeting
}

// ResolveUnique is the fail-closed disambiguation shared by all mutating
// actions: zero candidates is NotFound, exactly one is Unique, two or
// more is Ambiguous and the caller must apply no mutation and instead
// show the full candidate list. This differs deliberately from
// RoutingLookup, which always picks a single best-effort candidate.
func ResolveUnique(candidates []*model.Meeting) Resolution {
	switch len(candidates) {
	case 0:
		return Resolution{Outcome: OutcomeNotFound}
	case 1:
		return Resolution{Outcome: OutcomeUnique, Meeting: candidates[0]}
	default:
		return Resolution{Outcome: OutcomeAmbiguous, Candidates: candidates}
	}
}
