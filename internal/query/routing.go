package query

import (
	"context"
	"errors"
	"time"

	"github.com/strelka-labs/meeting-assistant/internal/model"
	"github.com/strelka-labs/meeting-assistant/internal/store"
)

// RoutingLookup resolves "where is / how do I get to" requests. Unlike
// ResolveUnique it never reports ambiguity: a route request always gets
// *a* meeting when one plausibly matches. First it takes the most recent
// meeting whose title or location contains the text verbatim; if that
// finds nothing it falls back to the smart date-aware filter and takes
// the earliest candidate.
type RoutingLookup struct {
	meetings store.Meetings
}

func NewRoutingLookup(meetings store.Meetings) *RoutingLookup {
	return &RoutingLookup{meetings: meetings}
}

// Resolve returns the selected meeting or model.ErrNotFound.
func (r *RoutingLookup) Resolve(ctx context.Context, ownerID, text string, now time.Time) (*model.Meeting, error) {
	m, err := r.meetings.LatestMatch(ctx, ownerID, text)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	candidates, err := Search(ctx, r.meetings, ownerID, text, nil, nil, now)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, model.ErrNotFound
	}
	return candidates[0], nil
}
