// Package query turns partial textual meeting descriptions into store
// filters and resolves the returned candidates into actionable outcomes.
package query

import (
	"context"
	"time"

	"github.com/strelka-labs/meeting-assistant/internal/datequery"
	"github.com/strelka-labs/meeting-assistant/internal/model"
	"github.com/strelka-labs/meeting-assistant/internal/store"
)

// BuildFilter combines an owner, an optional free-text description and
// optional explicit bounds into a store filter. When rawText contains a
// date reference, the resolved whole-day range replaces the explicit
// bounds entirely and only the residual text (if any) becomes the
// substring filter, so a resolved date is never combined with the
// unprocessed query text. An empty rawText passes the bounds through
// with no substring filter.
func BuildFilter(ownerID, rawText string, timeMin, timeMax *time.Time, now time.Time) model.MeetingFilter {
	f := model.MeetingFilter{OwnerID: ownerID, TimeMin: timeMin, TimeMax: timeMax}
	if rawText == "" {
		return f
	}

	r, residual := datequery.Resolve(rawText, now)
	if r != nil {
		f.TimeMin = &r.Start
		f.TimeMax = &r.End
	}
	if residual != "" {
		f.Query = &residual
	}
	return f
}

// Search runs BuildFilter against the store. This is the "smart" lookup
// every action shares: a date phrase inside rawText narrows the search
// to that day and the rest of the phrase matches title or location.
func Search(ctx context.Context, meetings store.Meetings, ownerID, rawText string, timeMin, timeMax *time.Time, now time.Time) ([]*model.Meeting, error) {
	return meetings.Search(ctx, BuildFilter(ownerID, rawText, timeMin, timeMax, now))
}
