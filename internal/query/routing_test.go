package query

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/strelka-labs/meeting-assistant/internal/model"
)

// fakeMeetings implements store.Meetings over an in-memory slice.
type fakeMeetings struct {
	rows       []*model.Meeting
	lastFilter model.MeetingFilter
}

func (f *fakeMeetings) Create(_ context.Context, m *model.Meeting) (*model.Meeting, error) {
	f.rows = append(f.rows, m)
	return m, nil
}

func (f *fakeMeetings) Search(_ context.Context, flt model.MeetingFilter) ([]*model.Meeting, error) {
	f.lastFilter = flt
	var out []*model.Meeting
	for _, m := range f.rows {
		if m.OwnerID != flt.OwnerID {
			continue
		}
		if flt.TimeMin != nil && m.StartTime.Before(*flt.TimeMin) {
			continue
		}
		if flt.TimeMax != nil && !m.StartTime.Before(*flt.TimeMax) {
			continue
		}
		if flt.Query != nil && !matches(m, *flt.Query) {
			continue
		}
		out = append(out, m)
	}
	// ascending start time, same contract as the real drivers
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].StartTime.Before(out[i].StartTime) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeMeetings) LatestMatch(_ context.Context, ownerID, q string) (*model.Meeting, error) {
	var best *model.Meeting
	for _, m := range f.rows {
		if m.OwnerID != ownerID || !matches(m, q) {
			continue
		}
		if best == nil || m.StartTime.After(best.StartTime) {
			best = m
		}
	}
	if best == nil {
		return nil, model.ErrNotFound
	}
	return best, nil
}

func (f *fakeMeetings) UpdateLocation(context.Context, string, string, time.Time, string) error {
	panic("unused")
}

func (f *fakeMeetings) UpdateTitle(context.Context, string, string, time.Time, string) error {
	panic("unused")
}

func matches(m *model.Meeting, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(m.Title), q) {
		return true
	}
	return m.Location != nil && strings.Contains(strings.ToLower(*m.Location), q)
}

func strPtr(s string) *string { return &s }

func TestRoutingLookup_PrefersMostRecentExactMatch(t *testing.T) {
	f := &fakeMeetings{rows: []*model.Meeting{
		{OwnerID: "o1", Title: "С Региной", StartTime: time.Date(2025, 11, 8, 20, 0, 0, 0, time.UTC)},
		{OwnerID: "o1", Title: "С Региной повторно", StartTime: time.Date(2025, 11, 20, 18, 0, 0, 0, time.UTC)},
	}}

	got, err := NewRoutingLookup(f).Resolve(context.Background(), "o1", "региной", refNow)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Title != "С Региной повторно" {
		t.Fatalf("got %q, want the later meeting", got.Title)
	}
}

func TestRoutingLookup_FallsBackToSmartFilter(t *testing.T) {
	f := &fakeMeetings{rows: []*model.Meeting{
		{OwnerID: "o1", Title: "Планерка", StartTime: time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)},
		{OwnerID: "o1", Title: "Созвон", StartTime: time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)},
	}}

	// "завтра" matches nothing verbatim; the date-aware fallback narrows to
	// the day and takes the earliest candidate.
	got, err := NewRoutingLookup(f).Resolve(context.Background(), "o1", "завтра", refNow)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Title != "Планерка" {
		t.Fatalf("got %q, want the earliest of the day", got.Title)
	}
}

func TestRoutingLookup_NotFound(t *testing.T) {
	f := &fakeMeetings{}
	_, err := NewRoutingLookup(f).Resolve(context.Background(), "o1", "ничего", refNow)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRoutingLookup_MatchesLocationToo(t *testing.T) {
	f := &fakeMeetings{rows: []*model.Meeting{
		{OwnerID: "o1", Title: "Обед", Location: strPtr("Уфа, Ленина 5"), StartTime: time.Date(2025, 7, 1, 13, 0, 0, 0, time.UTC)},
	}}

	got, err := NewRoutingLookup(f).Resolve(context.Background(), "o1", "ленина", refNow)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Title != "Обед" {
		t.Fatalf("got %q", got.Title)
	}
}
