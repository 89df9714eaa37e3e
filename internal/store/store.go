package store

import (
	"context"
	"time"

	"github.com/strelka-labs/meeting-assistant/internal/model"
)

// Store exposes persistence operations required by the assistant.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
type Store interface {
	Meetings() Meetings
}

// Meetings is the per-owner meeting record store. Search returns rows in
// ascending start-time order; LatestMatch is the routing-specific lookup
// that returns only the most recent meeting whose title or location
// contains the query. Updates address a row by its natural key
// (owner, title, start time) and return model.ErrNotFound when no row
// matches.
type Meetings interface {
	Create(ctx context.Context, m *model.Meeting) (*model.Meeting, error)
	Search(ctx context.Context, f model.MeetingFilter) ([]*model.Meeting, error)
	LatestMatch(ctx context.Context, ownerID, query string) (*model.Meeting, error)
	UpdateLocation(ctx context.Context, ownerID, title string, start time.Time, newLocation string) error
	UpdateTitle(ctx context.Context, ownerID, title string, start time.Time, newTitle string) error
}

// HealthPinger is implemented by stores that can verify connectivity.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
