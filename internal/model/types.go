package model

import "time"

// Meeting is one scheduled meeting owned by a single user.
// (OwnerID, Title, StartTime) acts as the natural key for updates;
// MeetingID is a store-internal surrogate and is never used by the
// query-resolution logic.
type Meeting struct {
	MeetingID       string    `json:"meetingId"`
	OwnerID         string    `json:"ownerId"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Location        *string   `json:"location,omitempty"`
	CreationTime    time.Time `json:"creationTime"`
}

// MeetingFilter captures the filters used when searching meetings.
// TimeMin is inclusive, TimeMax exclusive; together they form the
// half-open interval [TimeMin, TimeMax). Query is a case-insensitive
// "contains" match against title OR location.
type MeetingFilter struct {
	OwnerID string
	TimeMin *time.Time
	TimeMax *time.Time
	Query   *string
}
