// Package storetest holds a compliance suite shared by the store drivers.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/strelka-labs/meeting-assistant/internal/model"
	"github.com/strelka-labs/meeting-assistant/internal/store"
)

func strPtr(s string) *string { return &s }

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	meetings := s.Meetings()

	ownerID := "o-" + uuid.New().String()

	nov8 := time.Date(2025, 11, 8, 20, 0, 0, 0, time.UTC)
	nov10 := time.Date(2025, 11, 10, 15, 0, 0, 0, time.UTC)
	nov20 := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)

	// Create
	m1, err := meetings.Create(ctx, &model.Meeting{
		OwnerID: ownerID, Title: "С Региной", StartTime: nov8,
		DurationMinutes: 30, Location: strPtr("Уфа, Королева 30"),
	})
	if err != nil {
		t.Fatalf("Create m1: %v", err)
	}
	if m1.MeetingID == "" {
		t.Fatal("Create: empty meeting id")
	}
	if _, err := meetings.Create(ctx, &model.Meeting{
		OwnerID: ownerID, Title: "С Лейсан", StartTime: nov10, DurationMinutes: 60,
	}); err != nil {
		t.Fatalf("Create m2: %v", err)
	}
	if _, err := meetings.Create(ctx, &model.Meeting{
		OwnerID: ownerID, Title: "С Региной повторно", StartTime: nov20, DurationMinutes: 30,
	}); err != nil {
		t.Fatalf("Create m3: %v", err)
	}

	// Round-trip by substring, no date filter
	got, err := meetings.Search(ctx, model.MeetingFilter{OwnerID: ownerID, Query: strPtr("лейсан")})
	if err != nil || len(got) != 1 {
		t.Fatalf("Search by title: n=%d err=%v", len(got), err)
	}
	if got[0].Title != "С Лейсан" || !got[0].StartTime.Equal(nov10) || got[0].DurationMinutes != 60 {
		t.Fatalf("Search round-trip mismatch: %+v", got[0])
	}

	// Case-insensitive contains against title OR location, Cyrillic included
	got, err = meetings.Search(ctx, model.MeetingFilter{OwnerID: ownerID, Query: strPtr("КОРОЛЕВА")})
	if err != nil || len(got) != 1 || got[0].Title != "С Региной" {
		t.Fatalf("Search by location: got=%+v err=%v", got, err)
	}

	// Ascending start-time order
	got, err = meetings.Search(ctx, model.MeetingFilter{OwnerID: ownerID})
	if err != nil || len(got) != 3 {
		t.Fatalf("Search all: n=%d err=%v", len(got), err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].StartTime.Before(got[i-1].StartTime) {
			t.Fatalf("Search not ascending: %v before %v", got[i].StartTime, got[i-1].StartTime)
		}
	}

	// Half-open interval: min inclusive, max exclusive
	got, err = meetings.Search(ctx, model.MeetingFilter{OwnerID: ownerID, TimeMin: &nov8, TimeMax: &nov10})
	if err != nil || len(got) != 1 || got[0].Title != "С Региной" {
		t.Fatalf("Search interval: got=%+v err=%v", got, err)
	}

	// Owner isolation
	got, err = meetings.Search(ctx, model.MeetingFilter{OwnerID: "someone-else"})
	if err != nil || len(got) != 0 {
		t.Fatalf("Search other owner: n=%d err=%v", len(got), err)
	}

	// LatestMatch prefers the most recent of several matches
	latest, err := meetings.LatestMatch(ctx, ownerID, "региной")
	if err != nil {
		t.Fatalf("LatestMatch: %v", err)
	}
	if latest.Title != "С Региной повторно" {
		t.Fatalf("LatestMatch: got %q", latest.Title)
	}
	if _, err := meetings.LatestMatch(ctx, ownerID, "нет такой"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("LatestMatch miss: err=%v, want ErrNotFound", err)
	}

	// UpdateLocation by natural key
	if err := meetings.UpdateLocation(ctx, ownerID, "С Лейсан", nov10, "Уфа, Ленина 5"); err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
	got, err = meetings.Search(ctx, model.MeetingFilter{OwnerID: ownerID, Query: strPtr("ленина")})
	if err != nil || len(got) != 1 || got[0].Title != "С Лейсан" {
		t.Fatalf("Search after UpdateLocation: got=%+v err=%v", got, err)
	}

	// UpdateTitle by natural key; the old title no longer matches
	if err := meetings.UpdateTitle(ctx, ownerID, "С Лейсан", nov10, "С Лейсан и Региной"); err != nil {
		t.Fatalf("UpdateTitle: %v", err)
	}
	got, err = meetings.Search(ctx, model.MeetingFilter{OwnerID: ownerID, Query: strPtr("лейсан и региной")})
	if err != nil || len(got) != 1 {
		t.Fatalf("Search after UpdateTitle: n=%d err=%v", len(got), err)
	}

	// Updates against a missing natural key surface ErrNotFound
	if err := meetings.UpdateLocation(ctx, ownerID, "не существует", nov10, "x"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateLocation miss: err=%v, want ErrNotFound", err)
	}
	if err := meetings.UpdateTitle(ctx, ownerID, "не существует", nov10, "x"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateTitle miss: err=%v, want ErrNotFound", err)
	}
}
