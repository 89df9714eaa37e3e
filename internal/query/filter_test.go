package query

import (
	"testing"
	"time"

	"github.com/strelka-labs/meeting-assistant/internal/model"
)

var refNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func TestBuildFilter_DateReferenceOverridesExplicitBounds(t *testing.T) {
	min := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	f := BuildFilter("owner-1", "кофе завтра", &min, &max, refNow)

	wantMin := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	if f.TimeMin == nil || !f.TimeMin.Equal(wantMin) {
		t.Fatalf("TimeMin = %v, want %v", f.TimeMin, wantMin)
	}
	if f.TimeMax == nil || !f.TimeMax.Equal(wantMin.AddDate(0, 0, 1)) {
		t.Fatalf("TimeMax = %v", f.TimeMax)
	}
	if f.Query == nil || *f.Query != "кофе" {
		t.Fatalf("Query = %v, want кофе", f.Query)
	}
}

func TestBuildFilter_PureDatePhraseHasNoSubstringFilter(t *testing.T) {
	f := BuildFilter("owner-1", "завтра", nil, nil, refNow)
	if f.Query != nil {
		t.Fatalf("Query = %q, want nil", *f.Query)
	}
	if f.TimeMin == nil || f.TimeMax == nil {
		t.Fatal("expected day bounds")
	}
}

func TestBuildFilter_NoDateKeepsBoundsAndFullText(t *testing.T) {
	min := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	f := BuildFilter("owner-1", "С Региной", &min, nil, refNow)
	if f.TimeMin == nil || !f.TimeMin.Equal(min) {
		t.Fatalf("TimeMin = %v, want %v", f.TimeMin, min)
	}
	if f.Query == nil || *f.Query != "с региной" {
		t.Fatalf("Query = %v", f.Query)
	}
}

func TestBuildFilter_EmptyTextPassesBoundsThrough(t *testing.T) {
	min := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	f := BuildFilter("owner-1", "", &min, &max, refNow)
	if f.Query != nil {
		t.Fatal("expected no substring filter")
	}
	if f.TimeMin == nil || !f.TimeMin.Equal(min) || f.TimeMax == nil || !f.TimeMax.Equal(max) {
		t.Fatalf("bounds = %v..%v", f.TimeMin, f.TimeMax)
	}
	if f.OwnerID != "owner-1" {
		t.Fatalf("OwnerID = %s", f.OwnerID)
	}
}

func TestResolveUnique(t *testing.T) {
	if got := ResolveUnique(nil); got.Outcome != OutcomeNotFound {
		t.Fatalf("empty list: outcome = %v", got.Outcome)
	}

	one := &model.Meeting{Title: "С Лейсан"}
	if got := ResolveUnique([]*model.Meeting{one}); got.Outcome != OutcomeUnique || got.Meeting != one {
		t.Fatalf("single candidate: got %+v", got)
	}

	two := []*model.Meeting{{Title: "a"}, {Title: "b"}}
	got := ResolveUnique(two)
	if got.Outcome != OutcomeAmbiguous {
		t.Fatalf("two candidates: outcome = %v", got.Outcome)
	}
	if got.Meeting != nil {
		t.Fatal("ambiguous resolution must not select a meeting")
	}
	if len(got.Candidates) != 2 || got.Candidates[0] != two[0] {
		t.Fatalf("candidates not preserved in order: %+v", got.Candidates)
	}
}
