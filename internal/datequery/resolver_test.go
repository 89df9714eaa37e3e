package datequery

import (
	"testing"
	"time"
)

var refNow = time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

func TestResolve_Tomorrow(t *testing.T) {
	r, residual := Resolve("Встреча с Лейсан завтра в 13:00", refNow)
	if r == nil {
		t.Fatal("expected a resolved range")
	}
	wantStart := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	if !r.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", r.Start, wantStart)
	}
	if r.End.Sub(r.Start) != 24*time.Hour {
		t.Fatalf("range width = %v, want 24h", r.End.Sub(r.Start))
	}
	if residual != "встреча с лейсан  в 13:00" {
		t.Fatalf("residual = %q", residual)
	}
}

func TestResolve_Today(t *testing.T) {
	r, _ := Resolve("что сегодня", refNow)
	if r == nil {
		t.Fatal("expected a resolved range")
	}
	if got := r.Start; !got.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", got)
	}
}

func TestResolve_DayAfterTomorrowWinsOverItsSuffix(t *testing.T) {
	// "послезавтра" contains "завтра"; the compound word must resolve to +2 days.
	r, residual := Resolve("послезавтра", refNow)
	if r == nil {
		t.Fatal("expected a resolved range")
	}
	if got := r.Start; !got.Equal(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", got)
	}
	if residual != "" {
		t.Fatalf("residual = %q, want empty", residual)
	}
}

func TestResolve_NamedMonthYearInference(t *testing.T) {
	// Month at or after the current one resolves to the current year.
	r, _ := Resolve("8 ноября", refNow)
	if r == nil {
		t.Fatal("expected a resolved range")
	}
	if r.Start.Year() != 2025 || r.Start.Month() != time.November || r.Start.Day() != 8 {
		t.Fatalf("start = %v", r.Start)
	}

	// An already-passed month rolls over to the next year.
	r, _ = Resolve("3 марта", refNow)
	if r == nil {
		t.Fatal("expected a resolved range")
	}
	if r.Start.Year() != 2026 || r.Start.Month() != time.March {
		t.Fatalf("start = %v", r.Start)
	}
}

func TestResolve_NominativeMonthForm(t *testing.T) {
	r, _ := Resolve("12 декабрь", refNow)
	if r == nil {
		t.Fatal("expected a resolved range")
	}
	if r.Start.Month() != time.December || r.Start.Day() != 12 {
		t.Fatalf("start = %v", r.Start)
	}
}

func TestResolve_RemovesMatchedSubstringOnce(t *testing.T) {
	_, residual := Resolve("8 ноября перенос на 9 ноября", refNow)
	if residual != "перенос на 9 ноября" {
		t.Fatalf("residual = %q", residual)
	}
}

func TestResolve_NumericDate(t *testing.T) {
	r, residual := Resolve("планерка 12.11", refNow)
	if r == nil {
		t.Fatal("expected a resolved range")
	}
	if r.Start.Year() != 2025 || r.Start.Month() != time.November || r.Start.Day() != 12 {
		t.Fatalf("start = %v", r.Start)
	}
	if residual != "планерка" {
		t.Fatalf("residual = %q", residual)
	}
}

func TestResolve_NumericDateEarlierMonthNextYear(t *testing.T) {
	r, _ := Resolve("5.02", refNow)
	if r == nil {
		t.Fatal("expected a resolved range")
	}
	if r.Start.Year() != 2026 || r.Start.Month() != time.February {
		t.Fatalf("start = %v", r.Start)
	}
}

func TestResolve_InvalidCalendarDateIsNoMatch(t *testing.T) {
	r, residual := Resolve("31.11 планы", refNow)
	if r != nil {
		t.Fatalf("expected no match, got %v", r)
	}
	if residual != "31.11 планы" {
		t.Fatalf("residual = %q", residual)
	}
}

func TestResolve_RelativeWordBeatsNamedDate(t *testing.T) {
	// Precedence, not position: the relative word wins even when the
	// month phrase appears first.
	r, residual := Resolve("8 ноября или завтра", refNow)
	if r == nil {
		t.Fatal("expected a resolved range")
	}
	if got := r.Start; !got.Equal(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", got)
	}
	if residual != "8 ноября или" {
		t.Fatalf("residual = %q", residual)
	}
}

func TestResolve_NoDateReference(t *testing.T) {
	r, residual := Resolve("Встреча с Региной", refNow)
	if r != nil {
		t.Fatalf("expected no match, got %v", r)
	}
	if residual != "встреча с региной" {
		t.Fatalf("residual = %q", residual)
	}
}

func TestMonthRange_NamedMonth(t *testing.T) {
	r, ok := MonthRange("ноябрь", refNow)
	if !ok {
		t.Fatal("expected a month range")
	}
	if !r.Start.Equal(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", r.Start)
	}
	if !r.End.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", r.End)
	}
}

func TestMonthRange_DecemberRollsIntoNextYear(t *testing.T) {
	r, ok := MonthRange("декабря", refNow)
	if !ok {
		t.Fatal("expected a month range")
	}
	if !r.End.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", r.End)
	}
}

func TestMonthRange_ThisMonth(t *testing.T) {
	r, ok := MonthRange("этот месяц", refNow)
	if !ok {
		t.Fatal("expected a month range")
	}
	if !r.Start.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", r.Start)
	}
}

func TestMonthRange_Unrecognized(t *testing.T) {
	if _, ok := MonthRange("на неделе", refNow); ok {
		t.Fatal("expected no match")
	}
}
