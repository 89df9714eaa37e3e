// Package datequery extracts implicit date references from free-text
// meeting queries written in Russian ("завтра", "8 ноября", "12.11")
// and turns them into whole-day time ranges.
package datequery

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Range is a half-open time interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// ruMonths maps nominative and genitive month names to the month index.
// Read-only after initialization.
var ruMonths = map[string]time.Month{
	"январь": time.January, "января": time.January,
	"февраль": time.February, "февраля": time.February,
	"март": time.March, "марта": time.March,
	"апрель": time.April, "апреля": time.April,
	"май": time.May, "мая": time.May,
	"июнь": time.June, "июня": time.June,
	"июль": time.July, "июля": time.July,
	"август": time.August, "августа": time.August,
	"сентябрь": time.September, "сентября": time.September,
	"октябрь": time.October, "октября": time.October,
	"ноябрь": time.November, "ноября": time.November,
	"декабрь": time.December, "декабря": time.December,
}

const monthAlternation = "января|февраля|марта|апреля|мая|июня|июля|августа|сентября|октября|ноября|декабря|" +
	"январь|февраль|март|апрель|май|июнь|июль|август|сентябрь|октябрь|ноябрь|декабрь"

var (
	namedDateRe   = regexp.MustCompile(`(\d{1,2})\s*(` + monthAlternation + `)`)
	numericDateRe = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})`)
)

// relativeDays is evaluated in order; "послезавтра" must precede
// "завтра" so the compound word is not consumed as its suffix.
var relativeDays = []struct {
	word   string
	offset int
}{
	{"послезавтра", 2},
	{"сегодня", 0},
	{"завтра", 1},
}

// Resolve scans text for an embedded date reference and, when one is found,
// returns the whole-day range it denotes plus the text with the matched
// substring removed. Matchers are tried in a fixed precedence order
// (relative day words, then "8 ноября" style phrases, then "8.11" style
// phrases); only the first match is extracted and removed, once. An empty
// residual means the whole phrase was a date reference.
//
// The reference time also fixes the year for month/day phrases: a month at
// or after the current one resolves to the current year, an earlier month
// to the next year. Dates described without a year are assumed to never be
// more than twelve months in the past.
func Resolve(text string, now time.Time) (*Range, string) {
	lower := strings.ToLower(text)

	for _, rel := range relativeDays {
		if idx := strings.Index(lower, rel.word); idx >= 0 {
			day := now.UTC().AddDate(0, 0, rel.offset)
			return dayRange(day.Year(), day.Month(), day.Day()), cutFirst(lower, rel.word)
		}
	}

	if m := namedDateRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := ruMonths[m[2]]
		if r := validDayRange(inferYear(month, now), month, day); r != nil {
			return r, cutFirst(lower, m[0])
		}
	}

	if m := numericDateRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		monthNum, _ := strconv.Atoi(m[2])
		if monthNum >= 1 && monthNum <= 12 {
			month := time.Month(monthNum)
			if r := validDayRange(inferYear(month, now), month, day); r != nil {
				return r, cutFirst(lower, m[0])
			}
		}
	}

	return nil, strings.TrimSpace(lower)
}

// MonthRange resolves a list-period phrase ("этот месяц", "ноябрь",
// "ноября") into a whole-month range. Returns false when the phrase is
// not a recognized month reference.
func MonthRange(phrase string, now time.Time) (*Range, bool) {
	p := strings.ToLower(strings.TrimSpace(phrase))
	now = now.UTC()

	if p == "этот месяц" || p == "в этом месяце" {
		return monthRangeAt(now.Year(), now.Month()), true
	}
	if month, ok := ruMonths[p]; ok {
		return monthRangeAt(inferYear(month, now), month), true
	}
	return nil, false
}

// inferYear picks the calendar year for a month named without one: the
// current year when the month has not passed yet, the next year otherwise.
func inferYear(month time.Month, now time.Time) int {
	if month >= now.UTC().Month() {
		return now.UTC().Year()
	}
	return now.UTC().Year() + 1
}

func dayRange(year int, month time.Month, day int) *Range {
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &Range{Start: start, End: start.AddDate(0, 0, 1)}
}

func monthRangeAt(year int, month time.Month) *Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return &Range{Start: start, End: start.AddDate(0, 1, 0)}
}

// validDayRange builds the day range only when the day exists in the
// month; "31 ноября" is a non-match, not an error.
func validDayRange(year int, month time.Month, day int) *Range {
	if day < 1 {
		return nil
	}
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if start.Month() != month || start.Day() != day {
		return nil
	}
	return &Range{Start: start, End: start.AddDate(0, 0, 1)}
}

// cutFirst removes the first occurrence of sub from s and trims the result.
func cutFirst(s, sub string) string {
	if idx := strings.Index(s, sub); idx >= 0 {
		s = s[:idx] + s[idx+len(sub):]
	}
	return strings.TrimSpace(s)
}
