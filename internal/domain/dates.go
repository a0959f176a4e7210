package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var datePhraseRe = regexp.MustCompile(
	`(?i)\b(` +
		`\d{4}-\d{2}-\d{2}` + // YYYY-MM-DD
		`|` +
		`(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+\d{4}` +
		`|` +
		`today|yesterday` +
		`|` +
		`\d+\s+(?:day|week|month|year)s?\s+ago` +
		`|` +
		`last\s+(?:week|month|year)` +
		`)`,
)

// ExtractTimeFromText tries to extract a creation-date filter from free text.
// Relative phrases are resolved against ref in loc.
func ExtractTimeFromText(
	text string,
	ref time.Time,
	loc *time.Location,
) (time.Time, bool) {

	m := datePhraseRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return time.Time{}, false
	}

	token := strings.ToLower(strings.TrimSpace(m[1]))

	if t, ok := resolveRelative(token, ref, loc); ok {
		return t, true
	}

	t, err := dateparse.ParseIn(token, loc)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func resolveRelative(token string, ref time.Time, loc *time.Location) (time.Time, bool) {
	ref = dateOnly(ref.In(loc))

	switch token {
	case "today":
		return ref, true
	case "yesterday":
		return ref.AddDate(0, 0, -1), true
	case "last week":
		return ref.AddDate(0, 0, -7), true
	case "last month":
		return ref.AddDate(0, -1, 0), true
	case "last year":
		return ref.AddDate(-1, 0, 0), true
	}

	if before, ok := strings.CutSuffix(token, " ago"); ok {
		return resolveAgo(before, ref)
	}

	return time.Time{}, false
}

func resolveAgo(phrase string, ref time.Time) (time.Time, bool) {
	fields := strings.Fields(phrase)
	if len(fields) != 2 {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return time.Time{}, false
	}

	switch strings.TrimSuffix(fields[1], "s") {
	case "day":
		return ref.AddDate(0, 0, -n), true
	case "week":
		return ref.AddDate(0, 0, -7*n), true
	case "month":
		return ref.AddDate(0, -n, 0), true
	case "year":
		return ref.AddDate(-n, 0, 0), true
	default:
		return time.Time{}, false
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
