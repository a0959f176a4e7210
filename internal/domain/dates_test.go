package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractTimeFromText(t *testing.T) {
	loc := time.UTC
	ref := time.Date(2026, 3, 15, 10, 0, 0, 0, loc)

	tests := map[string]struct {
		text     string
		expected time.Time
		ok       bool
	}{
		"today": {
			text:     "clusters created today",
			expected: time.Date(2026, 3, 15, 0, 0, 0, 0, loc),
			ok:       true,
		},
		"yesterday": {
			text:     "anything created yesterday",
			expected: time.Date(2026, 3, 14, 0, 0, 0, 0, loc),
			ok:       true,
		},
		"days-ago": {
			text:     "created 10 days ago",
			expected: time.Date(2026, 3, 5, 0, 0, 0, 0, loc),
			ok:       true,
		},
		"weeks-ago": {
			text:     "clusters from 2 weeks ago",
			expected: time.Date(2026, 3, 1, 0, 0, 0, 0, loc),
			ok:       true,
		},
		"months-ago": {
			text:     "spun up 6 months ago",
			expected: time.Date(2025, 9, 15, 0, 0, 0, 0, loc),
			ok:       true,
		},
		"last-month": {
			text:     "created last month",
			expected: time.Date(2026, 2, 15, 0, 0, 0, 0, loc),
			ok:       true,
		},
		"last-year": {
			text:     "clusters older than last year",
			expected: time.Date(2025, 3, 15, 0, 0, 0, 0, loc),
			ok:       true,
		},
		"iso-date-format": {
			text:     "created before 2025-12-01",
			expected: time.Date(2025, 12, 1, 0, 0, 0, 0, loc),
			ok:       true,
		},
		"month-day-year-format": {
			text:     "created after January 10, 2024",
			expected: time.Date(2024, 1, 10, 0, 0, 0, 0, loc),
			ok:       true,
		},
		"no-date": {
			text: "how many clusters are running",
			ok:   false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := ExtractTimeFromText(tc.text, ref, loc)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}
