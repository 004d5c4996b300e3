package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(offset int) time.Time {
	base := time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local)
	return base.AddDate(0, 0, offset)
}

func TestConsecutiveDays(t *testing.T) {
	tests := []struct {
		name  string
		times []time.Time
		want  int
	}{
		{"empty", nil, 0},
		{"single day", []time.Time{day(0)}, 1},
		{"three day run", []time.Time{day(-2), day(-1), day(0)}, 3},
		{"gap stops the count", []time.Time{day(-2), day(0)}, 1},
		{"multiple uploads same day dedupe", []time.Time{day(0), day(0).Add(2 * time.Hour), day(-1)}, 2},
		{"unsorted input", []time.Time{day(-1), day(0), day(-2)}, 3},
		{"older history beyond gap ignored", []time.Time{day(-10), day(-9), day(-1), day(0)}, 2},
		{"week long run", []time.Time{day(-6), day(-5), day(-4), day(-3), day(-2), day(-1), day(0)}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConsecutiveDays(tt.times))
		})
	}
}

func TestConsecutiveDaysCountsBackwardFromMostRecent(t *testing.T) {
	// Run broken only in the past: Mon, Wed, Thu with Thu most recent.
	times := []time.Time{day(-3), day(-1), day(0)}
	assert.Equal(t, 2, ConsecutiveDays(times))
}
