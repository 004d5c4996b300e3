package service

import (
	"sort"
	"time"
)

// ConsecutiveDays reduces timestamps to calendar dates and counts how many
// consecutive days lead up to the most recent one. A gap stops the count.
// Empty input yields 0.
func ConsecutiveDays(times []time.Time) int {
	if len(times) == 0 {
		return 0
	}

	seen := make(map[time.Time]struct{}, len(times))
	dates := make([]time.Time, 0, len(times))
	for _, t := range times {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	streak := 1
	for i := 1; i < len(dates); i++ {
		expected := dates[0].AddDate(0, 0, -i)
		if !dates[i].Equal(expected) {
			break
		}
		streak++
	}
	return streak
}
