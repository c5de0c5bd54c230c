package services

import (
	"sort"
	"time"
)

type StreakResult struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// TruncateToDay zeroes the clock part of a timestamp. Day gaps are
// computed on truncated values, so two activities 30 hours apart that
// cross a single midnight still count as consecutive days.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ComputeStreaks walks a user's activity timestamps and returns the
// current and longest consecutive-day streaks. Multiple activities on
// the same calendar day count as one active day. CurrentStreak is the
// run ending at today; if there is no activity today it is 0 no matter
// how long a run ended yesterday.
func ComputeStreaks(activity []time.Time, today time.Time) StreakResult {
	if len(activity) == 0 {
		return StreakResult{}
	}

	seen := make(map[time.Time]struct{}, len(activity))
	for _, t := range activity {
		seen[TruncateToDay(t)] = struct{}{}
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	current := 0
	if days[0].Equal(TruncateToDay(today)) {
		current = 1
		for i := 1; i < len(days); i++ {
			if !days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
				break
			}
			current++
		}
	}

	return StreakResult{CurrentStreak: current, LongestStreak: longest}
}
