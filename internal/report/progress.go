package report

import (
	"slices"
	"time"
)

// AddProgress adds a record's completion rate to t and remembers its title.
// Titles keep first-insertion order; repeats and empty titles are dropped.
func AddProgress(t WindowTotals, r ProgressRecord) WindowTotals {
	t.ProgressSum += r.Rate
	t.ProgressCount++
	// Clip so appending never writes into a backing array shared with the caller's totals.
	t.Titles = slices.Clip(t.Titles)
	if r.Title != "" && !slices.Contains(t.Titles, r.Title) {
		t.Titles = append(t.Titles, r.Title)
	}
	return t
}

// FoldProgress folds every record that belongs to window w into init.
// A record belongs when the policy places its start date in the window and
// its period type is unset or matches the window.
func FoldProgress(records []ProgressRecord, init WindowTotals, w Window, policy Policy, now time.Time) WindowTotals {
	t := init
	for _, r := range records {
		if !periodMatches(r.PeriodType, w) {
			continue
		}
		if policy.Classify(r.StartDate, now).In(w) {
			t = AddProgress(t, r)
		}
	}
	return t
}

// Average returns the rounded mean completion rate, 0 for an empty window.
func Average(t WindowTotals) int {
	if t.ProgressCount == 0 {
		return 0
	}
	return roundHalfUp(t.ProgressSum / float64(t.ProgressCount))
}

func periodMatches(p PeriodType, w Window) bool {
	switch p {
	case "":
		return true
	case PeriodWeekly:
		return w == Weekly
	case PeriodMonthly:
		return w == Monthly
	default:
		return false
	}
}
