package report

import (
	"math"
	"time"
)

// WindowTotals accumulates one window's emotion and progress sums.
// It is a value: the Add and Fold helpers return a new total and never
// modify the one they were given.
type WindowTotals struct {
	Emotions      EmotionScores
	Mass          float64
	ProgressSum   float64
	ProgressCount int
	Titles        []string
}

// EmotionPercentages is the per-category share of a window's emotion mass.
type EmotionPercentages struct {
	Joy          int `json:"joy"`
	Sadness      int `json:"sadness"`
	Anger        int `json:"anger"`
	Anxiety      int `json:"anxiety"`
	Satisfaction int `json:"satisfaction"`
}

// AddEmotion adds one record's scores to t.
func AddEmotion(t WindowTotals, s EmotionScores) WindowTotals {
	t.Emotions = t.Emotions.add(s)
	t.Mass += s.Sum()
	return t
}

// FoldEmotions folds every record that policy places in window w into init.
func FoldEmotions(records []EmotionScoreRecord, init WindowTotals, w Window, policy Policy, now time.Time) WindowTotals {
	t := init
	for _, r := range records {
		if policy.Classify(r.Date, now).In(w) {
			t = AddEmotion(t, r.Scores)
		}
	}
	return t
}

// Percentages converts emotion sums into rounded percentages of the mass.
// Each category is rounded on its own, so the five values may add up to
// 99 or 101.
func Percentages(t WindowTotals) EmotionPercentages {
	return EmotionPercentages{
		Joy:          percent(t.Emotions.Joy, t.Mass),
		Sadness:      percent(t.Emotions.Sadness, t.Mass),
		Anger:        percent(t.Emotions.Anger, t.Mass),
		Anxiety:      percent(t.Emotions.Anxiety, t.Mass),
		Satisfaction: percent(t.Emotions.Satisfaction, t.Mass),
	}
}

func percent(value, total float64) int {
	if total <= 0 {
		return 0
	}
	return roundHalfUp(100 * value / total)
}

// roundHalfUp rounds non-negative values to the nearest integer, halves up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
