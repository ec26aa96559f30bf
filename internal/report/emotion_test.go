package report

import (
	"math"
	"testing"
)

func TestPercentagesZeroMass(t *testing.T) {
	got := Percentages(WindowTotals{})
	if got != (EmotionPercentages{}) {
		t.Errorf("Percentages(empty) = %+v, want all zero", got)
	}
}

func TestPercentagesIndependentRounding(t *testing.T) {
	tests := []struct {
		name   string
		scores EmotionScores
		want   EmotionPercentages
		sum    int
	}{
		{
			name:   "two thirds",
			scores: EmotionScores{Joy: 1, Sadness: 2},
			want:   EmotionPercentages{Joy: 33, Sadness: 67},
			sum:    100,
		},
		{
			name:   "three equal parts round down",
			scores: EmotionScores{Joy: 1, Anger: 1, Anxiety: 1},
			want:   EmotionPercentages{Joy: 33, Anger: 33, Anxiety: 33},
			sum:    99,
		},
		{
			name:   "halves round up",
			scores: EmotionScores{Joy: 1, Satisfaction: 7},
			want:   EmotionPercentages{Joy: 13, Satisfaction: 88},
			sum:    101,
		},
	}

	for _, tt := range tests {
		totals := AddEmotion(WindowTotals{}, tt.scores)
		got := Percentages(totals)
		if got != tt.want {
			t.Errorf("%s: Percentages = %+v, want %+v", tt.name, got, tt.want)
		}
		sum := got.Joy + got.Sadness + got.Anger + got.Anxiety + got.Satisfaction
		if sum != tt.sum {
			t.Errorf("%s: sum = %d, want %d", tt.name, sum, tt.sum)
		}
	}
}

func TestPercentagesMatchFormula(t *testing.T) {
	s := EmotionScores{Joy: 4, Sadness: 9, Anger: 2, Anxiety: 11, Satisfaction: 5}
	totals := AddEmotion(WindowTotals{}, s)
	got := Percentages(totals)

	mass := s.Sum()
	check := func(name string, part float64, pct int) {
		want := int(math.Floor(100*part/mass + 0.5))
		if pct != want {
			t.Errorf("%s = %d, want %d", name, pct, want)
		}
	}
	check("joy", s.Joy, got.Joy)
	check("sadness", s.Sadness, got.Sadness)
	check("anger", s.Anger, got.Anger)
	check("anxiety", s.Anxiety, got.Anxiety)
	check("satisfaction", s.Satisfaction, got.Satisfaction)
}

func TestFoldEmotionsRestrictsToWindow(t *testing.T) {
	records := []EmotionScoreRecord{
		{Date: day(2025, 3, 10), Scores: EmotionScores{Joy: 2, Sadness: 1}},
		{Date: day(2025, 3, 2), Scores: EmotionScores{Anger: 3}},
		{Date: day(2025, 2, 20), Scores: EmotionScores{Anxiety: 100}},
	}

	weekly := FoldEmotions(records, WindowTotals{}, Weekly, CalendarPolicy{}, refNow)
	if weekly.Mass != 3 {
		t.Errorf("weekly mass = %v, want 3", weekly.Mass)
	}
	monthly := FoldEmotions(records, WindowTotals{}, Monthly, CalendarPolicy{}, refNow)
	if monthly.Mass != 6 {
		t.Errorf("monthly mass = %v, want 6", monthly.Mass)
	}
	if monthly.Emotions.Anxiety != 0 {
		t.Errorf("monthly anxiety = %v, want 0 (previous month)", monthly.Emotions.Anxiety)
	}
}

func TestAddEmotionDoesNotMutateInput(t *testing.T) {
	init := WindowTotals{Mass: 1, Emotions: EmotionScores{Joy: 1}}
	_ = AddEmotion(init, EmotionScores{Joy: 5})
	if init.Mass != 1 || init.Emotions.Joy != 1 {
		t.Errorf("input totals changed: %+v", init)
	}
}
