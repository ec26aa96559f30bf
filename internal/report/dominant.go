package report

// Dominant is the single-emotion summary shown next to a feedback entry.
// Both fields are nil when nothing can be said about the record.
type Dominant struct {
	Summary  *string
	Category *string
}

// Classifier picks the dominant emotion of one experience.
type Classifier interface {
	Classify(rec ExperienceRecord) Dominant
}

// Labels users pick when logging an experience.
const (
	LabelDown  = "우울했어요"
	LabelHappy = "행복했어요"
	LabelSoSo  = "그저_그랬어요"
)

// Emotion categories. The first three tag categorical labels, the rest
// are the numeric score names.
const (
	CategoryBad          = "bad"
	CategoryHappy        = "happy"
	CategorySoSo         = "soso"
	CategoryJoy          = "joy"
	CategorySadness      = "sadness"
	CategoryAnger        = "anger"
	CategoryAnxiety      = "anxiety"
	CategorySatisfaction = "satisfaction"
)

// NoEmotionSummary is returned by the scored classifier when every score is zero.
const NoEmotionSummary = "표현된 감정이 없는 하루였네요"

type labelSummary struct {
	summary  string
	category string
}

var categoricalTable = map[string]labelSummary{
	LabelDown:  {"슬픈 하루였네요", CategoryBad},
	LabelHappy: {"행복한 하루였네요", CategoryHappy},
	LabelSoSo:  {"그저 그런 하루였네요", CategorySoSo},
}

// CategoricalClassifier maps the user's emotion label through a fixed table.
type CategoricalClassifier struct{}

func (CategoricalClassifier) Classify(rec ExperienceRecord) Dominant {
	ls, ok := categoricalTable[rec.EmotionLabel]
	if !ok {
		return Dominant{}
	}
	return Dominant{Summary: ptr(ls.summary), Category: ptr(ls.category)}
}

type scoredEmotion struct {
	category string
	summary  string
	value    func(EmotionScores) float64
}

// scoredPrecedence is both the category table and the tie-break order:
// on equal scores the entry listed first wins.
var scoredPrecedence = []scoredEmotion{
	{CategoryJoy, "기쁜 하루였네요", func(s EmotionScores) float64 { return s.Joy }},
	{CategorySadness, "슬픈 하루였네요", func(s EmotionScores) float64 { return s.Sadness }},
	{CategoryAnger, "화가 난 하루였네요", func(s EmotionScores) float64 { return s.Anger }},
	{CategoryAnxiety, "불안한 하루였네요", func(s EmotionScores) float64 { return s.Anxiety }},
	{CategorySatisfaction, "만족스러운 하루였네요", func(s EmotionScores) float64 { return s.Satisfaction }},
}

// ScoredClassifier picks the highest non-zero score of the record.
type ScoredClassifier struct{}

func (ScoredClassifier) Classify(rec ExperienceRecord) Dominant {
	if rec.Scores == nil {
		return Dominant{}
	}
	best := -1
	bestValue := 0.0
	for i, e := range scoredPrecedence {
		v := e.value(*rec.Scores)
		if v <= 0 {
			continue
		}
		// strictly greater keeps the earlier entry on ties
		if best < 0 || v > bestValue {
			best, bestValue = i, v
		}
	}
	if best < 0 {
		return Dominant{Summary: ptr(NoEmotionSummary)}
	}
	e := scoredPrecedence[best]
	return Dominant{Summary: ptr(e.summary), Category: ptr(e.category)}
}

// DefaultClassifier uses the label when the user picked one and falls back
// to the numeric scores otherwise.
type DefaultClassifier struct{}

func (DefaultClassifier) Classify(rec ExperienceRecord) Dominant {
	if rec.EmotionLabel != "" {
		return CategoricalClassifier{}.Classify(rec)
	}
	return ScoredClassifier{}.Classify(rec)
}

func ptr[T any](v T) *T { return &v }
