package report

import "time"

// PeriodType marks a goal report as belonging to a weekly or monthly window.
type PeriodType string

const (
	PeriodWeekly  PeriodType = "WEEKLY"
	PeriodMonthly PeriodType = "MONTHLY"
)

// EmotionScores holds the five raw emotion scores of one experience.
type EmotionScores struct {
	Joy          float64 `json:"joy" validate:"gte=0"`
	Sadness      float64 `json:"sadness" validate:"gte=0"`
	Anger        float64 `json:"anger" validate:"gte=0"`
	Anxiety      float64 `json:"anxiety" validate:"gte=0"`
	Satisfaction float64 `json:"satisfaction" validate:"gte=0"`
}

// Sum returns the emotion mass of the scores.
func (s EmotionScores) Sum() float64 {
	return s.Joy + s.Sadness + s.Anger + s.Anxiety + s.Satisfaction
}

func (s EmotionScores) add(o EmotionScores) EmotionScores {
	return EmotionScores{
		Joy:          s.Joy + o.Joy,
		Sadness:      s.Sadness + o.Sadness,
		Anger:        s.Anger + o.Anger,
		Anxiety:      s.Anxiety + o.Anxiety,
		Satisfaction: s.Satisfaction + o.Satisfaction,
	}
}

// ExperienceRecord is one logged experience as fetched for the feedback list.
// EmotionLabel is empty when the user picked no label; Scores is nil when
// the experience has no emotion row.
type ExperienceRecord struct {
	UserID       int64     `validate:"gt=0"`
	Date         time.Time `validate:"required"`
	Feedback     *string
	EmotionLabel string
	Scores       *EmotionScores
}

// EmotionScoreRecord is an emotion row joined with its experience date.
type EmotionScoreRecord struct {
	Date   time.Time `validate:"required"`
	Scores EmotionScores
}

// ProgressRecord is a goal or goal report with its completion rate.
type ProgressRecord struct {
	StartDate  time.Time  `validate:"required"`
	Rate       float64    `validate:"gte=0,lte=100"`
	PeriodType PeriodType `validate:"omitempty,oneof=WEEKLY MONTHLY"`
	Title      string
}

// PeerCandidate is a saved goal of another user in the requester's age band.
type PeerCandidate struct {
	Name      string
	Title     string    `validate:"required"`
	StartDate time.Time `validate:"required"`
}

// PeerQuery describes the candidate pool the store should fetch for SamplePeers.
type PeerQuery struct {
	UserID      int64
	Age         int
	MaxAgeDelta int
	Limit       int
}

// SortOrder controls the date ordering of the feedback list.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)
