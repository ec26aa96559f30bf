// Package report turns raw experience, emotion and goal rows into weekly and
// monthly summaries.
//
// Everything here is pure computation over rows the caller already fetched:
// no I/O, no implicit clock. Callers pass the reference instant explicitly,
// which keeps reports reproducible in tests and lets an Engine be shared
// across concurrent requests.
package report

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Informational messages returned instead of zero-filled reports.
const (
	NoFeedbackMessage = "해당 사용자의 피드백이 없습니다."
	NoDataMessage     = "해당 사용자의 리포트 데이터가 없습니다."
)

// DateLayout is the calendar-day format used in report output.
const DateLayout = "2006-01-02"

// FeedbackEntry is one experience with its emotion summary.
type FeedbackEntry struct {
	UserID   int64   `json:"user_id"`
	Date     string  `json:"date"`
	Feedback *string `json:"feedback"`
	Summary  *string `json:"summary"`
	Emotion  *string `json:"emotion"`
}

// FeedbackList is the per-experience summary of one user.
// Empty is set, and Message filled, when the user has no experiences.
type FeedbackList struct {
	Empty     bool            `json:"-"`
	Message   string          `json:"message,omitempty"`
	UserID    int64           `json:"user_id,omitempty"`
	Sort      SortOrder       `json:"sort,omitempty"`
	Feedbacks []FeedbackEntry `json:"feedbacks,omitempty"`
}

// UnmarshalJSON restores Empty for a message-only list.
func (l *FeedbackList) UnmarshalJSON(data []byte) error {
	type plain FeedbackList
	var in plain
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*l = FeedbackList(in)
	l.Empty = len(l.Feedbacks) == 0 && l.Message != ""
	return nil
}

// PeriodDetail is the weekly/monthly rollup of one user.
// NoData is set, and Message filled, when there was nothing to aggregate.
// Peer lists are nil when no peer pool was supplied.
type PeriodDetail struct {
	NoData                 bool               `json:"-"`
	Message                string             `json:"message,omitempty"`
	AverageWeeklyProgress  int                `json:"average_weekly_progress"`
	AverageMonthlyProgress int                `json:"average_monthly_progress"`
	WeeklyTitles           []string           `json:"weekly_titles"`
	MonthlyTitles          []string           `json:"monthly_titles"`
	WeeklyEmotions         EmotionPercentages `json:"weekly_emotions"`
	MonthlyEmotions        EmotionPercentages `json:"monthly_emotions"`
	WeeklyPeerGoals        []PeerGoal         `json:"-"`
	MonthlyPeerGoals       []PeerGoal         `json:"-"`
}

// MarshalJSON writes the message alone for a no-data report, and omits the
// peer lists when no pool was sampled.
func (d PeriodDetail) MarshalJSON() ([]byte, error) {
	if d.NoData {
		return json.Marshal(map[string]string{"message": d.Message})
	}
	type plain PeriodDetail
	out := struct {
		plain
		WeeklyPeerGoals  *[]PeerGoal `json:"weekly_peer_goals,omitempty"`
		MonthlyPeerGoals *[]PeerGoal `json:"monthly_peer_goals,omitempty"`
	}{plain: plain(d)}
	if d.WeeklyPeerGoals != nil {
		out.WeeklyPeerGoals = &d.WeeklyPeerGoals
	}
	if d.MonthlyPeerGoals != nil {
		out.MonthlyPeerGoals = &d.MonthlyPeerGoals
	}
	return json.Marshal(out)
}

// UnmarshalJSON reverses MarshalJSON: a lone message becomes a no-data
// report, and absent peer lists stay nil.
func (d *PeriodDetail) UnmarshalJSON(data []byte) error {
	type plain PeriodDetail
	in := struct {
		plain
		WeeklyPeerGoals  *[]PeerGoal `json:"weekly_peer_goals"`
		MonthlyPeerGoals *[]PeerGoal `json:"monthly_peer_goals"`
		WeeklyTitles     *[]string   `json:"weekly_titles"`
	}{}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*d = PeriodDetail(in.plain)
	if in.WeeklyTitles == nil && in.Message != "" {
		d.NoData = true
		return nil
	}
	if in.WeeklyTitles != nil {
		d.WeeklyTitles = *in.WeeklyTitles
	}
	if in.WeeklyPeerGoals != nil {
		d.WeeklyPeerGoals = nonNilPeers(*in.WeeklyPeerGoals)
	}
	if in.MonthlyPeerGoals != nil {
		d.MonthlyPeerGoals = nonNilPeers(*in.MonthlyPeerGoals)
	}
	return nil
}

// Engine assembles reports with one window policy and one classifier.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	Policy     Policy
	Classifier Classifier
}

// New returns an Engine using policy and the default emotion classifier.
// A nil policy selects CalendarPolicy.
func New(policy Policy) *Engine {
	if policy == nil {
		policy = CalendarPolicy{}
	}
	return &Engine{Policy: policy, Classifier: DefaultClassifier{}}
}

// ParseSortOrder accepts "desc" in any case; everything else is ascending.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// BuildFeedbackList summarizes each experience of userID. Records are
// stably ordered by date per order, which leaves already-sorted input as is.
func (e *Engine) BuildFeedbackList(userID int64, records []ExperienceRecord, order SortOrder) FeedbackList {
	if len(records) == 0 {
		return FeedbackList{Empty: true, Message: NoFeedbackMessage}
	}

	sorted := make([]ExperienceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortDesc {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})

	entries := make([]FeedbackEntry, len(sorted))
	for i, rec := range sorted {
		d := e.Classifier.Classify(rec)
		entries[i] = FeedbackEntry{
			UserID:   rec.UserID,
			Date:     rec.Date.Format(DateLayout),
			Feedback: rec.Feedback,
			Summary:  d.Summary,
			Emotion:  d.Category,
		}
	}
	return FeedbackList{UserID: userID, Sort: order, Feedbacks: entries}
}

// BuildPeriodDetail folds goals and emotions into this week's and this
// month's totals relative to now. peers is optional; when non-nil the peer
// lists are sampled from it (an empty pool yields empty lists).
func (e *Engine) BuildPeriodDetail(goals []ProgressRecord, emotions []EmotionScoreRecord, peers *[]PeerCandidate, now time.Time) PeriodDetail {
	if len(goals) == 0 && len(emotions) == 0 {
		return PeriodDetail{NoData: true, Message: NoDataMessage}
	}

	weekly := FoldProgress(goals, WindowTotals{}, Weekly, e.Policy, now)
	weekly = FoldEmotions(emotions, weekly, Weekly, e.Policy, now)
	monthly := FoldProgress(goals, WindowTotals{}, Monthly, e.Policy, now)
	monthly = FoldEmotions(emotions, monthly, Monthly, e.Policy, now)

	detail := PeriodDetail{
		AverageWeeklyProgress:  Average(weekly),
		AverageMonthlyProgress: Average(monthly),
		WeeklyTitles:           nonNil(weekly.Titles),
		MonthlyTitles:          nonNil(monthly.Titles),
		WeeklyEmotions:         Percentages(weekly),
		MonthlyEmotions:        Percentages(monthly),
	}
	if peers != nil {
		sample := SamplePeers(*peers, e.Policy, now)
		detail.WeeklyPeerGoals = sample.Weekly
		detail.MonthlyPeerGoals = sample.Monthly
	}
	return detail
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilPeers(s []PeerGoal) []PeerGoal {
	if s == nil {
		return []PeerGoal{}
	}
	return s
}
