package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/growthlog/internal/report"
	"github.com/lazypower/growthlog/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo users, experiences, goals and reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		id, err := seed(cmd.Context(), rt.db, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded demo data; try: growthlog report detail %d\n", id)
		return nil
	},
}

// seed inserts one main user with a week of records around now plus three
// peers, and returns the main user's id.
func seed(ctx context.Context, db *store.DB, now time.Time) (int64, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysAgo := func(n int) time.Time { return today.AddDate(0, 0, -n) }
	age := func(v int) *int { return &v }

	me, err := db.CreateUser(ctx, "김하늘", age(27))
	if err != nil {
		return 0, err
	}

	notes := []string{"아침 달리기 5km", "책 50쪽 읽기", "친구와 저녁", "야근"}
	labels := []string{report.LabelHappy, "", report.LabelSoSo, report.LabelDown}
	scores := []*report.EmotionScores{
		{Joy: 4, Satisfaction: 2},
		{Satisfaction: 3, Anxiety: 1},
		nil,
		{Sadness: 2, Anger: 1, Anxiety: 3},
	}
	for i := range notes {
		rec := report.ExperienceRecord{
			UserID:       me.ID,
			Date:         daysAgo(i * 2),
			Feedback:     &notes[i],
			EmotionLabel: labels[i],
			Scores:       scores[i],
		}
		if _, err := db.AddExperience(ctx, rec); err != nil {
			return 0, err
		}
	}

	progress := []report.ProgressRecord{
		{StartDate: daysAgo(1), Rate: 70, PeriodType: report.PeriodWeekly, Title: "매일 운동하기"},
		{StartDate: daysAgo(3), Rate: 55, PeriodType: report.PeriodWeekly, Title: "독서 습관"},
		{StartDate: daysAgo(10), Rate: 40, PeriodType: report.PeriodMonthly, Title: "자격증 공부"},
	}
	for _, p := range progress {
		if _, err := db.AddReport(ctx, me.ID, p); err != nil {
			return 0, err
		}
	}

	peers := []struct {
		name  string
		age   int
		title string
		ago   int
	}{
		{"이서준", 25, "하루 만 보 걷기", 0},
		{"박지민", 30, "영어 회화 연습", 4},
		{"최유진", 29, "명상 10분", 12},
	}
	for _, p := range peers {
		u, err := db.CreateUser(ctx, p.name, age(p.age))
		if err != nil {
			return 0, err
		}
		g := &store.Goal{UserID: u.ID, Title: p.title, StartDate: daysAgo(p.ago), Saved: true}
		if err := db.AddGoal(ctx, g); err != nil {
			return 0, err
		}
	}
	return me.ID, nil
}
