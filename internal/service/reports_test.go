package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lazypower/growthlog/internal/report"
	"github.com/lazypower/growthlog/internal/store"
)

var now = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func intp(v int) *int { return &v }

func setup(t *testing.T) (*Reports, *store.DB) {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, report.CalendarPolicy{}, 5, 10), db
}

func mustUser(t *testing.T, db *store.DB, name string, age *int) int64 {
	t.Helper()
	u, err := db.CreateUser(context.Background(), name, age)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u.ID
}

func TestFeedbackListUnknownUser(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.FeedbackList(context.Background(), 42, report.SortAsc)
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestFeedbackListEmpty(t *testing.T) {
	svc, db := setup(t)
	uid := mustUser(t, db, "kim", nil)

	list, err := svc.FeedbackList(context.Background(), uid, report.SortAsc)
	if err != nil {
		t.Fatalf("FeedbackList: %v", err)
	}
	if !list.Empty || list.Message != report.NoFeedbackMessage {
		t.Errorf("list = %+v, want empty marker", list)
	}
}

func TestFeedbackListDesc(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	uid := mustUser(t, db, "kim", nil)

	for _, d := range []int{3, 10, 7} {
		if _, err := db.AddExperience(ctx, report.ExperienceRecord{
			UserID:       uid,
			Date:         day(d),
			EmotionLabel: report.LabelSoSo,
		}); err != nil {
			t.Fatalf("AddExperience: %v", err)
		}
	}

	list, err := svc.FeedbackList(ctx, uid, report.SortDesc)
	if err != nil {
		t.Fatalf("FeedbackList: %v", err)
	}
	if list.Sort != report.SortDesc || len(list.Feedbacks) != 3 {
		t.Fatalf("list = %+v", list)
	}
	if list.Feedbacks[0].Date != "2025-03-10" || list.Feedbacks[2].Date != "2025-03-03" {
		t.Errorf("order = %s..%s, want 2025-03-10..2025-03-03", list.Feedbacks[0].Date, list.Feedbacks[2].Date)
	}
	if e := list.Feedbacks[0].Emotion; e == nil || *e != report.CategorySoSo {
		t.Errorf("emotion = %v, want soso", e)
	}
}

func TestPeriodDetail(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	uid := mustUser(t, db, "나", intp(30))
	peer := mustUser(t, db, "김민수", intp(28))

	if _, err := db.AddReport(ctx, uid, report.ProgressRecord{StartDate: day(10), Rate: 60, PeriodType: report.PeriodWeekly, Title: "run"}); err != nil {
		t.Fatalf("AddReport: %v", err)
	}
	if _, err := db.AddReport(ctx, uid, report.ProgressRecord{StartDate: day(1), Rate: 30, PeriodType: report.PeriodMonthly, Title: "read"}); err != nil {
		t.Fatalf("AddReport: %v", err)
	}
	if _, err := db.AddExperience(ctx, report.ExperienceRecord{
		UserID: uid,
		Date:   day(11),
		Scores: &report.EmotionScores{Joy: 3, Anger: 1},
	}); err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if err := db.AddGoal(ctx, &store.Goal{UserID: peer, Title: "swim", StartDate: day(9), Saved: true}); err != nil {
		t.Fatalf("AddGoal: %v", err)
	}

	d, err := svc.PeriodDetail(ctx, uid, true, now)
	if err != nil {
		t.Fatalf("PeriodDetail: %v", err)
	}
	if d.AverageWeeklyProgress != 60 || d.AverageMonthlyProgress != 30 {
		t.Errorf("averages = %d/%d, want 60/30", d.AverageWeeklyProgress, d.AverageMonthlyProgress)
	}
	if d.WeeklyEmotions.Joy != 75 || d.WeeklyEmotions.Anger != 25 {
		t.Errorf("WeeklyEmotions = %+v, want joy 75 anger 25", d.WeeklyEmotions)
	}
	if len(d.WeeklyPeerGoals) != 1 || d.WeeklyPeerGoals[0] != (report.PeerGoal{User: "김ㅇㅇ", Title: "swim"}) {
		t.Errorf("WeeklyPeerGoals = %v", d.WeeklyPeerGoals)
	}

	without, err := svc.PeriodDetail(ctx, uid, false, now)
	if err != nil {
		t.Fatalf("PeriodDetail without peers: %v", err)
	}
	if without.WeeklyPeerGoals != nil || without.MonthlyPeerGoals != nil {
		t.Error("peer lists present when peers were not requested")
	}
}

func TestPeriodDetailUnknownAge(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	uid := mustUser(t, db, "lee", nil)
	if _, err := db.AddReport(ctx, uid, report.ProgressRecord{StartDate: day(10), Rate: 50, PeriodType: report.PeriodWeekly}); err != nil {
		t.Fatalf("AddReport: %v", err)
	}

	d, err := svc.PeriodDetail(ctx, uid, true, now)
	if err != nil {
		t.Fatalf("PeriodDetail: %v", err)
	}
	if d.WeeklyPeerGoals == nil || len(d.WeeklyPeerGoals) != 0 {
		t.Errorf("WeeklyPeerGoals = %#v, want empty non-nil", d.WeeklyPeerGoals)
	}
	if d.MonthlyPeerGoals == nil || len(d.MonthlyPeerGoals) != 0 {
		t.Errorf("MonthlyPeerGoals = %#v, want empty non-nil", d.MonthlyPeerGoals)
	}
}

func TestPeriodDetailNoData(t *testing.T) {
	svc, db := setup(t)
	uid := mustUser(t, db, "lee", intp(20))

	d, err := svc.PeriodDetail(context.Background(), uid, true, now)
	if err != nil {
		t.Fatalf("PeriodDetail: %v", err)
	}
	if !d.NoData || d.Message != report.NoDataMessage {
		t.Errorf("detail = %+v, want no-data marker", d)
	}
}

func TestPeriodDetailUnknownUser(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.PeriodDetail(context.Background(), 9, true, now)
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestPeerGoals(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	uid := mustUser(t, db, "나", intp(30))
	peer := mustUser(t, db, "이영희", intp(33))
	old := mustUser(t, db, "박노인", intp(70))

	goals := []*store.Goal{
		{UserID: peer, Title: "swim", StartDate: day(11), Saved: true},
		{UserID: peer, Title: "draw", StartDate: day(2), Saved: true},
		{UserID: old, Title: "walk", StartDate: day(11), Saved: true},
	}
	for _, g := range goals {
		if err := db.AddGoal(ctx, g); err != nil {
			t.Fatalf("AddGoal: %v", err)
		}
	}

	got, err := svc.PeerGoals(ctx, uid, now)
	if err != nil {
		t.Fatalf("PeerGoals: %v", err)
	}
	if len(got.Weekly) != 1 || got.Weekly[0] != (report.PeerGoal{User: "이ㅇㅇ", Title: "swim"}) {
		t.Errorf("Weekly = %v, want swim only", got.Weekly)
	}
	if len(got.Monthly) != 2 {
		t.Errorf("Monthly = %v, want swim and draw", got.Monthly)
	}

	if _, err := svc.PeerGoals(ctx, 999, now); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestPeerGoalsUnknownAge(t *testing.T) {
	svc, db := setup(t)
	uid := mustUser(t, db, "lee", nil)

	got, err := svc.PeerGoals(context.Background(), uid, now)
	if err != nil {
		t.Fatalf("PeerGoals: %v", err)
	}
	if got.Weekly == nil || got.Monthly == nil || len(got.Weekly)+len(got.Monthly) != 0 {
		t.Errorf("PeerGoals = %#v, want empty non-nil lists", got)
	}
}
