package report

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMaskName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"김철수", "김ㅇㅇ"},
		{"Alice", "Aㅇㅇ"},
		{"J", "Jㅇㅇ"},
		{"", "ㅇㅇ"},
	}
	for _, tt := range tests {
		if got := MaskName(tt.name); got != tt.want {
			t.Errorf("MaskName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMaskNameRevealsOneCharacter(t *testing.T) {
	for _, name := range []string{"박지성", "Bob", "Élodie", "이"} {
		masked := MaskName(name)
		revealed := strings.TrimSuffix(masked, MaskSuffix)
		if utf8.RuneCountInString(revealed) > 1 {
			t.Errorf("MaskName(%q) = %q reveals %d characters", name, masked, utf8.RuneCountInString(revealed))
		}
		if !strings.HasPrefix(name, revealed) {
			t.Errorf("MaskName(%q) = %q does not start with the first character", name, masked)
		}
	}
}

func TestSamplePeersCaps(t *testing.T) {
	var pool []PeerCandidate
	for i := 0; i < 12; i++ {
		pool = append(pool, PeerCandidate{
			Name:      fmt.Sprintf("user%d", i),
			Title:     fmt.Sprintf("goal %d", i),
			StartDate: day(2025, 3, 10),
		})
	}

	got := SamplePeers(pool, CalendarPolicy{}, refNow)
	if len(got.Weekly) != MaxPeerGoals {
		t.Errorf("weekly = %d, want %d", len(got.Weekly), MaxPeerGoals)
	}
	if len(got.Monthly) != MaxPeerGoals {
		t.Errorf("monthly = %d, want %d", len(got.Monthly), MaxPeerGoals)
	}
	// input order is kept
	if got.Weekly[0].Title != "goal 0" || got.Weekly[4].Title != "goal 4" {
		t.Errorf("weekly order = %v", got.Weekly)
	}
}

func TestSamplePeersSmallPool(t *testing.T) {
	pool := []PeerCandidate{
		{Name: "가", Title: "this week", StartDate: day(2025, 3, 9)},
		{Name: "나", Title: "earlier this month", StartDate: day(2025, 3, 2)},
		{Name: "다", Title: "last month", StartDate: day(2025, 2, 9)},
	}

	got := SamplePeers(pool, CalendarPolicy{}, refNow)
	if len(got.Weekly) != 1 || got.Weekly[0].Title != "this week" {
		t.Errorf("weekly = %v", got.Weekly)
	}
	if len(got.Monthly) != 2 {
		t.Fatalf("monthly = %v, want 2 entries", got.Monthly)
	}
	if got.Monthly[0].User != "가ㅇㅇ" || got.Monthly[1].Title != "earlier this month" {
		t.Errorf("monthly = %v", got.Monthly)
	}
}

func TestSamplePeersWeeklyOnlyUnderRolling(t *testing.T) {
	now := day(2025, 3, 2)
	pool := []PeerCandidate{
		{Name: "Kim", Title: "late february", StartDate: day(2025, 2, 27)},
	}
	got := SamplePeers(pool, RollingPolicy{}, now)
	if len(got.Weekly) != 1 {
		t.Errorf("weekly = %v, want 1 entry", got.Weekly)
	}
	if len(got.Monthly) != 0 {
		t.Errorf("monthly = %v, want none", got.Monthly)
	}
}

func TestSamplePeersEmptyPool(t *testing.T) {
	got := SamplePeers(nil, CalendarPolicy{}, refNow)
	if got.Weekly == nil || got.Monthly == nil {
		t.Fatal("expected non-nil empty lists")
	}
	if len(got.Weekly) != 0 || len(got.Monthly) != 0 {
		t.Errorf("got %+v, want empty lists", got)
	}
}
