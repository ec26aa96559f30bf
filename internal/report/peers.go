package report

import (
	"time"
	"unicode/utf8"
)

// MaxPeerGoals caps each peer list of a period report.
const MaxPeerGoals = 5

// MaskSuffix replaces everything after the first character of a peer's name.
const MaskSuffix = "ㅇㅇ"

// PeerGoal is an anonymized goal of another user.
type PeerGoal struct {
	User  string `json:"user"`
	Title string `json:"title"`
}

// PeerGoals holds the weekly and monthly peer samples.
type PeerGoals struct {
	Weekly  []PeerGoal `json:"weekly_peer_goals"`
	Monthly []PeerGoal `json:"monthly_peer_goals"`
}

// SamplePeers fills the weekly and monthly lists from pool in order.
// The pool is expected to arrive already shuffled; SamplePeers only
// classifies and truncates. Each list is filled independently, so a goal
// can land in both, either, or neither.
func SamplePeers(pool []PeerCandidate, policy Policy, now time.Time) PeerGoals {
	out := PeerGoals{
		Weekly:  []PeerGoal{},
		Monthly: []PeerGoal{},
	}
	for _, c := range pool {
		if len(out.Weekly) >= MaxPeerGoals && len(out.Monthly) >= MaxPeerGoals {
			break
		}
		cls := policy.Classify(c.StartDate, now)
		goal := PeerGoal{User: MaskName(c.Name), Title: c.Title}
		if cls.InWeek && len(out.Weekly) < MaxPeerGoals {
			out.Weekly = append(out.Weekly, goal)
		}
		if cls.InMonth && len(out.Monthly) < MaxPeerGoals {
			out.Monthly = append(out.Monthly, goal)
		}
	}
	return out
}

// MaskName keeps only the first character of name.
func MaskName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return MaskSuffix
	}
	return string(r) + MaskSuffix
}
