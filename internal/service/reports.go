// Package service loads a user's records from the store and hands them to
// the report engine.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lazypower/growthlog/internal/report"
	"github.com/lazypower/growthlog/internal/store"
)

// Reports builds feedback lists and period details from the database.
type Reports struct {
	DB     *store.DB
	Engine *report.Engine

	// PeerAgeDelta and PeerPoolLimit bound the peer goal query.
	PeerAgeDelta  int
	PeerPoolLimit int
}

// New returns a Reports using the given policy and peer bounds.
func New(db *store.DB, policy report.Policy, ageDelta, poolLimit int) *Reports {
	return &Reports{
		DB:            db,
		Engine:        report.New(policy),
		PeerAgeDelta:  ageDelta,
		PeerPoolLimit: poolLimit,
	}
}

// FeedbackList returns the per-experience summary of userID.
// It fails with store.ErrUserNotFound for unknown users.
func (s *Reports) FeedbackList(ctx context.Context, userID int64, order report.SortOrder) (report.FeedbackList, error) {
	if _, err := s.DB.GetUser(ctx, userID); err != nil {
		return report.FeedbackList{}, err
	}
	records, err := s.DB.ListExperiences(ctx, userID, order)
	if err != nil {
		return report.FeedbackList{}, err
	}
	return s.Engine.BuildFeedbackList(userID, records, order), nil
}

// PeriodDetail returns the weekly/monthly rollup of userID relative to now.
// Goals, emotions and, when withPeers is set, peer goals are fetched
// concurrently; aggregation starts once all three are in.
func (s *Reports) PeriodDetail(ctx context.Context, userID int64, withPeers bool, now time.Time) (report.PeriodDetail, error) {
	user, err := s.DB.GetUser(ctx, userID)
	if err != nil {
		return report.PeriodDetail{}, err
	}

	var (
		wg       sync.WaitGroup
		goals    []report.ProgressRecord
		emotions []report.EmotionScoreRecord
		peers    *[]report.PeerCandidate
		errs     [3]error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		goals, errs[0] = s.DB.ListReports(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		emotions, errs[1] = s.DB.ListEmotionScores(ctx, userID)
	}()
	if withPeers {
		pool := []report.PeerCandidate{}
		peers = &pool
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool, errs[2] = s.peerPool(ctx, user)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return report.PeriodDetail{}, fmt.Errorf("load period data: %w", err)
		}
	}
	return s.Engine.BuildPeriodDetail(goals, emotions, peers, now), nil
}

// PeerGoals samples this week's and this month's goals of userID's peers.
func (s *Reports) PeerGoals(ctx context.Context, userID int64, now time.Time) (report.PeerGoals, error) {
	user, err := s.DB.GetUser(ctx, userID)
	if err != nil {
		return report.PeerGoals{}, err
	}
	pool, err := s.peerPool(ctx, user)
	if err != nil {
		return report.PeerGoals{}, fmt.Errorf("load peer goals: %w", err)
	}
	return report.SamplePeers(pool, s.Engine.Policy, now), nil
}

// peerPool fetches saved goals of users in user's age band. Users with
// unknown age get an empty pool.
func (s *Reports) peerPool(ctx context.Context, user *store.User) ([]report.PeerCandidate, error) {
	if user.Age == nil {
		return []report.PeerCandidate{}, nil
	}
	found, err := s.DB.PeerCandidates(ctx, report.PeerQuery{
		UserID:      user.ID,
		Age:         *user.Age,
		MaxAgeDelta: s.PeerAgeDelta,
		Limit:       s.PeerPoolLimit,
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		found = []report.PeerCandidate{}
	}
	return found, nil
}
