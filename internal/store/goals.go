package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lazypower/growthlog/internal/report"
)

// Goal is a goal a user set. Saved goals are visible to peers.
type Goal struct {
	ID        int64
	UserID    int64     `validate:"gt=0"`
	Title     string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	Saved     bool
}

// AddGoal inserts a goal and sets its ID.
func (db *DB) AddGoal(ctx context.Context, g *Goal) error {
	if err := db.validate.Struct(g); err != nil {
		return fmt.Errorf("invalid goal: %w", err)
	}
	result, err := db.ExecContext(ctx, `
		INSERT INTO goals (user_id, title, start_date, is_saved, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, g.UserID, g.Title, g.StartDate.Format(report.DateLayout), g.Saved, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	g.ID, _ = result.LastInsertId()
	return nil
}

// GetGoal returns goalID if it belongs to userID, or ErrGoalNotFound.
func (db *DB) GetGoal(ctx context.Context, userID, goalID int64) (*Goal, error) {
	var (
		g    Goal
		date string
	)
	err := db.retry(ctx, "get goal", func() error {
		return db.QueryRowContext(ctx, `
			SELECT goal_id, user_id, title, start_date, is_saved
			FROM goals WHERE goal_id = ? AND user_id = ?
		`, goalID, userID).Scan(&g.ID, &g.UserID, &g.Title, &date, &g.Saved)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	if g.StartDate, err = parseDate(date); err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGoal overwrites title, start date and saved flag of g.ID.
// The goal must belong to g.UserID.
func (db *DB) UpdateGoal(ctx context.Context, g *Goal) error {
	if err := db.validate.Struct(g); err != nil {
		return fmt.Errorf("invalid goal: %w", err)
	}
	result, err := db.ExecContext(ctx, `
		UPDATE goals SET title = ?, start_date = ?, is_saved = ?
		WHERE goal_id = ? AND user_id = ?
	`, g.Title, g.StartDate.Format(report.DateLayout), g.Saved, g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// DeleteGoal removes goalID if it belongs to userID.
func (db *DB) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	result, err := db.ExecContext(ctx, `
		DELETE FROM goals WHERE goal_id = ? AND user_id = ?
	`, goalID, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// AddReport stores a periodic completion report for a user's goal.
// Reports must carry a period type.
func (db *DB) AddReport(ctx context.Context, userID int64, rec report.ProgressRecord) (int64, error) {
	if err := db.validate.Struct(rec); err != nil {
		return 0, fmt.Errorf("invalid report: %w", err)
	}
	if rec.PeriodType == "" {
		return 0, fmt.Errorf("invalid report: period type required")
	}

	var title any
	if rec.Title != "" {
		title = rec.Title
	}
	result, err := db.ExecContext(ctx, `
		INSERT INTO reports (user_id, period_type, start_date, goal_completion_rate, title, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, userID, string(rec.PeriodType), rec.StartDate.Format(report.DateLayout), rec.Rate, title, time.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	id, _ := result.LastInsertId()
	return id, nil
}

// ListReports returns all completion reports of a user.
func (db *DB) ListReports(ctx context.Context, userID int64) ([]report.ProgressRecord, error) {
	var out []report.ProgressRecord
	err := db.retry(ctx, "list reports", func() error {
		out = nil
		rows, err := db.QueryContext(ctx, `
			SELECT period_type, start_date, goal_completion_rate, title
			FROM reports WHERE user_id = ?
			ORDER BY start_date, report_id
		`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				rec    report.ProgressRecord
				period string
				date   string
				title  sql.NullString
			)
			if err := rows.Scan(&period, &date, &rec.Rate, &title); err != nil {
				return fmt.Errorf("scan report: %w", err)
			}
			if rec.StartDate, err = parseDate(date); err != nil {
				return err
			}
			rec.PeriodType = report.PeriodType(period)
			rec.Title = title.String
			out = append(out, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	if err := checkRows(db, out); err != nil {
		return nil, err
	}
	return out, nil
}

// PeerCandidates returns saved goals of other users whose age lies within
// q.MaxAgeDelta years of q.Age, in random order, at most q.Limit rows.
func (db *DB) PeerCandidates(ctx context.Context, q report.PeerQuery) ([]report.PeerCandidate, error) {
	var out []report.PeerCandidate
	err := db.retry(ctx, "peer candidates", func() error {
		out = nil
		rows, err := db.QueryContext(ctx, `
			SELECT u.name, g.title, g.start_date
			FROM goals g
			JOIN users u ON g.user_id = u.user_id
			WHERE u.age BETWEEN ? AND ?
			  AND u.user_id != ?
			  AND g.is_saved = 1
			ORDER BY RANDOM()
			LIMIT ?
		`, q.Age-q.MaxAgeDelta, q.Age+q.MaxAgeDelta, q.UserID, q.Limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c report.PeerCandidate
			var date string
			if err := rows.Scan(&c.Name, &c.Title, &date); err != nil {
				return fmt.Errorf("scan peer goal: %w", err)
			}
			if c.StartDate, err = parseDate(date); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("peer candidates: %w", err)
	}
	if err := checkRows(db, out); err != nil {
		return nil, err
	}
	return out, nil
}
