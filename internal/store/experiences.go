package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lazypower/growthlog/internal/report"
)

// AddExperience stores an experience and, when rec.Scores is set, its
// emotion row. Both are written in one transaction.
func (db *DB) AddExperience(ctx context.Context, rec report.ExperienceRecord) (int64, error) {
	if err := db.validate.Struct(rec); err != nil {
		return 0, fmt.Errorf("invalid experience: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin experience: %w", err)
	}
	defer tx.Rollback()

	var emotion any
	if rec.EmotionLabel != "" {
		emotion = rec.EmotionLabel
	}
	result, err := tx.ExecContext(ctx, `
		INSERT INTO experiences (user_id, date, feedback, emotion, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.UserID, rec.Date.Format(report.DateLayout), rec.Feedback, emotion, time.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("insert experience: %w", err)
	}
	id, _ := result.LastInsertId()

	if s := rec.Scores; s != nil {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO emotions (experience_id, joy, sadness, anger, anxiety, satisfaction)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, s.Joy, s.Sadness, s.Anger, s.Anxiety, s.Satisfaction); err != nil {
			return 0, fmt.Errorf("insert emotions: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit experience: %w", err)
	}
	return id, nil
}

// ListExperiences returns a user's experiences ordered by date in the
// requested direction, each with its emotion scores when recorded.
func (db *DB) ListExperiences(ctx context.Context, userID int64, order report.SortOrder) ([]report.ExperienceRecord, error) {
	direction := "ASC"
	if order == report.SortDesc {
		direction = "DESC"
	}
	// direction is one of two literals, never user input
	query := `
		SELECT e.user_id, e.date, e.feedback, e.emotion,
		       em.joy, em.sadness, em.anger, em.anxiety, em.satisfaction
		FROM experiences e
		LEFT JOIN emotions em ON em.experience_id = e.experience_id
		WHERE e.user_id = ?
		ORDER BY e.date ` + direction + `, e.experience_id ` + direction

	var out []report.ExperienceRecord
	err := db.retry(ctx, "list experiences", func() error {
		out = nil
		rows, err := db.QueryContext(ctx, query, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				rec      report.ExperienceRecord
				date     string
				feedback sql.NullString
				emotion  sql.NullString
				scores   [5]sql.NullFloat64
			)
			if err := rows.Scan(&rec.UserID, &date, &feedback, &emotion,
				&scores[0], &scores[1], &scores[2], &scores[3], &scores[4]); err != nil {
				return fmt.Errorf("scan experience: %w", err)
			}
			if rec.Date, err = parseDate(date); err != nil {
				return err
			}
			if feedback.Valid {
				rec.Feedback = &feedback.String
			}
			rec.EmotionLabel = emotion.String
			if scores[0].Valid {
				rec.Scores = &report.EmotionScores{
					Joy:          scores[0].Float64,
					Sadness:      scores[1].Float64,
					Anger:        scores[2].Float64,
					Anxiety:      scores[3].Float64,
					Satisfaction: scores[4].Float64,
				}
			}
			out = append(out, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	if err := checkRows(db, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEmotionScores returns the emotion rows of a user's experiences.
func (db *DB) ListEmotionScores(ctx context.Context, userID int64) ([]report.EmotionScoreRecord, error) {
	var out []report.EmotionScoreRecord
	err := db.retry(ctx, "list emotions", func() error {
		out = nil
		rows, err := db.QueryContext(ctx, `
			SELECT e.date, em.joy, em.sadness, em.anger, em.anxiety, em.satisfaction
			FROM experiences e
			JOIN emotions em ON em.experience_id = e.experience_id
			WHERE e.user_id = ?
			ORDER BY e.date
		`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var rec report.EmotionScoreRecord
			var date string
			s := &rec.Scores
			if err := rows.Scan(&date, &s.Joy, &s.Sadness, &s.Anger, &s.Anxiety, &s.Satisfaction); err != nil {
				return fmt.Errorf("scan emotions: %w", err)
			}
			if rec.Date, err = parseDate(date); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list emotions: %w", err)
	}
	if err := checkRows(db, out); err != nil {
		return nil, err
	}
	return out, nil
}
