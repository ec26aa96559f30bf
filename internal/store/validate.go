package store

import (
	"fmt"
	"time"

	"github.com/lazypower/growthlog/internal/report"
)

// parseDate reads a stored calendar day.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(report.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// checkRows validates fetched rows before they reach the report engine,
// which assumes well-formed input.
func checkRows[T any](db *DB, rows []T) error {
	for i := range rows {
		if err := db.validate.Struct(rows[i]); err != nil {
			return fmt.Errorf("malformed row %d: %w", i, err)
		}
	}
	return nil
}
