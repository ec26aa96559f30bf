package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// User is a person logging experiences. Age is nil when unknown.
type User struct {
	ID        int64
	Name      string `validate:"required"`
	Age       *int   `validate:"omitempty,gte=0,lte=150"`
	CreatedAt int64
}

// CreateUser inserts a user and returns it with its assigned ID.
func (db *DB) CreateUser(ctx context.Context, name string, age *int) (*User, error) {
	u := &User{Name: name, Age: age, CreatedAt: time.Now().UnixMilli()}
	if err := db.validate.Struct(u); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO users (name, age, created_at) VALUES (?, ?, ?)
	`, u.Name, u.Age, u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	u.ID, _ = result.LastInsertId()
	return u, nil
}

// GetUser returns the user with the given id, or ErrUserNotFound.
func (db *DB) GetUser(ctx context.Context, id int64) (*User, error) {
	var u User
	var age sql.NullInt64
	err := db.retry(ctx, "get user", func() error {
		return db.QueryRowContext(ctx, `
			SELECT user_id, name, age, created_at FROM users WHERE user_id = ?
		`, id).Scan(&u.ID, &u.Name, &age, &u.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if age.Valid {
		a := int(age.Int64)
		u.Age = &a
	}
	return &u, nil
}
