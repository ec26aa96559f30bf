package store

import (
	"context"
	"errors"
	"testing"
)

func TestIsBusyPlainError(t *testing.T) {
	if isBusy(errors.New("boom")) {
		t.Error("plain error reported as busy")
	}
	if isBusy(nil) {
		t.Error("nil reported as busy")
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	db := openTestDB(t)
	boom := errors.New("boom")

	calls := 0
	err := db.retry(context.Background(), "test", func() error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetrySuccess(t *testing.T) {
	db := openTestDB(t)

	calls := 0
	err := db.retry(context.Background(), "test", func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("retry: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
