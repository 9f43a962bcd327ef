package tidal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetry(t *testing.T) {
	t.Helper()
	old := retryInitialInterval
	retryInitialInterval = time.Millisecond
	t.Cleanup(func() { retryInitialInterval = old })
}

func TestRetry_TransientErrorsAreRetried(t *testing.T) {
	fastRetry(t)

	attempts := 0
	got, err := retry(context.Background(), "test", func() (int, error) {
		attempts++
		if attempts < 3 {
			return 0, &apiError{Status: 500, Body: "boom"}
		}
		return 42, nil
	})

	if err != nil {
		t.Fatalf("retry() error: %v", err)
	}
	if got != 42 {
		t.Errorf("retry() = %d, want 42", got)
	}
	if attempts != 3 {
		t.Errorf("got %d attempts, want 3", attempts)
	}
}

func TestRetry_PermanentErrorAbortsImmediately(t *testing.T) {
	fastRetry(t)

	attempts := 0
	_, err := retry(context.Background(), "test", func() (int, error) {
		attempts++
		return 0, &apiError{Status: 404, Body: "not found"}
	})

	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *apiError
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Errorf("unexpected error: %v", err)
	}
	if attempts != 1 {
		t.Errorf("got %d attempts, want 1", attempts)
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	fastRetry(t)

	attempts := 0
	_, err := retry(context.Background(), "test", func() (int, error) {
		attempts++
		return 0, &apiError{Status: 503, Body: "unavailable"}
	})

	if err == nil {
		t.Fatal("expected an error")
	}
	if attempts != maxAttempts {
		t.Errorf("got %d attempts, want %d", attempts, maxAttempts)
	}
}
