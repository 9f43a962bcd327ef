package tidal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// maxAttempts bounds the retry ladder for a single API call
const maxAttempts = 6

// retryInitialInterval is shortened in tests
var retryInitialInterval = time.Second

// apiError is a non-2xx response from the Tidal API
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("tidal: HTTP %d: %s", e.Status, e.Body)
}

// transient reports whether the request is worth repeating
func (e *apiError) transient() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// retry runs fn under the exponential backoff ladder used for every
// Tidal API call (roughly 1, 2, 5, 10, 30, 60 seconds). Non-transient
// API errors abort immediately.
func retry[T any](ctx context.Context, op string, fn func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.Multiplier = 2.5
	b.MaxInterval = 60 * time.Second
	b.MaxElapsedTime = 0
	b.RandomizationFactor = 0
	b.Reset()

	var zero T
	result, err := backoff.RetryWithData(func() (T, error) {
		v, err := fn()
		if err == nil {
			return v, nil
		}

		var apiErr *apiError
		if errors.As(err, &apiErr) && !apiErr.transient() {
			return zero, backoff.Permanent(err)
		}

		logger.Warn().Err(err).Str("op", op).Msg("Tidal API call failed, retrying")
		return zero, err
	}, backoff.WithContext(backoff.WithMaxRetries(b, maxAttempts-1), ctx))

	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Tidal API call gave up")
		return zero, err
	}
	return result, nil
}
