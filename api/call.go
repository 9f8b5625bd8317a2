package api

import (
	"context"
	"errors"
)

// Two attempts total: the original call plus at most one retry after a
// credential refresh.
const maxCallAttempts = 2

// Operation is any authenticated backend call. It receives the access token
// to send and reports authorization failures through a *StatusError.
type Operation[T any] func(ctx context.Context, accessToken string) (T, error)

// Call runs operation with the current access token, refreshing the
// credential and retrying exactly once when the backend answers 401 or 422.
// Any other failure propagates unchanged on the first attempt; this is not a
// generic network retry mechanism.
//
// A successful operation returns its result even when that result is empty or
// zero-valued. When both attempts fail with an authorization failure the
// wrapper returns ErrAuthAttemptsExhausted, which callers should treat as "no
// result" rather than a reportable error.
func Call[T any](ctx context.Context, c *Client, operation Operation[T]) (T, error) {
	var none T

	accessToken := c.Session().AccessToken
	for attempts := maxCallAttempts; attempts > 0; attempts-- {
		result, err := operation(ctx, accessToken)
		if err == nil {
			return result, nil
		}

		var statusErr *StatusError
		if !errors.As(err, &statusErr) || !statusErr.IsAuthExpired() {
			return none, err
		}

		// The refresh completes before any retry is attempted. A failed
		// refresh still consumes the attempt budget: the stale token is
		// sent again and the loop exits once the budget is gone.
		if refreshed := c.Refresh(ctx); refreshed != "" {
			accessToken = refreshed
		}
	}

	return none, ErrAuthAttemptsExhausted
}
