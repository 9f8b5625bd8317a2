package api_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/go-reviews-client/api"
	"github.com/stretchr/testify/require"
)

// refreshBackend serves /refresh with the given access token and counts how
// often it is hit.
type refreshBackend struct {
	accessToken string
	calls       atomic.Int32
}

func (rb *refreshBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(api.RouteRefresh, func(w http.ResponseWriter, r *http.Request) {
		rb.calls.Add(1)
		writeJSON(t, w, http.StatusOK, `{"access_token":"`+rb.accessToken+`"}`)
	})
	return mux
}

func TestCallRetriesOnceAfterSuccessfulRefresh(t *testing.T) {
	at1 := makeAccessToken(t, `{"sub":"alice"}`)
	at2 := makeAccessToken(t, `{"sub":"alice"}`)

	backend := &refreshBackend{accessToken: at2}
	f := newTestFixture(t, backend.handler(t))
	f.loginAs(t, at1, "rt1")

	var attempts int
	var tokensSeen []string
	result, err := api.Call(context.Background(), f.client, func(_ context.Context, accessToken string) (string, error) {
		attempts++
		tokensSeen = append(tokensSeen, accessToken)
		if attempts == 1 {
			return "", &api.StatusError{Code: http.StatusUnauthorized}
		}
		return "payload", nil
	})

	require.NoError(t, err)
	require.Equal(t, "payload", result)
	require.Equal(t, 2, attempts)
	require.Equal(t, int32(1), backend.calls.Load())
	require.Equal(t, []string{at1, at2}, tokensSeen, "retry must use the refreshed token")
}

func TestCallExhaustsAfterTwoAuthFailures(t *testing.T) {
	at1 := makeAccessToken(t, `{"sub":"alice"}`)
	backend := &refreshBackend{accessToken: makeAccessToken(t, `{"sub":"alice"}`)}
	f := newTestFixture(t, backend.handler(t))
	f.loginAs(t, at1, "rt1")

	var attempts int
	_, err := api.Call(context.Background(), f.client, func(_ context.Context, _ string) (string, error) {
		attempts++
		return "", &api.StatusError{Code: http.StatusUnauthorized}
	})

	require.ErrorIs(t, err, api.ErrAuthAttemptsExhausted)
	require.Equal(t, 2, attempts)
}

func TestCallDoesNotRetryNonAuthFailures(t *testing.T) {
	at1 := makeAccessToken(t, `{"sub":"alice"}`)
	backend := &refreshBackend{accessToken: at1}
	f := newTestFixture(t, backend.handler(t))
	f.loginAs(t, at1, "rt1")

	var attempts int
	_, err := api.Call(context.Background(), f.client, func(_ context.Context, _ string) (string, error) {
		attempts++
		return "", &api.StatusError{Code: http.StatusInternalServerError}
	})

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.Code)
	require.Equal(t, 1, attempts)
	require.Equal(t, int32(0), backend.calls.Load(), "non-auth failures must not trigger a refresh")
}

func TestCallKeepsRetryBudgetWhenRefreshFails(t *testing.T) {
	at1 := makeAccessToken(t, `{"sub":"alice"}`)
	mux := http.NewServeMux()
	mux.HandleFunc(api.RouteRefresh, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, `{}`)
	})
	f := newTestFixture(t, mux)
	f.loginAs(t, at1, "rt1")

	var tokensSeen []string
	_, err := api.Call(context.Background(), f.client, func(_ context.Context, accessToken string) (string, error) {
		tokensSeen = append(tokensSeen, accessToken)
		return "", &api.StatusError{Code: http.StatusUnauthorized}
	})

	require.ErrorIs(t, err, api.ErrAuthAttemptsExhausted)
	require.Equal(t, []string{at1, at1}, tokensSeen, "failed refresh retries with the stale token")
}

func TestCallReturnsEmptySuccessfulResult(t *testing.T) {
	at1 := makeAccessToken(t, `{"sub":"alice"}`)
	backend := &refreshBackend{accessToken: at1}
	f := newTestFixture(t, backend.handler(t))
	f.loginAs(t, at1, "rt1")

	var attempts int
	result, err := api.Call(context.Background(), f.client, func(_ context.Context, _ string) ([]string, error) {
		attempts++
		return []string{}, nil
	})

	require.NoError(t, err)
	require.Empty(t, result)
	require.Equal(t, 1, attempts, "an empty result is a success, not a retry trigger")
	require.Equal(t, int32(0), backend.calls.Load())
}
