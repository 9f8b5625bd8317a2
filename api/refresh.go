package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-reviews-client/session"
)

type refreshResult struct {
	done        chan struct{}
	accessToken string
}

// Refresh exchanges the session's refresh token for a new access token and
// rotates it into the store. It returns "" when it could not refresh; the
// reason is recorded in the session's BackendErrorMessage and callers must
// not assume it. An empty refresh token is a no-op: the backend is never
// called with an empty credential.
//
// Concurrent callers coalesce onto a single in-flight exchange and all
// observe its outcome.
func (c *Client) Refresh(ctx context.Context) string {
	refreshToken := c.Session().RefreshToken
	if refreshToken == "" {
		return ""
	}

	c.refreshMu.Lock()
	if inflight := c.inflightRefresh; inflight != nil {
		c.refreshMu.Unlock()
		select {
		case <-inflight.done:
			return inflight.accessToken
		case <-ctx.Done():
			return ""
		}
	}
	inflight := &refreshResult{done: make(chan struct{})}
	c.inflightRefresh = inflight
	c.refreshMu.Unlock()

	defer func() {
		c.refreshMu.Lock()
		c.inflightRefresh = nil
		c.refreshMu.Unlock()
		close(inflight.done)
	}()

	accessToken := c.exchangeRefreshToken(ctx, refreshToken)
	if accessToken == "" {
		return ""
	}

	if err := c.store.Dispatch(session.RefreshAccessToken{AccessToken: accessToken}); err != nil {
		c.recordBackendError(err.Error())
		return ""
	}

	inflight.accessToken = accessToken
	return accessToken
}

// exchangeRefreshToken performs the POST /refresh exchange. Success is the
// presence of a non-empty access_token field in the response body; any other
// shape, status, or transport failure records a backend error and yields "".
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) string {
	status, body, err := c.send(ctx, http.MethodPost, RouteRefresh, refreshToken, nil)
	if err != nil {
		c.recordBackendError(err.Error())
		return ""
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.AccessToken == "" {
		c.recordBackendError(fmt.Sprintf("token refresh failed with status %d", status))
		return ""
	}

	return resp.AccessToken
}
