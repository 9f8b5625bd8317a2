package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-reviews-client/credentials"
	"github.com/jrsteele09/go-reviews-client/session"
	"github.com/pkg/errors"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Detail       string `json:"detail"`
}

// Login authenticates with the backend and establishes the session. A non-200
// response carrying a detail field comes back as *BackendDetailError for
// inline display; the refresh token is persisted to the durable slot so the
// session can be restored after a restart.
func (c *Client) Login(ctx context.Context, username, password string) error {
	status, body, err := c.send(ctx, http.MethodPost, RouteLogin, "", credentialsRequest{Username: username, Password: password})
	if err != nil {
		return errors.Wrap(err, "[Client.Login] send")
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return errors.Wrap(err, "[Client.Login] Unmarshal")
	}

	if status != http.StatusOK {
		if resp.Detail != "" {
			return &BackendDetailError{Detail: resp.Detail}
		}
		return &StatusError{Code: status, Body: string(body)}
	}

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		return errors.New("[Client.Login] login response missing tokens")
	}

	if err := c.store.Dispatch(session.Login{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
		c.recordBackendError(err.Error())
		return errors.Wrap(err, "[Client.Login] Dispatch")
	}

	if err := c.creds.Save(ctx, resp.RefreshToken); err != nil {
		// The in-memory session is already established; the slot only
		// affects restoring it after a restart.
		c.logger.Warn().Err(err).Msg("failed to persist refresh token")
	}

	return nil
}

// Signup registers a new account. Success is 201; a 403 carries the backend's
// detail message; any other status is forwarded as a *StatusError for the
// caller to report.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	status, body, err := c.send(ctx, http.MethodPost, RouteSignup, "", credentialsRequest{Username: username, Password: password})
	if err != nil {
		return errors.Wrap(err, "[Client.Signup] send")
	}

	if status == http.StatusCreated {
		return nil
	}

	if status == http.StatusForbidden {
		var resp struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &resp); err == nil && resp.Detail != "" {
			return &BackendDetailError{Detail: resp.Detail}
		}
	}

	return &StatusError{Code: status, Body: string(body)}
}

// Restore re-establishes a session from the durable refresh-token slot. It is
// the startup path: when the store holds no access token but the slot holds a
// refresh token, one silent exchange logs the session back in before any
// protected view is rendered. Returns whether a session is established.
func (c *Client) Restore(ctx context.Context) bool {
	if c.Session().AccessToken != "" {
		return true
	}

	refreshToken, err := c.creds.Load(ctx)
	if err != nil {
		if !errors.Is(err, credentials.ErrNotFound) {
			c.logger.Warn().Err(err).Msg("failed to read refresh token slot")
		}
		return false
	}

	accessToken := c.exchangeRefreshToken(ctx, refreshToken)
	if accessToken == "" {
		return false
	}

	if err := c.store.Dispatch(session.Login{AccessToken: accessToken, RefreshToken: refreshToken}); err != nil {
		c.recordBackendError(err.Error())
		return false
	}

	return true
}

// Logout discards the durable refresh token and resets the session to its
// initial state. There is no logout transition in the store itself.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.creds.Clear(ctx); err != nil {
		return errors.Wrap(err, "[Client.Logout] creds.Clear")
	}
	c.store.Reset()
	return nil
}
