// Package api is the HTTP client for the restaurant-reviews backend. It owns
// the credential lifecycle around every call: exchanging the refresh token for
// a new access token and retrying a request exactly once when the backend
// reports the token expired.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-reviews-client/credentials"
	"github.com/jrsteele09/go-reviews-client/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultRequestTimeout = 30 * time.Second

// Client talks to the reviews backend on behalf of a single session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
	creds      credentials.Repo
	logger     zerolog.Logger

	refreshMu       sync.Mutex
	inflightRefresh *refreshResult
}

// Option modifies a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the client's logger (a no-op logger by default).
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient initializes a Client with required dependencies. The store is the
// only place session state lives; the credentials repo is the durable slot the
// refresh token survives restarts in.
func NewClient(baseURL string, store *session.Store, creds credentials.Repo, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[NewClient] baseURL is required")
	}
	if store == nil {
		return nil, errors.New("[NewClient] store is required")
	}
	if creds == nil {
		return nil, errors.New("[NewClient] credentials repo is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		store:      store,
		creds:      creds,
		logger:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// Session returns a snapshot of the current session state.
func (c *Client) Session() session.State {
	return c.store.State()
}

// send issues one request and returns the response status and body. A bearer
// credential is attached only when non-empty; transport failures are returned
// as errors, non-success statuses are not.
func (c *Client) send(ctx context.Context, method, path, bearer string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, errors.Wrap(err, "[Client.send] Marshal")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "[Client.send] NewRequest")
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set(headerRequestID, uuid.NewString())
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, errors.Wrap(err, "[Client.send] Do")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "[Client.send] ReadAll")
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("backend call")

	return resp.StatusCode, respBody, nil
}

// getJSON fetches path and decodes a 200 response into out.
func (c *Client) getJSON(ctx context.Context, accessToken, path string, out any) error {
	status, body, err := c.send(ctx, http.MethodGet, path, accessToken, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &StatusError{Code: status, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "[Client.getJSON] Unmarshal")
	}
	return nil
}

// postJSON posts payload to path and decodes a wantStatus response into out.
func (c *Client) postJSON(ctx context.Context, accessToken, path string, payload any, wantStatus int, out any) error {
	status, body, err := c.send(ctx, http.MethodPost, path, accessToken, payload)
	if err != nil {
		return err
	}
	if status != wantStatus {
		return &StatusError{Code: status, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "[Client.postJSON] Unmarshal")
	}
	return nil
}

// recordBackendError stores a human-readable failure message in the session.
// The message is overwritten by the next error; it is display state, not an
// error channel.
func (c *Client) recordBackendError(message string) {
	c.logger.Warn().Str("error", message).Msg("backend error")
	_ = c.store.Dispatch(session.SetBackendError{Message: message})
}
