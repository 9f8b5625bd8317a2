package api

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrAuthAttemptsExhausted is returned by Call when both attempts failed with
// an authorization failure. It means "no result", not a user-facing error:
// the session's BackendErrorMessage carries anything worth showing.
var ErrAuthAttemptsExhausted = errors.New("authorization attempts exhausted")

// StatusError is a non-success backend response. Authorization failures
// (401/422) are consumed by the Call wrapper; every other status propagates
// to the caller unchanged.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend responded with status %d", e.Code)
}

// IsAuthExpired reports whether the response signals an expired or invalid
// access token. The backend uses 401 for missing/invalid credentials and 422
// for structurally unprocessable (expired) tokens.
func (e *StatusError) IsAuthExpired() bool {
	return e.Code == http.StatusUnauthorized || e.Code == http.StatusUnprocessableEntity
}

// BackendDetailError carries the backend's "detail" field verbatim, intended
// for inline display next to the login/signup form that triggered it.
type BackendDetailError struct {
	Detail string
}

func (e *BackendDetailError) Error() string {
	return e.Detail
}
