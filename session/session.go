// Package session holds the client's authenticated identity as a reducer-style
// state machine: an immutable State value advanced only through the closed set
// of actions below. The State is the single source of truth for authorization
// decisions in a consumer UI.
package session

import (
	"github.com/jrsteele09/go-reviews-client/token"
	"github.com/pkg/errors"
)

// Authorization scopes carried in access-token claims.
const (
	ScopeUsersRead  = "users:read"
	ScopeUsersWrite = "users:write"
)

// State is one version of the session. LoggedIn is true only after a
// successful Login transition; Subject and Scopes are always derived from the
// current AccessToken and never set independently of it.
type State struct {
	LoggedIn            bool
	AccessToken         string
	RefreshToken        string
	Subject             string
	Scopes              []string
	BackendErrorMessage string
}

// InitialState returns the logged-out session every store starts from.
func InitialState() State {
	return State{}
}

// Action is a session transition input. The set is closed: there is no logout
// action, logging out is clearing the credential carrier and resetting the
// store to its initial state.
type Action interface {
	isAction()
}

// SetBackendError replaces the backend error message and nothing else.
type SetBackendError struct {
	Message string
}

// Login establishes a session from a freshly issued token pair.
type Login struct {
	AccessToken  string
	RefreshToken string
}

// RefreshAccessToken rotates the access token without re-supplying a refresh
// token.
type RefreshAccessToken struct {
	AccessToken string
}

func (SetBackendError) isAction()    {}
func (Login) isAction()              {}
func (RefreshAccessToken) isAction() {}

// Reduce applies a single action to state and returns the next version.
// It is pure: no I/O, no mutation of its input. When a transition fails
// (undecodable access token) the prior state is returned untouched along with
// the error, never a half-updated session.
func Reduce(state State, action Action) (State, error) {
	switch a := action.(type) {
	case SetBackendError:
		state.BackendErrorMessage = a.Message
		return state, nil

	case Login:
		claims, err := token.Decode(a.AccessToken)
		if err != nil {
			return state, errors.Wrap(err, "[Reduce] Login")
		}
		state.LoggedIn = true
		state.AccessToken = a.AccessToken
		state.RefreshToken = a.RefreshToken
		state.Subject = claims.Subject
		state.Scopes = claims.Scopes
		return state, nil

	case RefreshAccessToken:
		claims, err := token.Decode(a.AccessToken)
		if err != nil {
			return state, errors.Wrap(err, "[Reduce] RefreshAccessToken")
		}
		state.AccessToken = a.AccessToken
		state.Subject = claims.Subject
		state.Scopes = claims.Scopes
		return state, nil
	}

	return state, nil
}

// IsAdmin reports whether the session may reach the admin surface. It is a
// pure function of the current scopes and must be re-evaluated on every call
// rather than cached, so a token rotation is reflected immediately.
func IsAdmin(state State) bool {
	for _, scope := range state.Scopes {
		if scope == ScopeUsersRead || scope == ScopeUsersWrite {
			return true
		}
	}
	return false
}
