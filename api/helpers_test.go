package api_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/go-reviews-client/api"
	credentialsrepofake "github.com/jrsteele09/go-reviews-client/credentials/repofake"
	"github.com/jrsteele09/go-reviews-client/session"
	"github.com/stretchr/testify/require"
)

// testFixture wires a client against an httptest backend with a fake
// credential slot.
type testFixture struct {
	client *api.Client
	store  *session.Store
	creds  *credentialsrepofake.FakeCredentialsRepo
}

func newTestFixture(t *testing.T, handler http.Handler) *testFixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore()
	creds := credentialsrepofake.NewFakeCredentialsRepo()

	client, err := api.NewClient(server.URL, store, creds)
	require.NoError(t, err)

	return &testFixture{client: client, store: store, creds: creds}
}

// loginAs seeds the store with a live session without going through the
// backend.
func (f *testFixture) loginAs(t *testing.T, accessToken, refreshToken string) {
	t.Helper()
	require.NoError(t, f.store.Dispatch(session.Login{AccessToken: accessToken, RefreshToken: refreshToken}))
}

// tokenCounter makes every minted token unique: tests that build an at1/at2
// pair from the same claims rely on the two tokens being distinct strings.
var tokenCounter atomic.Int64

func makeAccessToken(t *testing.T, claimsJSON string) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(claimsJSON))
	signature := base64.RawURLEncoding.EncodeToString([]byte("sig" + strconv.FormatInt(tokenCounter.Add(1), 10)))
	return header + "." + payload + "." + signature
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
}
