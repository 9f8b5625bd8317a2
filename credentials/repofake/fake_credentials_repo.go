package credentialsrepofake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-reviews-client/credentials"
)

var _ credentials.Repo = (*FakeCredentialsRepo)(nil)

// FakeCredentialsRepo is an in-memory carrier for tests.
type FakeCredentialsRepo struct {
	lock         sync.RWMutex
	refreshToken string
	stored       bool
}

func NewFakeCredentialsRepo() *FakeCredentialsRepo {
	return &FakeCredentialsRepo{}
}

func (cr *FakeCredentialsRepo) Load(_ context.Context) (string, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()
	if !cr.stored {
		return "", credentials.ErrNotFound
	}
	return cr.refreshToken, nil
}

func (cr *FakeCredentialsRepo) Save(_ context.Context, refreshToken string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()
	cr.refreshToken = refreshToken
	cr.stored = true
	return nil
}

func (cr *FakeCredentialsRepo) Clear(_ context.Context) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()
	cr.refreshToken = ""
	cr.stored = false
	return nil
}
