package filerepo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-reviews-client/credentials"
	"github.com/jrsteele09/go-reviews-client/credentials/filerepo"
	"github.com/stretchr/testify/require"
)

func TestFileRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := filerepo.New(filepath.Join(t.TempDir(), "reviews", "refresh_token"))

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, credentials.ErrNotFound)

	require.NoError(t, repo.Save(ctx, "rt1"))
	refreshToken, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "rt1", refreshToken)

	require.NoError(t, repo.Save(ctx, "rt2"))
	refreshToken, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "rt2", refreshToken)
}

func TestFileRepoClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := filerepo.New(filepath.Join(t.TempDir(), "refresh_token"))

	require.NoError(t, repo.Clear(ctx))

	require.NoError(t, repo.Save(ctx, "rt1"))
	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx))

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, credentials.ErrNotFound)
}

func TestFileRepoSlotFilePermissions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "refresh_token")
	require.NoError(t, filerepo.New(path).Save(ctx, "rt1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileRepoEmptySlotTreatedAsNotFound(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "refresh_token")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	_, err := filerepo.New(path).Load(ctx)
	require.ErrorIs(t, err, credentials.ErrNotFound)
}
