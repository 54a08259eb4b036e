package local

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpusgate/internal/model"
)

func newTestLocator(t *testing.T) *Locator {
	t.Helper()
	l, err := NewLocator(&Config{
		Dir:     t.TempDir(),
		BaseURL: "http://localhost:8080/",
	})
	require.NoError(t, err)
	return l
}

func TestSignedURLMintsResolvableGrant(t *testing.T) {
	l := newTestLocator(t)

	url, err := l.SignedURL(context.Background(), model.SignedURLRequest{
		Class:      model.StorageClassCorpus,
		Container:  "my-corpus",
		Filename:   "crash-01.bin",
		Permission: model.PermissionRead,
		TTL:        5 * time.Minute,
	})
	require.NoError(t, err)

	// URL points at this server's /blob route, trailing slash trimmed.
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/blob/"), "unexpected url %q", url)

	token := strings.TrimPrefix(url, "http://localhost:8080/blob/")
	grant, err := l.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionRead, grant.Permission)
	assert.Equal(t, "crash-01.bin", grant.Filename)
	assert.Equal(t, filepath.Join(l.dir, "corpus", "my-corpus", "crash-01.bin"), grant.Path)
}

func TestSignedURLsAreIndependent(t *testing.T) {
	l := newTestLocator(t)
	req := model.SignedURLRequest{
		Class:      model.StorageClassCorpus,
		Container:  "my-corpus",
		Filename:   "crash-01.bin",
		Permission: model.PermissionRead,
		TTL:        5 * time.Minute,
	}

	first, err := l.SignedURL(context.Background(), req)
	require.NoError(t, err)
	second, err := l.SignedURL(context.Background(), req)
	require.NoError(t, err)

	// Each request mints its own grant token.
	assert.NotEqual(t, first, second)
}

func TestSignedURLRejectsTraversalFilename(t *testing.T) {
	l := newTestLocator(t)

	for _, filename := range []string{
		"../../../etc/passwd",
		"../../corpus/other-corpus/seed.txt",
		"..",
		"nested/../../escape.bin",
	} {
		_, err := l.SignedURL(context.Background(), model.SignedURLRequest{
			Class:      model.StorageClassCorpus,
			Container:  "my-corpus",
			Filename:   filename,
			Permission: model.PermissionRead,
			TTL:        5 * time.Minute,
		})
		assert.Error(t, err, "expected filename %q to be rejected", filename)
	}

	// Subdirectories inside the container are fine.
	_, err := l.SignedURL(context.Background(), model.SignedURLRequest{
		Class:      model.StorageClassCorpus,
		Container:  "my-corpus",
		Filename:   "nested/seed.txt",
		Permission: model.PermissionRead,
		TTL:        5 * time.Minute,
	})
	assert.NoError(t, err)
}

func TestResolveUnknownToken(t *testing.T) {
	l := newTestLocator(t)

	_, err := l.Resolve("no-such-token")
	assert.ErrorIs(t, err, ErrGrantNotFound)
}

func TestGrantExpires(t *testing.T) {
	l := newTestLocator(t)

	url, err := l.SignedURL(context.Background(), model.SignedURLRequest{
		Class:      model.StorageClassCorpus,
		Container:  "my-corpus",
		Filename:   "crash-01.bin",
		Permission: model.PermissionRead,
		TTL:        10 * time.Millisecond,
	})
	require.NoError(t, err)

	token := strings.TrimPrefix(url, "http://localhost:8080/blob/")
	time.Sleep(30 * time.Millisecond)

	_, err = l.Resolve(token)
	assert.ErrorIs(t, err, ErrGrantNotFound)
}

func TestConfigValidation(t *testing.T) {
	_, err := NewLocator(&Config{BaseURL: "http://localhost"})
	assert.Error(t, err)

	_, err = NewLocator(&Config{Dir: "/tmp/blobs"})
	assert.Error(t, err)
}
