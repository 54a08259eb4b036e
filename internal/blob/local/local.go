// Package local implements a blob locator for development and tests.
// Instead of presigning store URLs it mints opaque grant tokens, keeps
// them in an in-memory cache for the requested TTL, and points the
// signed URL at the server's own /blob/<token> route, which resolves
// the token back to a file on disk.
package local

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"corpusgate/internal/model"
)

const (
	grantKeyFmt     = "grant:%s"
	cleanupInterval = time.Minute
)

// ErrGrantNotFound is returned by Resolve for unknown or expired tokens.
var ErrGrantNotFound = errors.New("local: grant not found or expired")

// Grant is a resolved access grant for a blob on disk.
type Grant struct {
	// Path is the absolute path of the blob on disk.
	Path string
	// Permission is the access level the grant carries.
	Permission model.Permission
	// Filename is the blob name within its container, for Content-Disposition.
	Filename string
}

// Config holds local backend configuration.
type Config struct {
	// Dir is the root directory blobs are stored under, laid out as
	// <dir>/<class>/<container>/<filename>.
	Dir string

	// BaseURL is the externally reachable base URL of this server,
	// used as the prefix of minted URLs.
	BaseURL string
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("local: storage dir must be set")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("local: base URL must be set")
	}
	return nil
}

// Locator implements the dev/test blob locator.
type Locator struct {
	dir     string
	baseURL string
	grants  *cache.Cache // keyed by "grant:{token}"
}

// NewLocator creates a local locator rooted at cfg.Dir.
func NewLocator(cfg *Config) (*Locator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Locator{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		// Grants carry their own per-entry TTL; the default expiry is
		// never used. Cleanup sweeps expired grants every minute.
		grants: cache.New(cache.NoExpiration, cleanupInterval),
	}, nil
}

func grantKey(token string) string {
	return fmt.Sprintf(grantKeyFmt, token)
}

// SignedURL mints a grant token valid for req.TTL and returns a URL on
// this server's /blob route carrying it. Filenames that would resolve
// outside the storage dir are rejected; the filename is otherwise opaque.
func (l *Locator) SignedURL(_ context.Context, req model.SignedURLRequest) (string, error) {
	path, err := l.blobPath(req)
	if err != nil {
		return "", err
	}

	token := uuid.New().String()
	grant := &Grant{
		Path:       path,
		Permission: req.Permission,
		Filename:   req.Filename,
	}

	log.Debug().
		Str("class", string(req.Class)).
		Str("container", string(req.Container)).
		Str("filename", req.Filename).
		Dur("ttl", req.TTL).
		Msg("local: minting grant")

	l.grants.Set(grantKey(token), grant, req.TTL)
	return fmt.Sprintf("%s/blob/%s", l.baseURL, token), nil
}

// blobPath resolves the on-disk path for req and verifies it stays
// rooted under the storage dir. The container name is validated by the
// model grammar, but the filename is opaque and must not be allowed to
// traverse out via ".." segments.
func (l *Locator) blobPath(req model.SignedURLRequest) (string, error) {
	classDir := filepath.Join(l.dir, string(req.Class), string(req.Container))
	path := filepath.Join(classDir, req.Filename)

	rel, err := filepath.Rel(classDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("local: filename %q escapes the storage dir", req.Filename)
	}
	return path, nil
}

// Resolve returns the grant for token, or ErrGrantNotFound if the token
// is unknown or its TTL has passed.
func (l *Locator) Resolve(token string) (*Grant, error) {
	v, ok := l.grants.Get(grantKey(token))
	if !ok {
		return nil, ErrGrantNotFound
	}
	return v.(*Grant), nil
}
