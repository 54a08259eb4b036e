package blob

import (
	"context"
	"fmt"

	"corpusgate/internal/blob/local"
	"corpusgate/internal/blob/s3"
)

// Provider identifies a locator backend.
type Provider string

const (
	ProviderS3    Provider = "s3"
	ProviderLocal Provider = "local"
)

// Config selects and configures a locator backend.
type Config struct {
	Provider Provider
	S3       s3.Config
	Local    local.Config
}

// NewLocator builds the locator selected by cfg.Provider.
func NewLocator(ctx context.Context, cfg *Config) (Locator, error) {
	switch cfg.Provider {
	case ProviderS3:
		return s3.NewLocator(ctx, &cfg.S3)
	case ProviderLocal:
		return local.NewLocator(&cfg.Local)
	default:
		return nil, fmt.Errorf("blob: unknown storage provider %q: must be 's3' or 'local'", cfg.Provider)
	}
}

// compile-time checks
var (
	_ Locator = (*s3.Locator)(nil)
	_ Locator = (*local.Locator)(nil)
)
