package s3

import "fmt"

// Config holds S3 backend configuration. Endpoint and credentials are
// optional; when unset the AWS default credential chain and endpoints
// are used, which also covers S3-compatible stores via Endpoint.
type Config struct {
	// Region is the AWS region to sign requests for.
	Region string

	// Endpoint overrides the S3 endpoint (e.g. for MinIO). Optional.
	Endpoint string

	// BucketPrefix is prepended to the storage class to form the bucket
	// name, e.g. prefix "fuzz" and class "corpus" yield "fuzz-corpus".
	BucketPrefix string

	// AccessKey and SecretKey are static credentials. Optional.
	AccessKey string
	SecretKey string

	// ForcePathStyle enables path-style addressing. Implied by Endpoint.
	ForcePathStyle bool
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("s3: region must be set")
	}
	if c.BucketPrefix == "" {
		return fmt.Errorf("s3: bucket prefix must be set")
	}
	return nil
}
