// Package s3 implements a blob locator backed by Amazon S3 or an
// S3-compatible object store, using presigned URLs for access grants.
package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"corpusgate/internal/model"
)

// Locator mints presigned S3 URLs. One bucket per storage class; the
// object key is "<container>/<filename>".
type Locator struct {
	presigner    *awss3.PresignClient
	bucketPrefix string
}

// NewLocator creates an S3-backed locator from the given config.
func NewLocator(ctx context.Context, cfg *Config) (*Locator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("blob: load aws config: %w", err)
	}

	var s3Opts []func(*awss3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.UsePathStyle = true
		})
	}

	client := awss3.NewFromConfig(awsCfg, s3Opts...)
	return &Locator{
		presigner:    awss3.NewPresignClient(client),
		bucketPrefix: cfg.BucketPrefix,
	}, nil
}

// SignedURL presigns a GetObject or PutObject request according to the
// requested permission. The blob is not checked for existence; a URL for
// a missing blob fails at download time with the store's own 404.
func (l *Locator) SignedURL(ctx context.Context, req model.SignedURLRequest) (string, error) {
	bucket := l.bucket(req.Class)
	key := fmt.Sprintf("%s/%s", req.Container, req.Filename)

	switch req.Permission {
	case model.PermissionRead:
		out, err := l.presigner.PresignGetObject(ctx, &awss3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		}, func(o *awss3.PresignOptions) {
			o.Expires = req.TTL
		})
		if err != nil {
			return "", fmt.Errorf("blob: presign get %s/%s: %w", bucket, key, err)
		}
		return out.URL, nil
	case model.PermissionWrite:
		out, err := l.presigner.PresignPutObject(ctx, &awss3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		}, func(o *awss3.PresignOptions) {
			o.Expires = req.TTL
		})
		if err != nil {
			return "", fmt.Errorf("blob: presign put %s/%s: %w", bucket, key, err)
		}
		return out.URL, nil
	default:
		return "", fmt.Errorf("blob: unsupported permission %q", req.Permission)
	}
}

func (l *Locator) bucket(class model.StorageClass) string {
	return fmt.Sprintf("%s-%s", l.bucketPrefix, class)
}
