package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"cdn-short-url/config"
)

// redirectContentType is the content type written on every redirect object.
// The body is empty; the CDN redirects off the object metadata, so the type
// only needs to be benign.
const redirectContentType = "text/plain"

// s3API is the subset of the S3 client used by S3Store.
type s3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store implements ObjectStore against an S3 (or S3-compatible) bucket.
type S3Store struct {
	client s3API
	bucket string
	logger *zap.Logger
}

// NewS3Store creates an S3Store from the given configuration. Credentials
// come from the default AWS chain unless static credentials are configured.
func NewS3Store(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*S3Store, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: region is required", ErrInvalidConfig)
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	// aws-sdk-go-v2 signs with Signature Version 4 only. The field exists
	// for parity with older deployments; reject anything it cannot honor.
	if cfg.SignatureVersion != "" && cfg.SignatureVersion != "s3v4" {
		return nil, fmt.Errorf("%w: unsupported signature version %q", ErrInvalidConfig, cfg.SignatureVersion)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	clientOpts := []func(*s3.Options){
		func(o *s3.Options) {
			o.UsePathStyle = cfg.ForcePathStyle
		},
	}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &S3Store{
		client: s3.NewFromConfig(awsCfg, clientOpts...),
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

// Exists probes the bucket for key with a HeadObject request.
func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if keyAbsent(err) {
		return false, nil
	}
	return false, fmt.Errorf("probing object %q: %w", key, err)
}

// keyAbsent reports whether err means the probed key is not present.
// A missing key surfaces as 404 when the caller holds ListBucket permission
// and as 403 when it does not; both count as absent here so the quirk never
// reaches the retry loop. Anything else is a real failure.
func keyAbsent(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		code := respErr.HTTPStatusCode()
		return code == http.StatusNotFound || code == http.StatusForbidden
	}
	return false
}

// PutRedirect uploads the zero-byte redirect object for key.
func (s *S3Store) PutRedirect(ctx context.Context, key, nativeURL string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:                  aws.String(s.bucket),
		Key:                     aws.String(key),
		Body:                    bytes.NewReader(nil),
		WebsiteRedirectLocation: aws.String(nativeURL),
		ContentType:             aws.String(redirectContentType),
	})
	if err != nil {
		return fmt.Errorf("putting redirect object %q: %w", key, err)
	}

	s.logger.Info("Redirect object written",
		zap.String("key", key),
		zap.String("nativeURL", nativeURL))
	return nil
}
