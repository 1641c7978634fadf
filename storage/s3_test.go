package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cdn-short-url/config"
)

// fakeS3Client is a stand-in for the S3 client so probe and upload behavior
// can be tested without a bucket.
type fakeS3Client struct {
	headErr   error
	headCalls int
	putErr    error
	putCalls  int
	putInput  *s3.PutObjectInput
}

func (f *fakeS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.headCalls++
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putCalls++
	f.putInput = params
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func statusError(code int) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{
				Response: &http.Response{StatusCode: code},
			},
			Err: errors.New("api error"),
		},
	}
}

func TestS3StoreExists(t *testing.T) {
	ctx := context.Background()

	t.Run("Object present", func(t *testing.T) {
		client := &fakeS3Client{}
		store := &S3Store{client: client, bucket: "b", logger: zap.NewNop()}

		exists, err := store.Exists(ctx, "a/abcd")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, 1, client.headCalls)
	})

	t.Run("NotFound means absent", func(t *testing.T) {
		client := &fakeS3Client{headErr: &types.NotFound{}}
		store := &S3Store{client: client, bucket: "b", logger: zap.NewNop()}

		exists, err := store.Exists(ctx, "a/abcd")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("404 means absent", func(t *testing.T) {
		client := &fakeS3Client{headErr: statusError(http.StatusNotFound)}
		store := &S3Store{client: client, bucket: "b", logger: zap.NewNop()}

		exists, err := store.Exists(ctx, "a/abcd")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("403 means absent", func(t *testing.T) {
		// Without ListBucket permission a missing key reports AccessDenied
		// rather than NotFound.
		client := &fakeS3Client{headErr: statusError(http.StatusForbidden)}
		store := &S3Store{client: client, bucket: "b", logger: zap.NewNop()}

		exists, err := store.Exists(ctx, "a/abcd")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Other errors propagate", func(t *testing.T) {
		client := &fakeS3Client{headErr: statusError(http.StatusInternalServerError)}
		store := &S3Store{client: client, bucket: "b", logger: zap.NewNop()}

		_, err := store.Exists(ctx, "a/abcd")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "probing object")
	})

	t.Run("Non-HTTP errors propagate", func(t *testing.T) {
		cause := errors.New("connection reset")
		client := &fakeS3Client{headErr: cause}
		store := &S3Store{client: client, bucket: "b", logger: zap.NewNop()}

		_, err := store.Exists(ctx, "a/abcd")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
	})
}

func TestS3StorePutRedirect(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes zero-byte redirect object", func(t *testing.T) {
		client := &fakeS3Client{}
		store := &S3Store{client: client, bucket: "b", logger: zap.NewNop()}

		err := store.PutRedirect(ctx, "a/abcd", "http://www.google.com")
		require.NoError(t, err)
		require.Equal(t, 1, client.putCalls)

		in := client.putInput
		require.NotNil(t, in)
		assert.Equal(t, "b", aws.ToString(in.Bucket))
		assert.Equal(t, "a/abcd", aws.ToString(in.Key))
		assert.Equal(t, "http://www.google.com", aws.ToString(in.WebsiteRedirectLocation))
		assert.Equal(t, "text/plain", aws.ToString(in.ContentType))

		body, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		assert.Empty(t, body, "Redirect object body should be empty")
	})

	t.Run("Upload errors propagate", func(t *testing.T) {
		client := &fakeS3Client{putErr: errors.New("throttled")}
		store := &S3Store{client: client, bucket: "b", logger: zap.NewNop()}

		err := store.PutRedirect(ctx, "a/abcd", "http://www.google.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "putting redirect object")
	})
}

func TestNewS3Store(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing region", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Bucket = "b"

		_, err := NewS3Store(ctx, cfg, zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Missing bucket", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Region = "us-east-1"

		_, err := NewS3Store(ctx, cfg, zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Unsupported signature version", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Region = "us-east-1"
		cfg.Bucket = "b"
		cfg.SignatureVersion = "s3"

		_, err := NewS3Store(ctx, cfg, zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Valid configuration", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Region = "us-east-1"
		cfg.Bucket = "b"
		cfg.AccessKeyID = "key"
		cfg.SecretAccessKey = "secret"
		cfg.Endpoint = "http://localhost:9000"
		cfg.ForcePathStyle = true

		store, err := NewS3Store(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, store)
	})
}

func TestS3StoreIntegration(t *testing.T) {
	endpoint := os.Getenv("S3_ENDPOINT")
	if endpoint == "" {
		t.Skip("S3_ENDPOINT not set, skipping S3 integration tests")
	}

	cfg := config.DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.Region = os.Getenv("S3_REGION")
	cfg.Bucket = os.Getenv("S3_BUCKET")
	cfg.AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")
	cfg.ForcePathStyle = true

	ctx := context.Background()
	store, err := NewS3Store(ctx, cfg, zap.NewNop())
	require.NoError(t, err)

	key := "integration-test/abcd1234"

	t.Run("Exists before write", func(t *testing.T) {
		exists, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("PutRedirect", func(t *testing.T) {
		err := store.PutRedirect(ctx, key, "http://www.google.com")
		require.NoError(t, err)
	})

	t.Run("Exists after write", func(t *testing.T) {
		exists, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}
