package exports

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubAWS(t *testing.T) {
	t.Helper()
	origLoad, origNew, origPut, origPresign := loadDefaultAWSConfig, newS3ClientFromConfig, putObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		putObject = origPut
		presignGetObject = origPresign
	})
}

func testConfig() S3Config {
	return S3Config{
		User: "minioadmin", Password: "minioadmin", Bucket: "exports",
		Region: "us-east-1", Endpoint: "http://127.0.0.1:9000", URLValidity: 10 * time.Minute,
	}
}

func TestNewS3Store_AppliesConfig(t *testing.T) {
	stubAWS(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minioadmin", creds.AccessKeyID)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	store, err := NewS3Store(context.Background(), testConfig())
	require.NoError(t, err)
	require.NotNil(t, store)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Store_LoadError(t *testing.T) {
	stubAWS(t)
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := NewS3Store(context.Background(), testConfig())
	assert.EqualError(t, err, "load-fail")
}

func TestS3Store_Put(t *testing.T) {
	stubAWS(t)

	var putKey, putType, putBody string
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		assert.Equal(t, "exports", *in.Bucket)
		putKey = *in.Key
		putType = *in.ContentType
		b, _ := io.ReadAll(in.Body)
		putBody = string(b)
		return nil
	}
	presignGetObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		assert.Equal(t, 10*time.Minute, po.Expires)
		assert.Equal(t, putKey, *in.Key)
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/exports/" + *in.Key + "?sig"}, nil
	}

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	store := &S3Store{client: &s3.Client{}, cfg: testConfig(), now: func() time.Time { return now }}

	up, err := store.Put(context.Background(), 7, FormatMarkdown, []byte("# hi"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(up.Key, "exports/7/2025/01/02/"), up.Key)
	assert.True(t, strings.HasSuffix(up.Key, ".md"), up.Key)
	assert.Equal(t, putKey, up.Key)
	assert.Equal(t, "# hi", putBody)
	assert.Equal(t, FormatMarkdown.ContentType(), putType)
	assert.Contains(t, up.URL, up.Key)
	assert.Equal(t, now.Add(10*time.Minute), up.ExpiresAt)
}

func TestS3Store_PutErrors(t *testing.T) {
	stubAWS(t)
	store := &S3Store{client: &s3.Client{}, cfg: testConfig(), now: time.Now}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		return errors.New("bucket missing")
	}
	_, err := store.Put(context.Background(), 7, FormatJSON, []byte("{}"))
	assert.ErrorContains(t, err, "put export: bucket missing")

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error { return nil }
	presignGetObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign fail")
	}
	_, err = store.Put(context.Background(), 7, FormatJSON, []byte("{}"))
	assert.ErrorContains(t, err, "presign export: sign fail")
}

func TestObjectKey_Unique(t *testing.T) {
	a := ObjectKey(1, "json", at)
	b := ObjectKey(1, "json", at)
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "exports/1/2025/03/14/"))
}
