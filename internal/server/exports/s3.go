package exports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}

	presignGetObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return s3.NewPresignClient(c).PresignGetObject(ctx, in, optFns...)
	}
)

// S3Config locates the bucket exports are written to.
type S3Config struct {
	User        string
	Password    string
	Bucket      string
	Region      string
	Endpoint    string
	URLValidity time.Duration
}

// Upload is a stored export and a time-limited link to it.
type Upload struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// S3Store writes exports to an S3-compatible bucket (AWS or MinIO).
type S3Store struct {
	client *s3.Client
	cfg    S3Config
	now    func() time.Time
}

// NewS3Store builds a client with static credentials and path-style
// addressing against cfg.Endpoint.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.User, cfg.Password, "")),
	)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Store{client: client, cfg: cfg, now: time.Now}, nil
}

// ObjectKey returns a fresh key for one export of userID.
func ObjectKey(userID int64, ext string, at time.Time) string {
	return fmt.Sprintf("exports/%d/%04d/%02d/%02d/%s.%s",
		userID, at.Year(), at.Month(), at.Day(), uuid.New(), ext)
}

// Put uploads body under a new key and returns a presigned GET link.
func (s *S3Store) Put(ctx context.Context, userID int64, f Format, body []byte) (*Upload, error) {
	now := s.now()
	key := ObjectKey(userID, f.Extension(), now)
	bucket := s.cfg.Bucket

	err := putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String(f.ContentType()),
	})
	if err != nil {
		return nil, fmt.Errorf("put export: %w", err)
	}

	req, err := presignGetObject(s.client, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.cfg.URLValidity))
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &Upload{Key: key, URL: req.URL, ExpiresAt: now.Add(s.cfg.URLValidity)}, nil
}
