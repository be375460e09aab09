package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/etnz/bondbook"
	"go.uber.org/zap"
)

// S3API is the part of the S3 client used by the S3 storage.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores the slot as a single object.
type S3 struct {
	client S3API
	bucket string
	key    string
	log    *zap.Logger
}

// NewS3 returns the storage for the object bucket/key.
func NewS3(client S3API, bucket, key string, log *zap.Logger) *S3 {
	return &S3{client: client, bucket: bucket, key: key, log: log}
}

// OpenS3 loads the default AWS configuration and returns the storage for
// s3://bucket/key. The "region" and "profile" query parameters override the
// configuration.
func OpenS3(ctx context.Context, u *url.URL, log *zap.Logger) (*S3, error) {
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 url %q: want s3://bucket/key", u.String())
	}
	var opts []func(*config.LoadOptions) error
	if region := u.Query().Get("region"); region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile := u.Query().Get("profile"); profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	log.Info("using s3 object", zap.String("bucket", bucket), zap.String("key", key))
	return NewS3(s3.NewFromConfig(cfg), bucket, key, log), nil
}

// Load reads the object. A missing object is an empty book.
func (s *S3) Load(ctx context.Context) ([]bondbook.Instrument, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if isNoSuchKey(err) {
		s.log.Debug("no book in s3 yet", zap.String("bucket", s.bucket), zap.String("key", s.key))
		return []bondbook.Instrument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()
	return bondbook.DecodeInstruments(out.Body)
}

// Save replaces the object.
func (s *S3) Save(ctx context.Context, instruments []bondbook.Instrument) error {
	data, err := bondbook.MarshalInstruments(instruments)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("cannot put s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	if err == nil {
		return false
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound")
}
