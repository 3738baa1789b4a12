package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vango-dev/jsonedit/pkg/value"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store stores documents in an S3 bucket under a key prefix.
//
// Example usage:
//
//	client, err := store.NewS3Client(ctx, "eu-west-1", "")
//	if err != nil {
//		return err
//	}
//	docs := store.NewS3Store(client, "my-bucket", "docs/")
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store creates a store for bucket. prefix is prepended to every key.
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// NewS3Client builds an S3 client for region from the default AWS
// configuration chain. A non-empty endpoint selects an S3-compatible service
// with path-style addressing.
func NewS3Client(ctx context.Context, region, endpoint string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *S3Store) key(name string) string {
	key, _ := objectKey(name)
	return s.prefix + key
}

// Load reads and decodes the named document.
func (s *S3Store) Load(ctx context.Context, name string) (value.Value, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return value.Value{}, notFound(name, err)
		}
		return value.Value{}, fmt.Errorf("s3 get %s: %w", s.key(name), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return value.Value{}, fmt.Errorf("s3 read %s: %w", s.key(name), err)
	}
	return decode(name, data)
}

// Save encodes v and replaces the named document.
func (s *S3Store) Save(ctx context.Context, name string, v value.Value) error {
	data, contentType, err := encode(name, v)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(name)),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return writeFailed(name, err)
	}
	return nil
}

// Delete removes the named document.
func (s *S3Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", s.key(name), err)
	}
	return nil
}

// Close is a no-op; the client holds no per-store resources.
func (s *S3Store) Close() error {
	return nil
}
