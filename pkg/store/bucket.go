package store

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"github.com/vango-dev/jsonedit/pkg/value"
)

// BucketStore stores documents as objects in a blob bucket.
type BucketStore struct {
	bucket *blob.Bucket
}

// NewBucketStore wraps an open bucket. The store owns the bucket and closes
// it on Close.
func NewBucketStore(bucket *blob.Bucket) *BucketStore {
	return &BucketStore{bucket: bucket}
}

// OpenMemory returns a store backed by an in-process bucket.
func OpenMemory() *BucketStore {
	return NewBucketStore(memblob.OpenBucket(nil))
}

// OpenDir returns a store keeping documents as files under dir. The
// directory is created if needed.
func OpenDir(dir string) (*BucketStore, error) {
	b, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dir, err)
	}
	return NewBucketStore(b), nil
}

// Load reads and decodes the named document.
func (s *BucketStore) Load(ctx context.Context, name string) (value.Value, error) {
	key, _ := objectKey(name)
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return value.Value{}, notFound(name, err)
		}
		return value.Value{}, fmt.Errorf("read %s: %w", key, err)
	}
	return decode(name, data)
}

// Save encodes v and replaces the named document.
func (s *BucketStore) Save(ctx context.Context, name string, v value.Value) error {
	key, _ := objectKey(name)
	data, contentType, err := encode(name, v)
	if err != nil {
		return err
	}
	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return writeFailed(name, err)
	}
	return nil
}

// Delete removes the named document. Deleting a missing document is not an
// error.
func (s *BucketStore) Delete(ctx context.Context, name string) error {
	key, _ := objectKey(name)
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying bucket.
func (s *BucketStore) Close() error {
	return s.bucket.Close()
}
