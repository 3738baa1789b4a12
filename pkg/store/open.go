package store

import (
	"context"
	"strings"

	verrors "github.com/vango-dev/jsonedit/internal/errors"
)

// Options configures Open.
type Options struct {
	// Region and Endpoint are used for s3 URLs.
	Region   string
	Endpoint string
}

// Open returns the store selected by url:
//
//	mem://                in-process bucket
//	file:///path/to/dir   files under a directory
//	s3://bucket/prefix    Amazon S3
func Open(ctx context.Context, url string, opts Options) (Store, error) {
	switch {
	case strings.HasPrefix(url, "mem://"):
		return OpenMemory(), nil
	case strings.HasPrefix(url, "file://"):
		return OpenDir(strings.TrimPrefix(url, "file://"))
	case strings.HasPrefix(url, "s3://"):
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(url, "s3://"), "/")
		if bucket == "" {
			return nil, verrors.New("E012").WithDetailf("%q has no bucket", url)
		}
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		client, err := NewS3Client(ctx, opts.Region, opts.Endpoint)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, bucket, prefix), nil
	default:
		return nil, verrors.New("E012").
			WithDetailf("%q", url).
			WithSuggestion("Use mem://, file:// or s3://")
	}
}
