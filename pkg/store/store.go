package store

import (
	"context"
	"errors"
	"path"
	"strings"

	verrors "github.com/vango-dev/jsonedit/internal/errors"
	"github.com/vango-dev/jsonedit/pkg/value"
)

// ErrNotFound is wrapped by Load errors for missing documents.
var ErrNotFound = errors.New("store: document not found")

// Store loads and saves named documents.
type Store interface {
	Load(ctx context.Context, name string) (value.Value, error)
	Save(ctx context.Context, name string, v value.Value) error
	Delete(ctx context.Context, name string) error
	Close() error
}

// LoadOrNull loads name, returning null when the document does not exist.
func LoadOrNull(ctx context.Context, s Store, name string) (value.Value, error) {
	v, err := s.Load(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return value.Null(), nil
	}
	return v, err
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

// objectKey maps a document name to its object key and encoding.
func objectKey(name string) (string, format) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return name, formatYAML
	case ".json":
		return name, formatJSON
	case "":
		return name + ".json", formatJSON
	default:
		return name, formatJSON
	}
}

func encode(name string, v value.Value) ([]byte, string, error) {
	_, f := objectKey(name)
	if f == formatYAML {
		data, err := value.MarshalYAML(v)
		return data, "application/yaml", err
	}
	data, err := value.Marshal(v)
	return data, "application/json", err
}

func decode(name string, data []byte) (value.Value, error) {
	if _, f := objectKey(name); f == formatYAML {
		return value.ParseYAML(data)
	}
	return value.Parse(data)
}

func notFound(name string, err error) error {
	return verrors.New("E010").WithDetailf("document %q", name).Wrap(errors.Join(ErrNotFound, err))
}

func writeFailed(name string, err error) error {
	return verrors.New("E011").WithDetailf("document %q", name).Wrap(err)
}
