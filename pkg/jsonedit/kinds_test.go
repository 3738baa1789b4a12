package jsonedit

import (
	"testing"

	"github.com/vango-dev/jsonedit/internal/errors"
	"github.com/vango-dev/jsonedit/pkg/value"
)

func expectPanicCode(t *testing.T, code string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %s", code)
		}
		err, ok := r.(error)
		if !ok || !errors.HasCode(err, code) {
			t.Fatalf("expected panic with %s, got %v", code, r)
		}
	}()
	fn()
}

func TestEntriesCoverEveryKind(t *testing.T) {
	for i, e := range entries {
		if kindIndex(e.kind) != i {
			t.Errorf("expected %s at %d", e.name, i)
		}
		if nameIndex(e.name) != i {
			t.Errorf("expected name %s at %d", e.name, i)
		}
		if got := e.create(); !value.Equal(got, value.DefaultFor(e.kind)) {
			t.Errorf("expected default %v for %s, got %v", value.DefaultFor(e.kind), e.name, got)
		}
		if handlerFor(e.kind) == nil {
			t.Errorf("expected handler for %s", e.name)
		}
	}
	if nameIndex("Boolean") != -1 {
		t.Error("expected unknown name to map to -1")
	}
}

func TestUnknownKindPanics(t *testing.T) {
	expectPanicCode(t, "E003", func() { kindIndex(value.Kind(99)) })
	expectPanicCode(t, "E003", func() { handlerFor(value.Kind(99)) })
}

func TestElementKeysSkipReservedRange(t *testing.T) {
	if elementKey(0) != childKeyOffset {
		t.Errorf("expected first element key %d, got %d", childKeyOffset, elementKey(0))
	}
	// Type-switch children use kind index + 1.
	if uint64(len(entries)) >= childKeyOffset {
		t.Error("expected kind keys below the element range")
	}
}
