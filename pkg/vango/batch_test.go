package vango

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/jsonedit/pkg/value"
)

// typeSwitch mirrors what the editor does when a value changes kind: reset
// the selection, replace the element and report upward.
func typeSwitch(selected *Signal[int], items *IdentityList[value.Value], reported *Ref[value.Value], k value.Kind) {
	Batch(func() {
		selected.Set(int(k))
		items.Set(0, value.DefaultFor(k))
		reported.Set(value.Array(items.Values()...))
		reported.NotifyChanged()
	})
}

func TestBatchOneNotificationAcrossPrimitives(t *testing.T) {
	selected := NewSignal(int(value.KindNumber))
	items := NewIdentityList([]value.Value{value.Number(5)})
	reported := NewRef(value.Null())

	listener := newTestListener()
	WithListener(listener, func() {
		_ = selected.Get()
		_ = items.Len()
		_ = reported.Current()
	})

	typeSwitch(selected, items, reported, value.KindString)

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}
	if got := reported.Peek(); !got.Equal(value.Array(value.String(""))) {
		t.Errorf("expected [\"\"], got %v", got)
	}
}

func TestBatchNestedDeliversAtOutermost(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()
	WithListener(listener, func() { _ = count.Get() })

	Batch(func() {
		count.Set(1)
		Batch(func() {
			count.Set(2)
			Batch(func() { count.Set(3) })
			if listener.getDirtyCount() != 0 {
				t.Errorf("expected no notification inside nested batch, got %d", listener.getDirtyCount())
			}
		})
		if !InBatch() {
			t.Error("expected to still be in the outer batch")
		}
		if listener.getDirtyCount() != 0 {
			t.Errorf("expected no notification before the outer batch ends, got %d", listener.getDirtyCount())
		}
	})

	if InBatch() {
		t.Error("expected batch closed")
	}
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}
}

func TestBatchDeliversBeforeReturning(t *testing.T) {
	items := NewIdentityList([]string{"a", "b"})
	listener := newTestListener()
	WithListener(listener, func() { _ = items.Len() })

	delivered := -1
	Batch(func() {
		items.Swap(0, 1)
		items.Add("c")
	})
	delivered = listener.getDirtyCount()

	if delivered != 1 {
		t.Errorf("expected notification delivered when Batch returns, got %d", delivered)
	}
}

func TestBatchWithoutChangesIsSilent(t *testing.T) {
	text := NewSignal("abc")
	listener := newTestListener()
	WithListener(listener, func() { _ = text.Get() })

	Batch(func() { text.Set("abc") })

	if listener.getDirtyCount() != 0 {
		t.Errorf("expected no notification, got %d", listener.getDirtyCount())
	}
}

func TestBatchFlushesOnPanic(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()
	WithListener(listener, func() { _ = count.Get() })

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		Batch(func() {
			count.Set(1)
			panic("boom")
		})
	}()

	if InBatch() {
		t.Error("expected batch depth restored after panic")
	}
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected pending notification delivered, got %d", listener.getDirtyCount())
	}
}

func commitIfChanged(committed *Signal[string], buffer string) {
	end := StartBatch()
	defer end()
	if buffer == committed.Peek() {
		return
	}
	committed.Set(buffer)
}

func TestStartBatchEarlyReturn(t *testing.T) {
	committed := NewSignal("abc")
	listener := newTestListener()
	WithListener(listener, func() { _ = committed.Get() })

	commitIfChanged(committed, "abc")
	if InBatch() {
		t.Error("expected early return to close the batch")
	}
	commitIfChanged(committed, "abcd")

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}
}

func TestStartBatchEndIsIdempotent(t *testing.T) {
	outer := StartBatch()
	inner := StartBatch()
	inner()
	inner()
	if !InBatch() {
		t.Error("expected a second end call not to close the outer batch")
	}
	outer()
	if InBatch() {
		t.Error("expected batch closed")
	}
}

func TestTxNamedLogsInDebugMode(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	DebugMode = true
	defer func() {
		DebugMode = false
		slog.SetDefault(prev)
	}()

	ran := false
	TxNamed("array-move-up", func() { ran = true })

	if !ran {
		t.Error("expected transaction body to run")
	}
	if !strings.Contains(buf.String(), "tx=array-move-up") {
		t.Errorf("expected tx name in debug log, got %q", buf.String())
	}
}

func TestTxIsBatch(t *testing.T) {
	a, b := NewSignal(0), NewSignal(0)
	listener := newTestListener()
	WithListener(listener, func() {
		_ = a.Get()
		_ = b.Get()
	})

	Tx(func() {
		a.Set(1)
		b.Set(1)
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}
}
