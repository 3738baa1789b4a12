package vango

import "log/slog"

// DebugMode enables debug logging throughout the vango package.
// When true, TxNamed logs transaction boundaries and the runtime checks
// that no identity path is evaluated twice in one pass.
// This should be set at startup and not changed during runtime.
var DebugMode bool

// Batch groups multiple updates into a single notification phase.
// Signal, Ref and IdentityList notifications raised inside fn are collected,
// deduplicated by listener, and delivered once when the batch completes.
//
// Batches can be nested. Notifications only fire when the outermost batch
// completes. Pending notifications are delivered on every exit path,
// including a panic inside fn.
//
// Example:
//
//	Batch(func() {
//	    children.Swap(i, i-1)
//	    onChanged(rebuild(children))
//	})
//	// Editor re-renders once with both changes
func Batch(fn func()) {
	end := StartBatch()
	defer end()
	fn()
}

// StartBatch opens a batch and returns the function that closes it.
// It is the scoped form of Batch for code that cannot wrap its body in a
// closure:
//
//	end := vango.StartBatch()
//	defer end()
//
// Calling end more than once has no further effect.
func StartBatch() (end func()) {
	incrementBatchDepth()
	done := false
	return func() {
		if done {
			return
		}
		done = true
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}
}

// InBatch reports whether the calling goroutine is inside a batch.
func InBatch() bool {
	return getBatchDepth() > 0
}

// processPendingUpdates deduplicates and notifies all pending listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	// Deduplicate by listener ID
	seen := make(map[uint64]bool, len(updates))
	unique := make([]Listener, 0, len(updates))

	for _, listener := range updates {
		id := listener.ID()
		if !seen[id] {
			seen[id] = true
			unique = append(unique, listener)
		}
	}

	for _, listener := range unique {
		listener.MarkDirty()
	}
}

// Tx runs fn as a transaction, grouping all updates.
// This is an alias for Batch.
func Tx(fn func()) {
	Batch(fn)
}

// TxNamed runs fn as a named transaction for debugging and tracing.
// The transaction name is logged in debug mode.
//
//	TxNamed("array-move-up", func() {
//	    children.Swap(i, i-1)
//	    notify()
//	})
//	// Debug output: msg="tx start" tx=array-move-up ...
func TxNamed(name string, fn func()) {
	if DebugMode {
		slog.Debug("tx start", "tx", name)
		defer slog.Debug("tx end", "tx", name)
	}
	Batch(fn)
}
