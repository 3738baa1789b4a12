package vango

import (
	"runtime"
	"sync"
)

// TrackingContext holds the reactive state for a goroutine.
type TrackingContext struct {
	// currentListener is what's currently tracking dependencies.
	// nil means no tracking (reads don't create subscriptions).
	currentListener Listener

	// batchDepth tracks nested Batch() calls.
	// When > 0, updates queue notifications instead of firing immediately.
	batchDepth int

	// pendingUpdates accumulates listeners to notify when batch completes.
	pendingUpdates []Listener
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine,
// parsed from the "goroutine <id> " header of the runtime stack.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // Skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating it on first use.
func getTrackingContext() *TrackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*TrackingContext)
	}

	ctx := &TrackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// getCurrentListener returns the current listener being tracked.
func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener sets the current listener for dependency tracking.
// Returns the previous listener so it can be restored.
func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

// getBatchDepth returns the current batch nesting depth.
func getBatchDepth() int {
	return getTrackingContext().batchDepth
}

// incrementBatchDepth increases the batch depth by 1.
func incrementBatchDepth() {
	getTrackingContext().batchDepth++
}

// decrementBatchDepth decreases the batch depth by 1.
// Returns true if batch depth reached 0 (batch complete).
func decrementBatchDepth() bool {
	ctx := getTrackingContext()
	ctx.batchDepth--
	return ctx.batchDepth == 0
}

// queuePendingUpdate adds a listener to the pending updates queue.
func queuePendingUpdate(l Listener) {
	ctx := getTrackingContext()
	ctx.pendingUpdates = append(ctx.pendingUpdates, l)
}

// drainPendingUpdates returns and clears the pending updates queue.
func drainPendingUpdates() []Listener {
	ctx := getTrackingContext()
	updates := ctx.pendingUpdates
	ctx.pendingUpdates = nil
	return updates
}

// WithListener runs a function with the specified listener for tracking.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}

// Untracked runs a function without tracking reads as dependencies.
func Untracked(fn func()) {
	WithListener(nil, fn)
}

// ReleaseContext drops the tracking context of the calling goroutine.
// Long-lived goroutines that drive sessions call it before exiting.
func ReleaseContext() {
	trackingContexts.Delete(getGoroutineID())
}
