package vango

// Listener is anything that can be notified when a dependency changes.
// Runtimes implement it to schedule the next pass.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}
