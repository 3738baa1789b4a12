// Package vango provides the reactive core jsonedit editors are built on.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes current listener)
//	count.Set(5)          // Write (notifies subscribers)
//
// Ref[T] is a mutable reference whose writes are silent until NotifyChanged
// is called. IdentityList[T] is an ordered list that gives every element a
// permanent id at insertion, so state attached to an element follows it
// through reordering.
//
// # Runtime and Scopes
//
// A Runtime evaluates a component tree in passes. During a pass every node
// receives a Scope addressed by an identity Path; Remember, RememberRef and
// RememberList store cells in the runtime's slot table under that path, so
// the same node finds the same cells on the next pass:
//
//	rt := NewRuntime()
//	rt.Pass(func(s *Scope) {
//	    editing := Remember(s, false)
//	    child := s.Child(7) // state of the child is keyed by /7
//	    ...
//	})
//
// Cells whose path is not visited during a pass are discarded at the end of
// that pass. Re-keying a subtree (giving it a new child key) therefore resets
// all of its state.
//
// # Batching
//
// Multiple updates can be batched to trigger a single notification:
//
//	Batch(func() {
//	    a.Set(1)
//	    list.Add(x)
//	    onValueChanged(v)
//	})  // Single notification after all updates
//
// Batches can be nested; only the outermost batch delivers notifications,
// and it does so on every exit path, including panics.
//
// # Thread Safety
//
// All reactive primitives are safe for concurrent access. The tracking
// context (current listener, batch depth) is per-goroutine.
package vango
