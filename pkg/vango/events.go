package vango

// KeyboardEvent represents a keyboard event with key and modifiers.
//
//	OnKeyDown(func(e vango.KeyboardEvent) {
//	    if e.Key == vango.KeyEnter {
//	        commit()
//	    }
//	})
type KeyboardEvent struct {
	// The key value (e.g., "Enter", "a", "Escape")
	Key string

	// The physical key code (e.g., "Enter", "KeyA", "Escape")
	Code string

	// Modifier keys
	CtrlKey  bool
	ShiftKey bool
	AltKey   bool
	MetaKey  bool

	// True if key is being held down (auto-repeat)
	Repeat bool
}

// IsEnter reports whether the event is a line submission. Hosts that send
// raw characters deliver "\n" or "\r" instead of "Enter".
func (e KeyboardEvent) IsEnter() bool {
	return e.Key == KeyEnter || e.Key == "\n" || e.Key == "\r"
}

// HasModifier reports whether any modifier key is held.
func (e KeyboardEvent) HasModifier() bool {
	return e.CtrlKey || e.ShiftKey || e.AltKey || e.MetaKey
}
