package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return event("keydown", handler) }

// OnInput handles input events (fired when value changes).
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventHandler { return event("blur", handler) }
