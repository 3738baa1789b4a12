package vango

// Key values matching JavaScript KeyboardEvent.key.
const (
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeyTab       = "Tab"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"

	KeyArrowUp   = "ArrowUp"
	KeyArrowDown = "ArrowDown"
)
