// Package errors provides structured error codes for jsonedit.
//
// Every failure that crosses a package boundary carries a code (e.g. "E001")
// that maps to a short message, a longer explanation and a category. Codes
// are grouped by the layer that raises them:
//
//   - runtime: defects in the reactive core (index out of range, identity
//     counter exhausted, slot type mismatch). These are raised as panics.
//   - value: documents that fall outside the supported value model.
//   - protocol: events that reference handlers which no longer exist.
//   - storage: documents that cannot be found or written.
//   - config: invalid or missing jsonedit.yaml.
//
// # Usage
//
//	err := errors.New("E001").
//	    WithDetail("index 4 out of range [0,3)").
//	    WithSuggestion("Re-render before dispatching another event")
//
//	fmt.Println(err.Format())
//	// ERROR E001: Index out of range
//	//
//	//   index 4 out of range [0,3)
//	//
//	//   Hint: Re-render before dispatching another event
package errors
