// Package vdom provides the virtual node tree editors render into.
//
// # Core Types
//
// VNode represents elements, text and fragments. Props holds attributes and
// event handlers. Attr and EventHandler are used to build Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("row"), Data("role", "view"),
//	    Span(Text("0:")),
//	    Button(Text("x"), OnClick(remove)),
//	)
//
// # Hydration
//
// AssignHIDs walks the tree and assigns hydration IDs to interactive elements
// (those with event handlers). Hosts route incoming events by HID.
package vdom
