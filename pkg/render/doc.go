// Package render converts VNode trees into HTML.
//
// Text and attribute values are escaped. Elements that carry a hydration ID
// are emitted with data-hid plus one data-on-<event> marker per handled
// event, which is what the page script binds to. Node keys are emitted as
// data-key.
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// RenderPage wraps a body in a complete document with the client script.
package render
