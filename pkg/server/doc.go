// Package server hosts editor components for a browser.
//
// A Session mounts a root Component on a vango.Runtime. Each render runs one
// pass, assigns hydration IDs to the interactive nodes of the resulting tree
// and records their handlers under "<hid>_on<event>" keys. Dispatch looks a
// client event up by those keys, runs the handler through the middleware
// chain and re-renders when the handler changed any state the last pass read.
//
// # Event Processing
//
// When a client sends an event:
//  1. The WebSocket read loop decodes the JSON message
//  2. The handler is found by HID and event name
//  3. Middleware wraps the handler (metrics, tracing)
//  4. The handler runs with panic recovery
//  5. If the runtime is dirty the tree is re-rendered
//  6. The new HTML is written back to the client
//
// # Handler Signatures
//
// Event props may hold any of:
//
//	func()
//	func(*Event)
//	func(string)               // input and change events: the element value
//	func(vango.KeyboardEvent)  // keydown
//
// # HTTP
//
// Handler serves the page, the WebSocket endpoint, the committed value and a
// health probe on a chi router:
//
//	GET /          page with the rendered editor and the client script
//	GET /ws        WebSocket event channel
//	GET /value     last committed document as JSON
//	GET /healthz   liveness probe
package server
