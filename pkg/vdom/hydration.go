package vdom

import (
	"fmt"
	"sync"
)

// HIDGenerator generates unique hydration IDs for interactive elements.
type HIDGenerator struct {
	counter uint32
	mu      sync.Mutex
}

// NewHIDGenerator creates a new HIDGenerator.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID (e.g., "h1", "h2", ...).
func (g *HIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("h%d", g.counter)
}

// Reset resets the counter to 0.
func (g *HIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}

// Current returns the current counter value without incrementing.
func (g *HIDGenerator) Current() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}

// AssignHIDs walks the tree and assigns HIDs to interactive elements.
// An element is interactive if it has event handlers (props starting with "on").
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	if node == nil {
		return
	}

	// Only elements can be interactive
	if node.Kind == KindElement && node.IsInteractive() {
		node.HID = gen.Next()
	}

	// Recurse into children
	for _, child := range node.Children {
		AssignHIDs(child, gen)
	}
}

// CollectHIDs returns a map of HID to VNode for all nodes with HIDs.
func CollectHIDs(node *VNode) map[string]*VNode {
	result := make(map[string]*VNode)
	collectHIDs(node, result)
	return result
}

func collectHIDs(node *VNode, result map[string]*VNode) {
	if node == nil {
		return
	}

	if node.HID != "" {
		result[node.HID] = node
	}

	for _, child := range node.Children {
		collectHIDs(child, result)
	}
}

// FindByHID finds a node by its HID in the tree.
func FindByHID(node *VNode, hid string) *VNode {
	if node == nil {
		return nil
	}

	if node.HID == hid {
		return node
	}

	for _, child := range node.Children {
		if found := FindByHID(child, hid); found != nil {
			return found
		}
	}

	return nil
}

// CountInteractive returns the number of interactive elements in the tree.
func CountInteractive(node *VNode) int {
	if node == nil {
		return 0
	}

	count := 0
	if node.Kind == KindElement && node.IsInteractive() {
		count = 1
	}

	for _, child := range node.Children {
		count += CountInteractive(child)
	}

	return count
}

// ClearHIDs removes all HIDs from the tree.
func ClearHIDs(node *VNode) {
	if node == nil {
		return
	}

	node.HID = ""

	for _, child := range node.Children {
		ClearHIDs(child)
	}
}

// Walk calls fn for every node in document order. Returning false from fn
// skips the node's children.
func Walk(node *VNode, fn func(*VNode) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}

// FindAll returns every node matching match, in document order.
func FindAll(node *VNode, match func(*VNode) bool) []*VNode {
	var out []*VNode
	Walk(node, func(n *VNode) bool {
		if match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ByData matches elements whose data-<key> attribute equals value.
func ByData(key, value string) func(*VNode) bool {
	return func(n *VNode) bool {
		return n.Kind == KindElement && n.Attr("data-"+key) == value
	}
}
