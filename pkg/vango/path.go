package vango

import (
	"strconv"
	"strings"
)

// Path identifies a node by the chain of child keys from the root.
// Its string form is "/k1/k2/..."; the root is the empty path.
type Path string

// Root is the path of the root node.
const Root Path = ""

// Child returns the path of the child with the given key.
func (p Path) Child(key uint64) Path {
	return p + "/" + Path(strconv.FormatUint(key, 10))
}

// Depth returns the number of keys in the path.
func (p Path) Depth() int {
	return strings.Count(string(p), "/")
}

// HasPrefix reports whether p is q or lies below q.
func (p Path) HasPrefix(q Path) bool {
	if !strings.HasPrefix(string(p), string(q)) {
		return false
	}
	return len(p) == len(q) || p[len(q)] == '/'
}

// String returns the printable form of the path; the root prints as "/".
func (p Path) String() string {
	if p == Root {
		return "/"
	}
	return string(p)
}
