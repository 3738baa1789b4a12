package middleware

import (
	"testing"

	"github.com/vango-dev/jsonedit/pkg/server"
	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// =============================================================================
// Test Helpers
// =============================================================================

// buttonSession mounts a button whose click runs onClick.
func buttonSession(t *testing.T, onClick func(), mw ...server.Middleware) (*server.Session, string) {
	t.Helper()
	root := func(s *vango.Scope) *vdom.VNode {
		return vdom.Button(vdom.Data("role", "go"), vdom.OnClick(onClick))
	}
	sess, err := server.NewSession(root, server.WithMiddleware(mw...))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(sess.Close)

	nodes := vdom.FindAll(sess.Tree(), vdom.ByData("role", "go"))
	if len(nodes) != 1 {
		t.Fatalf("expected one button, got %d", len(nodes))
	}
	return sess, nodes[0].HID
}
