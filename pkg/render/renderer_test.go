package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/jsonedit/pkg/vdom"
)

func renderString(t *testing.T, node *vdom.VNode) string {
	t.Helper()
	html, err := NewRenderer(RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	return html
}

func TestRenderElement(t *testing.T) {
	got := renderString(t, vdom.Div(vdom.Class("row"), vdom.Span(vdom.Text("0:"))))
	want := `<div class="row"><span>0:</span></div>`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRenderEscapesText(t *testing.T) {
	got := renderString(t, vdom.Span(vdom.Text(`<b>"x" & 'y'</b>`)))
	want := `<span>&lt;b&gt;&quot;x&quot; &amp; &#39;y&#39;&lt;/b&gt;</span>`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRenderVoidAndBooleanAttrs(t *testing.T) {
	got := renderString(t, vdom.Input(vdom.Type("text"), vdom.Value(""), vdom.Autofocus(), vdom.Attr{Key: "disabled", Value: false}))
	want := `<input autofocus type="text" value="">`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRenderHydrationMarkers(t *testing.T) {
	node := vdom.Input(vdom.OnBlur(func() {}), vdom.OnKeyDown(func() {}), vdom.Key("17"))
	vdom.AssignHIDs(node, vdom.NewHIDGenerator())

	got := renderString(t, node)

	if v := extractAttrValue(t, got, "data-hid"); v != "h1" {
		t.Errorf("data-hid = %q, want h1", v)
	}
	if v := extractAttrValue(t, got, "data-key"); v != "17" {
		t.Errorf("data-key = %q, want 17", v)
	}
	for _, marker := range []string{`data-on-blur="true"`, `data-on-keydown="true"`} {
		if !strings.Contains(got, marker) {
			t.Errorf("missing %s in %s", marker, got)
		}
	}
	if strings.Contains(got, "onblur") {
		t.Errorf("handler rendered as attribute: %s", got)
	}
}

func TestRenderFragmentAndPretty(t *testing.T) {
	frag := vdom.Fragment(vdom.Span(vdom.Text("a")), vdom.Text("b"))
	if got := renderString(t, frag); got != "<span>a</span>b" {
		t.Errorf("got %s", got)
	}

	r := NewRenderer(RendererConfig{Pretty: true})
	got, err := r.RenderToString(vdom.Div(vdom.Div(vdom.Text("x"))))
	if err != nil {
		t.Fatal(err)
	}
	want := "<div>\n  <div>\nx  </div>\n</div>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderPage(t *testing.T) {
	var b strings.Builder
	err := NewRenderer(RendererConfig{}).RenderPage(&b, PageData{
		Title:   "doc <1>",
		Body:    vdom.Div(vdom.ID("root")),
		Scripts: []ScriptTag{{Inline: "boot()"}, {Src: "/x.js", Defer: true}},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := b.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>doc &lt;1&gt;</title>",
		`<div id="root"></div>`,
		"<script>boot()</script>",
		`<script src="/x.js" defer></script>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("page missing %q:\n%s", want, got)
		}
	}
}
