package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Styles contains inline CSS styles
	Styles []string

	// Scripts contains script tags appended to the body
	Scripts []ScriptTag
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Defer  bool   // defer attribute
	Inline string // inline script content
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", escapeAttr(lang)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<meta charset=\"utf-8\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, css := range page.Styles {
		if _, err := fmt.Fprintf(w, "<style>%s</style>\n", css); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</head>\n<body>\n"); err != nil {
		return err
	}

	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}

	for _, s := range page.Scripts {
		if err := renderScript(w, s); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "\n</body>\n</html>\n")
	return err
}

func renderScript(w io.Writer, s ScriptTag) error {
	if s.Src != "" {
		deferAttr := ""
		if s.Defer {
			deferAttr = " defer"
		}
		_, err := fmt.Fprintf(w, "\n<script src=\"%s\"%s></script>", escapeAttr(s.Src), deferAttr)
		return err
	}
	_, err := fmt.Fprintf(w, "\n<script>%s</script>", s.Inline)
	return err
}
