// Package richtext is the boundary to the WYSIWYG widget. The core only
// relies on an HTML-in/HTML-out contract: seed a surface with HTML, accept
// changed HTML back, and round trip a raw source view.
package richtext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lessonbuilder/backend/internal/render"
	"github.com/lessonbuilder/backend/internal/sanitize"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Editor is the rich-text capability
type Editor interface {
	// Surface renders an editable surface seeded with html for a block.
	//
	// "blockID" is the block the surface reports changes for.
	// "html" is the current content.
	Surface(blockID, html string) *render.Node

	// Changed normalizes HTML reported by the widget on input or blur.
	//
	// Returns the HTML to store.
	Changed(html string) (string, error)

	// ToSource formats HTML for the raw source view, one top-level node per line.
	ToSource(html string) string

	// FromSource parses edited source back into storable HTML.
	//
	// Returns an error if the source cannot be parsed.
	FromSource(src string) (string, error)

	// PlainText strips markup.
	PlainText(html string) string
}

// ContentEditable is the default Editor: a contenteditable div with a small
// command toolbar and a hidden source textarea.
type ContentEditable struct {
	sanitizer *sanitize.Sanitizer
}

// NewContentEditable creates the default editor
func NewContentEditable(s *sanitize.Sanitizer) *ContentEditable {
	if s == nil {
		s = sanitize.Default()
	}
	return &ContentEditable{sanitizer: s}
}

var toolbarCommands = []struct {
	command string
	label   string
}{
	{"bold", "B"},
	{"italic", "I"},
	{"underline", "U"},
	{"insertUnorderedList", "•"},
	{"insertOrderedList", "1."},
	{"createLink", "🔗"},
	{"source", "</>"},
}

// Surface implements Editor
func (e *ContentEditable) Surface(blockID, content string) *render.Node {
	toolbar := render.El("div", render.Class("rich-text-toolbar"))
	for _, c := range toolbarCommands {
		toolbar.Append(render.El("button",
			render.A("type", "button"),
			render.A("data-command", c.command),
		).Append(render.Text(c.label)))
	}

	return render.El("div",
		render.Class("rich-text"),
		render.A("data-editor", "contenteditable"),
		render.A("data-block-id", blockID),
	).Append(
		toolbar,
		render.El("div",
			render.Class("rich-text-editor"),
			render.A("contenteditable", "true"),
			render.A("data-block-id", blockID),
		).Append(render.Raw(content)),
		render.El("textarea",
			render.Class("rich-text-source"),
			render.A("hidden", ""),
			render.A("spellcheck", "false"),
		).Append(render.Text(e.ToSource(content))),
	)
}

// Changed implements Editor
func (e *ContentEditable) Changed(content string) (string, error) {
	return e.FromSource(content)
}

// ToSource implements Editor
func (e *ContentEditable) ToSource(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}

	var lines []string
	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		out, err := goquery.OuterHtml(s)
		if err != nil {
			return
		}
		if out = strings.TrimSpace(out); out != "" {
			lines = append(lines, out)
		}
	})
	return strings.Join(lines, "\n")
}

// FromSource implements Editor
func (e *ContentEditable) FromSource(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	nodes, err := html.ParseFragment(strings.NewReader(src), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse html source: %w", err)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("failed to render html source: %w", err)
		}
	}
	return e.sanitizer.Content(buf.String()), nil
}

// PlainText implements Editor
func (e *ContentEditable) PlainText(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
