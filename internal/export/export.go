// Package export produces the artifacts of a lesson: the interactive static
// page, the locked print page, a Markdown rendition and the JSON save file.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"sort"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/lessonbuilder/backend/internal/catalog"
	"github.com/lessonbuilder/backend/internal/models"
	"github.com/lessonbuilder/backend/internal/render"
	"github.com/lessonbuilder/backend/internal/video"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed assets/*
var assetFiles embed.FS

// FrameworkCSS is the only external resource of the static page
const FrameworkCSS = "https://cdn.jsdelivr.net/npm/normalize.css@8.0.1/normalize.min.css"

// DefaultTitle is used when the course topic is empty
const DefaultTitle = "Lesson"

type pageView struct {
	Title        string
	Header       models.Header
	Logo         template.URL
	Week         string
	DisplayDate  string
	Sections     []sectionView
	FrameworkCSS string
	CSS          template.CSS
	Script       template.JS
}

type sectionView struct {
	ID          string
	Type        models.SectionType
	Label       string
	Color       string
	Open        bool
	Interactive bool
	Body        template.HTML
}

// Exporter renders documents with the embedded templates.
//
// Safe for concurrent use.
type Exporter struct {
	templates *template.Template
	staticCSS template.CSS
	lockedCSS template.CSS
	script    template.JS
	markdown  *md.Converter
}

// New parses the embedded templates and assets
func New() (*Exporter, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse export templates: %w", err)
	}

	read := func(name string) (string, error) {
		data, err := assetFiles.ReadFile("assets/" + name)
		if err != nil {
			return "", fmt.Errorf("failed to read export asset %s: %w", name, err)
		}
		return string(data), nil
	}
	blocks, err := read("blocks.css")
	if err != nil {
		return nil, err
	}
	static, err := read("static.css")
	if err != nil {
		return nil, err
	}
	locked, err := read("locked.css")
	if err != nil {
		return nil, err
	}
	script, err := read("script.js")
	if err != nil {
		return nil, err
	}

	aspects := aspectCSS()
	return &Exporter{
		templates: tmpl,
		staticCSS: template.CSS(blocks + aspects + static),
		lockedCSS: template.CSS(blocks + aspects + locked),
		script:    template.JS(script),
		markdown:  newMarkdownConverter(),
	}, nil
}

// aspectCSS emits the padding rule of every supported aspect ratio
func aspectCSS() string {
	ratios := video.AspectRatios()
	keys := make([]string, 0, len(ratios))
	for k := range ratios {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, ".video-container.%s { padding-top: %s; }\n", video.AspectClass(k), ratios[k])
	}
	return b.String()
}

// Static renders the standalone interactive page
func (e *Exporter) Static(doc models.Document) (string, error) {
	view := e.page(doc, true)
	view.CSS = e.staticCSS
	view.Script = e.script
	view.FrameworkCSS = FrameworkCSS
	return e.execute("static", view)
}

// Locked renders the print-oriented page: every section expanded, no
// navigation and no script.
func (e *Exporter) Locked(doc models.Document) (string, error) {
	view := e.page(doc, false)
	view.CSS = e.lockedCSS
	return e.execute("locked", view)
}

// Markdown renders the lesson as Markdown for pasting into an LMS
func (e *Exporter) Markdown(doc models.Document) (string, error) {
	out, err := e.execute("markdown", e.page(doc, false))
	if err != nil {
		return "", err
	}
	result, err := e.markdown.ConvertString(out)
	if err != nil {
		return "", fmt.Errorf("failed to convert lesson to markdown: %w", err)
	}
	return strings.TrimSpace(result) + "\n", nil
}

func (e *Exporter) execute(name string, view pageView) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("failed to render %s export: %w", name, err)
	}
	return buf.String(), nil
}

// page builds the template view. Interactive pages open only the first section.
func (e *Exporter) page(doc models.Document, interactive bool) pageView {
	cat := catalog.Default()

	title := strings.TrimSpace(doc.CourseTopic)
	if title == "" {
		title = DefaultTitle
	}

	view := pageView{
		Title:       title,
		Header:      doc.Header,
		Week:        strings.TrimSpace(doc.Week),
		DisplayDate: DisplayDate(doc.Date),
		Sections:    make([]sectionView, 0, len(doc.Sections)),
	}
	if logo := render.SafeSrc(doc.Logo); logo != "" {
		view.Logo = template.URL(logo)
	}

	for i, s := range doc.Sections {
		var body strings.Builder
		for _, b := range s.Blocks {
			body.WriteString(render.Static(b))
			body.WriteByte('\n')
		}
		view.Sections = append(view.Sections, sectionView{
			ID:          s.ID,
			Type:        s.Type,
			Label:       cat.StudentLabel(s.ID, s.Title),
			Color:       cat.Color(s.ID),
			Open:        !interactive || i == 0,
			Interactive: interactive,
			Body:        template.HTML(body.String()),
		})
	}
	return view
}

// DisplayDate formats an ISO date as "January 2, 2006". Other values are returned trimmed.
func DisplayDate(date string) string {
	date = strings.TrimSpace(date)
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

func newMarkdownConverter() *md.Converter {
	conv := md.NewConverter("", true, nil)
	conv.AddRules(
		md.Rule{
			Filter: []string{"iframe"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				src, _ := selec.Attr("src")
				if src == "" {
					return md.String("")
				}
				return md.String("\n\n[Watch the video](" + src + ")\n\n")
			},
		},
		md.Rule{
			Filter: []string{"audio"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				src, _ := selec.Attr("src")
				if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
					return md.String("\n\n*(audio clip)*\n\n")
				}
				return md.String("\n\n[Listen to the audio](" + src + ")\n\n")
			},
		},
	)
	return conv
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename returns the download name of an export: lesson-week<week>-<date>.<ext>
func Filename(doc models.Document, ext string) string {
	clean := func(s string) string {
		return strings.Trim(unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(s), "-"), "-")
	}
	name := "lesson-week" + clean(doc.Week)
	if date := clean(doc.Date); date != "" {
		name += "-" + date
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}
