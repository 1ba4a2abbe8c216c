package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lessonbuilder/backend/internal/citation"
	"github.com/lessonbuilder/backend/internal/models"
	"github.com/lessonbuilder/backend/internal/sanitize"
	"github.com/lessonbuilder/backend/internal/video"
)

// Image sizes, gallery columns and card layouts offered by the editor
var (
	ImageSizes     = []string{"small", "medium", "large", "full"}
	GalleryColumns = []int{2, 3, 4}
	CardLayouts    = []string{"2x1", "2x2", "3x1", "1x3"}
	CardStyleNames = []string{"info", "exercise", "warning", "success"}
)

const (
	DefaultImageSize      = "medium"
	DefaultGalleryColumns = 2
	DefaultCardLayout     = "2x1"
	DefaultCardStyle      = "info"
)

// Palette is the background/border/accent triple of a box or card style
type Palette struct {
	Background string
	Border     string
	Accent     string
	Icon       string
}

var boxPalettes = map[models.BlockType]Palette{
	models.BlockTypeInfoBox:     {Background: "#ebf8ff", Border: "#3182ce", Accent: "#2c5282", Icon: "ℹ️"},
	models.BlockTypeExerciseBox: {Background: "#f0fff4", Border: "#38a169", Accent: "#276749", Icon: "✏️"},
	models.BlockTypeWarningBox:  {Background: "#fffaf0", Border: "#dd6b20", Accent: "#9c4221", Icon: "⚠️"},
}

var cardPalettes = map[string]Palette{
	"info":     {Background: "#ebf8ff", Border: "#3182ce", Accent: "#2b6cb0"},
	"exercise": {Background: "#f0fff4", Border: "#38a169", Accent: "#2f855a"},
	"warning":  {Background: "#fffaf0", Border: "#dd6b20", Accent: "#c05621"},
	"success":  {Background: "#f0fff4", Border: "#48bb78", Accent: "#276749"},
}

var textClasses = map[models.BlockType]string{
	models.BlockTypeText:     "text-block",
	models.BlockTypeHeading:  "heading-block",
	models.BlockTypeList:     "list-block",
	models.BlockTypeHeadline: "headline-block",
}

// Figure is one rendered picture with its optional trailing caption and citation
type Figure struct {
	Src      string
	Alt      string
	Caption  string
	Citation string
}

// Card is one rendered card
type Card struct {
	Title   string
	Content string
}

// BlockLayout is every presentation decision for one block. Both render
// paths consume it, so live preview and export stay identical.
type BlockLayout struct {
	Type  models.BlockType
	Error string

	// text-like and boxes
	Class   string
	Content string
	Palette Palette

	// image and gallery
	Figures   []Figure
	SizeClass string
	Columns   int

	// video
	Embed       string
	AspectClass string

	// audio
	AudioSrc    string
	Description string

	// cards
	Cards       []Card
	CardLayout  string
	CardStyle   string
	CardPalette Palette

	Citation string
}

// Layout computes the presentation of a block
func Layout(b models.Block) BlockLayout {
	s := sanitize.Default()
	l := BlockLayout{Type: b.Type()}

	switch c := b.Content.(type) {
	case *models.TextContent:
		class, ok := textClasses[c.BlockKind]
		if !ok {
			return unknownLayout(c.BlockKind)
		}
		l.Class = class
		l.Content = s.Content(c.Content)

	case *models.BoxContent:
		palette, ok := boxPalettes[c.BlockKind]
		if !ok {
			return unknownLayout(c.BlockKind)
		}
		l.Class = string(c.BlockKind)
		l.Palette = palette
		l.Content = s.Content(c.Content)

	case *models.ImageContent:
		l.SizeClass = "image-" + ImageSize(c.Size)
		l.Figures = []Figure{{
			Src:      SafeSrc(c.Src),
			Alt:      c.Alt,
			Caption:  s.Content(c.Caption),
			Citation: citation.FormatImageCitation(c.Title, c.Author, c.Source, c.Date),
		}}

	case *models.GalleryContent:
		l.Columns = Columns(c.Columns)
		l.Figures = make([]Figure, 0, len(c.Items))
		for _, item := range c.Items {
			l.Figures = append(l.Figures, Figure{
				Src:      SafeSrc(item.Src),
				Alt:      item.Alt,
				Caption:  s.Content(item.Caption),
				Citation: citation.FormatImageCitation(item.Title, item.Author, item.Source, item.Date),
			})
		}

	case *models.VideoContent:
		l.AspectClass = video.AspectClass(c.AspectRatio)
		if c.Platform == models.VideoPlatformEmbed {
			code := c.EmbedCode
			if code == "" {
				code = c.Src
			}
			l.Embed = video.EmbedHTML(c.Platform, code, c.AspectRatio)
		} else if c.Src != "" {
			l.Embed = video.EmbedHTML(c.Platform, c.Src, c.AspectRatio)
		} else if id, ok := video.ExtractID(c.URL, c.Platform); ok {
			l.Embed = video.EmbedHTML(c.Platform, id, c.AspectRatio)
		} else {
			l.Error = "Video link could not be resolved"
		}
		// the link alone is not citation metadata
		if c.Title != "" || c.Author != "" || c.Date != "" || c.Source != "" {
			l.Citation = citation.FormatVideoCitation(c.Title, c.Author, c.Date, c.Source, c.URL)
		}

	case *models.AudioContent:
		l.AudioSrc = SafeSrc(c.Src)
		l.Description = s.Content(c.Description)
		l.Citation = citation.FormatAudioCitation(c.Title, c.Creator, c.SourceInfo, c.DateInfo)

	case *models.CardsContent:
		l.CardLayout = CardLayout(c.Layout)
		l.CardStyle = CardStyle(c.Style)
		l.CardPalette = cardPalettes[l.CardStyle]
		l.Cards = make([]Card, 0, len(c.Items))
		for _, item := range c.Items {
			l.Cards = append(l.Cards, Card{Title: item.Title, Content: s.Content(item.Content)})
		}

	case *models.UnknownContent:
		return unknownLayout(c.BlockKind)

	default:
		return unknownLayout(b.Type())
	}

	return l
}

func unknownLayout(t models.BlockType) BlockLayout {
	return BlockLayout{Type: t, Error: fmt.Sprintf("Unknown content type: %s", t)}
}

// ImageSize returns a known image size, defaulting to medium
func ImageSize(size string) string {
	if slices.Contains(ImageSizes, size) {
		return size
	}
	return DefaultImageSize
}

// Columns returns a known gallery column count, defaulting to 2
func Columns(n int) int {
	if slices.Contains(GalleryColumns, n) {
		return n
	}
	return DefaultGalleryColumns
}

// CardLayout returns a known card layout, defaulting to 2x1
func CardLayout(layout string) string {
	if slices.Contains(CardLayouts, layout) {
		return layout
	}
	return DefaultCardLayout
}

// CardStyle returns a known card style, defaulting to info
func CardStyle(style string) string {
	if slices.Contains(CardStyleNames, style) {
		return style
	}
	return DefaultCardStyle
}

// BoxPalette returns the fixed palette of a box type
func BoxPalette(t models.BlockType) (Palette, bool) {
	p, ok := boxPalettes[t]
	return p, ok
}

// SafeSrc drops media sources with schemes other than http(s), data:image,
// data:audio or data:video. Relative paths pass through.
func SafeSrc(src string) string {
	src = strings.TrimSpace(src)
	lower := strings.ToLower(src)
	switch {
	case lower == "":
		return ""
	case strings.HasPrefix(lower, "data:"):
		if strings.HasPrefix(lower, "data:image/") || strings.HasPrefix(lower, "data:audio/") || strings.HasPrefix(lower, "data:video/") {
			return src
		}
		return ""
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return src
	}
	if i := strings.Index(lower, ":"); i >= 0 && !strings.ContainsAny(lower[:i], "/?#") {
		return ""
	}
	return src
}
