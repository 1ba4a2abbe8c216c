// Package render turns blocks into HTML. The same layout decisions feed the
// live editor fragments and the static export strings.
package render

import (
	"strconv"

	"github.com/lessonbuilder/backend/internal/catalog"
	"github.com/lessonbuilder/backend/internal/models"
)

// Mode selects between the editing surface and plain preview
type Mode int

const (
	ModeRead Mode = iota
	ModeEdit
)

// ParseMode maps "edit" to ModeEdit and anything else to ModeRead
func ParseMode(s string) Mode {
	if s == "edit" {
		return ModeEdit
	}
	return ModeRead
}

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "read"
}

// Surfacer builds the rich-text editing surface for a text-like or box block
type Surfacer interface {
	Surface(blockID, html string) *Node
}

// Chrome positions a block inside its section so boundary controls can be disabled
type Chrome struct {
	Index int
	Count int
}

// Renderer produces live fragments. A nil Surfacer falls back to a plain
// contenteditable div.
type Renderer struct {
	surfacer Surfacer
}

// New creates a renderer
func New(s Surfacer) *Renderer {
	if s == nil {
		s = plainSurface{}
	}
	return &Renderer{surfacer: s}
}

type plainSurface struct{}

func (plainSurface) Surface(blockID, html string) *Node {
	return El("div",
		Class("rich-text-editor"),
		A("contenteditable", "true"),
		A("data-block-id", blockID),
	).Append(Raw(html))
}

// Static renders the export HTML of a block
func Static(b models.Block) string {
	return content(b, Layout(b), nil).HTML()
}

// Live renders the content of a block for the editor page. In edit mode
// text-like and box blocks get an editing surface; everything else is the
// same markup as Static.
func (r *Renderer) Live(b models.Block, mode Mode) *Node {
	var s Surfacer
	if mode == ModeEdit {
		s = r.surfacer
	}
	return content(b, Layout(b), s)
}

// LiveBlock wraps Live output with drag and control chrome in edit mode
func (r *Renderer) LiveBlock(b models.Block, mode Mode, chrome Chrome) *Node {
	wrapper := El("div",
		Class("content-block"),
		A("data-block-id", b.ID),
		A("data-block-type", string(b.Type())),
	)
	if mode != ModeEdit {
		return wrapper.Append(r.Live(b, mode))
	}

	wrapper.SetAttr("draggable", "true")
	wrapper.SetAttr("data-index", strconv.Itoa(chrome.Index))

	controls := El("div", Class("block-controls")).Append(
		El("span", Class("drag-handle"), A("title", "Drag to reorder")).Append(Text("⋮⋮")),
		control("move-up", "Move up", "↑", chrome.Index <= 0),
		control("move-down", "Move down", "↓", chrome.Index >= chrome.Count-1),
		control("edit", "Edit", "✎", false),
		control("insert-below", "Insert below", "+", false),
		control("delete", "Delete", "✕", false),
	)
	return wrapper.Append(controls, El("div", Class("block-content")).Append(r.Live(b, mode)))
}

func control(action, title, label string, disabled bool) *Node {
	n := El("button",
		Class("block-control", "block-control-"+action),
		A("type", "button"),
		A("data-action", action),
		A("title", title),
	)
	if disabled {
		n.SetAttr("disabled", "")
	}
	return n.Append(Text(label))
}

// LiveSection renders a whole section fragment for the editor page
func (r *Renderer) LiveSection(sec models.Section, mode Mode, open bool) *Node {
	cat := catalog.Default()

	title := sec.Title
	if mode == ModeRead {
		title = cat.StudentLabel(sec.ID, sec.Title)
	}

	class := []string{"lesson-section"}
	if open {
		class = append(class, "open")
	}
	root := El("section",
		Class(class...),
		A("id", sec.ID),
		A("data-section-id", sec.ID),
		A("data-section-type", string(sec.Type)),
	)

	header := El("div",
		Class("section-header"),
		A("style", "background-color: "+cat.Color(sec.ID)),
		A("data-action", "toggle"),
	).Append(El("h2", Class("section-title")).Append(Text(title)))
	if mode == ModeEdit && cat.CanDelete(sec.ID) {
		header.Append(El("button",
			Class("section-delete"),
			A("type", "button"),
			A("data-action", "delete-section"),
			A("title", "Delete section"),
		).Append(Text("✕")))
	}

	body := El("div", Class("section-body"))
	for i, b := range sec.Blocks {
		body.Append(r.LiveBlock(b, mode, Chrome{Index: i, Count: len(sec.Blocks)}))
	}
	if mode == ModeEdit {
		body.Append(El("button",
			Class("add-content"),
			A("type", "button"),
			A("data-action", "add-content"),
			A("data-section-id", sec.ID),
		).Append(Text("+ Add Content")))
	}

	return root.Append(header, El("div", Class("section-content")).Append(body))
}

// content builds the block markup. A non-nil Surfacer replaces rich text
// with an editing surface.
func content(b models.Block, l BlockLayout, s Surfacer) *Node {
	if l.Error != "" && l.Type != models.BlockTypeVideo {
		return errorNode(l.Error)
	}

	switch l.Type {
	case models.BlockTypeText, models.BlockTypeHeading, models.BlockTypeList, models.BlockTypeHeadline:
		return El("div", Class(l.Class)).Append(richText(b.ID, l.Content, s))

	case models.BlockTypeInfoBox, models.BlockTypeExerciseBox, models.BlockTypeWarningBox:
		return El("div",
			Class("callout-box", l.Class),
			A("style", "background-color: "+l.Palette.Background+"; border-left: 4px solid "+l.Palette.Border),
		).Append(
			El("span", Class("callout-icon")).Append(Text(l.Palette.Icon)),
			El("div", Class("callout-content")).Append(richText(b.ID, l.Content, s)),
		)

	case models.BlockTypeImage:
		root := El("div", Class("image-block", l.SizeClass))
		if len(l.Figures) == 0 || l.Figures[0].Src == "" {
			return root.Append(El("div", Class("image-placeholder")).Append(Text("No image selected")))
		}
		return figure(root, l.Figures[0], "lesson-image")

	case models.BlockTypeGallery:
		root := El("div", Class("gallery-block", "gallery-cols-"+strconv.Itoa(l.Columns)))
		for _, f := range l.Figures {
			if f.Src == "" {
				continue
			}
			root.Append(figure(El("div", Class("gallery-item")), f, "gallery-image"))
		}
		return root

	case models.BlockTypeVideo:
		if l.Error != "" {
			return errorNode(l.Error)
		}
		root := El("div", Class("video-block")).Append(Raw(l.Embed))
		if l.Citation != "" {
			root.Append(El("div", Class("video-citation")).Append(Raw(l.Citation)))
		}
		return root

	case models.BlockTypeAudio:
		root := El("div", Class("audio-block"))
		if l.AudioSrc != "" {
			root.Append(El("audio", A("controls", ""), A("preload", "metadata"), A("src", l.AudioSrc)))
		} else {
			root.Append(El("div", Class("audio-placeholder")).Append(Text("No audio selected")))
		}
		if l.Description != "" {
			root.Append(El("div", Class("audio-description")).Append(Raw(l.Description)))
		}
		if l.Citation != "" {
			root.Append(El("div", Class("audio-citation")).Append(Raw(l.Citation)))
		}
		return root

	case models.BlockTypeCards:
		root := El("div", Class("cards-grid", "cards-layout-"+l.CardLayout, "cards-style-"+l.CardStyle))
		p := l.CardPalette
		for _, c := range l.Cards {
			card := El("div",
				Class("card"),
				A("style", "background-color: "+p.Background+"; border: 1px solid "+p.Border+"; border-top: 4px solid "+p.Accent),
			)
			if c.Title != "" {
				card.Append(El("h4", Class("card-title"), A("style", "color: "+p.Accent)).Append(Text(c.Title)))
			}
			if c.Content != "" {
				card.Append(El("div", Class("card-content")).Append(Raw(c.Content)))
			}
			root.Append(card)
		}
		return root
	}

	return errorNode("Unknown content type: " + string(l.Type))
}

func richText(blockID, html string, s Surfacer) *Node {
	if s != nil {
		return s.Surface(blockID, html)
	}
	return Raw(html)
}

func figure(root *Node, f Figure, imgClass string) *Node {
	root.Append(El("img", Class(imgClass), A("src", f.Src), A("alt", f.Alt), A("loading", "lazy")))
	if f.Caption != "" {
		root.Append(El("div", Class("image-caption")).Append(Raw(f.Caption)))
	}
	if f.Citation != "" {
		root.Append(El("div", Class("image-citation")).Append(Raw(f.Citation)))
	}
	return root
}

func errorNode(msg string) *Node {
	return El("div", Class("block-error")).Append(Text(msg))
}
