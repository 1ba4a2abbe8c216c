package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// BlockType represents the type of a content block
type BlockType string

const (
	BlockTypeText        BlockType = "text"
	BlockTypeHeading     BlockType = "heading"
	BlockTypeList        BlockType = "list"
	BlockTypeHeadline    BlockType = "headline"
	BlockTypeInfoBox     BlockType = "info-box"
	BlockTypeExerciseBox BlockType = "exercise-box"
	BlockTypeWarningBox  BlockType = "warning-box"
	BlockTypeVideo       BlockType = "video"
	BlockTypeImage       BlockType = "image"
	BlockTypeGallery     BlockType = "gallery"
	BlockTypeAudio       BlockType = "audio"
	BlockTypeCards       BlockType = "cards"
)

var textBlockTypes = []BlockType{BlockTypeText, BlockTypeHeading, BlockTypeList, BlockTypeHeadline}

var boxBlockTypes = []BlockType{BlockTypeInfoBox, BlockTypeExerciseBox, BlockTypeWarningBox}

// BlockTypes lists every block type in the order the editor offers them
var BlockTypes = []BlockType{
	BlockTypeText,
	BlockTypeHeading,
	BlockTypeList,
	BlockTypeHeadline,
	BlockTypeInfoBox,
	BlockTypeExerciseBox,
	BlockTypeWarningBox,
	BlockTypeVideo,
	BlockTypeImage,
	BlockTypeGallery,
	BlockTypeAudio,
	BlockTypeCards,
}

// IsValid reports whether t is one of the known block types
func (t BlockType) IsValid() bool {
	return slices.Contains(BlockTypes, t)
}

// IsTextLike reports whether blocks of type t hold a single rich-text content field
func (t BlockType) IsTextLike() bool {
	return slices.Contains(textBlockTypes, t)
}

// IsBox reports whether t is one of the callout box types
func (t BlockType) IsBox() bool {
	return slices.Contains(boxBlockTypes, t)
}

// Content is the payload of a block. The set of implementations is closed:
// each block type maps to exactly one payload struct.
type Content interface {
	// Kind returns the block type the payload belongs to
	Kind() BlockType
	sealed()
}

// TextContent is the payload of text, heading, list and headline blocks
type TextContent struct {
	BlockKind BlockType `json:"-"`
	Content   string    `json:"content"`
}

func (c *TextContent) Kind() BlockType { return c.BlockKind }
func (*TextContent) sealed()           {}

// BoxContent is the payload of info, exercise and warning boxes
type BoxContent struct {
	BlockKind BlockType `json:"-"`
	Content   string    `json:"content"`
}

func (c *BoxContent) Kind() BlockType { return c.BlockKind }
func (*BoxContent) sealed()           {}

// VideoPlatform identifies where a video is hosted
type VideoPlatform string

const (
	VideoPlatformYouTube VideoPlatform = "youtube"
	VideoPlatformVimeo   VideoPlatform = "vimeo"
	VideoPlatformPanopto VideoPlatform = "panopto"
	VideoPlatformEmbed   VideoPlatform = "embed"
)

// VideoContent is the payload of a video block
type VideoContent struct {
	Platform    VideoPlatform `json:"videoPlatform"`
	URL         string        `json:"videoUrl,omitempty"`
	EmbedCode   string        `json:"embedCode,omitempty"`
	AspectRatio string        `json:"aspectRatio,omitempty"`
	Src         string        `json:"src"`
	Title       string        `json:"videoTitle,omitempty"`
	Author      string        `json:"videoAuthor,omitempty"`
	Date        string        `json:"videoDate,omitempty"`
	Source      string        `json:"videoSource,omitempty"`
}

func (*VideoContent) Kind() BlockType { return BlockTypeVideo }
func (*VideoContent) sealed()         {}

// ImageContent is the payload of a single image block
type ImageContent struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Size    string `json:"size,omitempty"`
	Caption string `json:"caption,omitempty"`
	Title   string `json:"imageTitle,omitempty"`
	Author  string `json:"imageAuthor,omitempty"`
	Source  string `json:"imageSource,omitempty"`
	Date    string `json:"imageDate,omitempty"`
}

func (*ImageContent) Kind() BlockType { return BlockTypeImage }
func (*ImageContent) sealed()         {}

// ImageItem is one picture of a gallery
type ImageItem struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
	Title   string `json:"imageTitle,omitempty"`
	Author  string `json:"imageAuthor,omitempty"`
	Source  string `json:"imageSource,omitempty"`
	Date    string `json:"imageDate,omitempty"`
}

// GalleryContent is the payload of a gallery block
type GalleryContent struct {
	Items   []ImageItem `json:"items"`
	Columns int         `json:"columns,omitempty"`
}

func (*GalleryContent) Kind() BlockType { return BlockTypeGallery }
func (*GalleryContent) sealed()         {}

// UnmarshalJSON accepts columns as a number or a numeric string. Anything
// else leaves the column count unset.
func (g *GalleryContent) UnmarshalJSON(data []byte) error {
	type alias GalleryContent
	aux := struct {
		*alias
		Columns json.RawMessage `json:"columns"`
	}{alias: (*alias)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	g.Columns = 0
	s := strings.TrimSpace(strings.Trim(string(aux.Columns), `"`))
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		g.Columns = n
	}
	return nil
}

// AudioContent is the payload of an audio block
type AudioContent struct {
	Src         string `json:"src,omitempty"`
	Description string `json:"description,omitempty"`
	Title       string `json:"audioTitle,omitempty"`
	Creator     string `json:"audioCreator,omitempty"`
	SourceInfo  string `json:"audioSourceInfo,omitempty"`
	DateInfo    string `json:"audioDateInfo,omitempty"`
}

func (*AudioContent) Kind() BlockType { return BlockTypeAudio }
func (*AudioContent) sealed()         {}

// CardItem is a single card of a card grid
type CardItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CardsContent is the payload of a card grid block
type CardsContent struct {
	Items  []CardItem `json:"items"`
	Layout string     `json:"layout,omitempty"`
	Style  string     `json:"style,omitempty"`
}

func (*CardsContent) Kind() BlockType { return BlockTypeCards }
func (*CardsContent) sealed()         {}

// UnknownContent keeps a payload whose type tag is not recognized.
// It survives load/save untouched and renders as an inline error.
type UnknownContent struct {
	BlockKind BlockType
	Raw       json.RawMessage
}

func (c *UnknownContent) Kind() BlockType { return c.BlockKind }
func (*UnknownContent) sealed()           {}

// Block represents one content unit inside a section
type Block struct {
	ID      string
	Content Content
}

// Type returns the block type derived from its payload
func (b Block) Type() BlockType {
	if b.Content == nil {
		return ""
	}
	return b.Content.Kind()
}

// NewContent returns an empty payload for the given block type
func NewContent(t BlockType) (Content, error) {
	switch {
	case t.IsTextLike():
		return &TextContent{BlockKind: t}, nil
	case t.IsBox():
		return &BoxContent{BlockKind: t}, nil
	}
	switch t {
	case BlockTypeVideo:
		return &VideoContent{}, nil
	case BlockTypeImage:
		return &ImageContent{}, nil
	case BlockTypeGallery:
		return &GalleryContent{}, nil
	case BlockTypeAudio:
		return &AudioContent{}, nil
	case BlockTypeCards:
		return &CardsContent{}, nil
	}
	return nil, fmt.Errorf("unknown block type: %s", t)
}

// MarshalJSON encodes the block in its flat wire shape: {id, type, ...payload}.
// The id is omitted when empty, which is how the save file strips ids.
func (b Block) MarshalJSON() ([]byte, error) {
	fields := map[string]json.RawMessage{}

	switch c := b.Content.(type) {
	case nil:
		return nil, fmt.Errorf("block %q has no content", b.ID)
	case *UnknownContent:
		if len(c.Raw) > 0 {
			if err := json.Unmarshal(c.Raw, &fields); err != nil {
				return nil, fmt.Errorf("failed to encode unknown block payload: %w", err)
			}
		}
	default:
		payload, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("failed to encode block payload: %w", err)
		}
		if err := json.Unmarshal(payload, &fields); err != nil {
			return nil, fmt.Errorf("failed to encode block payload: %w", err)
		}
	}

	typeJSON, err := json.Marshal(b.Type())
	if err != nil {
		return nil, err
	}
	fields["type"] = typeJSON
	delete(fields, "id")
	if b.ID != "" {
		idJSON, err := json.Marshal(b.ID)
		if err != nil {
			return nil, err
		}
		fields["id"] = idJSON
	}

	return json.Marshal(fields)
}

// UnmarshalJSON decodes a flat block object, dispatching on its type tag
func (b *Block) UnmarshalJSON(data []byte) error {
	var head struct {
		ID   json.RawMessage `json:"id"`
		Type BlockType       `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("failed to decode block: %w", err)
	}
	if head.Type == "" {
		return fmt.Errorf("block type is required")
	}

	// Ids were numbers in early save files, so accept both forms
	id := ""
	if len(head.ID) > 0 && string(head.ID) != "null" {
		var s string
		if err := json.Unmarshal(head.ID, &s); err == nil {
			id = s
		} else {
			id = string(head.ID)
		}
	}

	content, err := NewContent(head.Type)
	if err != nil {
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		b.ID = id
		b.Content = &UnknownContent{BlockKind: head.Type, Raw: raw}
		return nil
	}
	if err := json.Unmarshal(data, content); err != nil {
		return fmt.Errorf("failed to decode %s block: %w", head.Type, err)
	}

	b.ID = id
	b.Content = content
	return nil
}

// Clone returns a deep copy of the block
func (b Block) Clone() Block {
	return Block{ID: b.ID, Content: CloneContent(b.Content)}
}

// CloneContent returns a deep copy of a payload
func CloneContent(c Content) Content {
	switch v := c.(type) {
	case *TextContent:
		cp := *v
		return &cp
	case *BoxContent:
		cp := *v
		return &cp
	case *VideoContent:
		cp := *v
		return &cp
	case *ImageContent:
		cp := *v
		return &cp
	case *GalleryContent:
		cp := *v
		cp.Items = slices.Clone(v.Items)
		return &cp
	case *AudioContent:
		cp := *v
		return &cp
	case *CardsContent:
		cp := *v
		cp.Items = slices.Clone(v.Items)
		return &cp
	case *UnknownContent:
		cp := *v
		cp.Raw = slices.Clone(v.Raw)
		return &cp
	}
	return c
}
