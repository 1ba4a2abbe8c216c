package models

// SourceMode selects where image files come from
type SourceMode string

const (
	SourceModeUpload SourceMode = "upload"
	SourceModeServer SourceMode = "server"
)

// ContentFormat is the markup the rich-text fields were authored in
type ContentFormat string

const (
	ContentFormatHTML     ContentFormat = "html"
	ContentFormatMarkdown ContentFormat = "markdown"
)

// UploadFile is a local file handed to the intake form
type UploadFile struct {
	Name string `json:"name" example:"diagram.png"`
	Data []byte `json:"data" swaggertype:"string" format:"base64"`
}

// ImageItemMeta holds per-image metadata of a multi-image intake, keyed by position
type ImageItemMeta struct {
	Alt         string `json:"alt,omitempty"`
	Caption     string `json:"caption,omitempty"`
	ImageTitle  string `json:"imageTitle,omitempty"`
	ImageAuthor string `json:"imageAuthor,omitempty"`
	ImageSource string `json:"imageSource,omitempty"`
	ImageDate   string `json:"imageDate,omitempty"`
}

// CardInput is one card as entered in the intake form
type CardInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	// PlainText marks legacy plain-text content that must be converted to HTML
	PlainText bool `json:"plainText,omitempty"`
}

// ContentRequest represents a submitted content intake form
type ContentRequest struct {
	ContentType BlockType     `json:"contentType" example:"video"`
	InsertAfter string        `json:"insertAfter,omitempty"`
	Content     string        `json:"content,omitempty" example:"<p>Hello</p>"`
	Format      ContentFormat `json:"format,omitempty" example:"html"`

	VideoPlatform VideoPlatform `json:"videoPlatform,omitempty" example:"youtube"`
	VideoURL      string        `json:"videoUrl,omitempty" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
	EmbedCode     string        `json:"embedCode,omitempty"`
	AspectRatio   string        `json:"aspectRatio,omitempty" example:"16-9"`
	VideoTitle    string        `json:"videoTitle,omitempty"`
	VideoAuthor   string        `json:"videoAuthor,omitempty"`
	VideoDate     string        `json:"videoDate,omitempty"`
	VideoSource   string        `json:"videoSource,omitempty"`

	SourceMode  SourceMode      `json:"sourceMode,omitempty" example:"upload"`
	Files       []UploadFile    `json:"files,omitempty"`
	Filenames   string          `json:"filenames,omitempty" example:"figure1.png\nfigure2.png"`
	PathPrefix  string          `json:"pathPrefix,omitempty" example:"images/week1/"`
	Alt         string          `json:"alt,omitempty"`
	Size        string          `json:"size,omitempty" example:"medium"`
	Caption     string          `json:"caption,omitempty"`
	ImageTitle  string          `json:"imageTitle,omitempty"`
	ImageAuthor string          `json:"imageAuthor,omitempty"`
	ImageSource string          `json:"imageSource,omitempty"`
	ImageDate   string          `json:"imageDate,omitempty"`
	ItemMeta    []ImageItemMeta `json:"itemMeta,omitempty"`
	Columns     int             `json:"columns,omitempty" example:"2"`

	AudioFile       *UploadFile `json:"audioFile,omitempty"`
	Description     string      `json:"description,omitempty"`
	AudioTitle      string      `json:"audioTitle,omitempty"`
	AudioCreator    string      `json:"audioCreator,omitempty"`
	AudioSourceInfo string      `json:"audioSourceInfo,omitempty"`
	AudioDateInfo   string      `json:"audioDateInfo,omitempty"`

	Cards      []CardInput `json:"cards,omitempty"`
	CardLayout string      `json:"cardLayout,omitempty" example:"2x2"`
	CardStyle  string      `json:"cardStyle,omitempty" example:"info"`
}

// CreateSectionRequest represents a request to add a section
type CreateSectionRequest struct {
	Title string      `json:"title" example:"Group Activity"`
	Type  SectionType `json:"type,omitempty" example:"content"`
}

// RenameSectionRequest represents a request to rename a section
type RenameSectionRequest struct {
	Title string `json:"title" example:"Warm-up"`
}

// MoveBlockRequest represents a request to move a block one step
type MoveBlockRequest struct {
	Direction string `json:"direction" example:"up"`
}

// ReorderBlockRequest represents a drag-and-drop reorder
type ReorderBlockRequest struct {
	BlockID     string `json:"blockId"`
	TargetIndex int    `json:"targetIndex" example:"0"`
}

// DropRequest represents the drop half of a drag-and-drop gesture
type DropRequest struct {
	TargetIndex int `json:"targetIndex" example:"2"`
}

// EditModeRequest toggles edit mode
type EditModeRequest struct {
	EditMode bool `json:"editMode"`
}
