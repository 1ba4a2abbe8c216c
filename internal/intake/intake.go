// Package intake assembles block payloads from the content form. A submit
// either yields a complete payload or a ValidationError; it never yields a
// partial block.
package intake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lessonbuilder/backend/internal/dataurl"
	"github.com/lessonbuilder/backend/internal/models"
	"github.com/lessonbuilder/backend/internal/richtext"
	"github.com/lessonbuilder/backend/internal/sanitize"
	"github.com/lessonbuilder/backend/internal/video"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// User-facing validation messages
const (
	MsgUnknownType     = "Please choose a content type."
	MsgVideoPlatform   = "Please choose a video platform."
	MsgVideoID         = "Could not find a valid video ID in that link. Please check the link and try again."
	MsgEmbedCode       = "Please paste the embed code."
	MsgNoImage         = "Please select at least one image."
	MsgImageToGallery  = "An image block holds a single image. Add a new block to create a gallery."
	MsgNoCards         = "Please add at least one card."
	MsgTooManyCards    = "A card grid holds at most 4 cards."
	MsgTypeMismatch    = "The content type of an existing block cannot be changed."
	MaxCards           = 4
	defaultImagePrefix = "images/"
)

// ValidationError is a rejected submit. Message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Intake assembles payloads from submitted forms
type Intake struct {
	converter   dataurl.Converter
	editor      richtext.Editor
	sanitizer   *sanitize.Sanitizer
	markdown    goldmark.Markdown
	imagePrefix string
}

// New creates an intake. imagePrefix is used for server-mode images when the
// form leaves the path prefix empty.
func New(converter dataurl.Converter, editor richtext.Editor, imagePrefix string) *Intake {
	if imagePrefix == "" {
		imagePrefix = defaultImagePrefix
	}
	return &Intake{
		converter: converter,
		editor:    editor,
		sanitizer: sanitize.Default(),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		imagePrefix: imagePrefix,
	}
}

// Submit assembles the payload for a form.
//
// "ctx" is the context for the request.
// "req" is the submitted form.
// "existing" is the payload of the block being edited, or nil for a new block.
//
// Returns the payload, a *ValidationError, or a wrapped error if a file could not be read.
func (i *Intake) Submit(ctx context.Context, req *models.ContentRequest, existing models.Content) (models.Content, error) {
	if req.ContentType == "" && existing != nil {
		req.ContentType = existing.Kind()
	}
	if err := validateType(req, existing); err != nil {
		return nil, err
	}

	var (
		result models.Content
		err    error
	)
	switch t := req.ContentType; {
	case t.IsTextLike(), t.IsBox():
		result, err = i.richText(req)
	case t == models.BlockTypeVideo:
		result, err = i.video(req)
	case t == models.BlockTypeImage, t == models.BlockTypeGallery:
		result, err = i.images(ctx, req, existing)
	case t == models.BlockTypeAudio:
		result, err = i.audio(ctx, req, existing)
	case t == models.BlockTypeCards:
		result, err = i.cards(req)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func validateType(req *models.ContentRequest, existing models.Content) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.ContentType,
			validation.Required.Error(MsgUnknownType),
			validation.By(func(value interface{}) error {
				if !req.ContentType.IsValid() {
					return errors.New(MsgUnknownType)
				}
				return nil
			}),
		),
	)
	if err != nil {
		return toValidationError(err)
	}

	if existing == nil {
		return nil
	}
	have, want := existing.Kind(), req.ContentType
	if have == want || isImageKind(have) && isImageKind(want) {
		return nil
	}
	return &ValidationError{Field: "contentType", Message: MsgTypeMismatch}
}

func isImageKind(t models.BlockType) bool {
	return t == models.BlockTypeImage || t == models.BlockTypeGallery
}

// toValidationError picks the first failing field in name order
func toValidationError(err error) error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return nil
	}
	return &ValidationError{Field: keys[0], Message: errs[keys[0]].Error()}
}

func (i *Intake) richText(req *models.ContentRequest) (models.Content, error) {
	content := req.Content
	if req.Format == models.ContentFormatMarkdown {
		var buf bytes.Buffer
		if err := i.markdown.Convert([]byte(content), &buf); err != nil {
			return nil, fmt.Errorf("failed to render markdown: %w", err)
		}
		content = buf.String()
	}

	content, err := i.editor.Changed(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	if req.ContentType.IsBox() {
		return &models.BoxContent{BlockKind: req.ContentType, Content: content}, nil
	}
	return &models.TextContent{BlockKind: req.ContentType, Content: content}, nil
}

func (i *Intake) video(req *models.ContentRequest) (models.Content, error) {
	platform := req.VideoPlatform
	needsID := platform != "" && platform != models.VideoPlatformEmbed

	err := validation.ValidateStruct(req,
		validation.Field(&req.VideoPlatform,
			validation.Required.Error(MsgVideoPlatform),
			validation.By(func(value interface{}) error {
				if !video.IsValidPlatform(platform) {
					return errors.New(MsgVideoPlatform)
				}
				return nil
			}),
		),
		validation.Field(&req.VideoURL,
			validation.When(needsID, validation.By(func(value interface{}) error {
				if _, ok := video.ExtractID(req.VideoURL, platform); !ok {
					return errors.New(MsgVideoID)
				}
				return nil
			})),
		),
		validation.Field(&req.EmbedCode,
			validation.When(platform == models.VideoPlatformEmbed,
				validation.By(func(value interface{}) error {
					if i.sanitizer.Embed(req.EmbedCode) == "" {
						return errors.New(MsgEmbedCode)
					}
					return nil
				}),
			),
		),
	)
	if err != nil {
		return nil, toValidationError(err)
	}

	c := &models.VideoContent{
		Platform:    platform,
		AspectRatio: video.NormalizeAspect(req.AspectRatio),
		Title:       i.sanitizer.Inline(req.VideoTitle),
		Author:      i.sanitizer.Inline(req.VideoAuthor),
		Date:        strings.TrimSpace(req.VideoDate),
		Source:      i.sanitizer.Inline(req.VideoSource),
	}
	if platform == models.VideoPlatformEmbed {
		c.EmbedCode = i.sanitizer.Embed(req.EmbedCode)
		c.Src = c.EmbedCode
		return c, nil
	}

	id, _ := video.ExtractID(req.VideoURL, platform)
	c.URL = strings.TrimSpace(req.VideoURL)
	c.Src = video.EmbedURL(platform, id)
	return c, nil
}
