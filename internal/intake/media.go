package intake

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lessonbuilder/backend/internal/dataurl"
	"github.com/lessonbuilder/backend/internal/models"
	"github.com/lessonbuilder/backend/internal/render"
)

// source is one picture picked in the form
type source struct {
	name string
	src  string
}

var figurePrefixPattern = regexp.MustCompile(`(?i)^(?:<[^>]+>\s*)*figure(?:\s+\d+)?\s*:`)

func (i *Intake) images(ctx context.Context, req *models.ContentRequest, existing models.Content) (models.Content, error) {
	sources, err := i.imageSources(ctx, req)
	if err != nil {
		return nil, err
	}

	err = validation.Validate(sources,
		validation.When(existing == nil, validation.Required.Error(MsgNoImage)),
	)
	if err != nil {
		return nil, &ValidationError{Field: "files", Message: err.Error()}
	}

	switch prev := existing.(type) {
	case *models.ImageContent:
		if len(sources) > 1 {
			return nil, &ValidationError{Field: "files", Message: MsgImageToGallery}
		}
		src := prev.Src
		if len(sources) == 1 {
			src = sources[0].src
		}
		return i.singleImage(req, src, prev.Alt), nil

	case *models.GalleryContent:
		if len(sources) == 0 {
			return i.gallery(req, existingSources(prev), prev.Items), nil
		}
		return i.gallery(req, sources, nil), nil
	}

	if len(sources) == 1 {
		return i.singleImage(req, sources[0].src, sources[0].name), nil
	}
	return i.gallery(req, sources, nil), nil
}

// imageSources reads files in order, or splits the filename list onto the path prefix
func (i *Intake) imageSources(ctx context.Context, req *models.ContentRequest) ([]source, error) {
	mode := req.SourceMode
	if mode == "" {
		mode = models.SourceModeUpload
		if len(req.Files) == 0 && strings.TrimSpace(req.Filenames) != "" {
			mode = models.SourceModeServer
		}
	}

	var sources []source
	switch mode {
	case models.SourceModeUpload:
		for _, f := range req.Files {
			url, err := i.converter.Convert(ctx, f)
			if err != nil {
				return nil, fmt.Errorf("failed to read image %s: %w", f.Name, err)
			}
			if !dataurl.IsMedia(url, "image") {
				return nil, fmt.Errorf("failed to read image %s: %w", f.Name, dataurl.ErrUnsupportedType)
			}
			sources = append(sources, source{name: f.Name, src: url})
		}

	case models.SourceModeServer:
		prefix := req.PathPrefix
		if strings.TrimSpace(prefix) == "" {
			prefix = i.imagePrefix
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		for _, line := range strings.Split(req.Filenames, "\n") {
			name := strings.TrimSpace(line)
			if name == "" {
				continue
			}
			sources = append(sources, source{name: name, src: prefix + strings.TrimPrefix(name, "/")})
		}

	default:
		return nil, &ValidationError{Field: "sourceMode", Message: fmt.Sprintf("Unknown image source %q.", mode)}
	}

	return sources, nil
}

func existingSources(g *models.GalleryContent) []source {
	out := make([]source, 0, len(g.Items))
	for _, item := range g.Items {
		out = append(out, source{name: item.Alt, src: item.Src})
	}
	return out
}

func (i *Intake) singleImage(req *models.ContentRequest, src, defaultAlt string) *models.ImageContent {
	alt := strings.TrimSpace(req.Alt)
	if alt == "" {
		alt = defaultAlt
	}
	return &models.ImageContent{
		Src:     src,
		Alt:     alt,
		Size:    render.ImageSize(req.Size),
		Caption: i.caption(req.Caption, 0),
		Title:   i.sanitizer.Inline(req.ImageTitle),
		Author:  i.sanitizer.Inline(req.ImageAuthor),
		Source:  i.sanitizer.Inline(req.ImageSource),
		Date:    strings.TrimSpace(req.ImageDate),
	}
}

// gallery builds one item per source; metadata is matched by position,
// falling back to the previous items when editing
func (i *Intake) gallery(req *models.ContentRequest, sources []source, previous []models.ImageItem) *models.GalleryContent {
	items := make([]models.ImageItem, 0, len(sources))
	for n, s := range sources {
		var meta models.ImageItemMeta
		switch {
		case n < len(req.ItemMeta):
			meta = req.ItemMeta[n]
		case n < len(previous):
			p := previous[n]
			meta = models.ImageItemMeta{
				Alt: p.Alt, Caption: p.Caption, ImageTitle: p.Title,
				ImageAuthor: p.Author, ImageSource: p.Source, ImageDate: p.Date,
			}
		}

		alt := strings.TrimSpace(meta.Alt)
		if alt == "" {
			alt = s.name
		}
		items = append(items, models.ImageItem{
			Src:     s.src,
			Alt:     alt,
			Caption: i.caption(meta.Caption, n+1),
			Title:   i.sanitizer.Inline(meta.ImageTitle),
			Author:  i.sanitizer.Inline(meta.ImageAuthor),
			Source:  i.sanitizer.Inline(meta.ImageSource),
			Date:    strings.TrimSpace(meta.ImageDate),
		})
	}
	return &models.GalleryContent{Items: items, Columns: render.Columns(req.Columns)}
}

// caption sanitizes a caption and bakes in the "Figure N:" prefix.
// n is the 1-based gallery position, 0 for a single image.
func (i *Intake) caption(caption string, n int) string {
	caption = strings.TrimSpace(i.sanitizer.Content(caption))
	if caption == "" || figurePrefixPattern.MatchString(caption) {
		return caption
	}

	prefix := "Figure: "
	if n > 0 {
		prefix = "Figure " + strconv.Itoa(n) + ": "
	}
	if strings.HasPrefix(caption, "<p>") {
		return "<p>" + prefix + strings.TrimPrefix(caption, "<p>")
	}
	return prefix + caption
}

func (i *Intake) audio(ctx context.Context, req *models.ContentRequest, existing models.Content) (models.Content, error) {
	src := ""
	if prev, ok := existing.(*models.AudioContent); ok {
		src = prev.Src
	}

	if f := req.AudioFile; f != nil && len(f.Data) > 0 {
		url, err := i.converter.Convert(ctx, *f)
		if err != nil {
			return nil, fmt.Errorf("failed to read audio %s: %w", f.Name, err)
		}
		if !dataurl.IsMedia(url, "audio") {
			return nil, fmt.Errorf("failed to read audio %s: %w", f.Name, dataurl.ErrUnsupportedType)
		}
		src = url
	}

	return &models.AudioContent{
		Src:         src,
		Description: i.sanitizer.Content(req.Description),
		Title:       i.sanitizer.Inline(req.AudioTitle),
		Creator:     i.sanitizer.Inline(req.AudioCreator),
		SourceInfo:  i.sanitizer.Inline(req.AudioSourceInfo),
		DateInfo:    strings.TrimSpace(req.AudioDateInfo),
	}, nil
}
