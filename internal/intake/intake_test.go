package intake

import (
	"context"
	"errors"
	"testing"

	"github.com/lessonbuilder/backend/internal/dataurl"
	"github.com/lessonbuilder/backend/internal/models"
	"github.com/lessonbuilder/backend/internal/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockConverter is a mock implementation of dataurl.Converter
type mockConverter struct {
	calls []string
	err   error
	kind  string
}

func (m *mockConverter) Convert(ctx context.Context, file models.UploadFile) (string, error) {
	m.calls = append(m.calls, file.Name)
	if m.err != nil {
		return "", m.err
	}
	kind := m.kind
	if kind == "" {
		kind = "image/png"
	}
	return "data:" + kind + ";base64," + file.Name, nil
}

func newIntake(conv dataurl.Converter) *Intake {
	if conv == nil {
		conv = &mockConverter{}
	}
	return New(conv, richtext.NewContentEditable(nil), "images/")
}

func files(names ...string) []models.UploadFile {
	out := make([]models.UploadFile, 0, len(names))
	for _, n := range names {
		out = append(out, models.UploadFile{Name: n, Data: []byte("x")})
	}
	return out
}

func assertValidation(t *testing.T, err error, message string) {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	assert.Equal(t, message, ve.Message)
}

func TestSubmit_RichText(t *testing.T) {
	tests := []struct {
		name         string
		req          models.ContentRequest
		expectedKind models.BlockType
		expected     string
	}{
		{
			name:         "text",
			req:          models.ContentRequest{ContentType: models.BlockTypeText, Content: "<p>Hello</p>"},
			expectedKind: models.BlockTypeText,
			expected:     "<p>Hello</p>",
		},
		{
			name:         "empty content is valid",
			req:          models.ContentRequest{ContentType: models.BlockTypeHeading},
			expectedKind: models.BlockTypeHeading,
			expected:     "",
		},
		{
			name:         "box sanitized",
			req:          models.ContentRequest{ContentType: models.BlockTypeExerciseBox, Content: `<p>Do it</p><script>x()</script>`},
			expectedKind: models.BlockTypeExerciseBox,
			expected:     "<p>Do it</p>",
		},
		{
			name:         "markdown",
			req:          models.ContentRequest{ContentType: models.BlockTypeList, Content: "- one\n- two\n", Format: models.ContentFormatMarkdown},
			expectedKind: models.BlockTypeList,
			expected:     "<ul>\n<li>one</li>\n<li>two</li>\n</ul>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newIntake(nil).Submit(context.Background(), &tt.req, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedKind, result.Kind())

			switch c := result.(type) {
			case *models.TextContent:
				assert.Equal(t, tt.expected, c.Content)
			case *models.BoxContent:
				assert.Equal(t, tt.expected, c.Content)
			default:
				t.Fatalf("unexpected payload %T", result)
			}
		})
	}
}

func TestSubmit_UnknownType(t *testing.T) {
	_, err := newIntake(nil).Submit(context.Background(), &models.ContentRequest{ContentType: "quiz"}, nil)
	assertValidation(t, err, MsgUnknownType)

	_, err = newIntake(nil).Submit(context.Background(), &models.ContentRequest{}, nil)
	assertValidation(t, err, MsgUnknownType)
}

func TestSubmit_Video(t *testing.T) {
	tests := []struct {
		name        string
		req         models.ContentRequest
		expectedSrc string
		expectedMsg string
	}{
		{
			name:        "youtube",
			req:         models.ContentRequest{VideoPlatform: models.VideoPlatformYouTube, VideoURL: "https://www.youtube.com/watch?v=abc12345678"},
			expectedSrc: "https://www.youtube.com/embed/abc12345678",
		},
		{
			name:        "vimeo",
			req:         models.ContentRequest{VideoPlatform: models.VideoPlatformVimeo, VideoURL: "https://vimeo.com/76979871"},
			expectedSrc: "https://player.vimeo.com/video/76979871",
		},
		{
			name:        "panopto",
			req:         models.ContentRequest{VideoPlatform: models.VideoPlatformPanopto, VideoURL: "https://u.panopto.com/Panopto/Pages/Viewer.aspx?id=1"},
			expectedSrc: "https://u.panopto.com/Panopto/Pages/Embed.aspx?id=1",
		},
		{
			name:        "unresolvable link",
			req:         models.ContentRequest{VideoPlatform: models.VideoPlatformYouTube, VideoURL: "https://example.com/not-a-video"},
			expectedMsg: MsgVideoID,
		},
		{
			name:        "missing link",
			req:         models.ContentRequest{VideoPlatform: models.VideoPlatformVimeo},
			expectedMsg: MsgVideoID,
		},
		{
			name:        "missing platform",
			req:         models.ContentRequest{VideoURL: "https://youtu.be/dQw4w9WgXcQ"},
			expectedMsg: MsgVideoPlatform,
		},
		{
			name:        "unknown platform",
			req:         models.ContentRequest{VideoPlatform: "dailymotion", VideoURL: "https://youtu.be/dQw4w9WgXcQ"},
			expectedMsg: MsgVideoPlatform,
		},
		{
			name:        "embed without code",
			req:         models.ContentRequest{VideoPlatform: models.VideoPlatformEmbed},
			expectedMsg: MsgEmbedCode,
		},
		{
			name:        "embed keeps sanitized code",
			req:         models.ContentRequest{VideoPlatform: models.VideoPlatformEmbed, EmbedCode: `<iframe src="https://media.example.com/e/1"></iframe>`},
			expectedSrc: `<iframe src="https://media.example.com/e/1"></iframe>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.ContentType = models.BlockTypeVideo
			result, err := newIntake(nil).Submit(context.Background(), &tt.req, nil)

			if tt.expectedMsg != "" {
				assertValidation(t, err, tt.expectedMsg)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			v, ok := result.(*models.VideoContent)
			require.True(t, ok)
			assert.Equal(t, tt.expectedSrc, v.Src)
			assert.Equal(t, "16-9", v.AspectRatio)
		})
	}
}

func TestSubmit_VideoCitationFields(t *testing.T) {
	req := &models.ContentRequest{
		ContentType:   models.BlockTypeVideo,
		VideoPlatform: models.VideoPlatformYouTube,
		VideoURL:      "https://youtu.be/dQw4w9WgXcQ",
		AspectRatio:   "21-9",
		VideoTitle:    "Cells <script>x()</script>",
		VideoAuthor:   "Jane",
		VideoDate:     "2020-01-01",
		VideoSource:   "YouTube",
	}

	result, err := newIntake(nil).Submit(context.Background(), req, nil)
	require.NoError(t, err)
	v := result.(*models.VideoContent)
	assert.Equal(t, "Cells", v.Title)
	assert.Equal(t, "Jane", v.Author)
	assert.Equal(t, "2020-01-01", v.Date)
	assert.Equal(t, "YouTube", v.Source)
	assert.Equal(t, "21-9", v.AspectRatio)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", v.URL)
}

func TestSubmit_ImagePromotion(t *testing.T) {
	t.Run("one file yields an image", func(t *testing.T) {
		conv := &mockConverter{}
		req := &models.ContentRequest{ContentType: models.BlockTypeImage, Files: files("cell.png"), Caption: "A cell"}

		result, err := newIntake(conv).Submit(context.Background(), req, nil)
		require.NoError(t, err)

		img, ok := result.(*models.ImageContent)
		require.True(t, ok)
		assert.Equal(t, "data:image/png;base64,cell.png", img.Src)
		assert.Equal(t, "cell.png", img.Alt)
		assert.Equal(t, "medium", img.Size)
		assert.Equal(t, "Figure: A cell", img.Caption)
	})

	t.Run("three files yield a gallery in order", func(t *testing.T) {
		conv := &mockConverter{}
		req := &models.ContentRequest{
			ContentType: models.BlockTypeImage,
			Files:       files("a.png", "b.png", "c.png"),
			ItemMeta:    []models.ImageItemMeta{{}, {Alt: "Bee", Caption: "Pollination"}},
			Columns:     3,
		}

		result, err := newIntake(conv).Submit(context.Background(), req, nil)
		require.NoError(t, err)

		g, ok := result.(*models.GalleryContent)
		require.True(t, ok)
		require.Len(t, g.Items, 3)
		assert.Equal(t, []string{"a.png", "b.png", "c.png"}, conv.calls)
		assert.Equal(t, "a.png", g.Items[0].Alt)
		assert.Equal(t, "Bee", g.Items[1].Alt)
		assert.Equal(t, "Figure 2: Pollination", g.Items[1].Caption)
		assert.Equal(t, "c.png", g.Items[2].Alt)
		assert.Equal(t, 3, g.Columns)
	})

	t.Run("server filenames", func(t *testing.T) {
		req := &models.ContentRequest{
			ContentType: models.BlockTypeImage,
			SourceMode:  models.SourceModeServer,
			Filenames:   "one.png\n\n  two.png  \n",
			PathPrefix:  "img/week1",
		}

		result, err := newIntake(nil).Submit(context.Background(), req, nil)
		require.NoError(t, err)

		g, ok := result.(*models.GalleryContent)
		require.True(t, ok)
		require.Len(t, g.Items, 2)
		assert.Equal(t, "img/week1/one.png", g.Items[0].Src)
		assert.Equal(t, "img/week1/two.png", g.Items[1].Src)
		assert.Equal(t, "two.png", g.Items[1].Alt)
	})

	t.Run("server filename with default prefix", func(t *testing.T) {
		req := &models.ContentRequest{ContentType: models.BlockTypeImage, SourceMode: models.SourceModeServer, Filenames: "x.jpg"}

		result, err := newIntake(nil).Submit(context.Background(), req, nil)
		require.NoError(t, err)
		assert.Equal(t, "images/x.jpg", result.(*models.ImageContent).Src)
	})
}

func TestSubmit_ImageValidation(t *testing.T) {
	_, err := newIntake(nil).Submit(context.Background(), &models.ContentRequest{ContentType: models.BlockTypeImage}, nil)
	assertValidation(t, err, MsgNoImage)

	_, err = newIntake(nil).Submit(context.Background(), &models.ContentRequest{
		ContentType: models.BlockTypeImage, SourceMode: models.SourceModeServer, Filenames: " \n ",
	}, nil)
	assertValidation(t, err, MsgNoImage)
}

func TestSubmit_ImageConversionFailure(t *testing.T) {
	conv := &mockConverter{err: dataurl.ErrUnsupportedType}
	req := &models.ContentRequest{ContentType: models.BlockTypeImage, Files: files("a.txt")}

	result, err := newIntake(conv).Submit(context.Background(), req, nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, dataurl.ErrUnsupportedType)
	assert.False(t, IsValidationError(err))
}

func TestSubmit_ImageRejectsNonImageData(t *testing.T) {
	conv := &mockConverter{kind: "audio/mpeg"}
	req := &models.ContentRequest{ContentType: models.BlockTypeImage, Files: files("a.mp3")}

	_, err := newIntake(conv).Submit(context.Background(), req, nil)
	assert.ErrorIs(t, err, dataurl.ErrUnsupportedType)
}

func TestSubmit_ImageEdit(t *testing.T) {
	existing := &models.ImageContent{Src: "images/old.png", Alt: "Old", Size: "large"}

	t.Run("no new source keeps src", func(t *testing.T) {
		req := &models.ContentRequest{ContentType: models.BlockTypeImage, Size: "small", Caption: "Figure 3: kept"}

		result, err := newIntake(nil).Submit(context.Background(), req, existing)
		require.NoError(t, err)

		img := result.(*models.ImageContent)
		assert.Equal(t, "images/old.png", img.Src)
		assert.Equal(t, "Old", img.Alt)
		assert.Equal(t, "small", img.Size)
		assert.Equal(t, "Figure 3: kept", img.Caption)
	})

	t.Run("content type taken from the edited block", func(t *testing.T) {
		result, err := newIntake(nil).Submit(context.Background(), &models.ContentRequest{}, existing)
		require.NoError(t, err)
		assert.Equal(t, models.BlockTypeImage, result.Kind())
	})

	t.Run("several sources cannot turn an image into a gallery", func(t *testing.T) {
		req := &models.ContentRequest{ContentType: models.BlockTypeImage, Files: files("a.png", "b.png")}
		_, err := newIntake(nil).Submit(context.Background(), req, existing)
		assertValidation(t, err, MsgImageToGallery)
	})

	t.Run("gallery metadata edit keeps sources", func(t *testing.T) {
		gallery := &models.GalleryContent{Columns: 4, Items: []models.ImageItem{
			{Src: "a.png", Alt: "A"}, {Src: "b.png", Alt: "B", Caption: "Figure 2: b"},
		}}
		req := &models.ContentRequest{ContentType: models.BlockTypeGallery, Columns: 4, ItemMeta: []models.ImageItemMeta{{Alt: "New A"}}}

		result, err := newIntake(nil).Submit(context.Background(), req, gallery)
		require.NoError(t, err)

		g := result.(*models.GalleryContent)
		require.Len(t, g.Items, 2)
		assert.Equal(t, "a.png", g.Items[0].Src)
		assert.Equal(t, "New A", g.Items[0].Alt)
		assert.Equal(t, "B", g.Items[1].Alt)
		assert.Equal(t, "Figure 2: b", g.Items[1].Caption)
	})

	t.Run("type change rejected", func(t *testing.T) {
		_, err := newIntake(nil).Submit(context.Background(), &models.ContentRequest{ContentType: models.BlockTypeText}, existing)
		assertValidation(t, err, MsgTypeMismatch)
	})
}

func TestCaptionPrefix(t *testing.T) {
	in := newIntake(nil)

	assert.Equal(t, "", in.caption("", 1))
	assert.Equal(t, "Figure: plain", in.caption("plain", 0))
	assert.Equal(t, "Figure 4: plain", in.caption("plain", 4))
	assert.Equal(t, "<p>Figure 2: rich</p>", in.caption("<p>rich</p>", 2))
	assert.Equal(t, "figure 1: already", in.caption("figure 1: already", 5))
	assert.Equal(t, "<p>Figure: already</p>", in.caption("<p>Figure: already</p>", 0))
}

func TestSubmit_Audio(t *testing.T) {
	t.Run("file converted", func(t *testing.T) {
		conv := &mockConverter{kind: "audio/mpeg"}
		req := &models.ContentRequest{
			ContentType:  models.BlockTypeAudio,
			AudioFile:    &models.UploadFile{Name: "talk.mp3", Data: []byte("x")},
			Description:  "<p>Listen</p>",
			AudioCreator: "NPR",
		}

		result, err := newIntake(conv).Submit(context.Background(), req, nil)
		require.NoError(t, err)

		a := result.(*models.AudioContent)
		assert.Equal(t, "data:audio/mpeg;base64,talk.mp3", a.Src)
		assert.Equal(t, "<p>Listen</p>", a.Description)
		assert.Equal(t, "NPR", a.Creator)
	})

	t.Run("no file is valid", func(t *testing.T) {
		result, err := newIntake(nil).Submit(context.Background(), &models.ContentRequest{ContentType: models.BlockTypeAudio}, nil)
		require.NoError(t, err)
		assert.Empty(t, result.(*models.AudioContent).Src)
	})

	t.Run("edit keeps src", func(t *testing.T) {
		existing := &models.AudioContent{Src: "data:audio/mpeg;base64,AA=="}
		result, err := newIntake(nil).Submit(context.Background(), &models.ContentRequest{ContentType: models.BlockTypeAudio, AudioTitle: "T"}, existing)
		require.NoError(t, err)
		assert.Equal(t, existing.Src, result.(*models.AudioContent).Src)
		assert.Equal(t, "T", result.(*models.AudioContent).Title)
	})
}

func TestSubmit_Cards(t *testing.T) {
	t.Run("empty items dropped", func(t *testing.T) {
		req := &models.ContentRequest{ContentType: models.BlockTypeCards, Cards: []models.CardInput{
			{Title: "", Content: ""},
			{Title: "A", Content: ""},
		}}

		result, err := newIntake(nil).Submit(context.Background(), req, nil)
		require.NoError(t, err)

		c := result.(*models.CardsContent)
		require.Len(t, c.Items, 1)
		assert.Equal(t, "A", c.Items[0].Title)
		assert.Equal(t, "2x1", c.Layout)
		assert.Equal(t, "info", c.Style)
	})

	t.Run("rich html preserved", func(t *testing.T) {
		req := &models.ContentRequest{ContentType: models.BlockTypeCards, CardLayout: "2x2", CardStyle: "warning", Cards: []models.CardInput{
			{Title: "T", Content: "<ul><li>- not a heuristic</li></ul>"},
		}}

		result, err := newIntake(nil).Submit(context.Background(), req, nil)
		require.NoError(t, err)
		c := result.(*models.CardsContent)
		assert.Equal(t, "<ul><li>- not a heuristic</li></ul>", c.Items[0].Content)
		assert.Equal(t, "2x2", c.Layout)
		assert.Equal(t, "warning", c.Style)
	})

	t.Run("plain text converted", func(t *testing.T) {
		req := &models.ContentRequest{ContentType: models.BlockTypeCards, Cards: []models.CardInput{
			{Title: "T", Content: "Intro\n\n• one\n• two", PlainText: true},
		}}

		result, err := newIntake(nil).Submit(context.Background(), req, nil)
		require.NoError(t, err)
		assert.Equal(t, "<p>Intro</p><ul><li>one</li><li>two</li></ul>", result.(*models.CardsContent).Items[0].Content)
	})

	t.Run("more than four rejected", func(t *testing.T) {
		req := &models.ContentRequest{ContentType: models.BlockTypeCards, Cards: []models.CardInput{
			{Title: "1"}, {Title: "2"}, {Title: "3"}, {Title: "4"}, {Title: "5"},
		}}
		_, err := newIntake(nil).Submit(context.Background(), req, nil)
		assertValidation(t, err, MsgTooManyCards)
	})

	t.Run("all empty rejected", func(t *testing.T) {
		req := &models.ContentRequest{ContentType: models.BlockTypeCards, Cards: []models.CardInput{{}}}
		_, err := newIntake(nil).Submit(context.Background(), req, nil)
		assertValidation(t, err, MsgNoCards)
	})
}

func TestLegacyTextToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"single paragraph", "Hello", "<p>Hello</p>"},
		{"two paragraphs", "One\n\nTwo", "<p>One</p><p>Two</p>"},
		{"line break inside paragraph", "One\nTwo", "<p>One<br>Two</p>"},
		{"dash list", "- a\n- b", "<ul><li>a</li><li>b</li></ul>"},
		{"numbered list", "1. a\n2. b", "<ul><li>a</li><li>b</li></ul>"},
		{"paragraph then bullets", "Steps:\n• mix\n• bake", "<p>Steps:</p><ul><li>mix</li><li>bake</li></ul>"},
		{"escapes markup", "<b>x</b>", "<p>&lt;b&gt;x&lt;/b&gt;</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LegacyTextToHTML(tt.input))
		})
	}
}
