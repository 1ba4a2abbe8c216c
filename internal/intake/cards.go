package intake

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lessonbuilder/backend/internal/models"
	"github.com/lessonbuilder/backend/internal/render"
)

func (i *Intake) cards(req *models.ContentRequest) (models.Content, error) {
	items := make([]models.CardItem, 0, len(req.Cards))
	for _, c := range req.Cards {
		title := strings.TrimSpace(c.Title)

		var (
			content string
			err     error
		)
		if c.PlainText {
			content = LegacyTextToHTML(c.Content)
		} else {
			content, err = i.editor.Changed(c.Content)
			if err != nil {
				return nil, fmt.Errorf("failed to read card content: %w", err)
			}
		}

		if title == "" && strings.TrimSpace(content) == "" {
			continue
		}
		items = append(items, models.CardItem{Title: title, Content: content})
	}

	err := validation.Validate(items,
		validation.Required.Error(MsgNoCards),
		validation.Length(0, MaxCards).Error(MsgTooManyCards),
	)
	if err != nil {
		return nil, &ValidationError{Field: "cards", Message: err.Error()}
	}

	return &models.CardsContent{
		Items:  items,
		Layout: render.CardLayout(req.CardLayout),
		Style:  render.CardStyle(req.CardStyle),
	}, nil
}

var bulletPattern = regexp.MustCompile(`^(?:•\s|-\s|\d+\.\s)`)

// LegacyTextToHTML converts plain-text card content from older save files.
// Blank lines separate paragraphs; runs of lines starting with "• ", "- " or
// "N. " become one list.
func LegacyTextToHTML(text string) string {
	var (
		b         strings.Builder
		paragraph []string
		list      []string
	)

	flushParagraph := func() {
		if len(paragraph) > 0 {
			b.WriteString("<p>" + strings.Join(paragraph, "<br>") + "</p>")
			paragraph = nil
		}
	}
	flushList := func() {
		if len(list) > 0 {
			b.WriteString("<ul>")
			for _, item := range list {
				b.WriteString("<li>" + item + "</li>")
			}
			b.WriteString("</ul>")
			list = nil
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flushParagraph()
			flushList()
		case bulletPattern.MatchString(line):
			flushParagraph()
			list = append(list, html.EscapeString(strings.TrimSpace(bulletPattern.ReplaceAllString(line, ""))))
		default:
			flushList()
			paragraph = append(paragraph, html.EscapeString(line))
		}
	}
	flushParagraph()
	flushList()

	return b.String()
}
