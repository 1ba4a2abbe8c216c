// Package citation assembles APA-like citation fragments for media blocks.
package citation

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/lessonbuilder/backend/internal/sanitize"
)

// Media tags appended after the title
const (
	TagVideo = "[Video]"
	TagImage = "[Image]"
	TagAudio = "[Audio]"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// parts holds the normalized fields of one citation
type parts struct {
	author string
	date   string
	title  string
	tag    string
	source string
	url    string
}

// FormatVideoCitation builds the citation of a video block.
// Returns an empty string when every field is empty.
func FormatVideoCitation(title, author, date, source, link string) string {
	return format(parts{author: author, date: date, title: title, tag: TagVideo, source: source, url: link})
}

// FormatImageCitation builds the citation of an image or gallery item.
// Returns an empty string when title, author, source and date are all empty.
func FormatImageCitation(title, author, source, date string) string {
	return format(parts{author: author, date: date, title: title, tag: TagImage, source: source})
}

// FormatAudioCitation builds the citation of an audio block.
// Returns an empty string when title, creator, source and date are all empty.
func FormatAudioCitation(title, creator, sourceInfo, dateInfo string) string {
	return format(parts{author: creator, date: dateInfo, title: title, tag: TagAudio, source: sourceInfo})
}

func format(p parts) string {
	s := sanitize.Default()
	author := strings.TrimSpace(s.Inline(p.author))
	title := strings.TrimSpace(s.Inline(p.title))
	source := strings.TrimSpace(s.Inline(p.source))
	date := strings.TrimSpace(p.date)
	link := strings.TrimSpace(p.url)

	if author == "" && title == "" && source == "" && date == "" && link == "" {
		return ""
	}

	var b strings.Builder
	if author != "" {
		b.WriteString("<strong>")
		b.WriteString(strings.TrimRight(author, "."))
		b.WriteString(".</strong> ")
	}

	if date != "" {
		b.WriteString("(")
		b.WriteString(html.EscapeString(Year(date)))
		b.WriteString("). ")
	} else {
		b.WriteString("(n.d.). ")
	}

	if title != "" {
		b.WriteString("<em>")
		b.WriteString(title)
		b.WriteString("</em> ")
		b.WriteString(p.tag)
		b.WriteString(". ")
	}

	if source != "" {
		b.WriteString(strings.TrimRight(source, "."))
		b.WriteString(". ")
	}

	if link != "" {
		b.WriteString(anchor(link))
	}

	return strings.TrimSpace(b.String())
}

// Year extracts the publication year from an ISO date, an RFC 3339 timestamp
// or a bare year. Anything else is returned unchanged.
func Year(date string) string {
	date = strings.TrimSpace(date)
	if yearPattern.MatchString(date) {
		return date
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("2006")
		}
	}
	return date
}

// anchor renders a link, or plain text when the URL is not http(s)
func anchor(link string) string {
	escaped := html.EscapeString(link)
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return escaped
	}
	return `<a href="` + escaped + `" target="_blank" rel="noopener noreferrer">` + escaped + `</a>`
}
