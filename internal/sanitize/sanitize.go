// Package sanitize strips dangerous markup from user-authored HTML before it is
// stored or rendered into an export.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer holds the policies used for the different kinds of user HTML.
//
// Safe for concurrent use.
type Sanitizer struct {
	content *bluemonday.Policy
	inline  *bluemonday.Policy
	embed   *bluemonday.Policy
}

var defaultSanitizer = New()

// New creates a sanitizer with the lesson content policies
func New() *Sanitizer {
	return &Sanitizer{
		content: contentPolicy(),
		inline:  inlinePolicy(),
		embed:   embedPolicy(),
	}
}

// Default returns the shared sanitizer
func Default() *Sanitizer {
	return defaultSanitizer
}

func contentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowStyling()
	p.AllowAttrs("style").Globally()
	p.AllowStyles("color", "background-color", "text-align", "font-weight", "font-style", "text-decoration").Globally()
	p.AllowElements("mark", "u", "s", "figure", "figcaption")
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	return p
}

func inlinePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "span", "br", "sub", "sup", "cite")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	return p
}

func embedPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "iframe", "p", "span")
	p.RequireParseableURLs(true)
	p.AllowURLSchemes("https")
	p.AllowAttrs("class", "style").OnElements("div", "span", "p")
	p.AllowAttrs("src").OnElements("iframe")
	p.AllowAttrs("width", "height").Matching(regexp.MustCompile(`^[0-9]+(%|px)?$`)).OnElements("iframe")
	p.AllowAttrs("frameborder", "allow", "allowfullscreen", "title", "style", "loading", "referrerpolicy").OnElements("iframe")
	return p
}

// Content sanitizes block bodies, captions and card content
func (s *Sanitizer) Content(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	return s.content.Sanitize(html)
}

// Inline sanitizes short formatted strings such as citation fields
func (s *Sanitizer) Inline(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	return strings.TrimSpace(s.inline.Sanitize(html))
}

// Embed sanitizes custom video embed markup, keeping https iframes only
func (s *Sanitizer) Embed(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	return s.embed.Sanitize(html)
}
