// Package video resolves pasted video links into embeddable players.
package video

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/lessonbuilder/backend/internal/models"
	"github.com/lessonbuilder/backend/internal/sanitize"
)

// Aspect ratios offered by the editor
const (
	Aspect16x9 = "16-9"
	Aspect4x3  = "4-3"
	Aspect1x1  = "1-1"
	Aspect21x9 = "21-9"

	DefaultAspect = Aspect16x9
)

// aspectPadding maps an aspect ratio to the padding-top percentage of its wrapper
var aspectPadding = map[string]string{
	Aspect16x9: "56.25%",
	Aspect4x3:  "75%",
	Aspect1x1:  "100%",
	Aspect21x9: "42.86%",
}

var (
	youtubePattern = regexp.MustCompile(`(?:youtube(?:-nocookie)?\.com/(?:watch\?(?:.*&)?v=|embed/|v/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{11})`)
	vimeoPattern   = regexp.MustCompile(`vimeo\.com/(?:.*?/)?(\d+)`)
)

// ExtractID pulls the platform video id out of a pasted link.
// For Panopto the link itself is the id. The embed platform never resolves.
// It never panics; false means the link could not be resolved.
func ExtractID(rawURL string, platform models.VideoPlatform) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	switch platform {
	case models.VideoPlatformYouTube:
		if m := youtubePattern.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	case models.VideoPlatformVimeo:
		if m := vimeoPattern.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	case models.VideoPlatformPanopto:
		if strings.Contains(rawURL, "panopto.com") {
			return rawURL, true
		}
	}
	return "", false
}

// IsValidPlatform reports whether p is a supported platform
func IsValidPlatform(p models.VideoPlatform) bool {
	switch p {
	case models.VideoPlatformYouTube, models.VideoPlatformVimeo, models.VideoPlatformPanopto, models.VideoPlatformEmbed:
		return true
	}
	return false
}

// EmbedURL returns the player URL for a resolved id
func EmbedURL(platform models.VideoPlatform, id string) string {
	switch platform {
	case models.VideoPlatformYouTube:
		return "https://www.youtube.com/embed/" + url.PathEscape(id)
	case models.VideoPlatformVimeo:
		return "https://player.vimeo.com/video/" + url.PathEscape(id)
	case models.VideoPlatformPanopto:
		return panoptoEmbedURL(id)
	}
	return id
}

// panoptoEmbedURL switches a viewer link to the embeddable player page
func panoptoEmbedURL(link string) string {
	if strings.Contains(link, "/Viewer.aspx") {
		link = strings.Replace(link, "/Viewer.aspx", "/Embed.aspx", 1)
	}
	return link
}

// NormalizeAspect returns a known aspect ratio, defaulting to 16-9
func NormalizeAspect(ratio string) string {
	if _, ok := aspectPadding[ratio]; ok {
		return ratio
	}
	return DefaultAspect
}

// AspectClass returns the wrapper class for an aspect ratio
func AspectClass(ratio string) string {
	return "aspect-" + NormalizeAspect(ratio)
}

// AspectPadding returns the padding-top percentage for an aspect ratio
func AspectPadding(ratio string) string {
	return aspectPadding[NormalizeAspect(ratio)]
}

// AspectRatios returns the supported ratios with their padding percentages
func AspectRatios() map[string]string {
	out := make(map[string]string, len(aspectPadding))
	for k, v := range aspectPadding {
		out[k] = v
	}
	return out
}

// EmbedHTML renders a ready-to-embed fragment with a deterministic aspect-ratio wrapper.
// For the embed platform idOrCode is custom markup and is sanitized.
func EmbedHTML(platform models.VideoPlatform, idOrCode, ratio string) string {
	class := "video-container " + AspectClass(ratio)

	if platform == models.VideoPlatformEmbed {
		return `<div class="` + class + ` video-embed-custom">` + sanitize.Default().Embed(idOrCode) + `</div>`
	}

	src := embedSrc(platform, strings.TrimSpace(idOrCode))
	return `<div class="` + class + `"><iframe src="` + html.EscapeString(src) +
		`" title="Embedded video" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe></div>`
}

// embedSrc returns a stored URL as is, upgrading http to https. Anything
// else is treated as a video id.
func embedSrc(platform models.VideoPlatform, idOrURL string) string {
	switch {
	case hasPrefixFold(idOrURL, "https://"):
		return idOrURL
	case hasPrefixFold(idOrURL, "http://"):
		return "https://" + idOrURL[len("http://"):]
	}
	return EmbedURL(platform, idOrURL)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
