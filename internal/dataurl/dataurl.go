// Package dataurl turns uploaded files into embeddable data URLs.
package dataurl

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/lessonbuilder/backend/internal/models"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file is too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Converter is the file-to-data-URL capability
type Converter interface {
	// Convert encodes a file as a data URL.
	//
	// "ctx" is the context for the request.
	// "file" is the uploaded file.
	//
	// Returns the data URL or an error if the file is rejected.
	Convert(ctx context.Context, file models.UploadFile) (string, error)
}

// MimeConverter sniffs the media type from the file bytes and base64-encodes them
type MimeConverter struct {
	maxBytes int
	allowed  []string
}

// NewConverter creates a converter accepting files up to maxBytes whose media
// type starts with one of the allowed prefixes (e.g. "image/").
func NewConverter(maxBytes int, allowed ...string) *MimeConverter {
	if len(allowed) == 0 {
		allowed = []string{"image/", "audio/"}
	}
	return &MimeConverter{maxBytes: maxBytes, allowed: allowed}
}

// Convert implements Converter
func (c *MimeConverter) Convert(ctx context.Context, file models.UploadFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(file.Data) == 0 {
		return "", fmt.Errorf("%s: %w", file.Name, ErrEmptyFile)
	}
	if c.maxBytes > 0 && len(file.Data) > c.maxBytes {
		return "", fmt.Errorf("%s (%d bytes): %w", file.Name, len(file.Data), ErrFileTooLarge)
	}

	mediaType := MediaType(file.Data)
	if !c.accepts(mediaType) {
		return "", fmt.Errorf("%s is %s: %w", file.Name, mediaType, ErrUnsupportedType)
	}

	return Encode(mediaType, file.Data), nil
}

func (c *MimeConverter) accepts(mediaType string) bool {
	for _, prefix := range c.allowed {
		if strings.HasPrefix(mediaType, prefix) {
			return true
		}
	}
	return false
}

// MediaType detects the media type of data without parameters
func MediaType(data []byte) string {
	m := mimetype.Detect(data).String()
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	return strings.TrimSpace(m)
}

// Encode builds a base64 data URL
func Encode(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode splits a base64 data URL into its media type and bytes
func Decode(url string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data url")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data url")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return mediaType, []byte(payload), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid data url payload: %w", err)
	}
	return mediaType, data, nil
}

// IsMedia reports whether url is a data URL of the given kind ("image", "audio")
func IsMedia(url, kind string) bool {
	return strings.HasPrefix(url, "data:"+kind+"/")
}
