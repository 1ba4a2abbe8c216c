package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVideoCitation(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		author   string
		date     string
		source   string
		url      string
		expected string
	}{
		{
			name:     "all fields empty",
			expected: "",
		},
		{
			name:     "full citation",
			title:    "Intro to Cells",
			author:   "Jane Doe",
			date:     "2021-09-14",
			source:   "YouTube",
			url:      "https://youtu.be/abc",
			expected: `<strong>Jane Doe.</strong> (2021). <em>Intro to Cells</em> [Video]. YouTube. <a href="https://youtu.be/abc" target="_blank" rel="noopener noreferrer">https://youtu.be/abc</a>`,
		},
		{
			name:     "no date falls back to n.d.",
			title:    "Lecture",
			expected: "(n.d.). <em>Lecture</em> [Video].",
		},
		{
			name:     "only url",
			url:      "https://example.com/v",
			expected: `(n.d.). <a href="https://example.com/v" target="_blank" rel="noopener noreferrer">https://example.com/v</a>`,
		},
		{
			name:     "trailing period on author is not doubled",
			author:   "Smith, J.",
			date:     "2020",
			expected: "<strong>Smith, J.</strong> (2020).",
		},
		{
			name:     "non http url rendered as text",
			source:   "Archive",
			url:      "javascript:alert(1)",
			expected: "(n.d.). Archive. javascript:alert(1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatVideoCitation(tt.title, tt.author, tt.date, tt.source, tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatImageCitation(t *testing.T) {
	assert.Equal(t, "", FormatImageCitation("", "", "", ""))
	assert.Equal(t,
		"<strong>Ansel Adams.</strong> (1942). <em>The Tetons</em> [Image]. National Archives.",
		FormatImageCitation("The Tetons", "Ansel Adams", "National Archives", "1942-01-01"),
	)
	assert.Equal(t, "(n.d.). Wikimedia Commons.", FormatImageCitation("", "", "Wikimedia Commons", ""))
}

func TestFormatAudioCitation(t *testing.T) {
	assert.Equal(t, "", FormatAudioCitation("", "", "", ""))
	assert.Equal(t,
		"<strong>NPR.</strong> (2019). <em>Morning Edition</em> [Audio].",
		FormatAudioCitation("Morning Edition", "NPR", "", "2019-03-02"),
	)
}

func TestFormat_StripsUnsafeMarkup(t *testing.T) {
	result := FormatImageCitation(`<script>alert(1)</script>Title`, `<b onclick="x()">Bob</b>`, "", "")
	assert.NotContains(t, result, "<script")
	assert.NotContains(t, result, "onclick")
	assert.Contains(t, result, "<b>Bob</b>")
}

func TestYear(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2023-05-01", "2023"},
		{"2023", "2023"},
		{"2022-11", "2022"},
		{"2021-06-01T10:00:00Z", "2021"},
		{"Spring 2020", "Spring 2020"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Year(tt.input))
		})
	}
}
