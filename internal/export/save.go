package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lessonbuilder/backend/internal/catalog"
	"github.com/lessonbuilder/backend/internal/document"
	"github.com/lessonbuilder/backend/internal/models"
)

// ErrInvalidSaveFile is returned when a save file cannot be loaded
var ErrInvalidSaveFile = errors.New("invalid save file")

// Save reduces a document to its durable form. Block ids are stripped.
func Save(doc models.Document, now time.Time) models.SaveFile {
	f := models.SaveFile{
		Version:           models.SaveFileVersion,
		Timestamp:         now.UTC().Format(time.RFC3339),
		CourseTopic:       doc.CourseTopic,
		InstructorName:    doc.InstructorName,
		InstructorEmail:   doc.InstructorEmail,
		FooterCourseInfo:  doc.FooterCourseInfo,
		FooterInstitution: doc.FooterInstitution,
		FooterCopyright:   doc.FooterCopyright,
		Logo:              doc.Logo,
		Week:              doc.Week,
		Date:              doc.Date,
		Sections:          make(map[string][]models.Block, len(doc.Sections)),
		SectionOrder:      make([]string, 0, len(doc.Sections)),
		SectionTitles:     make(map[string]string, len(doc.Sections)),
	}

	for _, s := range doc.Sections {
		blocks := make([]models.Block, 0, len(s.Blocks))
		for _, b := range s.Blocks {
			blocks = append(blocks, models.Block{Content: models.CloneContent(b.Content)})
		}
		f.Sections[s.ID] = blocks
		f.SectionOrder = append(f.SectionOrder, s.ID)
		f.SectionTitles[s.ID] = s.Title
	}
	return f
}

// MarshalSave encodes the save file of a document
func MarshalSave(doc models.Document, now time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(Save(doc, now), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode save file: %w", err)
	}
	return data, nil
}

// Load rebuilds a document from a save file. Every block gets a fresh id.
// Either the whole file loads or an error is returned.
func Load(data []byte) (models.Document, error) {
	var f models.SaveFile
	if err := json.Unmarshal(data, &f); err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrInvalidSaveFile, err)
	}
	if f.Sections == nil {
		return models.Document{}, fmt.Errorf("%w: no sections", ErrInvalidSaveFile)
	}

	var raw struct {
		Sections json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrInvalidSaveFile, err)
	}
	keyOrder, err := objectKeys(raw.Sections)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrInvalidSaveFile, err)
	}

	doc := models.Document{
		Header: models.Header{
			CourseTopic:       f.CourseTopic,
			InstructorName:    f.InstructorName,
			InstructorEmail:   f.InstructorEmail,
			FooterCourseInfo:  f.FooterCourseInfo,
			FooterInstitution: f.FooterInstitution,
			FooterCopyright:   f.FooterCopyright,
			Logo:              f.Logo,
		},
		Week: f.Week,
		Date: f.Date,
	}

	cat := catalog.Default()
	for _, id := range sectionOrder(f.SectionOrder, keyOrder, f.Sections) {
		s := models.Section{ID: id, Title: document.DefaultSectionTitle, Type: models.SectionTypeContent}
		if e, ok := cat.Lookup(id); ok {
			s.Title = e.Title
			s.Type = e.Type
		}
		if title, ok := f.SectionTitles[id]; ok && title != "" {
			s.Title = title
		}

		s.Blocks = make([]models.Block, 0, len(f.Sections[id]))
		for _, b := range f.Sections[id] {
			b.ID = document.NewBlockID()
			s.Blocks = append(s.Blocks, b)
		}
		doc.Sections = append(doc.Sections, s)
	}

	if err := document.Validate(doc); err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrInvalidSaveFile, err)
	}
	return doc, nil
}

// sectionOrder lists the section ids of a save file: the explicit order first,
// then any remaining keys in file order
func sectionOrder(explicit, fileOrder []string, sections map[string][]models.Block) []string {
	out := make([]string, 0, len(sections))
	for _, list := range [][]string{explicit, fileOrder} {
		for _, id := range list {
			if _, ok := sections[id]; ok && !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	return out
}

// objectKeys returns the keys of a JSON object in document order
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("sections must be an object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected section key %v", tok)
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
