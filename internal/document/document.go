// Package document holds the state transitions of a lesson: adding, editing,
// moving and removing blocks and sections. Every operation takes a value and
// returns the next value; the input is never modified and ids are never
// reassigned.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/lessonbuilder/backend/internal/catalog"
	"github.com/lessonbuilder/backend/internal/models"
)

var (
	ErrSectionNotFound  = errors.New("section not found")
	ErrBlockNotFound    = errors.New("block not found")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrTypeChange       = errors.New("block type cannot change")
	ErrProtectedSection = errors.New("section is protected")
	ErrInvalidPatch     = errors.New("invalid patch")
)

// DefaultSectionTitle is used for sections created without a title
const DefaultSectionTitle = "New Section"

// Direction of a one-step move
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection validates a move direction
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q", s)
}

// Anchor says where a new block goes: at the end of the section or right
// after an existing block.
type Anchor struct {
	after string
}

// AtEnd appends
func AtEnd() Anchor { return Anchor{} }

// After inserts right after the given block. An empty id appends.
func After(blockID string) Anchor { return Anchor{after: blockID} }

// BlockID returns the anchor block id, if any
func (a Anchor) BlockID() (string, bool) {
	return a.after, a.after != ""
}

// NewBlockID generates a block id
func NewBlockID() string {
	return uuid.NewString()
}

// NewSectionID generates an id for a user-created section
func NewSectionID() string {
	return "section-" + uuid.NewString()
}

// NewBlock wraps a payload into a block with a fresh id
func NewBlock(c models.Content) models.Block {
	return models.Block{ID: NewBlockID(), Content: c}
}

// NewDocument returns a lesson seeded with the well-known sections
func NewDocument(week, date string) models.Document {
	return models.Document{
		Week:     week,
		Date:     date,
		Sections: catalog.Default().DefaultSections(),
	}
}

// NewSection creates an empty user section with a generated id
func NewSection(title string, t models.SectionType) models.Section {
	if title == "" {
		title = DefaultSectionTitle
	}
	if t == "" {
		t = models.SectionTypeContent
	}
	return models.Section{ID: NewSectionID(), Title: title, Type: t, Blocks: []models.Block{}}
}

// AddBlock inserts a block after the anchor, or appends when the anchor is
// missing from the section. A block without an id gets a fresh one.
func AddBlock(sec models.Section, b models.Block, at Anchor) (models.Section, error) {
	if b.Content == nil {
		return sec, fmt.Errorf("block has no content")
	}
	if b.ID == "" {
		b.ID = NewBlockID()
	}
	if sec.IndexOf(b.ID) >= 0 {
		return sec, fmt.Errorf("block %s: %w", b.ID, ErrDuplicateID)
	}

	blocks := slices.Clone(sec.Blocks)
	pos := len(blocks)
	if id, ok := at.BlockID(); ok {
		if i := sec.IndexOf(id); i >= 0 {
			pos = i + 1
		}
	}
	sec.Blocks = slices.Insert(blocks, pos, b)
	return sec, nil
}

// Patch is a partial payload keyed by JSON field name
type Patch map[string]any

// UpdateBlock shallow-merges patch onto the payload of a block. The id, the
// type and the position are preserved.
func UpdateBlock(sec models.Section, blockID string, patch Patch) (models.Section, error) {
	i := sec.IndexOf(blockID)
	if i < 0 {
		return sec, fmt.Errorf("block %s: %w", blockID, ErrBlockNotFound)
	}
	current := sec.Blocks[i]

	raw, err := json.Marshal(current)
	if err != nil {
		return sec, fmt.Errorf("failed to encode block: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return sec, fmt.Errorf("failed to decode block: %w", err)
	}
	for k, v := range patch {
		if k == "id" || k == "type" {
			continue
		}
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return sec, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	var next models.Block
	if err := json.Unmarshal(merged, &next); err != nil {
		return sec, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}
	next.ID = current.ID

	blocks := slices.Clone(sec.Blocks)
	blocks[i] = next
	sec.Blocks = blocks
	return sec, nil
}

// ReplaceBlock swaps the payload of a block for a new one of the same kind
func ReplaceBlock(sec models.Section, blockID string, c models.Content) (models.Section, error) {
	i := sec.IndexOf(blockID)
	if i < 0 {
		return sec, fmt.Errorf("block %s: %w", blockID, ErrBlockNotFound)
	}
	if have, want := sec.Blocks[i].Type(), c.Kind(); have != want {
		return sec, fmt.Errorf("%s to %s: %w", have, want, ErrTypeChange)
	}

	blocks := slices.Clone(sec.Blocks)
	blocks[i] = models.Block{ID: blockID, Content: c}
	sec.Blocks = blocks
	return sec, nil
}

// DeleteBlock removes a block
func DeleteBlock(sec models.Section, blockID string) (models.Section, error) {
	i := sec.IndexOf(blockID)
	if i < 0 {
		return sec, fmt.Errorf("block %s: %w", blockID, ErrBlockNotFound)
	}
	sec.Blocks = slices.Delete(slices.Clone(sec.Blocks), i, i+1)
	return sec, nil
}

// MoveBlock swaps a block with its neighbour. Moving past either end is a no-op.
func MoveBlock(sec models.Section, blockID string, dir Direction) (models.Section, error) {
	i := sec.IndexOf(blockID)
	if i < 0 {
		return sec, fmt.Errorf("block %s: %w", blockID, ErrBlockNotFound)
	}

	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(sec.Blocks) {
		return sec, nil
	}

	blocks := slices.Clone(sec.Blocks)
	blocks[i], blocks[j] = blocks[j], blocks[i]
	sec.Blocks = blocks
	return sec, nil
}

// ReorderBlock moves a block to targetIndex. An unknown id or an unchanged
// position leaves the section as is; the target is clamped to the list.
func ReorderBlock(sec models.Section, blockID string, targetIndex int) models.Section {
	from := sec.IndexOf(blockID)
	if from < 0 {
		return sec
	}
	targetIndex = max(0, min(targetIndex, len(sec.Blocks)-1))
	if from == targetIndex {
		return sec
	}

	b := sec.Blocks[from]
	blocks := slices.Delete(slices.Clone(sec.Blocks), from, from+1)
	sec.Blocks = slices.Insert(blocks, targetIndex, b)
	return sec
}

// FindSection returns a copy of a section
func FindSection(doc models.Document, sectionID string) (models.Section, bool) {
	s, ok := doc.Section(sectionID)
	if !ok {
		return models.Section{}, false
	}
	return *s, true
}

// UpdateSection applies fn to one section and returns the next document
func UpdateSection(doc models.Document, sectionID string, fn func(models.Section) (models.Section, error)) (models.Document, error) {
	i := doc.SectionIndex(sectionID)
	if i < 0 {
		return doc, fmt.Errorf("section %s: %w", sectionID, ErrSectionNotFound)
	}
	next, err := fn(doc.Sections[i])
	if err != nil {
		return doc, err
	}

	sections := slices.Clone(doc.Sections)
	sections[i] = next
	doc.Sections = sections
	return doc, nil
}

// AddSection inserts a section right before resources, or appends when the
// document has no resources section.
func AddSection(doc models.Document, sec models.Section) (models.Document, error) {
	if sec.ID == "" {
		sec.ID = NewSectionID()
	}
	if doc.SectionIndex(sec.ID) >= 0 {
		return doc, fmt.Errorf("section %s: %w", sec.ID, ErrDuplicateID)
	}
	if sec.Type == "" {
		sec.Type = models.SectionTypeContent
	}
	if sec.Blocks == nil {
		sec.Blocks = []models.Block{}
	}

	sections := slices.Clone(doc.Sections)
	pos := len(sections)
	if i := doc.SectionIndex(models.SectionResources); i >= 0 {
		pos = i
	}
	doc.Sections = slices.Insert(sections, pos, sec)
	return doc, nil
}

// DeleteSection removes a section. It does not check CanDeleteSection.
func DeleteSection(doc models.Document, sectionID string) (models.Document, error) {
	i := doc.SectionIndex(sectionID)
	if i < 0 {
		return doc, fmt.Errorf("section %s: %w", sectionID, ErrSectionNotFound)
	}
	doc.Sections = slices.Delete(slices.Clone(doc.Sections), i, i+1)
	return doc, nil
}

// CanDeleteSection reports whether the editor may delete a section
func CanDeleteSection(sectionID string) bool {
	return catalog.Default().CanDelete(sectionID)
}

// RenameSection changes a section title
func RenameSection(doc models.Document, sectionID, title string) (models.Document, error) {
	if title == "" {
		return doc, fmt.Errorf("section title is required")
	}
	return UpdateSection(doc, sectionID, func(s models.Section) (models.Section, error) {
		s.Title = title
		return s, nil
	})
}

// Validate checks that section ids are unique in the document and block ids
// are unique in every section.
func Validate(doc models.Document) error {
	sections := make(map[string]bool, len(doc.Sections))
	for _, s := range doc.Sections {
		if sections[s.ID] {
			return fmt.Errorf("section %s: %w", s.ID, ErrDuplicateID)
		}
		sections[s.ID] = true

		blocks := make(map[string]bool, len(s.Blocks))
		for _, b := range s.Blocks {
			if b.ID == "" || blocks[b.ID] {
				return fmt.Errorf("block %q in section %s: %w", b.ID, s.ID, ErrDuplicateID)
			}
			blocks[b.ID] = true
		}
	}
	return nil
}
