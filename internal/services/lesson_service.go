package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lessonbuilder/backend/internal/document"
	"github.com/lessonbuilder/backend/internal/export"
	"github.com/lessonbuilder/backend/internal/intake"
	"github.com/lessonbuilder/backend/internal/models"
	"github.com/lessonbuilder/backend/internal/pdf"
	"github.com/lessonbuilder/backend/internal/render"
	"github.com/lessonbuilder/backend/internal/repositories"
	"github.com/lessonbuilder/backend/internal/richtext"
	"go.uber.org/zap"
)

// ErrNoAutosave is returned when the current lesson has no autosave to recover
var ErrNoAutosave = errors.New("no autosave available")

// AutosaveRepository is the interface that wraps methods for the autosave slot store
type AutosaveRepository interface {
	// Method Get retrieves the slot stored under "key".
	//
	// If no slot exists, repositories.ErrSlotNotFound is returned together with "nil" value.
	Get(ctx context.Context, key string) (*models.AutosaveSlot, error)
	// Method Put stores "data" under "key", replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error
	// Method Delete removes the slot stored under "key". Deleting a missing slot is not an error.
	Delete(ctx context.Context, key string) error
}

// ContentIntake turns submitted forms into block payloads
type ContentIntake interface {
	// Method Submit validates "req" and builds the payload of a block.
	//
	// "existing" is the payload of the block being edited, or "nil" for a new block.
	// Rejected forms return an *intake.ValidationError.
	Submit(ctx context.Context, req *models.ContentRequest, existing models.Content) (models.Content, error)
}

// Exporter renders the HTML and Markdown artifacts of a document
type Exporter interface {
	Static(doc models.Document) (string, error)
	Locked(doc models.Document) (string, error)
	Markdown(doc models.Document) (string, error)
}

// ModalTarget says what the content intake modal is editing: an existing
// block, or a new block placed after InsertAfter (end of section when empty)
type ModalTarget struct {
	SectionID   string `json:"sectionId"`
	BlockID     string `json:"blockId,omitempty"`
	InsertAfter string `json:"insertAfter,omitempty"`
}

// State is a snapshot of the editor
type State struct {
	Document     models.Document    `json:"document"`
	EditMode     bool               `json:"editMode"`
	OpenSections []string           `json:"openSections"`
	Drag         document.DragState `json:"drag"`
	ModalTarget  *ModalTarget       `json:"modalTarget,omitempty"`
	Dirty        bool               `json:"dirty"`
}

// AutosaveInfo describes the autosave slot of the current lesson
type AutosaveInfo struct {
	Key         string    `json:"key"`
	SavedAt     time.Time `json:"savedAt"`
	CourseTopic string    `json:"courseTopic"`
}

// Export is a rendered artifact ready for download
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

const (
	msgSectionTitle = "Please enter a section title."
	msgSectionType  = "Section type must be content or boppps."
	msgDirection    = "Direction must be up or down."
)

type lessonService struct {
	mu sync.Mutex

	doc         models.Document
	editMode    bool
	open        map[string]bool
	drag        document.DragState
	modal       *ModalTarget
	version     uint64
	autosavedAt uint64

	intake   ContentIntake
	editor   richtext.Editor
	renderer *render.Renderer
	exporter Exporter
	printer  pdf.Printer
	repo     AutosaveRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewLessonService creates the controller of one lesson. The first section starts open.
func NewLessonService(
	doc models.Document,
	contentIntake ContentIntake,
	editor richtext.Editor,
	exporter Exporter,
	printer pdf.Printer,
	repo AutosaveRepository,
	logger *zap.Logger,
) *lessonService {
	s := &lessonService{
		intake:   contentIntake,
		editor:   editor,
		renderer: render.New(editor),
		exporter: exporter,
		printer:  printer,
		repo:     repo,
		logger:   logger,
		now:      time.Now,
	}
	s.reset(doc)
	return s
}

// reset replaces the document and clears the transient editor state
func (s *lessonService) reset(doc models.Document) {
	s.doc = doc
	s.open = map[string]bool{}
	if len(doc.Sections) > 0 {
		s.open[doc.Sections[0].ID] = true
	}
	s.drag = document.DragState{}
	s.modal = nil
}

// touch records a mutation
func (s *lessonService) touch() {
	s.version++
}

func (s *lessonService) snapshot() State {
	st := State{
		Document:     s.doc.Clone(),
		EditMode:     s.editMode,
		OpenSections: make([]string, 0, len(s.open)),
		Drag:         s.drag,
		Dirty:        s.version != s.autosavedAt,
	}
	for _, sec := range s.doc.Sections {
		if s.open[sec.ID] {
			st.OpenSections = append(st.OpenSections, sec.ID)
		}
	}
	if s.modal != nil {
		m := *s.modal
		st.ModalTarget = &m
	}
	return st
}

// Snapshot returns a copy of the editor state
func (s *lessonService) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// SetEditMode switches between edit and preview mode.
// Leaving edit mode closes the modal and cancels any drag.
func (s *lessonService) SetEditMode(on bool) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editMode = on
	if !on {
		s.modal = nil
		s.drag = document.DragState{}
	}
	return s.snapshot()
}

// ToggleSection opens or closes a section and returns whether it is now open
func (s *lessonService) ToggleSection(sectionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.SectionIndex(sectionID) < 0 {
		return false, fmt.Errorf("section %s: %w", sectionID, document.ErrSectionNotFound)
	}
	s.open[sectionID] = !s.open[sectionID]
	return s.open[sectionID], nil
}

// UpdateHeader applies a partial header update
func (s *lessonService) UpdateHeader(update *models.HeaderUpdate) models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.IsEmpty() {
		return s.doc.Clone()
	}
	doc := s.doc.Clone()
	update.Apply(&doc)
	s.doc = doc
	s.touch()
	return s.doc.Clone()
}

// AddSection inserts a user section before resources and opens it
func (s *lessonService) AddSection(req *models.CreateSectionRequest) (models.Section, error) {
	switch req.Type {
	case "", models.SectionTypeContent, models.SectionTypeBOPPPS:
	default:
		return models.Section{}, &intake.ValidationError{Field: "type", Message: msgSectionType}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sec := document.NewSection(strings.TrimSpace(req.Title), req.Type)
	doc, err := document.AddSection(s.doc, sec)
	if err != nil {
		return models.Section{}, err
	}
	s.doc = doc
	s.open[sec.ID] = true
	s.touch()
	return sec.Clone(), nil
}

// RenameSection changes the editor title of a section
func (s *lessonService) RenameSection(sectionID, title string) (models.Section, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Section{}, &intake.ValidationError{Field: "title", Message: msgSectionTitle}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := document.RenameSection(s.doc, sectionID, title)
	if err != nil {
		return models.Section{}, err
	}
	s.doc = doc
	s.touch()
	sec, _ := document.FindSection(doc, sectionID)
	return sec.Clone(), nil
}

// DeleteSection removes a section. Overview and resources cannot be deleted.
func (s *lessonService) DeleteSection(sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.SectionIndex(sectionID) < 0 {
		return fmt.Errorf("section %s: %w", sectionID, document.ErrSectionNotFound)
	}
	if !document.CanDeleteSection(sectionID) {
		return fmt.Errorf("section %s: %w", sectionID, document.ErrProtectedSection)
	}

	doc, err := document.DeleteSection(s.doc, sectionID)
	if err != nil {
		return err
	}
	s.doc = doc
	delete(s.open, sectionID)
	if s.modal != nil && s.modal.SectionID == sectionID {
		s.modal = nil
	}
	s.touch()
	return nil
}

// OpenModal targets the intake modal at a block, or at a new block in a section.
// The block being edited, if any, is returned for prefilling the form.
func (s *lessonService) OpenModal(target ModalTarget) (*models.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := document.FindSection(s.doc, target.SectionID)
	if !ok {
		return nil, fmt.Errorf("section %s: %w", target.SectionID, document.ErrSectionNotFound)
	}

	var editing *models.Block
	if target.BlockID != "" {
		b, ok := sec.Block(target.BlockID)
		if !ok {
			return nil, fmt.Errorf("block %s: %w", target.BlockID, document.ErrBlockNotFound)
		}
		b = b.Clone()
		editing = &b
		target.InsertAfter = ""
	}

	s.modal = &target
	return editing, nil
}

// CloseModal dismisses the intake modal without changes
func (s *lessonService) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = nil
}

// SubmitContent runs the intake form and stores the result. With a block id
// the block is replaced in place; otherwise a new block is inserted after
// req.InsertAfter, or appended. File conversions run outside the lock.
func (s *lessonService) SubmitContent(ctx context.Context, sectionID, blockID string, req *models.ContentRequest) (models.Block, error) {
	var existing models.Content

	s.mu.Lock()
	sec, ok := document.FindSection(s.doc, sectionID)
	if !ok {
		s.mu.Unlock()
		return models.Block{}, fmt.Errorf("section %s: %w", sectionID, document.ErrSectionNotFound)
	}
	if blockID != "" {
		b, ok := sec.Block(blockID)
		if !ok {
			s.mu.Unlock()
			return models.Block{}, fmt.Errorf("block %s: %w", blockID, document.ErrBlockNotFound)
		}
		existing = models.CloneContent(b.Content)
	}
	s.mu.Unlock()

	content, err := s.intake.Submit(ctx, req, existing)
	if err != nil {
		if !intake.IsValidationError(err) {
			s.logger.Error("failed to read submitted content",
				zap.String("section_id", sectionID),
				zap.Error(err),
			)
		}
		return models.Block{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	block := models.Block{ID: blockID, Content: content}
	doc, err := document.UpdateSection(s.doc, sectionID, func(sec models.Section) (models.Section, error) {
		if blockID != "" {
			return document.ReplaceBlock(sec, blockID, content)
		}
		block = document.NewBlock(content)
		return document.AddBlock(sec, block, document.After(req.InsertAfter))
	})
	if err != nil {
		return models.Block{}, err
	}

	s.doc = doc
	s.open[sectionID] = true
	s.modal = nil
	s.touch()
	return block.Clone(), nil
}

// PatchBlock merges a partial payload into a block. A patched "content"
// field goes through the rich-text change callback.
func (s *lessonService) PatchBlock(sectionID, blockID string, patch document.Patch) (models.Block, error) {
	if v, ok := patch["content"].(string); ok {
		clean, err := s.editor.Changed(v)
		if err != nil {
			return models.Block{}, fmt.Errorf("failed to read block content: %w", err)
		}
		patch = maps.Clone(patch)
		patch["content"] = clean
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := document.UpdateSection(s.doc, sectionID, func(sec models.Section) (models.Section, error) {
		return document.UpdateBlock(sec, blockID, patch)
	})
	if err != nil {
		return models.Block{}, err
	}
	s.doc = doc
	s.touch()

	sec, _ := document.FindSection(doc, sectionID)
	b, _ := sec.Block(blockID)
	return b.Clone(), nil
}

// DeleteBlock removes a block
func (s *lessonService) DeleteBlock(sectionID, blockID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := document.UpdateSection(s.doc, sectionID, func(sec models.Section) (models.Section, error) {
		return document.DeleteBlock(sec, blockID)
	})
	if err != nil {
		return err
	}
	s.doc = doc
	if s.drag.BlockID == blockID {
		s.drag = document.DragState{}
	}
	if s.modal != nil && s.modal.BlockID == blockID {
		s.modal = nil
	}
	s.touch()
	return nil
}

// MoveBlock moves a block one step up or down
func (s *lessonService) MoveBlock(sectionID, blockID, direction string) (models.Section, error) {
	dir, err := document.ParseDirection(direction)
	if err != nil {
		return models.Section{}, &intake.ValidationError{Field: "direction", Message: msgDirection}
	}

	return s.updateSection(sectionID, func(sec models.Section) (models.Section, error) {
		return document.MoveBlock(sec, blockID, dir)
	})
}

// StartDrag records the block being dragged
func (s *lessonService) StartDrag(sectionID, blockID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := document.FindSection(s.doc, sectionID)
	if !ok {
		return fmt.Errorf("section %s: %w", sectionID, document.ErrSectionNotFound)
	}
	if sec.IndexOf(blockID) < 0 {
		return fmt.Errorf("block %s: %w", blockID, document.ErrBlockNotFound)
	}
	s.drag = s.drag.Start(blockID)
	return nil
}

// Drop completes a drag at targetIndex. A drop without a drag, or onto the
// block's own position, changes nothing and reports false.
func (s *lessonService) Drop(sectionID string, targetIndex int) (models.Section, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.doc.SectionIndex(sectionID)
	if i < 0 {
		return models.Section{}, false, fmt.Errorf("section %s: %w", sectionID, document.ErrSectionNotFound)
	}

	drag, next, moved := s.drag.Drop(s.doc.Sections[i], targetIndex)
	s.drag = drag
	if !moved {
		return next.Clone(), false, nil
	}

	doc, err := document.UpdateSection(s.doc, sectionID, func(models.Section) (models.Section, error) {
		return next, nil
	})
	if err != nil {
		return models.Section{}, false, err
	}
	s.doc = doc
	s.touch()
	return next.Clone(), true, nil
}

// ReorderBlock moves a block to targetIndex in one call
func (s *lessonService) ReorderBlock(sectionID, blockID string, targetIndex int) (models.Section, error) {
	return s.updateSection(sectionID, func(sec models.Section) (models.Section, error) {
		if sec.IndexOf(blockID) < 0 {
			return sec, fmt.Errorf("block %s: %w", blockID, document.ErrBlockNotFound)
		}
		return document.ReorderBlock(sec, blockID, targetIndex), nil
	})
}

// updateSection applies fn and records a mutation when the section changed
func (s *lessonService) updateSection(sectionID string, fn func(models.Section) (models.Section, error)) (models.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before, ok := document.FindSection(s.doc, sectionID)
	if !ok {
		return models.Section{}, fmt.Errorf("section %s: %w", sectionID, document.ErrSectionNotFound)
	}
	doc, err := document.UpdateSection(s.doc, sectionID, fn)
	if err != nil {
		return models.Section{}, err
	}

	after, _ := document.FindSection(doc, sectionID)
	if !slices.EqualFunc(before.Blocks, after.Blocks, func(a, b models.Block) bool { return a.ID == b.ID }) {
		s.doc = doc
		s.touch()
	}
	return after.Clone(), nil
}

// RenderSection returns the live HTML fragment of a section in the current mode
func (s *lessonService) RenderSection(sectionID string) (string, error) {
	s.mu.Lock()
	sec, ok := document.FindSection(s.doc, sectionID)
	mode := render.ModeRead
	if s.editMode {
		mode = render.ModeEdit
	}
	open := s.open[sectionID]
	s.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("section %s: %w", sectionID, document.ErrSectionNotFound)
	}
	return s.renderer.LiveSection(sec, mode, open).HTML(), nil
}

func (s *lessonService) current() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// ExportStatic renders the interactive standalone page
func (s *lessonService) ExportStatic() (*Export, error) {
	doc := s.current()
	out, err := s.exporter.Static(doc)
	if err != nil {
		s.logger.Error("failed to export static page", zap.Error(err))
		return nil, err
	}
	return &Export{Filename: export.Filename(doc, "html"), ContentType: "text/html; charset=utf-8", Data: []byte(out)}, nil
}

// ExportLocked renders the print-oriented page
func (s *lessonService) ExportLocked() (*Export, error) {
	doc := s.current()
	out, err := s.exporter.Locked(doc)
	if err != nil {
		s.logger.Error("failed to export locked page", zap.Error(err))
		return nil, err
	}
	return &Export{Filename: export.Filename(doc, "html"), ContentType: "text/html; charset=utf-8", Data: []byte(out)}, nil
}

// ExportMarkdown renders the Markdown version of the lesson
func (s *lessonService) ExportMarkdown() (*Export, error) {
	doc := s.current()
	out, err := s.exporter.Markdown(doc)
	if err != nil {
		s.logger.Error("failed to export markdown", zap.Error(err))
		return nil, err
	}
	return &Export{Filename: export.Filename(doc, "md"), ContentType: "text/markdown; charset=utf-8", Data: []byte(out)}, nil
}

// ExportPDF prints the locked page. When printing is disabled the locked
// HTML is returned together with pdf.ErrDisabled so callers can fall back to
// browser printing.
func (s *lessonService) ExportPDF(ctx context.Context) (*Export, error) {
	locked, err := s.ExportLocked()
	if err != nil {
		return nil, err
	}

	data, err := s.printer.Print(ctx, string(locked.Data))
	if errors.Is(err, pdf.ErrDisabled) {
		return locked, err
	}
	if err != nil {
		s.logger.Error("failed to print pdf", zap.Error(err))
		return nil, err
	}

	doc := s.current()
	return &Export{Filename: export.Filename(doc, "pdf"), ContentType: "application/pdf", Data: data}, nil
}

// SaveJSON produces the save file and clears the autosave slot
func (s *lessonService) SaveJSON(ctx context.Context) (*Export, error) {
	s.mu.Lock()
	doc := s.doc.Clone()
	version := s.version
	s.mu.Unlock()

	data, err := export.MarshalSave(doc, s.now())
	if err != nil {
		s.logger.Error("failed to build save file", zap.Error(err))
		return nil, err
	}

	key := repositories.SlotKey(doc.Week, doc.Date)
	if err := s.repo.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to clear autosave", zap.String("key", key), zap.Error(err))
	}

	s.mu.Lock()
	if version > s.autosavedAt {
		s.autosavedAt = version
	}
	s.mu.Unlock()

	return &Export{Filename: export.Filename(doc, "json"), ContentType: "application/json", Data: data}, nil
}

// LoadJSON replaces the document with a save file. Either the whole file
// loads or the current document is kept.
func (s *lessonService) LoadJSON(data []byte) (models.Document, error) {
	doc, err := export.Load(data)
	if err != nil {
		s.logger.Warn("rejected save file", zap.Error(err))
		return models.Document{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset(doc)
	s.touch()
	s.autosavedAt = s.version
	return s.doc.Clone(), nil
}

// CheckAutosave reports whether an autosave exists for the current lesson
func (s *lessonService) CheckAutosave(ctx context.Context) (*AutosaveInfo, error) {
	slot, err := s.slot(ctx)
	if err != nil {
		return nil, err
	}

	var head struct {
		CourseTopic string `json:"courseTopic"`
	}
	_ = json.Unmarshal(slot.Data, &head)

	return &AutosaveInfo{Key: slot.Key, SavedAt: slot.UpdatedAt, CourseTopic: head.CourseTopic}, nil
}

// RecoverAutosave replaces the document with the autosaved one
func (s *lessonService) RecoverAutosave(ctx context.Context) (models.Document, error) {
	slot, err := s.slot(ctx)
	if err != nil {
		return models.Document{}, err
	}

	doc, err := export.Load(slot.Data)
	if err != nil {
		s.logger.Error("autosave slot is corrupt", zap.String("key", slot.Key), zap.Error(err))
		return models.Document{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset(doc)
	s.touch()
	s.autosavedAt = s.version
	return s.doc.Clone(), nil
}

// DiscardAutosave deletes the autosave of the current lesson
func (s *lessonService) DiscardAutosave(ctx context.Context) error {
	doc := s.current()
	if err := s.repo.Delete(ctx, repositories.SlotKey(doc.Week, doc.Date)); err != nil {
		return err
	}
	return nil
}

func (s *lessonService) slot(ctx context.Context) (*models.AutosaveSlot, error) {
	doc := s.current()
	slot, err := s.repo.Get(ctx, repositories.SlotKey(doc.Week, doc.Date))
	if errors.Is(err, repositories.ErrSlotNotFound) {
		return nil, ErrNoAutosave
	}
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// Autosave writes the document to its autosave slot when it changed since
// the last save. It returns whether anything was written.
func (s *lessonService) Autosave(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.version == s.autosavedAt {
		s.mu.Unlock()
		return false, nil
	}
	doc := s.doc.Clone()
	version := s.version
	s.mu.Unlock()

	f := export.Save(doc, s.now())
	f.AutoSaved = true
	data, err := json.Marshal(f)
	if err != nil {
		return false, fmt.Errorf("failed to encode autosave: %w", err)
	}

	key := repositories.SlotKey(doc.Week, doc.Date)
	if err := s.repo.Put(ctx, key, data); err != nil {
		return false, err
	}

	s.mu.Lock()
	if version > s.autosavedAt {
		s.autosavedAt = version
	}
	s.mu.Unlock()

	s.logger.Debug("autosaved lesson", zap.String("key", key), zap.Int("bytes", len(data)))
	return true, nil
}
