package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/lessonbuilder/backend/internal/dataurl"
	"github.com/lessonbuilder/backend/internal/document"
	"github.com/lessonbuilder/backend/internal/export"
	"github.com/lessonbuilder/backend/internal/intake"
	"github.com/lessonbuilder/backend/internal/models"
	"github.com/lessonbuilder/backend/internal/pdf"
	"github.com/lessonbuilder/backend/internal/repositories"
	"github.com/lessonbuilder/backend/internal/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRepository is an in-memory implementation of AutosaveRepository
type mockRepository struct {
	slots     map[string][]byte
	getErr    error
	putErr    error
	deleteErr error
	puts      int
	deletes   []string
}

func newMockRepository() *mockRepository {
	return &mockRepository{slots: map[string][]byte{}}
}

func (m *mockRepository) Get(ctx context.Context, key string) (*models.AutosaveSlot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.slots[key]
	if !ok {
		return nil, repositories.ErrSlotNotFound
	}
	return &models.AutosaveSlot{Key: key, Data: data, UpdatedAt: time.Date(2024, 9, 16, 9, 0, 0, 0, time.UTC)}, nil
}

func (m *mockRepository) Put(ctx context.Context, key string, data []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.slots[key] = data
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, key string) error {
	m.deletes = append(m.deletes, key)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.slots, key)
	return nil
}

// mockPrinter is a mock implementation of pdf.Printer
type mockPrinter struct {
	out []byte
	err error
	got string
}

func (m *mockPrinter) Print(ctx context.Context, html string) ([]byte, error) {
	m.got = html
	return m.out, m.err
}

const (
	testWeek = "3"
	testDate = "2024-09-16"
	testKey  = "autosave_3_2024-09-16"
)

func newTestService(t *testing.T, repo *mockRepository, printer pdf.Printer) *lessonService {
	t.Helper()
	if repo == nil {
		repo = newMockRepository()
	}
	if printer == nil {
		printer = pdf.Disabled{}
	}
	exporter, err := export.New()
	require.NoError(t, err)

	editor := richtext.NewContentEditable(nil)
	svc := NewLessonService(
		document.NewDocument(testWeek, testDate),
		intake.New(dataurl.NewConverter(1<<20), editor, "images/"),
		editor,
		exporter,
		printer,
		repo,
		zap.NewNop(),
	)
	svc.now = func() time.Time { return time.Date(2024, 9, 16, 12, 0, 0, 0, time.UTC) }
	return svc
}

func addText(t *testing.T, svc *lessonService, sectionID, html string) models.Block {
	t.Helper()
	b, err := svc.SubmitContent(context.Background(), sectionID, "", &models.ContentRequest{
		ContentType: models.BlockTypeText,
		Content:     html,
	})
	require.NoError(t, err)
	return b
}

func blockIDs(sec models.Section) []string {
	ids := make([]string, 0, len(sec.Blocks))
	for _, b := range sec.Blocks {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestNewLessonService(t *testing.T) {
	svc := newTestService(t, nil, nil)

	st := svc.Snapshot()
	assert.Equal(t, []string{models.SectionOverview}, st.OpenSections)
	assert.False(t, st.EditMode)
	assert.False(t, st.Dirty)
	assert.Nil(t, st.ModalTarget)
	assert.Len(t, st.Document.Sections, 8)
}

func TestLessonService_Snapshot_IsACopy(t *testing.T) {
	svc := newTestService(t, nil, nil)
	addText(t, svc, models.SectionOverview, "<p>one</p>")

	st := svc.Snapshot()
	st.Document.Sections[0].Blocks[0].Content.(*models.TextContent).Content = "changed"
	st.Document.Sections = nil

	again := svc.Snapshot()
	assert.Equal(t, "<p>one</p>", again.Document.Sections[0].Blocks[0].Content.(*models.TextContent).Content)
}

func TestLessonService_SetEditMode(t *testing.T) {
	svc := newTestService(t, nil, nil)

	st := svc.SetEditMode(true)
	assert.True(t, st.EditMode)

	_, err := svc.OpenModal(ModalTarget{SectionID: models.SectionSummary})
	require.NoError(t, err)
	addText(t, svc, models.SectionSummary, "<p>x</p>")
	require.NoError(t, svc.StartDrag(models.SectionSummary, svc.Snapshot().Document.Sections[6].Blocks[0].ID))
	_, err = svc.OpenModal(ModalTarget{SectionID: models.SectionSummary})
	require.NoError(t, err)

	st = svc.SetEditMode(false)
	assert.False(t, st.EditMode)
	assert.Nil(t, st.ModalTarget)
	assert.False(t, st.Drag.Active())
}

func TestLessonService_ToggleSection(t *testing.T) {
	svc := newTestService(t, nil, nil)

	open, err := svc.ToggleSection(models.SectionBridgeIn)
	require.NoError(t, err)
	assert.True(t, open)
	assert.Equal(t, []string{models.SectionOverview, models.SectionBridgeIn}, svc.Snapshot().OpenSections)

	open, err = svc.ToggleSection(models.SectionOverview)
	require.NoError(t, err)
	assert.False(t, open)

	_, err = svc.ToggleSection("nope")
	assert.ErrorIs(t, err, document.ErrSectionNotFound)
	assert.False(t, svc.Snapshot().Dirty, "toggling is not an edit")
}

func TestLessonService_UpdateHeader(t *testing.T) {
	svc := newTestService(t, nil, nil)

	doc := svc.UpdateHeader(&models.HeaderUpdate{})
	assert.Equal(t, "", doc.CourseTopic)
	assert.False(t, svc.Snapshot().Dirty)

	topic := "Cell Biology"
	doc = svc.UpdateHeader(&models.HeaderUpdate{CourseTopic: &topic})
	assert.Equal(t, topic, doc.CourseTopic)
	assert.Equal(t, testWeek, doc.Week)
	assert.True(t, svc.Snapshot().Dirty)
}

func TestLessonService_AddSection(t *testing.T) {
	tests := []struct {
		name          string
		req           models.CreateSectionRequest
		expectedTitle string
		expectedType  models.SectionType
		expectedError bool
	}{
		{"titled", models.CreateSectionRequest{Title: " Lab ", Type: models.SectionTypeBOPPPS}, "Lab", models.SectionTypeBOPPPS, false},
		{"defaults", models.CreateSectionRequest{}, "New Section", models.SectionTypeContent, false},
		{"invalid type", models.CreateSectionRequest{Type: "chapter"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, nil, nil)

			sec, err := svc.AddSection(&tt.req)
			if tt.expectedError {
				assert.True(t, intake.IsValidationError(err))
				assert.Len(t, svc.Snapshot().Document.Sections, 8)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTitle, sec.Title)
			assert.Equal(t, tt.expectedType, sec.Type)

			st := svc.Snapshot()
			require.Len(t, st.Document.Sections, 9)
			assert.Equal(t, sec.ID, st.Document.Sections[7].ID)
			assert.Equal(t, models.SectionResources, st.Document.Sections[8].ID)
			assert.Contains(t, st.OpenSections, sec.ID)
			assert.True(t, st.Dirty)
		})
	}
}

func TestLessonService_RenameSection(t *testing.T) {
	svc := newTestService(t, nil, nil)

	sec, err := svc.RenameSection(models.SectionSummary, " Wrap-up ")
	require.NoError(t, err)
	assert.Equal(t, "Wrap-up", sec.Title)

	_, err = svc.RenameSection(models.SectionSummary, "  ")
	assert.True(t, intake.IsValidationError(err))

	_, err = svc.RenameSection("missing", "x")
	assert.ErrorIs(t, err, document.ErrSectionNotFound)
}

func TestLessonService_DeleteSection(t *testing.T) {
	tests := []struct {
		name        string
		sectionID   string
		expectedErr error
	}{
		{"boppps section", models.SectionBridgeIn, nil},
		{"overview is protected", models.SectionOverview, document.ErrProtectedSection},
		{"resources is protected", models.SectionResources, document.ErrProtectedSection},
		{"missing", "missing", document.ErrSectionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, nil, nil)

			err := svc.DeleteSection(tt.sectionID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Len(t, svc.Snapshot().Document.Sections, 8)
				return
			}
			require.NoError(t, err)
			st := svc.Snapshot()
			assert.Len(t, st.Document.Sections, 7)
			assert.Equal(t, -1, st.Document.SectionIndex(tt.sectionID))
		})
	}
}

func TestLessonService_OpenModal(t *testing.T) {
	svc := newTestService(t, nil, nil)
	b := addText(t, svc, models.SectionOverview, "<p>hello</p>")

	editing, err := svc.OpenModal(ModalTarget{SectionID: models.SectionOverview, BlockID: b.ID, InsertAfter: "ignored"})
	require.NoError(t, err)
	require.NotNil(t, editing)
	assert.Equal(t, b.ID, editing.ID)
	assert.Equal(t, &ModalTarget{SectionID: models.SectionOverview, BlockID: b.ID}, svc.Snapshot().ModalTarget)

	editing, err = svc.OpenModal(ModalTarget{SectionID: models.SectionOverview, InsertAfter: b.ID})
	require.NoError(t, err)
	assert.Nil(t, editing)

	_, err = svc.OpenModal(ModalTarget{SectionID: models.SectionOverview, BlockID: "missing"})
	assert.ErrorIs(t, err, document.ErrBlockNotFound)

	_, err = svc.OpenModal(ModalTarget{SectionID: "missing"})
	assert.ErrorIs(t, err, document.ErrSectionNotFound)

	svc.CloseModal()
	assert.Nil(t, svc.Snapshot().ModalTarget)
}

func TestLessonService_SubmitContent(t *testing.T) {
	t.Run("new video block", func(t *testing.T) {
		svc := newTestService(t, nil, nil)
		_, err := svc.OpenModal(ModalTarget{SectionID: models.SectionBridgeIn})
		require.NoError(t, err)

		b, err := svc.SubmitContent(context.Background(), models.SectionBridgeIn, "", &models.ContentRequest{
			ContentType:   models.BlockTypeVideo,
			VideoPlatform: models.VideoPlatformYouTube,
			VideoURL:      "https://youtu.be/abc12345678",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, models.BlockTypeVideo, b.Type())

		st := svc.Snapshot()
		sec, _ := document.FindSection(st.Document, models.SectionBridgeIn)
		assert.Equal(t, []string{b.ID}, blockIDs(sec))
		assert.Nil(t, st.ModalTarget)
		assert.Contains(t, st.OpenSections, models.SectionBridgeIn)
		assert.True(t, st.Dirty)
	})

	t.Run("insert after anchor", func(t *testing.T) {
		svc := newTestService(t, nil, nil)
		first := addText(t, svc, models.SectionOverview, "<p>1</p>")
		last := addText(t, svc, models.SectionOverview, "<p>3</p>")

		middle, err := svc.SubmitContent(context.Background(), models.SectionOverview, "", &models.ContentRequest{
			ContentType: models.BlockTypeText,
			Content:     "<p>2</p>",
			InsertAfter: first.ID,
		})
		require.NoError(t, err)

		sec, _ := document.FindSection(svc.Snapshot().Document, models.SectionOverview)
		assert.Equal(t, []string{first.ID, middle.ID, last.ID}, blockIDs(sec))
	})

	t.Run("edit keeps id and position", func(t *testing.T) {
		svc := newTestService(t, nil, nil)
		first := addText(t, svc, models.SectionOverview, "<p>1</p>")
		second := addText(t, svc, models.SectionOverview, "<p>2</p>")

		b, err := svc.SubmitContent(context.Background(), models.SectionOverview, first.ID, &models.ContentRequest{
			Content: "<p>one</p>",
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, b.ID)

		sec, _ := document.FindSection(svc.Snapshot().Document, models.SectionOverview)
		assert.Equal(t, []string{first.ID, second.ID}, blockIDs(sec))
		assert.Equal(t, "<p>one</p>", sec.Blocks[0].Content.(*models.TextContent).Content)
	})

	t.Run("validation error leaves document unchanged", func(t *testing.T) {
		svc := newTestService(t, nil, nil)
		before := svc.Snapshot()

		_, err := svc.SubmitContent(context.Background(), models.SectionBridgeIn, "", &models.ContentRequest{
			ContentType:   models.BlockTypeVideo,
			VideoPlatform: models.VideoPlatformYouTube,
			VideoURL:      "https://example.com/nothing",
		})
		var ve *intake.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, intake.MsgVideoID, ve.Message)
		assert.Equal(t, before, svc.Snapshot())
	})

	t.Run("type change rejected", func(t *testing.T) {
		svc := newTestService(t, nil, nil)
		b := addText(t, svc, models.SectionOverview, "<p>1</p>")

		_, err := svc.SubmitContent(context.Background(), models.SectionOverview, b.ID, &models.ContentRequest{
			ContentType: models.BlockTypeCards,
			Cards:       []models.CardInput{{Title: "x"}},
		})
		assert.True(t, intake.IsValidationError(err))
	})

	t.Run("missing targets", func(t *testing.T) {
		svc := newTestService(t, nil, nil)

		_, err := svc.SubmitContent(context.Background(), "missing", "", &models.ContentRequest{ContentType: models.BlockTypeText})
		assert.ErrorIs(t, err, document.ErrSectionNotFound)

		_, err = svc.SubmitContent(context.Background(), models.SectionOverview, "missing", &models.ContentRequest{ContentType: models.BlockTypeText})
		assert.ErrorIs(t, err, document.ErrBlockNotFound)
	})
}

func TestLessonService_PatchBlock(t *testing.T) {
	svc := newTestService(t, nil, nil)
	b := addText(t, svc, models.SectionOverview, "<p>1</p>")

	patched, err := svc.PatchBlock(models.SectionOverview, b.ID, document.Patch{
		"content": `<p>safe</p><script>alert(1)</script>`,
		"type":    "cards",
	})
	require.NoError(t, err)
	assert.Equal(t, b.ID, patched.ID)
	assert.Equal(t, models.BlockTypeText, patched.Type())
	assert.Equal(t, "<p>safe</p>", patched.Content.(*models.TextContent).Content)

	_, err = svc.PatchBlock(models.SectionOverview, "missing", document.Patch{"content": "x"})
	assert.ErrorIs(t, err, document.ErrBlockNotFound)
}

func TestLessonService_PatchBlockKeepsCallerPatch(t *testing.T) {
	svc := newTestService(t, nil, nil)
	b := addText(t, svc, models.SectionOverview, "<p>1</p>")

	raw := `<p>kept</p><script>alert(1)</script>`
	patch := document.Patch{"content": raw}

	patched, err := svc.PatchBlock(models.SectionOverview, b.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "<p>kept</p>", patched.Content.(*models.TextContent).Content)
	assert.Equal(t, raw, patch["content"])
}

func TestLessonService_PatchBlockWrongFieldType(t *testing.T) {
	svc := newTestService(t, nil, nil)
	b := addText(t, svc, models.SectionOverview, "<p>1</p>")
	before := svc.Snapshot().Document

	_, err := svc.PatchBlock(models.SectionOverview, b.ID, document.Patch{"content": 5})
	assert.ErrorIs(t, err, document.ErrInvalidPatch)
	assert.Equal(t, before, svc.Snapshot().Document)
}

func TestLessonService_DeleteBlock(t *testing.T) {
	svc := newTestService(t, nil, nil)
	b := addText(t, svc, models.SectionOverview, "<p>1</p>")
	require.NoError(t, svc.StartDrag(models.SectionOverview, b.ID))

	require.NoError(t, svc.DeleteBlock(models.SectionOverview, b.ID))
	st := svc.Snapshot()
	assert.Empty(t, st.Document.Sections[0].Blocks)
	assert.False(t, st.Drag.Active())

	assert.ErrorIs(t, svc.DeleteBlock(models.SectionOverview, b.ID), document.ErrBlockNotFound)
}

func TestLessonService_MoveBlock(t *testing.T) {
	svc := newTestService(t, nil, nil)
	a := addText(t, svc, models.SectionOverview, "<p>a</p>")
	b := addText(t, svc, models.SectionOverview, "<p>b</p>")

	sec, err := svc.MoveBlock(models.SectionOverview, b.ID, "up")
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, blockIDs(sec))

	sec, err = svc.MoveBlock(models.SectionOverview, b.ID, "down")
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, blockIDs(sec))

	_, err = svc.MoveBlock(models.SectionOverview, b.ID, "sideways")
	assert.True(t, intake.IsValidationError(err))

	_, err = svc.MoveBlock(models.SectionOverview, "missing", "up")
	assert.ErrorIs(t, err, document.ErrBlockNotFound)
}

func TestLessonService_DragAndDrop(t *testing.T) {
	svc := newTestService(t, nil, nil)
	a := addText(t, svc, models.SectionOverview, "<p>a</p>")
	b := addText(t, svc, models.SectionOverview, "<p>b</p>")
	c := addText(t, svc, models.SectionOverview, "<p>c</p>")

	sec, moved, err := svc.Drop(models.SectionOverview, 0)
	require.NoError(t, err)
	assert.False(t, moved, "drop without drag")
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, blockIDs(sec))

	require.NoError(t, svc.StartDrag(models.SectionOverview, c.ID))
	assert.Equal(t, c.ID, svc.Snapshot().Drag.BlockID)

	sec, moved, err = svc.Drop(models.SectionOverview, 0)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, blockIDs(sec))
	assert.False(t, svc.Snapshot().Drag.Active())

	require.NoError(t, svc.StartDrag(models.SectionOverview, a.ID))
	_, moved, err = svc.Drop(models.SectionOverview, 1)
	require.NoError(t, err)
	assert.False(t, moved, "drop onto own position")

	assert.ErrorIs(t, svc.StartDrag(models.SectionOverview, "missing"), document.ErrBlockNotFound)
	_, _, err = svc.Drop("missing", 0)
	assert.ErrorIs(t, err, document.ErrSectionNotFound)
}

func TestLessonService_ReorderBlock(t *testing.T) {
	svc := newTestService(t, nil, nil)
	a := addText(t, svc, models.SectionOverview, "<p>a</p>")
	b := addText(t, svc, models.SectionOverview, "<p>b</p>")

	sec, err := svc.ReorderBlock(models.SectionOverview, a.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, blockIDs(sec))

	_, err = svc.ReorderBlock(models.SectionOverview, "missing", 0)
	assert.ErrorIs(t, err, document.ErrBlockNotFound)
}

func TestLessonService_RenderSection(t *testing.T) {
	svc := newTestService(t, nil, nil)
	addText(t, svc, models.SectionBridgeIn, "<p>hi</p>")

	out, err := svc.RenderSection(models.SectionBridgeIn)
	require.NoError(t, err)
	assert.Contains(t, out, "Let&#39;s Get Started")
	assert.NotContains(t, out, "block-controls")

	svc.SetEditMode(true)
	out, err = svc.RenderSection(models.SectionBridgeIn)
	require.NoError(t, err)
	assert.Contains(t, out, "Bridge-In")
	assert.Contains(t, out, "block-controls")
	assert.Contains(t, out, "contenteditable")

	_, err = svc.RenderSection("missing")
	assert.ErrorIs(t, err, document.ErrSectionNotFound)
}

func TestLessonService_Exports(t *testing.T) {
	svc := newTestService(t, nil, nil)

	static, err := svc.ExportStatic()
	require.NoError(t, err)
	assert.Equal(t, "lesson-week3-2024-09-16.html", static.Filename)
	assert.Contains(t, string(static.Data), "<script>")

	locked, err := svc.ExportLocked()
	require.NoError(t, err)
	assert.NotContains(t, string(locked.Data), "<script>")

	md, err := svc.ExportMarkdown()
	require.NoError(t, err)
	assert.Equal(t, "lesson-week3-2024-09-16.md", md.Filename)
	assert.Contains(t, string(md.Data), "# Lesson")
}

func TestLessonService_ExportPDF(t *testing.T) {
	t.Run("disabled falls back to locked html", func(t *testing.T) {
		svc := newTestService(t, nil, pdf.Disabled{})

		out, err := svc.ExportPDF(context.Background())
		assert.ErrorIs(t, err, pdf.ErrDisabled)
		require.NotNil(t, out)
		assert.Equal(t, "text/html; charset=utf-8", out.ContentType)
	})

	t.Run("printed", func(t *testing.T) {
		printer := &mockPrinter{out: []byte("%PDF-1.7")}
		svc := newTestService(t, nil, printer)

		out, err := svc.ExportPDF(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "lesson-week3-2024-09-16.pdf", out.Filename)
		assert.Equal(t, "application/pdf", out.ContentType)
		assert.Contains(t, printer.got, "lesson-locked")
	})

	t.Run("printer failure", func(t *testing.T) {
		svc := newTestService(t, nil, &mockPrinter{err: errors.New("chrome crashed")})

		out, err := svc.ExportPDF(context.Background())
		assert.Error(t, err)
		assert.Nil(t, out)
	})
}

func TestLessonService_SaveJSON(t *testing.T) {
	tests := []struct {
		name      string
		deleteErr error
	}{
		{name: "clears autosave"},
		{name: "autosave clear failure does not fail the save", deleteErr: errors.New("locked")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			repo.deleteErr = tt.deleteErr
			repo.slots[testKey] = []byte("{}")
			svc := newTestService(t, repo, nil)
			addText(t, svc, models.SectionOverview, "<p>x</p>")

			out, err := svc.SaveJSON(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "lesson-week3-2024-09-16.json", out.Filename)
			assert.Equal(t, []string{testKey}, repo.deletes)
			assert.False(t, svc.Snapshot().Dirty)

			var f models.SaveFile
			require.NoError(t, json.Unmarshal(out.Data, &f))
			assert.Equal(t, "2.0.0", f.Version)
			assert.Len(t, f.Sections[models.SectionOverview], 1)
			assert.False(t, f.AutoSaved)
		})
	}
}

func TestLessonService_LoadJSON(t *testing.T) {
	source := newTestService(t, nil, nil)
	b := addText(t, source, models.SectionSummary, "<p>saved</p>")
	saved, err := source.SaveJSON(context.Background())
	require.NoError(t, err)

	svc := newTestService(t, nil, nil)
	addText(t, svc, models.SectionOverview, "<p>current</p>")

	t.Run("corrupt file keeps current document", func(t *testing.T) {
		before := svc.Snapshot()
		_, err := svc.LoadJSON([]byte(`{"sections":`))
		assert.ErrorIs(t, err, export.ErrInvalidSaveFile)
		assert.Equal(t, before, svc.Snapshot())
	})

	t.Run("valid file replaces document", func(t *testing.T) {
		doc, err := svc.LoadJSON(saved.Data)
		require.NoError(t, err)

		sec, _ := document.FindSection(doc, models.SectionSummary)
		require.Len(t, sec.Blocks, 1)
		assert.NotEqual(t, b.ID, sec.Blocks[0].ID)
		overview, _ := document.FindSection(doc, models.SectionOverview)
		assert.Empty(t, overview.Blocks)

		st := svc.Snapshot()
		assert.False(t, st.Dirty)
		assert.Equal(t, []string{models.SectionOverview}, st.OpenSections)
	})
}

func TestLessonService_Autosave(t *testing.T) {
	t.Run("writes only when dirty", func(t *testing.T) {
		repo := newMockRepository()
		svc := newTestService(t, repo, nil)

		wrote, err := svc.Autosave(context.Background())
		require.NoError(t, err)
		assert.False(t, wrote)

		addText(t, svc, models.SectionOverview, "<p>x</p>")
		wrote, err = svc.Autosave(context.Background())
		require.NoError(t, err)
		assert.True(t, wrote)
		assert.False(t, svc.Snapshot().Dirty)

		var f models.SaveFile
		require.NoError(t, json.Unmarshal(repo.slots[testKey], &f))
		assert.True(t, f.AutoSaved)

		wrote, err = svc.Autosave(context.Background())
		require.NoError(t, err)
		assert.False(t, wrote)
		assert.Equal(t, 1, repo.puts)
	})

	t.Run("failure keeps dirty", func(t *testing.T) {
		repo := newMockRepository()
		repo.putErr = errors.New("disk full")
		svc := newTestService(t, repo, nil)
		addText(t, svc, models.SectionOverview, "<p>x</p>")

		wrote, err := svc.Autosave(context.Background())
		assert.Error(t, err)
		assert.False(t, wrote)
		assert.True(t, svc.Snapshot().Dirty)
	})
}

func TestLessonService_AutosaveRecovery(t *testing.T) {
	repo := newMockRepository()
	writer := newTestService(t, repo, nil)
	topic := "Recovered"
	writer.UpdateHeader(&models.HeaderUpdate{CourseTopic: &topic})
	addText(t, writer, models.SectionOutcomes, "<p>draft</p>")
	_, err := writer.Autosave(context.Background())
	require.NoError(t, err)

	svc := newTestService(t, repo, nil)

	info, err := svc.CheckAutosave(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testKey, info.Key)
	assert.Equal(t, "Recovered", info.CourseTopic)

	doc, err := svc.RecoverAutosave(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Recovered", doc.CourseTopic)
	sec, _ := document.FindSection(doc, models.SectionOutcomes)
	assert.Len(t, sec.Blocks, 1)

	require.NoError(t, svc.DiscardAutosave(context.Background()))
	_, err = svc.CheckAutosave(context.Background())
	assert.ErrorIs(t, err, ErrNoAutosave)
	_, err = svc.RecoverAutosave(context.Background())
	assert.ErrorIs(t, err, ErrNoAutosave)

	repo.getErr = errors.New("database error")
	_, err = svc.CheckAutosave(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoAutosave)
}
