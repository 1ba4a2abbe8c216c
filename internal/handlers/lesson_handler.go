package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lessonbuilder/backend/internal/document"
	"github.com/lessonbuilder/backend/internal/models"
	"github.com/lessonbuilder/backend/internal/pdf"
	"github.com/lessonbuilder/backend/internal/services"
	"go.uber.org/zap"
)

// LessonService is the interface that wraps the editor operations on the open lesson
type LessonService interface {
	// Method Snapshot returns a copy of the editor state.
	Snapshot() services.State
	// Method SetEditMode switches between edit and preview mode and returns the new state.
	SetEditMode(on bool) services.State
	// Method ToggleSection opens or closes a section.
	//
	// Returns whether the section is now open, or document.ErrSectionNotFound.
	ToggleSection(sectionID string) (bool, error)
	// Method UpdateHeader applies a partial update of the lesson header and returns the document.
	UpdateHeader(update *models.HeaderUpdate) models.Document
	// Method AddSection inserts a user section before resources.
	//
	// An unknown section type returns an *intake.ValidationError.
	AddSection(req *models.CreateSectionRequest) (models.Section, error)
	// Method RenameSection changes the editor title of a section.
	RenameSection(sectionID, title string) (models.Section, error)
	// Method DeleteSection removes a section.
	//
	// Overview and resources return document.ErrProtectedSection.
	DeleteSection(sectionID string) error
	// Method OpenModal targets the content intake modal.
	//
	// Returns the block being edited, or "nil" when a new block will be added.
	OpenModal(target services.ModalTarget) (*models.Block, error)
	// Method CloseModal dismisses the content intake modal.
	CloseModal()
	// Method SubmitContent validates the intake form and stores the block.
	//
	// "blockID" selects the block to replace; empty adds a new block.
	// Rejected forms return an *intake.ValidationError and leave the lesson unchanged.
	SubmitContent(ctx context.Context, sectionID, blockID string, req *models.ContentRequest) (models.Block, error)
	// Method PatchBlock merges a partial payload into a block.
	PatchBlock(sectionID, blockID string, patch document.Patch) (models.Block, error)
	// Method DeleteBlock removes a block.
	DeleteBlock(sectionID, blockID string) error
	// Method MoveBlock moves a block one step "up" or "down".
	MoveBlock(sectionID, blockID, direction string) (models.Section, error)
	// Method StartDrag records the block being dragged.
	StartDrag(sectionID, blockID string) error
	// Method Drop completes a drag and reports whether the section changed.
	Drop(sectionID string, targetIndex int) (models.Section, bool, error)
	// Method ReorderBlock moves a block to "targetIndex".
	ReorderBlock(sectionID, blockID string, targetIndex int) (models.Section, error)
	// Method RenderSection returns the live HTML fragment of a section.
	RenderSection(sectionID string) (string, error)
	// Method ExportStatic renders the interactive standalone page.
	ExportStatic() (*services.Export, error)
	// Method ExportLocked renders the print-oriented page.
	ExportLocked() (*services.Export, error)
	// Method ExportMarkdown renders the lesson as Markdown.
	ExportMarkdown() (*services.Export, error)
	// Method ExportPDF prints the locked page.
	//
	// When printing is disabled the locked page is returned together with pdf.ErrDisabled.
	ExportPDF(ctx context.Context) (*services.Export, error)
	// Method SaveJSON produces the save file and clears the autosave slot.
	SaveJSON(ctx context.Context) (*services.Export, error)
	// Method LoadJSON replaces the lesson with a save file.
	//
	// A corrupt file returns export.ErrInvalidSaveFile and keeps the current lesson.
	LoadJSON(data []byte) (models.Document, error)
	// Method CheckAutosave describes the autosave of the lesson, or returns services.ErrNoAutosave.
	CheckAutosave(ctx context.Context) (*services.AutosaveInfo, error)
	// Method RecoverAutosave replaces the lesson with its autosave.
	RecoverAutosave(ctx context.Context) (models.Document, error)
	// Method DiscardAutosave deletes the autosave of the lesson.
	DiscardAutosave(ctx context.Context) error
}

// LessonHandler handles HTTP requests for the open lesson
type LessonHandler struct {
	BaseHandler
	service LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/document", func(r chi.Router) {
			r.Get("/", h.GetDocument)
			r.Patch("/header", h.UpdateHeader)
			r.Put("/mode", h.SetEditMode)
		})

		r.Route("/sections", func(r chi.Router) {
			r.Post("/", h.AddSection)
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/", h.RenameSection)
				r.Delete("/", h.DeleteSection)
				r.Post("/toggle", h.ToggleSection)
				r.Get("/fragment", h.RenderSection)
				r.Post("/modal", h.OpenModal)
				r.Post("/drop", h.Drop)
				r.Post("/reorder", h.ReorderBlock)
				r.Post("/blocks", h.AddBlock)
				r.Route("/blocks/{blockId}", func(r chi.Router) {
					r.Put("/", h.EditBlock)
					r.Patch("/", h.PatchBlock)
					r.Delete("/", h.DeleteBlock)
					r.Post("/move", h.MoveBlock)
					r.Post("/drag", h.StartDrag)
				})
			})
		})
		r.Delete("/modal", h.CloseModal)

		r.Route("/export", func(r chi.Router) {
			r.Get("/html", h.ExportStatic)
			r.Get("/locked", h.ExportLocked)
			r.Get("/markdown", h.ExportMarkdown)
			r.Get("/pdf", h.ExportPDF)
			r.Get("/json", h.ExportJSON)
		})
		r.Post("/import/json", h.ImportJSON)

		r.Route("/autosave", func(r chi.Router) {
			r.Get("/", h.CheckAutosave)
			r.Post("/recover", h.RecoverAutosave)
			r.Delete("/", h.DiscardAutosave)
		})
	})
}

// Health handles GET /health
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *LessonHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetDocument handles GET /api/v1/document
// @Summary Get the editor state
// @Description Get the lesson document together with edit mode, open sections, drag and modal state
// @Tags document
// @Produce json
// @Success 200 {object} services.State
// @Router /api/v1/document [get]
func (h *LessonHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.Snapshot())
}

// UpdateHeader handles PATCH /api/v1/document/header
// @Summary Update the lesson header
// @Description Set course topic, instructor, footer, logo, week or date. Omitted fields are unchanged.
// @Tags document
// @Accept json
// @Produce json
// @Param request body models.HeaderUpdate true "Header fields"
// @Success 200 {object} models.Document
// @Failure 400 {object} map[string]string
// @Router /api/v1/document/header [patch]
func (h *LessonHandler) UpdateHeader(w http.ResponseWriter, r *http.Request) {
	var req models.HeaderUpdate
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondServiceError(w, r, badRequest(err))
		return
	}
	h.respondJSON(w, http.StatusOK, h.service.UpdateHeader(&req))
}

// SetEditMode handles PUT /api/v1/document/mode
// @Summary Switch edit mode
// @Tags document
// @Accept json
// @Produce json
// @Param request body models.EditModeRequest true "Edit mode"
// @Success 200 {object} services.State
// @Failure 400 {object} map[string]string
// @Router /api/v1/document/mode [put]
func (h *LessonHandler) SetEditMode(w http.ResponseWriter, r *http.Request) {
	var req models.EditModeRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondServiceError(w, r, badRequest(err))
		return
	}
	h.respondJSON(w, http.StatusOK, h.service.SetEditMode(req.EditMode))
}

// AddSection handles POST /api/v1/sections
// @Summary Add a section
// @Description Insert a user section right before resources
// @Tags sections
// @Accept json
// @Produce json
// @Param request body models.CreateSectionRequest true "Section"
// @Success 201 {object} models.Section
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/sections [post]
func (h *LessonHandler) AddSection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSectionRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondServiceError(w, r, badRequest(err))
		return
	}

	sec, err := h.service.AddSection(&req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, sec)
}

// RenameSection handles PATCH /api/v1/sections/{id}
// @Summary Rename a section
// @Tags sections
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param request body models.RenameSectionRequest true "Title"
// @Success 200 {object} models.Section
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/sections/{id} [patch]
func (h *LessonHandler) RenameSection(w http.ResponseWriter, r *http.Request) {
	var req models.RenameSectionRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondServiceError(w, r, badRequest(err))
		return
	}

	sec, err := h.service.RenameSection(chi.URLParam(r, "id"), req.Title)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sec)
}

// DeleteSection handles DELETE /api/v1/sections/{id}
// @Summary Delete a section
// @Description Overview and resources cannot be deleted
// @Tags sections
// @Param id path string true "Section ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/sections/{id} [delete]
func (h *LessonHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSection(chi.URLParam(r, "id")); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleSection handles POST /api/v1/sections/{id}/toggle
// @Summary Open or close a section
// @Tags sections
// @Produce json
// @Param id path string true "Section ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /api/v1/sections/{id}/toggle [post]
func (h *LessonHandler) ToggleSection(w http.ResponseWriter, r *http.Request) {
	open, err := h.service.ToggleSection(chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"open": open})
}

// RenderSection handles GET /api/v1/sections/{id}/fragment
// @Summary Render a section
// @Description Live HTML of a section in the current mode, with block controls in edit mode
// @Tags sections
// @Produce html
// @Param id path string true "Section ID"
// @Success 200 {string} string
// @Failure 404 {object} map[string]string
// @Router /api/v1/sections/{id}/fragment [get]
func (h *LessonHandler) RenderSection(w http.ResponseWriter, r *http.Request) {
	html, err := h.service.RenderSection(chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondHTML(w, http.StatusOK, html)
}

// openModalRequest targets the intake modal inside a section
type openModalRequest struct {
	BlockID     string `json:"blockId,omitempty"`
	InsertAfter string `json:"insertAfter,omitempty"`
}

// OpenModal handles POST /api/v1/sections/{id}/modal
// @Summary Open the content modal
// @Description Target the intake modal at an existing block, or at a new block after insertAfter
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param request body openModalRequest false "Target"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/v1/sections/{id}/modal [post]
func (h *LessonHandler) OpenModal(w http.ResponseWriter, r *http.Request) {
	var req openModalRequest
	if err := h.decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.respondServiceError(w, r, badRequest(err))
		return
	}

	target := services.ModalTarget{SectionID: chi.URLParam(r, "id"), BlockID: req.BlockID, InsertAfter: req.InsertAfter}
	editing, err := h.service.OpenModal(target)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"target": target, "block": editing})
}

// CloseModal handles DELETE /api/v1/modal
// @Summary Close the content modal
// @Tags blocks
// @Success 204
// @Router /api/v1/modal [delete]
func (h *LessonHandler) CloseModal(w http.ResponseWriter, r *http.Request) {
	h.service.CloseModal()
	w.WriteHeader(http.StatusNoContent)
}

// AddBlock handles POST /api/v1/sections/{id}/blocks
// @Summary Add a block
// @Description Submit the content intake form. The block is inserted after insertAfter, or appended.
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param request body models.ContentRequest true "Content form"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/sections/{id}/blocks [post]
func (h *LessonHandler) AddBlock(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "", http.StatusCreated)
}

// EditBlock handles PUT /api/v1/sections/{id}/blocks/{blockId}
// @Summary Edit a block
// @Description Submit the content intake form for an existing block. The id and position are kept.
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param blockId path string true "Block ID"
// @Param request body models.ContentRequest true "Content form"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/sections/{id}/blocks/{blockId} [put]
func (h *LessonHandler) EditBlock(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, chi.URLParam(r, "blockId"), http.StatusOK)
}

func (h *LessonHandler) submit(w http.ResponseWriter, r *http.Request, blockID string, status int) {
	var req models.ContentRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondServiceError(w, r, badRequest(err))
		return
	}

	b, err := h.service.SubmitContent(r.Context(), chi.URLParam(r, "id"), blockID, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, status, b)
}

// PatchBlock handles PATCH /api/v1/sections/{id}/blocks/{blockId}
// @Summary Patch a block
// @Description Merge payload fields into a block. The id and type cannot change.
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param blockId path string true "Block ID"
// @Param request body map[string]any true "Payload fields"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/sections/{id}/blocks/{blockId} [patch]
func (h *LessonHandler) PatchBlock(w http.ResponseWriter, r *http.Request) {
	var patch document.Patch
	if err := h.decodeJSON(r, &patch); err != nil {
		h.respondServiceError(w, r, badRequest(err))
		return
	}

	b, err := h.service.PatchBlock(chi.URLParam(r, "id"), chi.URLParam(r, "blockId"), patch)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, b)
}

// DeleteBlock handles DELETE /api/v1/sections/{id}/blocks/{blockId}
// @Summary Delete a block
// @Tags blocks
// @Param id path string true "Section ID"
// @Param blockId path string true "Block ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/sections/{id}/blocks/{blockId} [delete]
func (h *LessonHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBlock(chi.URLParam(r, "id"), chi.URLParam(r, "blockId")); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveBlock handles POST /api/v1/sections/{id}/blocks/{blockId}/move
// @Summary Move a block one step
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param blockId path string true "Block ID"
// @Param request body models.MoveBlockRequest true "Direction"
// @Success 200 {object} models.Section
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/sections/{id}/blocks/{blockId}/move [post]
func (h *LessonHandler) MoveBlock(w http.ResponseWriter, r *http.Request) {
	var req models.MoveBlockRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondServiceError(w, r, badRequest(err))
		return
	}

	sec, err := h.service.MoveBlock(chi.URLParam(r, "id"), chi.URLParam(r, "blockId"), req.Direction)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sec)
}

// StartDrag handles POST /api/v1/sections/{id}/blocks/{blockId}/drag
// @Summary Start dragging a block
// @Tags blocks
// @Param id path string true "Section ID"
// @Param blockId path string true "Block ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/sections/{id}/blocks/{blockId}/drag [post]
func (h *LessonHandler) StartDrag(w http.ResponseWriter, r *http.Request) {
	if err := h.service.StartDrag(chi.URLParam(r, "id"), chi.URLParam(r, "blockId")); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Drop handles POST /api/v1/sections/{id}/drop
// @Summary Drop the dragged block
// @Description Without a drag in flight nothing changes and moved is false
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param request body models.DropRequest true "Target index"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/v1/sections/{id}/drop [post]
func (h *LessonHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var req models.DropRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondServiceError(w, r, badRequest(err))
		return
	}

	sec, moved, err := h.service.Drop(chi.URLParam(r, "id"), req.TargetIndex)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"section": sec, "moved": moved})
}

// ReorderBlock handles POST /api/v1/sections/{id}/reorder
// @Summary Reorder a block
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param request body models.ReorderBlockRequest true "Block and target index"
// @Success 200 {object} models.Section
// @Failure 404 {object} map[string]string
// @Router /api/v1/sections/{id}/reorder [post]
func (h *LessonHandler) ReorderBlock(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderBlockRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondServiceError(w, r, badRequest(err))
		return
	}

	sec, err := h.service.ReorderBlock(chi.URLParam(r, "id"), req.BlockID, req.TargetIndex)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sec)
}

// ExportStatic handles GET /api/v1/export/html
// @Summary Export the interactive page
// @Tags export
// @Produce html
// @Success 200 {file} file
// @Router /api/v1/export/html [get]
func (h *LessonHandler) ExportStatic(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, h.service.ExportStatic)
}

// ExportLocked handles GET /api/v1/export/locked
// @Summary Export the locked print page
// @Tags export
// @Produce html
// @Success 200 {file} file
// @Router /api/v1/export/locked [get]
func (h *LessonHandler) ExportLocked(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, h.service.ExportLocked)
}

// ExportMarkdown handles GET /api/v1/export/markdown
// @Summary Export the lesson as Markdown
// @Tags export
// @Produce plain
// @Success 200 {file} file
// @Router /api/v1/export/markdown [get]
func (h *LessonHandler) ExportMarkdown(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, h.service.ExportMarkdown)
}

// ExportJSON handles GET /api/v1/export/json
// @Summary Download the save file
// @Description Produces the JSON save file and clears the autosave slot
// @Tags export
// @Produce json
// @Success 200 {file} file
// @Router /api/v1/export/json [get]
func (h *LessonHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, func() (*services.Export, error) { return h.service.SaveJSON(r.Context()) })
}

// ExportPDF handles GET /api/v1/export/pdf
// @Summary Export the lesson as PDF
// @Description When PDF printing is disabled the locked page is returned inline with X-PDF-Fallback set, for browser print-to-PDF
// @Tags export
// @Produce application/pdf
// @Success 200 {file} file
// @Router /api/v1/export/pdf [get]
func (h *LessonHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ExportPDF(r.Context())
	if errors.Is(err, pdf.ErrDisabled) && out != nil {
		w.Header().Set("X-PDF-Fallback", "browser-print")
		h.respondFile(w, out.Filename, out.ContentType, out.Data, true)
		return
	}
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondFile(w, out.Filename, out.ContentType, out.Data, false)
}

func (h *LessonHandler) download(w http.ResponseWriter, r *http.Request, fn func() (*services.Export, error)) {
	out, err := fn()
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondFile(w, out.Filename, out.ContentType, out.Data, false)
}

// ImportJSON handles POST /api/v1/import/json
// @Summary Load a save file
// @Description Replace the lesson with a save file. Either the whole file loads or nothing changes.
// @Tags export
// @Accept json
// @Produce json
// @Param request body models.SaveFile true "Save file"
// @Success 200 {object} models.Document
// @Failure 400 {object} map[string]string
// @Router /api/v1/import/json [post]
func (h *LessonHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondServiceError(w, r, badRequest(err))
		return
	}

	doc, err := h.service.LoadJSON(data)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, doc)
}

// CheckAutosave handles GET /api/v1/autosave
// @Summary Check for an autosave
// @Description Describes the autosave of the current week and date, offered for recovery on load
// @Tags autosave
// @Produce json
// @Success 200 {object} services.AutosaveInfo
// @Failure 404 {object} map[string]string
// @Router /api/v1/autosave [get]
func (h *LessonHandler) CheckAutosave(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.CheckAutosave(r.Context())
	if errors.Is(err, services.ErrNoAutosave) {
		h.respondError(w, http.StatusNotFound, "no autosave available")
		return
	}
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, info)
}

// RecoverAutosave handles POST /api/v1/autosave/recover
// @Summary Recover the autosave
// @Tags autosave
// @Produce json
// @Success 200 {object} models.Document
// @Failure 404 {object} map[string]string
// @Router /api/v1/autosave/recover [post]
func (h *LessonHandler) RecoverAutosave(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.RecoverAutosave(r.Context())
	if errors.Is(err, services.ErrNoAutosave) {
		h.respondError(w, http.StatusNotFound, "no autosave available")
		return
	}
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, doc)
}

// DiscardAutosave handles DELETE /api/v1/autosave
// @Summary Discard the autosave
// @Tags autosave
// @Success 204
// @Router /api/v1/autosave [delete]
func (h *LessonHandler) DiscardAutosave(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DiscardAutosave(r.Context()); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// badRequestError marks a body that could not be read
type badRequestError struct{ err error }

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error { return &badRequestError{err: err} }
