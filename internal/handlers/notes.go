package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/haseab/retrace-frontend-sub001/internal/models"
	pkghttp "github.com/haseab/retrace-frontend-sub001/pkg/http"
)

// NoteStore defines the persistence interface the notes handler needs
type NoteStore interface {
	List(ctx context.Context) ([]*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}

// NoteHandler handles the admin notes CRUD. All routes sit behind the bearer
// token middleware.
type NoteHandler struct {
	store NoteStore
}

func NewNoteHandler(store NoteStore) *NoteHandler {
	return &NoteHandler{store: store}
}

// NoteRequest represents the request body for creating or updating a note
type NoteRequest struct {
	Title  string `json:"title" validate:"required,max=200"`
	Body   string `json:"body" validate:"max=10000"`
	Pinned bool   `json:"pinned"`
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.store.List(r.Context())
	if err != nil {
		pkghttp.WriteAPIError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteAPIError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteAPIError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	note, err := h.store.Create(r.Context(), &models.Note{
		Title:  req.Title,
		Body:   req.Body,
		Pinned: req.Pinned,
	})
	if err != nil {
		pkghttp.WriteAPIError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	pkghttp.WriteJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteAPIError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteAPIError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	note, err := h.store.Update(r.Context(), &models.Note{
		ID:     id,
		Title:  req.Title,
		Body:   req.Body,
		Pinned: req.Pinned,
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteAPIError(w, http.StatusNotFound, "Note not found", "")
			return
		}
		pkghttp.WriteAPIError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteAPIError(w, http.StatusNotFound, "Note not found", "")
			return
		}
		pkghttp.WriteAPIError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
