package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/haseab/retrace-frontend-sub001/internal/models"
	pkghttp "github.com/haseab/retrace-frontend-sub001/pkg/http"
)

// FeedbackSubmitter defines the service interface the feedback handler needs
type FeedbackSubmitter interface {
	Submit(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)
	List(ctx context.Context, limit, offset int) ([]*models.Feedback, error)
}

// ScreenshotStore defines the persistence interface for screenshot metadata
type ScreenshotStore interface {
	List(ctx context.Context, limit, offset int) ([]*models.Screenshot, error)
}

// FeedbackHandler handles feedback intake from the desktop app and the admin
// dashboard listing. Both sit behind the bearer token middleware.
type FeedbackHandler struct {
	service     FeedbackSubmitter
	screenshots ScreenshotStore
}

func NewFeedbackHandler(service FeedbackSubmitter, screenshots ScreenshotStore) *FeedbackHandler {
	return &FeedbackHandler{service: service, screenshots: screenshots}
}

// FeedbackRequest represents the request body for submitting feedback
type FeedbackRequest struct {
	Email      string `json:"email" validate:"omitempty,email"`
	Message    string `json:"message" validate:"required,max=10000"`
	Category   string `json:"category" validate:"omitempty,oneof=general bug feature"`
	AppVersion string `json:"appVersion" validate:"max=50"`
	Platform   string `json:"platform" validate:"max=50"`
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteAPIError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteAPIError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Category == "" {
		req.Category = "general"
	}

	fb, err := h.service.Submit(r.Context(), &models.Feedback{
		Email:      req.Email,
		Message:    req.Message,
		Category:   req.Category,
		AppVersion: req.AppVersion,
		Platform:   req.Platform,
	})
	if err != nil {
		pkghttp.WriteAPIError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	pkghttp.WriteJSON(w, http.StatusCreated, fb)
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	reports, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteAPIError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, reports)
}

func (h *FeedbackHandler) ListScreenshots(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	shots, err := h.screenshots.List(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteAPIError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, shots)
}

func paginationParams(r *http.Request) (limit, offset int) {
	limit = 50
	offset = 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
