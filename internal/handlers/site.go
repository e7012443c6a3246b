package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/haseab/retrace-frontend-sub001/internal/models"
	pkghttp "github.com/haseab/retrace-frontend-sub001/pkg/http"
)

// DownloadCounter defines the persistence interface for the download counter
type DownloadCounter interface {
	Increment(ctx context.Context, platform string) (int64, error)
	Totals(ctx context.Context) ([]*models.DownloadCount, error)
}

// FAQStore defines the persistence interface for FAQ content
type FAQStore interface {
	List(ctx context.Context) ([]*models.FAQEntry, error)
}

// SiteHandler serves the public marketing site endpoints plus the
// bearer-protected download analytics.
type SiteHandler struct {
	downloads DownloadCounter
	faq       FAQStore
}

func NewSiteHandler(downloads DownloadCounter, faq FAQStore) *SiteHandler {
	return &SiteHandler{downloads: downloads, faq: faq}
}

// DownloadRequest represents the request body for recording a download
type DownloadRequest struct {
	Platform string `json:"platform" validate:"required,oneof=mac windows linux"`
}

// RecordDownload increments the public download counter
func (h *SiteHandler) RecordDownload(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Platform is required"})
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Platform is required"})
		return
	}

	count, err := h.downloads.Increment(r.Context(), req.Platform)
	if err != nil {
		pkghttp.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "count": count})
}

// DownloadTotals returns per-platform download counts (bearer-protected)
func (h *SiteHandler) DownloadTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.downloads.Totals(r.Context())
	if err != nil {
		pkghttp.WriteAPIError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, totals)
}

// FAQ returns the marketing site FAQ entries (public)
func (h *SiteHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	entries, err := h.faq.List(r.Context())
	if err != nil {
		pkghttp.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, entries)
}
