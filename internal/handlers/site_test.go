package handlers_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/haseab/retrace-frontend-sub001/internal/handlers"
	"github.com/haseab/retrace-frontend-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDownloadCounter struct {
	incrementFunc func(ctx context.Context, platform string) (int64, error)
	totalsFunc    func(ctx context.Context) ([]*models.DownloadCount, error)
}

func (m *mockDownloadCounter) Increment(ctx context.Context, platform string) (int64, error) {
	return m.incrementFunc(ctx, platform)
}

func (m *mockDownloadCounter) Totals(ctx context.Context) ([]*models.DownloadCount, error) {
	return m.totalsFunc(ctx)
}

type mockFAQStore struct {
	listFunc func(ctx context.Context) ([]*models.FAQEntry, error)
}

func (m *mockFAQStore) List(ctx context.Context) ([]*models.FAQEntry, error) {
	return m.listFunc(ctx)
}

func TestRecordDownload(t *testing.T) {
	var gotPlatform string
	counter := &mockDownloadCounter{
		incrementFunc: func(ctx context.Context, platform string) (int64, error) {
			gotPlatform = platform
			return 42, nil
		},
	}
	h := handlers.NewSiteHandler(counter, &mockFAQStore{})

	req := handlers.NewTestRequest(t, "POST", "/downloads", handlers.DownloadRequest{Platform: "mac"})
	w := httptest.NewRecorder()
	h.RecordDownload(w, req)

	var body map[string]interface{}
	handlers.AssertJSONResponse(t, w, 200, &body)
	assert.Equal(t, "mac", gotPlatform)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(42), body["count"])
}

func TestRecordDownload_RejectsUnknownPlatform(t *testing.T) {
	h := handlers.NewSiteHandler(&mockDownloadCounter{}, &mockFAQStore{})

	req := handlers.NewTestRequest(t, "POST", "/downloads", handlers.DownloadRequest{Platform: "solaris"})
	w := httptest.NewRecorder()
	h.RecordDownload(w, req)

	var body map[string]string
	handlers.AssertJSONResponse(t, w, 400, &body)
	assert.Equal(t, "Platform is required", body["error"])
}

func TestRecordDownload_MissingBody(t *testing.T) {
	h := handlers.NewSiteHandler(&mockDownloadCounter{}, &mockFAQStore{})

	w := httptest.NewRecorder()
	h.RecordDownload(w, httptest.NewRequest("POST", "/downloads", nil))

	var body map[string]string
	handlers.AssertJSONResponse(t, w, 400, &body)
	assert.Equal(t, "Platform is required", body["error"])
}

func TestDownloadTotals(t *testing.T) {
	counter := &mockDownloadCounter{
		totalsFunc: func(ctx context.Context) ([]*models.DownloadCount, error) {
			return []*models.DownloadCount{
				{Platform: "mac", Count: 120},
				{Platform: "windows", Count: 80},
			}, nil
		},
	}
	h := handlers.NewSiteHandler(counter, &mockFAQStore{})

	w := httptest.NewRecorder()
	h.DownloadTotals(w, httptest.NewRequest("GET", "/api/analytics/downloads", nil))

	var totals []*models.DownloadCount
	handlers.AssertJSONResponse(t, w, 200, &totals)
	require.Len(t, totals, 2)
	assert.Equal(t, int64(120), totals[0].Count)
}

func TestDownloadTotals_StoreError(t *testing.T) {
	counter := &mockDownloadCounter{
		totalsFunc: func(ctx context.Context) ([]*models.DownloadCount, error) {
			return nil, errors.New("connection refused")
		},
	}
	h := handlers.NewSiteHandler(counter, &mockFAQStore{})

	w := httptest.NewRecorder()
	h.DownloadTotals(w, httptest.NewRequest("GET", "/api/analytics/downloads", nil))

	assert.Equal(t, 500, w.Code)
}

func TestFAQ(t *testing.T) {
	store := &mockFAQStore{
		listFunc: func(ctx context.Context) ([]*models.FAQEntry, error) {
			return []*models.FAQEntry{
				{ID: "f-1", Question: "Does it work offline?", Answer: "Yes.", Position: 1},
			}, nil
		},
	}
	h := handlers.NewSiteHandler(&mockDownloadCounter{}, store)

	w := httptest.NewRecorder()
	h.FAQ(w, httptest.NewRequest("GET", "/faq", nil))

	var entries []*models.FAQEntry
	handlers.AssertJSONResponse(t, w, 200, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "Does it work offline?", entries[0].Question)
}
