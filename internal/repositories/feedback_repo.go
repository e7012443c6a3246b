package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/haseab/retrace-frontend-sub001/internal/database"
	"github.com/haseab/retrace-frontend-sub001/internal/models"
)

// FeedbackRepository handles database operations for feedback reports
type FeedbackRepository struct {
	db *database.DB
}

func NewFeedbackRepository(db *database.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	fb.ID = uuid.New().String()
	fb.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO feedback (id, email, message, category, app_version, platform, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		fb.ID, fb.Email, fb.Message, fb.Category, fb.AppVersion, fb.Platform, fb.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return fb, nil
}

func (r *FeedbackRepository) List(ctx context.Context, limit, offset int) ([]*models.Feedback, error) {
	query := `
		SELECT id, email, message, category, app_version, platform, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	reports := []*models.Feedback{}
	for rows.Next() {
		fb := &models.Feedback{}
		if err := rows.Scan(&fb.ID, &fb.Email, &fb.Message, &fb.Category, &fb.AppVersion, &fb.Platform, &fb.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, fb)
	}
	return reports, rows.Err()
}

// ScreenshotRepository handles database operations for screenshot metadata
type ScreenshotRepository struct {
	db *database.DB
}

func NewScreenshotRepository(db *database.DB) *ScreenshotRepository {
	return &ScreenshotRepository{db: db}
}

func (r *ScreenshotRepository) List(ctx context.Context, limit, offset int) ([]*models.Screenshot, error) {
	query := `
		SELECT id, COALESCE(feedback_id::text, ''), url, width, height, created_at
		FROM screenshots
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	shots := []*models.Screenshot{}
	for rows.Next() {
		s := &models.Screenshot{}
		if err := rows.Scan(&s.ID, &s.FeedbackID, &s.URL, &s.Width, &s.Height, &s.CreatedAt); err != nil {
			return nil, err
		}
		shots = append(shots, s)
	}
	return shots, rows.Err()
}
