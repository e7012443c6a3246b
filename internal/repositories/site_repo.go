package repositories

import (
	"context"

	"github.com/haseab/retrace-frontend-sub001/internal/database"
	"github.com/haseab/retrace-frontend-sub001/internal/models"
)

// DownloadRepository handles the download counter
type DownloadRepository struct {
	db *database.DB
}

func NewDownloadRepository(db *database.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

// Increment bumps the counter for a platform, creating the row on first hit
func (r *DownloadRepository) Increment(ctx context.Context, platform string) (int64, error) {
	query := `
		INSERT INTO download_counts (platform, count)
		VALUES ($1, 1)
		ON CONFLICT (platform) DO UPDATE SET count = download_counts.count + 1
		RETURNING count
	`

	var count int64
	if err := r.db.Pool.QueryRow(ctx, query, platform).Scan(&count); err != nil {
		return 0, database.MapPostgresError(err)
	}
	return count, nil
}

func (r *DownloadRepository) Totals(ctx context.Context) ([]*models.DownloadCount, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT platform, count FROM download_counts ORDER BY platform`)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	totals := []*models.DownloadCount{}
	for rows.Next() {
		dc := &models.DownloadCount{}
		if err := rows.Scan(&dc.Platform, &dc.Count); err != nil {
			return nil, err
		}
		totals = append(totals, dc)
	}
	return totals, rows.Err()
}

// FAQRepository handles the marketing site FAQ content
type FAQRepository struct {
	db *database.DB
}

func NewFAQRepository(db *database.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

func (r *FAQRepository) List(ctx context.Context) ([]*models.FAQEntry, error) {
	query := `
		SELECT id, question, answer, position, updated_at
		FROM faq_entries
		ORDER BY position ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	entries := []*models.FAQEntry{}
	for rows.Next() {
		e := &models.FAQEntry{}
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &e.Position, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
