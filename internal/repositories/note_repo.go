package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/haseab/retrace-frontend-sub001/internal/database"
	"github.com/haseab/retrace-frontend-sub001/internal/models"
)

// NoteRepository handles database operations for admin notes
type NoteRepository struct {
	db *database.DB
}

func NewNoteRepository(db *database.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) List(ctx context.Context) ([]*models.Note, error) {
	query := `
		SELECT id, title, body, pinned, created_at, updated_at
		FROM notes
		ORDER BY pinned DESC, updated_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.Title, &note.Body, &note.Pinned, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	note.ID = uuid.New().String()
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	query := `
		INSERT INTO notes (id, title, body, pinned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		note.ID, note.Title, note.Body, note.Pinned, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return note, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	note.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE notes
		SET title = $2, body = $3, pinned = $4, updated_at = $5
		WHERE id = $1
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		note.ID, note.Title, note.Body, note.Pinned, note.UpdatedAt).Scan(&note.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
