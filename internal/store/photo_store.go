package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/campista/internal/domain"
)

type PhotoStore struct {
	db *sql.DB
}

func NewPhotoStore(db *sql.DB) *PhotoStore {
	return &PhotoStore{db: db}
}

const photoColumns = `id, user_id, campsite_id, storage_bucket, storage_path,
	original_name, content_type, size_bytes, created_at`

func scanPhoto(row interface{ Scan(...any) error }) (*domain.Photo, error) {
	p := &domain.Photo{}
	err := row.Scan(&p.ID, &p.UserID, &p.CampsiteID, &p.StorageBucket,
		&p.StoragePath, &p.OriginalName, &p.ContentType, &p.SizeBytes, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PhotoStore) Create(ctx context.Context, p domain.Photo) (*domain.Photo, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO campsite_photos (user_id, campsite_id, storage_bucket,
			storage_path, original_name, content_type, size_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.UserID, p.CampsiteID, p.StorageBucket, p.StoragePath,
		p.OriginalName, p.ContentType, p.SizeBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, p.UserID, id)
}

// GetByID returns the photo only when it is owned by ownerID.
func (s *PhotoStore) GetByID(ctx context.Context, ownerID string, id int64) (*domain.Photo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+photoColumns+` FROM campsite_photos WHERE id = ? AND user_id = ?
	`, id, ownerID)

	p, err := scanPhoto(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return p, nil
}

// ListByCampsite returns the owner's photos for a campsite, newest first.
func (s *PhotoStore) ListByCampsite(ctx context.Context, ownerID string, campsiteID int64) ([]*domain.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+photoColumns+` FROM campsite_photos
		WHERE campsite_id = ? AND user_id = ?
		ORDER BY created_at DESC, id DESC
	`, campsiteID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var photos []*domain.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}

	return photos, nil
}

// CountByCampsite reports how many photo rows reference a campsite. Used to
// surface orphaned metadata after a campsite delete.
func (s *PhotoStore) CountByCampsite(ctx context.Context, ownerID string, campsiteID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM campsite_photos WHERE campsite_id = ? AND user_id = ?
	`, campsiteID, ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return n, nil
}

// Delete removes the metadata row identified by (id, ownerID).
func (s *PhotoStore) Delete(ctx context.Context, ownerID string, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM campsite_photos WHERE id = ? AND user_id = ?
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
