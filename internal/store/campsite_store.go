package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vbonduro/campista/internal/domain"
)

type CampsiteStore struct {
	db *sql.DB
}

func NewCampsiteStore(db *sql.DB) *CampsiteStore {
	return &CampsiteStore{db: db}
}

const campsiteColumns = `id, user_id, name, description, date_visited, rating,
	city, state, country, notes, lat, lng, created_at`

func scanCampsite(row interface{ Scan(...any) error }) (*domain.Campsite, error) {
	c := &domain.Campsite{}
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.DateVisited,
		&c.Rating, &c.City, &c.State, &c.Country, &c.Notes, &c.Lat, &c.Lng,
		&c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampsiteStore) Create(ctx context.Context, ownerID string, nc domain.NewCampsite) (*domain.Campsite, error) {
	name := strings.TrimSpace(nc.Name)
	if name == "" {
		return nil, domain.Validationf("name is required")
	}
	if nc.Rating != nil && (*nc.Rating < 1 || *nc.Rating > 5) {
		return nil, domain.Validationf("rating must be between 1 and 5")
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO campsites (user_id, name, description, date_visited, rating,
			city, state, country, notes, lat, lng)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ownerID, name, nc.Description, nc.DateVisited, nc.Rating,
		nc.City, nc.State, nc.Country, nc.Notes, nc.Lat, nc.Lng)
	if err != nil {
		return nil, fmt.Errorf("failed to create campsite: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, ownerID, id)
}

// GetByID returns the campsite only when it is owned by ownerID; a foreign or
// missing id both return nil.
func (s *CampsiteStore) GetByID(ctx context.Context, ownerID string, id int64) (*domain.Campsite, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+campsiteColumns+` FROM campsites WHERE id = ? AND user_id = ?
	`, id, ownerID)

	c, err := scanCampsite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campsite: %w", err)
	}
	return c, nil
}

// List returns the owner's campsites ordered by date visited, newest first,
// with undated records last.
func (s *CampsiteStore) List(ctx context.Context, ownerID string, filter domain.CampsiteFilter) ([]*domain.Campsite, error) {
	query := `SELECT ` + campsiteColumns + ` FROM campsites WHERE user_id = ?`
	args := []any{ownerID}

	if filter.MinRating > 0 {
		query += ` AND rating >= ?`
		args = append(args, filter.MinRating)
	}
	if filter.State != "" {
		query += ` AND state = ?`
		args = append(args, filter.State)
	}
	if filter.VisitedAfter != "" {
		query += ` AND date_visited >= ?`
		args = append(args, filter.VisitedAfter)
	}
	query += ` ORDER BY date_visited IS NULL, date_visited DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list campsites: %w", err)
	}
	defer rows.Close()

	var campsites []*domain.Campsite
	for rows.Next() {
		c, err := scanCampsite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campsite: %w", err)
		}
		campsites = append(campsites, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campsites: %w", err)
	}

	return campsites, nil
}

// Update applies the non-unset fields of patch to the record identified by
// (id, ownerID). A patch touching no fields succeeds without writing. When
// the owner-scoped predicate matches no row the result is domain.ErrNotFound
// regardless of whether the id exists for another user.
func (s *CampsiteStore) Update(ctx context.Context, ownerID string, id int64, patch domain.CampsitePatch) error {
	if patch.IsEmpty() {
		return nil
	}

	var set []string
	var args []any

	appendText := func(column string, f domain.Field[string]) {
		switch {
		case f.IsClear():
			set = append(set, column+" = NULL")
		case f.IsSet():
			v, _ := f.Value()
			set = append(set, column+" = ?")
			args = append(args, v)
		}
	}

	if name, ok := patch.Name.Value(); ok {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return domain.Validationf("name is required")
		}
		set = append(set, "name = ?")
		args = append(args, trimmed)
	} else if patch.Name.IsClear() {
		// Name can never become empty via update.
		return domain.Validationf("name is required")
	}

	appendText("description", patch.Description)
	appendText("date_visited", patch.DateVisited)
	appendText("city", patch.City)
	appendText("state", patch.State)
	appendText("country", patch.Country)
	appendText("notes", patch.Notes)

	switch {
	case patch.Rating.IsClear():
		set = append(set, "rating = NULL")
	case patch.Rating.IsSet():
		rating, _ := patch.Rating.Value()
		if rating < 1 || rating > 5 {
			return domain.Validationf("rating must be between 1 and 5")
		}
		set = append(set, "rating = ?")
		args = append(args, rating)
	}

	appendFloat := func(column string, f domain.Field[float64]) {
		switch {
		case f.IsClear():
			set = append(set, column+" = NULL")
		case f.IsSet():
			v, _ := f.Value()
			set = append(set, column+" = ?")
			args = append(args, v)
		}
	}
	appendFloat("lat", patch.Lat)
	appendFloat("lng", patch.Lng)

	args = append(args, id, ownerID)
	result, err := s.db.ExecContext(ctx,
		`UPDATE campsites SET `+strings.Join(set, ", ")+` WHERE id = ? AND user_id = ?`,
		args...)
	if err != nil {
		return fmt.Errorf("failed to update campsite: %w", err)
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

// Delete removes the record identified by (id, ownerID). Photos are not
// cascaded at this layer; callers own photo cleanup.
func (s *CampsiteStore) Delete(ctx context.Context, ownerID string, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM campsites WHERE id = ? AND user_id = ?
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete campsite: %w", err)
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
