package service

import (
	"context"
	"log/slog"

	"github.com/vbonduro/campista/internal/domain"
)

// campsiteRepository is the subset of store.CampsiteStore that
// CampsiteService requires.
type campsiteRepository interface {
	Create(ctx context.Context, ownerID string, nc domain.NewCampsite) (*domain.Campsite, error)
	GetByID(ctx context.Context, ownerID string, id int64) (*domain.Campsite, error)
	List(ctx context.Context, ownerID string, filter domain.CampsiteFilter) ([]*domain.Campsite, error)
	Update(ctx context.Context, ownerID string, id int64, patch domain.CampsitePatch) error
	Delete(ctx context.Context, ownerID string, id int64) error
}

// photoCounter is the subset of store.PhotoStore that CampsiteService
// requires.
type photoCounter interface {
	CountByCampsite(ctx context.Context, ownerID string, campsiteID int64) (int, error)
}

// viewInvalidator is the subset of viewcache.Cache that services require.
type viewInvalidator interface {
	InvalidateOwner(ownerID string)
	InvalidateDetail(ownerID string, campsiteID int64)
}

type CampsiteService struct {
	campsites campsiteRepository
	photos    photoCounter
	views     viewInvalidator
	logger    *slog.Logger
}

func NewCampsiteService(campsites campsiteRepository, photos photoCounter, views viewInvalidator, logger *slog.Logger) *CampsiteService {
	return &CampsiteService{campsites: campsites, photos: photos, views: views, logger: logger}
}

func (s *CampsiteService) Create(ctx context.Context, ownerID string, nc domain.NewCampsite) (*domain.Campsite, error) {
	campsite, err := s.campsites.Create(ctx, ownerID, nc)
	if err != nil {
		return nil, err
	}
	s.views.InvalidateOwner(ownerID)
	s.logger.Info("campsite created", "user_id", ownerID, "campsite_id", campsite.ID)
	return campsite, nil
}

func (s *CampsiteService) Get(ctx context.Context, ownerID string, id int64) (*domain.Campsite, error) {
	return s.campsites.GetByID(ctx, ownerID, id)
}

func (s *CampsiteService) List(ctx context.Context, ownerID string, filter domain.CampsiteFilter) ([]*domain.Campsite, error) {
	return s.campsites.List(ctx, ownerID, filter)
}

// Update applies a partial update and returns the refreshed record.
func (s *CampsiteService) Update(ctx context.Context, ownerID string, id int64, patch domain.CampsitePatch) (*domain.Campsite, error) {
	if err := s.campsites.Update(ctx, ownerID, id, patch); err != nil {
		return nil, err
	}
	s.views.InvalidateDetail(ownerID, id)

	campsite, err := s.campsites.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if campsite == nil {
		// An empty patch skips the owner-scoped write entirely, so the
		// existence check has to happen on the read-back.
		return nil, domain.ErrNotFound
	}
	return campsite, nil
}

// Delete removes the campsite. Attached photo rows and blobs are not
// cascaded; clients delete photos beforehand, and any leftovers are logged so
// the orphans stay visible.
func (s *CampsiteService) Delete(ctx context.Context, ownerID string, id int64) error {
	if err := s.campsites.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.views.InvalidateOwner(ownerID)

	// The count is purely observational; the record is already gone, so a
	// counting failure must not fail the delete.
	orphans, err := s.photos.CountByCampsite(ctx, ownerID, id)
	if err != nil {
		s.logger.Error("failed to count leftover photos",
			"user_id", ownerID, "campsite_id", id, "error", err)
		return nil
	}
	if orphans > 0 {
		s.logger.Warn("campsite deleted with photos still attached",
			"user_id", ownerID, "campsite_id", id, "orphaned_photos", orphans)
	} else {
		s.logger.Info("campsite deleted", "user_id", ownerID, "campsite_id", id)
	}
	return nil
}
