package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vbonduro/campista/internal/domain"
	"github.com/vbonduro/campista/internal/photostore"
)

// MaxPhotoSize is the upload size ceiling, checked before any storage call.
const MaxPhotoSize = 10 << 20 // 10 MiB

// SignedURLTTL is how long photo download references stay valid.
const SignedURLTTL = time.Hour

// allowedContentTypes maps accepted upload MIME types to the blob file
// extension. image/jpg is not a registered type but browsers send it.
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// photoRepository is the subset of store.PhotoStore that PhotoService
// requires.
type photoRepository interface {
	Create(ctx context.Context, p domain.Photo) (*domain.Photo, error)
	GetByID(ctx context.Context, ownerID string, id int64) (*domain.Photo, error)
	ListByCampsite(ctx context.Context, ownerID string, campsiteID int64) ([]*domain.Photo, error)
	Delete(ctx context.Context, ownerID string, id int64) error
}

// campsiteGetter is the subset of store.CampsiteStore that PhotoService
// requires.
type campsiteGetter interface {
	GetByID(ctx context.Context, ownerID string, id int64) (*domain.Campsite, error)
}

type PhotoService struct {
	photos    photoRepository
	campsites campsiteGetter
	blobs     photostore.BlobStore
	views     viewInvalidator
	logger    *slog.Logger
}

func NewPhotoService(photos photoRepository, campsites campsiteGetter, blobs photostore.BlobStore, views viewInvalidator, logger *slog.Logger) *PhotoService {
	return &PhotoService{photos: photos, campsites: campsites, blobs: blobs, views: views, logger: logger}
}

// PhotoView is a photo row paired with a signed download reference.
type PhotoView struct {
	Photo *domain.Photo
	URL   string
}

// Upload validates the file, writes the blob under a fresh random key, then
// inserts the metadata row. The blob key never contains the client-supplied
// filename. If the metadata insert fails after the blob write succeeded, the
// blob is left orphaned; the returned error names the key so the gap is
// traceable.
func (s *PhotoService) Upload(ctx context.Context, ownerID string, campsiteID int64, filename, contentType string, size int64, r io.Reader) (*domain.Photo, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, domain.Validationf("unsupported file type %q: use JPEG, PNG, or WebP", contentType)
	}
	if size > MaxPhotoSize {
		return nil, domain.Validationf("file exceeds the %d MiB limit", MaxPhotoSize>>20)
	}

	campsite, err := s.campsites.GetByID(ctx, ownerID, campsiteID)
	if err != nil {
		return nil, err
	}
	if campsite == nil {
		return nil, domain.ErrNotFound
	}

	key := fmt.Sprintf("user_uploads/%s/%d/%s%s", ownerID, campsiteID, uuid.NewString(), ext)

	if err := s.blobs.Put(ctx, key, contentType, io.LimitReader(r, MaxPhotoSize)); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	photo, err := s.photos.Create(ctx, domain.Photo{
		UserID:        ownerID,
		CampsiteID:    campsiteID,
		StorageBucket: s.blobs.Bucket(),
		StoragePath:   key,
		OriginalName:  filename,
		ContentType:   contentType,
		SizeBytes:     size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record photo (blob %s left orphaned): %w", key, err)
	}

	s.views.InvalidateDetail(ownerID, campsiteID)
	s.logger.Info("photo uploaded", "user_id", ownerID, "campsite_id", campsiteID,
		"photo_id", photo.ID, "bytes", size)
	return photo, nil
}

// Delete removes the blob first and the metadata row only after the blob
// removal succeeded. A failed blob removal preserves the row so the delete
// can be retried.
func (s *PhotoService) Delete(ctx context.Context, ownerID string, photoID int64) error {
	photo, err := s.photos.GetByID(ctx, ownerID, photoID)
	if err != nil {
		return err
	}
	if photo == nil {
		return domain.ErrNotFound
	}

	if err := s.blobs.Remove(ctx, photo.StoragePath); err != nil {
		return fmt.Errorf("failed to remove blob: %w", err)
	}

	if err := s.photos.Delete(ctx, ownerID, photoID); err != nil {
		return err
	}

	s.views.InvalidateDetail(ownerID, photo.CampsiteID)
	s.logger.Info("photo deleted", "user_id", ownerID, "photo_id", photoID)
	return nil
}

// List returns the campsite's photos, newest first, each with a signed
// download URL.
func (s *PhotoService) List(ctx context.Context, ownerID string, campsiteID int64) ([]PhotoView, error) {
	photos, err := s.photos.ListByCampsite(ctx, ownerID, campsiteID)
	if err != nil {
		return nil, err
	}

	views := make([]PhotoView, 0, len(photos))
	for _, p := range photos {
		url, err := s.blobs.SignedURL(ctx, p.StoragePath, SignedURLTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to sign url for photo %d: %w", p.ID, err)
		}
		views = append(views, PhotoView{Photo: p, URL: url})
	}
	return views, nil
}
