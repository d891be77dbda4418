package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"portfolio-server/internal/domain"
	"portfolio-server/internal/repository"
	"portfolio-server/internal/storage"
)

var (
	// ErrNoFile indicates the upload request carried no file payload.
	ErrNoFile = errors.New("no file provided")
	// ErrUnsupportedType indicates the file is not an accepted image format.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrMediaStore indicates the remote media host rejected or failed
	// the request.
	ErrMediaStore = errors.New("media store request failed")
)

var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// UploadRequest carries one image file plus its metadata.
type UploadRequest struct {
	FileName    string
	ContentType string
	Body        io.Reader
	Title       string
	Description string
	CategoryID  *int64
	IsFeatured  bool
}

// PhotoService coordinates photo operations: the upload sequence
// against the media store plus the CRUD surface over the repository.
type PhotoService interface {
	Upload(ctx context.Context, req UploadRequest) (*domain.Photo, error)
	Get(ctx context.Context, id int64) (*domain.Photo, error)
	List(ctx context.Context) ([]domain.Photo, error)
	Update(ctx context.Context, id int64, update repository.PhotoUpdate) error
	Delete(ctx context.Context, id int64) error
}

type photoService struct {
	photos    repository.PhotoRepository
	store     storage.Service
	bucket    string
	keyPrefix string
	logger    *logrus.Logger
}

func NewPhotoService(photos repository.PhotoRepository, store storage.Service, bucket, keyPrefix string, logger *logrus.Logger) PhotoService {
	return &photoService{
		photos:    photos,
		store:     store,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		logger:    logger,
	}
}

// Upload validates the file, pushes its bytes to the media store and
// then inserts the row. The two steps are not transactional: if the
// insert fails the remote object is already there and stays orphaned.
func (s *photoService) Upload(ctx context.Context, req UploadRequest) (*domain.Photo, error) {
	if req.Body == nil || req.FileName == "" {
		return nil, ErrNoFile
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	contentType := normalizeContentType(req.ContentType)
	if _, ok := allowedContentTypes[contentType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	key := uuid.NewString() + ext
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}
	object, err := s.store.Upload(ctx, s.bucket, storage.UploadInput{
		Key:         key,
		ContentType: contentType,
		Body:        req.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaStore, err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = req.FileName
	}

	photo := &domain.Photo{
		Title:        title,
		Description:  req.Description,
		StorageKey:   object.Key,
		URL:          object.URL,
		OriginalName: req.FileName,
		CategoryID:   req.CategoryID,
		IsFeatured:   req.IsFeatured,
		UploadedAt:   time.Now().UTC(),
	}
	if _, err := s.photos.Create(ctx, photo); err != nil {
		// The remote object is now orphaned. No compensation is
		// attempted here.
		return nil, fmt.Errorf("persist photo: %w", err)
	}
	return photo, nil
}

func (s *photoService) Get(ctx context.Context, id int64) (*domain.Photo, error) {
	return s.photos.Get(ctx, id)
}

func (s *photoService) List(ctx context.Context) ([]domain.Photo, error) {
	return s.photos.List(ctx)
}

func (s *photoService) Update(ctx context.Context, id int64, update repository.PhotoUpdate) error {
	return s.photos.Update(ctx, id, update)
}

// Delete removes the row after a best-effort delete of the remote
// object. A media store failure is logged and swallowed so it never
// blocks the delete.
func (s *photoService) Delete(ctx context.Context, id int64) error {
	photo, err := s.photos.Get(ctx, id)
	if err != nil {
		return err
	}

	if photo.StorageKey != "" {
		if err := s.store.Delete(ctx, s.bucket, photo.StorageKey); err != nil {
			s.logger.Warnf("delete media object %s: %v", photo.StorageKey, err)
		}
	}

	return s.photos.Delete(ctx, id)
}

func normalizeContentType(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	return contentType
}
