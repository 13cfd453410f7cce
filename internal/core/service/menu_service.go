package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kusina/canteen-api/internal/api/metrics"
	"github.com/kusina/canteen-api/internal/core/domain"
	"github.com/kusina/canteen-api/internal/core/ports"
)

type MenuService struct {
	repo    ports.MenuRepository
	storage ports.ObjectStorage
	logger  zerolog.Logger
}

func NewMenuService(repo ports.MenuRepository, storage ports.ObjectStorage, logger zerolog.Logger) *MenuService {
	return &MenuService{repo: repo, storage: storage, logger: logger}
}

// List returns the catalog newest first. An empty catalog is a valid empty
// slice, not an error.
func (s *MenuService) List(ctx context.Context) ([]*domain.MenuItem, error) {
	return s.repo.List(ctx)
}

func (s *MenuService) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates input before any I/O, uploads the image first when one is
// supplied, and only then inserts the catalog row. A failed upload aborts the
// operation with no partial row.
func (s *MenuService) Create(ctx context.Context, input ports.CreateMenuItemInput) (*domain.MenuItem, error) {
	if err := domain.ValidateMenuInput(input.Name, input.Price); err != nil {
		return nil, err
	}

	imageURL, err := s.uploadImage(ctx, input.ImageBytes, input.ImageContentType)
	if err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    imageURL,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, item)
	if err != nil {
		// The uploaded blob is left behind; nothing references it and the
		// leak is accepted rather than compensated.
		s.logger.Error().Err(err).Str("image_url", imageURL).Msg("failed to insert menu item")
		return nil, err
	}

	s.logger.Info().Str("menu_id", created.ID).Str("name", created.Name).Msg("menu item created")
	return created, nil
}

// Update applies the same validation as Create. A new image uploads first and
// replaces image_url; without one the stored image_url is untouched.
func (s *MenuService) Update(ctx context.Context, id string, input ports.UpdateMenuItemInput) (*domain.MenuItem, error) {
	if err := domain.ValidateMenuInput(input.Name, input.Price); err != nil {
		return nil, err
	}

	patch := ports.MenuItemPatch{
		Name:        &input.Name,
		Price:       &input.Price,
		Description: &input.Description,
	}

	if len(input.ImageBytes) > 0 {
		imageURL, err := s.uploadImage(ctx, input.ImageBytes, input.ImageContentType)
		if err != nil {
			return nil, err
		}
		patch.ImageURL = &imageURL
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("menu_id", id).Msg("menu item updated")
	return updated, nil
}

// Delete is idempotent from the caller's perspective: removing an absent id
// succeeds. Orders referencing the id keep rendering with a fallback name.
func (s *MenuService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("menu_id", id).Msg("menu item deleted")
	return nil
}

// uploadImage stores the image under a generated unique key and returns its
// public URL. No image yields an empty URL and no storage call.
func (s *MenuService) uploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("menu_%d.jpg", time.Now().UnixMilli())
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("key", key).Msg("image upload failed")
		return "", fmt.Errorf("%w: %v", domain.ErrImageUpload, err)
	}

	metrics.ImageUploadsTotal.WithLabelValues("ok").Inc()
	return s.storage.PublicURL(key), nil
}
