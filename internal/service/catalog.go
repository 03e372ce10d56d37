package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/apperr"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

// CatalogService is the shelf glue. All read paths consult the access
// facade before returning a row; a denied read and a missing row are the
// same NotFound.
type CatalogService struct {
	catalog repository.CatalogRepository
	access  *AccessService
}

func NewCatalogService(catalog repository.CatalogRepository, access *AccessService) *CatalogService {
	return &CatalogService{catalog: catalog, access: access}
}

// AddItemInput carries the caller-supplied fields of a new shelf item.
type AddItemInput struct {
	Title      string
	Author     string
	ISBN       string
	Visibility string
}

func (s *CatalogService) AddItem(ctx context.Context, ownerID string, in AddItemInput) (*model.CatalogItem, error) {
	if ownerID == "" {
		return nil, apperr.ErrNotAuthenticated
	}
	visibility := in.Visibility
	if visibility == "" {
		visibility = model.VisibilityInherit
	}
	switch visibility {
	case model.VisibilityInherit, model.VisibilityPublic, model.VisibilityFollowersOnly:
	default:
		return nil, apperr.ErrInvalidVisibility
	}
	item := &model.CatalogItem{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Title:      in.Title,
		Author:     in.Author,
		ISBN:       in.ISBN,
		Visibility: visibility,
	}
	if err := s.catalog.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) GetItem(ctx context.Context, viewerID, itemID string) (*model.CatalogItem, error) {
	item, err := s.catalog.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.ErrItemNotFound
	}
	ok, err := s.access.CanViewCatalogItem(ctx, viewerID, item)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrItemNotFound
	}
	return item, nil
}

// ListShelf returns the subset of an owner's items the viewer may see. The
// profile gate runs first; per-item visibility is then applied row by row.
func (s *CatalogService) ListShelf(ctx context.Context, viewerID, ownerID string, page, pageSize int) ([]*model.CatalogItem, error) {
	ok, err := s.access.resolver.CanViewProfileID(ctx, viewerID, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrProfileNotFound
	}
	offset, limit := pageBounds(page, pageSize)
	items, err := s.catalog.ListByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, err
	}
	visible := make([]*model.CatalogItem, 0, len(items))
	for _, it := range items {
		ok, err := s.access.CanViewCatalogItem(ctx, viewerID, it)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, it)
		}
	}
	return visible, nil
}

// RemoveItem is owner-only; a foreign or missing item is the same NotFound.
func (s *CatalogService) RemoveItem(ctx context.Context, actingUserID, itemID string) error {
	if actingUserID == "" {
		return apperr.ErrNotAuthenticated
	}
	item, err := s.catalog.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.OwnerID != actingUserID {
		return apperr.ErrItemNotFound
	}
	if _, err := s.catalog.Delete(ctx, itemID); err != nil {
		return err
	}
	return nil
}
