package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/internal/model"
)

type CatalogRepository interface {
	Create(ctx context.Context, item *model.CatalogItem) error
	GetByID(ctx context.Context, id string) (*model.CatalogItem, error)
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*model.CatalogItem, error)
	Delete(ctx context.Context, id string) (int64, error)
	// OwnerHasPublicItem reports whether any of the owner's items is
	// effectively public: its own visibility is public, or it inherits
	// and the owner's raw profile visibility is public.
	OwnerHasPublicItem(ctx context.Context, ownerID string, profileIsPublic bool) (bool, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepository{db: db} }

func (r *catalogRepository) Create(ctx context.Context, item *model.CatalogItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogRepository) GetByID(ctx context.Context, id string) (*model.CatalogItem, error) {
	var it model.CatalogItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *catalogRepository) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*model.CatalogItem, error) {
	var res []*model.CatalogItem
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *catalogRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CatalogItem{})
	return res.RowsAffected, res.Error
}

func (r *catalogRepository) OwnerHasPublicItem(ctx context.Context, ownerID string, profileIsPublic bool) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.CatalogItem{}).
		Where("owner_id = ?", ownerID)
	if profileIsPublic {
		q = q.Where("visibility IN ?", []string{model.VisibilityPublic, model.VisibilityInherit})
	} else {
		q = q.Where("visibility = ?", model.VisibilityPublic)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
