package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shelfmark/shelfmark/internal/model"
)

type AliasRepository interface {
	GetByOldUsername(ctx context.Context, oldUsername string) (*model.UsernameAlias, error)
	// ExistsForOtherUser reports whether oldUsername is claimed as an alias
	// by anyone but userID. A user re-claiming their own former name is not
	// blocked by their own history.
	ExistsForOtherUser(ctx context.Context, oldUsername, userID string) (bool, error)
	Exists(ctx context.Context, oldUsername string) (bool, error)
	// RepointAll retargets every alias owned by userID at currentUsername.
	RepointAll(ctx context.Context, userID, currentUsername string) error
	Upsert(ctx context.Context, a *model.UsernameAlias) error
}

type aliasRepository struct {
	db *gorm.DB
}

func NewAliasRepository(db *gorm.DB) AliasRepository { return &aliasRepository{db: db} }

func (r *aliasRepository) GetByOldUsername(ctx context.Context, oldUsername string) (*model.UsernameAlias, error) {
	var a model.UsernameAlias
	err := r.db.WithContext(ctx).Where("old_username = ?", oldUsername).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *aliasRepository) ExistsForOtherUser(ctx context.Context, oldUsername, userID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.UsernameAlias{}).
		Where("old_username = ? AND user_id <> ?", oldUsername, userID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *aliasRepository) Exists(ctx context.Context, oldUsername string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.UsernameAlias{}).
		Where("old_username = ?", oldUsername).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *aliasRepository) RepointAll(ctx context.Context, userID, currentUsername string) error {
	return r.db.WithContext(ctx).
		Model(&model.UsernameAlias{}).
		Where("user_id = ?", userID).
		Update("current_username", currentUsername).Error
}

func (r *aliasRepository) Upsert(ctx context.Context, a *model.UsernameAlias) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "old_username"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_username", "user_id", "updated_at"}),
	}).Create(a).Error
}
