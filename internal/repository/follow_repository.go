package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/internal/model"
)

type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID string, status int16) error
	Get(ctx context.Context, followerID, followeeID string) (*model.FollowEdge, error)
	// UpdateStatus is key-guarded: the row must still be in fromStatus for
	// the write to land. Returns the number of rows changed.
	UpdateStatus(ctx context.Context, followerID, followeeID string, fromStatus, toStatus int16) (int64, error)
	Delete(ctx context.Context, followerID, followeeID string) (int64, error)
	ExistsApproved(ctx context.Context, followerID, followeeID string) (bool, error)
	ListByFollowee(ctx context.Context, followeeID string, status int16, offset, limit int) ([]*model.FollowEdge, error)
	ListByFollower(ctx context.Context, followerID string, status int16, offset, limit int) ([]*model.FollowEdge, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

// Create inserts a fresh edge. The unique pair index rejects a concurrent
// duplicate; gorm surfaces that as ErrDuplicatedKey.
func (r *followRepository) Create(ctx context.Context, followerID, followeeID string, status int16) error {
	e := &model.FollowEdge{
		ID:         uuid.New().String(),
		FollowerID: followerID,
		FolloweeID: followeeID,
		Status:     status,
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *followRepository) Get(ctx context.Context, followerID, followeeID string) (*model.FollowEdge, error) {
	var e model.FollowEdge
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *followRepository) UpdateStatus(ctx context.Context, followerID, followeeID string, fromStatus, toStatus int16) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.FollowEdge{}).
		Where("follower_id = ? AND followee_id = ? AND status = ?", followerID, followeeID, fromStatus).
		Update("status", toStatus)
	return res.RowsAffected, res.Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.FollowEdge{})
	return res.RowsAffected, res.Error
}

func (r *followRepository) ExistsApproved(ctx context.Context, followerID, followeeID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.FollowEdge{}).
		Where("follower_id = ? AND followee_id = ? AND status = ?", followerID, followeeID, model.FollowApproved).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRepository) ListByFollowee(ctx context.Context, followeeID string, status int16, offset, limit int) ([]*model.FollowEdge, error) {
	var res []*model.FollowEdge
	err := r.db.WithContext(ctx).
		Where("followee_id = ? AND status = ?", followeeID, status).
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *followRepository) ListByFollower(ctx context.Context, followerID string, status int16, offset, limit int) ([]*model.FollowEdge, error) {
	var res []*model.FollowEdge
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND status = ?", followerID, status).
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}
