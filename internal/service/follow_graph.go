package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/internal/apperr"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
	"github.com/shelfmark/shelfmark/pkg/logger"
)

// Follow decisions accepted by RespondFollow.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// FollowGraphService drives the edge state machine:
// absent -> pending -> {approved, rejected} -> absent (via removal).
// Every operation checks current state before transitioning, so a retried
// call either no-ops or returns the same terminal error.
type FollowGraphService struct {
	profiles repository.ProfileRepository
	follows  repository.FollowRepository
}

func NewFollowGraphService(profiles repository.ProfileRepository, follows repository.FollowRepository) *FollowGraphService {
	return &FollowGraphService{profiles: profiles, follows: follows}
}

// RequestFollow creates a pending edge follower -> followee. Any existing
// edge for the pair, whatever its status, is a conflict: the pair must be
// removed before it can be re-requested.
func (s *FollowGraphService) RequestFollow(ctx context.Context, followerID, followeeID string) error {
	if followerID == "" {
		return apperr.ErrNotAuthenticated
	}
	if followerID == followeeID {
		return apperr.ErrSelfFollow
	}
	target, err := s.profiles.GetByID(ctx, followeeID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperr.ErrProfileNotFound
	}
	existing, err := s.follows.Get(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.ErrDuplicateFollowEdge
	}
	if err := s.follows.Create(ctx, followerID, followeeID, model.FollowPending); err != nil {
		// lost a race on the unique pair index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrDuplicateFollowEdge
		}
		return err
	}
	return nil
}

// RespondFollow lets the followee approve or reject a pending request.
func (s *FollowGraphService) RespondFollow(ctx context.Context, followeeID, followerID, decision string) error {
	if followeeID == "" {
		return apperr.ErrNotAuthenticated
	}
	var to int16
	switch decision {
	case DecisionApprove:
		to = model.FollowApproved
	case DecisionReject:
		to = model.FollowRejected
	default:
		return apperr.ErrInvalidDecision
	}

	edge, err := s.follows.Get(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if edge == nil {
		// also covers a caller who is not the followee: the pair lookup is
		// keyed on the acting user, so somebody else's edge looks absent
		return apperr.ErrEdgeNotFound
	}
	if edge.Status == to {
		// retried call with the same decision
		return nil
	}
	if edge.Status != model.FollowPending {
		return apperr.ErrEdgeAlreadyDecided
	}

	n, err := s.follows.UpdateStatus(ctx, followerID, followeeID, model.FollowPending, to)
	if err != nil {
		return err
	}
	if n == 0 {
		// a concurrent responder got there first; re-read to keep retries
		// deterministic
		edge, err = s.follows.Get(ctx, followerID, followeeID)
		if err != nil {
			return err
		}
		if edge == nil {
			return apperr.ErrEdgeNotFound
		}
		if edge.Status == to {
			return nil
		}
		return apperr.ErrEdgeAlreadyDecided
	}
	logger.Info("follow request decided",
		zap.String("follower", followerID),
		zap.String("followee", followeeID),
		zap.String("decision", decision))
	return nil
}

// RemoveEdge deletes the edge in any state. Either participant may do it.
func (s *FollowGraphService) RemoveEdge(ctx context.Context, requesterID, followerID, followeeID string) error {
	if requesterID == "" {
		return apperr.ErrNotAuthenticated
	}
	if requesterID != followerID && requesterID != followeeID {
		return apperr.ErrNotOwner
	}
	n, err := s.follows.Delete(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrEdgeNotFound
	}
	return nil
}

// ListPendingRequests returns follower ids waiting on the followee.
func (s *FollowGraphService) ListPendingRequests(ctx context.Context, followeeID string, page, pageSize int) ([]string, error) {
	if followeeID == "" {
		return nil, apperr.ErrNotAuthenticated
	}
	offset, limit := pageBounds(page, pageSize)
	edges, err := s.follows.ListByFollowee(ctx, followeeID, model.FollowPending, offset, limit)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(edges))
	for i, e := range edges {
		res[i] = e.FollowerID
	}
	return res, nil
}

// ListFollowing returns followee ids the user has an approved edge to.
func (s *FollowGraphService) ListFollowing(ctx context.Context, followerID string, page, pageSize int) ([]string, error) {
	if followerID == "" {
		return nil, apperr.ErrNotAuthenticated
	}
	offset, limit := pageBounds(page, pageSize)
	edges, err := s.follows.ListByFollower(ctx, followerID, model.FollowApproved, offset, limit)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(edges))
	for i, e := range edges {
		res[i] = e.FolloweeID
	}
	return res, nil
}

func pageBounds(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return (page - 1) * pageSize, pageSize
}
