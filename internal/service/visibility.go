package service

import (
	"context"

	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

// VisibilityResolver answers "can viewer X see target Y". It is stateless
// and caches nothing; every call reflects the latest committed rows.
//
// An empty viewer id means an anonymous caller. Anonymous viewers only ever
// pass on public targets. The owner always passes, whatever the visibility
// column holds. Unrecognized visibility values resolve to the most
// restrictive reading.
type VisibilityResolver struct {
	profiles repository.ProfileRepository
	follows  repository.FollowRepository
	catalog  repository.CatalogRepository
}

func NewVisibilityResolver(profiles repository.ProfileRepository, follows repository.FollowRepository, catalog repository.CatalogRepository) *VisibilityResolver {
	return &VisibilityResolver{profiles: profiles, follows: follows, catalog: catalog}
}

// rawProfileIsPublic reads only the profile's own visibility flag. It must
// not consult the owner's items: item visibility depends on this predicate,
// so recursing there would make the two rules circular.
func rawProfileIsPublic(p *model.Profile) bool {
	return p.Visibility == model.VisibilityPublic
}

// IsApprovedFollower reports whether an approved edge viewer -> target exists.
func (v *VisibilityResolver) IsApprovedFollower(ctx context.Context, viewerID, targetID string) (bool, error) {
	if viewerID == "" {
		return false, nil
	}
	return v.follows.ExistsApproved(ctx, viewerID, targetID)
}

// CanViewProfile implements the profile rule. The last clause is deliberate
// discoverability behavior: one effectively-public catalog item makes its
// author's profile minimally viewable even when the profile itself is
// followers-only.
func (v *VisibilityResolver) CanViewProfile(ctx context.Context, viewerID string, target *model.Profile) (bool, error) {
	if target == nil {
		return false, nil
	}
	if viewerID == target.ID {
		return true, nil
	}
	public := rawProfileIsPublic(target)
	if public {
		return true, nil
	}
	if viewerID != "" {
		ok, err := v.follows.ExistsApproved(ctx, viewerID, target.ID)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return v.catalog.OwnerHasPublicItem(ctx, target.ID, public)
}

// CanViewProfileID is CanViewProfile for callers holding only the target id.
// A missing target is simply not viewable.
func (v *VisibilityResolver) CanViewProfileID(ctx context.Context, viewerID, targetID string) (bool, error) {
	target, err := v.profiles.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}
	return v.CanViewProfile(ctx, viewerID, target)
}

// CanViewCatalogItem implements the item rule. "inherit" defers to the
// owner's current raw profile visibility, evaluated here and now, never
// snapshotted.
func (v *VisibilityResolver) CanViewCatalogItem(ctx context.Context, viewerID string, item *model.CatalogItem) (bool, error) {
	if item == nil {
		return false, nil
	}
	if viewerID == item.OwnerID {
		return true, nil
	}
	switch item.Visibility {
	case model.VisibilityPublic:
		return true, nil
	case model.VisibilityFollowersOnly:
		return v.IsApprovedFollower(ctx, viewerID, item.OwnerID)
	case model.VisibilityInherit:
		owner, err := v.profiles.GetByID(ctx, item.OwnerID)
		if err != nil {
			return false, err
		}
		if owner != nil && rawProfileIsPublic(owner) {
			return true, nil
		}
		return v.IsApprovedFollower(ctx, viewerID, item.OwnerID)
	default:
		// unknown value: inherit semantics with the public-profile door shut
		return v.IsApprovedFollower(ctx, viewerID, item.OwnerID)
	}
}
