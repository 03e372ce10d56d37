package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/model"
)

func TestOwnerAlwaysSeesOwnProfileAndItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, vis := range []string{model.VisibilityPublic, model.VisibilityFollowersOnly, "garbage"} {
		owner := env.mustProfile(t, "owner"+vis[:3], vis)
		ok, err := env.access.CanViewProfile(ctx, owner.ID, owner)
		require.NoError(t, err)
		assert.True(t, ok, "owner must see own profile with visibility %q", vis)

		for _, itemVis := range []string{model.VisibilityInherit, model.VisibilityPublic, model.VisibilityFollowersOnly, "corrupt"} {
			item := env.mustItem(t, owner.ID, "a book", itemVis)
			ok, err := env.access.CanViewCatalogItem(ctx, owner.ID, item)
			require.NoError(t, err)
			assert.True(t, ok, "owner must see own item with visibility %q", itemVis)
		}
	}
}

func TestPublicProfileVisibleToAnyoneIncludingAnonymous(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	target := env.mustProfile(t, "target", model.VisibilityPublic)
	stranger := env.mustProfile(t, "stranger", model.VisibilityFollowersOnly)

	for _, viewer := range []string{"", stranger.ID} {
		ok, err := env.access.CanViewProfile(ctx, viewer, target)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestFollowersOnlyProfileRequiresApprovedEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	target := env.mustProfile(t, "hermit", model.VisibilityFollowersOnly)
	viewer := env.mustProfile(t, "visitor", model.VisibilityPublic)

	ok, err := env.access.CanViewProfile(ctx, viewer.ID, target)
	require.NoError(t, err)
	assert.False(t, ok, "no edge yet")

	ok, err = env.access.CanViewProfile(ctx, "", target)
	require.NoError(t, err)
	assert.False(t, ok, "anonymous never passes followers_only")

	// pending is not enough
	require.NoError(t, env.access.RequestFollow(ctx, viewer.ID, target.ID))
	ok, err = env.access.CanViewProfile(ctx, viewer.ID, target)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, env.access.RespondFollow(ctx, target.ID, viewer.ID, DecisionApprove))
	ok, err = env.access.CanViewProfile(ctx, viewer.ID, target)
	require.NoError(t, err)
	assert.True(t, ok)

	// removing the edge flips it back
	require.NoError(t, env.access.RemoveEdge(ctx, viewer.ID, viewer.ID, target.ID))
	ok, err = env.access.CanViewProfile(ctx, viewer.ID, target)
	require.NoError(t, err)
	assert.False(t, ok)
}

// One effectively-public item makes its author's followers-only profile
// minimally viewable. Intentional discovery behavior, pinned here.
func TestPublicItemMakesProfileDiscoverable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.mustProfile(t, "author", model.VisibilityFollowersOnly)

	ok, err := env.access.CanViewProfile(ctx, "", author)
	require.NoError(t, err)
	assert.False(t, ok)

	env.mustItem(t, author.ID, "hidden notes", model.VisibilityFollowersOnly)
	ok, err = env.access.CanViewProfile(ctx, "", author)
	require.NoError(t, err)
	assert.False(t, ok, "followers-only item does not open the profile")

	// an inherit item on a followers-only profile is not public either
	env.mustItem(t, author.ID, "inherited", model.VisibilityInherit)
	ok, err = env.access.CanViewProfile(ctx, "", author)
	require.NoError(t, err)
	assert.False(t, ok)

	env.mustItem(t, author.ID, "published review", model.VisibilityPublic)
	ok, err = env.access.CanViewProfile(ctx, "", author)
	require.NoError(t, err)
	assert.True(t, ok, "a single public item opens the profile")
}

func TestUnknownProfileVisibilityIsMostRestrictive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	target := env.mustProfile(t, "corrupted", "very_visible")
	viewer := env.mustProfile(t, "viewer", model.VisibilityPublic)

	ok, err := env.access.CanViewProfile(ctx, viewer.ID, target)
	require.NoError(t, err)
	assert.False(t, ok)

	env.mustEdge(t, viewer.ID, target.ID, model.FollowApproved)
	ok, err = env.access.CanViewProfile(ctx, viewer.ID, target)
	require.NoError(t, err)
	assert.True(t, ok, "approved follower passes the restrictive fallback")
}

func TestCatalogItemVisibilityMatrix(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	publicOwner := env.mustProfile(t, "openshelf", model.VisibilityPublic)
	privateOwner := env.mustProfile(t, "closedshelf", model.VisibilityFollowersOnly)
	follower := env.mustProfile(t, "fan", model.VisibilityPublic)
	env.mustEdge(t, follower.ID, privateOwner.ID, model.FollowApproved)
	env.mustEdge(t, follower.ID, publicOwner.ID, model.FollowApproved)

	cases := []struct {
		name     string
		ownerID  string
		itemVis  string
		viewerID string
		want     bool
	}{
		{"public item, anonymous", privateOwner.ID, model.VisibilityPublic, "", true},
		{"followers_only item, anonymous", publicOwner.ID, model.VisibilityFollowersOnly, "", false},
		{"followers_only item, approved follower", privateOwner.ID, model.VisibilityFollowersOnly, follower.ID, true},
		{"inherit from public profile, anonymous", publicOwner.ID, model.VisibilityInherit, "", true},
		{"inherit from private profile, anonymous", privateOwner.ID, model.VisibilityInherit, "", false},
		{"inherit from private profile, approved follower", privateOwner.ID, model.VisibilityInherit, follower.ID, true},
		{"unknown item visibility, anonymous", publicOwner.ID, "corrupt", "", false},
		{"unknown item visibility, approved follower", publicOwner.ID, "corrupt", follower.ID, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := env.mustItem(t, tc.ownerID, tc.name, tc.itemVis)
			got, err := env.access.CanViewCatalogItem(ctx, tc.viewerID, item)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// An inherit item follows the owner's profile visibility live, with no
// snapshotting.
func TestInheritTracksOwnerVisibilityLive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mustProfile(t, "shifty", model.VisibilityPublic)
	item := env.mustItem(t, owner.ID, "a novel", model.VisibilityInherit)

	ok, err := env.access.CanViewCatalogItem(ctx, "", item)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, env.profiles.SetVisibility(ctx, owner.ID, model.VisibilityFollowersOnly))
	ok, err = env.access.CanViewCatalogItem(ctx, "", item)
	require.NoError(t, err)
	assert.False(t, ok, "flipping the profile hides the item with no other change")
}

// RawProfileIsPublic must not recurse into the has-public-item clause: an
// inherit item whose owner is followers-only stays hidden even when the
// owner also has some other public item (which does open the profile).
func TestInheritDoesNotRecurseIntoDiscoverability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mustProfile(t, "writer", model.VisibilityFollowersOnly)
	inheritItem := env.mustItem(t, owner.ID, "drafts", model.VisibilityInherit)
	env.mustItem(t, owner.ID, "published", model.VisibilityPublic)

	ok, err := env.access.CanViewProfile(ctx, "", owner)
	require.NoError(t, err)
	assert.True(t, ok, "public item makes the profile viewable")

	ok, err = env.access.CanViewCatalogItem(ctx, "", inheritItem)
	require.NoError(t, err)
	assert.False(t, ok, "but the inherit item stays hidden")
}
