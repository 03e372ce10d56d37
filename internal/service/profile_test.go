package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/apperr"
	"github.com/shelfmark/shelfmark/internal/model"
)

func TestCreateProfileGeneratesValidDefaultUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.profiles.Create(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.ID)
	assert.True(t, strings.HasPrefix(p.Username, "reader"))
	assert.NoError(t, env.access.username.Validate(p.Username))
	assert.Equal(t, model.VisibilityFollowersOnly, p.Visibility)

	// idempotent for the same account id
	again, err := env.profiles.Create(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, p.Username, again.Username)
}

func TestSetVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.mustProfile(t, "alice", model.VisibilityFollowersOnly)

	assert.ErrorIs(t, env.profiles.SetVisibility(ctx, "", model.VisibilityPublic), apperr.ErrNotAuthenticated)
	assert.ErrorIs(t, env.profiles.SetVisibility(ctx, alice.ID, "inherit"), apperr.ErrInvalidVisibility)
	assert.ErrorIs(t, env.profiles.SetVisibility(ctx, "ghost", model.VisibilityPublic), apperr.ErrProfileNotFound)

	require.NoError(t, env.profiles.SetVisibility(ctx, alice.ID, model.VisibilityPublic))
	var got model.Profile
	require.NoError(t, env.db.First(&got, "id = ?", alice.ID).Error)
	assert.Equal(t, model.VisibilityPublic, got.Visibility)
}

// Hidden and missing profiles answer with the same error.
func TestGetProfileDenialIsIndistinguishableFromMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustProfile(t, "hermit", model.VisibilityFollowersOnly)

	_, errHidden := env.profiles.Get(ctx, "", "hermit")
	_, errMissing := env.profiles.Get(ctx, "", "nobody")
	assert.ErrorIs(t, errHidden, apperr.ErrProfileNotFound)
	assert.ErrorIs(t, errMissing, apperr.ErrProfileNotFound)
	assert.Equal(t, errHidden, errMissing)
}
