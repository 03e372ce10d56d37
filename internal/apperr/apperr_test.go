package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatchingThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("rename: %w", ErrTaken)
	assert.ErrorIs(t, wrapped, ErrTaken)
	assert.NotErrorIs(t, wrapped, ErrReserved)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(ErrInvalidFormat))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("x: %w", ErrDuplicateFollowEdge)))
	assert.Equal(t, KindAuthorization, KindOf(ErrNotAuthenticated))
	assert.Equal(t, KindNotFound, KindOf(ErrEdgeNotFound))
	assert.Equal(t, Kind(0), KindOf(fmt.Errorf("plain")))
}
