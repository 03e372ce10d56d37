package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shelfmark/shelfmark/internal/apperr"
)

func TestErrorMapsTaxonomyKindsToStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.ErrInvalidFormat, http.StatusUnprocessableEntity},
		{"conflict", apperr.ErrTaken, http.StatusConflict},
		{"authorization", apperr.ErrNotOwner, http.StatusForbidden},
		{"not found", apperr.ErrProfileNotFound, http.StatusNotFound},
		{"wrapped sentinel", fmt.Errorf("rename: %w", apperr.ErrTaken), http.StatusConflict},
		{"infrastructure", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			Error(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

// Authorization and not-found bodies never echo the target resource.
func TestErrorNeverRevealsResourceExistence(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, apperr.ErrProfileNotFound)
	assert.Contains(t, w.Body.String(), "not found")
	assert.NotContains(t, w.Body.String(), "profile_not_found")
}
