package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shelfmark/shelfmark/internal/api/middleware"
	"github.com/shelfmark/shelfmark/pkg/response"
)

// CreateProfile provisions the profile row for the authenticated account.
// Idempotent: an existing profile is returned as-is.
// @Summary Create the acting user's profile
// @Tags profiles
// @Produce json
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/profiles [post]
func (h *Handler) CreateProfile(c *gin.Context) {
	p, err := h.profiles.Create(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": p.ID, "username": p.Username, "visibility": p.Visibility})
}

// GetProfile is the guarded public read path. Hidden profiles 404 exactly
// like missing ones.
// @Summary View a profile by username
// @Tags profiles
// @Param username path string true "username"
// @Success 200 {object} response.Response{data=service.ProfileView}
// @Failure 404 {object} response.Response
// @Router /api/v1/profiles/{username} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	view, err := h.profiles.Get(c.Request.Context(), middleware.UserID(c), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

type visibilityRequest struct {
	Visibility string `json:"visibility" binding:"required,oneof=public followers_only"`
}

// SetVisibility flips the acting user's profile visibility.
// @Summary Change own profile visibility
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body visibilityRequest true "visibility"
// @Success 200 {object} response.Response
// @Router /api/v1/profiles/me/visibility [put]
func (h *Handler) SetVisibility(c *gin.Context) {
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.profiles.SetVisibility(c.Request.Context(), middleware.UserID(c), req.Visibility); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
