package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfmark/shelfmark/internal/api/middleware"
	"github.com/shelfmark/shelfmark/pkg/response"
)

type renameRequest struct {
	Username string `json:"username" binding:"required,username"`
}

// Rename changes the acting user's username atomically and records the old
// name as a permanent redirect.
// @Summary Rename the acting user
// @Tags usernames
// @Accept json
// @Produce json
// @Param request body renameRequest true "new username"
// @Success 200 {object} response.Response{data=service.RenameResult}
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/profiles/me/username [put]
func (h *Handler) Rename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := h.access.Rename(c.Request.Context(), middleware.UserID(c), req.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// CheckAvailability is the unauthenticated live-typing check.
// @Summary Check whether a username can ever be claimed
// @Tags usernames
// @Param username path string true "candidate username"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/usernames/{username}/availability [get]
func (h *Handler) CheckAvailability(c *gin.Context) {
	available, err := h.access.CheckAvailability(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"available": available})
}

// ResolveRedirect keeps old vanity URLs alive: canonical names answer 200,
// historical names answer 301 at their current holder.
// @Summary Resolve a possibly historical username
// @Tags usernames
// @Param username path string true "requested username"
// @Success 200 {object} response.Response{data=service.RedirectResult}
// @Success 301 {object} response.Response{data=service.RedirectResult}
// @Failure 404 {object} response.Response
// @Router /api/v1/usernames/{username}/redirect [get]
func (h *Handler) ResolveRedirect(c *gin.Context) {
	res, err := h.access.ResolveRedirect(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if res.Canonical {
		response.Success(c, res)
		return
	}
	c.JSON(http.StatusMovedPermanently, response.Response{
		Code:    http.StatusMovedPermanently,
		Message: "moved permanently",
		Data:    res,
	})
}
