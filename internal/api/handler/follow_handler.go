package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shelfmark/shelfmark/internal/api/middleware"
	"github.com/shelfmark/shelfmark/pkg/response"
)

type followRequest struct {
	FolloweeID string `json:"followee_id" binding:"required"`
}

// RequestFollow creates a pending follow request from the acting user.
// @Summary Request to follow a user
// @Tags follows
// @Accept json
// @Produce json
// @Param request body followRequest true "target user"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/follows [post]
func (h *Handler) RequestFollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.access.RequestFollow(c.Request.Context(), middleware.UserID(c), req.FolloweeID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

type respondRequest struct {
	FollowerID string `json:"follower_id" binding:"required"`
	Decision   string `json:"decision" binding:"required,oneof=approve reject"`
}

// RespondFollow lets the acting user decide a pending request aimed at them.
// @Summary Approve or reject a follow request
// @Tags follows
// @Accept json
// @Produce json
// @Param request body respondRequest true "decision"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/follows/respond [post]
func (h *Handler) RespondFollow(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.access.RespondFollow(c.Request.Context(), middleware.UserID(c), req.FollowerID, req.Decision); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

type removeEdgeRequest struct {
	FollowerID string `json:"follower_id" binding:"required"`
	FolloweeID string `json:"followee_id" binding:"required"`
}

// RemoveEdge deletes an edge the acting user participates in.
// @Summary Remove a follow edge
// @Tags follows
// @Accept json
// @Produce json
// @Param request body removeEdgeRequest true "edge"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/follows [delete]
func (h *Handler) RemoveEdge(c *gin.Context) {
	var req removeEdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.access.RemoveEdge(c.Request.Context(), middleware.UserID(c), req.FollowerID, req.FolloweeID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListPending lists follower ids awaiting the acting user's decision.
// @Summary List incoming pending follow requests
// @Tags follows
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/follows/pending [get]
func (h *Handler) ListPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	list, err := h.access.ListPendingRequests(c.Request.Context(), middleware.UserID(c), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListFollowing lists users the acting user follows (approved edges).
// @Summary List approved following
// @Tags follows
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/follows/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	list, err := h.access.ListFollowing(c.Request.Context(), middleware.UserID(c), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
