package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shelfmark/shelfmark/internal/api/middleware"
	"github.com/shelfmark/shelfmark/internal/service"
	"github.com/shelfmark/shelfmark/pkg/response"
)

type addItemRequest struct {
	Title      string `json:"title" binding:"required"`
	Author     string `json:"author"`
	ISBN       string `json:"isbn"`
	Visibility string `json:"visibility" binding:"omitempty,oneof=inherit public followers_only"`
}

// AddItem shelves a book for the acting user.
// @Summary Add a catalog item
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body addItemRequest true "item"
// @Success 200 {object} response.Response{data=model.CatalogItem}
// @Router /api/v1/items [post]
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := h.catalog.AddItem(c.Request.Context(), middleware.UserID(c), service.AddItemInput{
		Title:      req.Title,
		Author:     req.Author,
		ISBN:       req.ISBN,
		Visibility: req.Visibility,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// GetItem is the guarded item read path; hidden == missing.
// @Summary View a catalog item
// @Tags catalog
// @Param id path string true "item id"
// @Success 200 {object} response.Response{data=model.CatalogItem}
// @Failure 404 {object} response.Response
// @Router /api/v1/items/{id} [get]
func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.catalog.GetItem(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// ListShelf lists the visible part of a user's shelf.
// @Summary List a user's visible items
// @Tags catalog
// @Param owner_id path string true "owner id"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/shelves/{owner_id} [get]
func (h *Handler) ListShelf(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	items, err := h.catalog.ListShelf(c.Request.Context(), middleware.UserID(c), c.Param("owner_id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": items})
}

// RemoveItem unshelves one of the acting user's books.
// @Summary Remove a catalog item
// @Tags catalog
// @Param id path string true "item id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/items/{id} [delete]
func (h *Handler) RemoveItem(c *gin.Context) {
	if err := h.catalog.RemoveItem(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
