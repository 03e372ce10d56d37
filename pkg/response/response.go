// Package response is the JSON envelope used by every handler.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfmark/shelfmark/internal/apperr"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Response{Code: http.StatusUnauthorized, Message: msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Code: http.StatusNotFound, Message: msg})
}

func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, Message: err.Error()})
}

// Error maps a service error onto the envelope by taxonomy kind. Validation
// and conflict messages pass through verbatim for user correction; not-found
// and authorization-on-read collapse into the same 404 shape upstream.
func Error(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		InternalError(c, err)
		return
	}
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		c.JSON(http.StatusUnprocessableEntity, Response{Code: http.StatusUnprocessableEntity, Message: ae.Message, Data: gin.H{"error": ae.Code}})
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, Response{Code: http.StatusConflict, Message: ae.Message, Data: gin.H{"error": ae.Code}})
	case apperr.KindAuthorization:
		// never confirms whether the target exists
		c.JSON(http.StatusForbidden, Response{Code: http.StatusForbidden, Message: "not allowed", Data: gin.H{"error": ae.Code}})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, Response{Code: http.StatusNotFound, Message: "not found"})
	default:
		InternalError(c, err)
	}
}
