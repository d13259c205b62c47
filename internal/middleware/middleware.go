package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/b3dash/internal/domain/dto"
)

// ErrorHandler renders errors attached with c.Error as a dto.ErrorResponse when
// the handler did not write a response itself. Status defaults to 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last()
	var resp dto.ErrorResponse
	if !errors.As(last.Err, &resp) {
		resp = dto.NewErrorResponse("Internal server error", last.Err)
	}

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithError stops the chain with status and a JSON error body, and records
// err on the context so the request logger sees it.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	resp := dto.NewErrorResponse(message, err)
	_ = c.Error(resp)
	c.AbortWithStatusJSON(status, resp)
}
