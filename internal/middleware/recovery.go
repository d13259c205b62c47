package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/b3dash/internal/domain/dto"
	"github.com/guttosm/b3dash/internal/logger"
)

// RecoveryMiddleware turns a handler panic into a logged stack trace and a 500
// JSON body. http.ErrAbortHandler is re-raised so net/http drops the connection.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(r)
			}

			cause := fmt.Errorf("%v", r)
			rid, _ := c.Get(RequestIDKey)
			logger.L().Error().
				Str("request_id", toString(rid)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Err(cause).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", cause))
		}()

		c.Next()
	}
}
