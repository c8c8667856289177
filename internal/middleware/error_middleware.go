package middleware

import (
	"fmt"
	"net/http"

	"contact-form/internal/transport/httpdto"
	"contact-form/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler logs errors attached with c.Error. Handlers normally write the
// response themselves; when they did not, a 500 envelope is sent.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.Error(c.Request.Context(), "request error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		}
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error()))
		}
	}
}

// Recovery turns a panic into a 500 error envelope.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if l != nil {
			l.Error(c.Request.Context(), "panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, httpdto.NewErrorResponse(fmt.Sprint(recovered)))
	})
}
