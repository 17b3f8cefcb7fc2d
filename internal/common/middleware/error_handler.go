package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jgirmay/fps-trainer/internal/common/errors"
	"github.com/jgirmay/fps-trainer/pkg/logger"
)

// ErrorHandler middleware catches panics and converts them to proper error responses
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.String("path", c.Request.URL.Path),
					zap.String("panic", fmt.Sprint(r)),
					zap.Stack("stack"),
				)
				appErr := errors.Internal("internal server error", "")
				c.AbortWithStatusJSON(appErr.Status, appErr)
			}
		}()
		c.Next()
	}
}

// JSONErrorResponse wraps errors in consistent JSON format
func JSONErrorResponse(c *gin.Context, err error) {
	if err == nil {
		err = errors.Internal("internal server error", "")
	}
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Internal("internal server error", err.Error())
	}
	if appErr.Status >= 500 {
		logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(appErr.Status, appErr)
}
