package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jgirmay/fps-trainer/internal/trainer/services"
)

// GetProgress serves the progress summary view
// GET /api/v1/progress
func GetProgress(c *gin.Context) {
	serveView(c, services.ViewProgressSummary, func(ctx context.Context) (interface{}, error) {
		return services.GetProgressSummary(ctx)
	}, nil)
}
