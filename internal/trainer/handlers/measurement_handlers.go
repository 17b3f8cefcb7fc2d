package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jgirmay/fps-trainer/internal/common/errors"
	"github.com/jgirmay/fps-trainer/internal/common/middleware"
	"github.com/jgirmay/fps-trainer/internal/trainer/models"
	"github.com/jgirmay/fps-trainer/internal/trainer/services"
)

// RecordMeasurement records a performance reading for a lesson
// POST /api/v1/lessons/:id/measurements
func RecordMeasurement(c *gin.Context) {
	id, err := parseLessonID(c)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	var req models.RecordMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	measurement, err := services.RecordMeasurement(c.Request.Context(), id, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, measurement)
}
