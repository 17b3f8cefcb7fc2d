package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the trainer views and actions on rg
func RegisterRoutes(rg gin.IRouter) {
	lessons := rg.Group("/lessons")
	{
		lessons.GET("", ListLessons)
		lessons.GET("/:id", GetLesson)
		lessons.POST("/:id/start", StartLesson)
		lessons.POST("/:id/measurements", RecordMeasurement)
	}

	rg.GET("/progress", GetProgress)
	rg.GET("/measurement-kinds", GetMeasurementKinds)
}
