package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jgirmay/fps-trainer/internal/common/cache"
	"github.com/jgirmay/fps-trainer/internal/common/errors"
	"github.com/jgirmay/fps-trainer/internal/common/middleware"
	"github.com/jgirmay/fps-trainer/internal/trainer/models"
	"github.com/jgirmay/fps-trainer/internal/trainer/services"
	"github.com/jgirmay/fps-trainer/pkg/logger"
)

// ViewCacheHeader reports whether a view was served from the cache.
const ViewCacheHeader = "X-View-Cache"

const databaseUnavailableMessage = "Unable to connect to database. Please check your connection."

var (
	viewMu    sync.RWMutex
	viewCache cache.ViewCache = cache.NopCache{}
	viewGen   *cache.Generation
	viewTTL   time.Duration = time.Minute
)

// SetViewCache sets where rendered views are kept and for how long. gen is
// the invalidation counter returned by cache.InvalidateOn for c.
func SetViewCache(c cache.ViewCache, ttl time.Duration, gen *cache.Generation) {
	if c == nil {
		c = cache.NopCache{}
	}
	viewMu.Lock()
	viewCache, viewTTL, viewGen = c, ttl, gen
	viewMu.Unlock()
}

func currentViewCache() (cache.ViewCache, time.Duration, *cache.Generation) {
	viewMu.RLock()
	defer viewMu.RUnlock()
	return viewCache, viewTTL, viewGen
}

// serveView writes the cached view under key, or renders, caches and writes
// it. Render failures go to fail, or to JSONErrorResponse when fail is nil.
// A view is only kept when no invalidation ran between render and store.
func serveView(c *gin.Context, key string, render func(ctx context.Context) (interface{}, error), fail func(*gin.Context, error)) {
	vc, ttl, gen := currentViewCache()
	ctx := c.Request.Context()
	seen := gen.Current()

	if body, ok := vc.Get(ctx, key); ok {
		c.Header(ViewCacheHeader, "hit")
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	view, err := render(ctx)
	if err != nil {
		if fail == nil {
			fail = middleware.JSONErrorResponse
		}
		fail(c, err)
		return
	}
	body, err := json.Marshal(view)
	if err != nil {
		middleware.JSONErrorResponse(c, errors.Internal("failed to render view", err.Error()))
		return
	}

	if gen.Current() == seen {
		vc.Set(ctx, key, body, ttl)
		// An invalidation during Set may have run before the value landed.
		if gen.Current() != seen {
			vc.Delete(ctx, key)
		}
	}
	c.Header(ViewCacheHeader, "miss")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func parseLessonID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.BadRequest("invalid lesson id")
	}
	return uint(id), nil
}

// ListLessons serves the lesson list view
// GET /api/v1/lessons
func ListLessons(c *gin.Context) {
	serveView(c, services.ViewLessonList, func(ctx context.Context) (interface{}, error) {
		return services.ListLessons(ctx)
	}, lessonListUnavailable)
}

// lessonListUnavailable keeps the list view renderable when storage is down.
func lessonListUnavailable(c *gin.Context, err error) {
	appErr := errors.Unavailable(databaseUnavailableMessage, err.Error())
	logger.Error("failed to load lesson list",
		zap.String("code", appErr.Code),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(appErr.Status, models.LessonListResponse{
		Lessons: []models.LessonSummary{},
		Error:   appErr.Message,
	})
}

// GetLesson serves one lesson's detail view
// GET /api/v1/lessons/:id
func GetLesson(c *gin.Context) {
	id, err := parseLessonID(c)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	serveView(c, services.LessonViewKey(id), func(ctx context.Context) (interface{}, error) {
		return services.GetLesson(ctx, id)
	}, nil)
}

// StartLesson starts or restarts practice on a lesson
// POST /api/v1/lessons/:id/start
func StartLesson(c *gin.Context) {
	id, err := parseLessonID(c)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	progress, err := services.StartLesson(c.Request.Context(), id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetMeasurementKinds lists the kinds a measurement can be recorded as
// GET /api/v1/measurement-kinds
func GetMeasurementKinds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"kinds": services.MeasurementKinds()})
}
