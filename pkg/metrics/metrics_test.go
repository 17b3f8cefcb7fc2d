package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/lessons/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("/lessons/:id", "GET", "200"))
	unmatched := testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "GET", "404"))

	for _, path := range []string{"/lessons/1", "/lessons/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(httpRequests.WithLabelValues("/lessons/:id", "GET", "200")))
	assert.Equal(t, unmatched+1, testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "GET", "404")))
}

func TestDomainCounters(t *testing.T) {
	started := testutil.ToFloat64(lessonsStarted)
	accuracy := testutil.ToFloat64(measurementsRecorded.WithLabelValues("accuracy"))
	hits := testutil.ToFloat64(viewCache.WithLabelValues("hit"))
	stale := testutil.ToFloat64(viewInvalidations)

	LessonStarted()
	MeasurementRecorded("accuracy")
	ViewCacheHit()
	ViewsInvalidated(3)

	assert.Equal(t, started+1, testutil.ToFloat64(lessonsStarted))
	assert.Equal(t, accuracy+1, testutil.ToFloat64(measurementsRecorded.WithLabelValues("accuracy")))
	assert.Equal(t, hits+1, testutil.ToFloat64(viewCache.WithLabelValues("hit")))
	assert.Equal(t, stale+3, testutil.ToFloat64(viewInvalidations))
}
