package middleware

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgirmay/fps-trainer/internal/common/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) errors.AppError {
	t.Helper()
	var body errors.AppError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, errors.CodeInternalError, decode(t, rec).Code)
}

func TestJSONErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		status   int
	}{
		{"app error", errors.NotFound("lesson"), errors.CodeNotFound, http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("start: %w", errors.BadRequest("bad id")), errors.CodeBadRequest, http.StatusBadRequest},
		{"plain error", stderrors.New("disk on fire"), errors.CodeInternalError, http.StatusInternalServerError},
		{"nil error", nil, errors.CodeInternalError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { JSONErrorResponse(c, tt.err) })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec).Code)
		})
	}
}

func TestLoggerMiddleware_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	preflight := func(h gin.HandlerFunc, origin string) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(h)
		r.POST("/api/v1/lessons/1/start", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/api/v1/lessons/1/start", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight(CORSMiddleware([]string{"*"}), "http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = preflight(CORSMiddleware([]string{"http://localhost:3000"}), "http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = preflight(CORSMiddleware([]string{"http://localhost:3000"}), "http://evil.example")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
