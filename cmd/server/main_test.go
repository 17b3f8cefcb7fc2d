package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgirmay/fps-trainer/internal/common/database/dbtest"
	"github.com/jgirmay/fps-trainer/internal/common/health"
	"github.com/jgirmay/fps-trainer/internal/trainer/repository"
	"github.com/jgirmay/fps-trainer/internal/trainer/services"
	"github.com/jgirmay/fps-trainer/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Env: "test", CORSOrigins: []string{"*"}},
	}
}

func TestRouter_ServesAPIHealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	require.NoError(t, repository.Migrate(db))

	checker := health.NewHealthChecker(db, version)
	checker.AddCheck("curriculum", curriculumCheck)
	r := newRouter(testConfig(), checker)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)

	rec = get("/api/v1/lessons")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = get("/health")
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.NoError(t, curriculumCheck(context.Background()))

	rec = get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "fps_trainer_http_requests_total"))
}

func TestCurriculumCheck_EmptyDatabase(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, repository.Migrate(db))

	assert.Error(t, curriculumCheck(context.Background()))

	_, err := services.EnsureSeeded(context.Background())
	require.NoError(t, err)
	assert.NoError(t, curriculumCheck(context.Background()))
}

func TestEnsureSQLiteDir(t *testing.T) {
	base := t.TempDir()

	require.NoError(t, ensureSQLiteDir(filepath.Join(base, "a", "fps.db")))
	_, err := os.Stat(filepath.Join(base, "a"))
	assert.NoError(t, err)

	require.NoError(t, ensureSQLiteDir("file:"+filepath.Join(base, "b", "fps.db")+"?_foreign_keys=1"))
	_, err = os.Stat(filepath.Join(base, "b"))
	assert.NoError(t, err)

	assert.NoError(t, ensureSQLiteDir(":memory:"))
}
