package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("lesson")

	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, "lesson not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "[NOT_FOUND] lesson not found", err.Error())
}

func TestInternal_IncludesDetails(t *testing.T) {
	err := Internal("failed to fetch lessons", "disk I/O error")

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "[INTERNAL_ERROR] failed to fetch lessons: disk I/O error", err.Error())
}

func TestUnavailable(t *testing.T) {
	err := Unavailable("database unreachable", "sql: database is closed")

	assert.Equal(t, CodeUnavailable, err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.Equal(t, "[SERVICE_UNAVAILABLE] database unreachable: sql: database is closed", err.Error())
}

func TestAs_UnwrapsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("start lesson: %w", NotFound("lesson"))

	appErr, ok := As(wrapped)

	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.True(t, IsNotFound(wrapped))
}

func TestAs_PlainError(t *testing.T) {
	_, ok := As(fmt.Errorf("boom"))

	assert.False(t, ok)
	assert.False(t, IsNotFound(fmt.Errorf("boom")))
	assert.False(t, IsNotFound(nil))
}
