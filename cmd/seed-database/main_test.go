package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_IdempotentOnFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "fps.db") + "?_foreign_keys=1"
	cfg := Config{DBType: "sqlite", DSN: dsn}

	inserted, err := seed(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(5), inserted)

	inserted, err = seed(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inserted)
}

func TestSeed_UnsupportedType(t *testing.T) {
	_, err := seed(context.Background(), Config{DBType: "mysql", DSN: "x"})
	assert.Error(t, err)
}
