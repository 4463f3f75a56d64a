package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conorfennell/myeng/internal/storage"
)

func openStore(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "service.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func background() context.Context {
	return context.Background()
}

var nopLogger = zap.NewNop()
