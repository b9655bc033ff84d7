package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*ParquetHandler, string) {
	t.Helper()
	dir := t.TempDir()
	next := slog.NewTextHandler(io.Discard, nil)
	h, err := NewParquetHandler(next, dir)
	require.NoError(t, err)
	return h, dir
}

func TestOnlyErrorsPersisted(t *testing.T) {
	h, dir := newTestHandler(t)
	logger := slog.New(h)

	logger.Info("query complete", "query", "ac_lines")
	logger.Error("query failed", "query", "ac_lines", "correlation_id", "abc-123")
	require.NoError(t, h.Flush())

	files, err := filepath.Glob(filepath.Join(dir, "query_errors_*.parquet"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	records, err := parquet.ReadFile[LogRecord](files[0])
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "query failed", records[0].Message)
	assert.Equal(t, "ac_lines", records[0].Query)
	assert.Equal(t, "abc-123", records[0].CorrelationID)
	assert.Equal(t, "ERROR", records[0].Level)
}

func TestFlushOnEmptyBuffer(t *testing.T) {
	h, dir := newTestHandler(t)
	require.NoError(t, h.Flush())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHandlerDelegatesEnabled(t *testing.T) {
	dir := t.TempDir()
	next := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn})
	h, err := NewParquetHandler(next, dir)
	require.NoError(t, err)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}
