package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	InitLogger(Options{Level: "warn", File: path, MaxSize: 1})

	Sugar.Info("不会写入")
	zap.S().Warnw("写入日志", "k", "v")
	_ = Logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "写入日志")
	assert.NotContains(t, string(data), "不会写入")
}

func TestInitLoggerBadLevelFallsBackToInfo(t *testing.T) {
	InitLogger(Options{Level: "loud"})
	assert.True(t, Logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, Logger.Core().Enabled(zap.DebugLevel))
}
