package zaplog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitZapLogWritesJSONToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "esxtpid.log")
	cfg := LoggerCfg
	cfg.LogPath = logPath
	cfg.Level = zapcore.DebugLevel
	cfg.Name = "test"

	logger := InitZapLog(&cfg)
	logger.Debug("Getting VLAN TPID", zap.String("interface", "vmnic1"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "Getting VLAN TPID", entry["msg"])
	assert.Equal(t, "vmnic1", entry["interface"])
	assert.Equal(t, "test", entry["logger"])
	assert.EqualValues(t, os.Getpid(), entry["pid"])
}

func TestInitZapLogHonoursLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "esxtpid.log")
	cfg := LoggerCfg
	cfg.LogPath = logPath
	cfg.Level = zapcore.WarnLevel

	logger := InitZapLog(&cfg)
	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}
