package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"biddashboard/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	require.Equal(t, logrus.InfoLevel, logger.New("").GetLevel())
	require.Equal(t, logrus.DebugLevel, logger.New(" DEBUG ").GetLevel())
	require.Equal(t, logrus.InfoLevel, logger.New("verbose").GetLevel())
}

func TestComponentFieldsJSON(t *testing.T) {
	l := logger.New("debug")
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.WithComponent("feed").WithFields(logger.Fields{"size": 3}).WithError(errors.New("boom")).Warn("tick failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "feed", entry["component"])
	require.Equal(t, "warning", entry["level"])
	require.Equal(t, "tick failed", entry["message"])
	require.Equal(t, "boom", entry["error"])
	require.EqualValues(t, 3, entry["size"])
	require.Contains(t, entry, "timestamp")
}

func TestConfigureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger.Configure("debug", logger.FileConfig{Path: path})
	defer logger.Configure("info", logger.FileConfig{})

	logger.GetLogger().WithComponent("test").Debug("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "written to file")

	logger.Configure("", logger.FileConfig{})
	require.Equal(t, logrus.InfoLevel, logger.GetLogger().GetLevel())
}
