package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/NeuralTrust/AgeLock/pkg/infra/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{level: "debug", want: logrus.DebugLevel},
		{level: "WARN", want: logrus.WarnLevel},
		{level: "nonsense", want: logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, closer, err := logger.NewLogger(logger.Config{Level: tt.level})
			require.NoError(t, err)
			defer func() { _ = closer.Close() }()
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	dir := t.TempDir()
	l, closer, err := logger.NewLogger(logger.Config{Level: "info", Dir: dir, File: "test.log"})
	require.NoError(t, err)
	l.ReplaceHooks(make(logrus.LevelHooks))

	l.WithField("rule", "malicious_domain").Info("Known malicious site")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "Known malicious site", entry["msg"])
	assert.Equal(t, "malicious_domain", entry["rule"])
	assert.Contains(t, entry, "time")
}

func TestConsoleHook(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&bytes.Buffer{})
	l.SetFormatter(&logrus.JSONFormatter{})
	l.AddHook(logger.NewConsoleHook(&buf))

	l.Warn("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}
