package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config selects the level and the log file. An empty Dir logs to stdout
// only.
type Config struct {
	Level string
	Dir   string
	File  string
}

func (c Config) level() logrus.Level {
	lvl := c.Level
	if lvl == "" {
		lvl = os.Getenv("LOG_LEVEL")
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(lvl))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// NewLogger builds the JSON logger. Decisions are logged on the request path,
// so file output goes through an async buffered writer and console output
// through a hook. The returned closer flushes the file.
func NewLogger(cfg Config) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(cfg.level())

	if cfg.Dir == "" {
		logger.SetOutput(os.Stdout)
		return logger, io.NopCloser(nil), nil
	}

	file := cfg.File
	if file == "" {
		file = "agelock.log"
	}
	dir := filepath.Clean(cfg.Dir)
	logFile := filepath.Join(dir, filepath.Base(file))

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, nil, fmt.Errorf("create logs directory: %w", err)
	}
	asyncWriter, err := NewAsyncFileWriter(logFile, 32*1024)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger.SetOutput(asyncWriter)
	logger.AddHook(NewConsoleHook(os.Stdout))

	return logger, asyncWriter, nil
}
