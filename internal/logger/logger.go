package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields алиас logrus.Fields
type Fields map[string]interface{}

// Log обертка над logrus.Logger
type Log struct {
	*logrus.Logger
}

// Entry обертка над logrus.Entry
type Entry struct {
	*logrus.Entry
}

// FileConfig ротация файла логов
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var globalLogger = New(os.Getenv("LOG_LEVEL"))

// New создает логгер с JSON-форматом и уровнем из строки (по умолчанию info)
func New(level string) *Log {
	l := logrus.New()
	l.SetReportCaller(true)
	l.SetLevel(parseLevel(level))
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	})
	return &Log{Logger: l}
}

func parseLevel(level string) logrus.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return logrus.InfoLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func GetLogger() *Log {
	return globalLogger
}

// Configure меняет уровень глобального логгера и, если задан файл, пишет еще и в него
func Configure(level string, file FileConfig) {
	globalLogger.SetLevel(parseLevel(level))
	if file.Path == "" {
		globalLogger.SetOutput(os.Stderr)
		return
	}
	globalLogger.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   file.Path,
		MaxSize:    valueOr(file.MaxSizeMB, 50),
		MaxBackups: valueOr(file.MaxBackups, 5),
		MaxAge:     valueOr(file.MaxAgeDays, 14),
		Compress:   true,
	}))
}

func valueOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func (l *Log) WithComponent(component string) *Entry {
	return &Entry{Entry: l.Logger.WithField("component", component)}
}

func (l *Log) WithFields(fields Fields) *Entry {
	return &Entry{Entry: l.Logger.WithFields(logrus.Fields(fields))}
}

func (l *Log) WithError(err error) *Entry {
	return &Entry{Entry: l.Logger.WithError(err)}
}

func (e *Entry) WithComponent(component string) *Entry {
	return &Entry{Entry: e.Entry.WithField("component", component)}
}

func (e *Entry) WithFields(fields Fields) *Entry {
	return &Entry{Entry: e.Entry.WithFields(logrus.Fields(fields))}
}

func (e *Entry) WithError(err error) *Entry {
	return &Entry{Entry: e.Entry.WithError(err)}
}
