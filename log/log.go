// Package log wraps logrus behind the logs.* configuration.
//
// Logging is off by default; when off, every call is a no-op.
package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vidmeta/vidmeta/filesystem"
	"github.com/vidmeta/vidmeta/key"
	"github.com/vidmeta/vidmeta/where"
)

var enabled bool

// Fields is an alias so callers do not need to import logrus.
type Fields = logrus.Fields

// Setup opens today's log file and configures formatter and level from viper.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	if exists := lo.Must(filesystem.API().Exists(path)); !exists {
		lo.Must(filesystem.API().Create(path))
	}

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

// Enabled reports whether log output is active.
func Enabled() bool {
	return enabled
}

// Entry is a field-scoped logger, used to tag everything a single fetch or load emits.
type Entry struct {
	entry *logrus.Entry
}

// WithFields returns an Entry carrying the given fields.
func WithFields(fields Fields) *Entry {
	return &Entry{entry: logrus.WithFields(fields)}
}

// WithField is WithFields for a single pair.
func (e *Entry) WithField(k string, v any) *Entry {
	return &Entry{entry: e.entry.WithField(k, v)}
}

func (e *Entry) Error(args ...any) {
	if enabled {
		e.entry.Error(args...)
	}
}
func (e *Entry) Errorf(format string, args ...any) {
	if enabled {
		e.entry.Errorf(format, args...)
	}
}
func (e *Entry) Warnf(format string, args ...any) {
	if enabled {
		e.entry.Warnf(format, args...)
	}
}
func (e *Entry) Info(args ...any) {
	if enabled {
		e.entry.Info(args...)
	}
}
func (e *Entry) Infof(format string, args ...any) {
	if enabled {
		e.entry.Infof(format, args...)
	}
}
func (e *Entry) Debugf(format string, args ...any) {
	if enabled {
		e.entry.Debugf(format, args...)
	}
}

// Package level emissions.

func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}
func Errorf(format string, args ...any) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}
func Warn(args ...any) {
	if enabled {
		logrus.Warn(args...)
	}
}
func Warnf(format string, args ...any) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}
func Info(args ...any) {
	if enabled {
		logrus.Info(args...)
	}
}
func Infof(format string, args ...any) {
	if enabled {
		logrus.Infof(format, args...)
	}
}
func Debug(args ...any) {
	if enabled {
		logrus.Debug(args...)
	}
}
func Debugf(format string, args ...any) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
