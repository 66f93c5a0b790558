// Package logger wraps logrus behind the printf-style interface the rest of
// the service depends on. Output goes to a file when one is configured,
// otherwise to stdout.
package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a leveled, printf-style logger
type Logger struct {
	l    *logrus.Logger
	file *os.File
}

// New creates a logger writing to filePath ("" or "stdout" for stdout) at
// the given level (debug, info, warn, error).
func New(filePath, level string) (*Logger, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger: invalid level %q: %w", level, err)
	}
	l.SetLevel(lvl)

	var file *os.File
	if filePath != "" && filePath != "stdout" {
		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file %q: %w", filePath, err)
		}
		l.SetOutput(file)
	} else {
		l.SetOutput(os.Stdout)
	}

	return &Logger{l: l, file: file}, nil
}

// Debug logs at debug level
func (lg *Logger) Debug(format string, v ...interface{}) {
	lg.l.Debugf(format, v...)
}

// Info logs at info level
func (lg *Logger) Info(format string, v ...interface{}) {
	lg.l.Infof(format, v...)
}

// Warn logs at warn level
func (lg *Logger) Warn(format string, v ...interface{}) {
	lg.l.Warnf(format, v...)
}

// Error logs at error level
func (lg *Logger) Error(format string, v ...interface{}) {
	lg.l.Errorf(format, v...)
}

// Fatal logs at fatal level and exits
func (lg *Logger) Fatal(format string, v ...interface{}) {
	lg.l.Fatalf(format, v...)
}

// Close releases the log file if one was opened
func (lg *Logger) Close() error {
	if lg.file != nil {
		return lg.file.Close()
	}
	return nil
}
