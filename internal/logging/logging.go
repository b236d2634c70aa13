package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelNone
)

var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(logrus.WarnLevel)
	return l
}

func SetLevel(l Level) {
	switch l {
	case LevelDebug:
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
	case LevelInfo:
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.InfoLevel)
	case LevelWarning:
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
	case LevelError:
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.ErrorLevel)
	case LevelNone:
		logger.SetOutput(io.Discard)
	}
}

// SetOutput redirects all log output.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// With returns an entry carrying the given field,
// for log lines that belong to one session or connection.
func With(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}

func Debug(msg string, v ...interface{}) {
	logger.Debugf(msg, v...)
}

func Info(msg string, v ...interface{}) {
	logger.Infof(msg, v...)
}

func Warning(msg string, v ...interface{}) {
	logger.Warnf(msg, v...)
}

func Error(msg string, v ...interface{}) {
	logger.Errorf(msg, v...)
}
