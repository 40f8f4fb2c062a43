package common

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	if singleton == nil {
		once.Do(
			func() {
				l := log.NewWithOptions(os.Stderr, log.Options{
					ReportTimestamp: true,
					TimeFormat:      time.RFC3339,
					Prefix:          "oxy2d",
				})
				singleton = &logger{l}
			})
	}
	return singleton
}

// SetLogLevel adjusts the minimum level emitted by the package logger.
// Accepted values are "debug", "info", "warn" and "error"; anything else
// leaves the level unchanged.
//
// Parameters:
//   - level: level name, case-insensitive
func SetLogLevel(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return
	}
	getLogger().SetLevel(lvl)
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
