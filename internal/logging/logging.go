// Package logging provides leveled logging on top of the standard
// library logger. The level comes from LOG_LEVEL (debug, info, warn,
// error) or DEBUG=1; the default is info.
package logging

import (
	"log"
	"os"
	"strings"
	"sync"
)

// Level is the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu    sync.Mutex
	level Level
	once  sync.Once
)

func envLevel() Level {
	switch strings.ToLower(os.Getenv("DEBUG")) {
	case "1", "true", "yes", "on":
		return LevelDebug
	}
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// CurrentLevel returns the active log level.
func CurrentLevel() Level {
	once.Do(func() {
		mu.Lock()
		level = envLevel()
		mu.Unlock()
	})
	mu.Lock()
	defer mu.Unlock()
	return level
}

// SetLevel overrides the active log level.
func SetLevel(l Level) {
	once.Do(func() {})
	mu.Lock()
	level = l
	mu.Unlock()
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) {
	if CurrentLevel() <= LevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Infof logs at info level.
func Infof(format string, args ...any) {
	if CurrentLevel() <= LevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

// Warnf logs at warn level.
func Warnf(format string, args ...any) {
	if CurrentLevel() <= LevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

// Errorf logs at error level.
func Errorf(format string, args ...any) {
	if CurrentLevel() <= LevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

// Fatalf logs the message and exits.
func Fatalf(format string, args ...any) {
	log.Fatalf("[FATAL] "+format, args...)
}
