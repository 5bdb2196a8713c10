// Package logger provides leveled logging for the gm wallet.
package logger

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// Log is the process-wide logger.
var Log = &Logger{level: LevelInfo}

type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the flag spelling of the level.
func (l LogLevel) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

type Logger struct {
	level LogLevel
}

// Level reports the active threshold.
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) enabled(level LogLevel) bool {
	return l.level <= level
}

func (l *Logger) Tracef(format string, args ...interface{}) {
	if l.enabled(LevelTrace) {
		pterm.Debug.Printfln(format, args...)
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.enabled(LevelDebug) {
		pterm.Debug.Printfln(format, args...)
	}
}

func (l *Logger) Infof(format string, args ...interface{}) {
	if l.enabled(LevelInfo) {
		pterm.Info.Printfln(format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	if l.enabled(LevelWarn) {
		pterm.Warning.Printfln(format, args...)
	}
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.enabled(LevelError) {
		pterm.Error.Printfln(format, args...)
	}
}

func (l *Logger) Debug(args ...interface{}) {
	if l.enabled(LevelDebug) {
		pterm.Debug.Println(args...)
	}
}

func (l *Logger) Info(args ...interface{}) {
	if l.enabled(LevelInfo) {
		pterm.Info.Println(args...)
	}
}

func (l *Logger) Warn(args ...interface{}) {
	if l.enabled(LevelWarn) {
		pterm.Warning.Println(args...)
	}
}

func (l *Logger) Error(args ...interface{}) {
	if l.enabled(LevelError) {
		pterm.Error.Println(args...)
	}
}

// ParseLevel converts a flag value into a LogLevel.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

func SetLevel(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}

	Log.level = parsed
	if parsed <= LevelDebug {
		pterm.EnableDebugMessages()
	} else {
		pterm.DisableDebugMessages()
	}

	return nil
}

func GetLogger() *Logger {
	return Log
}
