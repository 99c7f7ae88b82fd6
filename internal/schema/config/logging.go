package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type LoggingConfigType string

const (
	LoggingConfigTypeText LoggingConfigType = "text"
	LoggingConfigTypeJson LoggingConfigType = "json"
	LoggingConfigTypeTint LoggingConfigType = "tint"
	LoggingConfigTypeNone LoggingConfigType = "none"
)

type LoggingConfigLevel string

const (
	LevelDebug LoggingConfigLevel = "debug"
	LevelInfo  LoggingConfigLevel = "info"
	LevelWarn  LoggingConfigLevel = "warn"
	LevelError LoggingConfigLevel = "error"
)

func (l LoggingConfigLevel) String() string {
	return string(l)
}

func (l LoggingConfigLevel) Level() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type LoggingConfigOutput string

const (
	OutputStdout LoggingConfigOutput = "stdout"
	OutputStderr LoggingConfigOutput = "stderr"
)

func (l LoggingConfigOutput) Output() *os.File {
	switch l {
	case OutputStdout:
		return os.Stdout
	default:
		return os.Stderr
	}
}

// LoggingImpl is the interface implemented by concrete logging configurations.
type LoggingImpl interface {
	GetRootLogger() *slog.Logger
	GetType() LoggingConfigType
}

// LoggingConfig is the holder for a LoggingImpl instance.
type LoggingConfig struct {
	InnerVal LoggingImpl `json:"-" yaml:"-"`
}

func (l *LoggingConfig) GetRootLogger() *slog.Logger {
	if l == nil || l.InnerVal == nil {
		return (&LoggingConfigNone{Type: LoggingConfigTypeNone}).GetRootLogger()
	}
	return l.InnerVal.GetRootLogger()
}

func (l *LoggingConfig) GetType() LoggingConfigType {
	if l == nil || l.InnerVal == nil {
		return LoggingConfigTypeNone
	}
	return l.InnerVal.GetType()
}

// NewLoggingConfig builds a logging config from the loose format and level strings used in environment variables.
// An empty format selects tint; an empty level selects info.
func NewLoggingConfig(format, level string) (*LoggingConfig, error) {
	lvl := LoggingConfigLevel(strings.ToLower(strings.TrimSpace(level)))
	switch lvl {
	case "":
		lvl = LevelInfo
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return nil, fmt.Errorf("unknown logging level %q", level)
	}

	switch LoggingConfigType(strings.ToLower(strings.TrimSpace(format))) {
	case LoggingConfigTypeTint, "":
		return &LoggingConfig{InnerVal: &LoggingConfigTint{Type: LoggingConfigTypeTint, Level: lvl}}, nil
	case LoggingConfigTypeText:
		return &LoggingConfig{InnerVal: &LoggingConfigText{Type: LoggingConfigTypeText, Level: lvl}}, nil
	case LoggingConfigTypeJson:
		return &LoggingConfig{InnerVal: &LoggingConfigJson{Type: LoggingConfigTypeJson, Level: lvl}}, nil
	case LoggingConfigTypeNone:
		return &LoggingConfig{InnerVal: &LoggingConfigNone{Type: LoggingConfigTypeNone}}, nil
	default:
		return nil, fmt.Errorf("unknown logging format %q", format)
	}
}

var _ LoggingImpl = (*LoggingConfig)(nil)
