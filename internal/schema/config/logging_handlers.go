package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

type LoggingConfigText struct {
	Type   LoggingConfigType   `json:"type" yaml:"type"`
	To     LoggingConfigOutput `json:"to,omitempty" yaml:"to,omitempty"`
	Level  LoggingConfigLevel  `json:"level,omitempty" yaml:"level,omitempty"`
	Source bool                `json:"source,omitempty" yaml:"source,omitempty"`
}

func (l *LoggingConfigText) GetType() LoggingConfigType {
	return LoggingConfigTypeText
}

func (l *LoggingConfigText) GetRootLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(l.To.Output(), &slog.HandlerOptions{
		Level:     l.Level.Level(),
		AddSource: l.Source,
	}))
}

type LoggingConfigJson struct {
	Type   LoggingConfigType   `json:"type" yaml:"type"`
	To     LoggingConfigOutput `json:"to,omitempty" yaml:"to,omitempty"`
	Level  LoggingConfigLevel  `json:"level,omitempty" yaml:"level,omitempty"`
	Source bool                `json:"source,omitempty" yaml:"source,omitempty"`
}

func (l *LoggingConfigJson) GetType() LoggingConfigType {
	return LoggingConfigTypeJson
}

func (l *LoggingConfigJson) GetRootLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(l.To.Output(), &slog.HandlerOptions{
		Level:     l.Level.Level(),
		AddSource: l.Source,
	}))
}

type LoggingConfigTint struct {
	Type       LoggingConfigType   `json:"type" yaml:"type"`
	To         LoggingConfigOutput `json:"to,omitempty" yaml:"to,omitempty"`
	Level      LoggingConfigLevel  `json:"level,omitempty" yaml:"level,omitempty"`
	Source     bool                `json:"source,omitempty" yaml:"source,omitempty"`
	NoColor    *bool               `json:"no_color,omitempty" yaml:"no_color,omitempty"`
	TimeFormat *string             `json:"time_format,omitempty" yaml:"time_format,omitempty"`
}

func (l *LoggingConfigTint) GetType() LoggingConfigType {
	return LoggingConfigTypeTint
}

func (l *LoggingConfigTint) GetRootLogger() *slog.Logger {
	noColor := false
	if l.NoColor != nil {
		noColor = *l.NoColor
	}

	timeFormat := time.Kitchen
	if l.TimeFormat != nil {
		timeFormat = *l.TimeFormat
	}

	return slog.New(tint.NewHandler(l.To.Output(), &tint.Options{
		Level:      l.Level.Level(),
		AddSource:  l.Source,
		NoColor:    noColor,
		TimeFormat: timeFormat,
	}))
}

// LoggingConfigNone discards all output.
type LoggingConfigNone struct {
	Type LoggingConfigType `json:"type" yaml:"type"`
}

func (l *LoggingConfigNone) GetType() LoggingConfigType {
	return LoggingConfigTypeNone
}

func (l *LoggingConfigNone) GetRootLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

var _ LoggingImpl = (*LoggingConfigText)(nil)
var _ LoggingImpl = (*LoggingConfigJson)(nil)
var _ LoggingImpl = (*LoggingConfigTint)(nil)
var _ LoggingImpl = (*LoggingConfigNone)(nil)
