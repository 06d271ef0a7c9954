// Package logger provides the structured logger shared by pathpick packages.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging surface used across packages. Fields are key/value pairs.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
}

// Options configures New.
type Options struct {
	Level string
	// JSON writes structured lines instead of the human console format.
	JSON bool
	// Output defaults to os.Stderr so command output on stdout stays clean.
	Output io.Writer

	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type zerologAdapter struct {
	logger zerolog.Logger
}

// New builds a zerolog-backed Logger. When File is set, JSON lines are also
// written to a rotating file.
func New(opts Options) Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.WarnLevel
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var writers []io.Writer
	if opts.JSON {
		writers = append(writers, out)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"})
	}

	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    defaultInt(opts.MaxSizeMB, 10),
			MaxBackups: defaultInt(opts.MaxBackups, 3),
			MaxAge:     defaultInt(opts.MaxAgeDays, 28),
		})
	}

	zl := zerolog.New(io.MultiWriter(writers...)).Level(level).With().Timestamp().Logger()
	return &zerologAdapter{logger: zl}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &zerologAdapter{logger: zerolog.Nop()}
}

func defaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (z *zerologAdapter) addFields(event *zerolog.Event, fields ...any) *zerolog.Event {
	for i := 0; i < len(fields)-1; i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case bool:
			event = event.Bool(key, v)
		case error:
			event = event.AnErr(key, v)
		default:
			event = event.Interface(key, v)
		}
	}
	return event
}

func (z *zerologAdapter) Debug(msg string, fields ...any) {
	z.addFields(z.logger.Debug(), fields...).Msg(msg)
}

func (z *zerologAdapter) Info(msg string, fields ...any) {
	z.addFields(z.logger.Info(), fields...).Msg(msg)
}

func (z *zerologAdapter) Warn(msg string, fields ...any) {
	z.addFields(z.logger.Warn(), fields...).Msg(msg)
}

func (z *zerologAdapter) Error(msg string, fields ...any) {
	z.addFields(z.logger.Error(), fields...).Msg(msg)
}
