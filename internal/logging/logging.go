package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

var (
	outputMu sync.Mutex
	output   io.Writer = os.Stderr
)

// SetOutput redirects all loggers to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outputMu.Lock()
	defer outputMu.Unlock()
	prev := output
	output = w
	return prev
}

type Logger struct {
	Verbose bool
	Debug   bool
	// Quiet suppresses warnings that are not critical. Filter commands set it.
	Quiet bool
}

func (l Logger) sink() zerolog.Logger {
	outputMu.Lock()
	w := output
	outputMu.Unlock()

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i any) string {
			level, _ := i.(string)
			return levelPrefix(level)
		},
	})
}

func levelPrefix(level string) string {
	switch level {
	case zerolog.LevelInfoValue:
		return color.GreenString("[info]")
	case zerolog.LevelDebugValue:
		return color.CyanString("[debug]")
	case zerolog.LevelWarnValue:
		return color.YellowString("[warn]")
	case zerolog.LevelErrorValue:
		return color.RedString("[error]")
	default:
		return "[" + level + "]"
	}
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		zl := l.sink()
		zl.Info().Msgf(msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		zl := l.sink()
		zl.Debug().Msgf(msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	if l.Quiet && !l.Debug {
		return
	}
	zl := l.sink()
	zl.Warn().Msgf(msg, args...)
}

// WarnfAlways prints the warning regardless of Quiet.
func (l Logger) WarnfAlways(msg string, args ...any) {
	zl := l.sink()
	zl.Warn().Msgf(msg, args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	zl := l.sink()
	zl.Error().Msgf(msg, args...)
}

// ErrorfAndReturn logs the message in debug mode and returns it as an error.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	if l.Debug {
		zl := l.sink()
		zl.Error().Msg(err.Error())
	}
	return err
}
