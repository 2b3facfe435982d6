// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rclog is a thin wrapper around github.com/luxfi/log giving the
// engine a stable, small logging surface independent of the upstream
// logger's own API churn.
package rclog

import (
	"context"
	"io"
	"log/slog"

	luxlog "github.com/luxfi/log"
)

type Logger = luxlog.Logger

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var Root = luxlog.Root

// ParseLevel parses a level name ("debug", "info", "warn", "error") into
// a slog.Level, in the teacher's log.LvlFromString idiom.
func ParseLevel(name string) (slog.Level, error) {
	lvl, err := luxlog.ToLevel(name)
	return slog.Level(lvl), err
}

// NewHandler returns a text handler writing to w, gated at lvl.
func NewHandler(w io.Writer, lvl slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
}

// New wraps a handler as a Logger, the same shape as the teacher's
// log.New / log.NewLogger constructors.
func New(h slog.Handler) Logger {
	return luxlog.New(h)
}

func Debug(msg string, ctx ...interface{}) { luxlog.Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { luxlog.Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { luxlog.Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { luxlog.Root().Error(msg, ctx...) }

func Enabled(ctx context.Context, level slog.Level) bool {
	return luxlog.Root().Enabled(ctx, level)
}

func SetDefault(l Logger) {
	luxlog.SetDefault(l)
}
