// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drawable

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// silentHandler is a slog.Handler that discards all records. Enabled
// returns false so callers skip message formatting entirely, making
// disabled logging effectively free.
type silentHandler struct{}

func (silentHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (silentHandler) Handle(context.Context, slog.Record) error { return nil }
func (silentHandler) WithAttrs([]slog.Attr) slog.Handler        { return silentHandler{} }
func (silentHandler) WithGroup(string) slog.Handler             { return silentHandler{} }

// activeLogger is accessed atomically so SetLogger can race with logging
// from any goroutine.
var activeLogger atomic.Pointer[slog.Logger]

func init() {
	l := slog.New(silentHandler{})
	activeLogger.Store(l)
}

// SetLogger configures the logger used by drawable and its backend
// subpackages. By default the package produces no log output.
//
// Levels used:
//   - [slog.LevelDebug]: lifecycle transitions (initialize, current count,
//     release) and texture bind/unbind
//   - [slog.LevelWarn]: backend errors on the release path
//
// Pass nil to restore the default silent behavior. SetLogger is safe for
// concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(silentHandler{})
	}
	activeLogger.Store(l)
}

// Logger returns the current logger. Backend subpackages call this to
// share the same configuration without introducing import cycles.
func Logger() *slog.Logger {
	return activeLogger.Load()
}
