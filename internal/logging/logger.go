// Package logging provides a categorized zap logger for the planner core.
//
// Every subsystem logs through a Category so that a single --verbose flag
// and a single zap.Logger can be threaded through the whole search without
// each component needing to know about the others' concerns.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

// Category identifies the subsystem emitting a log line.
type Category string

const (
	CategoryBoot       Category = "boot"
	CategoryTranslate  Category = "translate"
	CategoryGrounding  Category = "grounding"
	CategoryMatchTree  Category = "match_tree"
	CategoryAxiom      Category = "axiom"
	CategoryState      Category = "state"
	CategorySearch     Category = "search"
	CategoryBatch      Category = "batch"
)

// Logger wraps a *zap.Logger with a fixed category field, following the same
// category discipline as the teacher's file-based logger but backed by zap
// instead of the standard log package.
type Logger struct {
	base     *zap.Logger
	category Category
}

var (
	mu     sync.RWMutex
	global *zap.Logger = zap.NewNop()
)

// SetGlobal installs the process-wide base logger. cmd/mimir calls this
// once in its PersistentPreRunE and cmd/planner once in its RunE.
func SetGlobal(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
}

// For returns a Logger scoped to category, built on the current global base.
func For(category Category) *Logger {
	mu.RLock()
	base := global
	mu.RUnlock()
	return &Logger{base: base, category: category}
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{base: l.base.With(fields...), category: l.category}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.base.Debug(msg, append([]zap.Field{zap.String("category", string(l.category))}, fields...)...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.base.Info(msg, append([]zap.Field{zap.String("category", string(l.category))}, fields...)...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.base.Warn(msg, append([]zap.Field{zap.String("category", string(l.category))}, fields...)...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.base.Error(msg, append([]zap.Field{zap.String("category", string(l.category))}, fields...)...)
}
