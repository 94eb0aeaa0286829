package search

import (
	"go.uber.org/zap"

	"mimir/internal/logging"
	"mimir/internal/state"
)

// EventHandler is notified of search progress: generation, expansion,
// pruning, goal discovery, and per-layer completion (spec.md §4.9's "event
// handler", named but not specified — the shape here mirrors the source's
// per-algorithm IEventHandler wired for generation/expansion/pruning/goal
// events, SUPPLEMENTED FEATURES).
type EventHandler interface {
	OnExpand(s state.Packed)
	OnGenerate(n int)
	OnPrune(s state.Packed)
	OnGoalFound(s state.Packed)
	OnLayerComplete(depth int, frontierSize int)
}

// NoopEventHandler discards every event.
type NoopEventHandler struct{}

func (NoopEventHandler) OnExpand(state.Packed)           {}
func (NoopEventHandler) OnGenerate(int)                  {}
func (NoopEventHandler) OnPrune(state.Packed)            {}
func (NoopEventHandler) OnGoalFound(state.Packed)        {}
func (NoopEventHandler) OnLayerComplete(int, int)        {}

// LoggingEventHandler logs every event through internal/logging at debug
// level, following the source's debug.hpp event-handler pairing.
type LoggingEventHandler struct {
	log *logging.Logger
}

func NewLoggingEventHandler() *LoggingEventHandler {
	return &LoggingEventHandler{log: logging.For(logging.CategorySearch)}
}

func (h *LoggingEventHandler) OnExpand(s state.Packed) {
	h.log.Debug("expand", zap.Uint32("state", uint32(s.Index)))
}

func (h *LoggingEventHandler) OnGenerate(n int) {
	h.log.Debug("generate", zap.Int("count", n))
}

func (h *LoggingEventHandler) OnPrune(s state.Packed) {
	h.log.Debug("prune", zap.Uint32("state", uint32(s.Index)))
}

func (h *LoggingEventHandler) OnGoalFound(s state.Packed) {
	h.log.Info("goal found", zap.Uint32("state", uint32(s.Index)))
}

func (h *LoggingEventHandler) OnLayerComplete(depth, frontierSize int) {
	h.log.Debug("layer complete", zap.Int("depth", depth), zap.Int("frontier_size", frontierSize))
}
