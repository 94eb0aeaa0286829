package logging

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestForUsesGlobalBase(t *testing.T) {
	SetGlobal(zaptest.NewLogger(t))
	defer SetGlobal(zap.NewNop())

	l := For(CategorySearch)
	require.NotNil(t, l, "For returned nil logger")
	l.Info("expansion", zap.Int("g", 3))
}

func TestForDefaultsToNop(t *testing.T) {
	SetGlobal(zap.NewNop())
	l := For(CategoryAxiom)
	// Should not panic even though the base logger discards everything.
	l.Debug("fixpoint iteration")
}
