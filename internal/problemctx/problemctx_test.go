package problemctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimir/internal/config"
	"mimir/internal/frontend"
)

const corridorDomain = `
(define (domain corridor)
  (:predicates (at ?l) (adjacent ?l1 ?l2))
  (:action move
    :parameters (?from ?to)
    :precondition (and (at ?from) (adjacent ?from ?to))
    :effect (and (not (at ?from)) (at ?to))))
`

const corridorProblem = `
(define (problem corridor-p1)
  (:domain corridor)
  (:objects a b c)
  (:init (at a) (adjacent a b) (adjacent b c))
  (:goal (at c)))
`

func parseCorridor(t *testing.T) (*frontend.RawDomain, *frontend.RawProblem) {
	t.Helper()
	rd, err := frontend.ParseDomain(corridorDomain)
	require.NoError(t, err)
	rp, err := frontend.ParseProblem(corridorProblem)
	require.NoError(t, err)
	return rd, rp
}

func TestNewBuildsGroundedContext(t *testing.T) {
	rd, rp := parseCorridor(t)
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeGrounded

	pc, err := New(rd, rp, cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, pc.ID.String(), "expected a non-empty problem id")

	s0 := pc.States.InitialState(pc.Problem)
	actions := pc.Actions.Generate(s0)
	require.Len(t, actions, 1, "expected exactly 1 applicable action in the initial state")

	stats, ok := pc.MatchTreeStatistics()
	require.True(t, ok, "expected match-tree statistics in grounded mode")
	assert.NotZero(t, stats.NumInput, "expected a non-empty match tree")
}

func TestNewBuildsLiftedContext(t *testing.T) {
	rd, rp := parseCorridor(t)
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeLifted

	pc, err := New(rd, rp, cfg)
	require.NoError(t, err)

	s0 := pc.States.InitialState(pc.Problem)
	actions := pc.Actions.Generate(s0)
	require.Len(t, actions, 1, "expected exactly 1 applicable action in the initial state")

	_, ok := pc.MatchTreeStatistics()
	assert.False(t, ok, "expected no match-tree statistics in lifted mode")
}

func TestNewRejectsUnknownMode(t *testing.T) {
	rd, rp := parseCorridor(t)
	cfg := config.DefaultConfig()
	cfg.Mode = "bogus"

	_, err := New(rd, rp, cfg)
	assert.Error(t, err, "expected an error for an unknown search mode")
}
