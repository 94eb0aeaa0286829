package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain verifies no goroutine survives a batch run: the errgroup-bounded
// fan-out in runBatch and the search algorithms' limit checks are the two
// places in this module most likely to leak a worker on an early return.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const batchCorridorDomain = `
(define (domain corridor)
  (:predicates (at ?l) (adjacent ?l1 ?l2))
  (:action move
    :parameters (?from ?to)
    :precondition (and (at ?from) (adjacent ?from ?to))
    :effect (and (not (at ?from)) (at ?to))))
`

func corridorProblem(name, goalLoc string) string {
	return `
(define (problem ` + name + `)
  (:domain corridor)
  (:objects a b c)
  (:init (at a) (adjacent a b) (adjacent b c))
  (:goal (at ` + goalLoc + `)))
`
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunBatchSolvesAllProblems(t *testing.T) {
	dir := t.TempDir()
	domainFile := writeTempFile(t, dir, "domain.pddl", batchCorridorDomain)
	p1 := writeTempFile(t, dir, "p1.pddl", corridorProblem("p1", "b"))
	p2 := writeTempFile(t, dir, "p2.pddl", corridorProblem("p2", "c"))

	batchConfigPath = ""
	batchConcurrency = 2

	cmd := batchCmd
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	require.NoError(t, runBatch(cmd, []string{domainFile, p1, p2}))
}

func TestRunBatchSolvesTrivialGoalAlongsideSibling(t *testing.T) {
	dir := t.TempDir()
	domainFile := writeTempFile(t, dir, "domain.pddl", batchCorridorDomain)
	// "a" is already true in the initial state: the goal is trivially
	// satisfied, a 0-action plan, exercising the SOLVED-with-empty-plan path
	// alongside an ordinary multi-step sibling.
	pTrivial := writeTempFile(t, dir, "trivial.pddl", corridorProblem("trivial", "a"))
	pNormal := writeTempFile(t, dir, "normal.pddl", corridorProblem("normal", "c"))

	batchConfigPath = ""
	batchConcurrency = 4

	require.NoError(t, runBatch(batchCmd, []string{domainFile, pTrivial, pNormal}))
}

func TestRunBatchSurfacesPerProblemParseErrors(t *testing.T) {
	dir := t.TempDir()
	domainFile := writeTempFile(t, dir, "domain.pddl", batchCorridorDomain)
	good := writeTempFile(t, dir, "good.pddl", corridorProblem("good", "c"))
	bad := writeTempFile(t, dir, "bad.pddl", "(not even pddl")

	batchConfigPath = ""
	batchConcurrency = 2

	err := runBatch(batchCmd, []string{domainFile, good, bad})
	require.Error(t, err, "expected an error because one problem file failed to parse")
}
