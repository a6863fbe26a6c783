package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/config"
	"algoviz/internal/step"
)

const sampleSuite = `version: 1
scenarios:
  - id: stack-basics
    kind: stack
    difficulty: easy
    initial_data: [1, 2]
    expected: 2
  - id: stack-deep
    kind: stack
    difficulty: hard
    expected: 0
  - id: queue-front
    kind: queue
    difficulty: easy
    initial_data: [a]
    expected: a
`

func writeSuite(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSuite(t, dir, "basics.yaml", sampleSuite)

	cat, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, cat.All(), 3)
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadSkipsInvalidSuite(t *testing.T) {
	dir := t.TempDir()
	writeSuite(t, dir, "good.yaml", sampleSuite)
	writeSuite(t, dir, "bad.yaml", "scenarios: [not, a, suite")
	writeSuite(t, dir, "notes.txt", "ignored entirely")

	cat, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, cat.All(), 3, "the bad suite must not hide the good one")
}

func TestAllSortedByID(t *testing.T) {
	dir := t.TempDir()
	writeSuite(t, dir, "suite.yaml", sampleSuite)

	cat, err := Load(dir)
	require.NoError(t, err)

	all := cat.All()
	require.Len(t, all, 3)
	assert.Equal(t, "queue-front", all[0].ID)
	assert.Equal(t, "stack-basics", all[1].ID)
	assert.Equal(t, "stack-deep", all[2].ID)
}

func TestByKindAndDifficulty(t *testing.T) {
	dir := t.TempDir()
	writeSuite(t, dir, "suite.yaml", sampleSuite)

	cat, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, cat.ByKind(step.TargetStack), 2)
	assert.Len(t, cat.ByKind(step.TargetQueue), 1)
	assert.Empty(t, cat.ByKind(step.TargetGraph))

	easy := cat.ByDifficulty(step.TargetStack, DifficultyEasy)
	require.Len(t, easy, 1)
	assert.Equal(t, "stack-basics", easy[0].ID)

	assert.Empty(t, cat.ByDifficulty(step.TargetStack, "nightmare"))
}

func TestGet(t *testing.T) {
	dir := t.TempDir()
	writeSuite(t, dir, "suite.yaml", sampleSuite)

	cat, err := Load(dir)
	require.NoError(t, err)

	sc, ok := cat.Get("queue-front")
	require.True(t, ok)
	assert.Equal(t, "queue", sc.Kind)

	_, ok = cat.Get("missing")
	assert.False(t, ok)
}

func TestDefaultSuiteEmbedded(t *testing.T) {
	cat := Default()
	all := cat.All()
	require.NotEmpty(t, all, "the embedded suite must parse")

	seen := map[string]bool{}
	for _, sc := range all {
		assert.NotEmpty(t, sc.ID)
		assert.True(t, step.Target(sc.Kind).Valid(), "kind %q", sc.Kind)
		assert.False(t, seen[sc.ID], "duplicate id %q", sc.ID)
		seen[sc.ID] = true
	}

	// Every structure kind ships with at least one default scenario.
	for _, kind := range step.Targets() {
		assert.NotEmpty(t, cat.ByKind(kind), "no default scenario for %s", kind)
	}
}

func TestFromConfig(t *testing.T) {
	defaults, err := FromConfig(context.Background(), config.CatalogConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, defaults.All(), "empty dir means the embedded suite")

	dir := t.TempDir()
	writeSuite(t, dir, "suite.yaml", sampleSuite)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cat, err := FromConfig(ctx, config.CatalogConfig{Dir: dir, Watch: true})
	require.NoError(t, err)
	assert.Len(t, cat.All(), 3)
}

func TestWatchReload(t *testing.T) {
	dir := t.TempDir()
	writeSuite(t, dir, "suite.yaml", sampleSuite)

	cat, err := Load(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cat.Watch(ctx))

	writeSuite(t, dir, "extra.yaml", `version: 1
scenarios:
  - id: graph-walk
    kind: graph
    difficulty: medium
`)

	assert.Eventually(t, func() bool {
		_, ok := cat.Get("graph-walk")
		return ok
	}, 3*time.Second, 25*time.Millisecond)
}
