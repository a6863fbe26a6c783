package drafts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/step"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	store.Save(step.TargetStack, "easy", "func solve() {}")

	d, ok := store.Load(step.TargetStack, "easy")
	require.True(t, ok)
	assert.Equal(t, "func solve() {}", d.Source)
	assert.Equal(t, step.TargetStack, d.Kind)
	assert.Zero(t, d.HintsUsed)
	assert.False(t, d.UpdatedAt.IsZero())
}

func TestSaveOverwrites(t *testing.T) {
	store := openTestStore(t)

	store.Save(step.TargetQueue, "medium", "v1")
	store.Save(step.TargetQueue, "medium", "v2")

	d, ok := store.Load(step.TargetQueue, "medium")
	require.True(t, ok)
	assert.Equal(t, "v2", d.Source)
}

func TestLoadMissing(t *testing.T) {
	store := openTestStore(t)

	_, ok := store.Load(step.TargetGraph, "hard")
	assert.False(t, ok)
}

func TestSlotsAreIndependent(t *testing.T) {
	store := openTestStore(t)

	store.Save(step.TargetStack, "easy", "easy code")
	store.Save(step.TargetStack, "hard", "hard code")

	easy, ok := store.Load(step.TargetStack, "easy")
	require.True(t, ok)
	hard, ok := store.Load(step.TargetStack, "hard")
	require.True(t, ok)
	assert.NotEqual(t, easy.Source, hard.Source)
}

func TestHintsUsed(t *testing.T) {
	store := openTestStore(t)

	assert.Zero(t, store.HintsUsed(step.TargetBinaryTree, "hard"))

	store.SetHintsUsed(step.TargetBinaryTree, "hard", 2)
	assert.Equal(t, 2, store.HintsUsed(step.TargetBinaryTree, "hard"))

	// Saving the draft afterwards must not reset the count.
	store.Save(step.TargetBinaryTree, "hard", "attempt")
	assert.Equal(t, 2, store.HintsUsed(step.TargetBinaryTree, "hard"))
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)

	store.Save(step.TargetHashMap, "easy", "code")
	store.Delete(step.TargetHashMap, "easy")

	_, ok := store.Load(step.TargetHashMap, "easy")
	assert.False(t, ok)
}

func TestAll(t *testing.T) {
	store := openTestStore(t)

	store.Save(step.TargetStack, "easy", "a")
	store.Save(step.TargetGraph, "medium", "b")

	all := store.All()
	assert.Len(t, all, 2)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	store.Save(step.TargetLinkedList, "medium", "persisted")
	require.NoError(t, store.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	d, ok := reopened.Load(step.TargetLinkedList, "medium")
	require.True(t, ok)
	assert.Equal(t, "persisted", d.Source)
}
