package structures

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/step"
)

func TestFactoryResolvesEveryKind(t *testing.T) {
	for _, kind := range step.Targets() {
		inst, err := New(kind)
		require.NoError(t, err, "kind %q", kind)
		assert.Equal(t, kind, inst.Kind())
		assert.True(t, inst.IsEmpty())
		assert.Equal(t, 0, inst.Size())
	}
}

func TestFactoryRejectsUnknownKind(t *testing.T) {
	_, err := New(step.Target("heap"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "heap")
}

// Snapshot correctness: steps[i].Result must equal the live structure's
// state immediately after operation i. Replays a mixed operation script and
// compares the captured result against a state query taken right after each
// operation.
func TestStepResultMatchesLiveState(t *testing.T) {
	var steps []step.Step
	var live []any

	s := NewStack(func(st step.Step) { steps = append(steps, st) })
	record := func() { live = append(live, s.Snapshot()) }

	s.Push(1)
	record()
	s.Push(2)
	record()
	s.Peek()
	record()
	s.Pop()
	record()
	s.Pop()
	record()
	s.Pop() // empty
	record()
	s.Clear()
	record()

	require.Equal(t, len(live), len(steps))
	for i := range steps {
		if diff := cmp.Diff(live[i], steps[i].Result); diff != "" {
			t.Errorf("step %d result diverges from live state (-live +step):\n%s", i, diff)
		}
	}
}

// Step completeness: after N single-emission operations the log holds
// exactly N steps; traversals add one per visited node plus a terminal.
func TestStepCompleteness(t *testing.T) {
	t.Run("single-emission ops", func(t *testing.T) {
		var steps []step.Step
		l := NewLinkedList(collectSteps(&steps))
		ops := 0
		l.Append(1)
		ops++
		l.Prepend(0)
		ops++
		l.InsertAt(1, 99)
		ops++
		l.Delete(99)
		ops++
		l.Find(1)
		ops++
		l.Reverse()
		ops++
		l.HasCycle()
		ops++
		l.Clear()
		ops++
		assert.Equal(t, ops, len(steps))
	})

	t.Run("multi-visit traversal", func(t *testing.T) {
		var steps []step.Step
		g := NewGraph(false, nil)
		g.Load([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
		g.sink = collectSteps(&steps)

		visited := g.BFS("a")
		assert.Equal(t, len(visited)+1, len(steps))
	})
}

func TestFactoryOptionsReachVariants(t *testing.T) {
	var steps []step.Step
	inst, err := New(step.TargetGraph, WithDirected(true), WithSink(collectSteps(&steps)))
	require.NoError(t, err)

	g := inst.(*Graph)
	assert.True(t, g.Directed())
	g.AddVertex("a")
	assert.Len(t, steps, 1)
}
