package structures

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/step"
)

func TestGraphUndirectedEdgesAreMirrored(t *testing.T) {
	var steps []step.Step
	g := NewGraph(false, collectSteps(&steps))

	g.AddEdge("a", "b")

	want := step.GraphSnapshot{"a": {"b"}, "b": {"a"}}
	if diff := cmp.Diff(want, g.Snapshot()); diff != "" {
		t.Errorf("mirrored edge mismatch (-want +got):\n%s", diff)
	}
	meta := steps[0].Meta.(step.EdgeMeta)
	assert.True(t, meta.Mirrored)

	g.RemoveEdge("b", "a")
	want = step.GraphSnapshot{"a": {}, "b": {}}
	if diff := cmp.Diff(want, g.Snapshot()); diff != "" {
		t.Errorf("mirror removal mismatch (-want +got):\n%s", diff)
	}
}

func TestGraphDirectedEdgesAreNot(t *testing.T) {
	g := NewGraph(true, nil)
	g.AddEdge("a", "b")

	want := step.GraphSnapshot{"a": {"b"}, "b": {}}
	if diff := cmp.Diff(want, g.Snapshot()); diff != "" {
		t.Errorf("directed edge mismatch (-want +got):\n%s", diff)
	}
}

func TestGraphVertexOperations(t *testing.T) {
	var steps []step.Step
	g := NewGraph(false, collectSteps(&steps))

	require.True(t, g.AddVertex("a"))
	require.False(t, g.AddVertex("a"), "re-adding a vertex is a recorded no-op")
	assert.Equal(t, step.VertexMeta{Vertex: "a", Added: false}, steps[1].Meta)

	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	require.True(t, g.RemoveVertex("a"))
	meta := steps[len(steps)-1].Meta.(step.VertexMeta)
	assert.True(t, meta.Removed)
	assert.Equal(t, 4, meta.EdgesRemoved, "both directions of both edges")

	require.False(t, g.RemoveVertex("zzz"))
	assert.Equal(t, step.VertexMeta{Vertex: "zzz"}, steps[len(steps)-1].Meta)
}

// BFS/DFS emit one step per visited node plus one terminal completed step.
func TestGraphTraversalStepCounts(t *testing.T) {
	build := func(sink step.Sink) *Graph {
		g := NewGraph(false, nil)
		g.Load([]string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}})
		g.sink = sink
		return g
	}

	t.Run("bfs", func(t *testing.T) {
		var steps []step.Step
		g := build(collectSteps(&steps))
		visited := g.BFS("a")

		assert.Equal(t, []string{"a", "b", "c", "d"}, visited)
		require.Len(t, steps, len(visited)+1)
		for i := 0; i < len(visited); i++ {
			m := steps[i].Meta.(step.VisitMeta)
			assert.Equal(t, visited[i], m.Node)
			assert.Equal(t, i, m.Order)
		}
		done := steps[len(steps)-1].Meta.(step.TraversalDoneMeta)
		assert.True(t, done.Completed)
		assert.Equal(t, visited, done.Visited)
	})

	t.Run("dfs", func(t *testing.T) {
		var steps []step.Step
		g := build(collectSteps(&steps))
		visited := g.DFS("a")

		assert.Equal(t, []string{"a", "b", "d", "c"}, visited)
		require.Len(t, steps, len(visited)+1)
	})

	t.Run("unknown start emits only the terminal step", func(t *testing.T) {
		var steps []step.Step
		g := build(collectSteps(&steps))
		visited := g.BFS("zzz")

		assert.Empty(t, visited)
		require.Len(t, steps, 1)
		assert.IsType(t, step.TraversalDoneMeta{}, steps[0].Meta)
	})
}

func TestGraphHasCycle(t *testing.T) {
	tests := []struct {
		name     string
		directed bool
		edges    [][2]string
		want     bool
	}{
		{"directed acyclic", true, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}}, false},
		{"directed cycle", true, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, true},
		{"undirected tree is not a cycle", false, [][2]string{{"a", "b"}, {"b", "c"}}, false},
		{"undirected triangle", false, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, true},
		{"directed back-and-forth", true, [][2]string{{"a", "b"}, {"b", "a"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var steps []step.Step
			g := NewGraph(tt.directed, nil)
			g.Load(nil, tt.edges)
			g.sink = collectSteps(&steps)

			assert.Equal(t, tt.want, g.HasCycle())
			require.Len(t, steps, 1)
			assert.Equal(t, step.CycleMeta{HasCycle: tt.want}, steps[0].Meta)
		})
	}
}

func TestGraphShortestPath(t *testing.T) {
	g := NewGraph(false, nil)
	g.Load([]string{"a", "b", "c", "d", "e"}, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "d"}, {"a", "e"}, {"e", "d"},
	})

	var steps []step.Step
	g.sink = collectSteps(&steps)

	path := g.ShortestPath("a", "d")
	assert.Equal(t, []string{"a", "e", "d"}, path)

	last := steps[len(steps)-1].Meta.(step.PathMeta)
	assert.True(t, last.Found)
	assert.Equal(t, path, last.Path)
	// One visit step per dequeued node plus the terminal path step.
	for _, s := range steps[:len(steps)-1] {
		assert.IsType(t, step.VisitMeta{}, s.Meta)
	}
}

func TestGraphShortestPathNotFound(t *testing.T) {
	g := NewGraph(true, nil)
	g.Load([]string{"a", "b", "island"}, [][2]string{{"a", "b"}})

	var steps []step.Step
	g.sink = collectSteps(&steps)

	path := g.ShortestPath("a", "island")
	assert.Nil(t, path)

	last := steps[len(steps)-1].Meta.(step.PathMeta)
	assert.False(t, last.Found)
	assert.Empty(t, last.Path)
}
