package structures

import (
	"sort"

	"algoviz/internal/step"
)

// Graph is an adjacency-set graph over string vertices, directed or
// undirected. Undirected graphs mirror every edge mutation into both
// adjacency entries. Neighbor iteration is lexicographic so traversals and
// their step sequences are deterministic.
type Graph struct {
	emitter
	directed bool
	adj      map[string]map[string]struct{}
}

// NewGraph creates an empty instrumented graph.
func NewGraph(directed bool, sink step.Sink) *Graph {
	return &Graph{
		emitter:  emitter{target: step.TargetGraph, sink: sink},
		directed: directed,
		adj:      make(map[string]map[string]struct{}),
	}
}

// Directed reports the graph's orientation.
func (g *Graph) Directed() bool { return g.directed }

// Load seeds vertices and edges without emitting steps. Each edge is a
// [from, to] pair.
func (g *Graph) Load(vertices []string, edges [][2]string) {
	for _, v := range vertices {
		g.ensureVertex(v)
	}
	for _, e := range edges {
		g.ensureVertex(e[0])
		g.ensureVertex(e[1])
		g.adj[e[0]][e[1]] = struct{}{}
		if !g.directed {
			g.adj[e[1]][e[0]] = struct{}{}
		}
	}
}

func (g *Graph) ensureVertex(v string) bool {
	if _, ok := g.adj[v]; ok {
		return false
	}
	g.adj[v] = make(map[string]struct{})
	return true
}

// AddVertex adds v; adding an existing vertex is a no-op recorded as
// Added:false.
func (g *Graph) AddVertex(v string) bool {
	added := g.ensureVertex(v)
	g.emit("addVertex", []any{v}, g.snapshot(), step.VertexMeta{Vertex: v, Added: added})
	return added
}

// AddEdge adds an edge, creating missing endpoints. Undirected graphs
// mirror the edge into both adjacency entries.
func (g *Graph) AddEdge(from, to string) bool {
	g.ensureVertex(from)
	g.ensureVertex(to)
	_, existed := g.adj[from][to]
	g.adj[from][to] = struct{}{}
	if !g.directed {
		g.adj[to][from] = struct{}{}
	}
	g.emit("addEdge", []any{from, to}, g.snapshot(), step.EdgeMeta{
		From:     from,
		To:       to,
		Added:    !existed,
		Mirrored: !g.directed,
	})
	return !existed
}

// RemoveVertex removes v and every edge touching it. A missing vertex still
// emits a step with Removed:false.
func (g *Graph) RemoveVertex(v string) bool {
	if _, ok := g.adj[v]; !ok {
		g.emit("removeVertex", []any{v}, g.snapshot(), step.VertexMeta{Vertex: v})
		return false
	}
	edges := len(g.adj[v])
	delete(g.adj, v)
	for _, neighbors := range g.adj {
		if _, ok := neighbors[v]; ok {
			delete(neighbors, v)
			edges++
		}
	}
	g.emit("removeVertex", []any{v}, g.snapshot(), step.VertexMeta{
		Vertex:       v,
		Removed:      true,
		EdgesRemoved: edges,
	})
	return true
}

// RemoveEdge removes the edge from→to (and its mirror when undirected).
func (g *Graph) RemoveEdge(from, to string) bool {
	_, ok := g.adj[from][to]
	if ok {
		delete(g.adj[from], to)
		if !g.directed {
			delete(g.adj[to], from)
		}
	}
	g.emit("removeEdge", []any{from, to}, g.snapshot(), step.EdgeMeta{
		From:     from,
		To:       to,
		Removed:  ok,
		Mirrored: !g.directed && ok,
	})
	return ok
}

// BFS traverses breadth-first from start, emitting one step per visited
// node plus a terminal completed step so playback can scrub through the
// frontier frame by frame. An unknown start yields only the terminal step.
func (g *Graph) BFS(start string) []string {
	var visited []string
	if _, ok := g.adj[start]; ok {
		seen := map[string]bool{start: true}
		queue := []string{start}
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			visited = append(visited, node)
			for _, n := range g.neighbors(node) {
				if !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
			g.emit("bfs", []any{start}, g.snapshot(), step.VisitMeta{
				Algorithm: "bfs",
				Node:      node,
				Order:     len(visited) - 1,
				Frontier:  append([]string(nil), queue...),
			})
		}
	}
	g.emit("bfs", []any{start}, g.snapshot(), step.TraversalDoneMeta{
		Algorithm: "bfs",
		Visited:   visited,
		Completed: true,
	})
	return visited
}

// DFS traverses depth-first from start with the same per-node step scheme
// as BFS.
func (g *Graph) DFS(start string) []string {
	var visited []string
	if _, ok := g.adj[start]; ok {
		seen := make(map[string]bool)
		g.dfsVisit(start, seen, &visited)
	}
	g.emit("dfs", []any{start}, g.snapshot(), step.TraversalDoneMeta{
		Algorithm: "dfs",
		Visited:   visited,
		Completed: true,
	})
	return visited
}

func (g *Graph) dfsVisit(node string, seen map[string]bool, visited *[]string) {
	seen[node] = true
	*visited = append(*visited, node)
	g.emit("dfs", nil, g.snapshot(), step.VisitMeta{
		Algorithm: "dfs",
		Node:      node,
		Order:     len(*visited) - 1,
	})
	for _, n := range g.neighbors(node) {
		if !seen[n] {
			g.dfsVisit(n, seen, visited)
		}
	}
}

// HasCycle reports whether the graph contains a cycle. Directed graphs use
// DFS with a recursion-stack set; undirected graphs use DFS with a
// parent-exclusion check.
func (g *Graph) HasCycle() bool {
	var cyclic bool
	if g.directed {
		state := make(map[string]int) // 0 unvisited, 1 on stack, 2 done
		for _, v := range g.vertices() {
			if state[v] == 0 && g.directedCycle(v, state) {
				cyclic = true
				break
			}
		}
	} else {
		seen := make(map[string]bool)
		for _, v := range g.vertices() {
			if !seen[v] && g.undirectedCycle(v, "", seen) {
				cyclic = true
				break
			}
		}
	}
	g.emit("hasCycle", nil, g.snapshot(), step.CycleMeta{HasCycle: cyclic})
	return cyclic
}

func (g *Graph) directedCycle(node string, state map[string]int) bool {
	state[node] = 1
	for _, n := range g.neighbors(node) {
		if state[n] == 1 {
			return true
		}
		if state[n] == 0 && g.directedCycle(n, state) {
			return true
		}
	}
	state[node] = 2
	return false
}

func (g *Graph) undirectedCycle(node, parent string, seen map[string]bool) bool {
	seen[node] = true
	for _, n := range g.neighbors(node) {
		if !seen[n] {
			if g.undirectedCycle(n, node, seen) {
				return true
			}
		} else if n != parent {
			return true
		}
	}
	return false
}

// ShortestPath finds the fewest-hop path from → to by unweighted BFS with
// full path reconstruction, emitting one step per visited node. The
// terminal step records the reconstructed path, or Found:false (and a nil
// return) when no path exists.
func (g *Graph) ShortestPath(from, to string) []string {
	parent := make(map[string]string)
	found := false
	if _, ok := g.adj[from]; ok {
		seen := map[string]bool{from: true}
		queue := []string{from}
		order := 0
		for len(queue) > 0 && !found {
			node := queue[0]
			queue = queue[1:]
			g.emit("shortestPath", []any{from, to}, g.snapshot(), step.VisitMeta{
				Algorithm: "shortestPath",
				Node:      node,
				Order:     order,
				Frontier:  append([]string(nil), queue...),
			})
			order++
			if node == to {
				found = true
				break
			}
			for _, n := range g.neighbors(node) {
				if !seen[n] {
					seen[n] = true
					parent[n] = node
					queue = append(queue, n)
				}
			}
		}
	}

	if !found {
		g.emit("shortestPath", []any{from, to}, g.snapshot(), step.PathMeta{
			From:  from,
			To:    to,
			Found: false,
		})
		return nil
	}

	var path []string
	for cur := to; ; {
		path = append([]string{cur}, path...)
		if cur == from {
			break
		}
		cur = parent[cur]
	}
	g.emit("shortestPath", []any{from, to}, g.snapshot(), step.PathMeta{
		From:  from,
		To:    to,
		Path:  path,
		Found: true,
	})
	return path
}

// Clear removes every vertex and edge.
func (g *Graph) Clear() {
	removed := len(g.adj)
	g.adj = make(map[string]map[string]struct{})
	g.emit("clear", nil, g.snapshot(), step.ClearMeta{Removed: removed})
}

// Size returns the vertex count.
func (g *Graph) Size() int { return len(g.adj) }

// IsEmpty reports whether the graph holds no vertices.
func (g *Graph) IsEmpty() bool { return len(g.adj) == 0 }

// Kind returns the structure tag.
func (g *Graph) Kind() step.Target { return step.TargetGraph }

// Snapshot returns the full adjacency projection with sorted neighbor
// lists. Isolated vertices appear with an empty list.
func (g *Graph) Snapshot() any { return g.snapshot() }

func (g *Graph) snapshot() step.GraphSnapshot {
	out := make(step.GraphSnapshot, len(g.adj))
	for v := range g.adj {
		out[v] = g.neighbors(v)
	}
	return out
}

func (g *Graph) neighbors(v string) []string {
	out := make([]string, 0, len(g.adj[v]))
	for n := range g.adj[v] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (g *Graph) vertices() []string {
	out := make([]string, 0, len(g.adj))
	for v := range g.adj {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
