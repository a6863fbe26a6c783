package sandbox

import (
	"fmt"

	"algoviz/internal/config"
	"algoviz/internal/step"
	"algoviz/internal/structures"
)

// Scenario describes one test case to the sandbox: which structure to
// instantiate, how to seed it, what to pass to the entry function, and how
// to judge the return value. The orchestrator maps catalog scenarios onto
// this descriptor; the sandbox knows nothing about catalogs.
type Scenario struct {
	Kind        step.Target
	InitialData any
	Args        []any

	// Expected is compared against the entry function's return value with
	// a deep, numerically tolerant comparison when Assert is empty.
	Expected any

	// Assert, when non-empty, is a Go boolean expression over `got` and
	// `want`, evaluated inside the interpreter.
	Assert string

	// Graph orientation and hash-table sizing, where applicable.
	Directed bool
	Hash     config.HashConfig
}

// Build instantiates and seeds the scenario's structure exactly as a run
// would, without executing any code. Callers replaying operation scripts
// use it to start from the same initial state a submission sees.
func Build(sc Scenario, sink step.Sink) (structures.Instrumented, error) {
	return buildStructure(sc, sink)
}

// buildStructure instantiates the scenario's instrumented structure and
// seeds it from InitialData without emitting steps. The returned instance
// is exclusively owned by the calling run and discarded with it.
func buildStructure(sc Scenario, sink step.Sink) (structures.Instrumented, error) {
	inst, err := structures.New(sc.Kind,
		structures.WithSink(sink),
		structures.WithDirected(sc.Directed),
		structures.WithHashConfig(sc.Hash),
	)
	if err != nil {
		return nil, err
	}

	switch s := inst.(type) {
	case *structures.Stack:
		s.Load(toAnySlice(sc.InitialData)...)
	case *structures.Queue:
		s.Load(toAnySlice(sc.InitialData)...)
	case *structures.LinkedList:
		s.Load(toAnySlice(sc.InitialData)...)
	case *structures.BinarySearchTree:
		values, err := toIntSlice(sc.InitialData)
		if err != nil {
			return nil, err
		}
		s.Load(values...)
	case *structures.Graph:
		vertices, edges, err := toGraphData(sc.InitialData)
		if err != nil {
			return nil, err
		}
		s.Load(vertices, edges)
	case *structures.HashMap:
		entries, err := toStringMap(sc.InitialData)
		if err != nil {
			return nil, err
		}
		s.Load(entries)
	}
	return inst, nil
}

// ---------------------------------------------------------------------------
// Initial-data coercion. Scenario data arrives from YAML, so numbers may be
// int or float64 and sequences are []any.
// ---------------------------------------------------------------------------

func toAnySlice(v any) []any {
	switch s := v.(type) {
	case nil:
		return nil
	case []any:
		return s
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	default:
		return []any{v}
	}
}

func toIntSlice(v any) ([]int, error) {
	if v == nil {
		return nil, nil
	}
	if ints, ok := v.([]int); ok {
		return ints, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("binary tree initial data must be a list of integers, got %T", v)
	}
	out := make([]int, 0, len(raw))
	for _, e := range raw {
		n, ok := toInt(e)
		if !ok {
			return nil, fmt.Errorf("binary tree value %v is not an integer", e)
		}
		out = append(out, n)
	}
	return out, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// toGraphData accepts {"vertices": [...], "edges": [[from, to], ...]}.
func toGraphData(v any) (vertices []string, edges [][2]string, err error) {
	if v == nil {
		return nil, nil, nil
	}
	m, ok := toStringKeyed(v)
	if !ok {
		return nil, nil, fmt.Errorf("graph initial data must be a map, got %T", v)
	}
	for _, raw := range toAnySlice(m["vertices"]) {
		vertices = append(vertices, fmt.Sprint(raw))
	}
	for _, raw := range toAnySlice(m["edges"]) {
		pair := toAnySlice(raw)
		if len(pair) != 2 {
			return nil, nil, fmt.Errorf("graph edge %v is not a [from, to] pair", raw)
		}
		edges = append(edges, [2]string{fmt.Sprint(pair[0]), fmt.Sprint(pair[1])})
	}
	return vertices, edges, nil
}

func toStringMap(v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := toStringKeyed(v)
	if !ok {
		return nil, fmt.Errorf("hash map initial data must be a map, got %T", v)
	}
	return m, nil
}

func toStringKeyed(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
