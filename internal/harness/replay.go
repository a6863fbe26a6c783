package harness

import (
	"fmt"

	"algoviz/internal/catalog"
	"algoviz/internal/sandbox"
	"algoviz/internal/step"
	"algoviz/internal/structures"
)

// ReplayExpected builds the scenario's initial structure and drives it
// through the scenario's expected-operation script, returning the step
// stream the ideal interaction produces. This is what playback shows in
// expected-output mode: the canonical operations, not a second code run.
func (o *Orchestrator) ReplayExpected(sc catalog.Scenario) ([]step.Step, error) {
	var steps []step.Step
	sink := func(s step.Step) { steps = append(steps, s) }

	inst, err := sandbox.Build(toSandboxScenario(sc), sink)
	if err != nil {
		return nil, err
	}
	for i, op := range sc.ExpectedScript {
		if err := applyOp(inst, op); err != nil {
			return nil, fmt.Errorf("expected script op %d (%s): %w", i, op.Op, err)
		}
	}
	return steps, nil
}

// applyOp dispatches one scripted operation by name. Op names follow the
// step-type vocabulary the structures themselves emit.
func applyOp(inst structures.Instrumented, op catalog.Op) error {
	switch s := inst.(type) {
	case *structures.Stack:
		return applyStackOp(s, op)
	case *structures.Queue:
		return applyQueueOp(s, op)
	case *structures.LinkedList:
		return applyListOp(s, op)
	case *structures.BinarySearchTree:
		return applyTreeOp(s, op)
	case *structures.Graph:
		return applyGraphOp(s, op)
	case *structures.HashMap:
		return applyHashOp(s, op)
	}
	return fmt.Errorf("unsupported structure %s", inst.Kind())
}

func applyStackOp(s *structures.Stack, op catalog.Op) error {
	switch op.Op {
	case "push":
		v, err := argAt(op, 0)
		if err != nil {
			return err
		}
		s.Push(v)
	case "pop":
		s.Pop()
	case "peek":
		s.Peek()
	case "clear":
		s.Clear()
	default:
		return fmt.Errorf("unknown stack op %q", op.Op)
	}
	return nil
}

func applyQueueOp(q *structures.Queue, op catalog.Op) error {
	switch op.Op {
	case "enqueue":
		v, err := argAt(op, 0)
		if err != nil {
			return err
		}
		q.Enqueue(v)
	case "dequeue":
		q.Dequeue()
	case "peek":
		q.Peek()
	case "clear":
		q.Clear()
	default:
		return fmt.Errorf("unknown queue op %q", op.Op)
	}
	return nil
}

func applyListOp(l *structures.LinkedList, op catalog.Op) error {
	switch op.Op {
	case "append":
		v, err := argAt(op, 0)
		if err != nil {
			return err
		}
		l.Append(v)
	case "prepend":
		v, err := argAt(op, 0)
		if err != nil {
			return err
		}
		l.Prepend(v)
	case "insertAt":
		idx, err := intArg(op, 0)
		if err != nil {
			return err
		}
		v, err := argAt(op, 1)
		if err != nil {
			return err
		}
		l.InsertAt(idx, v)
	case "delete":
		v, err := argAt(op, 0)
		if err != nil {
			return err
		}
		l.Delete(v)
	case "find":
		v, err := argAt(op, 0)
		if err != nil {
			return err
		}
		l.Find(v)
	case "reverse":
		l.Reverse()
	case "hasCycle":
		l.HasCycle()
	case "clear":
		l.Clear()
	default:
		return fmt.Errorf("unknown list op %q", op.Op)
	}
	return nil
}

func applyTreeOp(t *structures.BinarySearchTree, op catalog.Op) error {
	needsInt := func() (int, error) { return intArg(op, 0) }
	switch op.Op {
	case "insert":
		v, err := needsInt()
		if err != nil {
			return err
		}
		t.Insert(v)
	case "search":
		v, err := needsInt()
		if err != nil {
			return err
		}
		t.Search(v)
	case "delete":
		v, err := needsInt()
		if err != nil {
			return err
		}
		t.Delete(v)
	case "inorderTraversal":
		t.InOrderTraversal()
	case "preorderTraversal":
		t.PreOrderTraversal()
	case "postorderTraversal":
		t.PostOrderTraversal()
	case "height":
		t.Height()
	case "validate":
		t.Validate()
	case "clear":
		t.Clear()
	default:
		return fmt.Errorf("unknown tree op %q", op.Op)
	}
	return nil
}

func applyGraphOp(g *structures.Graph, op catalog.Op) error {
	switch op.Op {
	case "addVertex":
		v, err := stringArg(op, 0)
		if err != nil {
			return err
		}
		g.AddVertex(v)
	case "addEdge":
		from, to, err := edgeArgs(op)
		if err != nil {
			return err
		}
		g.AddEdge(from, to)
	case "removeVertex":
		v, err := stringArg(op, 0)
		if err != nil {
			return err
		}
		g.RemoveVertex(v)
	case "removeEdge":
		from, to, err := edgeArgs(op)
		if err != nil {
			return err
		}
		g.RemoveEdge(from, to)
	case "bfs":
		v, err := stringArg(op, 0)
		if err != nil {
			return err
		}
		g.BFS(v)
	case "dfs":
		v, err := stringArg(op, 0)
		if err != nil {
			return err
		}
		g.DFS(v)
	case "hasCycle":
		g.HasCycle()
	case "shortestPath":
		from, to, err := edgeArgs(op)
		if err != nil {
			return err
		}
		g.ShortestPath(from, to)
	case "clear":
		g.Clear()
	default:
		return fmt.Errorf("unknown graph op %q", op.Op)
	}
	return nil
}

func applyHashOp(h *structures.HashMap, op catalog.Op) error {
	switch op.Op {
	case "set":
		key, err := stringArg(op, 0)
		if err != nil {
			return err
		}
		v, err := argAt(op, 1)
		if err != nil {
			return err
		}
		h.Set(key, v)
	case "get":
		key, err := stringArg(op, 0)
		if err != nil {
			return err
		}
		h.Get(key)
	case "delete":
		key, err := stringArg(op, 0)
		if err != nil {
			return err
		}
		h.Delete(key)
	case "clear":
		h.Clear()
	default:
		return fmt.Errorf("unknown hash map op %q", op.Op)
	}
	return nil
}

func argAt(op catalog.Op, i int) (any, error) {
	if i >= len(op.Args) {
		return nil, fmt.Errorf("missing argument %d", i)
	}
	return op.Args[i], nil
}

func intArg(op catalog.Op, i int) (int, error) {
	v, err := argAt(op, i)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("argument %d is %T, want integer", i, v)
}

func stringArg(op catalog.Op, i int) (string, error) {
	v, err := argAt(op, i)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %d is %T, want string", i, v)
	}
	return s, nil
}

func edgeArgs(op catalog.Op) (string, string, error) {
	from, err := stringArg(op, 0)
	if err != nil {
		return "", "", err
	}
	to, err := stringArg(op, 1)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}
