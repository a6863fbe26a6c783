package sandbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/config"
	"algoviz/internal/step"
)

func testConfig() config.SandboxConfig {
	cfg := config.DefaultSandboxConfig()
	cfg.TimeoutMs = 3000
	cfg.IterationCeiling = 100_000
	return cfg
}

func TestRunStackScenario(t *testing.T) {
	sb := New(testConfig())

	source := `
func lastTwoSum(s *structs.Stack) int {
	a := s.Pop().(int)
	b := s.Pop().(int)
	return a + b
}`
	res := sb.Run(context.Background(), source, Scenario{
		Kind:        step.TargetStack,
		InitialData: []any{1, 2, 3},
		Expected:    5,
	})

	require.Nil(t, res.Err, "unexpected error: %v", res.Error)
	assert.True(t, res.Success)
	require.Len(t, res.Steps, 2)
	assert.Equal(t, "pop", res.Steps[0].Type)
	assert.Equal(t, "pop", res.Steps[1].Type)
	assert.Greater(t, res.Elapsed, time.Duration(0))
}

func TestRunPassesScenarioArgs(t *testing.T) {
	sb := New(testConfig())

	source := `
func pushN(s *structs.Stack, n int) int {
	for i := 0; i < n; i++ {
		s.Push(i)
	}
	return s.Size()
}`
	res := sb.Run(context.Background(), source, Scenario{
		Kind:     step.TargetStack,
		Args:     []any{4},
		Expected: 4,
	})

	require.Nil(t, res.Err, "unexpected error: %v", res.Error)
	assert.Len(t, res.Steps, 4)
}

func TestRunInfiniteLoopDetected(t *testing.T) {
	cfg := testConfig()
	cfg.IterationCeiling = 10_000
	sb := New(cfg)

	source := `
func spin(s *structs.Stack) int {
	for {
	}
}`
	start := time.Now()
	res := sb.Run(context.Background(), source, Scenario{Kind: step.TargetStack})

	require.NotNil(t, res.Err)
	assert.Equal(t, ErrInfiniteLoop, res.Err.Kind)
	assert.Contains(t, res.Error, "Infinite loop detected (while loop)")
	assert.Less(t, time.Since(start), 3*time.Second, "guard must fire well inside the budget")
}

func TestRunNoFunctionFound(t *testing.T) {
	sb := New(testConfig())

	res := sb.Run(context.Background(), "var x = 5", Scenario{Kind: step.TargetStack})

	require.NotNil(t, res.Err)
	assert.Equal(t, ErrNoFunction, res.Err.Kind)
	assert.Equal(t, "Could not find a function", res.Error)
}

func TestRunRuntimeException(t *testing.T) {
	sb := New(testConfig())

	source := `
func boom(s *structs.Stack) int {
	panic("kaput")
}`
	res := sb.Run(context.Background(), source, Scenario{Kind: step.TargetStack})

	require.NotNil(t, res.Err)
	assert.Equal(t, ErrRuntime, res.Err.Kind)
	assert.Contains(t, res.Error, "kaput")
}

func TestRunAssertionFailure(t *testing.T) {
	sb := New(testConfig())

	source := `
func answer(s *structs.Stack) int {
	return 1
}`
	res := sb.Run(context.Background(), source, Scenario{
		Kind:     step.TargetStack,
		Expected: 2,
	})

	require.NotNil(t, res.Err)
	assert.Equal(t, ErrAssertion, res.Err.Kind)
	assert.Contains(t, res.Error, "expected 2")
	assert.False(t, res.Success)
}

func TestRunCustomAssertExpression(t *testing.T) {
	sb := New(testConfig())

	source := `
func answer(s *structs.Stack) int {
	return 10
}`
	res := sb.Run(context.Background(), source, Scenario{
		Kind:     step.TargetStack,
		Expected: 5,
		Assert:   "got.(int) > want.(int)",
	})
	require.Nil(t, res.Err, "unexpected error: %v", res.Error)
	assert.True(t, res.Success)

	res = sb.Run(context.Background(), source, Scenario{
		Kind:     step.TargetStack,
		Expected: 50,
		Assert:   "got.(int) > want.(int)",
	})
	require.NotNil(t, res.Err)
	assert.Equal(t, ErrAssertion, res.Err.Kind)
}

func TestRunCapturesConsole(t *testing.T) {
	sb := New(testConfig())

	source := `
import "fmt"

func greet(s *structs.Stack) int {
	fmt.Println("hello")
	fmt.Println("world")
	return 0
}`
	res := sb.Run(context.Background(), source, Scenario{
		Kind:     step.TargetStack,
		Expected: 0,
	})

	require.Nil(t, res.Err, "unexpected error: %v", res.Error)
	require.Len(t, res.Console, 2)
	assert.Equal(t, "log", res.Console[0].Level)
	assert.Equal(t, []any{"hello"}, res.Console[0].Args)
	assert.Equal(t, []any{"world"}, res.Console[1].Args)
	assert.False(t, res.Console[0].Timestamp.After(res.Console[1].Timestamp))
}

func TestRunTimeoutAbandonsRun(t *testing.T) {
	cfg := testConfig()
	cfg.TimeoutMs = 100
	sb := New(cfg)

	// Blocks on a channel instead of spinning, so the loop guard cannot
	// help and the wall-clock budget has to fire.
	source := `
func wait(s *structs.Stack) int {
	ch := make(chan int)
	<-ch
	return 0
}`
	start := time.Now()
	res := sb.Run(context.Background(), source, Scenario{Kind: step.TargetStack})

	require.NotNil(t, res.Err)
	assert.Equal(t, ErrTimeout, res.Err.Kind)
	assert.Contains(t, res.Error, "timed out")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRunTimeoutResultIsFrozen(t *testing.T) {
	cfg := testConfig()
	cfg.TimeoutMs = 150
	// Disable the loop guard so the abandoned goroutine genuinely keeps
	// emitting steps after the budget fires.
	cfg.IterationCeiling = 0
	sb := New(cfg)

	source := `
func spin(s *structs.Stack) int {
	for {
		s.Push(1)
	}
}`
	res := sb.Run(context.Background(), source, Scenario{Kind: step.TargetStack})

	require.NotNil(t, res.Err)
	assert.Equal(t, ErrTimeout, res.Err.Kind)
	assert.NotEmpty(t, res.Steps, "steps captured before the timeout belong to the caller")

	// The runaway goroutine is still pushing; the returned result must not
	// change underneath the caller.
	captured := len(res.Steps)
	firstType := res.Steps[0].Type
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, captured, len(res.Steps))
	assert.Equal(t, firstType, res.Steps[0].Type)
}

func TestRunForbiddenImport(t *testing.T) {
	sb := New(testConfig())

	source := `
import "os"

func read(s *structs.Stack) string {
	return os.Getenv("HOME")
}`
	res := sb.Run(context.Background(), source, Scenario{Kind: step.TargetStack})

	require.NotNil(t, res.Err)
	assert.Equal(t, ErrRuntime, res.Err.Kind)
	assert.Contains(t, res.Error, "forbidden imports")
}

func TestRunCaptureFlagsOff(t *testing.T) {
	cfg := testConfig()
	cfg.CaptureSteps = false
	cfg.CaptureConsole = false
	sb := New(cfg)

	source := `
import "fmt"

func work(s *structs.Stack) int {
	fmt.Println("noisy")
	s.Push(1)
	return s.Size()
}`
	res := sb.Run(context.Background(), source, Scenario{
		Kind:     step.TargetStack,
		Expected: 1,
	})

	require.Nil(t, res.Err, "unexpected error: %v", res.Error)
	assert.Empty(t, res.Steps)
	assert.Empty(t, res.Console)
}

func TestRunGraphScenario(t *testing.T) {
	sb := New(testConfig())

	source := `
func traverse(g *structs.Graph) []string {
	return g.BFS("a")
}`
	res := sb.Run(context.Background(), source, Scenario{
		Kind: step.TargetGraph,
		InitialData: map[string]any{
			"vertices": []any{"a", "b", "c"},
			"edges":    []any{[]any{"a", "b"}, []any{"b", "c"}},
		},
		Expected: []any{"a", "b", "c"},
	})

	require.Nil(t, res.Err, "unexpected error: %v", res.Error)
	// One visit step per node plus the terminal completed step.
	assert.Len(t, res.Steps, 4)
}

func TestRunBSTScenario(t *testing.T) {
	sb := New(testConfig())

	source := `
func removeAndList(t *structs.BinarySearchTree) []int {
	t.Delete(15)
	return t.InOrderTraversal()
}`
	res := sb.Run(context.Background(), source, Scenario{
		Kind:        step.TargetBinaryTree,
		InitialData: []any{10, 5, 15, 3, 7, 12, 20},
		Expected:    []any{3, 5, 7, 10, 12, 20},
	})

	require.Nil(t, res.Err, "unexpected error: %v", res.Error)
	require.Len(t, res.Steps, 2)
	meta := res.Steps[0].Meta.(step.TreeDeleteMeta)
	assert.Equal(t, step.DeleteCaseTwoChildren, meta.Case)
	require.NotNil(t, meta.Successor)
	assert.Equal(t, 20, *meta.Successor)
}

func TestRunHashMapScenario(t *testing.T) {
	sb := New(testConfig())

	source := `
func fill(h *structs.HashMap) int {
	h.Set("one", 1)
	h.Set("two", 2)
	h.Set("three", 3)
	h.Set("four", 4)
	return h.Size()
}`
	res := sb.Run(context.Background(), source, Scenario{
		Kind:     step.TargetHashMap,
		Expected: 4,
		Hash:     config.HashConfig{InitialCapacity: 4, LoadFactor: 0.75},
	})

	require.Nil(t, res.Err, "unexpected error: %v", res.Error)

	resizes := 0
	for _, s := range res.Steps {
		if m, ok := s.Meta.(step.ResizeMeta); ok {
			resizes++
			assert.Equal(t, 4, m.OldCapacity)
			assert.Equal(t, 8, m.NewCapacity)
		}
	}
	assert.Equal(t, 1, resizes)
}

func TestResultRunIDsAreUnique(t *testing.T) {
	sb := New(testConfig())
	src := "func noop(s *structs.Stack) int { return 0 }"
	sc := Scenario{Kind: step.TargetStack, Expected: 0}

	a := sb.Run(context.Background(), src, sc)
	b := sb.Run(context.Background(), src, sc)
	assert.NotEqual(t, a.RunID, b.RunID)
}
