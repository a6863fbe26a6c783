package structures

import "algoviz/internal/step"

// Stack is an array-backed LIFO stack. Element zero is the bottom.
type Stack struct {
	emitter
	items []any
}

// NewStack creates an empty instrumented stack.
func NewStack(sink step.Sink) *Stack {
	return &Stack{emitter: emitter{target: step.TargetStack, sink: sink}}
}

// Load seeds the stack bottom-to-top without emitting steps. Used to apply
// a scenario's initial data before learner code runs.
func (s *Stack) Load(values ...any) {
	s.items = append(s.items, values...)
}

// Push places v on top of the stack.
func (s *Stack) Push(v any) {
	s.items = append(s.items, v)
	s.emit("push", []any{v}, s.snapshot(), step.PushMeta{Value: v, Size: len(s.items)})
}

// Pop removes and returns the top value, or nil on an empty stack. The
// empty case still emits a step; skipping it would leave a hole in the
// timeline.
func (s *Stack) Pop() any {
	if len(s.items) == 0 {
		s.emit("pop", nil, s.snapshot(), step.PopMeta{Empty: true})
		return nil
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	s.emit("pop", nil, s.snapshot(), step.PopMeta{Value: v})
	return v
}

// Peek returns the top value without removing it, or nil when empty.
func (s *Stack) Peek() any {
	if len(s.items) == 0 {
		s.emit("peek", nil, s.snapshot(), step.PeekMeta{Empty: true})
		return nil
	}
	v := s.items[len(s.items)-1]
	s.emit("peek", nil, s.snapshot(), step.PeekMeta{Value: v})
	return v
}

// Clear removes every element.
func (s *Stack) Clear() {
	removed := len(s.items)
	s.items = nil
	s.emit("clear", nil, s.snapshot(), step.ClearMeta{Removed: removed})
}

// Size returns the element count.
func (s *Stack) Size() int { return len(s.items) }

// IsEmpty reports whether the stack holds no elements.
func (s *Stack) IsEmpty() bool { return len(s.items) == 0 }

// Kind returns the structure tag.
func (s *Stack) Kind() step.Target { return step.TargetStack }

// Snapshot returns the full element sequence, bottom to top.
func (s *Stack) Snapshot() any { return s.snapshot() }

func (s *Stack) snapshot() step.ListSnapshot {
	out := make(step.ListSnapshot, len(s.items))
	copy(out, s.items)
	return out
}
