package structures

import "algoviz/internal/step"

// Queue is an array-backed FIFO queue. Element zero is the front.
type Queue struct {
	emitter
	items []any
}

// NewQueue creates an empty instrumented queue.
func NewQueue(sink step.Sink) *Queue {
	return &Queue{emitter: emitter{target: step.TargetQueue, sink: sink}}
}

// Load seeds the queue front-to-back without emitting steps.
func (q *Queue) Load(values ...any) {
	q.items = append(q.items, values...)
}

// Enqueue appends v at the back.
func (q *Queue) Enqueue(v any) {
	q.items = append(q.items, v)
	q.emit("enqueue", []any{v}, q.snapshot(), step.PushMeta{Value: v, Size: len(q.items)})
}

// Dequeue removes and returns the front value, or nil when empty. The empty
// case still emits a step.
func (q *Queue) Dequeue() any {
	if len(q.items) == 0 {
		q.emit("dequeue", nil, q.snapshot(), step.PopMeta{Empty: true})
		return nil
	}
	v := q.items[0]
	q.items = append([]any(nil), q.items[1:]...)
	q.emit("dequeue", nil, q.snapshot(), step.PopMeta{Value: v})
	return v
}

// Peek returns the front value without removing it, or nil when empty.
func (q *Queue) Peek() any {
	if len(q.items) == 0 {
		q.emit("peek", nil, q.snapshot(), step.PeekMeta{Empty: true})
		return nil
	}
	v := q.items[0]
	q.emit("peek", nil, q.snapshot(), step.PeekMeta{Value: v})
	return v
}

// Clear removes every element.
func (q *Queue) Clear() {
	removed := len(q.items)
	q.items = nil
	q.emit("clear", nil, q.snapshot(), step.ClearMeta{Removed: removed})
}

// Size returns the element count.
func (q *Queue) Size() int { return len(q.items) }

// IsEmpty reports whether the queue holds no elements.
func (q *Queue) IsEmpty() bool { return len(q.items) == 0 }

// Kind returns the structure tag.
func (q *Queue) Kind() step.Target { return step.TargetQueue }

// Snapshot returns the full element sequence, front to back.
func (q *Queue) Snapshot() any { return q.snapshot() }

func (q *Queue) snapshot() step.ListSnapshot {
	out := make(step.ListSnapshot, len(q.items))
	copy(out, q.items)
	return out
}
