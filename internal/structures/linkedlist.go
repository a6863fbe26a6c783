package structures

import "algoviz/internal/step"

type listNode struct {
	value any
	next  *listNode
}

// LinkedList is a singly-linked list with head-only bookkeeping.
type LinkedList struct {
	emitter
	head *listNode
	size int
}

// NewLinkedList creates an empty instrumented linked list.
func NewLinkedList(sink step.Sink) *LinkedList {
	return &LinkedList{emitter: emitter{target: step.TargetLinkedList, sink: sink}}
}

// Load seeds the list head-to-tail without emitting steps.
func (l *LinkedList) Load(values ...any) {
	for _, v := range values {
		l.appendNode(v)
	}
}

func (l *LinkedList) appendNode(v any) {
	n := &listNode{value: v}
	if l.head == nil {
		l.head = n
	} else {
		cur := l.head
		for cur.next != nil {
			cur = cur.next
		}
		cur.next = n
	}
	l.size++
}

// Append adds v at the tail.
func (l *LinkedList) Append(v any) {
	l.appendNode(v)
	l.emit("append", []any{v}, l.snapshot(),
		step.ListInsertMeta{Value: v, Index: l.size - 1, Inserted: true})
}

// Prepend adds v at the head.
func (l *LinkedList) Prepend(v any) {
	l.head = &listNode{value: v, next: l.head}
	l.size++
	l.emit("prepend", []any{v}, l.snapshot(),
		step.ListInsertMeta{Value: v, Index: 0, Inserted: true})
}

// InsertAt inserts v so it ends up at position index. Out-of-range indices
// insert nothing; the step still records the attempt.
func (l *LinkedList) InsertAt(index int, v any) bool {
	if index < 0 || index > l.size {
		l.emit("insertAt", []any{index, v}, l.snapshot(),
			step.ListInsertMeta{Value: v, Index: index, Inserted: false})
		return false
	}
	if index == 0 {
		l.head = &listNode{value: v, next: l.head}
	} else {
		cur := l.head
		for i := 0; i < index-1; i++ {
			cur = cur.next
		}
		cur.next = &listNode{value: v, next: cur.next}
	}
	l.size++
	l.emit("insertAt", []any{index, v}, l.snapshot(),
		step.ListInsertMeta{Value: v, Index: index, Inserted: true})
	return true
}

// Delete removes the first node holding v. A miss still emits a step.
func (l *LinkedList) Delete(v any) bool {
	index := 0
	var prev *listNode
	for cur := l.head; cur != nil; cur = cur.next {
		if cur.value == v {
			if prev == nil {
				l.head = cur.next
			} else {
				prev.next = cur.next
			}
			l.size--
			l.emit("delete", []any{v}, l.snapshot(),
				step.ListDeleteMeta{Value: v, Index: index, Deleted: true})
			return true
		}
		prev = cur
		index++
	}
	l.emit("delete", []any{v}, l.snapshot(),
		step.ListDeleteMeta{Value: v, Index: -1, Deleted: false})
	return false
}

// Find returns the zero-based position of the first node holding v, or -1.
func (l *LinkedList) Find(v any) int {
	index := 0
	for cur := l.head; cur != nil; cur = cur.next {
		if cur.value == v {
			l.emit("find", []any{v}, l.snapshot(),
				step.ListFindMeta{Value: v, Index: index, Found: true})
			return index
		}
		index++
	}
	l.emit("find", []any{v}, l.snapshot(),
		step.ListFindMeta{Value: v, Index: -1, Found: false})
	return -1
}

// Reverse reverses the list in place.
func (l *LinkedList) Reverse() {
	var prev *listNode
	cur := l.head
	for cur != nil {
		next := cur.next
		cur.next = prev
		prev = cur
		cur = next
	}
	l.head = prev
	l.emit("reverse", nil, l.snapshot(), step.ReverseMeta{Length: l.size})
}

// HasCycle reports whether the list links back on itself, by Floyd's
// tortoise and hare. Lists built through this API are always acyclic; the
// operation exists because cycle detection is itself a lesson subject.
func (l *LinkedList) HasCycle() bool {
	slow, fast := l.head, l.head
	cyclic := false
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
		if slow == fast {
			cyclic = true
			break
		}
	}
	l.emit("hasCycle", nil, l.snapshot(), step.CycleMeta{HasCycle: cyclic})
	return cyclic
}

// Clear removes every node.
func (l *LinkedList) Clear() {
	removed := l.size
	l.head = nil
	l.size = 0
	l.emit("clear", nil, l.snapshot(), step.ClearMeta{Removed: removed})
}

// Size returns the node count.
func (l *LinkedList) Size() int { return l.size }

// IsEmpty reports whether the list holds no nodes.
func (l *LinkedList) IsEmpty() bool { return l.size == 0 }

// Kind returns the structure tag.
func (l *LinkedList) Kind() step.Target { return step.TargetLinkedList }

// Snapshot returns the full element sequence, head to tail.
func (l *LinkedList) Snapshot() any { return l.snapshot() }

func (l *LinkedList) snapshot() step.ListSnapshot {
	out := make(step.ListSnapshot, 0, l.size)
	// Capped at the tracked size so a cyclic list cannot hang the capture.
	for cur := l.head; cur != nil && len(out) < l.size; cur = cur.next {
		out = append(out, cur.value)
	}
	return out
}
