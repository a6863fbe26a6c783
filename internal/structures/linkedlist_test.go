package structures

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/step"
)

func TestLinkedListInsertOperations(t *testing.T) {
	tests := []struct {
		name     string
		build    func(l *LinkedList)
		want     step.ListSnapshot
		lastMeta step.Metadata
	}{
		{
			name:     "append builds in order",
			build:    func(l *LinkedList) { l.Append(1); l.Append(2); l.Append(3) },
			want:     step.ListSnapshot{1, 2, 3},
			lastMeta: step.ListInsertMeta{Value: 3, Index: 2, Inserted: true},
		},
		{
			name:     "prepend builds reversed",
			build:    func(l *LinkedList) { l.Prepend(1); l.Prepend(2) },
			want:     step.ListSnapshot{2, 1},
			lastMeta: step.ListInsertMeta{Value: 2, Index: 0, Inserted: true},
		},
		{
			name:     "insertAt middle",
			build:    func(l *LinkedList) { l.Append(1); l.Append(3); l.InsertAt(1, 2) },
			want:     step.ListSnapshot{1, 2, 3},
			lastMeta: step.ListInsertMeta{Value: 2, Index: 1, Inserted: true},
		},
		{
			name:     "insertAt out of range is rejected but still recorded",
			build:    func(l *LinkedList) { l.Append(1); l.InsertAt(5, 9) },
			want:     step.ListSnapshot{1},
			lastMeta: step.ListInsertMeta{Value: 9, Index: 5, Inserted: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var steps []step.Step
			l := NewLinkedList(collectSteps(&steps))
			tt.build(l)

			if diff := cmp.Diff(tt.want, l.Snapshot()); diff != "" {
				t.Errorf("final state mismatch (-want +got):\n%s", diff)
			}
			require.NotEmpty(t, steps)
			last := steps[len(steps)-1]
			assert.Equal(t, tt.lastMeta, last.Meta)
			if diff := cmp.Diff(tt.want, last.Result); diff != "" {
				t.Errorf("last step result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinkedListDeleteAndFind(t *testing.T) {
	var steps []step.Step
	l := NewLinkedList(collectSteps(&steps))
	l.Load(1, 2, 3, 2)

	require.True(t, l.Delete(2))
	assert.Equal(t, step.ListDeleteMeta{Value: 2, Index: 1, Deleted: true}, steps[len(steps)-1].Meta)
	if diff := cmp.Diff(step.ListSnapshot{1, 3, 2}, l.Snapshot()); diff != "" {
		t.Errorf("delete removed the wrong node (-want +got):\n%s", diff)
	}

	require.False(t, l.Delete(42))
	assert.Equal(t, step.ListDeleteMeta{Value: 42, Index: -1, Deleted: false}, steps[len(steps)-1].Meta)

	assert.Equal(t, 1, l.Find(3))
	assert.Equal(t, -1, l.Find(42))
	assert.Equal(t, step.ListFindMeta{Value: 42, Index: -1, Found: false}, steps[len(steps)-1].Meta)
}

func TestLinkedListReverse(t *testing.T) {
	var steps []step.Step
	l := NewLinkedList(collectSteps(&steps))
	l.Load(1, 2, 3, 4)

	l.Reverse()

	if diff := cmp.Diff(step.ListSnapshot{4, 3, 2, 1}, l.Snapshot()); diff != "" {
		t.Errorf("reverse mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, steps, 1)
	assert.Equal(t, step.ReverseMeta{Length: 4}, steps[0].Meta)

	// Reversing twice restores the original order.
	l.Reverse()
	if diff := cmp.Diff(step.ListSnapshot{1, 2, 3, 4}, l.Snapshot()); diff != "" {
		t.Errorf("double reverse mismatch (-want +got):\n%s", diff)
	}
}

func TestLinkedListHasCycle(t *testing.T) {
	var steps []step.Step
	l := NewLinkedList(collectSteps(&steps))
	l.Load(1, 2, 3)

	require.False(t, l.HasCycle())
	assert.Equal(t, step.CycleMeta{HasCycle: false}, steps[0].Meta)

	// Splice a cycle in directly; the public API cannot create one.
	l.head.next.next.next = l.head
	require.True(t, l.HasCycle())
}

func TestLinkedListEmptyOperations(t *testing.T) {
	var steps []step.Step
	l := NewLinkedList(collectSteps(&steps))

	require.False(t, l.Delete(1))
	require.Equal(t, -1, l.Find(1))
	l.Reverse()
	require.False(t, l.HasCycle())
	l.Clear()

	require.Len(t, steps, 5, "operations on an empty list must still emit")
	assert.True(t, l.IsEmpty())
}
