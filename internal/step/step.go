// Package step defines the operation step record emitted by every
// instrumented data structure. A step is an immutable record of one semantic
// operation: the operation name, the arguments as supplied by the caller, a
// full snapshot of the structure's externally observable state after the
// operation, and operation-specific metadata used by playback highlighting.
//
// Steps form an append-only, strictly ordered sequence per capture session.
// Ordering is array position; Timestamp exists only so console records can
// be correlated against steps, never for ordering.
package step

import (
	"encoding/json"
	"time"
)

// Target identifies which structure kind emitted a step.
type Target string

const (
	TargetStack      Target = "stack"
	TargetQueue      Target = "queue"
	TargetLinkedList Target = "linkedList"
	TargetBinaryTree Target = "binaryTree"
	TargetGraph      Target = "graph"
	TargetHashMap    Target = "hashMap"
)

// Targets lists every structure kind the engine knows about. The set is
// closed: resolution happens through the structures factory, not a registry.
func Targets() []Target {
	return []Target{
		TargetStack,
		TargetQueue,
		TargetLinkedList,
		TargetBinaryTree,
		TargetGraph,
		TargetHashMap,
	}
}

// Valid reports whether t names a known structure kind.
func (t Target) Valid() bool {
	switch t {
	case TargetStack, TargetQueue, TargetLinkedList,
		TargetBinaryTree, TargetGraph, TargetHashMap:
		return true
	}
	return false
}

// Step records one semantic operation performed on an instrumented
// structure. Result is always a full snapshot (ListSnapshot, *TreeSnapshot,
// GraphSnapshot or HashSnapshot depending on Target), never a diff: playback
// re-derives "current state" purely from steps[cursor].Result.
type Step struct {
	Type      string    `json:"type"`
	Target    Target    `json:"target"`
	Args      []any     `json:"args,omitempty"`
	Result    any       `json:"result"`
	Timestamp time.Time `json:"timestamp"`
	Meta      Metadata  `json:"-"`
}

// Sink receives steps as they are emitted. A nil sink disables capture.
type Sink func(Step)

// MarshalJSON inlines the metadata together with its kind discriminator so
// renderers can switch on a single tag.
func (s Step) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type      string    `json:"type"`
		Target    Target    `json:"target"`
		Args      []any     `json:"args,omitempty"`
		Result    any       `json:"result"`
		Timestamp time.Time `json:"timestamp"`
		MetaKind  string    `json:"metaKind,omitempty"`
		Meta      Metadata  `json:"meta,omitempty"`
	}
	w := wire{
		Type:      s.Type,
		Target:    s.Target,
		Args:      s.Args,
		Result:    s.Result,
		Timestamp: s.Timestamp,
		Meta:      s.Meta,
	}
	if s.Meta != nil {
		w.MetaKind = s.Meta.MetaKind()
	}
	return json.Marshal(w)
}
