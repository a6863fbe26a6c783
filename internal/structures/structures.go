// Package structures implements the six instrumented data-structure
// variants: stack, queue, singly-linked list, binary search tree, graph and
// hash table with chaining. Each variant wraps a plain in-memory structure
// and emits one operation step per public operation through an optional
// sink, so an execution can be replayed frame by frame.
//
// The structures never panic on normal misuse (empty pop, missing key,
// absent vertex); outcomes are signalled through step metadata and return
// values. They are not thread safe: an instance is exclusively owned by the
// sandbox run that created it and discarded when the run completes.
package structures

import (
	"fmt"
	"time"

	"algoviz/internal/config"
	"algoviz/internal/step"
)

// Instrumented is the contract every variant satisfies.
type Instrumented interface {
	Kind() step.Target
	Size() int
	IsEmpty() bool
	Clear()
	// Snapshot returns the full externally observable state as one of the
	// closed snapshot types in the step package. Always a copy.
	Snapshot() any
}

// Option configures construction.
type Option func(*options)

type options struct {
	sink     step.Sink
	directed bool
	hash     config.HashConfig
}

// WithSink registers the step capture callback.
func WithSink(s step.Sink) Option {
	return func(o *options) { o.sink = s }
}

// WithDirected makes a graph directed. Ignored by other kinds.
func WithDirected(directed bool) Option {
	return func(o *options) { o.directed = directed }
}

// WithHashConfig overrides the hash-table capacity and load factor.
// Ignored by other kinds.
func WithHashConfig(hc config.HashConfig) Option {
	return func(o *options) { o.hash = hc }
}

// New resolves a structure kind to a fresh instrumented instance. The kind
// set is closed; unknown kinds are an error, not an extension point.
func New(kind step.Target, opts ...Option) (Instrumented, error) {
	o := options{hash: config.DefaultHashConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	switch kind {
	case step.TargetStack:
		return NewStack(o.sink), nil
	case step.TargetQueue:
		return NewQueue(o.sink), nil
	case step.TargetLinkedList:
		return NewLinkedList(o.sink), nil
	case step.TargetBinaryTree:
		return NewBinarySearchTree(o.sink), nil
	case step.TargetGraph:
		return NewGraph(o.directed, o.sink), nil
	case step.TargetHashMap:
		return NewHashMap(o.hash, o.sink), nil
	default:
		return nil, fmt.Errorf("unknown structure kind %q", kind)
	}
}

// emitter holds the shared sink plumbing embedded by every variant.
type emitter struct {
	target step.Target
	sink   step.Sink
}

func (e *emitter) emit(typ string, args []any, result any, meta step.Metadata) {
	if e.sink == nil {
		return
	}
	e.sink(step.Step{
		Type:      typ,
		Target:    e.target,
		Args:      args,
		Result:    result,
		Timestamp: time.Now(),
		Meta:      meta,
	})
}
