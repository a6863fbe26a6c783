package step

// Snapshot types are the closed set of Result shapes. Each structure kind
// produces exactly one of these and always copies: a snapshot must stay
// valid after the live structure mutates again.

// ListSnapshot is the full element sequence of a stack (bottom to top),
// queue (front to back) or linked list (head to tail).
type ListSnapshot []any

// TreeSnapshot is the full hierarchical shape of a binary search tree. A
// nil *TreeSnapshot is the empty tree.
type TreeSnapshot struct {
	Value int           `json:"value"`
	Left  *TreeSnapshot `json:"left,omitempty"`
	Right *TreeSnapshot `json:"right,omitempty"`
}

// GraphSnapshot is the full adjacency projection of a graph: vertex to its
// neighbors in lexicographic order. Every vertex appears as a key, isolated
// vertices included.
type GraphSnapshot map[string][]string

// HashEntry is one chained key/value pair inside a bucket.
type HashEntry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// HashSnapshot is the full bucket layout of a hash table.
type HashSnapshot struct {
	Capacity int           `json:"capacity"`
	Size     int           `json:"size"`
	Buckets  [][]HashEntry `json:"buckets"`
}
