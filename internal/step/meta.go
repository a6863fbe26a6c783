package step

// Metadata carries operation-specific context needed for playback
// highlighting. The union is closed: every operation family has exactly one
// concrete shape, selected by the step's Type tag, so renderers can switch
// exhaustively. An absent field means "not applicable", never "false".
type Metadata interface {
	MetaKind() string
}

// ---------------------------------------------------------------------------
// Stack / queue
// ---------------------------------------------------------------------------

// PushMeta accompanies push and enqueue steps.
type PushMeta struct {
	Value any `json:"value"`
	Size  int `json:"size"`
}

func (PushMeta) MetaKind() string { return "push" }

// PopMeta accompanies pop and dequeue steps. Empty is set when the
// operation ran against an empty structure; the step is still emitted.
type PopMeta struct {
	Value any  `json:"value,omitempty"`
	Empty bool `json:"empty,omitempty"`
}

func (PopMeta) MetaKind() string { return "pop" }

// PeekMeta accompanies peek steps.
type PeekMeta struct {
	Value any  `json:"value,omitempty"`
	Empty bool `json:"empty,omitempty"`
}

func (PeekMeta) MetaKind() string { return "peek" }

// ClearMeta accompanies clear steps on any structure.
type ClearMeta struct {
	Removed int `json:"removed"`
}

func (ClearMeta) MetaKind() string { return "clear" }

// ---------------------------------------------------------------------------
// Linked list
// ---------------------------------------------------------------------------

// ListInsertMeta accompanies append, prepend and insertAt steps.
type ListInsertMeta struct {
	Value    any  `json:"value"`
	Index    int  `json:"index"`
	Inserted bool `json:"inserted"`
}

func (ListInsertMeta) MetaKind() string { return "listInsert" }

// ListDeleteMeta accompanies linked-list delete steps.
type ListDeleteMeta struct {
	Value   any  `json:"value"`
	Index   int  `json:"index"`
	Deleted bool `json:"deleted"`
}

func (ListDeleteMeta) MetaKind() string { return "listDelete" }

// ListFindMeta accompanies linked-list find steps. Index is -1 when the
// value is absent.
type ListFindMeta struct {
	Value any  `json:"value"`
	Index int  `json:"index"`
	Found bool `json:"found"`
}

func (ListFindMeta) MetaKind() string { return "listFind" }

// ReverseMeta accompanies linked-list reverse steps.
type ReverseMeta struct {
	Length int `json:"length"`
}

func (ReverseMeta) MetaKind() string { return "reverse" }

// CycleMeta accompanies hasCycle steps on linked lists and graphs.
type CycleMeta struct {
	HasCycle bool `json:"hasCycle"`
}

func (CycleMeta) MetaKind() string { return "cycle" }

// ---------------------------------------------------------------------------
// Binary search tree
//
// Every tree step additionally snapshots the whole hierarchical shape into
// metadata (not only Result) because the tree renderer needs the shape
// independent of the generic Result field used by the other renderers.
// ---------------------------------------------------------------------------

// TreeInsertMeta accompanies BST insert steps. Duplicate keys are rejected
// and recorded as Inserted:false, Duplicate:true.
type TreeInsertMeta struct {
	Value     int           `json:"value"`
	Inserted  bool          `json:"inserted"`
	Duplicate bool          `json:"duplicate,omitempty"`
	Path      []int         `json:"path,omitempty"`
	Tree      *TreeSnapshot `json:"tree"`
}

func (TreeInsertMeta) MetaKind() string { return "treeInsert" }

// TreeSearchMeta accompanies BST search steps. Path records the comparison
// trail walked from the root.
type TreeSearchMeta struct {
	Value int           `json:"value"`
	Found bool          `json:"found"`
	Path  []int         `json:"path,omitempty"`
	Tree  *TreeSnapshot `json:"tree"`
}

func (TreeSearchMeta) MetaKind() string { return "treeSearch" }

// Delete case names recorded by TreeDeleteMeta.
const (
	DeleteCaseLeaf        = "leaf"
	DeleteCaseOneChild    = "one-child"
	DeleteCaseTwoChildren = "two-children"
	DeleteCaseNotFound    = "not-found"
)

// TreeDeleteMeta accompanies BST delete steps. Case names which of the three
// removal cases fired; Successor is set only for the two-children case.
type TreeDeleteMeta struct {
	Value     int           `json:"value"`
	Deleted   bool          `json:"deleted"`
	Case      string        `json:"case"`
	Successor *int          `json:"successor,omitempty"`
	Tree      *TreeSnapshot `json:"tree"`
}

func (TreeDeleteMeta) MetaKind() string { return "treeDelete" }

// TraverseMeta accompanies BST traversal steps (inorder, preorder,
// postorder).
type TraverseMeta struct {
	Order   string        `json:"order"`
	Visited []int         `json:"visited"`
	Tree    *TreeSnapshot `json:"tree"`
}

func (TraverseMeta) MetaKind() string { return "traverse" }

// HeightMeta accompanies BST height steps.
type HeightMeta struct {
	Height int           `json:"height"`
	Tree   *TreeSnapshot `json:"tree"`
}

func (HeightMeta) MetaKind() string { return "height" }

// ValidateMeta accompanies BST validate steps.
type ValidateMeta struct {
	Valid bool          `json:"valid"`
	Tree  *TreeSnapshot `json:"tree"`
}

func (ValidateMeta) MetaKind() string { return "validate" }

// TreeClearMeta accompanies BST clear steps.
type TreeClearMeta struct {
	Removed int           `json:"removed"`
	Tree    *TreeSnapshot `json:"tree"`
}

func (TreeClearMeta) MetaKind() string { return "treeClear" }

// ---------------------------------------------------------------------------
// Graph
// ---------------------------------------------------------------------------

// VertexMeta accompanies addVertex and removeVertex steps.
type VertexMeta struct {
	Vertex       string `json:"vertex"`
	Added        bool   `json:"added,omitempty"`
	Removed      bool   `json:"removed,omitempty"`
	EdgesRemoved int    `json:"edgesRemoved,omitempty"`
}

func (VertexMeta) MetaKind() string { return "vertex" }

// EdgeMeta accompanies addEdge and removeEdge steps. Mirrored is true when
// an undirected graph recorded the edge in both adjacency entries.
type EdgeMeta struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Added    bool   `json:"added,omitempty"`
	Removed  bool   `json:"removed,omitempty"`
	Mirrored bool   `json:"mirrored,omitempty"`
}

func (EdgeMeta) MetaKind() string { return "edge" }

// VisitMeta accompanies the per-node steps emitted by BFS, DFS and
// shortestPath while the traversal frontier advances. Order is the
// zero-based visit position.
type VisitMeta struct {
	Algorithm string   `json:"algorithm"`
	Node      string   `json:"node"`
	Order     int      `json:"order"`
	Frontier  []string `json:"frontier,omitempty"`
}

func (VisitMeta) MetaKind() string { return "visit" }

// TraversalDoneMeta accompanies the terminal "completed" step of a
// multi-visit traversal.
type TraversalDoneMeta struct {
	Algorithm string   `json:"algorithm"`
	Visited   []string `json:"visited"`
	Completed bool     `json:"completed"`
}

func (TraversalDoneMeta) MetaKind() string { return "traversalDone" }

// PathMeta accompanies the terminal step of shortestPath. Found:false with
// an empty Path means no path exists between the endpoints.
type PathMeta struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Path  []string `json:"path,omitempty"`
	Found bool     `json:"found"`
}

func (PathMeta) MetaKind() string { return "path" }

// ---------------------------------------------------------------------------
// Hash table
// ---------------------------------------------------------------------------

// HashSetMeta accompanies set steps. Collision is true whenever the target
// bucket already held at least one entry before the insertion.
type HashSetMeta struct {
	Key       string `json:"key"`
	Bucket    int    `json:"bucket"`
	Collision bool   `json:"collision,omitempty"`
	Updated   bool   `json:"updated,omitempty"`
}

func (HashSetMeta) MetaKind() string { return "hashSet" }

// HashGetMeta accompanies get steps.
type HashGetMeta struct {
	Key    string `json:"key"`
	Bucket int    `json:"bucket"`
	Found  bool   `json:"found"`
}

func (HashGetMeta) MetaKind() string { return "hashGet" }

// HashDeleteMeta accompanies hash-table delete steps.
type HashDeleteMeta struct {
	Key     string `json:"key"`
	Bucket  int    `json:"bucket"`
	Deleted bool   `json:"deleted"`
}

func (HashDeleteMeta) MetaKind() string { return "hashDelete" }

// ResizeMeta accompanies the resize step a hash table emits after a set
// pushes the load factor over its threshold. Emitted separately from the
// triggering set step.
type ResizeMeta struct {
	OldCapacity int `json:"oldCapacity"`
	NewCapacity int `json:"newCapacity"`
	Rehashed    int `json:"rehashed"`
}

func (ResizeMeta) MetaKind() string { return "resize" }
