package structures

import "algoviz/internal/step"

type treeNode struct {
	value int
	left  *treeNode
	right *treeNode
}

// BinarySearchTree is an unbalanced BST over int values. Every emitted step
// carries the whole hierarchical shape in its metadata (in addition to
// Result) because the tree renderer consumes the shape directly.
type BinarySearchTree struct {
	emitter
	root *treeNode
	size int
}

// NewBinarySearchTree creates an empty instrumented BST.
func NewBinarySearchTree(sink step.Sink) *BinarySearchTree {
	return &BinarySearchTree{emitter: emitter{target: step.TargetBinaryTree, sink: sink}}
}

// Load seeds the tree by inserting values in order without emitting steps.
func (t *BinarySearchTree) Load(values ...int) {
	for _, v := range values {
		t.insertValue(v)
	}
}

func (t *BinarySearchTree) insertValue(v int) (path []int, inserted bool) {
	if t.root == nil {
		t.root = &treeNode{value: v}
		t.size++
		return nil, true
	}
	cur := t.root
	for {
		path = append(path, cur.value)
		switch {
		case v == cur.value:
			return path, false
		case v < cur.value:
			if cur.left == nil {
				cur.left = &treeNode{value: v}
				t.size++
				return path, true
			}
			cur = cur.left
		default:
			if cur.right == nil {
				cur.right = &treeNode{value: v}
				t.size++
				return path, true
			}
			cur = cur.right
		}
	}
}

// Insert adds v, rejecting duplicates. A rejected insert still emits a step
// recording Inserted:false, Duplicate:true.
func (t *BinarySearchTree) Insert(v int) bool {
	path, inserted := t.insertValue(v)
	t.emit("insert", []any{v}, t.snapshot(), step.TreeInsertMeta{
		Value:     v,
		Inserted:  inserted,
		Duplicate: !inserted,
		Path:      path,
		Tree:      t.snapshot(),
	})
	return inserted
}

// Search walks from the root comparing against v and reports presence. The
// comparison trail is recorded in the step metadata.
func (t *BinarySearchTree) Search(v int) bool {
	var path []int
	cur := t.root
	found := false
	for cur != nil {
		path = append(path, cur.value)
		if v == cur.value {
			found = true
			break
		}
		if v < cur.value {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	t.emit("search", []any{v}, t.snapshot(), step.TreeSearchMeta{
		Value: v,
		Found: found,
		Path:  path,
		Tree:  t.snapshot(),
	})
	return found
}

// Delete removes v. Three cases: a leaf is removed directly, a one-child
// node is spliced out, and a two-children node takes the value of its
// in-order successor (minimum of the right subtree), which is then deleted
// recursively. One step is emitted per public call regardless of internal
// recursion; it records which case fired and the successor value when the
// two-children case applies.
func (t *BinarySearchTree) Delete(v int) bool {
	var deleteCase string
	var successor *int
	var deleted bool
	t.root, deleted = t.remove(t.root, v, &deleteCase, &successor)
	if deleted {
		t.size--
	} else {
		deleteCase = step.DeleteCaseNotFound
	}
	t.emit("delete", []any{v}, t.snapshot(), step.TreeDeleteMeta{
		Value:     v,
		Deleted:   deleted,
		Case:      deleteCase,
		Successor: successor,
		Tree:      t.snapshot(),
	})
	return deleted
}

// remove deletes v from the subtree rooted at n. deleteCase and successor
// are written only for the node actually matching v at the top-level call;
// the recursive successor removal overwrites neither because it records
// into discard slots.
func (t *BinarySearchTree) remove(n *treeNode, v int, deleteCase *string, successor **int) (*treeNode, bool) {
	if n == nil {
		return nil, false
	}
	if v < n.value {
		var ok bool
		n.left, ok = t.remove(n.left, v, deleteCase, successor)
		return n, ok
	}
	if v > n.value {
		var ok bool
		n.right, ok = t.remove(n.right, v, deleteCase, successor)
		return n, ok
	}

	switch {
	case n.left == nil && n.right == nil:
		*deleteCase = step.DeleteCaseLeaf
		return nil, true
	case n.left == nil:
		*deleteCase = step.DeleteCaseOneChild
		return n.right, true
	case n.right == nil:
		*deleteCase = step.DeleteCaseOneChild
		return n.left, true
	default:
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		sv := succ.value
		*deleteCase = step.DeleteCaseTwoChildren
		*successor = &sv
		n.value = sv
		var discardCase string
		var discardSucc *int
		n.right, _ = t.remove(n.right, sv, &discardCase, &discardSucc)
		return n, true
	}
}

// InOrderTraversal returns values in ascending order.
func (t *BinarySearchTree) InOrderTraversal() []int {
	out := t.inorder(t.root, nil)
	t.emitTraversal("inorderTraversal", "inorder", out)
	return out
}

// PreOrderTraversal returns values root-first.
func (t *BinarySearchTree) PreOrderTraversal() []int {
	out := t.preorder(t.root, nil)
	t.emitTraversal("preorderTraversal", "preorder", out)
	return out
}

// PostOrderTraversal returns values root-last.
func (t *BinarySearchTree) PostOrderTraversal() []int {
	out := t.postorder(t.root, nil)
	t.emitTraversal("postorderTraversal", "postorder", out)
	return out
}

func (t *BinarySearchTree) emitTraversal(typ, order string, visited []int) {
	t.emit(typ, nil, t.snapshot(), step.TraverseMeta{
		Order:   order,
		Visited: visited,
		Tree:    t.snapshot(),
	})
}

func (t *BinarySearchTree) inorder(n *treeNode, acc []int) []int {
	if n == nil {
		return acc
	}
	acc = t.inorder(n.left, acc)
	acc = append(acc, n.value)
	return t.inorder(n.right, acc)
}

func (t *BinarySearchTree) preorder(n *treeNode, acc []int) []int {
	if n == nil {
		return acc
	}
	acc = append(acc, n.value)
	acc = t.preorder(n.left, acc)
	return t.preorder(n.right, acc)
}

func (t *BinarySearchTree) postorder(n *treeNode, acc []int) []int {
	if n == nil {
		return acc
	}
	acc = t.postorder(n.left, acc)
	acc = t.postorder(n.right, acc)
	return append(acc, n.value)
}

// Height returns the edge count of the longest root-to-leaf path; the empty
// tree has height -1.
func (t *BinarySearchTree) Height() int {
	h := height(t.root)
	t.emit("height", nil, t.snapshot(), step.HeightMeta{Height: h, Tree: t.snapshot()})
	return h
}

func height(n *treeNode) int {
	if n == nil {
		return -1
	}
	lh, rh := height(n.left), height(n.right)
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

// Validate reports whether the tree satisfies the BST ordering invariant.
func (t *BinarySearchTree) Validate() bool {
	valid := validBST(t.root, nil, nil)
	t.emit("validate", nil, t.snapshot(), step.ValidateMeta{Valid: valid, Tree: t.snapshot()})
	return valid
}

func validBST(n *treeNode, min, max *int) bool {
	if n == nil {
		return true
	}
	if min != nil && n.value <= *min {
		return false
	}
	if max != nil && n.value >= *max {
		return false
	}
	return validBST(n.left, min, &n.value) && validBST(n.right, &n.value, max)
}

// Clear removes every node.
func (t *BinarySearchTree) Clear() {
	removed := t.size
	t.root = nil
	t.size = 0
	t.emit("clear", nil, t.snapshot(), step.TreeClearMeta{Removed: removed, Tree: nil})
}

// Size returns the node count.
func (t *BinarySearchTree) Size() int { return t.size }

// IsEmpty reports whether the tree holds no nodes.
func (t *BinarySearchTree) IsEmpty() bool { return t.size == 0 }

// Kind returns the structure tag.
func (t *BinarySearchTree) Kind() step.Target { return step.TargetBinaryTree }

// Snapshot returns the full hierarchical shape; nil for the empty tree.
func (t *BinarySearchTree) Snapshot() any {
	if t.root == nil {
		// Typed nil, so renderers can type-assert uniformly.
		return (*step.TreeSnapshot)(nil)
	}
	return t.snapshot()
}

func (t *BinarySearchTree) snapshot() *step.TreeSnapshot {
	return copyTree(t.root)
}

func copyTree(n *treeNode) *step.TreeSnapshot {
	if n == nil {
		return nil
	}
	return &step.TreeSnapshot{
		Value: n.value,
		Left:  copyTree(n.left),
		Right: copyTree(n.right),
	}
}
