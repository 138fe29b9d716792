package pq

import "math/bits"

// fibNode is one node of a Fibonacci heap tree. Siblings form a circular
// doubly linked list; child points at one node of the (also circular) child
// list. This mirrors the classical CLRS layout rather than the original
// C implementation's hand-rolled meld loop, but implements the same
// amortised bounds.
type fibNode struct {
	item        int
	key         int64
	degree      int
	marked      bool
	parent      *fibNode
	child       *fibNode
	left, right *fibNode
}

// FibonacciHeap is a hand-rolled Fibonacci heap satisfying the Heap
// interface. No third-party Fibonacci-heap package is available anywhere in
// the retrieved dependency surface, so this is stdlib-only; see DESIGN.md.
type FibonacciHeap struct {
	min   *fibNode
	nodes []*fibNode // item id -> node, nil if absent
	n     int
}

// NewFibonacciHeap allocates a FibonacciHeap for item ids in [0, n).
func NewFibonacciHeap(n int) *FibonacciHeap {
	return &FibonacciHeap{nodes: make([]*fibNode, n)}
}

func (h *FibonacciHeap) Len() int { return h.n }

func (h *FibonacciHeap) Contains(item int) bool {
	return h.nodes[item] != nil
}

// insertRoot splices node into the root list next to h.min (or makes it the
// sole root if the heap was empty).
func (h *FibonacciHeap) insertRoot(node *fibNode) {
	if h.min == nil {
		node.left, node.right = node, node
		h.min = node
		return
	}
	node.left = h.min
	node.right = h.min.right
	h.min.right.left = node
	h.min.right = node
	if node.key < h.min.key {
		h.min = node
	}
}

func (h *FibonacciHeap) Insert(item int, key int64) {
	if h.nodes[item] != nil {
		panic("pq: Insert on item already present")
	}
	node := &fibNode{item: item, key: key}
	h.nodes[item] = node
	h.insertRoot(node)
	h.n++
}

// removeFromSiblings unlinks node from whatever circular list it is part
// of, returning one remaining member of that list (or nil if node was the
// only member).
func removeFromSiblings(node *fibNode) *fibNode {
	if node.right == node {
		return nil
	}
	node.left.right = node.right
	node.right.left = node.left
	return node.right
}

func (h *FibonacciHeap) ExtractMin() (int, int64) {
	z := h.min
	if z == nil {
		panic("pq: ExtractMin on empty heap")
	}

	// Promote every child of z to a root.
	if z.child != nil {
		c := z.child
		for {
			next := c.right
			c.parent = nil
			removeFromSiblings(c)
			h.insertRoot(c)
			if next == z.child {
				break
			}
			c = next
		}
	}

	rest := removeFromSiblings(z)
	if rest == z {
		rest = nil
	}
	if rest == nil {
		h.min = nil
	} else {
		h.min = rest
		h.consolidate()
	}

	h.nodes[z.item] = nil
	h.n--
	return z.item, z.key
}

// consolidate merges root-list trees of equal degree until every root has a
// distinct degree, the classical Fibonacci-heap cleanup step run once per
// ExtractMin.
func (h *FibonacciHeap) consolidate() {
	maxDegree := bits.Len(uint(h.n)) + 2
	table := make([]*fibNode, maxDegree+1)

	// Collect the current root list first: linking below mutates it.
	var roots []*fibNode
	start := h.min
	x := start
	for {
		roots = append(roots, x)
		x = x.right
		if x == start {
			break
		}
	}

	for _, w := range roots {
		x := w
		d := x.degree
		for table[d] != nil {
			y := table[d]
			if x.key > y.key {
				x, y = y, x
			}
			h.link(y, x)
			table[d] = nil
			d++
		}
		table[d] = x
	}

	h.min = nil
	for _, node := range table {
		if node == nil {
			continue
		}
		node.left, node.right = node, node
		h.insertRoot(node)
	}
}

// link makes y a child of x; x is assumed to have the smaller key.
func (h *FibonacciHeap) link(y, x *fibNode) {
	removeFromSiblings(y)
	y.parent = x
	y.marked = false
	if x.child == nil {
		x.child = y
		y.left, y.right = y, y
	} else {
		y.left = x.child
		y.right = x.child.right
		x.child.right.left = y
		x.child.right = y
	}
	x.degree++
}

func (h *FibonacciHeap) DecreaseKey(item int, newKey int64) {
	node := h.nodes[item]
	if node == nil {
		panic("pq: DecreaseKey on item not present")
	}
	if newKey > node.key {
		panic("pq: DecreaseKey to a larger key")
	}
	node.key = newKey
	parent := node.parent
	if parent != nil && node.key < parent.key {
		h.cut(node, parent)
		h.cascadingCut(parent)
	}
	if node.key < h.min.key {
		h.min = node
	}
}

// cut detaches node from parent's child list and adds it as a new root.
func (h *FibonacciHeap) cut(node, parent *fibNode) {
	if parent.child == node {
		if node.right == node {
			parent.child = nil
		} else {
			parent.child = node.right
		}
	}
	removeFromSiblings(node)
	parent.degree--
	node.parent = nil
	node.marked = false
	node.left, node.right = node, node
	h.insertRoot(node)
}

// cascadingCut propagates cuts up the tree: an already-marked node that
// loses another child is itself cut, and so on, bounding the tree shapes
// that keep the amortised bounds.
func (h *FibonacciHeap) cascadingCut(node *fibNode) {
	parent := node.parent
	if parent == nil {
		return
	}
	if !node.marked {
		node.marked = true
		return
	}
	h.cut(node, parent)
	h.cascadingCut(parent)
}
