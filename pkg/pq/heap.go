// Package pq provides the indexed min-heap used by the Dijkstra kernel.
//
// A Heap holds at most N distinct item ids drawn from [0, N), each keyed by
// an int64 distance. Two implementations satisfy the interface: BinaryHeap,
// an indexed binary heap backed by github.com/rhartert/yagh, and
// FibonacciHeap, a hand-rolled Fibonacci heap. The Dijkstra kernel is
// written against the interface only, so either backend can be selected at
// construction time.
package pq

// Inf is the sentinel distance used for unreached vertices. It matches the
// reserved "infinity" value from the DP engine (2^63-1) so that heap keys
// and DP costs share one saturating arithmetic domain.
const Inf int64 = 1<<63 - 1

// Heap is the capability the Dijkstra kernel and the EMV DP engine require
// from a priority queue: insert, extract-min, decrease-key and membership,
// each addressed by a dense item id rather than an opaque handle.
type Heap interface {
	// Insert adds item with the given key. item must not already be present.
	Insert(item int, key int64)

	// ExtractMin removes and returns the item with the smallest key,
	// breaking ties arbitrarily. It panics if the heap is empty.
	ExtractMin() (item int, key int64)

	// DecreaseKey lowers item's key to newKey. item must be present and
	// newKey must not exceed item's current key.
	DecreaseKey(item int, newKey int64)

	// Contains reports whether item currently has an entry in the heap.
	Contains(item int) bool

	// Len reports the number of items currently held.
	Len() int
}

// Kind selects a Heap implementation at construction time, mirroring the
// original's BIN_HEAP / FIB_HEAP build-time switch as a runtime choice.
type Kind int

const (
	// Binary selects the yagh-backed indexed binary heap (the default).
	Binary Kind = iota
	// Fibonacci selects the hand-rolled Fibonacci heap.
	Fibonacci
)

// New constructs a Heap of the requested kind sized for item ids in [0, n).
func New(kind Kind, n int) Heap {
	switch kind {
	case Fibonacci:
		return NewFibonacciHeap(n)
	default:
		return NewBinaryHeap(n)
	}
}
