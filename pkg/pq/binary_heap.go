package pq

import "github.com/rhartert/yagh"

// BinaryHeap is an indexed binary heap adapting github.com/rhartert/yagh's
// generic IntMap to the Heap interface. yagh already tracks each item's
// position internally (an "indexed heap" in the sense §4.1 requires), so
// this wrapper only needs to remember which item ids are currently present.
type BinaryHeap struct {
	m       *yagh.IntMap[int64]
	present []bool
}

// NewBinaryHeap allocates a BinaryHeap for item ids in [0, n).
func NewBinaryHeap(n int) *BinaryHeap {
	return &BinaryHeap{
		m:       yagh.New[int64](n),
		present: make([]bool, n),
	}
}

func (h *BinaryHeap) Insert(item int, key int64) {
	if h.present[item] {
		panic("pq: Insert on item already present")
	}
	h.present[item] = true
	h.m.Put(item, key)
}

func (h *BinaryHeap) ExtractMin() (int, int64) {
	entry := h.m.Pop()
	h.present[entry.Elem] = false
	return entry.Elem, entry.Cost
}

func (h *BinaryHeap) DecreaseKey(item int, newKey int64) {
	if !h.present[item] {
		panic("pq: DecreaseKey on item not present")
	}
	h.m.Put(item, newKey)
}

func (h *BinaryHeap) Contains(item int) bool {
	return h.present[item]
}

func (h *BinaryHeap) Len() int {
	return h.m.Size()
}
