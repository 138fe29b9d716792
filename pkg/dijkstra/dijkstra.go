// Package dijkstra runs single-source shortest paths over a csr.View using
// a pluggable pq.Heap, reusing a Scratch across calls the way the
// teacher's QueryState is reused across routing queries (spec §4.3).
package dijkstra

import (
	"github.com/rhartert/sparsesets"

	"steinertree/pkg/csr"
	"steinertree/pkg/pq"
)

// Scratch holds the per-call distance and predecessor arrays plus the
// touched-vertex set used to reset them in O(touched) rather than O(n)
// between calls, mirroring QueryState.Touched but backed by
// github.com/rhartert/sparsesets for O(1) Clear instead of a manually
// replayed slice.
type Scratch struct {
	Dist    []int64
	Pred    []int
	touched *sparsesets.Set
}

// NewScratch allocates a Scratch sized for csr.View.NumVertices() == n.
func NewScratch(n int) *Scratch {
	dist := make([]int64, n)
	pred := make([]int, n)
	for i := range dist {
		dist[i] = csr.Inf
		pred[i] = -1
	}
	return &Scratch{Dist: dist, Pred: pred, touched: sparsesets.New(n)}
}

// Reset restores every touched vertex to its untouched state and clears
// the touched set, ready for the next call.
func (s *Scratch) Reset() {
	for _, v := range s.touched.Content() {
		s.Dist[v] = csr.Inf
		s.Pred[v] = -1
	}
	s.touched.Clear()
}

func (s *Scratch) touch(v int) {
	if !s.touched.Contains(v) {
		s.touched.Insert(v)
	}
}

// Run performs a single-source Dijkstra over v from source, writing
// distances and predecessors into scratch and returning scratch.Dist for
// convenience. heap is drained and left empty; scratch is not reset on
// entry, so callers owning a fresh or just-Reset Scratch get correct
// results.
func Run(v *csr.View, source int, scratch *Scratch, heap pq.Heap) []int64 {
	scratch.touch(source)
	scratch.Dist[source] = 0
	heap.Insert(source, 0)

	for heap.Len() > 0 {
		u, du := heap.ExtractMin()
		v.ForEachNeighbor(u, func(nbr int, w int64) {
			nd := du + w
			scratch.touch(nbr)
			if nd < scratch.Dist[nbr] {
				scratch.Dist[nbr] = nd
				scratch.Pred[nbr] = u
				if heap.Contains(nbr) {
					heap.DecreaseKey(nbr, nd)
				} else {
					heap.Insert(nbr, nd)
				}
			}
		})
	}
	return scratch.Dist
}
