// Package csr holds the compressed-sparse-row adjacency the Dijkstra kernel
// and EMV DP engine run over, plus the mutable super-source overlay each
// worker uses to seed a single-source shortest-path pass from f[X][·]
// (spec §3, §4.2).
package csr

// Inf is the saturating "infinity" sentinel shared with pkg/pq and
// pkg/steiner: MathInf = 2^63-1, never itself the left operand of an add
// that could overflow because nothing relaxes through an unreached vertex.
const Inf int64 = 1<<63 - 1

// Adjacency is an immutable CSR adjacency over n real vertices: for vertex
// u, Head[FirstOut[u]:FirstOut[u+1]] and Weight[FirstOut[u]:FirstOut[u+1]]
// list its neighbours and edge weights. Every undirected input edge (u, v,
// w) appears twice, once in u's run and once in v's (spec §3 invariant).
type Adjacency struct {
	NumVertices int
	NumEdges    int // number of undirected input edges (m); len(Head) == 2*NumEdges
	FirstOut    []int
	Head        []int
	Weight      []int64
	Terminals   []int // copy of the 0-based terminal ids, len k
}

// EdgesFrom returns the half-open range of edge indices originating at u.
func (a *Adjacency) EdgesFrom(u int) (start, end int) {
	return a.FirstOut[u], a.FirstOut[u+1]
}

// View composes the immutable Adjacency with at most one active
// super-source pseudo-vertex per call. SourceID names the vertex id that
// stands in for the super-source (n + worker id); Overlay[v] is the weight
// of the edge SourceID -> v. A View with Overlay == nil behaves as a plain
// view of the real graph padded with NumWorkers inert pseudo-vertices, used
// for the singleton-initialisation Dijkstra runs (spec §9 open question:
// n+T is used uniformly rather than the original's asymmetric n+1).
type View struct {
	Adj        *Adjacency
	NumWorkers int
	SourceID   int     // n + worker id; ignored if Overlay == nil
	Overlay    []int64 // length Adj.NumVertices (real vertices only); nil if no super-source is active
}

// NumVertices is n + T: every real vertex plus one pseudo-vertex per
// worker, regardless of whether this particular call's super-source is
// active.
func (v *View) NumVertices() int {
	return v.Adj.NumVertices + v.NumWorkers
}

// ForEachNeighbor invokes visit(neighbour, weight) for every outgoing edge
// of u in this view. Pseudo-vertices other than the active super-source
// have no edges; the active super-source's edges are read from Overlay
// rather than from the (immutable) CSR block.
func (v *View) ForEachNeighbor(u int, visit func(nbr int, weight int64)) {
	if v.Overlay != nil && u == v.SourceID {
		for nbr, w := range v.Overlay {
			visit(nbr, w)
		}
		return
	}
	if u >= v.Adj.NumVertices {
		return // inactive pseudo-vertex: no edges.
	}
	start, end := v.Adj.EdgesFrom(u)
	for e := start; e < end; e++ {
		visit(v.Adj.Head[e], v.Adj.Weight[e])
	}
}
