package steiner

import "steinertree/pkg/csr"

// CostTable is f[X][v]: the minimum cost of a Steiner tree connecting v to
// every terminal named by subset mask X, where bit t of X means terminal
// Terminals[t] is required. Indexed as Cost[X*n+v] for a flat, cache-linear
// layout matching the original's FV_INDEX row-major convention.
type CostTable struct {
	n, k int
	data []int64
}

func newCostTable(n, k int) *CostTable {
	data := make([]int64, n*(1<<k))
	for i := range data {
		data[i] = csr.Inf
	}
	return &CostTable{n: n, k: k, data: data}
}

func (t *CostTable) Get(mask, v int) int64    { return t.data[mask*t.n+v] }
func (t *CostTable) Set(mask, v int, c int64) { t.data[mask*t.n+v] = c }

// BackPointer records how f[X][v] was achieved: either a single graph edge
// from U into v (Split == X, a "hop" recorded by Dijkstra's predecessor),
// or a convolution split of X into Sub and X^Sub rooted at the same vertex
// U == v (Split != X and Split != 0).
type BackPointer struct {
	U     int // -1 means "no predecessor recorded": never written, unreached, or the terminal itself in its singleton row
	Split int
}

// BackTable is b[X][v], the traceback companion to CostTable.
type BackTable struct {
	n, k int
	data []BackPointer
}

func newBackTable(n, k int) *BackTable {
	data := make([]BackPointer, n*(1<<k))
	for i := range data {
		data[i] = BackPointer{U: -1, Split: 0}
	}
	return &BackTable{n: n, k: k, data: data}
}

func (t *BackTable) Get(mask, v int) BackPointer    { return t.data[mask*t.n+v] }
func (t *BackTable) Set(mask, v int, b BackPointer) { t.data[mask*t.n+v] = b }

// Result is the outcome of Solve: the optimal cost and, if traceback was
// requested, the tree's edge list.
type Result struct {
	Cost  int64
	Edges []TreeEdge // nil unless traceback was requested
}

// TreeEdge is one undirected edge of the reconstructed Steiner tree.
type TreeEdge struct {
	U, V int
}
