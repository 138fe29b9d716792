package csr

import (
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"steinertree/pkg/stp"
)

// Build converts a parsed stp.Graph into an immutable Adjacency, doubling
// every undirected input edge into a pair of directed CSR entries (spec
// §4.2). The Adjacency covers only the n real vertices; the super-source
// pseudo-vertices are added by NewView. numWorkers must be >= 1 and bounds
// the number of scatter shards.
//
// The counting-sort + prefix-sum shape follows the teacher's graph.Build:
// count out-degree per vertex, prefix-sum into FirstOut, then scatter each
// directed half-edge into its row. The scatter pass is split across a
// worker pool (github.com/sourcegraph/conc/pool) by contiguous ranges of
// source vertices, since each row's slots are independent once FirstOut
// is fixed.
func Build(g *stp.Graph, numWorkers int) (*Adjacency, error) {
	if numWorkers < 1 {
		return nil, fmt.Errorf("csr: numWorkers must be >= 1, got %d", numWorkers)
	}
	n := g.NumVertices
	m := len(g.Edges)

	degree := make([]int, n)
	for _, e := range g.Edges {
		degree[e.U]++
		degree[e.V]++
	}

	firstOut := make([]int, n+1)
	for u := 0; u < n; u++ {
		firstOut[u+1] = firstOut[u] + degree[u]
	}

	head := make([]int, 2*m)
	weight := make([]int64, 2*m)

	// cursor[u] tracks the next free slot in u's row; seeded from
	// firstOut and advanced as half-edges land, exactly like the
	// teacher's single-threaded scatter. The scatter itself parallelises
	// over contiguous vertex ranges: every shard scans all half-edges but
	// handles only those leaving its own range, so no shard writes another
	// shard's cursor or row.
	type halfEdge struct {
		from, to int
		weight   int64
	}
	halves := make([]halfEdge, 0, 2*m)
	for _, e := range g.Edges {
		halves = append(halves, halfEdge{e.U, e.V, e.Weight}, halfEdge{e.V, e.U, e.Weight})
	}

	cursor := make([]int, n)
	copy(cursor, firstOut[:n])

	numShards := runtime.GOMAXPROCS(0)
	if numShards > numWorkers {
		numShards = numWorkers
	}
	if numShards < 1 {
		numShards = 1
	}
	shardSize := (n + numShards - 1) / numShards
	if shardSize < 1 {
		shardSize = 1
	}

	p := pool.New().WithMaxGoroutines(numShards)
	for lo := 0; lo < n; lo += shardSize {
		hi := lo + shardSize
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		p.Go(func() {
			for _, he := range halves {
				if he.from < lo || he.from >= hi {
					continue
				}
				slot := cursor[he.from]
				cursor[he.from]++
				head[slot] = he.to
				weight[slot] = he.weight
			}
		})
	}
	p.Wait()

	terminals := make([]int, len(g.Terminals))
	copy(terminals, g.Terminals)

	return &Adjacency{
		NumVertices: n,
		NumEdges:    m,
		FirstOut:    firstOut,
		Head:        head,
		Weight:      weight,
		Terminals:   terminals,
	}, nil
}

// NewView wraps adj as a plain View with numWorkers inert pseudo-vertices
// and no active super-source overlay, the shape used for the singleton
// initialisation Dijkstra runs (spec §4.4).
func NewView(adj *Adjacency, numWorkers int) *View {
	return &View{Adj: adj, NumWorkers: numWorkers}
}

// WithSource returns a copy of v with worker-local overlay activated as
// the super-source's outgoing edges: overlay[x] is the weight of the edge
// from the pseudo-vertex to real vertex x. overlay must have length
// adj.NumVertices.
func (v *View) WithSource(workerID int, overlay []int64) *View {
	return &View{
		Adj:        v.Adj,
		NumWorkers: v.NumWorkers,
		SourceID:   v.Adj.NumVertices + workerID,
		Overlay:    overlay,
	}
}
