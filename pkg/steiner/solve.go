package steiner

import (
	"fmt"

	"steinertree/pkg/csr"
	"steinertree/pkg/dijkstra"
	"steinertree/pkg/pq"
	"steinertree/pkg/resource"
)

// Options configures a Solve call: which heap backend the DP engine and
// Dijkstra kernel use, how many workers to dispatch subset work across,
// and whether to pay for back-pointer tracking and traceback at all
// (spec §6 "optimal-cost only vs. optimal-solution").
type Options struct {
	Heap    pq.Kind
	Workers int
	Track   bool
	Tracker *resource.Tracker // optional; nil disables phase timing
}

// Solve computes the minimum-weight Steiner tree in adj spanning
// terminals, dispatching the Erickson-Monma-Veinott DP across
// opts.Workers goroutines (spec §4.4, §4.6).
func Solve(adj *csr.Adjacency, terminals []int, opts Options) (Result, error) {
	if opts.Workers < 1 {
		return Result{}, fmt.Errorf("steiner: Workers must be >= 1, got %d", opts.Workers)
	}
	k := len(terminals)
	tr := opts.Tracker
	if tr == nil {
		tr = resource.New(false)
	}

	switch k {
	case 0:
		return Result{}, fmt.Errorf("steiner: at least one terminal is required")
	case 1:
		// spec §4.4 edge case: a single terminal spans itself at cost 0.
		return Result{Cost: 0}, nil
	case 2:
		return solveTwoTerminals(adj, terminals, opts, tr)
	default:
		return solveGeneral(adj, terminals, opts, tr)
	}
}

// solveTwoTerminals is the k=2 fast path from spec §4.4: skip the DP
// entirely and read the cost and path straight off one Dijkstra run.
func solveTwoTerminals(adj *csr.Adjacency, terminals []int, opts Options, tr *resource.Tracker) (Result, error) {
	var res Result
	tr.Track("dp-kernel", func() {
		view := csr.NewView(adj, opts.Workers)
		scratch := dijkstra.NewScratch(view.NumVertices())
		dist := dijkstra.Run(view, terminals[0], scratch, pq.New(opts.Heap, view.NumVertices()))
		res.Cost = dist[terminals[1]]

		if opts.Track {
			tr.Track("traceback", func() {
				v := terminals[1]
				for v != terminals[0] {
					u := scratch.Pred[v]
					res.Edges = append(res.Edges, TreeEdge{U: v, V: u})
					v = u
				}
			})
		}
	})
	return res, nil
}

// solveGeneral runs the full singleton-init + main-loop EMV kernel and,
// if requested, traces back the optimal tree from (q, C) where q is the
// last terminal and C excludes q's own bit (spec §4.4 "Final answer",
// §9 design note on the root-exclusive convention).
func solveGeneral(adj *csr.Adjacency, terminals []int, opts Options, tr *resource.Tracker) (Result, error) {
	k := len(terminals)
	q := terminals[k-1]
	c := (1 << (k - 1)) - 1

	var f *CostTable
	var b *BackTable
	tr.Track("dp-kernel", func() {
		f, b = runEMVKernel(kernelParams{
			adj:       adj,
			terminals: terminals,
			workers:   opts.Workers,
			heapKind:  opts.Heap,
			track:     opts.Track,
		})
	})

	res := Result{Cost: f.Get(c, q)}
	if opts.Track {
		tr.Track("traceback", func() {
			res.Edges = traceback(b, q, c)
		})
	}
	return res, nil
}
