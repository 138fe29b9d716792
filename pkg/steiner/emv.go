package steiner

import (
	"math/bits"

	"github.com/sourcegraph/conc/pool"

	"steinertree/pkg/csr"
	"steinertree/pkg/dijkstra"
	"steinertree/pkg/pq"
)

// worker is the persistent per-worker scratch reused across every mask
// that worker processes, mirroring the original's per-thread d_th/visit_th
// slices sliced out of one big (n+nt)*nt allocation. Here each worker
// simply owns its own Scratch, heap and overlay; there is nothing to slice
// since Go allocations are not required to be contiguous across workers.
type worker struct {
	scratch *dijkstra.Scratch
	heap    pq.Kind
	overlay []int64
}

// kernelParams bundles the inputs emv needs threaded through every stage.
type kernelParams struct {
	adj       *csr.Adjacency
	terminals []int
	workers   int
	heapKind  pq.Kind
	track     bool
}

// runEMVKernel runs the full singleton-init + main-loop DP described in
// spec §4.4 and returns the completed cost table (and back table, if
// track is set).
func runEMVKernel(p kernelParams) (*CostTable, *BackTable) {
	n := p.adj.NumVertices
	k := len(p.terminals)
	f := newCostTable(n, k)
	var b *BackTable
	if p.track {
		b = newBackTable(n, k)
	}

	workers := make([]*worker, p.workers)
	for i := range workers {
		workers[i] = &worker{
			scratch: dijkstra.NewScratch(n + p.workers),
			heap:    p.heapKind,
			overlay: make([]int64, n),
		}
	}

	// Singleton initialisation: one Dijkstra per terminal, dispatched to
	// the worker pool (spec §4.4 "Initialisation"). Terminal indices are
	// statically partitioned into one contiguous block per worker, mirroring
	// the original's block_size = k/nt split: each worker goroutine owns its
	// block exclusively and processes it sequentially, so nothing ever
	// shares a worker's scratch/overlay concurrently.
	termIdx := make([]int, k)
	for t := range termIdx {
		termIdx[t] = t
	}
	wp := pool.New().WithMaxGoroutines(p.workers)
	for wid, chunk := range splitAcrossWorkers(termIdx, p.workers) {
		wid, chunk := wid, chunk
		wp.Go(func() {
			w := workers[wid]
			view := csr.NewView(p.adj, p.workers)
			for _, t := range chunk {
				w.scratch.Reset()
				dist := dijkstra.Run(view, p.terminals[t], w.scratch, pq.New(w.heap, view.NumVertices()))
				mask := 1 << t
				for v := 0; v < n; v++ {
					f.Set(mask, v, dist[v])
					if p.track {
						b.Set(mask, v, BackPointer{U: w.scratch.Pred[v], Split: mask})
					}
				}
			}
		})
	}
	wp.Wait()

	// Main loop over subset sizes m = 2..k (spec §4.4 "Main loop").
	for m := 2; m <= k; m++ {
		masks := enumerateMasksWithPopcount(k, m)

		mp := pool.New().WithMaxGoroutines(p.workers)
		chunks := splitAcrossWorkers(masks, p.workers)
		for wid, chunk := range chunks {
			wid, chunk := wid, chunk
			mp.Go(func() {
				w := workers[wid]
				for _, X := range chunk {
					processMask(p, w, wid, X, f, b)
				}
			})
		}
		mp.Wait()
	}

	return f, b
}

// processMask runs the subset-convolution pass then the terminal-edge
// Dijkstra pass for a single mask X, exactly as spec §4.4 step 2
// describes.
func processMask(p kernelParams, w *worker, workerID int, X int, f *CostTable, b *BackTable) {
	n := p.adj.NumVertices

	// (a) Subset convolution: X' = (X-1) & X descending over the
	// non-empty proper submasks of X, stopping once the empty submask is
	// reached rather than continuing on to it (spec §4.4(a) requires
	// X' ⊊ X non-empty; f[0][v] is never written, so including sub=0
	// here would convolve against Inf and corrupt every f[X][v]).
	for sub := (X - 1) & X; sub != 0; sub = (sub - 1) & X {
		y := X &^ sub
		for v := 0; v < n; v++ {
			a, c := f.Get(sub, v), f.Get(y, v)
			if a == csr.Inf || c == csr.Inf {
				continue // an unreachable half keeps the sum at Inf.
			}
			cand := a + c
			if cand < f.Get(X, v) {
				f.Set(X, v, cand)
				if p.track {
					b.Set(X, v, BackPointer{U: v, Split: sub})
				}
			}
		}
	}

	// (b) Terminal-edge Dijkstra step over the super-source.
	for v := 0; v < n; v++ {
		w.overlay[v] = f.Get(X, v)
	}
	for t := 0; t < len(p.terminals); t++ {
		if X&(1<<t) == 0 {
			continue
		}
		u := p.terminals[t]
		w.overlay[u] = f.Get(X&^(1<<t), u)
	}

	w.scratch.Reset()
	view := csr.NewView(p.adj, p.workers).WithSource(workerID, w.overlay)
	dist := dijkstra.Run(view, view.SourceID, w.scratch, pq.New(w.heap, view.NumVertices()))

	for v := 0; v < n; v++ {
		f.Set(X, v, dist[v])
		if p.track {
			parent := w.scratch.Pred[v]
			if parent != view.SourceID {
				b.Set(X, v, BackPointer{U: parent, Split: X})
			}
		}
	}
}

// enumerateMasksWithPopcount returns, in ascending numeric order, every
// k-bit mask with exactly m bits set, generated via Gosper's hack (the
// "next same-popcount integer" trick) rather than a filtered scan over
// 0..2^k, matching spec §4.4 step 1.
func enumerateMasksWithPopcount(k, m int) []int {
	limit := uint64(1) << uint(k)
	count := binomial(k, m)
	out := make([]int, 0, count)
	x := uint64(1)<<uint(m) - 1
	for x < limit {
		out = append(out, int(x))
		x = gosperNext(x)
	}
	return out
}

// gosperNext computes the next integer greater than x with the same
// population count, using math/bits.TrailingZeros64 as the stand-in for
// the compiler's count-trailing-zeros intrinsic.
func gosperNext(x uint64) uint64 {
	z := x | (x - 1)
	notZ := ^z
	lowZeroBit := notZ & -notZ
	tz := bits.TrailingZeros64(x)
	return (z + 1) | ((lowZeroBit - 1) >> uint(tz+1))
}

func binomial(n, r int) int {
	if r < 0 || r > n {
		return 0
	}
	result := 1
	for i := 0; i < r; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}

// splitAcrossWorkers partitions masks into p.workers contiguous chunks,
// the block_size split from the original's emv_kernel thread loop.
func splitAcrossWorkers(masks []int, workers int) [][]int {
	chunks := make([][]int, workers)
	if len(masks) == 0 {
		return chunks
	}
	blockSize := (len(masks) + workers - 1) / workers
	if blockSize < 1 {
		blockSize = 1
	}
	for wid := 0; wid < workers; wid++ {
		lo := wid * blockSize
		if lo >= len(masks) {
			break
		}
		hi := lo + blockSize
		if hi > len(masks) {
			hi = len(masks)
		}
		chunks[wid] = masks[lo:hi]
	}
	return chunks
}
