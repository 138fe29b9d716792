package steiner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"steinertree/pkg/csr"
	"steinertree/pkg/pq"
	"steinertree/pkg/stp"
)

func buildAdj(t *testing.T, n int, edges []stp.Edge, workers int) *csr.Adjacency {
	t.Helper()
	adj, err := csr.Build(&stp.Graph{NumVertices: n, Edges: edges}, workers)
	require.NoError(t, err)
	return adj
}

// TestTriangleTwoTerminals is spec §8 scenario 1: n=3, terminals {1,3}
// (0-based {0,2}). Expected cost 2, tree {(1,2),(2,3)} i.e. {(0,1),(1,2)}.
func TestTriangleTwoTerminals(t *testing.T) {
	adj := buildAdj(t, 3, []stp.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 1},
		{U: 0, V: 2, Weight: 5},
	}, 2)

	res, err := Solve(adj, []int{0, 2}, Options{Heap: pq.Binary, Workers: 2, Track: true})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Cost)
	require.NoError(t, ValidateTree(3, res.Edges, []int{0, 2}))
}

// TestStarThreeTerminals is spec §8 scenario 2: n=4, star centred on
// vertex 0, terminals {2,3,4} (0-based {1,2,3}). Cost 3, all three spokes.
func TestStarThreeTerminals(t *testing.T) {
	adj := buildAdj(t, 4, []stp.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 0, V: 2, Weight: 1},
		{U: 0, V: 3, Weight: 1},
	}, 3)

	res, err := Solve(adj, []int{1, 2, 3}, Options{Heap: pq.Binary, Workers: 3, Track: true})
	require.NoError(t, err)
	require.Equal(t, int64(3), res.Cost)
	require.Len(t, res.Edges, 3)
	require.NoError(t, ValidateTree(4, res.Edges, []int{1, 2, 3}))
}

// TestDiamond is spec §8 scenario 3: n=4, terminals {1,4} (0-based {0,3}).
// Cost 3 via either diagonal.
func TestDiamond(t *testing.T) {
	adj := buildAdj(t, 4, []stp.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 0, V: 2, Weight: 2},
		{U: 1, V: 3, Weight: 2},
		{U: 2, V: 3, Weight: 1},
	}, 2)

	res, err := Solve(adj, []int{0, 3}, Options{Heap: pq.Binary, Workers: 2, Track: true})
	require.NoError(t, err)
	require.Equal(t, int64(3), res.Cost)
}

// TestSingleTerminal is spec §8 boundary behaviour k=1.
func TestSingleTerminal(t *testing.T) {
	adj := buildAdj(t, 4, []stp.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 1},
		{U: 2, V: 3, Weight: 1},
	}, 1)

	res, err := Solve(adj, []int{2}, Options{Heap: pq.Binary, Workers: 1, Track: true})
	require.NoError(t, err)
	require.Equal(t, int64(0), res.Cost)
	require.Empty(t, res.Edges)
}

// TestPathGraphEndpoints is spec §8 scenario 6: n=6 path, terminals at
// both ends. Cost 5.
func TestPathGraphEndpoints(t *testing.T) {
	adj := buildAdj(t, 6, []stp.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 1},
		{U: 2, V: 3, Weight: 1},
		{U: 3, V: 4, Weight: 1},
		{U: 4, V: 5, Weight: 1},
	}, 2)

	res, err := Solve(adj, []int{0, 5}, Options{Heap: pq.Binary, Workers: 2, Track: true})
	require.NoError(t, err)
	require.Equal(t, int64(5), res.Cost)
	require.NoError(t, ValidateTree(6, res.Edges, []int{0, 5}))
}

// TestRootEquivalence is spec §8's "Root equivalence" invariant: the
// final cost must not depend on which terminal is placed last (chosen as
// q) in the terminal ordering passed to Solve.
func TestRootEquivalence(t *testing.T) {
	adj := buildAdj(t, 4, []stp.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 1},
		{U: 2, V: 3, Weight: 1},
		{U: 0, V: 3, Weight: 10},
	}, 3)
	terminals := []int{0, 1, 2, 3}

	var costs []int64
	for i := range terminals {
		rotated := append(append([]int{}, terminals[i+1:]...), terminals[:i+1]...)
		res, err := Solve(adj, rotated, Options{Heap: pq.Binary, Workers: 2})
		require.NoError(t, err)
		costs = append(costs, res.Cost)
	}
	for _, c := range costs[1:] {
		require.Equal(t, costs[0], c)
	}
}

// TestDisconnectedTerminalsYieldInfinity is spec §8's boundary behaviour:
// a disconnected graph with terminals in different components reports
// MAX_DISTANCE (here csr.Inf) rather than hanging or erroring.
func TestDisconnectedTerminalsYieldInfinity(t *testing.T) {
	adj := buildAdj(t, 4, []stp.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 2, V: 3, Weight: 1},
	}, 2)

	res, err := Solve(adj, []int{0, 3}, Options{Heap: pq.Binary, Workers: 2})
	require.NoError(t, err)
	require.Equal(t, csr.Inf, res.Cost)
}

// TestHeapBackendsAgree checks the DP kernel produces the same cost
// whichever heap implementation backs it.
func TestHeapBackendsAgree(t *testing.T) {
	adj := buildAdj(t, 5, []stp.Edge{
		{U: 0, V: 1, Weight: 2},
		{U: 1, V: 2, Weight: 2},
		{U: 2, V: 3, Weight: 2},
		{U: 3, V: 4, Weight: 2},
		{U: 0, V: 4, Weight: 3},
	}, 2)
	terminals := []int{0, 2, 4}

	binRes, err := Solve(adj, terminals, Options{Heap: pq.Binary, Workers: 2})
	require.NoError(t, err)
	fibRes, err := Solve(adj, terminals, Options{Heap: pq.Fibonacci, Workers: 2})
	require.NoError(t, err)
	require.Equal(t, binRes.Cost, fibRes.Cost)
}

// TestSolveIsIdempotent: running EMV twice on the same input yields the
// same cost (spec §8 "Round-trip / idempotence").
func TestSolveIsIdempotent(t *testing.T) {
	adj := buildAdj(t, 5, []stp.Edge{
		{U: 0, V: 1, Weight: 2},
		{U: 1, V: 2, Weight: 2},
		{U: 2, V: 3, Weight: 2},
		{U: 3, V: 4, Weight: 2},
		{U: 0, V: 4, Weight: 3},
	}, 2)
	terminals := []int{0, 2, 4}

	first, err := Solve(adj, terminals, Options{Heap: pq.Binary, Workers: 2, Track: true})
	require.NoError(t, err)
	second, err := Solve(adj, terminals, Options{Heap: pq.Binary, Workers: 2, Track: true})
	require.NoError(t, err)
	require.Equal(t, first.Cost, second.Cost)

	// Up to tie-breaks, the traced-back edge multiset is identical too;
	// order is irrelevant, so sort before diffing.
	sortEdges := cmpopts.SortSlices(func(a, b TreeEdge) bool {
		if a.U != b.U {
			return a.U < b.U
		}
		return a.V < b.V
	})
	if diff := cmp.Diff(first.Edges, second.Edges, sortEdges); diff != "" {
		t.Errorf("edge multiset differs between identical runs (-first +second):\n%s", diff)
	}
}
