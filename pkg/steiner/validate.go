package steiner

import (
	"fmt"

	"steinertree/pkg/csr"
)

// ValidateTree checks the "tree validity" property from spec §8: the
// edge list, read as a subgraph, must be acyclic, every terminal must
// appear in it (trivially true for k <= 1, where edges is empty), and
// (when there is more than one terminal) every terminal must lie in the
// same connected component.
func ValidateTree(numVertices int, edges []TreeEdge, terminals []int) error {
	uf := csr.NewUnionFind(numVertices)
	for _, e := range edges {
		if !uf.Union(e.U, e.V) {
			return fmt.Errorf("steiner: tree is not acyclic: edge (%d, %d) closes a cycle", e.U, e.V)
		}
	}
	if len(terminals) == 0 {
		return nil
	}
	root := uf.Find(terminals[0])
	for _, t := range terminals[1:] {
		if uf.Find(t) != root {
			return fmt.Errorf("steiner: terminal %d is not connected to terminal %d in the reconstructed tree", t, terminals[0])
		}
	}
	return nil
}
