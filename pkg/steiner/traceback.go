package steiner

// traceback reconstructs the Steiner tree's edge set from b by recursing
// from (q, C) per spec §4.5. No deduplication is performed: the
// invariants of b guarantee each edge appears at most once.
func traceback(b *BackTable, q, c int) []TreeEdge {
	var edges []TreeEdge
	var walk func(v, X int)
	walk = func(v, X int) {
		if X == 0 || v < 0 {
			return
		}
		bp := b.Get(X, v)
		if bp.U < 0 {
			return
		}
		if bp.U != v {
			edges = append(edges, TreeEdge{U: v, V: bp.U})
			walk(bp.U, bp.Split)
			return
		}
		if bp.Split != X {
			walk(v, bp.Split)
			walk(v, X&^bp.Split)
		}
	}
	walk(q, c)
	return edges
}
