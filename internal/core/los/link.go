package los

// LinkEdges connects each edge to the first edge, in list order, that starts
// exactly where it ends. Endpoints are compared for exact equality: every
// extracted vertex lies on the tile lattice.
func LinkEdges(edges []Edge) {
	for i := range edges {
		for j := range edges {
			if i != j && edges[i].B == edges[j].A {
				edges[i].Next = j
				edges[j].Prev = i
				break
			}
		}
	}
}
