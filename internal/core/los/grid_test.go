package los

// testGrid is a minimal TileOracle for tests. Tiles outside the grid are
// opaque.
type testGrid struct {
	w, h, ts int
	opaque   map[Cell]bool
}

func newTestGrid(w, h, ts int, walls ...Cell) *testGrid {
	g := &testGrid{w: w, h: h, ts: ts, opaque: make(map[Cell]bool)}
	for _, c := range walls {
		g.opaque[c] = true
	}
	return g
}

func (g *testGrid) Transparent(x, y int) bool {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return false
	}
	return !g.opaque[Cell{X: x, Y: y}]
}

func (g *testGrid) Width() int    { return g.w }
func (g *testGrid) Height() int   { return g.h }
func (g *testGrid) TileSize() int { return g.ts }
