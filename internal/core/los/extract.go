package los

import "sort"

// CellOf converts a world position to the tile cell containing it.
func CellOf(x, y, tileSize int) Cell {
	return Cell{X: floorDiv(x, tileSize), Y: floorDiv(y, tileSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// WindowAround returns the tile window of rangeTiles around cell, clamped to
// the grid, and its world-space frame.
func WindowAround(cell Cell, rangeTiles int, grid TileOracle) Window {
	ts := float64(grid.TileSize())

	x1 := max(0, cell.X-rangeTiles)
	y1 := max(0, cell.Y-rangeTiles)
	x2 := min(grid.Width()-1, cell.X+rangeTiles)
	y2 := min(grid.Height()-1, cell.Y+rangeTiles)

	return Window{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		Bounds: Rect{
			MinX: float64(x1-1) * ts,
			MinY: float64(y1-1) * ts,
			MaxX: float64(x2+2) * ts,
			MaxY: float64(y2+2) * ts,
		},
	}
}

// ExtractEdges scans the window around cell for occluding tile faces and
// closes the set with a perimeter frame one tile outside the window.
//
// Only faces that border a transparent tile and face the observer are kept.
// Faces are oriented so that every chain runs the same way around the
// observer. The result is sorted by distance from origin; later stages rely
// on that order to break ties.
func ExtractEdges(grid TileOracle, origin Point, cell Cell, rangeTiles int) ([]Edge, Window) {
	win := WindowAround(cell, rangeTiles, grid)
	ts := float64(grid.TileSize())
	bb := win.Bounds

	var edges []Edge
	keep := func(e Edge) {
		if bb.Contains(e.A) || bb.Contains(e.B) {
			edges = append(edges, e)
		}
	}

	for x := win.X1; x <= win.X2; x++ {
		for y := win.Y1; y <= win.Y2; y++ {
			if grid.Transparent(x, y) {
				continue
			}

			fx := float64(x) * ts
			fy := float64(y) * ts

			// Wall above the observer, open below: bottom face, left to right
			if y < cell.Y && grid.Transparent(x, y+1) {
				keep(newEdge(fx, fy+ts, fx+ts, fy+ts))
			} else if y > cell.Y && grid.Transparent(x, y-1) {
				// Wall below, open above: top face, right to left
				keep(newEdge(fx+ts, fy, fx, fy))
			}

			// Wall left of the observer, open to its right: right face, bottom to top
			if x < cell.X && grid.Transparent(x+1, y) {
				keep(newEdge(fx+ts, fy+ts, fx+ts, fy))
			}

			// Wall right of the observer, open to its left: left face, top to bottom
			if x > cell.X && grid.Transparent(x-1, y) {
				keep(newEdge(fx, fy, fx, fy+ts))
			}
		}
	}

	edges = append(edges, perimeter(win, ts)...)
	sortByDistance(edges, origin)

	return edges, win
}

// perimeter decomposes the window frame into unit segments wound the same
// way as the occluder faces.
func perimeter(win Window, ts float64) []Edge {
	x1, y1, x2, y2 := win.X1, win.Y1, win.X2, win.Y2
	cols := x2 - x1 + 3
	rows := y2 - y1 + 3

	edges := make([]Edge, 0, 2*(cols+rows))

	for l := 0; l < cols; l++ {
		top := float64(y1-1) * ts
		bottom := float64(y2+2) * ts
		edges = append(edges,
			newEdge(float64(x1-1+l)*ts, top, float64(x1+l)*ts, top),
			newEdge(float64(x2+2-l)*ts, bottom, float64(x2+1-l)*ts, bottom),
		)
	}

	for l := 0; l < rows; l++ {
		right := float64(x2+2) * ts
		left := float64(x1-1) * ts
		edges = append(edges,
			newEdge(right, float64(y1-1+l)*ts, right, float64(y1+l)*ts),
			newEdge(left, float64(y2+2-l)*ts, left, float64(y2+1-l)*ts),
		)
	}

	return edges
}

func sortByDistance(edges []Edge, origin Point) {
	type keyed struct {
		edge Edge
		dist float64
	}

	ks := make([]keyed, len(edges))
	for i, e := range edges {
		ks[i] = keyed{edge: e, dist: SegmentDistance(origin, e.A, e.B)}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		return ks[i].dist < ks[j].dist
	})

	for i := range ks {
		edges[i] = ks[i].edge
	}
}
