package los

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projected(t *testing.T, grid *testGrid, x, y, rangeTiles int) []Edge {
	t.Helper()

	origin := Point{X: float64(x), Y: float64(y)}
	cell := CellOf(x, y, grid.ts)
	edges, win := ExtractEdges(grid, origin, cell, rangeTiles)
	LinkEdges(edges)
	return NewProjector(origin, cell, win, grid.ts).Project(edges)
}

func TestProjectSingleOccluder(t *testing.T) {
	grid := newTestGrid(20, 20, 32, Cell{X: 6, Y: 5})

	edges := projected(t, grid, 176, 176, 5)

	wall := edges[0]
	require.Equal(t, Point{X: 192, Y: 160}, wall.A)
	require.Equal(t, Point{X: 192, Y: 192}, wall.B)

	require.GreaterOrEqual(t, wall.Next, 0)
	fwd := edges[wall.Next]
	assert.True(t, fwd.Projection)
	assert.Equal(t, wall.B, fwd.A)
	assert.InDelta(t, 384, fwd.B.X, 1e-6)
	assert.InDelta(t, 384, fwd.B.Y, 1e-6)
	assert.Equal(t, fwd.B, edges[fwd.Next].A, "hit edge truncated to the crossing")

	require.GreaterOrEqual(t, wall.Prev, 0)
	back := edges[wall.Prev]
	assert.True(t, back.Projection)
	assert.Equal(t, wall.A, back.B)
	assert.InDelta(t, 384, back.A.X, 1e-6)
	assert.InDelta(t, -32, back.A.Y, 1e-6)
	assert.Equal(t, back.A, edges[back.Prev].B)

	for _, e := range edges {
		assert.False(t, e.Unterminated)
	}
}

func TestProjectMarksInvalidatedLinksBroken(t *testing.T) {
	grid := newTestGrid(20, 20, 32, Cell{X: 5, Y: 3})

	edges := projected(t, grid, 176, 176, 5)

	broken := 0
	for _, e := range edges {
		if e.Next == BrokenLink {
			broken++
		}
		if e.Prev == BrokenLink {
			broken++
		}
	}
	// One splice on each side of the wall, each splice breaks the link
	// that fed into (or out of) the truncated frame edge.
	assert.Equal(t, 2, broken)
}

func TestProjectHitsInteriorOfFrameEdge(t *testing.T) {
	grid := newTestGrid(20, 20, 32, Cell{X: 5, Y: 3})

	edges := projected(t, grid, 176, 176, 5)

	wall := edges[0]
	require.Equal(t, Point{X: 160, Y: 128}, wall.A)

	back := edges[wall.Prev]
	assert.InDelta(t, 160-16.0*160/48, back.A.X, 1e-6)
	assert.InDelta(t, -32, back.A.Y, 1e-6)

	fwd := edges[wall.Next]
	assert.InDelta(t, 192+16.0*160/48, fwd.B.X, 1e-6)
	assert.InDelta(t, -32, fwd.B.Y, 1e-6)
}

func TestProjectWithoutTargetsMarksUnterminated(t *testing.T) {
	edges := []Edge{newEdge(10, 0, 10, 10)}
	p := Projector{
		Origin:    Point{X: 0, Y: 5},
		Bounds:    Rect{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100},
		Step:      10,
		Tolerance: DefaultTolerance,
	}

	out := p.Project(edges)

	require.Len(t, out, 1)
	assert.True(t, out[0].Unterminated)
	assert.Equal(t, NoLink, out[0].Next)
}

func TestProjectEndpointAtObserverUsesFallback(t *testing.T) {
	// The wall's right face ends exactly on the observer, so the ray is
	// aimed from the cell centre instead.
	grid := newTestGrid(20, 20, 32, Cell{X: 4, Y: 5})

	edges := projected(t, grid, 160, 160, 5)

	wall := edges[0]
	require.Equal(t, Point{X: 160, Y: 160}, wall.B)
	assert.False(t, wall.Unterminated)
	require.GreaterOrEqual(t, wall.Next, 0)

	fwd := edges[wall.Next]
	assert.True(t, fwd.Projection)
	assert.InDelta(t, -32, fwd.B.X, 1e-6)
	assert.InDelta(t, -32, fwd.B.Y, 1e-6)
}
