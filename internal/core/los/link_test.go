package los

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkEdgesFrameIsClosed(t *testing.T) {
	grid := newTestGrid(10, 10, 32)
	edges, _ := ExtractEdges(grid, Point{X: 160, Y: 160}, Cell{X: 5, Y: 5}, 5)

	LinkEdges(edges)

	for i, e := range edges {
		if assert.GreaterOrEqual(t, e.Next, 0, "edge %d", i) {
			assert.Equal(t, e.B, edges[e.Next].A)
			assert.Equal(t, i, edges[e.Next].Prev)
		}
	}
}

func TestLinkEdgesTakesFirstMatch(t *testing.T) {
	edges := []Edge{
		newEdge(0, 0, 1, 0),
		newEdge(1, 0, 1, 1),
		newEdge(1, 0, 2, 0),
		newEdge(5, 5, 6, 6),
	}

	LinkEdges(edges)

	assert.Equal(t, 1, edges[0].Next)
	assert.Equal(t, 0, edges[1].Prev)
	assert.Equal(t, NoLink, edges[2].Prev)
	assert.Equal(t, NoLink, edges[0].Prev)
	assert.Equal(t, NoLink, edges[3].Next)
	assert.Equal(t, NoLink, edges[3].Prev)
}
