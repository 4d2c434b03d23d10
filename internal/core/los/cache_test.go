package los

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHitsOnSameCell(t *testing.T) {
	grid := newTestGrid(20, 20, 32, Cell{X: 6, Y: 5})
	cache := NewCache(grid)

	first, win1, hit := cache.Fetch(Point{X: 176, Y: 176}, Cell{X: 5, Y: 5}, 5)
	assert.False(t, hit)

	// Another position in the same cell reuses the template.
	second, win2, hit := cache.Fetch(Point{X: 170, Y: 180}, Cell{X: 5, Y: 5}, 5)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, win1, win2)

	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestCacheMissesOnCellOrRangeChange(t *testing.T) {
	grid := newTestGrid(20, 20, 32, Cell{X: 6, Y: 5})
	cache := NewCache(grid)

	a, _, _ := cache.Fetch(Point{X: 176, Y: 176}, Cell{X: 5, Y: 5}, 5)
	b, _, hit := cache.Fetch(Point{X: 144, Y: 176}, Cell{X: 4, Y: 5}, 5)
	assert.False(t, hit)
	assert.NotEqual(t, a, b)

	_, _, hit = cache.Fetch(Point{X: 144, Y: 176}, Cell{X: 4, Y: 5}, 3)
	assert.False(t, hit)

	_, misses := cache.Stats()
	assert.Equal(t, 3, misses)
}

func TestCacheFetchReturnsIndependentCopies(t *testing.T) {
	grid := newTestGrid(20, 20, 32, Cell{X: 6, Y: 5})
	cache := NewCache(grid)
	origin := Point{X: 176, Y: 176}
	cell := Cell{X: 5, Y: 5}

	pristine, _, _ := cache.Fetch(origin, cell, 5)

	working, _, _ := cache.Fetch(origin, cell, 5)
	LinkEdges(working)
	working = NewProjector(origin, cell, WindowAround(cell, 5, grid), 32).Project(working)
	require.Greater(t, len(working), len(pristine))
	working[0].A = Point{X: -1000, Y: -1000}

	again, _, hit := cache.Fetch(origin, cell, 5)
	require.True(t, hit)
	assert.Equal(t, pristine, again)
	for _, e := range again {
		assert.Equal(t, NoLink, e.Next)
		assert.Equal(t, NoLink, e.Prev)
		assert.False(t, e.Projection)
	}
}

func TestCacheInvalidate(t *testing.T) {
	grid := newTestGrid(20, 20, 32)
	cache := NewCache(grid)
	origin := Point{X: 176, Y: 176}
	cell := Cell{X: 5, Y: 5}

	open, _, _ := cache.Fetch(origin, cell, 5)

	grid.opaque[Cell{X: 6, Y: 5}] = true
	stale, _, hit := cache.Fetch(origin, cell, 5)
	assert.True(t, hit)
	assert.Equal(t, open, stale)

	cache.Invalidate()
	fresh, _, hit := cache.Fetch(origin, cell, 5)
	assert.False(t, hit)
	assert.Len(t, fresh, len(open)+1)
}
