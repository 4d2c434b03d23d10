package los

// Cache memoizes the extracted edge set for one observer. It is keyed on the
// observer's tile cell (and range); a different key replaces the template
// wholesale.
//
// A Cache is not safe for concurrent use. Keep one per observer.
type Cache struct {
	grid TileOracle

	valid      bool
	cell       Cell
	rangeTiles int
	template   []Edge
	window     Window

	hits, misses int
}

// NewCache creates an empty cache reading from grid.
func NewCache(grid TileOracle) *Cache {
	return &Cache{grid: grid}
}

// Fetch returns a private copy of the edge set for cell, extracting it on a
// miss. Callers may mutate the returned edges freely.
func (c *Cache) Fetch(origin Point, cell Cell, rangeTiles int) ([]Edge, Window, bool) {
	hit := c.valid && c.cell == cell && c.rangeTiles == rangeTiles
	if hit {
		c.hits++
	} else {
		c.template, c.window = ExtractEdges(c.grid, origin, cell, rangeTiles)
		c.cell = cell
		c.rangeTiles = rangeTiles
		c.valid = true
		c.misses++
	}

	return cloneEdges(c.template), c.window, hit
}

// Invalidate drops the template; the next Fetch extracts again.
func (c *Cache) Invalidate() {
	c.valid = false
	c.template = nil
}

// Stats returns the number of hits and misses so far.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

// cloneEdges copies the template with all links reset. Extra capacity is
// reserved for the projection edges appended later.
func cloneEdges(src []Edge) []Edge {
	dst := make([]Edge, len(src), 2*len(src))
	for i, e := range src {
		dst[i] = newEdge(e.A.X, e.A.Y, e.B.X, e.B.Y)
	}
	return dst
}
