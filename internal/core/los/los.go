package los

import "github.com/pkg/errors"

// Options tunes a Tracker.
type Options struct {
	// IterationCap bounds the polygon walk. A walk that needs more steps
	// fails the query with ErrUnclosedChain.
	IterationCap int

	// ArcSegments is the number of chords approximating a full circle.
	ArcSegments int

	// Tolerance is the distance under which two world points are equal.
	Tolerance float64
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		IterationCap: DefaultIterationCap,
		ArcSegments:  DefaultArcSegments,
		Tolerance:    DefaultTolerance,
	}
}

// Trace is everything a single query produced, for callers that want to
// look past the final region.
type Trace struct {
	Cell     Cell
	Window   Window
	CacheHit bool

	// Edges is the working edge list after projection.
	Edges []Edge

	// Polygon is the closed visibility polygon before the cone clip.
	Polygon []Point

	Region Region
}

// Tracker answers line-of-sight queries for one observer. It owns the edge
// cache for that observer and is not safe for concurrent use; give every
// observer its own Tracker or serialize access.
type Tracker struct {
	grid  TileOracle
	cache *Cache
	opts  Options
}

// NewTracker creates a Tracker over grid. Zero fields in opts take their
// defaults.
func NewTracker(grid TileOracle, opts Options) *Tracker {
	def := DefaultOptions()
	if opts.IterationCap <= 0 {
		opts.IterationCap = def.IterationCap
	}
	if opts.ArcSegments <= 0 {
		opts.ArcSegments = def.ArcSegments
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = def.Tolerance
	}

	return &Tracker{
		grid:  grid,
		cache: NewCache(grid),
		opts:  opts,
	}
}

// Options returns the effective options.
func (t *Tracker) Options() Options {
	return t.opts
}

// Cache exposes the tracker's edge cache.
func (t *Tracker) Cache() *Cache {
	return t.cache
}

// Invalidate forces the next query to re-extract edges. Call it after the
// grid changes.
func (t *Tracker) Invalidate() {
	t.cache.Invalidate()
}

// Compute returns the region visible to o.
//
// A non-positive range or an observer outside the grid yields an empty
// region and no error. Errors are reserved for corrupt edge chains, see
// ErrUnclosedChain, ErrBrokenChain, ErrUnterminatedProjection and
// ErrObserverOutside.
func (t *Tracker) Compute(o Observer) (Region, error) {
	tr, err := t.Trace(o)
	if err != nil {
		return Region{}, err
	}
	return tr.Region, nil
}

// Trace runs a query and returns its intermediate results.
func (t *Tracker) Trace(o Observer) (*Trace, error) {
	ts := t.grid.TileSize()
	if o.Range <= 0 || ts <= 0 {
		return &Trace{}, nil
	}

	cell := CellOf(o.X, o.Y, ts)
	if cell.X < 0 || cell.Y < 0 || cell.X >= t.grid.Width() || cell.Y >= t.grid.Height() {
		return &Trace{Cell: cell}, nil
	}

	origin := Point{X: float64(o.X), Y: float64(o.Y)}
	edges, win, hit := t.cache.Fetch(origin, cell, o.Range/ts)

	LinkEdges(edges)

	proj := NewProjector(origin, cell, win, ts)
	proj.Tolerance = t.opts.Tolerance
	edges = proj.Project(edges)

	tr := &Trace{
		Cell:     cell,
		Window:   win,
		CacheHit: hit,
		Edges:    edges,
	}

	polygon, err := AssemblePolygon(edges, 0, t.opts.IterationCap)
	if err != nil {
		return tr, errors.Wrapf(err, "line of sight from (%d, %d) range %d", o.X, o.Y, o.Range)
	}
	tr.Polygon = polygon

	region, err := ClipCone(polygon, origin, float64(o.Range), o.Angle, o.Direction, t.opts.ArcSegments, t.opts.Tolerance)
	if err != nil {
		return tr, errors.Wrapf(err, "line of sight from (%d, %d) range %d", o.X, o.Y, o.Range)
	}
	tr.Region = region
	return tr, nil
}
