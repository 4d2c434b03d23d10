// Package los computes line-of-sight regions on a tile grid.
//
// A query extracts the tile edges that can occlude the observer, links them
// into chains, closes the gaps between chains with projection edges cast
// from the observer, walks the result into a polygon and finally clips that
// polygon to the observer's view cone.
package los

// Point is a position in world units (tile units times tile size).
type Point struct {
	X, Y float64
}

// Cell is a tile coordinate.
type Cell struct {
	X, Y int
}

// Link values for Edge.Next and Edge.Prev that do not address an edge.
const (
	NoLink     = -1 // not linked yet
	BrokenLink = -2 // invalidated by a later projection splice; never traversed
)

// Edge is a directed segment from A to B. Next and Prev index into the
// working edge list of a single query.
type Edge struct {
	A, B       Point
	Projection bool
	Next, Prev int

	// Unterminated is set when a ray cast from one of this edge's dangling
	// endpoints found nothing to close on.
	Unterminated bool
}

func newEdge(ax, ay, bx, by float64) Edge {
	return Edge{
		A:    Point{X: ax, Y: ay},
		B:    Point{X: bx, Y: by},
		Next: NoLink,
		Prev: NoLink,
	}
}

// Rect is an axis-aligned rectangle, half-open on its max sides.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies in [MinX,MaxX) x [MinY,MaxY).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Window is the tile window scanned around the observer together with the
// world-space frame that encloses it one tile further out on every side.
type Window struct {
	X1, Y1, X2, Y2 int
	Bounds         Rect
}

// TileOracle is the read-only view of the tile grid. It must not change for
// the duration of a query.
type TileOracle interface {
	Transparent(x, y int) bool
	Width() int
	Height() int
	TileSize() int
}

// Observer describes a line-of-sight query.
//
// X and Y are the world position and Range the view distance in world units.
// Angle (the full width of the view cone) and Direction (its bisector) are
// both in radians. Direction uses screen convention: 0 points along +X and
// pi/2 along +Y, which is down on screen.
type Observer struct {
	X, Y      int
	Range     int
	Angle     float64
	Direction float64
}
