package los

import "math"

// Projector closes the gaps between edge chains. For every edge endpoint
// without a neighbour it casts a ray from the observer through that endpoint
// and splices in a projection edge to the first edge the ray crosses.
type Projector struct {
	Origin Point

	// Fallback is used instead of Origin to aim rays through an endpoint
	// that coincides with the observer. Usually the centre of the observer
	// cell.
	Fallback Point

	Bounds    Rect
	Step      float64
	Tolerance float64
}

// NewProjector builds a Projector for a query from origin inside win.
func NewProjector(origin Point, cell Cell, win Window, tileSize int) Projector {
	ts := float64(tileSize)
	return Projector{
		Origin:    origin,
		Fallback:  Point{X: (float64(cell.X) + 0.5) * ts, Y: (float64(cell.Y) + 0.5) * ts},
		Bounds:    win.Bounds,
		Step:      ts,
		Tolerance: DefaultTolerance,
	}
}

// Project splices projection edges into edges and returns the extended
// list. Only the edges present on entry are considered as ray targets, and
// the first hit in list order wins; with edges sorted nearest first that is
// the nearest edge at extraction time.
//
// A ray that crosses nothing marks its source edge Unterminated. That is
// only an error if the polygon walk later needs the missing link.
func (p Projector) Project(edges []Edge) []Edge {
	n := len(edges)

	for i := 0; i < n; i++ {
		if edges[i].Next == NoLink {
			edges = p.projectForward(edges, i, n)
		}
		if edges[i].Prev == NoLink {
			edges = p.projectBackward(edges, i, n)
		}
	}

	return edges
}

// projectForward closes the gap after edge i. The hit edge loses the part
// before the crossing, which lies behind edge i.
func (p Projector) projectForward(edges []Edge, i, n int) []Edge {
	from := edges[i].B
	hit, at, ok := p.firstHit(edges[:n], i, from)
	if !ok {
		edges[i].Unterminated = true
		return edges
	}

	edges[hit].A = at
	edges = append(edges, Edge{
		A:          from,
		B:          at,
		Projection: true,
		Prev:       i,
		Next:       hit,
	})
	k := len(edges) - 1

	edges[i].Next = k
	if prev := edges[hit].Prev; prev >= 0 {
		edges[prev].Next = BrokenLink
	}
	edges[hit].Prev = k

	return edges
}

// projectBackward closes the gap before edge i. The hit edge loses the part
// after the crossing.
func (p Projector) projectBackward(edges []Edge, i, n int) []Edge {
	from := edges[i].A
	hit, at, ok := p.firstHit(edges[:n], i, from)
	if !ok {
		edges[i].Unterminated = true
		return edges
	}

	edges[hit].B = at
	edges = append(edges, Edge{
		A:          at,
		B:          from,
		Projection: true,
		Prev:       hit,
		Next:       i,
	})
	k := len(edges) - 1

	edges[i].Prev = k
	if next := edges[hit].Next; next >= 0 {
		edges[next].Prev = BrokenLink
	}
	edges[hit].Next = k

	return edges
}

// firstHit casts a ray from the observer through from and returns the first
// edge in list order, other than skip, that it crosses beyond from.
func (p Projector) firstHit(edges []Edge, skip int, from Point) (int, Point, bool) {
	far, ok := p.exit(from)
	if !ok {
		return 0, Point{}, false
	}

	for j := range edges {
		if j == skip {
			continue
		}
		if at, ok := segmentHit(from, far, edges[j].A, edges[j].B, p.Tolerance); ok {
			return j, at, true
		}
	}

	return 0, Point{}, false
}

// exit steps from along the ray direction until it leaves the frame.
func (p Projector) exit(from Point) (Point, bool) {
	d := sub(from, p.Origin)
	if math.Hypot(d.X, d.Y) <= p.Tolerance {
		d = sub(from, p.Fallback)
	}

	l := math.Hypot(d.X, d.Y)
	if l <= p.Tolerance || p.Step <= 0 {
		return Point{}, false
	}
	d.X *= p.Step / l
	d.Y *= p.Step / l

	far := from
	for p.Bounds.Contains(far) {
		far.X += d.X
		far.Y += d.Y
	}
	return far, true
}
