package los

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
)

// DefaultArcSegments is the number of chords used for a full circle.
const DefaultArcSegments = 256

// DefaultTolerance is the distance under which two world points are equal.
const DefaultTolerance = 1e-6

// Region is the area an observer can see. The zero value is empty.
//
// Contours never overlap and none of them is a hole: a full view is a single
// outline, a view cone split by the edge of the visible area is one fan per
// piece.
type Region struct {
	poly polyclip.Polygon
}

// Empty reports whether the region has no area.
func (r Region) Empty() bool {
	return len(r.poly) == 0
}

// Contours returns the region outline as vertex loops. Loops are not closed
// explicitly.
func (r Region) Contours() [][]Point {
	out := make([][]Point, 0, len(r.poly))
	for _, c := range r.poly {
		loop := make([]Point, len(c))
		for i, p := range c {
			loop[i] = Point{X: p.X, Y: p.Y}
		}
		out = append(out, loop)
	}
	return out
}

// Contains reports whether p lies inside the region.
func (r Region) Contains(p Point) bool {
	pt := polyclip.Point{X: p.X, Y: p.Y}
	for _, c := range r.poly {
		if c.Contains(pt) {
			return true
		}
	}
	return false
}

// Area returns the area of the region.
func (r Region) Area() float64 {
	area := 0.0
	for _, loop := range r.Contours() {
		area += PolygonArea(loop)
	}
	return area
}

// Bounds returns the bounding box of the region.
func (r Region) Bounds() Rect {
	if r.Empty() {
		return Rect{}
	}
	bb := r.poly.BoundingBox()
	return Rect{MinX: bb.Min.X, MinY: bb.Min.Y, MaxX: bb.Max.X, MaxY: bb.Max.Y}
}

// Sector builds the pie slice of the view cone. angle is the full cone width
// and direction its bisector, both in radians. A cone of 2*pi or more is a
// full disc.
func Sector(center Point, radius, angle, direction float64, segments int) polyclip.Polygon {
	if radius <= 0 || angle <= 0 {
		return nil
	}
	if segments < 3 {
		segments = DefaultArcSegments
	}

	var c polyclip.Contour
	if angle >= 2*math.Pi {
		for i := 0; i < segments; i++ {
			a := direction + 2*math.Pi*float64(i)/float64(segments)
			c.Add(arcPoint(center, radius, a))
		}
		return polyclip.Polygon{c}
	}

	n := int(math.Ceil(float64(segments) * angle / (2 * math.Pi)))
	if n < 1 {
		n = 1
	}

	c.Add(polyclip.Point{X: center.X, Y: center.Y})
	start := direction - angle/2
	for i := 0; i <= n; i++ {
		c.Add(arcPoint(center, radius, start+angle*float64(i)/float64(n)))
	}
	return polyclip.Polygon{c}
}

func arcPoint(center Point, radius, a float64) polyclip.Point {
	return polyclip.Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
}

// ClipCone intersects a closed visibility polygon with the view cone of an
// observer at center.
//
// The polygon must be star-shaped around center, as a visibility polygon
// is. The outline is first cut to the cone by angle around center, then
// every piece is cut to the range circle, with the parts beyond it replaced
// by arcs. Both passes are linear in the number of vertices.
//
// A polygon that does not wind around center fails with ErrObserverOutside.
func ClipCone(polygon []Point, center Point, radius, angle, direction float64, segments int, tol float64) (Region, error) {
	if radius <= 0 || angle <= 0 {
		return Region{}, nil
	}
	if segments < 3 {
		segments = DefaultArcSegments
	}

	ring := cleanRing(polygon, tol)
	if len(ring) < 3 {
		return Region{}, nil
	}

	f, err := fanAround(ring, center, tol)
	if err != nil {
		return Region{}, err
	}

	var pieces [][]Point
	if angle >= 2*math.Pi {
		pieces = [][]Point{f.whole()}
	} else {
		pieces = f.cut(direction-angle/2, angle)
	}

	var out polyclip.Polygon
	for _, piece := range pieces {
		if len(piece) < 3 {
			continue
		}
		c := clipDisc(piece, center, radius, direction, segments)
		if len(c) < 3 {
			continue
		}
		if PolygonArea(toPoints(c)) <= tol {
			continue
		}
		out.Add(c)
	}
	if len(out) == 0 {
		return Region{}, nil
	}
	return Region{poly: out}, nil
}

// cleanRing drops the closing vertex and any vertex within tol of its
// predecessor.
func cleanRing(polygon []Point, tol float64) []Point {
	ring := make([]Point, 0, len(polygon))
	for _, p := range polygon {
		if n := len(ring); n > 0 && samePoint(ring[n-1], p, tol) {
			continue
		}
		ring = append(ring, p)
	}
	for len(ring) > 1 && samePoint(ring[0], ring[len(ring)-1], tol) {
		ring = ring[:len(ring)-1]
	}
	return ring
}

// fan is an outline as seen from its centre. phi holds the unwrapped angle
// of every point, increasing along the outline.
//
// A closed fan has the centre strictly inside; its last point repeats the
// first and phi spans one full turn. An open fan has the centre on its
// outline; the centre is the implied first and last vertex and phi spans the
// interior angle there.
type fan struct {
	center Point
	pts    []Point
	phi    []float64
	closed bool
}

func fanAround(ring []Point, center Point, tol float64) (*fan, error) {
	pivot := -1
	for i, p := range ring {
		if samePoint(p, center, tol) {
			pivot = i
			break
		}
	}
	if pivot < 0 {
		for i := range ring {
			a, b := ring[i], ring[(i+1)%len(ring)]
			if SegmentDistance(center, a, b) <= tol {
				// Split the edge at the centre
				ring = append(ring[:i+1:i+1], append([]Point{center}, ring[i+1:]...)...)
				pivot = i + 1
				break
			}
		}
	}

	f := &fan{center: center}
	if pivot >= 0 {
		for k := 1; k < len(ring); k++ {
			p := ring[(pivot+k)%len(ring)]
			if samePoint(p, center, tol) {
				continue
			}
			f.pts = append(f.pts, p)
		}
		if len(f.pts) < 2 {
			return f, nil
		}
	} else {
		f.closed = true
		f.pts = append(append(f.pts, ring...), ring[0])
	}

	if f.unwrap() < 0 {
		for i, j := 0, len(f.pts)-1; i < j; i, j = i+1, j-1 {
			f.pts[i], f.pts[j] = f.pts[j], f.pts[i]
		}
		f.unwrap()
	}

	if f.closed && f.span() < math.Pi {
		return nil, ErrObserverOutside
	}
	return f, nil
}

// unwrap fills phi and returns the total turn.
func (f *fan) unwrap() float64 {
	f.phi = make([]float64, len(f.pts))
	prev := f.angle(f.pts[0])
	f.phi[0] = prev
	for i := 1; i < len(f.pts); i++ {
		a := f.angle(f.pts[i])
		f.phi[i] = f.phi[i-1] + normalizeTurn(a-prev)
		prev = a
	}
	return f.span()
}

func (f *fan) span() float64 {
	if len(f.phi) == 0 {
		return 0
	}
	return f.phi[len(f.phi)-1] - f.phi[0]
}

func (f *fan) angle(p Point) float64 {
	return math.Atan2(p.Y-f.center.Y, p.X-f.center.X)
}

// whole returns the complete outline.
func (f *fan) whole() []Point {
	if f.closed {
		return f.pts[:len(f.pts)-1]
	}
	if len(f.pts) < 2 {
		return nil
	}
	return append([]Point{f.center}, f.pts...)
}

// cut returns the parts of the outline between angle start and start+width,
// each closed through the centre. width is below one full turn.
func (f *fan) cut(start, width float64) [][]Point {
	if len(f.pts) < 2 {
		return nil
	}

	if f.closed {
		// Go round twice so that a cone across the seam is one piece.
		n := len(f.pts)
		for i := 1; i < n; i++ {
			f.pts = append(f.pts, f.pts[i])
			f.phi = append(f.phi, f.phi[i]+2*math.Pi)
		}

		lo := f.phi[0]
		s := start + 2*math.Pi*math.Ceil((lo-start)/(2*math.Pi))
		if piece := f.slice(s, s+width); piece != nil {
			return [][]Point{piece}
		}
		return nil
	}

	lo, hi := f.phi[0], f.phi[len(f.phi)-1]
	s := start - 2*math.Pi*math.Ceil((start-lo)/(2*math.Pi))

	var out [][]Point
	for ; s < hi; s += 2 * math.Pi {
		u, v := math.Max(s, lo), math.Min(s+width, hi)
		if v-u <= 1e-12 {
			continue
		}
		if piece := f.slice(u, v); piece != nil {
			out = append(out, piece)
		}
	}
	return out
}

// slice walks the outline from angle u to angle v.
func (f *fan) slice(u, v float64) []Point {
	n := len(f.pts)

	i := 0
	for i < n-1 && f.phi[i+1] <= u {
		i++
	}
	if i == n-1 {
		return nil
	}

	out := []Point{f.center}
	if f.phi[i] >= u {
		out = append(out, f.pts[i])
	} else {
		out = append(out, f.at(i, u))
	}

	for j := i; j < n-1; j++ {
		if f.phi[j+1] >= v {
			out = append(out, f.at(j, v))
			break
		}
		out = append(out, f.pts[j+1])
	}
	return out
}

// at returns where the ray from the centre at angle a crosses segment i.
func (f *fan) at(i int, a float64) Point {
	p, q := f.pts[i], f.pts[i+1]
	if a <= f.phi[i] {
		return p
	}
	if a >= f.phi[i+1] {
		return q
	}

	dir := Point{X: math.Cos(a), Y: math.Sin(a)}
	d := sub(q, p)
	t := 0.0
	if den := cross(d, dir); math.Abs(den) > 1e-12 {
		t = -cross(sub(p, f.center), dir) / den
	} else {
		t = (a - f.phi[i]) / (f.phi[i+1] - f.phi[i])
	}
	t = math.Max(0, math.Min(1, t))
	return Point{X: p.X + t*d.X, Y: p.Y + t*d.Y}
}

// clipDisc cuts a closed outline that winds around center, or has it on its
// outline, to the circle of the given radius. Stretches beyond the circle
// become arcs turning the same way the outline did.
func clipDisc(ring []Point, center Point, radius, direction float64, segments int) polyclip.Contour {
	r2 := radius * radius
	in := make([]bool, len(ring))
	start := -1
	for i, p := range ring {
		d := sub(p, center)
		in[i] = d.X*d.X+d.Y*d.Y <= r2
		if in[i] && start < 0 {
			start = i
		}
	}

	if start < 0 {
		// Nothing in range yet; begin where an edge first enters the circle.
		for i := range ring {
			p, q := ring[i], ring[(i+1)%len(ring)]
			if t1, t2, ok := circleHits(p, q, center, radius); ok && t1 > 0 && t2 < 1 {
				ring = append(ring[:i+1:i+1], append([]Point{lerp(p, q, t1)}, ring[i+1:]...)...)
				in = append(in[:i+1:i+1], append([]bool{true}, in[i+1:]...)...)
				start = i + 1
				break
			}
		}
	}
	if start < 0 {
		// The circle lies wholly inside the outline
		return Sector(center, radius, 2*math.Pi, direction, segments)[0]
	}

	angle := func(p Point) float64 { return math.Atan2(p.Y-center.Y, p.X-center.X) }
	turn := func(a, b Point) float64 { return normalizeTurn(angle(b) - angle(a)) }

	var out polyclip.Contour
	add := func(p Point) {
		if n := len(out); n > 0 && out[n-1].X == p.X && out[n-1].Y == p.Y {
			return
		}
		out.Add(polyclip.Point{X: p.X, Y: p.Y})
	}
	arc := func(from Point, sweep float64) {
		n := int(math.Ceil(math.Abs(sweep) * float64(segments) / (2 * math.Pi)))
		a := angle(from)
		for k := 1; k < n; k++ {
			out.Add(arcPoint(center, radius, a+sweep*float64(k)/float64(n)))
		}
	}

	var exit, last Point
	sweep := 0.0

	n := len(ring)
	add(ring[start])
	for k := 0; k < n; k++ {
		i, j := (start+k)%n, (start+k+1)%n
		p, q := ring[i], ring[j]
		t1, t2, ok := circleHits(p, q, center, radius)

		switch {
		case in[i] && in[j]:
			add(q)

		case in[i]:
			e := p
			if ok {
				e = lerp(p, q, math.Max(0, math.Min(1, t2)))
			}
			add(e)
			exit, sweep, last = e, turn(e, q), q

		case in[j]:
			e := q
			if ok {
				e = lerp(p, q, math.Max(0, math.Min(1, t1)))
			}
			sweep += turn(last, e)
			arc(exit, sweep)
			add(e)
			add(q)

		case ok && t1 > 0 && t2 < 1:
			// Chord through the circle
			e1, e2 := lerp(p, q, t1), lerp(p, q, t2)
			sweep += turn(last, e1)
			arc(exit, sweep)
			add(e1)
			add(e2)
			exit, sweep, last = e2, turn(e2, q), q

		default:
			sweep += turn(last, q)
			last = q
		}
	}

	if n := len(out); n > 1 && out[0].Equals(out[n-1]) {
		out = out[:n-1]
	}
	return out
}

// circleHits returns the parameters along p-q where the segment's line
// crosses the circle, t1 <= t2. ok is false when the line misses or only
// touches it.
func circleHits(p, q, center Point, radius float64) (t1, t2 float64, ok bool) {
	d := sub(q, p)
	f := sub(p, center)
	a := d.X*d.X + d.Y*d.Y
	b := 2 * (f.X*d.X + f.Y*d.Y)
	c := f.X*f.X + f.Y*f.Y - radius*radius

	disc := b*b - 4*a*c
	if a == 0 || disc <= 0 {
		return 0, 0, false
	}
	s := math.Sqrt(disc)
	return (-b - s) / (2 * a), (-b + s) / (2 * a), true
}

func lerp(p, q Point, t float64) Point {
	return Point{X: p.X + t*(q.X-p.X), Y: p.Y + t*(q.Y-p.Y)}
}

// normalizeTurn maps an angle difference into (-pi, pi].
func normalizeTurn(d float64) float64 {
	d = math.Mod(d, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

func toPoints(c polyclip.Contour) []Point {
	out := make([]Point, len(c))
	for i, p := range c {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}
