package los

import "math"

func sub(a, b Point) Point {
	return Point{X: a.X - b.X, Y: a.Y - b.Y}
}

func cross(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// SegmentDistance returns the distance from p to the closest point of the
// segment a-b.
func SegmentDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, a)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Distance(p, Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// segmentHit intersects the ray segment p-q with the segment a-b.
// Crossings within tol of p are ignored so that a ray never closes on the
// vertex it was cast through. Crossings within tol of either end of a-b
// count as hits.
func segmentHit(p, q, a, b Point, tol float64) (Point, bool) {
	r := sub(q, p)
	s := sub(b, a)

	denom := cross(r, s)
	if math.Abs(denom) < 1e-12 {
		// parallel or degenerate
		return Point{}, false
	}

	ap := sub(a, p)
	t := cross(ap, s) / denom
	u := cross(ap, r) / denom

	rLen := math.Hypot(r.X, r.Y)
	sLen := math.Hypot(s.X, s.Y)

	if t*rLen <= tol || t > 1 {
		return Point{}, false
	}
	if u*sLen < -tol || (u-1)*sLen > tol {
		return Point{}, false
	}

	u = math.Max(0, math.Min(1, u))
	return Point{X: a.X + u*s.X, Y: a.Y + u*s.Y}, true
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
// The polygon may or may not repeat its first vertex at the end.
func PointInPolygon(point Point, polygon []Point) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// PolygonArea returns the unsigned shoelace area of a closed vertex loop.
func PolygonArea(polygon []Point) float64 {
	if len(polygon) < 3 {
		return 0
	}

	sum := 0.0
	j := len(polygon) - 1
	for i := range polygon {
		sum += polygon[j].X*polygon[i].Y - polygon[i].X*polygon[j].Y
		j = i
	}
	return math.Abs(sum) / 2
}

func samePoint(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}
