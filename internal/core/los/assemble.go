package los

import "github.com/pkg/errors"

// DefaultIterationCap bounds the polygon walk. Hitting it means the chain
// is corrupt, not that the polygon is large: raise it only for very long
// view ranges, whose frame alone contributes four edges per tile of range.
const DefaultIterationCap = 1000

// AssemblePolygon walks Next links from edges[start] and returns the visited
// vertices as a closed loop, first vertex repeated last.
func AssemblePolygon(edges []Edge, start, limit int) ([]Point, error) {
	if start < 0 || start >= len(edges) {
		return nil, errors.Wrapf(ErrBrokenChain, "start edge %d out of range", start)
	}

	points := []Point{edges[start].A}
	at := start
	cur := edges[start].Next

	for steps := 0; cur != start; steps++ {
		if steps >= limit {
			return nil, errors.Wrapf(ErrUnclosedChain, "no closure after %d steps", limit)
		}
		if cur < 0 || cur >= len(edges) {
			return nil, linkError(edges[at], at, cur)
		}

		points = append(points, edges[cur].A)
		at = cur
		cur = edges[cur].Next
	}

	return append(points, points[0]), nil
}

func linkError(e Edge, at, link int) error {
	if e.Unterminated && link == NoLink {
		return errors.Wrapf(ErrUnterminatedProjection, "edge %d ends at (%g, %g)", at, e.B.X, e.B.Y)
	}

	reason := "unset"
	if link == BrokenLink {
		reason = "broken"
	}
	return errors.Wrapf(ErrBrokenChain, "edge %d ending at (%g, %g) has %s next link", at, e.B.X, e.B.Y, reason)
}
