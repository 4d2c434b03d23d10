package los

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentDistance(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 10, Y: 0}

	assert.InDelta(t, 5.0, SegmentDistance(Point{X: 5, Y: 5}, a, b), 1e-9)
	assert.InDelta(t, 5.0, SegmentDistance(Point{X: -3, Y: 4}, a, b), 1e-9)
	assert.InDelta(t, 5.0, SegmentDistance(Point{X: 13, Y: -4}, a, b), 1e-9)
	assert.InDelta(t, 5.0, SegmentDistance(Point{X: 3, Y: 4}, a, a), 1e-9)
}

func TestSegmentHit(t *testing.T) {
	tests := []struct {
		name    string
		p, q    Point
		a, b    Point
		wantHit bool
		want    Point
	}{
		{
			name: "crossing",
			p:    Point{X: 0, Y: 0}, q: Point{X: 10, Y: 0},
			a: Point{X: 5, Y: -5}, b: Point{X: 5, Y: 5},
			wantHit: true, want: Point{X: 5, Y: 0},
		},
		{
			name: "touching segment end",
			p:    Point{X: 0, Y: 0}, q: Point{X: 10, Y: 0},
			a: Point{X: 5, Y: 0}, b: Point{X: 5, Y: 5},
			wantHit: true, want: Point{X: 5, Y: 0},
		},
		{
			name: "at ray origin",
			p:    Point{X: 0, Y: 0}, q: Point{X: 10, Y: 0},
			a: Point{X: 0, Y: -5}, b: Point{X: 0, Y: 5},
		},
		{
			name: "parallel",
			p:    Point{X: 0, Y: 0}, q: Point{X: 10, Y: 0},
			a: Point{X: 0, Y: 1}, b: Point{X: 10, Y: 1},
		},
		{
			name: "beyond ray end",
			p:    Point{X: 0, Y: 0}, q: Point{X: 10, Y: 0},
			a: Point{X: 12, Y: -5}, b: Point{X: 12, Y: 5},
		},
		{
			name: "beside segment",
			p:    Point{X: 0, Y: 0}, q: Point{X: 10, Y: 0},
			a: Point{X: 5, Y: 1}, b: Point{X: 5, Y: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := segmentHit(tt.p, tt.q, tt.a, tt.b, DefaultTolerance)
			assert.Equal(t, tt.wantHit, ok)
			if tt.wantHit {
				assert.InDelta(t, tt.want.X, got.X, 1e-9)
				assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			}
		})
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

	assert.True(t, PointInPolygon(Point{X: 5, Y: 5}, square))
	assert.False(t, PointInPolygon(Point{X: 15, Y: 5}, square))
	assert.False(t, PointInPolygon(Point{X: 5, Y: -1}, square))

	closed := append(square, square[0])
	assert.True(t, PointInPolygon(Point{X: 1, Y: 9}, closed))
}

func TestPolygonArea(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.InDelta(t, 100.0, PolygonArea(square), 1e-9)

	reversed := []Point{square[3], square[2], square[1], square[0]}
	assert.InDelta(t, 100.0, PolygonArea(reversed), 1e-9)

	assert.Zero(t, PolygonArea(square[:2]))
}
