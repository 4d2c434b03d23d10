package los

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(minX, minY, maxX, maxY float64) []Point {
	return []Point{
		{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY}, {X: minX, Y: minY},
	}
}

func TestSector(t *testing.T) {
	c := Point{X: 0, Y: 0}

	full := Sector(c, 10, 2*math.Pi, 0, 64)
	require.Len(t, full, 1)
	assert.Len(t, full[0], 64)

	half := Sector(c, 10, math.Pi, 0, 64)
	require.Len(t, half, 1)
	assert.Len(t, half[0], 1+32+1)
	assert.Equal(t, 0.0, half[0][0].X)

	assert.Nil(t, Sector(c, 10, 0, 0, 64))
	assert.Nil(t, Sector(c, 0, math.Pi, 0, 64))
}

func TestClipConeFullDisc(t *testing.T) {
	center := Point{X: 50, Y: 50}

	r, err := ClipCone(box(-100, -100, 200, 200), center, 40, 2*math.Pi, 0, DefaultArcSegments, DefaultTolerance)
	require.NoError(t, err)

	require.False(t, r.Empty())
	assert.InEpsilon(t, math.Pi*40*40, r.Area(), 0.001)
	assert.True(t, r.Contains(Point{X: 85, Y: 50}))
	assert.False(t, r.Contains(Point{X: 95, Y: 50}))

	bb := r.Bounds()
	assert.InDelta(t, 10, bb.MinX, 0.01)
	assert.InDelta(t, 90, bb.MaxX, 0.01)
}

func TestClipConeFacesDirection(t *testing.T) {
	center := Point{X: 0, Y: 0}
	poly := box(-100, -100, 100, 100)

	// Facing down the screen.
	r, err := ClipCone(poly, center, 50, math.Pi/2, math.Pi/2, DefaultArcSegments, DefaultTolerance)
	require.NoError(t, err)

	assert.True(t, r.Contains(Point{X: 0, Y: 30}))
	assert.False(t, r.Contains(Point{X: 0, Y: -30}))
	assert.False(t, r.Contains(Point{X: 30, Y: 0}))
	assert.InEpsilon(t, math.Pi*50*50/4, r.Area(), 0.01)
}

func TestClipConeCutsByPolygon(t *testing.T) {
	center := Point{X: 0, Y: 0}

	// Only the right half of the disc is inside the polygon.
	r, err := ClipCone(box(0, -100, 100, 100), center, 50, 2*math.Pi, 0, DefaultArcSegments, DefaultTolerance)
	require.NoError(t, err)

	assert.InEpsilon(t, math.Pi*50*50/2, r.Area(), 0.01)
	assert.True(t, r.Contains(Point{X: 10, Y: 0}))
	assert.False(t, r.Contains(Point{X: -10, Y: 0}))
}

func TestClipConeDegenerate(t *testing.T) {
	center := Point{X: 0, Y: 0}

	r, err := ClipCone(box(-10, -10, 10, 10), center, 5, 0, 0, 64, DefaultTolerance)
	require.NoError(t, err)
	assert.True(t, r.Empty())

	r, err = ClipCone([]Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, center, 5, math.Pi, 0, 64, DefaultTolerance)
	require.NoError(t, err)
	assert.True(t, r.Empty())

	var zero Region
	assert.True(t, zero.Empty())
	assert.False(t, zero.Contains(Point{}))
	assert.Zero(t, zero.Area())
	assert.Equal(t, Rect{}, zero.Bounds())
}

func TestClipConeChordThroughRange(t *testing.T) {
	center := Point{X: 0, Y: 0}

	// Every vertex is out of range but the bottom edge cuts across the circle.
	poly := []Point{{X: -100, Y: -10}, {X: 100, Y: -10}, {X: 0, Y: 100}}
	r, err := ClipCone(poly, center, 50, 2*math.Pi, 0, DefaultArcSegments, DefaultTolerance)
	require.NoError(t, err)

	capArea := 2500*math.Acos(0.2) - 10*math.Sqrt(2400)
	assert.InEpsilon(t, math.Pi*2500-capArea, r.Area(), 0.005)
	assert.True(t, r.Contains(Point{X: 0, Y: -5}))
	assert.True(t, r.Contains(Point{X: 0, Y: 45}))
	assert.False(t, r.Contains(Point{X: 0, Y: -20}))
}

func TestClipConeAcrossAngleSeam(t *testing.T) {
	center := Point{X: 0, Y: 0}

	// Facing up-left, the cone spans the angle where atan2 wraps.
	r, err := ClipCone(box(-100, -100, 100, 100), center, 50, math.Pi/2, -3*math.Pi/4, DefaultArcSegments, DefaultTolerance)
	require.NoError(t, err)

	assert.Len(t, r.Contours(), 1)
	assert.InEpsilon(t, math.Pi*2500/4, r.Area(), 0.01)
	assert.True(t, r.Contains(Point{X: -21, Y: -21}))
	assert.False(t, r.Contains(Point{X: 21, Y: 21}))
	assert.False(t, r.Contains(Point{X: 0, Y: 30}))
}

func TestClipConeObserverOnReflexVertex(t *testing.T) {
	center := Point{X: 0, Y: 0}

	// The quadrant x > 0, y < 0 is missing. A cone facing into it keeps the
	// two slivers on either side.
	poly := []Point{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100},
		{X: -100, Y: 100}, {X: -100, Y: -100}, {X: 0, Y: -100},
	}
	r, err := ClipCone(poly, center, 50, math.Pi, -math.Pi/4, DefaultArcSegments, DefaultTolerance)
	require.NoError(t, err)

	assert.Len(t, r.Contours(), 2)
	assert.InEpsilon(t, 2*2500*math.Pi/8, r.Area(), 0.01)
	assert.True(t, r.Contains(Point{X: 20, Y: 5}))
	assert.True(t, r.Contains(Point{X: -5, Y: -20}))
	assert.False(t, r.Contains(Point{X: 20, Y: -20}))
	assert.False(t, r.Contains(Point{X: -20, Y: -5}))
}

func TestClipConeFollowsConcaveOutline(t *testing.T) {
	center := Point{X: 0, Y: 0}

	// A corridor leaves the room to the right, past the range.
	poly := []Point{
		{X: -40, Y: -40}, {X: 20, Y: -40}, {X: 20, Y: -5}, {X: 200, Y: -5},
		{X: 200, Y: 5}, {X: 20, Y: 5}, {X: 20, Y: 40}, {X: -40, Y: 40},
	}
	r, err := ClipCone(poly, center, 60, 2*math.Pi, 0, DefaultArcSegments, DefaultTolerance)
	require.NoError(t, err)

	require.Len(t, r.Contours(), 1)
	assert.True(t, r.Contains(Point{X: 55, Y: 0}), "down the corridor")
	assert.False(t, r.Contains(Point{X: 65, Y: 0}), "past the range")
	assert.False(t, r.Contains(Point{X: 30, Y: 20}), "beside the corridor")
	assert.True(t, r.Contains(Point{X: -30, Y: -30}))
	assert.False(t, r.Contains(Point{X: -50, Y: 0}))
}

func TestClipConeObserverOutsidePolygon(t *testing.T) {
	_, err := ClipCone(box(10, 10, 20, 20), Point{X: 0, Y: 0}, 50, 2*math.Pi, 0, DefaultArcSegments, DefaultTolerance)
	assert.ErrorIs(t, err, ErrObserverOutside)
}
