package sightmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightline/internal/core/los"
	"chosenoffset.com/sightline/internal/perception"
	"chosenoffset.com/sightline/internal/world/maploader"
)

func corridor(t *testing.T) *maploader.Map {
	t.Helper()

	m, err := maploader.ParseGrid([]string{
		"#########",
		"#.......#",
		"#.......#",
		"#.#######",
		"#.......#",
		"#########",
	}, 32)
	require.NoError(t, err)
	return m
}

func view(t *testing.T, m *maploader.Map, x, y int) los.Region {
	t.Helper()

	tr := los.NewTracker(m, los.Options{})
	region, err := tr.Compute(los.Observer{X: x, Y: y, Range: 320, Angle: 2 * math.Pi})
	require.NoError(t, err)
	return region
}

func TestBuild(t *testing.T) {
	m := corridor(t)
	self := los.Point{X: 48, Y: 48}
	region := view(t, m, 48, 48)

	f := Build(m, region, nil, self, nil)

	assert.Equal(t, 9, f.Width)
	assert.Equal(t, 6, f.Height)
	assert.True(t, f.At(1, 1).Self)
	assert.Equal(t, Visible, f.At(7, 2).State, "far end of the room")
	assert.Equal(t, Visible, f.At(8, 1).State, "room wall")
	assert.Equal(t, Hidden, f.At(7, 4).State, "lower corridor is around the corner")
	assert.Equal(t, '#', f.At(0, 0).Glyph)
}

func TestBuildWithMemory(t *testing.T) {
	m := corridor(t)
	mem := NewMemory(m.Width(), m.Height())

	Build(m, view(t, m, 48, 48), mem, los.Point{X: 48, Y: 48}, nil)
	assert.True(t, mem.Seen(7, 2))

	// Down in the lower corridor the room is out of sight but remembered
	f := Build(m, view(t, m, 240, 144), mem, los.Point{X: 240, Y: 144}, nil)
	assert.Equal(t, Remembered, f.At(7, 2).State)
	assert.Equal(t, Visible, f.At(3, 4).State)

	mem.Forget()
	assert.False(t, mem.Seen(7, 2))
}

func TestLines(t *testing.T) {
	m, err := maploader.ParseGrid([]string{
		"#####",
		"#...#",
		"#####",
	}, 32)
	require.NoError(t, err)

	agent := &perception.Agent{ID: 7, X: 112, Y: 48}
	f := Build(m, view(t, m, 48, 48), nil, los.Point{X: 48, Y: 48}, []*perception.Agent{agent})

	// Corner walls border no open tile, so they are never seen
	assert.Equal(t, []string{
		" ### ",
		"#@.a#",
		" ### ",
	}, f.Lines())
	assert.Same(t, agent, f.At(3, 1).Agent)
}

func TestEmptyRegionHidesEverything(t *testing.T) {
	m := corridor(t)

	f := Build(m, los.Region{}, nil, los.Point{X: -100, Y: -100}, nil)

	for _, c := range f.Cells {
		assert.Equal(t, Hidden, c.State)
		assert.False(t, c.Self)
	}
}
