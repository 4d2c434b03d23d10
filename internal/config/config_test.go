package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightline/internal/core/los"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sight.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"perception": {"vision_range": 12}}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Perception.VisionRange)
	assert.Equal(t, 120.0, cfg.Perception.VisionConeAngle)
	assert.Equal(t, los.DefaultIterationCap, cfg.Tracing.IterationCap)
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	garbled := filepath.Join(dir, "garbled.json")
	require.NoError(t, os.WriteFile(garbled, []byte(`{"perception":`), 0o644))
	_, err := LoadConfig(garbled)
	assert.Error(t, err)

	negative := filepath.Join(dir, "negative.json")
	require.NoError(t, os.WriteFile(negative, []byte(`{"perception": {"vision_range": -1}}`), 0o644))
	_, err = LoadConfig(negative)
	assert.Error(t, err)
}

func TestObserver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Perception.VisionConeAngle = 90

	o := cfg.Observer(100, 200, 32, math.Pi)

	assert.Equal(t, 100, o.X)
	assert.Equal(t, 200, o.Y)
	assert.Equal(t, 8*32, o.Range)
	assert.InDelta(t, math.Pi/2, o.Angle, 1e-12)
	assert.Equal(t, math.Pi, o.Direction)
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tracing.IterationCap = 5000

	opts := cfg.Options()
	assert.Equal(t, 5000, opts.IterationCap)
	assert.Equal(t, los.DefaultArcSegments, opts.ArcSegments)
}
