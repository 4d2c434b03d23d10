package main

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlipGeneratorEnds(t *testing.T) {
	g := newBlipGenerator(sampleRate, 10*time.Millisecond)
	want := sampleRate.N(10 * time.Millisecond)

	buf := make([][2]float64, 256)
	total := 0
	for {
		n, ok := g.Stream(buf)
		total += n
		for _, s := range buf[:n] {
			assert.LessOrEqual(t, math.Abs(s[0]), 0.2)
			assert.Equal(t, s[0], s[1])
		}
		if !ok {
			break
		}
	}

	assert.Equal(t, want, total)
	assert.NoError(t, g.Err())
}

func TestFacingRune(t *testing.T) {
	assert.Equal(t, '→', facingRune(0))
	assert.Equal(t, '↓', facingRune(math.Pi/2))
	assert.Equal(t, '↑', facingRune(-math.Pi/2))
	assert.Equal(t, '←', facingRune(math.Pi))
	assert.Equal(t, '↖', facingRune(-3*math.Pi/4))
}
