package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// blipGenerator is a short falling chirp with a linear fade
type blipGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
}

func newBlipGenerator(sr beep.SampleRate, d time.Duration) *blipGenerator {
	return &blipGenerator{sr: sr, total: sr.N(d)}
}

func (g *blipGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}

		progress := float64(g.pos) / float64(g.total)
		freq := 1200 - 500*progress
		val := 0.2 * (1 - progress) * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = val
		samples[i][1] = val

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *blipGenerator) Err() error { return nil }

// sound plays short cues through one mixer. A zero sound is silent.
type sound struct {
	mixer *beep.Mixer
}

func newSound() (*sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return &sound{}, err
	}
	s := &sound{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// blip plays the cue for a newly spotted agent
func (s *sound) blip() {
	if s.mixer == nil {
		return
	}
	streamer := beep.Take(sampleRate.N(150*time.Millisecond), newBlipGenerator(sampleRate, 150*time.Millisecond))

	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

func (s *sound) close() {
	if s.mixer == nil {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
