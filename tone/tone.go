// Package tone produces the terminal bell. The Speaker plays square
// wave tones through the host audio device; Null stays silent for
// tests and headless embeddings.
package tone

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Null is a Beeper that discards every beep.
type Null struct{}

func (Null) Beep(int, time.Duration) {}

// Speaker plays bell tones through the host audio device. Beep is
// safe to call before Init; it simply stays silent until the audio
// system is up.
type Speaker struct {
	mu          sync.Mutex
	initialized bool
}

func NewSpeaker() *Speaker {
	return &Speaker{}
}

// Init sets up the audio device. It is idempotent.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}

	s.initialized = true
	return nil
}

// Beep plays a square wave tone of the given frequency and duration.
// It does not block while the tone plays.
func (s *Speaker) Beep(freqHz int, d time.Duration) {
	s.mu.Lock()
	ok := s.initialized
	s.mu.Unlock()
	if !ok || freqHz <= 0 || d <= 0 {
		return
	}

	speaker.Play(beep.Take(sampleRate.N(d), newSquareWave(float64(freqHz), sampleRate)))
}

// squareWave is an endless fixed-frequency oscillator streamer; wrap
// it in beep.Take to bound it.
type squareWave struct {
	freq float64
	rate beep.SampleRate
	pos  int
}

func newSquareWave(freq float64, rate beep.SampleRate) *squareWave {
	return &squareWave{freq: freq, rate: rate}
}

func (g *squareWave) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.rate)
		v := 0.2
		if math.Sin(2*math.Pi*g.freq*t) < 0 {
			v = -0.2
		}
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *squareWave) Err() error {
	return nil
}
