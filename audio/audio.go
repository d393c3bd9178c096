// Package audio plays short synthesized cues for game events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const sampleRate = beep.SampleRate(44100)

// Player plays cues on the system speaker. A Player that failed to
// initialize, or the zero Player, is silent.
type Player struct {
	mu          sync.Mutex
	initialized bool
}

func NewPlayer() *Player {
	return &Player{}
}

// Init opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "initializing speaker")
	}
	p.initialized = true
	return nil
}

// Correct is a short rising two-note chime.
func (p *Player) Correct() {
	p.play(Tone(660, 80*time.Millisecond), Tone(990, 120*time.Millisecond))
}

// GameOver is a low decaying buzz.
func (p *Player) GameOver() {
	p.play(beep.Take(sampleRate.N(300*time.Millisecond), NewDecay(sampleRate, 140)))
}

// HighScore is a three-note fanfare.
func (p *Player) HighScore() {
	p.play(Tone(523, 100*time.Millisecond), Tone(659, 100*time.Millisecond), Tone(784, 200*time.Millisecond))
}

func (p *Player) play(parts ...beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Play(beep.Seq(parts...))
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Tone is a sine at freq Hz lasting d, or silence if the generator rejects freq.
func Tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(sampleRate.N(d))
	}
	return beep.Take(sampleRate.N(d), sine)
}

// Decay is a sine whose amplitude falls off exponentially.
type Decay struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewDecay(sr beep.SampleRate, freq float64) *Decay {
	return &Decay{sr: sr, freq: freq}
}

func (d *Decay) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(d.pos) / float64(d.sr)
		sample := 0.3 * math.Exp(-6*t) * math.Sin(2*math.Pi*d.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		d.pos++
	}
	return len(samples), true
}

func (d *Decay) Err() error {
	return nil
}
