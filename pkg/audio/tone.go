// Package audio synthesizes the short tones played for sound cues.
//
// Cue names map to pitches on a pentatonic scale, so every cue is
// recognizable without shipping sample files.
package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gopxl/beep"
)

// pentatonic scale steps in semitones above the base frequency
var pentatonic = []float64{0, 2, 4, 7, 9, 12, 14, 16}

// CueFrequency returns the pitch for cue. The same cue always gets the
// same pitch.
func CueFrequency(base float64, cue string) float64 {
	step := pentatonic[xxhash.Sum64String(cue)%uint64(len(pentatonic))]
	return base * math.Pow(2, step/12)
}

// ToneGenerator streams a sine tone with a short attack and a linear
// release over its length.
type ToneGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	length int
	pos    int
}

// NewToneGenerator creates a generator for a tone of the given length.
func NewToneGenerator(sr beep.SampleRate, freq, volume float64, length time.Duration) *ToneGenerator {
	return &ToneGenerator{
		sr:     sr,
		freq:   freq,
		volume: volume,
		length: sr.N(length),
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.length {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.length {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)

		attack := math.Min(t/0.005, 1.0)
		release := 1 - float64(g.pos)/float64(g.length)
		sample := math.Sin(2*math.Pi*g.freq*t) * attack * release * g.volume

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// RenderF32 renders a whole tone as interleaved little-endian float32
// stereo PCM.
func RenderF32(sampleRate int, freq, volume float64, length time.Duration) []byte {
	g := NewToneGenerator(beep.SampleRate(sampleRate), freq, volume, length)
	out := make([]byte, 0, g.length*8)
	buf := make([][2]float64, 512)
	for {
		n, ok := g.Stream(buf)
		for _, s := range buf[:n] {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(s[0])))
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(s[1])))
		}
		if !ok {
			return out
		}
	}
}
