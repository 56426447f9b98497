package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// BeeperConfig configures a Beeper.
type BeeperConfig struct {
	SampleRate int
	Volume     float64
	CueLength  time.Duration
	BaseFreqHz float64
}

// Beeper plays cue tones through the system speaker. It is safe for use
// from several goroutines. Until Initialize succeeds, Play does nothing.
type Beeper struct {
	mu          sync.Mutex
	cfg         BeeperConfig
	sr          beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
	played      int
	log         *zap.Logger
}

// NewBeeper creates an uninitialized beeper.
func NewBeeper(cfg BeeperConfig, log *zap.Logger) *Beeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Beeper{
		cfg:   cfg,
		sr:    beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
		log:   log.Named("audio"),
	}
}

// Initialize opens the speaker. Without an audio device it returns the
// error and the beeper stays silent.
func (b *Beeper) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(b.sr, b.sr.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Play queues the tone for cue.
func (b *Beeper) Play(cue string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	freq := CueFrequency(b.cfg.BaseFreqHz, cue)
	tone := NewToneGenerator(b.sr, freq, b.cfg.Volume, b.cfg.CueLength)

	speaker.Lock()
	b.mixer.Add(tone)
	speaker.Unlock()
	b.played++
	b.log.Debug("cue", zap.String("cue", cue), zap.Float64("freq", freq))
}

// Played counts the cues queued since Initialize.
func (b *Beeper) Played() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.played
}

// Cleanup silences queued tones.
func (b *Beeper) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}
