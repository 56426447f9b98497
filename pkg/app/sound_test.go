package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/decker502/engine2d/pkg/config"
)

type fakePlayer struct {
	volume  float64
	rewinds int
	plays   int
	closed  bool
	err     error
}

func (p *fakePlayer) SetVolume(v float64) { p.volume = v }
func (p *fakePlayer) Rewind() error       { p.rewinds++; return p.err }
func (p *fakePlayer) Play()               { p.plays++ }
func (p *fakePlayer) Close() error        { p.closed = true; return nil }

func newFakeToneSound() (*toneSound, *[]*fakePlayer) {
	var created []*fakePlayer
	s := newToneSound(nil, config.Defaults().Audio, zap.NewNop())
	s.newPlayer = func(pcm []byte) cuePlayer {
		p := &fakePlayer{}
		created = append(created, p)
		return p
	}
	return s, &created
}

func TestToneSoundReusesPlayerPerCue(t *testing.T) {
	s, created := newFakeToneSound()

	s.Play("bounce")
	s.Play("bounce")
	s.Play("splash")

	require.Len(t, *created, 2, "one player per cue")
	bounce := (*created)[0]
	assert.Equal(t, 2, bounce.plays)
	assert.Equal(t, 2, bounce.rewinds)
	assert.Equal(t, config.Defaults().Audio.Volume, bounce.volume)

	require.NoError(t, s.Close())
	for _, p := range *created {
		assert.True(t, p.closed)
	}
	assert.Empty(t, s.players)
}

func TestToneSoundSkipsPlayWhenRewindFails(t *testing.T) {
	s, created := newFakeToneSound()
	s.Play("bounce")
	(*created)[0].err = errors.New("seek failed")

	s.Play("bounce")
	assert.Equal(t, 1, (*created)[0].plays)
}
