package app

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	tone "github.com/decker502/engine2d/pkg/audio"
	"github.com/decker502/engine2d/pkg/config"
)

// cuePlayer is the part of *audio.Player a cue needs.
type cuePlayer interface {
	SetVolume(volume float64)
	Rewind() error
	Play()
	Close() error
}

// toneSound 通过 Ebitengine 音频上下文播放合成的提示音。
// 每个 cue 只渲染一次 PCM，并复用同一个播放器（重播前先 Rewind）。
type toneSound struct {
	cfg       config.AudioSection
	newPlayer func(pcm []byte) cuePlayer
	players   map[string]cuePlayer
	log       *zap.Logger
}

func newToneSound(ctx *audio.Context, cfg config.AudioSection, log *zap.Logger) *toneSound {
	s := &toneSound{
		cfg:     cfg,
		players: make(map[string]cuePlayer),
		log:     log.Named("audio"),
	}
	s.newPlayer = func(pcm []byte) cuePlayer {
		return ctx.NewPlayerF32FromBytes(pcm)
	}
	return s
}

func (s *toneSound) player(cue string) cuePlayer {
	if p, ok := s.players[cue]; ok {
		return p
	}
	length := time.Duration(s.cfg.CueMs) * time.Millisecond
	pcm := tone.RenderF32(s.cfg.SampleRate, tone.CueFrequency(s.cfg.BaseFreqHz, cue), 1, length)
	p := s.newPlayer(pcm)
	p.SetVolume(s.cfg.Volume)
	s.players[cue] = p
	return p
}

// Play 从头播放 cue 对应的提示音。
func (s *toneSound) Play(cue string) {
	p := s.player(cue)
	if err := p.Rewind(); err != nil {
		s.log.Warn("failed to rewind cue", zap.String("cue", cue), zap.Error(err))
		return
	}
	p.Play()
	s.log.Debug("cue", zap.String("cue", cue))
}

// Close 释放所有播放器。
func (s *toneSound) Close() error {
	var errs []error
	for cue, p := range s.players {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(s.players, cue)
	}
	return errors.Join(errs...)
}
