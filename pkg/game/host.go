package game

import (
	"image/color"
	"time"

	"github.com/decker502/engine2d/pkg/geom"
)

// Surface is the drawing target the engine renders into.
// The engine only writes to it; nothing is ever read back.
type Surface interface {
	// Bounds returns the drawable area in world units.
	Bounds() geom.Dimension
	// Clear erases the given region.
	Clear(region geom.Rect)
	// StrokeRect outlines r with the given color.
	StrokeRect(r geom.Rect, clr color.Color)
	// FillRect paints r with the given color.
	FillRect(r geom.Rect, clr color.Color)
	// FillText draws text with its baseline origin at (x, y).
	FillText(text string, x, y float64, style TextStyle)
}

// TextStyle describes how FillText renders a string.
type TextStyle struct {
	Color color.Color
}

// FrameCallback is invoked once per display refresh with a monotonic
// timestamp in milliseconds.
type FrameCallback func(timestamp float64)

// TickHandle identifies a pending FrameCallback registration.
type TickHandle uint64

// Scheduler is the external driver of the tick sequence. A registration
// fires at most once; callers re-register from inside the callback.
type Scheduler interface {
	RequestNextTick(cb FrameCallback) TickHandle
	Cancel(h TickHandle)
}

// Sound plays short named cues. Implementations must not block.
type Sound interface {
	Play(cue string)
}

// TimeProvider supplies wall-clock readings used for execution-time
// measurements.
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

type silence struct{}

func (silence) Play(string) {}

// NopSurface discards every drawing call. It is used by headless runs.
type NopSurface struct {
	Size geom.Dimension
}

func (s NopSurface) Bounds() geom.Dimension { return s.Size }

func (NopSurface) Clear(geom.Rect) {}

func (NopSurface) StrokeRect(geom.Rect, color.Color) {}

func (NopSurface) FillRect(geom.Rect, color.Color) {}

func (NopSurface) FillText(string, float64, float64, TextStyle) {}

// ManualScheduler is a Scheduler driven by explicit Advance calls with
// synthetic timestamps. Tests and the headless simulator use it.
type ManualScheduler struct {
	next    TickHandle
	pending FrameCallback
	handle  TickHandle
}

// NewManualScheduler creates an idle ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// RequestNextTick registers cb for the next Advance, replacing any earlier
// registration.
func (s *ManualScheduler) RequestNextTick(cb FrameCallback) TickHandle {
	s.next++
	s.pending = cb
	s.handle = s.next
	return s.handle
}

// Cancel drops the registration identified by h if it is still pending.
func (s *ManualScheduler) Cancel(h TickHandle) {
	if s.pending != nil && s.handle == h {
		s.pending = nil
	}
}

// Pending reports whether a callback is waiting for the next Advance.
func (s *ManualScheduler) Pending() bool {
	return s.pending != nil
}

// Advance fires the pending callback with timestamp.
// It returns false when nothing was registered.
func (s *ManualScheduler) Advance(timestamp float64) bool {
	cb := s.pending
	if cb == nil {
		return false
	}
	s.pending = nil
	cb(timestamp)
	return true
}

// Run advances ticks times, starting at start and stepping by interval.
// It stops early once no callback is pending and returns the number of
// callbacks fired.
func (s *ManualScheduler) Run(start, interval float64, ticks int) int {
	fired := 0
	for i := 0; i < ticks; i++ {
		if !s.Advance(start + float64(i)*interval) {
			break
		}
		fired++
	}
	return fired
}
