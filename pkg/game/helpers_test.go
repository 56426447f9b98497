package game

import (
	"fmt"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/decker502/engine2d/pkg/geom"
)

// recorder records every hook invocation as "<hook>:<other name>".
type recorder struct {
	Object

	events        []string
	updates       int
	afterUpdates  int
	beforeUpdates int
	initialized   int

	onCollisionEnter func(other GameObject)
	onUpdate         func(dt float64)
}

func (p *recorder) OnInitialize() { p.initialized++ }

func (p *recorder) BeforeUpdate() { p.beforeUpdates++ }

func (p *recorder) Update(dt float64) {
	p.updates++
	if p.onUpdate != nil {
		p.onUpdate(dt)
	}
}

func (p *recorder) AfterUpdate(float64) { p.afterUpdates++ }

func (p *recorder) Render(s Surface) { s.FillRect(p.Rect(), color.White) }

func (p *recorder) OnCollisionEnter(o GameObject) {
	p.record("collision.enter", o)
	if p.onCollisionEnter != nil {
		p.onCollisionEnter(o)
	}
}

func (p *recorder) OnCollisionStay(o GameObject) { p.record("collision.stay", o) }
func (p *recorder) OnCollisionExit(o GameObject) { p.record("collision.exit", o) }
func (p *recorder) OnTriggerEnter(o GameObject)  { p.record("trigger.enter", o) }
func (p *recorder) OnTriggerStay(o GameObject)   { p.record("trigger.stay", o) }
func (p *recorder) OnTriggerExit(o GameObject)   { p.record("trigger.exit", o) }

func (p *recorder) record(hook string, o GameObject) {
	p.events = append(p.events, hook+":"+o.Base().Name())
}

// drain returns the recorded events and clears them.
func (p *recorder) drain() []string {
	ev := p.events
	p.events = nil
	return ev
}

func spawnRecorder(t *testing.T, e *Engine, name string, pos geom.Position, dim geom.Dimension, colliders ...ColliderOptions) *recorder {
	t.Helper()
	p := Spawn(e, &recorder{})
	p.SetName(name)
	p.SetPosition(pos)
	p.SetDimension(dim)
	if len(colliders) == 0 {
		colliders = []ColliderOptions{{}}
	}
	for _, opts := range colliders {
		require.NoError(t, p.AddCollider(NewBoxCollider(opts)))
	}
	return p
}

func box(x, y float64) geom.Position { return geom.Position{X: x, Y: y} }

func size(w, h float64) geom.Dimension { return geom.Dimension{Width: w, Height: h} }

// recordingSurface keeps a textual log of drawing calls.
type recordingSurface struct {
	size  geom.Dimension
	calls []string
	texts []string
}

func (s *recordingSurface) Bounds() geom.Dimension { return s.size }

func (s *recordingSurface) Clear(r geom.Rect) {
	s.calls = append(s.calls, fmt.Sprintf("clear %v", r))
}

func (s *recordingSurface) StrokeRect(r geom.Rect, _ color.Color) {
	s.calls = append(s.calls, fmt.Sprintf("stroke %v", r))
}

func (s *recordingSurface) FillRect(r geom.Rect, _ color.Color) {
	s.calls = append(s.calls, fmt.Sprintf("fill %v", r))
}

func (s *recordingSurface) FillText(text string, x, y float64, _ TextStyle) {
	s.calls = append(s.calls, fmt.Sprintf("text %s", text))
	s.texts = append(s.texts, text)
}

// scriptedInput returns whatever event was last assigned.
type scriptedInput struct {
	ev  KeyEvent
	has bool
	seq uint64
}

func (in *scriptedInput) LastEvent() (KeyEvent, bool) { return in.ev, in.has }

func (in *scriptedInput) emit(t KeyEventType, key string) {
	in.seq++
	in.ev = KeyEvent{Type: t, Key: key, Seq: in.seq}
	in.has = true
}

// steppingTime advances by step on every Now call.
type steppingTime struct {
	now  time.Time
	step time.Duration
}

func (s *steppingTime) Now() time.Time {
	s.now = s.now.Add(s.step)
	return s.now
}

func newTestEngine(t *testing.T, opts Options) (*Engine, *ManualScheduler, *recordingSurface) {
	t.Helper()
	sched := NewManualScheduler()
	surface := &recordingSurface{size: size(320, 240)}
	opts.Surface = surface
	opts.Scheduler = sched
	e, err := NewEngine(opts)
	require.NoError(t, err)
	return e, sched, surface
}
