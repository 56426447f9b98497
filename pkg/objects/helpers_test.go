package objects

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decker502/engine2d/pkg/config"
	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/geom"
)

// keyboard is a scripted game.InputSource.
type keyboard struct {
	ev  game.KeyEvent
	has bool
}

func (k *keyboard) LastEvent() (game.KeyEvent, bool) { return k.ev, k.has }

func (k *keyboard) press(key string) {
	k.ev = game.KeyEvent{Type: game.KeyDown, Key: key, Seq: k.ev.Seq + 1}
	k.has = true
}

func (k *keyboard) release(key string) {
	k.ev = game.KeyEvent{Type: game.KeyUp, Key: key, Seq: k.ev.Seq + 1}
	k.has = true
}

type cues struct{ played []string }

func (c *cues) Play(cue string) { c.played = append(c.played, cue) }

type fixture struct {
	engine *game.Engine
	sched  *game.ManualScheduler
	keys   *keyboard
	sound  *cues
	scene  *game.Scene
	reg    *Registry
	now    float64
}

func newFixture(t *testing.T, fps float64) *fixture {
	t.Helper()
	f := &fixture{
		sched: game.NewManualScheduler(),
		keys:  &keyboard{},
		sound: &cues{},
		scene: game.NewScene("test"),
		reg:   NewRegistry(),
	}
	e, err := game.NewEngine(game.Options{
		Surface:   game.NopSurface{Size: geom.Dimension{Width: 100, Height: 100}},
		Scheduler: f.sched,
		Input:     f.keys,
		Sound:     f.sound,
		FPS:       fps,
	})
	require.NoError(t, err)
	f.engine = e
	e.AddScene(f.scene)
	e.Start()
	f.sched.Advance(0)
	return f
}

// add builds an object from cfg and puts it in the fixture scene.
func (f *fixture) add(t *testing.T, cfg config.ObjectConfig, deps Deps) game.GameObject {
	t.Helper()
	obj, err := f.reg.Build(f.engine, cfg, deps)
	require.NoError(t, err)
	f.scene.AddObject(obj)
	return obj
}

// tick fires the next refresh ms milliseconds after the previous one.
// The fixture has already run the latching first tick.
func (f *fixture) tick(ms float64) {
	f.now += ms
	f.sched.Advance(f.now)
}

func at(x, y float64) geom.Position { return geom.Position{X: x, Y: y} }

func dim(w, h float64) geom.Dimension { return geom.Dimension{Width: w, Height: h} }

var oneCollider = []config.ColliderConfig{{}}
