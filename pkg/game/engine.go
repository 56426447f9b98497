package game

import (
	"errors"
	"image/color"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/decker502/engine2d/pkg/geom"
)

var (
	// ErrNoSurface is returned by NewEngine without a drawing surface.
	ErrNoSurface = errors.New("engine requires a surface")
	// ErrNoScheduler is returned by NewEngine without a refresh scheduler.
	ErrNoScheduler = errors.New("engine requires a scheduler")
)

var (
	fpsShadowStyle = TextStyle{Color: color.Black}
	fpsTextStyle   = TextStyle{Color: color.RGBA{R: 255, G: 255, A: 255}}
)

// Options configures NewEngine. Surface and Scheduler are required; every
// other collaborator falls back to an inert default.
type Options struct {
	Surface   Surface
	Scheduler Scheduler
	Input     InputSource
	Sound     Sound
	Time      TimeProvider
	Logger    *zap.Logger

	// FPS caps simulation and render steps; 0 runs them every tick.
	FPS     float64
	ShowFPS bool
}

// Engine owns the scenes, the frame clock and the FPS throttle, and runs
// the per-tick sequence each time the scheduler fires:
// input capture, collision pass, then (when the throttle allows) update,
// after-update and render of the current scene.
//
// The engine is single-threaded. Every method must be called from the
// goroutine that drives the scheduler.
type Engine struct {
	surface   Surface
	scheduler Scheduler
	input     InputSource
	sound     Sound
	time      TimeProvider
	log       *zap.Logger

	scenes  []*Scene
	current int

	clock frameClock
	rate  frameRate
	keys  keyboard

	showFPS       bool
	muted         bool
	frameCounter  uint64
	executionTime time.Duration

	running bool
	ticking bool
	handle  TickHandle

	stats Stats
}

// NewEngine creates an engine with no scenes.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Surface == nil {
		return nil, ErrNoSurface
	}
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}

	e := &Engine{
		surface:   opts.Surface,
		scheduler: opts.Scheduler,
		input:     opts.Input,
		sound:     opts.Sound,
		time:      opts.Time,
		log:       opts.Logger,
		current:   -1,
		showFPS:   opts.ShowFPS,
	}
	if e.sound == nil {
		e.sound = silence{}
	}
	if e.time == nil {
		e.time = realTime{}
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	e.SetFPS(opts.FPS)
	return e, nil
}

// Start registers the first tick with the scheduler.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.handle = e.scheduler.RequestNextTick(e.animate)
	e.log.Info("engine started", zap.Float64("fps", e.rate.desired))
}

// Stop cancels the pending tick. A tick already executing runs to
// completion.
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.running = false
	e.scheduler.Cancel(e.handle)
	e.log.Info("engine stopped",
		zap.Uint64("frames", e.frameCounter),
		zap.Float64("averageFps", e.rate.average))
}

// Running reports whether the engine is between Start and Stop.
func (e *Engine) Running() bool { return e.running }

// animate is the FrameCallback re-armed on every refresh.
func (e *Engine) animate(timestamp float64) {
	if !e.running {
		return
	}
	if e.ticking {
		e.stats.ReentrantTicks++
		e.handle = e.scheduler.RequestNextTick(e.animate)
		e.log.Warn("re-entrant tick ignored", zap.Float64("timestamp", timestamp))
		return
	}
	e.ticking = true
	defer func() { e.ticking = false }()

	e.handle = e.scheduler.RequestNextTick(e.animate)
	e.stats.Ticks++
	e.executionTime = 0

	e.beforeUpdate()
	e.clock.advance(timestamp)
	e.calculateFPS(e.clock.delta)

	if e.rate.waitInterval != 0 {
		e.stats.ThrottledTicks++
		return
	}
	e.stats.SimulatedFrames++
	e.update(e.clock.delta)
	e.afterUpdate(e.clock.delta)
	e.render()
	e.keys.step()
}

func (e *Engine) calculateFPS(deltaTime float64) {
	if n := e.rate.calculate(deltaTime); n > 0 {
		e.stats.NonFiniteFPS += uint64(n)
	}
}

func (e *Engine) beforeUpdate() {
	start := e.time.Now()
	e.keys.capture(e.input)
	if scene := e.CurrentScene(); scene != nil {
		scene.BeforeUpdate()
	} else {
		e.stats.IdleTicks++
	}
	e.executionTime = e.time.Now().Sub(start)
}

func (e *Engine) update(deltaTime float64) {
	if scene := e.CurrentScene(); scene != nil {
		scene.Update(deltaTime)
	}
}

func (e *Engine) afterUpdate(deltaTime float64) {
	if scene := e.CurrentScene(); scene != nil {
		scene.AfterUpdate(deltaTime)
	}
}

func (e *Engine) render() {
	e.frameCounter++
	bounds := e.surface.Bounds()
	e.surface.Clear(geom.Rect{Width: bounds.Width, Height: bounds.Height})
	if scene := e.CurrentScene(); scene != nil {
		scene.Render(e.surface)
	}
	if e.showFPS {
		e.renderFPS()
	}
}

func (e *Engine) renderFPS() {
	label := "fps : " + strconv.FormatFloat(e.rate.average, 'f', -1, 64)
	e.surface.FillText(label, 10, 20, fpsShadowStyle)
	e.surface.FillText(label, 10.8, 20.5, fpsTextStyle)
}

// AddScene appends scene and returns its index. The first scene added
// becomes the current one.
func (e *Engine) AddScene(scene *Scene) int {
	if scene == nil {
		return -1
	}
	if idx := e.SceneIndex(scene); idx != -1 {
		return idx
	}
	scene.log = e.log.Named("scene").With(zap.String("scene", scene.name))
	e.scenes = append(e.scenes, scene)
	idx := len(e.scenes) - 1
	if e.current == -1 {
		e.current = idx
	}
	e.log.Debug("scene added", zap.String("scene", scene.name), zap.Int("index", idx))
	return idx
}

// RemoveScene removes scene and reports whether it was registered. Removing
// the current scene leaves the engine without one.
func (e *Engine) RemoveScene(scene *Scene) bool {
	idx := e.SceneIndex(scene)
	if idx == -1 {
		return false
	}
	e.scenes = slices.Delete(e.scenes, idx, idx+1)
	switch {
	case idx == e.current:
		e.current = -1
	case idx < e.current:
		e.current--
	}
	return true
}

// SceneIndex returns the index of scene, or -1.
func (e *Engine) SceneIndex(scene *Scene) int {
	return slices.Index(e.scenes, scene)
}

// Scenes returns the registered scenes in insertion order.
func (e *Engine) Scenes() []*Scene { return slices.Clone(e.scenes) }

// SetCurrentScene makes scene current. An unregistered scene leaves the
// engine without a current scene.
func (e *Engine) SetCurrentScene(scene *Scene) {
	e.SetCurrentSceneIndex(e.SceneIndex(scene))
}

// SetCurrentSceneIndex selects the current scene by index. Out-of-range
// indexes are stored as-is and make every per-scene step a no-op.
func (e *Engine) SetCurrentSceneIndex(index int) {
	e.current = index
	if scene := e.CurrentScene(); scene != nil {
		e.log.Debug("scene selected", zap.String("scene", scene.name), zap.Int("index", index))
	}
}

// CurrentSceneIndex returns the stored index, -1 when none was selected.
func (e *Engine) CurrentSceneIndex() int { return e.current }

// CurrentScene returns the active scene, or nil when the index is out of
// range.
func (e *Engine) CurrentScene() *Scene {
	if e.current < 0 || e.current >= len(e.scenes) {
		return nil
	}
	return e.scenes[e.current]
}

// SetFPS sets the desired simulation rate. Zero or negative disables the
// cap.
func (e *Engine) SetFPS(fps float64) {
	if fps < 0 || !finite(fps) {
		fps = 0
	}
	e.rate.desired = fps
}

// FPS returns the desired simulation rate.
func (e *Engine) FPS() float64 { return e.rate.desired }

func (e *Engine) SetShowFPS(show bool) { e.showFPS = show }

func (e *Engine) ShowFPS() bool { return e.showFPS }

// SetMuted silences Sound without replacing it.
func (e *Engine) SetMuted(muted bool) { e.muted = muted }

func (e *Engine) Muted() bool { return e.muted }

// KeyDown reports whether the latest captured event is a press of key.
func (e *Engine) KeyDown(key string) bool { return e.keys.down(key) }

// KeyUp reports whether the latest captured event is a release of key.
func (e *Engine) KeyUp(key string) bool { return e.keys.up(key) }

// KeyPressed reports a new press of key. It stays true through throttled
// ticks until one simulation step has run.
func (e *Engine) KeyPressed(key string) bool { return e.keys.pressed(key) }

func (e *Engine) Surface() Surface { return e.surface }

// Sound returns the cue player, or a silent one while muted.
func (e *Engine) Sound() Sound {
	if e.muted {
		return silence{}
	}
	return e.sound
}

func (e *Engine) Logger() *zap.Logger { return e.log }

// Stats returns a snapshot of the diagnostic counters.
func (e *Engine) Stats() Stats { return e.stats }

// DeltaTime returns the milliseconds between the last two ticks.
func (e *Engine) DeltaTime() float64 { return e.clock.delta }

// ElapsedTime returns the milliseconds since the first tick.
func (e *Engine) ElapsedTime() float64 { return e.clock.elapsed }

// FrameCounter returns the number of rendered frames.
func (e *Engine) FrameCounter() uint64 { return e.frameCounter }

// ExecutionTime returns how long the last input capture and collision pass
// took.
func (e *Engine) ExecutionTime() time.Duration { return e.executionTime }

func (e *Engine) CurrentFPS() float64 { return e.rate.current }

func (e *Engine) AverageFPS() float64 { return e.rate.average }

func (e *Engine) EstimatedFPS() float64 { return e.rate.estimated }

func (e *Engine) SkippedFPS() float64 { return e.rate.skipped }

// WaitTime returns the extra milliseconds per frame the cap currently
// imposes.
func (e *Engine) WaitTime() float64 { return e.rate.waitTime }

// SampleCount returns how many FPS samples the rolling average holds.
func (e *Engine) SampleCount() int { return len(e.rate.samples) }
