// Package app 在 Ebitengine 窗口中运行引擎
//
// 桌面端由 main.go 调用 NewApp，移动端由 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/decker502/engine2d/pkg/config"
	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/objects"
	"github.com/decker502/engine2d/pkg/scenes"
)

// ErrNoConfig 未提供引擎配置时由 NewApp 返回
var ErrNoConfig = errors.New("app requires an engine configuration")

// Config 应用配置
type Config struct {
	// Engine 已加载的配置文件
	Engine *config.EngineConfig
	// Scene 启动场景名称，为空时使用第一个场景
	Scene string
	// Settings 持久化用户设置，为 nil 时仅保存在内存中
	Settings *game.SettingsManager
	// Logger 为 nil 时不输出日志
	Logger *zap.Logger
}

// App 包装引擎并实现 ebiten.Game 接口
type App struct {
	engine   *game.Engine
	sched    *game.ManualScheduler
	canvas   *canvas
	input    *keyInput
	sound    *toneSound
	settings *game.SettingsManager
	log      *zap.Logger

	width, height int
	start         time.Time

	pendingWindowSizeReset   bool // resize once the window manager left fullscreen
	windowSizeResetCountdown int
}

// NewApp 创建引擎、加载所有配置的场景并启动帧循环
//
// 参数：
//   - cfg: 应用配置，cfg.Engine 不能为 nil
//
// 返回：
//   - *App: 应用实例，帧由 Update 驱动
//   - error: 创建引擎或加载场景失败时返回错误
func NewApp(cfg Config) (*App, error) {
	if cfg.Engine == nil {
		return nil, ErrNoConfig
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ec := cfg.Engine

	a := &App{
		sched:    game.NewManualScheduler(),
		canvas:   newCanvas(ec.Window.Width, ec.Window.Height),
		input:    &keyInput{},
		settings: cfg.Settings,
		log:      log.Named("app"),
		width:    ec.Window.Width,
		height:   ec.Window.Height,
	}

	var sound game.Sound
	if ec.Audio.Enabled {
		a.sound = newToneSound(audio.NewContext(ec.Audio.SampleRate), ec.Audio, log)
		sound = a.sound
	}

	engine, err := game.NewEngine(game.Options{
		Surface:   a.canvas,
		Scheduler: a.sched,
		Input:     a.input,
		Sound:     sound,
		Logger:    log.Named("engine"),
		FPS:       ec.Engine.FPS,
		ShowFPS:   ec.Engine.ShowFPS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	a.engine = engine

	var deps objects.Deps
	if cfg.Settings != nil {
		deps.Prefs = cfg.Settings
		if cfg.Settings.Stored() {
			cfg.Settings.Apply(engine)
		}
	}

	loader := scenes.NewLoader(nil, deps, log)
	if _, err := loader.LoadAll(engine, ec); err != nil {
		return nil, fmt.Errorf("failed to load scenes: %w", err)
	}
	if err := scenes.Select(engine, cfg.Scene); err != nil {
		return nil, err
	}

	a.start = time.Now()
	engine.Start()
	a.log.Info("app ready",
		zap.Int("width", a.width),
		zap.Int("height", a.height),
		zap.Int("scenes", len(engine.Scenes())))
	return a, nil
}

// Update 读取键盘输入并向引擎投递一次刷新
// 按 ESC 退出游戏循环
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.width, a.height)
			a.pendingWindowSizeReset = false
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.input.poll()
	a.sched.Advance(a.timestamp())
	return nil
}

func (a *App) toggleFullscreen() {
	if !ebiten.IsFullscreen() {
		ebiten.SetFullscreen(true)
		return
	}
	ebiten.SetFullscreen(false)
	if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
		ebiten.RestoreWindow()
	}
	a.pendingWindowSizeReset = true
	a.windowSizeResetCountdown = 3
	a.log.Debug("exit fullscreen, resetting window size in 3 frames")
}

// timestamp 返回应用启动以来的毫秒数
func (a *App) timestamp() float64 {
	return float64(time.Since(a.start)) / float64(time.Millisecond)
}

// Draw 将引擎画布复制到屏幕
func (a *App) Draw(screen *ebiten.Image) {
	screen.DrawImage(a.canvas.img, nil)
}

// DrawFinalScreen 用黑边填充并使用线性过滤缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回配置中的逻辑画面尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Engine 返回应用驱动的引擎
func (a *App) Engine() *game.Engine { return a.engine }

// Close 停止引擎、释放音频播放器并保存当前设置。
func (a *App) Close() error {
	a.engine.Stop()

	var err error
	if a.sound != nil {
		if closeErr := a.sound.Close(); closeErr != nil {
			err = fmt.Errorf("failed to close audio players: %w", closeErr)
		}
	}
	if a.settings == nil {
		return err
	}
	a.settings.Capture(a.engine)
	if saveErr := a.settings.Save(); saveErr != nil {
		err = errors.Join(err, fmt.Errorf("failed to save settings on exit: %w", saveErr))
	}
	return err
}

// Run 打开窗口并阻塞直到窗口关闭
func Run(a *App, title string) error {
	ebiten.SetWindowSize(a.width, a.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(a)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	return errors.Join(err, a.Close())
}
