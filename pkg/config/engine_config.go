package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/engine2d/pkg/embedded"
	"github.com/decker502/engine2d/pkg/geom"
)

// EngineConfig 配置文件的顶层结构
type EngineConfig struct {
	Engine   EngineSection   `yaml:"engine"`   // 模拟循环
	Window   WindowSection   `yaml:"window"`   // 窗口宿主
	Terminal TerminalSection `yaml:"terminal"` // 终端宿主
	Audio    AudioSection    `yaml:"audio"`    // 提示音
	Scenes   []SceneConfig   `yaml:"scenes"`   // 按注册顺序排列的场景
}

// EngineSection 模拟循环配置
type EngineSection struct {
	FPS      float64 `yaml:"fps"`      // 期望的模拟帧率，0 表示不限速
	ShowFPS  bool    `yaml:"showFps"`  // FPS 叠加显示
	LogLevel string  `yaml:"logLevel"` // 日志级别：debug、info、warn、error
}

// WindowSection 窗口（ebiten）宿主配置
type WindowSection struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`  // 逻辑画面宽度
	Height int    `yaml:"height"` // 逻辑画面高度
}

// TerminalSection 终端（tcell）宿主配置
type TerminalSection struct {
	CellWidth    float64 `yaml:"cellWidth"`    // 每列对应的世界单位
	CellHeight   float64 `yaml:"cellHeight"`   // 每行对应的世界单位
	RefreshHz    int     `yaml:"refreshHz"`    // 刷新频率
	KeyReleaseMs int     `yaml:"keyReleaseMs"` // 无重复按键多久后合成按键抬起
}

// AudioSection 提示音播放配置
type AudioSection struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sampleRate"`
	Volume     float64 `yaml:"volume"`     // 0.0 ~ 1.0
	CueMs      int     `yaml:"cueMs"`      // 提示音时长
	BaseFreqHz float64 `yaml:"baseFreqHz"` // 基准音高
}

// SceneConfig 单个场景及其对象的配置
type SceneConfig struct {
	Name    string         `yaml:"name"`
	Tags    []string       `yaml:"tags"`
	Objects []ObjectConfig `yaml:"objects"`
}

// ObjectConfig 单个游戏对象的配置
// Kind 选择构造函数，该类型不使用的字段会被忽略
type ObjectConfig struct {
	Kind      string           `yaml:"kind"`
	Name      string           `yaml:"name"`
	Tags      []string         `yaml:"tags"`
	Position  geom.Position    `yaml:"position"`
	Dimension geom.Dimension   `yaml:"dimension"`
	Velocity  geom.Velocity    `yaml:"velocity"`
	Speed     float64          `yaml:"speed"` // 玩家输入时每秒移动的单位数
	Color     string           `yaml:"color"` // #rrggbb 或 #rrggbbaa
	Cue       string           `yaml:"cue"`   // 交互时播放的提示音
	Colliders []ColliderConfig `yaml:"colliders"`
}

// ColliderConfig 盒形碰撞体配置
// Dimension 为 nil 时继承对象尺寸
type ColliderConfig struct {
	Offset    geom.Position   `yaml:"offset"`
	Dimension *geom.Dimension `yaml:"dimension"`
	Visible   bool            `yaml:"visible"`
	Trigger   bool            `yaml:"trigger"`
}

// Defaults 返回内置默认值，所有配置文件都在此基础上加载
func Defaults() EngineConfig {
	return EngineConfig{
		Engine: EngineSection{FPS: 60, LogLevel: "info"},
		Window: WindowSection{Title: "engine2d", Width: 640, Height: 480},
		Terminal: TerminalSection{
			CellWidth:    8,
			CellHeight:   16,
			RefreshHz:    60,
			KeyReleaseMs: 500,
		},
		Audio: AudioSection{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.3,
			CueMs:      60,
			BaseFreqHz: 440,
		},
	}
}

// Parse 解析并校验 YAML 配置数据
// 缺失的字段保留 Defaults 中的值
//
// 参数：
//   - data: YAML 文件内容
//
// 返回：
//   - *EngineConfig: 解析后的配置
//   - error: 解析或校验失败时返回错误
func Parse(data []byte) (*EngineConfig, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &cfg, nil
}

// Load 读取 path 指定的配置文件，path 为空时使用内置默认配置
func Load(path string) (*EngineConfig, error) {
	if path == "" {
		return LoadEmbedded()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine config file: %w", err)
	}
	return Parse(data)
}

// LoadEmbedded 解析嵌入在程序中的配置
func LoadEmbedded() (*EngineConfig, error) {
	data, err := embedded.ReadFile(embedded.DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded engine config: %w", err)
	}
	return Parse(data)
}

// Validate 一次性返回所有无效字段
func (c *EngineConfig) Validate() error {
	var errs []error

	if c.Engine.FPS < 0 {
		errs = append(errs, fmt.Errorf("engine.fps must not be negative, got %v", c.Engine.FPS))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("terminal cell size must be positive, got %vx%v", c.Terminal.CellWidth, c.Terminal.CellHeight))
	}
	if c.Terminal.RefreshHz <= 0 {
		errs = append(errs, fmt.Errorf("terminal.refreshHz must be positive, got %d", c.Terminal.RefreshHz))
	}
	if c.Terminal.KeyReleaseMs < 0 {
		errs = append(errs, fmt.Errorf("terminal.keyReleaseMs must not be negative, got %d", c.Terminal.KeyReleaseMs))
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sampleRate must be positive, got %d", c.Audio.SampleRate))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be between 0 and 1, got %v", c.Audio.Volume))
	}

	seen := make(map[string]bool, len(c.Scenes))
	for i, s := range c.Scenes {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("scenes[%d]: name cannot be empty", i))
		} else if seen[s.Name] {
			errs = append(errs, fmt.Errorf("scenes[%d]: duplicate scene name %q", i, s.Name))
		}
		seen[s.Name] = true

		for j, o := range s.Objects {
			if err := o.validate(); err != nil {
				errs = append(errs, fmt.Errorf("scenes[%d].objects[%d]: %w", i, j, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (o *ObjectConfig) validate() error {
	var errs []error
	if o.Kind == "" {
		errs = append(errs, errors.New("kind cannot be empty"))
	}
	if o.Dimension.Width < 0 || o.Dimension.Height < 0 {
		errs = append(errs, fmt.Errorf("dimension must not be negative, got %vx%v", o.Dimension.Width, o.Dimension.Height))
	}
	if o.Speed < 0 {
		errs = append(errs, fmt.Errorf("speed must not be negative, got %v", o.Speed))
	}
	if o.Color != "" {
		if _, err := ParseColor(o.Color); err != nil {
			errs = append(errs, err)
		}
	}
	for k, c := range o.Colliders {
		if c.Dimension != nil && (c.Dimension.Width < 0 || c.Dimension.Height < 0) {
			errs = append(errs, fmt.Errorf("colliders[%d]: dimension must not be negative", k))
		}
	}
	return errors.Join(errs...)
}

// Scene 按名称查找场景配置
func (c *EngineConfig) Scene(name string) (SceneConfig, bool) {
	for _, s := range c.Scenes {
		if s.Name == name {
			return s, true
		}
	}
	return SceneConfig{}, false
}

// ParseColor 解析 "#rrggbb" 或 "#rrggbbaa" 格式的颜色
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
