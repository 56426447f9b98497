package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Settings 可由用户调整、重启后仍保留的引擎选项
type Settings struct {
	FPS     float64 `yaml:"fps"`     // 期望的模拟帧率，0 表示不限速
	ShowFPS bool    `yaml:"showFps"` // FPS 叠加显示
	Muted   bool    `yaml:"muted"`   // 静音提示音
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "engine"
)

// SettingsManager 设置管理器
// 通过 gdata 加载和保存 Settings
//
// gdata 管理器为 nil 时进入降级模式：设置仅保存在内存中，Save 不做任何事。
type SettingsManager struct {
	store    *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	defaults Settings       // 尚未保存过设置时使用的默认值
	settings Settings       // 当前设置
	stored   bool           // 当前设置是否来自（或已写入）持久化存储
	log      *zap.Logger
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败只记录警告，保留默认设置
//
// 参数：
//   - store: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - defaults: 尚未保存过设置时使用的默认值
//   - log: 日志记录器，可为 nil
//
// 返回：
//   - *SettingsManager: 设置管理器实例
func NewSettingsManager(store *gdata.Manager, defaults Settings, log *zap.Logger) *SettingsManager {
	if log == nil {
		log = zap.NewNop()
	}
	sm := &SettingsManager{
		store:    store,
		defaults: defaults,
		settings: defaults,
		log:      log.Named("settings"),
	}
	if err := sm.Load(); err != nil {
		sm.log.Warn("failed to load settings, using defaults", zap.Error(err))
	}
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 store 为 nil 或数据不存在，使用默认设置
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	sm.settings = sm.defaults
	sm.stored = false
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.FPS < 0 {
		loaded.FPS = 0
	}

	sm.settings = loaded
	sm.stored = true
	sm.log.Debug("settings loaded", zap.Float64("fps", loaded.FPS), zap.Bool("showFps", loaded.ShowFPS))
	return nil
}

// Save 将当前设置保存到 gdata
//
// 降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.stored = true
	sm.log.Debug("settings saved")
	return nil
}

// Settings 返回当前设置
func (sm *SettingsManager) Settings() Settings { return sm.settings }

// Stored 返回当前设置是否来自（或已写入）持久化存储
func (sm *SettingsManager) Stored() bool { return sm.stored }

// SetFPS 设置期望帧率，负数按 0（不限速）处理
func (sm *SettingsManager) SetFPS(fps float64) {
	if fps < 0 {
		fps = 0
	}
	sm.settings.FPS = fps
}

func (sm *SettingsManager) SetShowFPS(show bool) { sm.settings.ShowFPS = show }

func (sm *SettingsManager) SetMuted(muted bool) { sm.settings.Muted = muted }

// Apply 将当前设置应用到引擎
func (sm *SettingsManager) Apply(e *Engine) {
	e.SetFPS(sm.settings.FPS)
	e.SetShowFPS(sm.settings.ShowFPS)
	e.SetMuted(sm.settings.Muted)
}

// Capture 从引擎读取当前设置
func (sm *SettingsManager) Capture(e *Engine) {
	sm.settings = Settings{
		FPS:     e.FPS(),
		ShowFPS: e.ShowFPS(),
		Muted:   e.Muted(),
	}
}
