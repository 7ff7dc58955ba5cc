package game

import (
	"fmt"
	"log"

	"github.com/decker502/monolith/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 观看设置
// 只保存观看偏好，滚动位置和动画状态从不持久化
type ViewerSettings struct {
	Fullscreen        bool    `yaml:"fullscreen"`        // 启动时是否全屏
	ShowHUD           bool    `yaml:"showHUD"`           // 显示调试信息
	ScrollSensitivity float64 `yaml:"scrollSensitivity"` // 滚轮/触摸灵敏度倍率
	ReducedMotion     bool    `yaml:"reducedMotion"`     // 关闭平滑滚动
}

// 灵敏度范围
const (
	MinScrollSensitivity = 0.25
	MaxScrollSensitivity = 4.0
)

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		Fullscreen:        false,
		ShowHUD:           false,
		ScrollSensitivity: 1.0,
		ReducedMotion:     false,
	}
}

// SettingsManager 设置管理器
// 负责观看设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// OpenSettingsStore 打开 gdata 存储
//
// 失败时返回 nil 并记录警告，调用方以降级模式继续运行。
func OpenSettingsStore(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[SettingsManager] Warning: storage dir unavailable: %v", err)
	} else if path := utils.GetStoragePath(); path != "" {
		log.Printf("[SettingsManager] Storage path: %s", path)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: failed to open storage: %v (settings will not persist)", err)
		return nil
	}
	return m
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置。
// 文件中缺失的字段保留默认值，超出范围的灵敏度被截断。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.ScrollSensitivity = clampSensitivity(loaded.ScrollSensitivity)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// IsPersistent 是否能持久化（非降级模式）
func (sm *SettingsManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowHUD 设置调试信息显示
func (sm *SettingsManager) SetShowHUD(enabled bool) {
	sm.settings.ShowHUD = enabled
}

// SetScrollSensitivity 设置滚动灵敏度，限制在 [MinScrollSensitivity, MaxScrollSensitivity]
func (sm *SettingsManager) SetScrollSensitivity(v float64) {
	sm.settings.ScrollSensitivity = clampSensitivity(v)
}

// SetReducedMotion 设置减少动态效果
func (sm *SettingsManager) SetReducedMotion(enabled bool) {
	sm.settings.ReducedMotion = enabled
}

// clampSensitivity 非正数和 NaN 视为默认值 1
func clampSensitivity(v float64) float64 {
	if v != v || v <= 0 {
		return 1.0
	}
	if v < MinScrollSensitivity {
		return MinScrollSensitivity
	}
	if v > MaxScrollSensitivity {
		return MaxScrollSensitivity
	}
	return v
}
