package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/decker502/monolith/pkg/embedded"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// DefaultScenePath 嵌入资源中的场景配置
const DefaultScenePath = "data/scene.yaml"

// SceneConfig 场景配置
//
// 所有字段都是静态参数，启动时加载一次。YAML 中未出现的字段保留默认值。
type SceneConfig struct {
	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `yaml:"seed"`

	Camera CameraConfig   `yaml:"camera"`
	Portal PortalConfig   `yaml:"portal"`
	Counts ParticleCounts `yaml:"counts"`
	Matrix MatrixConfig   `yaml:"matrix"`
	Tunnel TunnelConfig   `yaml:"tunnel"`
	Stage  StageConfig    `yaml:"stage"`
	About  AboutConfig    `yaml:"about"`
	Phases PhaseConfig    `yaml:"phases"`
}

// CameraConfig 相机参数
type CameraConfig struct {
	FOV    float64 `yaml:"fov"`    // 垂直视场角（度）
	StartZ float64 `yaml:"startZ"` // 初始 Z
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
}

// PortalConfig 门户中心和基础半径
type PortalConfig struct {
	Position mgl64.Vec3 `yaml:"position"`
	Radius   float64    `yaml:"radius"`
	// PushZ 隧道阶段门户组向相机推进的距离
	PushZ float64 `yaml:"pushZ"`
	// 漩涡和能量环的完全显现透明度（粒子池的透明度在池定义的 baseOpacity 中）
	VortexOpacity float64 `yaml:"vortexOpacity"`
	RingOpacity   float64 `yaml:"ringOpacity"`
}

// ParticleCounts 各类粒子数量
type ParticleCounts struct {
	DarkCloud  int `yaml:"darkCloud"`
	Dust       int `yaml:"dust"`
	Spark      int `yaml:"spark"`
	SparkTrail int `yaml:"sparkTrail"`
	Glyph      int `yaml:"glyph"`
	LightRay   int `yaml:"lightRay"`
	CenterGlow int `yaml:"centerGlow"`
	Tunnel     int `yaml:"tunnel"`
}

// MatrixConfig 矩阵字符流参数
type MatrixConfig struct {
	Position      mgl64.Vec3 `yaml:"position"`
	Columns       int        `yaml:"columns"`
	Rows          int        `yaml:"rows"`
	ColumnSpacing float64    `yaml:"columnSpacing"`
	CharHeight    float64    `yaml:"charHeight"`
	GlyphSize     float64    `yaml:"glyphSize"`
	SpeedMin      float64    `yaml:"speedMin"`
	SpeedMax      float64    `yaml:"speedMax"`
	// FadeExponent 列端淡出曲线 pow(sin(πy), exponent) 的指数
	FadeExponent float64 `yaml:"fadeExponent"`
	// PeakOpacity 列中央的最大透明度
	PeakOpacity float64 `yaml:"peakOpacity"`
}

// TunnelConfig 隧道粒子流参数
type TunnelConfig struct {
	FarZ          float64 `yaml:"farZ"`          // 回收后的起始深度
	FarJitter     float64 `yaml:"farJitter"`     // 起始深度随机偏移（向更远处）
	RecycleZ      float64 `yaml:"recycleZ"`      // 越过该深度即回收
	FadeInWindow  float64 `yaml:"fadeInWindow"`  // 远端渐显距离
	FadeOutWindow float64 `yaml:"fadeOutWindow"` // 近端渐隐距离
}

// StageConfig 方尖碑和背景
type StageConfig struct {
	MonolithPosition mgl64.Vec3 `yaml:"monolithPosition"`
	MonolithWidth    float64    `yaml:"monolithWidth"`
	MonolithHeight   float64    `yaml:"monolithHeight"`
	BackdropZ        float64    `yaml:"backdropZ"`
}

// AboutConfig 关于面板
type AboutConfig struct {
	StartZ float64 `yaml:"startZ"`
	EndZ   float64 `yaml:"endZ"`
}

// PhaseConfig 各阶段的起点（滚动进度比例）
// 第一个阶段（相机推进）从 0 开始，最后一个阶段到 1 结束
type PhaseConfig struct {
	GlyphFadeIn float64 `yaml:"glyphFadeIn"`
	Dim         float64 `yaml:"dim"`
	Float       float64 `yaml:"float"`
	Fly         float64 `yaml:"fly"`
	Portal      float64 `yaml:"portal"`
	Approach    float64 `yaml:"approach"`
	Tunnel      float64 `yaml:"tunnel"`
	Fade        float64 `yaml:"fade"`
	About       float64 `yaml:"about"`
}

// Bounds 返回全部 11 个阶段边界：0, 各阶段起点, 1
func (p PhaseConfig) Bounds() []float64 {
	return []float64{0, p.GlyphFadeIn, p.Dim, p.Float, p.Fly, p.Portal, p.Approach, p.Tunnel, p.Fade, p.About, 1}
}

// DefaultSceneConfig 返回内置默认配置
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Camera: CameraConfig{FOV: 75, StartZ: 1000, Near: 1, Far: 5000},
		Portal: PortalConfig{
			Position:      mgl64.Vec3{120, -60, 50},
			Radius:        180,
			PushZ:         750,
			VortexOpacity: 0.8,
			RingOpacity:   0.6,
		},
		Counts: ParticleCounts{
			DarkCloud:  80,
			Dust:       120,
			Spark:      60,
			SparkTrail: 40,
			Glyph:      200,
			LightRay:   24,
			CenterGlow: 30,
			Tunnel:     150,
		},
		Matrix: MatrixConfig{
			Position:      mgl64.Vec3{-50, 0, 150},
			Columns:       4,
			Rows:          25,
			ColumnSpacing: 35,
			CharHeight:    22,
			GlyphSize:     18,
			SpeedMin:      60,
			SpeedMax:      100,
			FadeExponent:  0.6,
			PeakOpacity:   0.85,
		},
		Tunnel: TunnelConfig{
			FarZ:          -1500,
			FarJitter:     500,
			RecycleZ:      500,
			FadeInWindow:  500,
			FadeOutWindow: 200,
		},
		Stage: StageConfig{
			MonolithPosition: mgl64.Vec3{0, 0, -100},
			MonolithWidth:    220,
			MonolithHeight:   880,
			BackdropZ:        -3000,
		},
		About: AboutConfig{StartZ: -2000, EndZ: -400},
		Phases: PhaseConfig{
			GlyphFadeIn: 0.10,
			Dim:         0.25,
			Float:       0.35,
			Fly:         0.45,
			Portal:      0.55,
			Approach:    0.65,
			Tunnel:      0.75,
			Fade:        0.85,
			About:       0.92,
		},
	}
}

// ParseSceneConfig 解析 YAML 场景配置（覆盖在默认值之上）并验证
func ParseSceneConfig(data []byte) (SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SceneConfig{}, fmt.Errorf("failed to parse scene config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SceneConfig{}, fmt.Errorf("invalid scene config: %w", err)
	}
	return cfg, nil
}

// LoadSceneConfig 加载场景配置
//
// 以 "data/" 开头且嵌入资源已初始化时从嵌入资源读取，否则从文件系统读取
// （--config 指定的外部文件）。
func LoadSceneConfig(path string) (SceneConfig, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(path, "data/") && embedded.IsInitialized() && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return SceneConfig{}, fmt.Errorf("failed to read scene config %s: %w", path, err)
	}

	cfg, err := ParseSceneConfig(data)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[Config] Loaded scene config from %s (portal radius %.0f, %d tunnel particles)",
		path, cfg.Portal.Radius, cfg.Counts.Tunnel)
	return cfg, nil
}

// Validate 检查配置有效性，错误属于编程/配置错误，应在初始化时直接失败
func (c SceneConfig) Validate() error {
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov must be within (0,180), got %v", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera near/far invalid: near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Portal.Radius <= 0 {
		return fmt.Errorf("portal.radius must be positive, got %v", c.Portal.Radius)
	}
	if c.Portal.VortexOpacity < 0 || c.Portal.VortexOpacity > 1 {
		return fmt.Errorf("portal.vortexOpacity must be within [0,1], got %v", c.Portal.VortexOpacity)
	}
	if c.Portal.RingOpacity < 0 || c.Portal.RingOpacity > 1 {
		return fmt.Errorf("portal.ringOpacity must be within [0,1], got %v", c.Portal.RingOpacity)
	}

	counts := map[string]int{
		"darkCloud":  c.Counts.DarkCloud,
		"dust":       c.Counts.Dust,
		"spark":      c.Counts.Spark,
		"sparkTrail": c.Counts.SparkTrail,
		"glyph":      c.Counts.Glyph,
		"lightRay":   c.Counts.LightRay,
		"centerGlow": c.Counts.CenterGlow,
		"tunnel":     c.Counts.Tunnel,
	}
	for name, n := range counts {
		if n < 0 {
			return fmt.Errorf("counts.%s cannot be negative, got %d", name, n)
		}
	}

	m := c.Matrix
	if m.Columns <= 0 || m.Rows <= 0 {
		return fmt.Errorf("matrix grid must be at least 1x1, got %dx%d", m.Columns, m.Rows)
	}
	if m.ColumnSpacing <= 0 || m.CharHeight <= 0 || m.GlyphSize <= 0 {
		return fmt.Errorf("matrix spacing, charHeight and glyphSize must be positive")
	}
	if m.SpeedMin <= 0 || m.SpeedMax < m.SpeedMin {
		return fmt.Errorf("matrix speed range invalid: [%v, %v]", m.SpeedMin, m.SpeedMax)
	}
	if m.FadeExponent <= 0 {
		return fmt.Errorf("matrix.fadeExponent must be positive, got %v", m.FadeExponent)
	}
	if m.PeakOpacity <= 0 || m.PeakOpacity > 1 {
		return fmt.Errorf("matrix.peakOpacity must be within (0,1], got %v", m.PeakOpacity)
	}

	t := c.Tunnel
	if t.FarZ >= t.RecycleZ {
		return fmt.Errorf("tunnel.farZ (%v) must be less than recycleZ (%v)", t.FarZ, t.RecycleZ)
	}
	if t.FarJitter < 0 {
		return fmt.Errorf("tunnel.farJitter cannot be negative")
	}
	if t.FadeInWindow <= 0 || t.FadeOutWindow <= 0 {
		return fmt.Errorf("tunnel fade windows must be positive")
	}

	if c.Stage.MonolithWidth <= 0 || c.Stage.MonolithHeight <= 0 {
		return fmt.Errorf("stage monolith size must be positive")
	}

	bounds := c.Phases.Bounds()
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return fmt.Errorf("phase boundaries must be strictly increasing within [0,1], got %v", bounds)
		}
	}
	return nil
}
