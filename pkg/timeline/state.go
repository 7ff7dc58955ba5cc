package timeline

import (
	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/components"
	"github.com/go-gl/mathgl/mgl64"
)

// 接近门户阶段结束时黑云、火花和光线相对 baseOpacity 的倍率
const (
	CloudBoost = 0.85 / 0.7
	SparkBoost = 1 / 0.9
	RayBoost   = 0.7 / 0.5
)

// PortalTargets 门户集合的目标值
//
// 各类别的值是相对池定义 baseOpacity 的倍率（已乘以淡出系数），Reveal 是渐显进度，
// 实际透明度 = baseOpacity × 倍率 × 错峰后的 Reveal，超过 1 的部分由材质截断。
type PortalTargets struct {
	Reveal float64

	DarkCloud  float64
	Dust       float64
	Spark      float64
	SparkTrail float64
	Glyph      float64
	LightRay   float64
	CenterGlow float64
	Vortex     float64
	Rings      float64

	// Spread 消散阶段的半径倍数（1 → 3）
	Spread float64
	// OffsetZ 隧道阶段门户组向相机推进的距离
	OffsetZ float64
}

// Level 返回某类粒子的透明度倍率
func (t PortalTargets) Level(kind particle.Kind) float64 {
	switch kind {
	case particle.KindDarkCloud:
		return t.DarkCloud
	case particle.KindDust:
		return t.Dust
	case particle.KindSpark:
		return t.Spark
	case particle.KindSparkTrail:
		return t.SparkTrail
	case particle.KindGlyph:
		return t.Glyph
	case particle.KindLightRay:
		return t.LightRay
	case particle.KindCenterGlow:
		return t.CenterGlow
	}
	return 0
}

// AnimationState 某个滚动进度下的完整场景状态
type AnimationState struct {
	Progress float64
	Phase    PhaseID

	// 激活标志，只由 p 与阶段边界比较得出
	CameraDolly  bool
	GlyphActive  bool
	PortalActive bool
	TunnelActive bool
	Dispersing   bool
	AboutActive  bool

	Camera mgl64.Vec3

	// 舞台
	BackdropOpacity float64
	MonolithOpacity float64
	MonolithScale   float64
	SlitOpacity     float64
	StageVisible    bool

	// 矩阵字符流
	GlyphPhase    components.GlyphPhase
	GlyphReveal   float64 // 渐显进度（0-1，单元按各自错峰计算）
	GlyphFade     float64 // 并入门户时的整体淡出系数（1 → 0）
	FloatProgress float64
	FlyProgress   float64

	Portal PortalTargets

	// TunnelOpacity 隧道强度（0-1），乘以隧道池的 baseOpacity
	TunnelOpacity float64

	AboutOpacity float64
	AboutZ       float64
}
