package components

import "github.com/decker502/monolith/internal/particle"

// AnimationParams 粒子的运动参数，全部在创建时随机抽取，之后只读
//
// 角度单位为弧度，速度单位为 弧度/秒 或 世界单位/秒。
type AnimationParams struct {
	// 极坐标位置
	Angle  float64
	Radius float64
	BaseZ  float64

	// 尺寸（世界单位）
	Width  float64
	Height float64

	OrbitSpeed    float64
	WobbleSpeed   float64
	WobbleAmount  float64
	Phase         float64
	FlickerSpeed  float64
	RotationSpeed float64
	PulseSpeed    float64
	SpiralSpeed   float64
	StreamSpeed   float64

	// Stagger 渐显错峰偏移（0-1）
	Stagger float64
}

// Snapshot 创建时刻的状态，倒退滚动时用于精确还原
type Snapshot struct {
	Angle    float64
	Radius   float64
	Z        float64
	Rotation float64
}

// ParticleComponent 粒子数据：类别、运动参数和初始快照
//
// 运行中变化的角度和半径保存在 Params 中（Orbit 会推进 Params.Angle），
// Initial 永远不变。
type ParticleComponent struct {
	Kind    particle.Kind
	Params  AnimationParams
	Initial Snapshot
}
