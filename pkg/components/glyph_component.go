package components

import "github.com/go-gl/mathgl/mgl64"

// GlyphPhase 矩阵字符的生命周期阶段
type GlyphPhase int

const (
	// GlyphScrolling 沿列滚动（初始阶段）
	GlyphScrolling GlyphPhase = iota
	// GlyphFloating 向外漂浮到 FloatTarget
	GlyphFloating
	// GlyphFlying 飞向门户附近的 FlyTarget
	GlyphFlying
)

func (p GlyphPhase) String() string {
	switch p {
	case GlyphScrolling:
		return "Scrolling"
	case GlyphFloating:
		return "Floating"
	case GlyphFlying:
		return "Flying"
	}
	return "Unknown"
}

// GlyphComponent 矩阵字符单元
//
// 坐标都位于矩阵组的局部空间。列高为 2*HalfHeight，字符在 [-HalfHeight, HalfHeight]
// 之间滚动，越界时跳到另一端并换字。
type GlyphComponent struct {
	Column int
	Row    int

	// Direction 滚动方向（+1 向上，-1 向下）
	Direction float64
	// Speed 滚动速度（世界单位/秒）
	Speed      float64
	BaseY      float64
	HalfHeight float64

	Phase       GlyphPhase
	FloatTarget mgl64.Vec3
	FlyTarget   mgl64.Vec3
	// Origin 进入当前阶段时的位置（漂浮/飞行的插值起点）
	Origin mgl64.Vec3

	Rune            rune
	InitialRune     rune
	InitialPosition mgl64.Vec3

	// Stagger 漂浮/飞行的错峰延迟（0-1）
	Stagger float64

	// Wraps 累计换行次数
	Wraps int
}
