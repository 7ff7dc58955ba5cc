package components

import (
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// TransformComponent 存储实体的局部变换
//
// Position 是相对父实体的坐标（世界单位，与像素同量级），Parent 为 0 表示
// 直接位于世界坐标系。Rotation 是绕视轴的旋转（弧度）。
type TransformComponent struct {
	Position mgl64.Vec3
	Rotation float64

	// ScaleX/ScaleY 缩放因子（1.0 = 原始大小）
	ScaleX float64
	ScaleY float64

	Parent ecs.EntityID
}

// NewTransform 返回单位缩放的变换
func NewTransform(pos mgl64.Vec3, parent ecs.EntityID) *TransformComponent {
	return &TransformComponent{Position: pos, ScaleX: 1, ScaleY: 1, Parent: parent}
}

// SetScale 设置统一缩放
func (t *TransformComponent) SetScale(s float64) {
	t.ScaleX = s
	t.ScaleY = s
}
