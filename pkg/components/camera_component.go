package components

import "github.com/go-gl/mathgl/mgl64"

// CameraComponent 透视相机
//
// 相机始终朝向 -Z 方向，只移动位置不旋转。
type CameraComponent struct {
	Position mgl64.Vec3

	// FOV 垂直视场角（度）
	FOV float64

	// Near/Far 裁剪面距离
	Near float64
	Far  float64
}
