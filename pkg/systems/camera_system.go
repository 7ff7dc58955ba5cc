package systems

import (
	"math"

	"github.com/decker502/monolith/pkg/components"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/decker502/monolith/pkg/entities"
	"github.com/decker502/monolith/pkg/timeline"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraSystem 管理透视相机
//
// 相机位置完全由时间轴决定，没有自身的动画状态。相机始终朝向 -Z。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
	camera        *components.CameraComponent
}

// NewCameraSystem 创建相机系统，并创建相机实体
func NewCameraSystem(em *ecs.EntityManager, cfg config.CameraConfig) *CameraSystem {
	id, cam := entities.NewCameraEntity(em, mgl64.Vec3{0, 0, cfg.StartZ}, cfg.FOV, cfg.Near, cfg.Far)
	return &CameraSystem{
		entityManager: em,
		cameraEntity:  id,
		camera:        cam,
	}
}

// Apply 把时间轴给出的相机位置写入相机组件
func (cs *CameraSystem) Apply(st timeline.AnimationState) {
	cs.camera.Position = st.Camera
}

// Camera 返回相机组件
func (cs *CameraSystem) Camera() *components.CameraComponent {
	return cs.camera
}

// ViewProjection 返回视图投影矩阵
//
// 参数:
//   - aspect: 视口宽高比
func (cs *CameraSystem) ViewProjection(aspect float64) mgl64.Mat4 {
	c := cs.camera
	proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
	eye := c.Position
	view := mgl64.LookAtV(eye, eye.Sub(mgl64.Vec3{0, 0, 1}), mgl64.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// Project 把世界坐标投影到屏幕像素坐标
//
// 返回值 ok 为 false 表示点在近裁剪面之前或远裁剪面之后。
func (cs *CameraSystem) Project(vp mgl64.Mat4, world mgl64.Vec3, width, height float64) (x, y float64, ok bool) {
	depth := cs.camera.Position.Z() - world.Z()
	if depth < cs.camera.Near || depth > cs.camera.Far {
		return 0, 0, false
	}
	clip := vp.Mul4x1(world.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	return (ndcX + 1) / 2 * width, (1 - ndcY) / 2 * height, true
}

// Depth 返回世界点到相机平面的距离（正值位于相机前方）
func (cs *CameraSystem) Depth(world mgl64.Vec3) float64 {
	return cs.camera.Position.Z() - world.Z()
}

// PixelsPerUnit 距离 depth 处一个世界单位对应的像素数
func (cs *CameraSystem) PixelsPerUnit(depth, viewportHeight float64) float64 {
	if depth <= 0 {
		return 0
	}
	return viewportHeight / (2 * math.Tan(mgl64.DegToRad(cs.camera.FOV)/2) * depth)
}
