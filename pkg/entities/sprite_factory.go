// Package entities 创建场景中的全部实体：相机、舞台、门户、矩阵字符流和隧道
//
// 实体只在场景初始化时创建一次，运行期间不销毁；停用即隐藏或透明度归零。
package entities

import (
	"fmt"

	"github.com/decker502/monolith/pkg/components"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImageSource 提供共享纹理（texture.Library 实现该接口）
type ImageSource interface {
	// Texture 按名称返回纹理，未知名称返回 nil
	Texture(name string) *ebiten.Image
	// Glyph 返回字符纹理（small 为小号版本）
	Glyph(r rune, small bool) *ebiten.Image
	// RandomRune 从字符集中随机取一个字符
	RandomRune() rune
}

// Handle 缓存一个精灵实体的组件指针，避免每帧查询组件表
type Handle struct {
	ID        ecs.EntityID
	Transform *components.TransformComponent
	Material  *components.MaterialComponent
	Sprite    *components.SpriteComponent
}

// SetOpacity 设置透明度（截断到 [0,1]）
func (h *Handle) SetOpacity(v float64) {
	h.Material.SetOpacity(v)
}

// SetVisible 设置是否参与渲染
func (h *Handle) SetVisible(v bool) {
	h.Material.Visible = v
}

// NewSpriteEntity 创建一个精灵实体
//
// 参数:
//   - em: 实体管理器
//   - parent: 父实体（0 表示世界坐标）
//   - pos: 相对父实体的位置
//   - img: 纹理，不能为 nil
//   - width, height: 四边形的世界尺寸
//   - additive: 是否加法混合
//
// 新建精灵可见但透明度为 0。
func NewSpriteEntity(em *ecs.EntityManager, parent ecs.EntityID, pos mgl64.Vec3, img *ebiten.Image, width, height float64, additive bool) (*Handle, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if img == nil {
		return nil, fmt.Errorf("sprite image cannot be nil")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("sprite size must be positive, got %vx%v", width, height)
	}

	id := em.CreateEntity()
	h := &Handle{
		ID:        id,
		Transform: components.NewTransform(pos, parent),
		Material:  &components.MaterialComponent{Additive: additive, Visible: true},
		Sprite:    &components.SpriteComponent{Image: img, Width: width, Height: height},
	}
	em.AddComponent(id, h.Transform)
	em.AddComponent(id, h.Material)
	em.AddComponent(id, h.Sprite)
	return h, nil
}

// NewGroupEntity 创建只有变换的分组实体（门户组、矩阵组、隧道组）
func NewGroupEntity(em *ecs.EntityManager, parent ecs.EntityID, pos mgl64.Vec3) (ecs.EntityID, *components.TransformComponent) {
	id := em.CreateEntity()
	tr := components.NewTransform(pos, parent)
	em.AddComponent(id, tr)
	return id, tr
}

// NewCameraEntity 创建相机实体
func NewCameraEntity(em *ecs.EntityManager, pos mgl64.Vec3, fov, near, far float64) (ecs.EntityID, *components.CameraComponent) {
	id := em.CreateEntity()
	cam := &components.CameraComponent{Position: pos, FOV: fov, Near: near, Far: far}
	em.AddComponent(id, cam)
	return id, cam
}
