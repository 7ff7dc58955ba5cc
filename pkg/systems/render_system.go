package systems

import (
	"math"
	"sort"

	"github.com/decker502/monolith/pkg/components"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices uint16 索引能寻址的顶点上限（按四边形对齐）
const maxBatchVertices = 65532

// additiveBlend 加法混合：src + dst
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// worldTransform 解析父子链后的世界变换
type worldTransform struct {
	pos      mgl64.Vec3
	scaleX   float64
	scaleY   float64
	rotation float64
}

// DrawItem 一个待绘制的四边形（屏幕坐标）
type DrawItem struct {
	ID       ecs.EntityID
	Image    *ebiten.Image
	Additive bool
	Opacity  float64
	Depth    float64
	// Corners 左上、右上、左下、右下
	Corners [4][2]float64
}

// RenderStats 上一帧的绘制统计
type RenderStats struct {
	Sprites   int
	DrawCalls int
}

// RenderSystem 把所有可见精灵投影到屏幕并批量绘制
//
// 绘制顺序按深度从远到近；连续使用同一图像和混合模式的精灵合并为一次
// DrawTriangles 调用。顶点和索引数组每帧复用。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *CameraSystem

	vertices []ebiten.Vertex
	indices  []uint16
	items    []DrawItem
	world    map[ecs.EntityID]worldTransform

	stats RenderStats
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, camera *CameraSystem) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		camera:        camera,
		vertices:      make([]ebiten.Vertex, 0, 4096), // 预分配 1024 个四边形
		indices:       make([]uint16, 0, 6144),
		items:         make([]DrawItem, 0, 1024),
		world:         make(map[ecs.EntityID]worldTransform, 1024),
	}
}

// Stats 上一帧的绘制统计
func (s *RenderSystem) Stats() RenderStats {
	return s.stats
}

// Draw 绘制全部可见精灵
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	items := s.Collect(float64(b.Dx()), float64(b.Dy()))

	s.stats = RenderStats{Sprites: len(items)}
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	var (
		img      *ebiten.Image
		additive bool
	)
	for i := range items {
		it := &items[i]
		if it.Image != img || it.Additive != additive || len(s.vertices)+4 > maxBatchVertices {
			s.flush(screen, img, additive)
			img = it.Image
			additive = it.Additive
		}
		s.appendQuad(it)
	}
	s.flush(screen, img, additive)
}

// Collect 返回按远到近排序的绘制列表
//
// 参数:
//   - width, height: 视口像素尺寸
//
// 不可见、透明度为 0、没有图像或有顶点落在裁剪范围外的精灵被跳过。
// 返回的切片在下一次调用前有效。
func (s *RenderSystem) Collect(width, height float64) []DrawItem {
	s.items = s.items[:0]
	clear(s.world)
	if width <= 0 || height <= 0 {
		return s.items
	}

	vp := s.camera.ViewProjection(width / height)
	ids := ecs.GetEntitiesWith3[
		*components.TransformComponent,
		*components.SpriteComponent,
		*components.MaterialComponent,
	](s.entityManager)

	for _, id := range ids {
		mat, _ := ecs.GetComponent[*components.MaterialComponent](s.entityManager, id)
		if !mat.Visible || mat.Opacity <= 0 {
			continue
		}
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if sprite.Image == nil {
			continue
		}
		wt := s.resolve(id)

		hw := sprite.Width * wt.scaleX / 2
		hh := sprite.Height * wt.scaleY / 2
		if hw == 0 || hh == 0 {
			continue
		}
		sin, cos := math.Sincos(wt.rotation)
		offsets := [4][2]float64{{-hw, hh}, {hw, hh}, {-hw, -hh}, {hw, -hh}}

		item := DrawItem{
			ID:       id,
			Image:    sprite.Image,
			Additive: mat.Additive,
			Opacity:  mat.Opacity,
			Depth:    s.camera.Depth(wt.pos),
		}
		ok := true
		for i, o := range offsets {
			corner := mgl64.Vec3{
				wt.pos.X() + o[0]*cos - o[1]*sin,
				wt.pos.Y() + o[0]*sin + o[1]*cos,
				wt.pos.Z(),
			}
			x, y, inside := s.camera.Project(vp, corner, width, height)
			if !inside {
				ok = false
				break
			}
			item.Corners[i] = [2]float64{x, y}
		}
		if ok {
			s.items = append(s.items, item)
		}
	}

	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].Depth > s.items[j].Depth
	})
	return s.items
}

// resolve 沿父链计算世界变换：位置 = 父位置 + 局部位置×父缩放，缩放相乘，旋转相加
func (s *RenderSystem) resolve(id ecs.EntityID) worldTransform {
	if wt, ok := s.world[id]; ok {
		return wt
	}
	tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return worldTransform{scaleX: 1, scaleY: 1}
	}
	wt := worldTransform{pos: tr.Position, scaleX: tr.ScaleX, scaleY: tr.ScaleY, rotation: tr.Rotation}
	if tr.Parent != 0 && tr.Parent != id {
		parent := s.resolve(tr.Parent)
		wt.pos = mgl64.Vec3{
			parent.pos.X() + tr.Position.X()*parent.scaleX,
			parent.pos.Y() + tr.Position.Y()*parent.scaleY,
			parent.pos.Z() + tr.Position.Z(),
		}
		wt.scaleX *= parent.scaleX
		wt.scaleY *= parent.scaleY
		wt.rotation += parent.rotation
	}
	s.world[id] = wt
	return wt
}

func (s *RenderSystem) appendQuad(it *DrawItem) {
	b := it.Image.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	src := [4][2]float32{{0, 0}, {w, 0}, {0, h}, {w, h}}
	a := float32(it.Opacity)

	base := uint16(len(s.vertices))
	for i, c := range it.Corners {
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX: float32(c[0]), DstY: float32(c[1]),
			SrcX: src[i][0], SrcY: src[i][1],
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: a,
		})
	}
	s.indices = append(s.indices,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

func (s *RenderSystem) flush(screen, img *ebiten.Image, additive bool) {
	if img == nil || len(s.vertices) == 0 {
		s.vertices = s.vertices[:0]
		s.indices = s.indices[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	if additive {
		op.Blend = additiveBlend
	}
	screen.DrawTriangles(s.vertices, s.indices, img, op)
	s.stats.DrawCalls++
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}
