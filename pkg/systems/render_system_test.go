package systems

import (
	"math"
	"testing"

	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/decker502/monolith/pkg/entities"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

func newRenderFixture() (*ecs.EntityManager, *CameraSystem, *RenderSystem, *ebiten.Image) {
	em := ecs.NewEntityManager()
	cs := NewCameraSystem(em, config.DefaultSceneConfig().Camera)
	return em, cs, NewRenderSystem(em, cs), ebiten.NewImage(8, 8)
}

func mustSprite(t *testing.T, em *ecs.EntityManager, parent ecs.EntityID, pos mgl64.Vec3, img *ebiten.Image, additive bool) *entities.Handle {
	t.Helper()
	h, err := entities.NewSpriteEntity(em, parent, pos, img, 20, 20, additive)
	if err != nil {
		t.Fatalf("NewSpriteEntity: %v", err)
	}
	h.SetOpacity(1)
	return h
}

func TestRenderSystem_CollectOrderAndFilter(t *testing.T) {
	em, _, rs, img := newRenderFixture()

	near := mustSprite(t, em, 0, mgl64.Vec3{0, 0, 500}, img, false)
	far := mustSprite(t, em, 0, mgl64.Vec3{0, 0, -500}, img, true)
	hidden := mustSprite(t, em, 0, mgl64.Vec3{0, 0, 0}, img, false)
	hidden.SetVisible(false)
	transparent := mustSprite(t, em, 0, mgl64.Vec3{0, 0, 0}, img, false)
	transparent.SetOpacity(0)
	behind := mustSprite(t, em, 0, mgl64.Vec3{0, 0, 2000}, img, false)
	_ = behind

	items := rs.Collect(1280, 720)
	if len(items) != 2 {
		t.Fatalf("collected %d items, want 2", len(items))
	}
	if items[0].ID != far.ID || items[1].ID != near.ID {
		t.Errorf("draw order = [%d %d], want far (%d) before near (%d)", items[0].ID, items[1].ID, far.ID, near.ID)
	}
	if !items[0].Additive || items[1].Additive {
		t.Error("blend mode should follow the material")
	}
}

func TestRenderSystem_CornersFollowRotation(t *testing.T) {
	em, _, rs, img := newRenderFixture()
	h := mustSprite(t, em, 0, mgl64.Vec3{0, 0, 500}, img, false)

	items := rs.Collect(1280, 720)
	if len(items) != 1 {
		t.Fatalf("collected %d items, want 1", len(items))
	}
	c := items[0].Corners
	// 未旋转：左上角在中心的左上方
	if !(c[0][0] < 640 && c[0][1] < 360 && c[3][0] > 640 && c[3][1] > 360) {
		t.Errorf("unexpected corners %v", c)
	}

	h.Transform.Rotation = math.Pi
	items = rs.Collect(1280, 720)
	r := items[0].Corners
	if math.Abs(r[0][0]-c[3][0]) > 1e-6 || math.Abs(r[0][1]-c[3][1]) > 1e-6 {
		t.Errorf("rotating by π should swap opposite corners: %v vs %v", r[0], c[3])
	}
}

func TestRenderSystem_ParentChain(t *testing.T) {
	em, cs, rs, img := newRenderFixture()

	parent := mustSprite(t, em, 0, mgl64.Vec3{100, 0, 0}, img, false)
	parent.Transform.SetScale(2)
	child := mustSprite(t, em, parent.ID, mgl64.Vec3{10, 5, 2}, img, true)

	items := rs.Collect(1280, 720)
	var childItem *DrawItem
	for i := range items {
		if items[i].ID == child.ID {
			childItem = &items[i]
		}
	}
	if childItem == nil {
		t.Fatal("child sprite not collected")
	}
	wantDepth := cs.Depth(mgl64.Vec3{120, 10, 2})
	if math.Abs(childItem.Depth-wantDepth) > 1e-9 {
		t.Errorf("child depth = %v, want %v", childItem.Depth, wantDepth)
	}
	// 子精灵继承父缩放：屏幕宽度应为 20*2 个世界单位
	width := childItem.Corners[1][0] - childItem.Corners[0][0]
	want := 40 * cs.PixelsPerUnit(wantDepth, 720)
	if math.Abs(width-want) > 1e-6 {
		t.Errorf("child width = %v px, want %v", width, want)
	}
}

func TestRenderSystem_DrawBatches(t *testing.T) {
	em, _, rs, img := newRenderFixture()
	other := ebiten.NewImage(8, 8)

	// 远到近：img, img, other(additive), img
	mustSprite(t, em, 0, mgl64.Vec3{0, 0, -300}, img, false)
	mustSprite(t, em, 0, mgl64.Vec3{10, 0, -200}, img, false)
	mustSprite(t, em, 0, mgl64.Vec3{0, 0, -100}, other, true)
	mustSprite(t, em, 0, mgl64.Vec3{0, 0, 0}, img, false)

	screen := ebiten.NewImage(320, 180)
	rs.Draw(screen)

	stats := rs.Stats()
	if stats.Sprites != 4 {
		t.Errorf("sprites = %d, want 4", stats.Sprites)
	}
	if stats.DrawCalls != 3 {
		t.Errorf("draw calls = %d, want 3", stats.DrawCalls)
	}
}

func TestRenderSystem_EmptyViewport(t *testing.T) {
	em, _, rs, img := newRenderFixture()
	mustSprite(t, em, 0, mgl64.Vec3{0, 0, 0}, img, false)
	if items := rs.Collect(0, 720); len(items) != 0 {
		t.Errorf("zero-width viewport collected %d items", len(items))
	}
}
