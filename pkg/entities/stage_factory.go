package entities

import (
	"fmt"
	"math"

	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// Stage 舞台：背景、方尖碑、缝隙辉光和关于面板
type Stage struct {
	Backdrop *Handle
	Monolith *Handle
	Slit     *Handle
	About    *Handle

	// MonolithWidth/Height 方尖碑未缩放时的尺寸
	MonolithWidth  float64
	MonolithHeight float64
}

// ViewHeightAt 返回透视相机在 distance 处的可视高度
func ViewHeightAt(fovDegrees, distance float64) float64 {
	return 2 * math.Tan(fovDegrees*math.Pi/360) * distance
}

// NewStage 创建舞台实体
//
// 参数:
//   - aspect: 视口宽高比，关于面板按此比例在 config.AboutDistance 处铺满视野
func NewStage(em *ecs.EntityManager, cfg config.SceneConfig, aspect float64, img ImageSource) (*Stage, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if aspect <= 0 {
		return nil, fmt.Errorf("stage: aspect must be positive, got %v", aspect)
	}
	sc := cfg.Stage

	// 背景需要覆盖相机整个运动范围，留 1.5 倍余量
	backdropH := ViewHeightAt(cfg.Camera.FOV, cfg.Camera.StartZ-sc.BackdropZ) * 1.5
	backdrop, err := NewSpriteEntity(em, 0, mgl64.Vec3{0, 0, sc.BackdropZ},
		img.Texture("backdrop"), backdropH*aspect, backdropH, false)
	if err != nil {
		return nil, fmt.Errorf("stage: backdrop: %w", err)
	}

	monolith, err := NewSpriteEntity(em, 0, sc.MonolithPosition,
		img.Texture("monolith"), sc.MonolithWidth, sc.MonolithHeight, false)
	if err != nil {
		return nil, fmt.Errorf("stage: monolith: %w", err)
	}

	// 缝隙位于方尖碑正面中线，略微靠前
	slit, err := NewSpriteEntity(em, monolith.ID, mgl64.Vec3{0, sc.MonolithHeight * 0.05, 2},
		img.Texture("slitGlow"), sc.MonolithWidth*0.06, sc.MonolithHeight*0.8, true)
	if err != nil {
		return nil, fmt.Errorf("stage: slit: %w", err)
	}

	aboutH := ViewHeightAt(cfg.Camera.FOV, config.AboutDistance)
	about, err := NewSpriteEntity(em, 0,
		mgl64.Vec3{cfg.Portal.Position.X(), cfg.Portal.Position.Y(), cfg.About.StartZ},
		img.Texture("about"), aboutH*aspect, aboutH, false)
	if err != nil {
		return nil, fmt.Errorf("stage: about panel: %w", err)
	}
	about.SetVisible(false)

	return &Stage{
		Backdrop:       backdrop,
		Monolith:       monolith,
		Slit:           slit,
		About:          about,
		MonolithWidth:  sc.MonolithWidth,
		MonolithHeight: sc.MonolithHeight,
	}, nil
}
