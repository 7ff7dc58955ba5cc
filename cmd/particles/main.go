// Package main provides a particle pool viewer for tuning the portal pools
// one class at a time.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--pools <file>     粒子池定义文件（默认使用内置定义）
//	--kind <name>      初始显示的粒子类别（如 --kind=spark）
//	--seed <n>         随机种子
//	--verbose          显示详细日志
//
// Controls:
//
//	Left/Right Arrow  - 切换粒子类别
//	A                 - 同时显示全部类别
//	V                 - 切换漩涡和能量环
//	S                 - 切换消散（半径 ×3）
//	R                 - 重置所有粒子
//	P                 - 暂停
//	Up/Down           - 相机前后移动
//	Q/Escape          - 退出
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/internal/texture"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/decker502/monolith/pkg/entities"
	"github.com/decker502/monolith/pkg/systems"
	"github.com/decker502/monolith/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	// cameraDistance 相机到门户中心的初始距离
	cameraDistance = 600.0
	cameraStep     = 10.0
)

var (
	poolsPath = flag.String("pools", "", "粒子池定义文件")
	kindName  = flag.String("kind", "darkCloud", "初始粒子类别")
	seed      = flag.Int64("seed", 1, "随机种子")
	verbose   = flag.Bool("verbose", false, "显示详细日志")
)

// Viewer 粒子池查看器
type Viewer struct {
	entityManager *ecs.EntityManager
	camera        *systems.CameraSystem
	portalSystem  *systems.PortalSystem
	render        *systems.RenderSystem
	lib           *texture.Library

	origin float64
	camZ   float64

	kindIndex int
	showAll   bool
	showRings bool
	spread    bool
	paused    bool
	elapsed   float64
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	v, err := newViewer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer v.lib.Dispose()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Particle Pool Viewer")
	if err := ebiten.RunGame(v); err != nil && err != ebiten.Termination {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadSpecs() (map[particle.Kind]particle.PoolSpec, error) {
	if *poolsPath == "" {
		return particle.DefaultPoolSpecs(), nil
	}
	data, err := os.ReadFile(*poolsPath)
	if err != nil {
		return nil, err
	}
	return particle.ParsePoolSpecs(data)
}

func newViewer() (*Viewer, error) {
	specs, err := loadSpecs()
	if err != nil {
		return nil, err
	}
	kind, err := particle.ParseKind(*kindName)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(*seed))
	gen, err := texture.NewGenerator(rng)
	if err != nil {
		return nil, err
	}
	lib, err := texture.NewLibrary(gen, 320, 180)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultSceneConfig()
	em := ecs.NewEntityManager()
	camera := systems.NewCameraSystem(em, cfg.Camera)
	portal, err := entities.NewPortal(em, cfg, specs, rng, lib)
	if err != nil {
		lib.Dispose()
		return nil, err
	}

	v := &Viewer{
		entityManager: em,
		camera:        camera,
		portalSystem:  systems.NewPortalSystem(portal),
		render:        systems.NewRenderSystem(em, camera),
		lib:           lib,
		origin:        cfg.Portal.Position.Z(),
		camZ:          cfg.Portal.Position.Z() + cameraDistance,
		showRings:     true,
	}
	for i, k := range particle.PortalKinds {
		if k == kind {
			v.kindIndex = i
		}
	}
	// 相机对准门户中心
	camera.Camera().Position = cfg.Portal.Position
	return v, nil
}

func (v *Viewer) currentKind() particle.Kind {
	return particle.PortalKinds[v.kindIndex]
}

// state 构造只显示选中类别的动画状态
func (v *Viewer) state() timeline.AnimationState {
	st := timeline.AnimationState{PortalActive: true}
	st.Camera = v.camera.Camera().Position
	st.Camera[2] = v.camZ

	t := &st.Portal
	t.Reveal = 1
	t.Spread = 1
	if v.spread {
		t.Spread = 3
	}
	level := func(k particle.Kind) float64 {
		if v.showAll || k == v.currentKind() {
			return 1
		}
		return 0
	}
	t.DarkCloud = level(particle.KindDarkCloud)
	t.Dust = level(particle.KindDust)
	t.Spark = level(particle.KindSpark)
	t.SparkTrail = level(particle.KindSparkTrail)
	t.Glyph = level(particle.KindGlyph)
	t.LightRay = level(particle.KindLightRay)
	t.CenterGlow = level(particle.KindCenterGlow)
	if v.showRings {
		t.Vortex = 0.75
		t.Rings = 0.65
	}
	return st
}

// Update 处理输入并推进门户动画
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	n := len(particle.PortalKinds)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.kindIndex = (v.kindIndex + 1) % n
		v.showAll = false
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.kindIndex = (v.kindIndex + n - 1) % n
		v.showAll = false
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		v.showAll = !v.showAll
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		v.showRings = !v.showRings
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.spread = !v.spread
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		v.paused = !v.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.portalSystem.Reset()
		log.Printf("[Viewer] Reset portal pools")
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		v.camZ -= cameraStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		v.camZ += cameraStep
	}
	// 相机不能穿过门户中心
	if v.camZ < v.origin+50 {
		v.camZ = v.origin + 50
	}

	st := v.state()
	v.camera.Apply(st)
	v.portalSystem.Apply(st)

	if !v.paused {
		dt := 1.0 / float64(ebiten.TPS())
		v.elapsed += dt
		v.portalSystem.Update(dt, v.elapsed)
	}
	return nil
}

// Draw 绘制门户和状态信息
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	v.render.Draw(screen)

	label := v.currentKind().String()
	count := 0
	if pool := v.portalSystem.Portal().Pool(v.currentKind()); pool != nil {
		count = pool.Len()
	}
	if v.showAll {
		label = "all"
		count = v.portalSystem.Portal().ParticleCount()
	}
	stats := v.render.Stats()
	text := fmt.Sprintf("Kind: %s (%d particles)\nCamera distance: %.0f\nSprites: %d  Draws: %d  FPS: %.1f\n\n"+
		"←/→ kind  A all  V rings  S spread  R reset  P pause  ↑/↓ zoom  Q quit",
		label, count, v.camZ-v.origin, stats.Sprites, stats.DrawCalls, ebiten.ActualFPS())
	if v.paused {
		text += "\nPAUSED"
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// Layout 返回固定的逻辑屏幕尺寸
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
