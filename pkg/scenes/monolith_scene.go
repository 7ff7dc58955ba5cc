package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/internal/texture"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/decker502/monolith/pkg/entities"
	"github.com/decker502/monolith/pkg/game"
	"github.com/decker502/monolith/pkg/systems"
	"github.com/decker502/monolith/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// aboutTextureWidth 关于面板纹理的像素宽度，高度按视口宽高比计算
const aboutTextureWidth = 1600

// Options 场景构建参数
type Options struct {
	Config config.SceneConfig
	Pools  map[particle.Kind]particle.PoolSpec

	// Rand 随机源；为 nil 时按 Config.Seed 创建（0 表示按当前时间）
	Rand *rand.Rand
	// Images 纹理来源；为 nil 时生成纹理库，Close 时释放
	Images entities.ImageSource
	// Settings 观看设置，可为 nil
	Settings *game.SettingsManager

	// StartProgress 初始滚动进度
	StartProgress float64
	Width, Height int
}

// MonolithScene 滚动驱动的方尖碑场景
//
// 每帧：读取输入 → 平滑滚动进度 → 时间轴求值 → FrameDriver 推进各系统；
// Draw 由 RenderSystem 完成。
type MonolithScene struct {
	entityManager *ecs.EntityManager
	timeline      *timeline.Timeline
	driver        *systems.FrameDriver
	render        *systems.RenderSystem
	scroll        *systems.ScrollSystem

	stage  *entities.Stage
	lib    *texture.Library
	cfg    config.SceneConfig
	aspect float64

	settings *game.SettingsManager

	width, height int
	elapsed       float64
	lastFrame     time.Time
	now           func() time.Time

	state   timeline.AnimationState
	paused  bool
	showHUD bool
	closed  bool
}

// NewMonolithScene 创建场景及全部实体
//
// 任何创建失败（配置、池定义、纹理）都直接返回错误，不会留下半初始化的场景。
func NewMonolithScene(opts Options) (*MonolithScene, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	if opts.Pools == nil {
		opts.Pools = particle.DefaultPoolSpecs()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = config.WindowWidth, config.WindowHeight
	}
	aspect := float64(opts.Width) / float64(opts.Height)

	rng := opts.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
		log.Printf("[MonolithScene] Random seed: %d", seed)
	}

	s := &MonolithScene{
		entityManager: ecs.NewEntityManager(),
		cfg:           cfg,
		aspect:        aspect,
		settings:      opts.Settings,
		width:         opts.Width,
		height:        opts.Height,
		now:           time.Now,
	}

	images := opts.Images
	if images == nil {
		gen, err := texture.NewGenerator(rng)
		if err != nil {
			return nil, fmt.Errorf("failed to create texture generator: %w", err)
		}
		lib, err := texture.NewLibrary(gen, aboutTextureWidth, int(math.Round(aboutTextureWidth/aspect)))
		if err != nil {
			return nil, fmt.Errorf("failed to build texture library: %w", err)
		}
		s.lib = lib
		images = lib
	}

	if err := s.build(opts, images, rng); err != nil {
		if s.lib != nil {
			s.lib.Dispose()
		}
		return nil, err
	}

	sensitivity, reduced := 1.0, false
	if s.settings != nil {
		vs := s.settings.GetSettings()
		sensitivity, reduced, s.showHUD = vs.ScrollSensitivity, vs.ReducedMotion, vs.ShowHUD
	}
	s.scroll = systems.NewScrollSystem(opts.StartProgress, sensitivity, reduced)

	// 首帧前应用一次状态，保证第一次 Draw 与初始进度一致
	s.Step(0)

	log.Printf("[MonolithScene] Created %d entities (portal %d particles, %d glyph cells, %d tunnel particles)",
		s.entityManager.EntityCount(), s.driver.Portal.Portal().ParticleCount(),
		len(s.driver.Matrix.Cells()), len(s.driver.Tunnel.Particles()))
	return s, nil
}

// build 按绘制层次创建实体：舞台、字符流、门户、隧道
func (s *MonolithScene) build(opts Options, images entities.ImageSource, rng *rand.Rand) error {
	cfg := opts.Config
	em := s.entityManager

	tl, err := timeline.NewDefault(cfg)
	if err != nil {
		return fmt.Errorf("failed to build timeline: %w", err)
	}
	s.timeline = tl

	camera := systems.NewCameraSystem(em, cfg.Camera)

	stage, err := entities.NewStage(em, cfg, s.aspect, images)
	if err != nil {
		return err
	}
	s.stage = stage

	matrix, err := entities.NewMatrix(em, cfg, rng, images)
	if err != nil {
		return err
	}

	portal, err := entities.NewPortal(em, cfg, opts.Pools, rng, images)
	if err != nil {
		return err
	}

	tunnelSpec, ok := opts.Pools[particle.KindTunnel]
	if !ok {
		return fmt.Errorf("missing %s pool definition", particle.KindTunnel)
	}
	tunnel, err := entities.NewTunnel(em, cfg, tunnelSpec, rng, images)
	if err != nil {
		return err
	}

	s.driver = &systems.FrameDriver{
		Camera: camera,
		Stage:  systems.NewStageSystem(stage),
		Matrix: systems.NewMatrixSystem(matrix, images, cfg.Matrix),
		Portal: systems.NewPortalSystem(portal),
		Tunnel: systems.NewTunnelSystem(tunnel, cfg.Tunnel, cfg.Camera.Near, rng),
	}
	s.render = systems.NewRenderSystem(em, camera)
	return nil
}

// Update 读取输入并推进一帧
//
// dt 取自单调时钟；首帧使用调用方给出的 deltaTime。
func (s *MonolithScene) Update(deltaTime float64) {
	if s.closed {
		return
	}

	now := s.now()
	dt := deltaTime
	if !s.lastFrame.IsZero() {
		dt = now.Sub(s.lastFrame).Seconds()
	}
	s.lastFrame = now

	s.handleKeys()
	s.scroll.Update(dt, s.height)
	s.Step(dt)
}

// Step 以给定进度推进一帧（不读取输入）
func (s *MonolithScene) Step(dt float64) {
	if s.closed {
		return
	}
	if s.paused {
		dt = 0
	}
	dt = math.Min(math.Max(dt, 0), config.MaxFrameDelta)
	s.elapsed += dt
	s.state = s.timeline.Evaluate(s.scroll.Progress())
	s.driver.Tick(s.state, dt, s.elapsed)
}

func (s *MonolithScene) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.showHUD = !s.showHUD
		if s.settings != nil {
			s.settings.SetShowHUD(s.showHUD)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.paused = !s.paused
		log.Printf("[MonolithScene] Paused: %v", s.paused)
	}
}

// Draw 绘制场景
func (s *MonolithScene) Draw(screen *ebiten.Image) {
	if s.closed {
		return
	}
	screen.Fill(color.Black)
	s.render.Draw(screen)
	if s.showHUD {
		s.drawHUD(screen)
	}
}

func (s *MonolithScene) drawHUD(screen *ebiten.Image) {
	stats := s.render.Stats()
	cam := s.state.Camera
	text := fmt.Sprintf("progress %.3f (target %.3f)\nphase %s\ncamera (%.0f, %.0f, %.0f)\nsprites %d  draws %d\nfps %.1f",
		s.state.Progress, s.scroll.Target(), s.state.Phase,
		cam.X(), cam.Y(), cam.Z(),
		stats.Sprites, stats.DrawCalls, ebiten.ActualFPS())
	if s.paused {
		text += "\nPAUSED"
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// SetViewport 视口尺寸变化时重新计算关于面板尺寸
func (s *MonolithScene) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.aspect = float64(width) / float64(height)
	aboutH := entities.ViewHeightAt(s.cfg.Camera.FOV, config.AboutDistance)
	s.stage.About.Sprite.Width = aboutH * s.aspect
	s.stage.About.Sprite.Height = aboutH
}

// SetProgress 直接跳到进度 p（--progress 和测试使用）
func (s *MonolithScene) SetProgress(p float64) {
	s.scroll.Jump(p)
}

// State 最近一帧的动画状态
func (s *MonolithScene) State() timeline.AnimationState {
	return s.state
}

// Driver 返回帧调度器
func (s *MonolithScene) Driver() *systems.FrameDriver {
	return s.driver
}

// Render 返回渲染系统（终端预览读取投影后的绘制列表）
func (s *MonolithScene) Render() *systems.RenderSystem {
	return s.render
}

// Stage 返回舞台实体
func (s *MonolithScene) Stage() *entities.Stage {
	return s.stage
}

// Scroll 返回滚动系统
func (s *MonolithScene) Scroll() *systems.ScrollSystem {
	return s.scroll
}

// IsClosed 场景是否已关闭
func (s *MonolithScene) IsClosed() bool {
	return s.closed
}

// Close 停止推进、释放纹理并保存观看设置
func (s *MonolithScene) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.lib != nil {
		s.lib.Dispose()
		s.lib = nil
	}
	log.Printf("[MonolithScene] Closed after %d frames", s.driver.Frames())
	if s.settings != nil {
		return s.settings.Save()
	}
	return nil
}
