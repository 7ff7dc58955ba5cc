// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/game"
	"github.com/decker502/monolith/pkg/scenes"
	"github.com/decker502/monolith/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名
const AppName = "monolith"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 场景配置路径；为空时使用嵌入的 data/scene.yaml
	ConfigPath string
	// Seed 覆盖配置中的随机种子（0 表示不覆盖）
	Seed int64
	// Progress 初始滚动进度 [0,1]
	Progress float64
	// Fullscreen 以全屏启动（同时也会读取已保存的设置）
	Fullscreen bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultScenePath
	}
	sceneConfig, err := config.LoadSceneConfig(path)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	if cfg.Seed != 0 {
		sceneConfig.Seed = cfg.Seed
	}

	pools, err := particle.LoadPoolSpecs(particle.DefaultPoolsPath)
	if err != nil {
		return nil, fmt.Errorf("粒子池定义加载失败: %w", err)
	}

	settings, err := game.NewSettingsManager(game.OpenSettingsStore(AppName))
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}

	scene, err := scenes.NewMonolithScene(scenes.Options{
		Config:        sceneConfig,
		Pools:         pools,
		Settings:      settings,
		StartProgress: cfg.Progress,
		Width:         config.WindowWidth,
		Height:        config.WindowHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	// 移动端始终全屏，不处理全屏切换
	if !utils.IsMobile() && (cfg.Fullscreen || settings.GetSettings().Fullscreen) {
		ebiten.SetFullscreen(true)
	}
	log.Printf("[App] Started at progress %.2f", cfg.Progress)

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）；场景自行测量真实帧间隔
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = config.FullscreenResetDelay
		log.Printf("[App] Exit fullscreen, will reset window size in %d frames", config.FullscreenResetDelay)
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(ebiten.IsFullscreen())
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save fullscreen setting: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
//
// 逻辑尺寸跟随窗口，场景据此更新宽高比；窗口尺寸无效时回退到默认值。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		outsideWidth, outsideHeight = config.WindowWidth, config.WindowHeight
	}
	a.sceneManager.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
// 用于在退出时释放纹理并保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Close 关闭当前场景
func (a *App) Close() {
	a.sceneManager.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
