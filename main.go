package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/monolith/pkg/app"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "场景配置文件路径（默认使用嵌入的 data/scene.yaml）")
	seed := flag.Int64("seed", 0, "随机种子（0 使用配置中的值）")
	progress := flag.Float64("progress", 0, "初始滚动进度 [0,1]")
	fullscreen := flag.Bool("fullscreen", false, "全屏启动")
	flag.Parse()

	if *progress < 0 || *progress > 1 {
		fmt.Fprintf(os.Stderr, "--progress must be within [0,1], got %v\n", *progress)
		os.Exit(2)
	}

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
		Progress:   *progress,
		Fullscreen: *fullscreen,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)

	// 退出时释放纹理并保存设置
	gameApp.Close()

	if runErr != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}
