// validate_data 检查 data/ 下的 YAML 配置能否被解析并通过验证
//
// Usage:
//
//	go run ./tools/validate_data [data-dir]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/timeline"
)

func main() {
	dir := "data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	failed := false

	scenePath := filepath.Join(dir, "scene.yaml")
	data, err := os.ReadFile(scenePath)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.ParseSceneConfig(data)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", scenePath, err)
		failed = true
	} else {
		fmt.Printf("✅ %s 格式正确\n", scenePath)
		if tl, err := timeline.NewDefault(cfg); err != nil {
			fmt.Printf("❌ 阶段边界无效: %v\n", err)
			failed = true
		} else {
			fmt.Printf("✅ 阶段数量: %d\n", len(tl.Phases()))
		}
	}

	poolsPath := filepath.Join(dir, "particles.yaml")
	data, err = os.ReadFile(poolsPath)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}
	specs, err := particle.ParsePoolSpecs(data)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", poolsPath, err)
		failed = true
	} else {
		fmt.Printf("✅ %s 格式正确，粒子池数量: %d\n", poolsPath, len(specs))
	}

	if failed {
		os.Exit(1)
	}
}
