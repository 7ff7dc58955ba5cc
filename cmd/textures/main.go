// Package main 把所有程序化纹理导出为 PNG，用于检查生成效果
//
// Usage:
//
//	go run ./cmd/textures --out build/textures --seed 42
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/decker502/monolith/internal/texture"
)

var (
	outDir  = flag.String("out", "build/textures", "输出目录")
	seed    = flag.Int64("seed", 1, "随机种子")
	glyphs  = flag.Int("glyphs", 8, "额外导出的字形数量")
	aboutW  = flag.Int("about-width", texture.AboutWidth, "关于面板宽度")
	aboutH  = flag.Int("about-height", texture.AboutHeight, "关于面板高度")
	verbose = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetFlags(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	gen, err := texture.NewGenerator(rand.New(rand.NewSource(*seed)))
	if err != nil {
		return err
	}

	for _, name := range texture.Names {
		var img *image.NRGBA
		if name == texture.NameAbout {
			img, err = gen.About(*aboutW, *aboutH)
		} else {
			img, err = gen.Render(name)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := writePNG(name+".png", img); err != nil {
			return err
		}
	}

	for i := 0; i < *glyphs; i++ {
		r := gen.RandomRune()
		if err := writePNG(fmt.Sprintf("glyph_%02d_%04x.png", i, r), gen.Glyph(r, false)); err != nil {
			return err
		}
		if err := writePNG(fmt.Sprintf("glyph_%02d_%04x_small.png", i, r), gen.Glyph(r, true)); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(name string, img image.Image) error {
	path := filepath.Join(*outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	b := img.Bounds()
	fmt.Printf("✓ %-36s %4dx%-4d\n", name, b.Dx(), b.Dy())
	return nil
}
