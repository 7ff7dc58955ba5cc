// Package texture generates the procedural sprite textures of the monolith
// scene: soft glows, noise-grained clouds, sharp sparks, streaks, glyphs,
// the vortex backdrop and energy rings.
//
// Every generator returns a fresh *image.NRGBA. The images are immutable once
// returned and are shared by many sprites; Library uploads them to the GPU.
// Shapes, gradients and text are rasterized with gg, glows are blurred with
// imaging.
// Noise is drawn from the injected random source, so the same seed yields the
// same textures but nothing depends on exact pixel values.
package texture

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
)

// 纹理尺寸
const (
	DustSize       = 128
	DarkCloudSize  = 256
	SparkSize      = 64
	TrailWidth     = 16
	TrailHeight    = 128
	RayWidth       = 16
	RayHeight      = 256
	GlyphSize      = 64
	SmallGlyphSize = 32
	VortexSize     = 512
	RingSize       = 256
)

// Generator 程序化纹理生成器
type Generator struct {
	rng       *rand.Rand
	font      *opentype.Font
	glyphFace font.Face
	smallFace font.Face
}

// NewGenerator 创建生成器
//
// 字体解析失败属于初始化错误，直接返回给调用方。
func NewGenerator(rng *rand.Rand) (*Generator, error) {
	ttf, err := opentype.Parse(gomonobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse glyph font: %w", err)
	}
	glyphFace, err := opentype.NewFace(ttf, &opentype.FaceOptions{
		Size:    28,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create glyph face: %w", err)
	}
	smallFace, err := opentype.NewFace(ttf, &opentype.FaceOptions{
		Size:    16,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create small glyph face: %w", err)
	}
	return &Generator{rng: rng, font: ttf, glyphFace: glyphFace, smallFace: smallFace}, nil
}

// Dust 绿色柔光粒子：5 个色标的径向衰减 + 颗粒噪声
func (g *Generator) Dust() *image.NRGBA {
	dc := gg.NewContext(DustSize, DustSize)
	half := float64(DustSize) / 2
	fillAll(dc, radial(half, half, 0, half, []ColorStop{
		stop(0, 0, 255, 136, 0.8),
		stop(0.15, 0, 200, 100, 0.5),
		stop(0.3, 0, 150, 80, 0.3),
		stop(0.5, 0, 100, 60, 0.15),
		stop(1, 0, 0, 0, 0),
	}))
	img := toNRGBA(dc)
	grain{Spread: 25, Weights: [3]float64{0.5, 1, 0.7}}.apply(img, g.rng)
	return img
}

// DarkCloud 深色烟云：径向底色 + 12 个随机斑块 + Perlin 明暗 + 颗粒噪声
func (g *Generator) DarkCloud() *image.NRGBA {
	dc := gg.NewContext(DarkCloudSize, DarkCloudSize)
	half := float64(DarkCloudSize) / 2
	fillAll(dc, radial(half, half, 0, half, []ColorStop{
		stop(0, 20, 40, 30, 0.95),
		stop(0.15, 15, 35, 25, 0.8),
		stop(0.3, 10, 30, 20, 0.6),
		stop(0.5, 5, 20, 15, 0.35),
		stop(0.7, 0, 15, 10, 0.15),
		stop(1, 0, 0, 0, 0),
	}))

	blob := []ColorStop{
		stop(0, 30, 50, 40, 0.5),
		stop(0.5, 15, 30, 22, 0.3),
		stop(1, 0, 0, 0, 0),
	}
	for i := 0; i < 12; i++ {
		x := half/2 + g.rng.Float64()*half
		y := half/2 + g.rng.Float64()*half
		r := 25 + g.rng.Float64()*50
		fillRadialDisc(dc, x, y, r, blob)
	}

	img := toNRGBA(dc)
	newPerlinField(g.rng, 0.02).modulateAlpha(img, 0.85, 0.3)
	grain{Spread: 40, Weights: [3]float64{0.6, 1, 0.8}}.apply(img, g.rng)
	return img
}

// Spark 锐利火花：白色中心快速衰减，只对较亮区域加噪声
func (g *Generator) Spark() *image.NRGBA {
	dc := gg.NewContext(SparkSize, SparkSize)
	half := float64(SparkSize) / 2
	fillAll(dc, radial(half, half, 0, half, []ColorStop{
		stop(0, 255, 255, 255, 1),
		stop(0.05, 200, 255, 220, 0.95),
		stop(0.1, 100, 255, 180, 0.8),
		stop(0.2, 0, 255, 136, 0.5),
		stop(0.4, 0, 200, 100, 0.2),
		stop(1, 0, 0, 0, 0),
	}))
	img := toNRGBA(dc)
	grain{Spread: 15, Weights: [3]float64{1, 1, 1}, MinAlpha: 100}.apply(img, g.rng)
	return img
}

// SparkTrail 火花拖尾：纵向渐变，左右两侧由横向 alpha 遮罩收窄
func (g *Generator) SparkTrail() *image.NRGBA {
	return streak(TrailWidth, TrailHeight, []ColorStop{
		stop(0, 0, 0, 0, 0),
		stop(0.2, 0, 200, 100, 0.3),
		stop(0.4, 0, 255, 136, 0.7),
		stop(0.5, 255, 255, 255, 1),
		stop(0.6, 0, 255, 136, 0.7),
		stop(0.8, 0, 200, 100, 0.3),
		stop(1, 0, 0, 0, 0),
	}, []ColorStop{
		stop(0, 0, 0, 0, 0),
		stop(0.3, 255, 255, 255, 1),
		stop(0.7, 255, 255, 255, 1),
		stop(1, 0, 0, 0, 0),
	})
}

// LightRay 光线：与拖尾同样的做法，遮罩更柔和
func (g *Generator) LightRay() *image.NRGBA {
	return streak(RayWidth, RayHeight, []ColorStop{
		stop(0, 0, 0, 0, 0),
		stop(0.2, 0, 150, 80, 0.2),
		stop(0.4, 0, 255, 136, 0.5),
		stop(0.5, 200, 255, 220, 0.8),
		stop(0.6, 0, 255, 136, 0.5),
		stop(0.8, 0, 150, 80, 0.2),
		stop(1, 0, 0, 0, 0),
	}, []ColorStop{
		stop(0, 0, 0, 0, 0),
		stop(0.2, 255, 255, 255, 0.5),
		stop(0.5, 255, 255, 255, 1),
		stop(0.8, 255, 255, 255, 0.5),
		stop(1, 0, 0, 0, 0),
	})
}

// Vortex 旋涡背景：暗色径向底 + 6 条由渐隐圆点构成的螺旋臂
func (g *Generator) Vortex() *image.NRGBA {
	dc := gg.NewContext(VortexSize, VortexSize)
	half := float64(VortexSize) / 2
	fillAll(dc, radial(half, half, 0, half, []ColorStop{
		stop(0, 0, 0, 0, 0.95),
		stop(0.2, 0, 20, 15, 0.8),
		stop(0.4, 0, 40, 30, 0.5),
		stop(0.6, 0, 80, 50, 0.3),
		stop(0.8, 0, 150, 90, 0.15),
		stop(1, 0, 0, 0, 0),
	}))

	const arms = 6
	const maxR = 250.0
	for arm := 0; arm < arms; arm++ {
		armAngle := float64(arm) / arms * 2 * math.Pi
		for r := 20.0; r < maxR; r += 3 {
			angle := armAngle + r*0.025
			dc.SetColor(rgba(0, 255, 136, (1-r/maxR)*0.25))
			dc.DrawCircle(half+math.Cos(angle)*r, half+math.Sin(angle)*r, 2+(r/maxR)*6)
			dc.Fill()
		}
	}
	return toNRGBA(dc)
}
