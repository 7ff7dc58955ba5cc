package texture

import (
	"image"
	"math"

	"github.com/fogleman/gg"
)

// 舞台纹理尺寸
const (
	MonolithWidth  = 128
	MonolithHeight = 512
	SlitWidth      = 16
	SlitHeight     = 512
	BackdropSize   = 256
)

// Monolith 方尖碑正视图：上窄下宽的楔形，两个斜面明暗不同，中间留出一道缝
func (g *Generator) Monolith() *image.NRGBA {
	const (
		w, h     = float64(MonolithWidth), float64(MonolithHeight)
		topHalf  = w / 2 * (2.0 / 2.8)
		baseHalf = w / 2
		slit     = 1.5
	)
	cx := w / 2

	dc := gg.NewContext(MonolithWidth, MonolithHeight)
	// 两个面都是越靠近中缝越亮；左面偏暗，右面带一点金属反光
	face(dc, [][2]float64{
		{cx - slit, 0}, {cx - topHalf, 0}, {cx - baseHalf, h}, {cx - slit, h},
	}, linear(0, 0, w, 0, []ColorStop{
		stop(0, 8, 12, 10, 1),
		stop(1, 14, 22, 18, 1),
	}))
	face(dc, [][2]float64{
		{cx + slit, 0}, {cx + slit, h}, {cx + baseHalf, h}, {cx + topHalf, 0},
	}, linear(w, 0, 0, 0, []ColorStop{
		stop(0, 12, 18, 15, 1),
		stop(1, 30, 46, 38, 1),
	}))

	// 顶部略亮，只作用在两个面上
	_ = dc.SetMask(dc.AsMask())
	fillAll(dc, linear(0, 0, 0, h, []ColorStop{
		stop(0, 40, 60, 50, 0.15),
		stop(1, 40, 60, 50, 0),
	}))

	img := toNRGBA(dc)
	grain{Spread: 6, Weights: [3]float64{1, 1, 1}}.apply(img, g.rng)
	return img
}

// face 用 pattern 填充多边形
func face(dc *gg.Context, pts [][2]float64, pattern gg.Pattern) {
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p[0], p[1])
		} else {
			dc.LineTo(p[0], p[1])
		}
	}
	dc.ClosePath()
	dc.SetFillStyle(pattern)
	dc.Fill()
}

// SlitGlow 方尖碑中缝的发光线
func (g *Generator) SlitGlow() *image.NRGBA {
	return streak(SlitWidth, SlitHeight, []ColorStop{
		stop(0, 0, 255, 136, 0),
		stop(0.1, 0, 255, 136, 0.6),
		stop(0.5, 200, 255, 220, 1),
		stop(0.9, 0, 255, 136, 0.6),
		stop(1, 0, 255, 136, 0),
	}, []ColorStop{
		stop(0, 0, 0, 0, 0),
		stop(0.4, 255, 255, 255, 0.6),
		stop(0.5, 255, 255, 255, 1),
		stop(0.6, 255, 255, 255, 0.6),
		stop(1, 0, 0, 0, 0),
	})
}

// Backdrop 不透明的暗色背景，中心带极淡的绿色和 Perlin 斑驳
func (g *Generator) Backdrop() *image.NRGBA {
	dc := gg.NewContext(BackdropSize, BackdropSize)
	half := float64(BackdropSize) / 2
	fillAll(dc, radial(half, half, 0, half*math.Sqrt2, []ColorStop{
		stop(0, 6, 22, 16, 1),
		stop(0.5, 2, 10, 7, 1),
		stop(1, 0, 0, 0, 1),
	}))
	img := toNRGBA(dc)

	field := newPerlinField(g.rng, 0.03)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			m := 1 + 0.25*field.at(float64(x), float64(y))
			for ch := 0; ch < 3; ch++ {
				img.Pix[i+ch] = to8(float64(img.Pix[i+ch]) / 255 * m)
			}
		}
	}
	return img
}
