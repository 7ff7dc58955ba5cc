package texture

import (
	"image"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// grain 逐像素亮度噪声参数
//
// 噪声值在 ±Spread/2 之间均匀分布，按通道权重叠加到颜色上并截断到 [0,255]，
// 用于消除渐变色带。MinAlpha 大于 0 时只处理 alpha 超过该值的像素。
type grain struct {
	Spread   float64
	Weights  [3]float64
	MinAlpha uint8
}

func (g grain) apply(img *image.NRGBA, rng *rand.Rand) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if g.MinAlpha > 0 && img.Pix[i+3] <= g.MinAlpha {
			continue
		}
		noise := (rng.Float64() - 0.5) * g.Spread
		for ch := 0; ch < 3; ch++ {
			v := float64(img.Pix[i+ch]) + noise*g.Weights[ch]
			img.Pix[i+ch] = uint8(math.Max(0, math.Min(255, math.Round(v))))
		}
	}
}

// perlinField 平滑噪声场（aquilax/go-perlin），用于云团和背景的低频明暗变化
type perlinField struct {
	noise *perlin.Perlin
	scale float64
}

func newPerlinField(rng *rand.Rand, scale float64) perlinField {
	return perlinField{
		noise: perlin.NewPerlin(2, 2, 3, rng.Int63()),
		scale: scale,
	}
}

// at 返回大致位于 [-1, 1] 的噪声值
func (f perlinField) at(x, y float64) float64 {
	return f.noise.Noise2D(x*f.scale, y*f.scale)
}

// modulateAlpha 用噪声场调制透明度：a *= clamp(base + depth·noise)
func (f perlinField) modulateAlpha(img *image.NRGBA, base, depth float64) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			a := img.Pix[i+3]
			if a == 0 {
				continue
			}
			m := clamp01(base + depth*f.at(float64(x), float64(y)))
			img.Pix[i+3] = uint8(math.Round(float64(a) * m))
		}
	}
}
