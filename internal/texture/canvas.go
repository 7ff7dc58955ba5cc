package texture

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// ColorStop 渐变色标，颜色为 0-255，透明度为 0-1
type ColorStop struct {
	Offset  float64
	R, G, B uint8
	A       float64
}

func stop(offset float64, r, g, b uint8, a float64) ColorStop {
	return ColorStop{Offset: offset, R: r, G: g, B: b, A: a}
}

func (s ColorStop) color() color.NRGBA {
	return color.NRGBA{R: s.R, G: s.G, B: s.B, A: to8(s.A)}
}

func addStops(grad gg.Gradient, stops []ColorStop) gg.Gradient {
	for _, s := range stops {
		grad.AddColorStop(s.Offset, s.color())
	}
	return grad
}

// radial 同心径向渐变，r0 以内取首个色标，r1 以外取末尾色标
func radial(cx, cy, r0, r1 float64, stops []ColorStop) gg.Gradient {
	return addStops(gg.NewRadialGradient(cx, cy, r0, cx, cy, r1), stops)
}

// linear (x0,y0)→(x1,y1) 方向的线性渐变
func linear(x0, y0, x1, y1 float64, stops []ColorStop) gg.Gradient {
	return addStops(gg.NewLinearGradient(x0, y0, x1, y1), stops)
}

// fillAll 用 pattern 覆盖整个画布
func fillAll(dc *gg.Context, pattern gg.Pattern) {
	dc.SetFillStyle(pattern)
	dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
	dc.Fill()
}

// fillRadialDisc 只在圆盘范围内填充径向渐变（用于斑块）
func fillRadialDisc(dc *gg.Context, cx, cy, radius float64, stops []ColorStop) {
	dc.SetFillStyle(radial(cx, cy, 0, radius, stops))
	dc.DrawCircle(cx, cy, radius)
	dc.Fill()
}

// streak 纵向渐变的条状纹理，横向 profile 的 alpha 作为遮罩收窄两侧
func streak(w, h int, body, profile []ColorStop) *image.NRGBA {
	mask := gg.NewContext(w, h)
	fillAll(mask, linear(0, 0, float64(w), 0, profile))

	dc := gg.NewContext(w, h)
	// 遮罩与画布同尺寸，SetMask 只在尺寸不符时出错
	_ = dc.SetMask(mask.AsMask())
	fillAll(dc, linear(0, 0, 0, float64(h), body))
	return toNRGBA(dc)
}

// drawGlow 将 layer 以 sigma 高斯模糊后叠加到 dc 左上角
func drawGlow(dc *gg.Context, layer image.Image, sigma float64, x, y int) {
	dc.DrawImage(imaging.Blur(layer, sigma), x, y)
}

// toNRGBA 输出非预乘图像
func toNRGBA(dc *gg.Context) *image.NRGBA {
	return imaging.Clone(dc.Image())
}

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: to8(a)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
