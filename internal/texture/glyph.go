package texture

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Charset 矩阵字符流使用的字符集：拉丁大写、数字、希腊字母和数学符号
var Charset = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
	"ΑΒΓΔΕΖΗΘΙΚΛΜΝΞΟΠΡΣΤΥΦΧΨΩ" +
	"αβγδεζηθικλμνξοπρστυφχψω" +
	"∞∑∏√∫≈≠≤≥")

var (
	glyphGlow      = rgba(0, 255, 136, 0.9)
	glyphBody      = rgba(0x00, 0xff, 0x88, 1)
	glyphHighlight = rgba(0xaa, 0xff, 0xcc, 1)
)

// RandomRune 从字符集中随机取一个字符
func (g *Generator) RandomRune() rune {
	return Charset[g.rng.Intn(len(Charset))]
}

// Glyph 渲染单个字符：先画模糊的外发光，再画内层发光和清晰字形
//
// small 为 true 时生成 32×32 的小字（门户内的漂浮字符），否则为 64×64。
// 发光半径按阴影模糊的约定换算为 sigma = blur/2。
func (g *Generator) Glyph(r rune, small bool) *image.NRGBA {
	size, face := GlyphSize, g.glyphFace
	outerBlur, innerBlur := 10.0, 5.0
	if small {
		size, face = SmallGlyphSize, g.smallFace
		outerBlur, innerBlur = 6, 3
	}

	glow := glyphLayer(face, r, size, glyphGlow)
	dc := gg.NewContext(size, size)
	drawGlow(dc, glow, outerBlur/2, 0, 0)
	drawGlyph(dc, face, r, size, glyphBody)
	drawGlow(dc, glow, innerBlur/2, 0, 0)
	drawGlyph(dc, face, r, size, glyphHighlight)
	return toNRGBA(dc)
}

// glyphLayer 单独一层的清晰字形，用作发光的模糊源
func glyphLayer(face font.Face, r rune, size int, col color.Color) image.Image {
	dc := gg.NewContext(size, size)
	drawGlyph(dc, face, r, size, col)
	return dc.Image()
}

// drawGlyph 按字形墨迹边界把字符居中绘制
func drawGlyph(dc *gg.Context, face font.Face, r rune, size int, col color.Color) {
	bounds, _ := font.BoundString(face, string(r))
	half := float64(size) / 2
	x := half - fixedToFloat(bounds.Max.X-bounds.Min.X)/2 - fixedToFloat(bounds.Min.X)
	y := half - fixedToFloat(bounds.Max.Y-bounds.Min.Y)/2 - fixedToFloat(bounds.Min.Y)

	dc.SetFontFace(face)
	dc.SetColor(col)
	dc.DrawString(string(r), x, y)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
