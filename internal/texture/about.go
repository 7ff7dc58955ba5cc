package texture

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// 关于面板默认分辨率
const (
	AboutWidth  = 1920
	AboutHeight = 1080
)

var (
	aboutGreen = color.NRGBA{R: 0x00, G: 0xff, B: 0x88, A: 0xff}
	aboutBody  = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	aboutMuted = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
)

var aboutParagraphs = []string{
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.",
	"Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.",
}

type aboutBox struct {
	title string
	text  string
}

var aboutFeatures = []aboutBox{
	{"Dimension Alpha", "The first realm beyond the portal. A place where reality bends to the will of consciousness and time flows differently."},
	{"Quantum Matrix", "The underlying structure that connects all dimensions. Navigate through infinite possibilities and parallel realities."},
}

var aboutWelcome = aboutBox{
	"Welcome to the Other Side",
	"You have successfully traversed through the dimensional portal. This is a placeholder for your destination content. The journey through space and time has brought you to this new realm of possibilities.",
}

// About 渲染目的地面板：渐变背景、50px 网格、标题、副标题、正文和三个信息框
//
// 字号按宽度的百分比缩放，并截断到各自的上下限。
func (g *Generator) About(w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid about panel size %dx%d", w, h)
	}
	vw := float64(w) / 100

	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse body font: %w", err)
	}
	titleFace, err := newFace(g.font, clampf(4*vw, 32, 56))
	if err != nil {
		return nil, err
	}
	headFace, err := newFace(g.font, clampf(2*vw, 18, 24))
	if err != nil {
		return nil, err
	}
	smallFace, err := newFace(g.font, clampf(1.2*vw, 14, 16))
	if err != nil {
		return nil, err
	}
	bodyFace, err := newFace(regular, clampf(1.5*vw, 14, 18))
	if err != nil {
		return nil, err
	}
	noteFace, err := newFace(regular, 14)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(w, h)
	fillAll(dc, linear(0, 0, float64(w), float64(h), []ColorStop{
		stop(0, 0x00, 0x1a, 0x0f, 1),
		stop(0.5, 0x00, 0x08, 0x14, 1),
		stop(1, 0, 0, 0, 1),
	}))
	for x := 0; x < w; x += 50 {
		dc.DrawRectangle(float64(x), 0, 1, float64(h))
	}
	for y := 0; y < h; y += 50 {
		dc.DrawRectangle(0, float64(y), float64(w), 1)
	}
	dc.SetColor(rgba(0, 255, 136, 0.04))
	dc.Fill()

	contentW := int(math.Min(900, float64(w-40)))
	x0 := (w - contentW) / 2
	y := int(math.Max(40, float64(h)*0.1))

	// 标题辉光
	title := "ABOUT THE MONOLITH"
	y += titleFace.Metrics().Height.Ceil()
	glowText(dc, titleFace, title, x0, y, 30, rgba(0, 255, 136, 0.5))

	// 先排版，卡片和线条画完后再统一绘制文字
	type textOp struct {
		face font.Face
		text string
		x, y int
		col  color.NRGBA
	}
	ops := []textOp{{titleFace, title, x0, y, aboutGreen}}

	y += 20 + smallFace.Metrics().Height.Ceil()
	muted := aboutGreen
	muted.A = 0xb3
	ops = append(ops, textOp{smallFace, "Beyond the Portal • Another Dimension", x0, y, muted})
	y += 40

	lineH := bodyFace.Metrics().Height.Ceil() * 18 / 10
	for _, p := range aboutParagraphs {
		for _, line := range wrapText(dc, bodyFace, p, contentW) {
			y += lineH
			ops = append(ops, textOp{bodyFace, line, x0, y, aboutBody})
		}
		y += 24
	}

	// 信息框
	y += 16
	gap := 20
	boxW := (contentW - gap) / 2
	boxH := 0
	for i, box := range aboutFeatures {
		bx := x0 + i*(boxW+gap)
		by := y
		ty := by + 25 + headFace.Metrics().Height.Ceil()
		ops = append(ops, textOp{headFace, box.title, bx + 25, ty, aboutGreen})
		ty += 15
		for _, line := range wrapText(dc, noteFace, box.text, boxW-50) {
			ty += noteFace.Metrics().Height.Ceil() * 16 / 10
			ops = append(ops, textOp{noteFace, line, bx + 25, ty, aboutMuted})
		}
		if hgt := ty + 25 - by; hgt > boxH {
			boxH = hgt
		}
	}
	for i := range aboutFeatures {
		bx := x0 + i*(boxW+gap)
		panel(dc, bx, y, boxW, boxH, 1, 0.05, 0.3)
	}
	y += boxH + 60

	// 欢迎框
	wy := y
	ty := wy + 30 + headFace.Metrics().Height.Ceil()
	ops = append(ops, textOp{headFace, aboutWelcome.title, x0 + 30, ty, aboutGreen})
	ty += 20
	for _, line := range wrapText(dc, bodyFace, aboutWelcome.text, contentW-60) {
		ty += lineH
		ops = append(ops, textOp{bodyFace, line, x0 + 30, ty, aboutBody})
	}
	ty += 20 + noteFace.Metrics().Height.Ceil()
	label := "TRANSMISSION COMPLETE"
	labelX := x0 + 30 + 40 + 10
	ops = append(ops, textOp{noteFace, label, labelX, ty, muted})
	wh := ty + 30 - wy
	panel(dc, x0, wy, contentW, wh, 2, 0.08, 0.4)

	lineY := float64(ty - noteFace.Metrics().Ascent.Ceil()/2)
	dc.SetFontFace(noteFace)
	labelW, _ := dc.MeasureString(label)
	restX := float64(labelX) + labelW + 10
	dc.SetColor(rgba(0, 255, 136, 0.8))
	dc.DrawRectangle(float64(x0+30), lineY, 40, 2)
	dc.Fill()
	dc.SetColor(rgba(0, 255, 136, 0.4))
	dc.DrawRectangle(restX, lineY, float64(x0+contentW-30)-restX, 2)
	dc.Fill()

	for _, op := range ops {
		dc.SetFontFace(op.face)
		dc.SetColor(op.col)
		dc.DrawString(op.text, float64(op.x), float64(op.y))
	}
	return toNRGBA(dc), nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %.0fpx face: %w", size, err)
	}
	return face, nil
}

// wrapText 按像素宽度折行
func wrapText(dc *gg.Context, face font.Face, text string, maxWidth int) []string {
	dc.SetFontFace(face)
	return dc.WordWrap(text, float64(maxWidth))
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// panel 半透明底色加描边的信息框
func panel(dc *gg.Context, x, y, w, h int, lineWidth, fill, stroke float64) {
	dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	dc.SetColor(rgba(0, 255, 136, fill))
	dc.FillPreserve()
	dc.SetColor(rgba(0, 255, 136, stroke))
	dc.SetLineWidth(lineWidth)
	dc.Stroke()
}

// glowText 在文字基线 (x, y) 处绘制模糊辉光（只画辉光，不画字形）
func glowText(dc *gg.Context, face font.Face, text string, x, y int, blur float64, col color.Color) {
	pad := int(blur)
	m := face.Metrics()
	dc.SetFontFace(face)
	tw, _ := dc.MeasureString(text)
	mw := int(math.Ceil(tw)) + 2*pad
	mh := m.Height.Ceil() + 2*pad
	if mw <= 0 || mh <= 0 {
		return
	}

	layer := gg.NewContext(mw, mh)
	layer.SetFontFace(face)
	layer.SetColor(col)
	layer.DrawString(text, float64(pad), float64(pad+m.Ascent.Ceil()))
	drawGlow(dc, layer.Image(), blur/2, x-pad, y-m.Ascent.Ceil()-pad)
}
