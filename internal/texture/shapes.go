package texture

import (
	"image"

	"github.com/fogleman/gg"
)

// EnergyRing 能量环：半径 100、线宽 20 的圆环，描边颜色取 80..120 的径向渐变
func (g *Generator) EnergyRing() *image.NRGBA {
	const (
		radius    = 100.0
		lineWidth = 20.0
	)
	half := float64(RingSize) / 2

	dc := gg.NewContext(RingSize, RingSize)
	dc.SetStrokeStyle(radial(half, half, radius-lineWidth, radius+lineWidth, []ColorStop{
		stop(0, 0, 255, 136, 0),
		stop(0.3, 0, 255, 136, 0.5),
		stop(0.5, 200, 255, 220, 0.9),
		stop(0.7, 0, 255, 136, 0.5),
		stop(1, 0, 255, 136, 0),
	}))
	dc.SetLineWidth(lineWidth)
	dc.DrawCircle(half, half, radius)
	dc.Stroke()
	return toNRGBA(dc)
}
