package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现(当前绘制的图像)
//
// Width/Height 是四边形在世界单位下的尺寸，与图像像素尺寸无关。
// 同一张图像可以被许多精灵共享，精灵只持有引用。
type SpriteComponent struct {
	Image  *ebiten.Image
	Width  float64
	Height float64
}
