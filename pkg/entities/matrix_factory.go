package entities

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/decker502/monolith/pkg/components"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// GlyphStaggerSpan 漂浮/飞行阶段单元的最大错峰延迟
const GlyphStaggerSpan = 0.5

// GlyphCell 矩阵字符单元句柄
type GlyphCell struct {
	Handle
	Glyph *components.GlyphComponent
}

// ApplySnapshot 还原到创建状态：滚动阶段、初始位置和字符，透明度 0
func (c *GlyphCell) ApplySnapshot(img ImageSource) {
	g := c.Glyph
	g.Phase = components.GlyphScrolling
	g.Origin = g.InitialPosition
	c.Transform.Position = g.InitialPosition
	if g.Rune != g.InitialRune {
		g.Rune = g.InitialRune
		c.Sprite.Image = img.Glyph(g.Rune, false)
	}
	c.Material.SetOpacity(0)
}

// Matrix 矩阵字符流：若干列字符，在矩阵组局部空间中上下滚动
type Matrix struct {
	Group ecs.EntityID
	Cells []*GlyphCell

	Columns    int
	Rows       int
	HalfHeight float64
}

// NewMatrix 创建矩阵字符流
//
// 第 c 列的 X 坐标为 (c - (columns-1)/2)*spacing，偶数列向上滚动、奇数列向下；
// 第 i 行的起始 Y 为 (i - rows/2)*charHeight。每个单元在创建时确定漂浮目标
// 和飞行目标，飞行目标换算到矩阵组空间，落在门户环带上。
func NewMatrix(em *ecs.EntityManager, cfg config.SceneConfig, rng *rand.Rand, img ImageSource) (*Matrix, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	mc := cfg.Matrix
	if mc.Columns <= 0 || mc.Rows <= 0 {
		return nil, fmt.Errorf("matrix grid must be at least 1x1, got %dx%d", mc.Columns, mc.Rows)
	}

	group, _ := NewGroupEntity(em, 0, mc.Position)
	m := &Matrix{
		Group:      group,
		Columns:    mc.Columns,
		Rows:       mc.Rows,
		HalfHeight: float64(mc.Rows) * mc.CharHeight / 2,
		Cells:      make([]*GlyphCell, 0, mc.Columns*mc.Rows),
	}

	// 门户中心在矩阵组空间中的位置
	portalLocal := cfg.Portal.Position.Sub(mc.Position)

	for col := 0; col < mc.Columns; col++ {
		colX := (float64(col) - float64(mc.Columns-1)/2) * mc.ColumnSpacing
		direction := 1.0
		if col%2 != 0 {
			direction = -1
		}

		for i := 0; i < mc.Rows; i++ {
			r := img.RandomRune()
			startY := (float64(i) - float64(mc.Rows)/2) * mc.CharHeight
			start := mgl64.Vec3{colX, startY, 0}

			h, err := NewSpriteEntity(em, m.Group, start, img.Glyph(r, false), mc.GlyphSize, mc.GlyphSize, true)
			if err != nil {
				return nil, fmt.Errorf("matrix cell %d/%d: %w", col, i, err)
			}

			speed := mc.SpeedMin + rng.Float64()*(mc.SpeedMax-mc.SpeedMin)

			floatTarget := mgl64.Vec3{
				colX + (rng.Float64()-0.5)*0.5*mc.ColumnSpacing,
				startY*1.15 + (rng.Float64()-0.5)*mc.CharHeight,
				60 + rng.Float64()*60,
			}

			endAngle := rng.Float64() * 2 * math.Pi
			endRadius := cfg.Portal.Radius + (rng.Float64()-0.5)*60
			flyTarget := mgl64.Vec3{
				math.Cos(endAngle) * endRadius,
				math.Sin(endAngle) * endRadius,
				(rng.Float64() - 0.5) * 40,
			}.Add(portalLocal)

			glyph := &components.GlyphComponent{
				Column:          col,
				Row:             i,
				Direction:       direction,
				Speed:           speed,
				BaseY:           startY,
				HalfHeight:      m.HalfHeight,
				Phase:           components.GlyphScrolling,
				FloatTarget:     floatTarget,
				FlyTarget:       flyTarget,
				Origin:          start,
				Rune:            r,
				InitialRune:     r,
				InitialPosition: start,
				Stagger:         rng.Float64() * GlyphStaggerSpan,
			}
			em.AddComponent(h.ID, glyph)
			m.Cells = append(m.Cells, &GlyphCell{Handle: *h, Glyph: glyph})
		}
	}
	return m, nil
}
