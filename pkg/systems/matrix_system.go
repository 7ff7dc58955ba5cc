package systems

import (
	"math"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/components"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/entities"
	"github.com/decker502/monolith/pkg/timeline"
	"github.com/decker502/monolith/pkg/utils"
)

// MatrixSystem 驱动矩阵字符流
//
// 单元的生命周期：滚动 → 漂浮 → 飞向门户。阶段只由时间轴决定；当时间轴的目标
// 阶段早于单元当前阶段（向后滚动），单元先还原到创建快照，再重新向前推进。
type MatrixSystem struct {
	matrix *entities.Matrix
	images entities.ImageSource
	cfg    config.MatrixConfig

	visible bool
	// dirty 单元自上次还原后被修改过
	dirty bool

	reveal        float64
	fade          float64
	floatProgress float64
	flyProgress   float64
}

// NewMatrixSystem 创建矩阵字符流系统
func NewMatrixSystem(m *entities.Matrix, images entities.ImageSource, cfg config.MatrixConfig) *MatrixSystem {
	return &MatrixSystem{
		matrix:  m,
		images:  images,
		cfg:     cfg,
		visible: true,
	}
}

// Cells 返回全部字符单元
func (s *MatrixSystem) Cells() []*entities.GlyphCell {
	return s.matrix.Cells
}

// Reset 全部单元还原到创建快照
func (s *MatrixSystem) Reset() {
	for _, c := range s.matrix.Cells {
		c.ApplySnapshot(s.images)
	}
	s.dirty = false
}

// Apply 应用时间轴状态：阶段切换、漂浮/飞行位置和透明度
func (s *MatrixSystem) Apply(st timeline.AnimationState) {
	if !st.GlyphActive {
		if st.CameraDolly && s.dirty {
			s.Reset()
		}
		s.setVisible(false)
		return
	}

	s.setVisible(true)
	s.dirty = true
	s.reveal = st.GlyphReveal
	s.fade = st.GlyphFade
	s.floatProgress = st.FloatProgress
	s.flyProgress = st.FlyProgress

	for _, c := range s.matrix.Cells {
		s.advancePhase(c, st.GlyphPhase)
		s.place(c)
		s.refreshOpacity(c)
	}
}

// Update 推进滚动阶段的单元，越过列端时跳到另一端并换字
func (s *MatrixSystem) Update(dt float64) {
	for _, c := range s.matrix.Cells {
		g := c.Glyph
		if g.Phase != components.GlyphScrolling {
			continue
		}
		y := c.Transform.Position.Y() + g.Direction*g.Speed*dt
		switch {
		case y > g.HalfHeight:
			y = -g.HalfHeight
			s.swapRune(c)
		case y < -g.HalfHeight:
			y = g.HalfHeight
			s.swapRune(c)
		}
		c.Transform.Position[1] = y
		s.refreshOpacity(c)
	}
}

// advancePhase 把单元推进（或回退）到目标阶段
//
// 跳过中间阶段时按中间阶段已完成处理：进入飞行时的起点总是漂浮目标。
func (s *MatrixSystem) advancePhase(c *entities.GlyphCell, target components.GlyphPhase) {
	g := c.Glyph
	if target < g.Phase {
		c.ApplySnapshot(s.images)
	}
	if g.Phase == components.GlyphScrolling && target >= components.GlyphFloating {
		g.Phase = components.GlyphFloating
		g.Origin = c.Transform.Position
	}
	if g.Phase == components.GlyphFloating && target == components.GlyphFlying {
		g.Phase = components.GlyphFlying
		g.Origin = g.FloatTarget
	}
}

func (s *MatrixSystem) place(c *entities.GlyphCell) {
	g := c.Glyph
	switch g.Phase {
	case components.GlyphFloating:
		t := utils.EaseOutQuad(particle.Staggered(s.floatProgress, g.Stagger, entities.GlyphStaggerSpan))
		c.Transform.Position = lerpVec(g.Origin, g.FloatTarget, t)
	case components.GlyphFlying:
		t := utils.EaseInOutQuad(particle.Staggered(s.flyProgress, g.Stagger, entities.GlyphStaggerSpan))
		c.Transform.Position = lerpVec(g.Origin, g.FlyTarget, t)
	}
}

// refreshOpacity 透明度 = 渐显 × 淡出 × 峰值 × 列端衰减
//
// 漂浮过程中列端衰减从起点处的值过渡到 1，避免离开列时跳变。
func (s *MatrixSystem) refreshOpacity(c *entities.GlyphCell) {
	g := c.Glyph
	base := particle.Staggered(s.reveal, g.Stagger, entities.GlyphStaggerSpan) * s.fade * s.cfg.PeakOpacity

	switch g.Phase {
	case components.GlyphScrolling:
		c.SetOpacity(base * s.EdgeFade(c.Transform.Position.Y(), g.HalfHeight))
	case components.GlyphFloating:
		t := particle.Staggered(s.floatProgress, g.Stagger, entities.GlyphStaggerSpan)
		c.SetOpacity(base * utils.Lerp(s.EdgeFade(g.Origin.Y(), g.HalfHeight), 1, t))
	default:
		c.SetOpacity(base)
	}
}

// EdgeFade 列端衰减 pow(sin(normY·π), exponent)，两端为 0
func (s *MatrixSystem) EdgeFade(y, halfHeight float64) float64 {
	if halfHeight <= 0 {
		return 0
	}
	normY := (y + halfHeight) / (2 * halfHeight)
	v := math.Sin(normY * math.Pi)
	if v <= 0 {
		return 0
	}
	return math.Pow(v, s.cfg.FadeExponent)
}

func (s *MatrixSystem) swapRune(c *entities.GlyphCell) {
	r := s.images.RandomRune()
	c.Glyph.Rune = r
	c.Glyph.Wraps++
	c.Sprite.Image = s.images.Glyph(r, false)
}

func (s *MatrixSystem) setVisible(v bool) {
	if s.visible == v {
		return
	}
	s.visible = v
	for _, c := range s.matrix.Cells {
		c.SetVisible(v)
	}
}
