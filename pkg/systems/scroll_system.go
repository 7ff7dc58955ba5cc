package systems

import (
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ScrollSystem 把滚轮、键盘和触摸输入转换为平滑的滚动进度
//
// target 是输入累积出的目标进度，current 在 ScrollSmoothDuration 内以
// EaseOutExpoClamped 追赶 target。每次目标变化都从当前值重新起步。
// 进度始终位于 [0,1]。
type ScrollSystem struct {
	target  float64
	current float64

	from    float64
	elapsed float64
	moving  bool

	duration      float64
	sensitivity   float64
	reducedMotion bool

	drag *utils.DragManager
}

// NewScrollSystem 创建滚动系统
//
// 参数:
//   - start: 初始进度（--progress）
//   - sensitivity: 滚轮/触摸灵敏度倍率（用户设置，1.0 为默认）
//   - reducedMotion: 为 true 时进度立即跳到目标，不做平滑
func NewScrollSystem(start, sensitivity float64, reducedMotion bool) *ScrollSystem {
	if sensitivity <= 0 {
		sensitivity = 1
	}
	p := utils.Clamp01(start)
	return &ScrollSystem{
		target:        p,
		current:       p,
		duration:      config.ScrollSmoothDuration,
		sensitivity:   sensitivity,
		reducedMotion: reducedMotion,
		drag:          utils.NewDragManager(),
	}
}

// Progress 当前平滑后的进度
func (s *ScrollSystem) Progress() float64 {
	return s.current
}

// Target 目标进度
func (s *ScrollSystem) Target() float64 {
	return s.target
}

// IsAnimating 是否仍在追赶目标
func (s *ScrollSystem) IsAnimating() bool {
	return s.moving
}

// SetReducedMotion 切换减少动态效果
func (s *ScrollSystem) SetReducedMotion(v bool) {
	s.reducedMotion = v
	if v {
		s.snap()
	}
}

// SetSensitivity 设置滚动灵敏度
func (s *ScrollSystem) SetSensitivity(v float64) {
	if v > 0 {
		s.sensitivity = v
	}
}

// ScrollBy 目标进度增加 delta（可为负）
func (s *ScrollSystem) ScrollBy(delta float64) {
	if delta == 0 || delta != delta {
		return
	}
	s.ScrollTo(s.target + delta)
}

// ScrollTo 平滑滚动到进度 p
func (s *ScrollSystem) ScrollTo(p float64) {
	p = utils.Clamp01(p)
	if p == s.target && !s.moving && p == s.current {
		return
	}
	s.target = p
	if s.reducedMotion {
		s.snap()
		return
	}
	s.from = s.current
	s.elapsed = 0
	s.moving = true
}

// Jump 立即跳到进度 p，不做平滑
func (s *ScrollSystem) Jump(p float64) {
	s.target = utils.Clamp01(p)
	s.snap()
}

// Advance 推进平滑动画 dt 秒
func (s *ScrollSystem) Advance(dt float64) {
	if !s.moving {
		return
	}
	s.elapsed += clampDelta(dt, config.MaxFrameDelta)
	t := utils.Clamp01(s.elapsed / s.duration)
	s.current = utils.Lerp(s.from, s.target, utils.EaseOutExpoClamped(t))
	if t >= 1 {
		s.snap()
	}
}

// Update 读取本帧输入并推进动画
//
// 参数:
//   - dt: 帧间隔（秒）
//   - viewportHeight: 视口高度（像素），决定一个滚动像素对应的进度
func (s *ScrollSystem) Update(dt float64, viewportHeight int) {
	length := config.ScrollLengthPixels(viewportHeight)

	if _, wy := ebiten.Wheel(); wy != 0 {
		// 滚轮向下（wy < 0）前进
		s.ScrollBy(-wy * config.WheelPixelsPerNotch * config.WheelMultiplier * s.sensitivity / length)
	}

	s.drag.Update()
	if dy := s.drag.FrameDeltaY(); dy != 0 {
		// 手指上滑前进
		s.ScrollBy(-float64(dy) * config.TouchMultiplier * s.sensitivity / length)
	}

	s.handleKeys()
	s.Advance(dt)
}

func (s *ScrollSystem) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		s.ScrollTo(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		s.ScrollTo(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.ScrollBy(config.PageScrollStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		s.ScrollBy(-config.PageScrollStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		s.ScrollBy(config.KeyScrollStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		s.ScrollBy(-config.KeyScrollStep)
	}
}

func (s *ScrollSystem) snap() {
	s.current = s.target
	s.from = s.target
	s.elapsed = 0
	s.moving = false
}
