package systems

import (
	"math"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/entities"
	"github.com/decker502/monolith/pkg/timeline"
	"github.com/go-gl/mathgl/mgl64"
)

// 门户动画常量，角速度单位为弧度/秒
//
// 第 i 个能量环的角速度为 ringSpinBase + ringSpinStep*i，
// 脉冲频率为 ringPulseBase + ringPulseStep*i。
const (
	vortexSpin     = -0.3
	ringSpinBase   = 0.3
	ringSpinStep   = 0.2
	ringPulseBase  = 1.5
	ringPulseStep  = 0.5
	ringPulseDepth = 0.1
	// ringStagger 能量环依次出现的间隔（渐显进度比例）
	ringStagger    = 0.1
)

// PortalSystem 驱动门户效果集合
type PortalSystem struct {
	portal *entities.Portal

	visible bool
	dirty   bool
	spread  float64
}

// NewPortalSystem 创建门户系统
func NewPortalSystem(portal *entities.Portal) *PortalSystem {
	return &PortalSystem{portal: portal, visible: true, spread: 1}
}

// Portal 返回门户集合
func (s *PortalSystem) Portal() *entities.Portal {
	return s.portal
}

// Reset 还原所有粒子、漩涡和能量环到创建状态
func (s *PortalSystem) Reset() {
	p := s.portal
	for _, pool := range p.Pools {
		pool.Reset()
	}
	p.Vortex.Transform.Rotation = 0
	p.Vortex.SetOpacity(0)
	for _, ring := range p.Rings {
		ring.Transform.Rotation = 0
		ring.Transform.SetScale(ring.BaseScale)
		ring.SetOpacity(0)
	}
	p.GroupTransform.Position = p.Origin
	s.spread = 1
	s.dirty = false
}

// Apply 应用时间轴目标：透明度倍率、消散倍数和门户组推进
//
// 粒子池的层级为池定义 baseOpacity × 时间轴倍率，漩涡和能量环使用场景配置的透明度。
func (s *PortalSystem) Apply(st timeline.AnimationState) {
	if !st.PortalActive {
		if st.CameraDolly && s.dirty {
			s.Reset()
		}
		s.setVisible(false)
		return
	}

	s.setVisible(true)
	s.dirty = true

	t := st.Portal
	s.spread = t.Spread
	s.portal.GroupTransform.Position = s.portal.Origin.Add(mgl64.Vec3{0, 0, t.OffsetZ})

	for _, pool := range s.portal.Pools {
		pool.SetOpacity(pool.Spec.BaseOpacity*t.Level(pool.Kind), t.Reveal)
	}
	s.portal.Vortex.SetOpacity(s.portal.VortexOpacity * t.Vortex * t.Reveal)
	span := ringStagger * float64(len(s.portal.Rings)-1)
	for _, ring := range s.portal.Rings {
		ring.SetOpacity(s.portal.RingOpacity * t.Rings * particle.Staggered(t.Reveal, ringStagger*float64(ring.Index), span))
	}
}

// Update 推进门户动画
//
// 参数:
//   - dt: 帧间隔（秒）
//   - elapsed: 场景运行总时间（秒），用于所有周期性调制
func (s *PortalSystem) Update(dt, elapsed float64) {
	p := s.portal

	p.Vortex.Transform.Rotation += vortexSpin * dt

	for _, ring := range p.Rings {
		i := float64(ring.Index)
		ring.Transform.Rotation += (ringSpinBase + ringSpinStep*i) * dt
		pulse := 1 + ringPulseDepth*math.Sin(elapsed*(ringPulseBase+ringPulseStep*i)+i*math.Pi/3)
		ring.Transform.SetScale(ring.BaseScale * pulse)
	}

	for _, pool := range p.Pools {
		switch pool.Kind {
		case particle.KindDarkCloud:
			s.updateWobbling(pool, dt, elapsed, 0.3, 10, true)
		case particle.KindDust:
			s.updateWobbling(pool, dt, elapsed, 0.5, 15, true)
		case particle.KindGlyph:
			s.updateWobbling(pool, dt, elapsed, 0, 0, false)
		case particle.KindSpark:
			s.updateSparks(pool, dt, elapsed)
		case particle.KindSparkTrail:
			s.updateTrails(pool, dt, elapsed)
		case particle.KindLightRay:
			s.updateRays(pool, elapsed)
		case particle.KindCenterGlow:
			s.updateCenter(pool, dt, elapsed)
		}
	}
}

// updateWobbling 轨道运动 + 半径摆动，可选的深度振荡和自转
func (s *PortalSystem) updateWobbling(pool *entities.Pool, dt, elapsed, depthRate, depthAmount float64, spin bool) {
	for _, pt := range pool.Particles() {
		a := &pt.State.Params
		a.Angle += a.OrbitSpeed * dt
		r := (a.Radius + math.Sin(elapsed*a.WobbleSpeed+a.Phase)*a.WobbleAmount) * s.spread
		z := a.BaseZ
		if depthAmount != 0 {
			z += math.Sin(elapsed*a.WobbleSpeed*depthRate+a.Phase) * depthAmount
		}
		pt.Transform.Position = pt.Polar(r, z)
		if spin {
			pt.Transform.Rotation += a.RotationSpeed * dt
		}
	}
}

// updateSparks 轨道运动 + 半径抖动，透明度随闪烁整流
func (s *PortalSystem) updateSparks(pool *entities.Pool, dt, elapsed float64) {
	for _, pt := range pool.Particles() {
		a := &pt.State.Params
		a.Angle += a.OrbitSpeed * dt
		flicker := math.Sin(elapsed*a.FlickerSpeed + a.Phase)
		r := (a.Radius + flicker*a.WobbleAmount) * s.spread
		pt.Transform.Position = pt.Polar(r, a.BaseZ)
		pt.SetOpacity(pt.Level * (0.4 + 0.6*math.Abs(flicker)))
	}
}

// updateTrails 拖尾沿切向，透明度整流闪烁
func (s *PortalSystem) updateTrails(pool *entities.Pool, dt, elapsed float64) {
	for _, pt := range pool.Particles() {
		a := &pt.State.Params
		a.Angle += a.OrbitSpeed * dt
		pt.Transform.Position = pt.Polar(a.Radius*s.spread, a.BaseZ)
		pt.Transform.Rotation = a.Angle + math.Pi/2
		pt.SetOpacity(pt.Level * (0.5 + 0.5*math.Abs(math.Sin(elapsed*a.FlickerSpeed+a.Phase))))
	}
}

// updateRays 光线角度固定，长度和透明度在 0.2-1 之间脉动，消散时收缩
func (s *PortalSystem) updateRays(pool *entities.Pool, elapsed float64) {
	for _, pt := range pool.Particles() {
		a := &pt.State.Params
		pulse := 0.6 + 0.4*math.Sin(elapsed*a.PulseSpeed+a.Phase)
		pt.Transform.ScaleY = pulse / s.spread
		pt.SetOpacity(pt.Level * pulse)
	}
}

// updateCenter 中心光晕缓慢漂移并脉动
func (s *PortalSystem) updateCenter(pool *entities.Pool, dt, elapsed float64) {
	for _, pt := range pool.Particles() {
		a := &pt.State.Params
		a.Angle += a.OrbitSpeed * dt
		pt.Transform.Position = pt.Polar(a.Radius*s.spread, a.BaseZ)
		pt.SetOpacity(pt.Level * (0.6 + 0.4*math.Sin(elapsed*a.PulseSpeed+a.Phase)))
	}
}

func (s *PortalSystem) setVisible(v bool) {
	if s.visible == v {
		return
	}
	s.visible = v
	p := s.portal
	for _, pool := range p.Pools {
		pool.SetVisible(v)
	}
	p.Vortex.SetVisible(v)
	for _, ring := range p.Rings {
		ring.SetVisible(v)
	}
}
