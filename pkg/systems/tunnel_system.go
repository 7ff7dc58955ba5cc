package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/entities"
	"github.com/decker502/monolith/pkg/timeline"
	"github.com/decker502/monolith/pkg/utils"
)

// TunnelSystem 驱动隧道粒子流
//
// 粒子沿 +Z 流向相机并绕轴旋转。回收深度取 RecycleZ 与相机近裁剪面中较近的一个，
// 越过后回到远端重新出发；近端渐隐也以该深度为准，所以相机推进时粒子不会满亮度穿过镜头。
type TunnelSystem struct {
	tunnel *entities.Tunnel
	cfg    config.TunnelConfig
	near   float64
	rng    *rand.Rand

	level   float64
	limitZ  float64 // 组本地坐标下的回收深度
	visible bool
	dirty   bool
}

// NewTunnelSystem 创建隧道系统，near 为相机近裁剪距离
func NewTunnelSystem(tunnel *entities.Tunnel, cfg config.TunnelConfig, near float64, rng *rand.Rand) *TunnelSystem {
	return &TunnelSystem{
		tunnel:  tunnel,
		cfg:     cfg,
		near:    near,
		rng:     rng,
		limitZ:  cfg.RecycleZ,
		visible: true,
	}
}

// Particles 返回隧道粒子
func (s *TunnelSystem) Particles() []*entities.Particle {
	return s.tunnel.Pool.Particles()
}

// Reset 全部粒子还原到创建快照
func (s *TunnelSystem) Reset() {
	s.tunnel.Pool.Reset()
	s.level = 0
	s.limitZ = s.cfg.RecycleZ
	s.dirty = false
}

// Apply 应用时间轴给出的隧道强度与相机深度
//
// 最终亮度 = 池定义的 baseOpacity × TunnelOpacity × 远近渐变。
func (s *TunnelSystem) Apply(st timeline.AnimationState) {
	if !st.TunnelActive {
		if st.CameraDolly && s.dirty {
			s.Reset()
		}
		s.setVisible(false)
		return
	}
	s.setVisible(true)
	s.dirty = true
	s.level = s.tunnel.Pool.Spec.BaseOpacity * st.TunnelOpacity
	s.limitZ = s.recycleLimit(st.Camera.Z())
	for _, pt := range s.tunnel.Pool.Particles() {
		pt.Level = s.level
		pt.SetOpacity(s.opacityAt(pt.Transform.Position.Z()))
	}
}

// Update 推进粒子流
func (s *TunnelSystem) Update(dt float64) {
	spec := s.tunnel.Pool.Spec
	for _, pt := range s.tunnel.Pool.Particles() {
		a := &pt.State.Params
		z := pt.Transform.Position.Z() + a.StreamSpeed*dt
		a.Angle += a.SpiralSpeed * dt

		recycled := false
		if z > s.limitZ {
			z = s.cfg.FarZ - s.rng.Float64()*s.cfg.FarJitter
			a.Angle = s.rng.Float64() * 2 * math.Pi
			a.Radius = spec.RadiusOffset.Sample(s.rng)
			recycled = true
		}
		pt.Transform.Position = pt.Polar(a.Radius, z)

		if recycled {
			pt.SetOpacity(0)
			continue
		}
		pt.SetOpacity(s.opacityAt(z))
	}
}

// recycleLimit 把相机近裁剪面换算到组本地 Z，并与 RecycleZ 取较小值
func (s *TunnelSystem) recycleLimit(cameraZ float64) float64 {
	plane := cameraZ - s.near - s.tunnel.Origin.Z()
	limit := math.Min(s.cfg.RecycleZ, plane)
	// 相机退到远端之后时隧道不可能有可见粒子，保持回收点不低于出发点
	return math.Max(limit, s.cfg.FarZ)
}

// opacityAt 远端渐显 × 近端渐隐
func (s *TunnelSystem) opacityAt(z float64) float64 {
	fadeIn := utils.Clamp01((z - s.cfg.FarZ) / s.cfg.FadeInWindow)
	fadeOut := utils.Clamp01((s.limitZ - z) / s.cfg.FadeOutWindow)
	return s.level * fadeIn * fadeOut
}

func (s *TunnelSystem) setVisible(v bool) {
	if s.visible == v {
		return
	}
	s.visible = v
	s.tunnel.Pool.SetVisible(v)
}
