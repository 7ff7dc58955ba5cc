package entities

import (
	"fmt"
	"math/rand"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/components"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// RingCount 能量环数量
const RingCount = 3

// Ring 能量环
type Ring struct {
	Handle
	Index int
	// BaseScale 基础缩放 0.8 + 0.4*i
	BaseScale float64
}

// Portal 门户效果集合：七个粒子池 + 漩涡 + 三个能量环，全部挂在门户组下
type Portal struct {
	Group          ecs.EntityID
	GroupTransform *components.TransformComponent
	Origin         mgl64.Vec3
	Radius         float64

	// VortexOpacity / RingOpacity 完全显现时的透明度
	VortexOpacity float64
	RingOpacity   float64

	// Pools 顺序与 particle.PortalKinds 一致
	Pools  []*Pool
	Vortex *Handle
	Rings  []*Ring
}

// Pool 按类别查找粒子池
func (p *Portal) Pool(kind particle.Kind) *Pool {
	for _, pool := range p.Pools {
		if pool.Kind == kind {
			return pool
		}
	}
	return nil
}

// ParticleCount 七个池的粒子总数
func (p *Portal) ParticleCount() int {
	n := 0
	for _, pool := range p.Pools {
		n += pool.Len()
	}
	return n
}

// countFor 返回配置中某类粒子的数量
func countFor(counts config.ParticleCounts, kind particle.Kind) int {
	switch kind {
	case particle.KindDarkCloud:
		return counts.DarkCloud
	case particle.KindDust:
		return counts.Dust
	case particle.KindSpark:
		return counts.Spark
	case particle.KindSparkTrail:
		return counts.SparkTrail
	case particle.KindGlyph:
		return counts.Glyph
	case particle.KindLightRay:
		return counts.LightRay
	case particle.KindCenterGlow:
		return counts.CenterGlow
	case particle.KindTunnel:
		return counts.Tunnel
	}
	return 0
}

// NewPortal 创建门户效果集合
//
// 门户组位于 cfg.Portal.Position，漩涡和能量环位于组的后方（负 Z），
// 七类粒子按 specs 中的定义围绕组中心分布。
func NewPortal(em *ecs.EntityManager, cfg config.SceneConfig, specs map[particle.Kind]particle.PoolSpec, rng *rand.Rand, img ImageSource) (*Portal, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	for _, kind := range particle.PortalKinds {
		if n := countFor(cfg.Counts, kind); n < 0 {
			return nil, fmt.Errorf("portal: %s count cannot be negative, got %d", kind, n)
		}
		if _, ok := specs[kind]; !ok {
			return nil, fmt.Errorf("portal: missing pool definition for %s", kind)
		}
	}

	radius := cfg.Portal.Radius
	group, groupTransform := NewGroupEntity(em, 0, cfg.Portal.Position)
	portal := &Portal{
		Group:          group,
		GroupTransform: groupTransform,
		Origin:         cfg.Portal.Position,
		Radius:         radius,
		VortexOpacity:  cfg.Portal.VortexOpacity,
		RingOpacity:    cfg.Portal.RingOpacity,
	}

	vortex, err := NewSpriteEntity(em, portal.Group, mgl64.Vec3{0, 0, -30},
		img.Texture("vortex"), radius*2.5, radius*2.5, true)
	if err != nil {
		return nil, fmt.Errorf("portal: vortex: %w", err)
	}
	portal.Vortex = vortex

	for i := 0; i < RingCount; i++ {
		base := 0.8 + 0.4*float64(i)
		h, err := NewSpriteEntity(em, portal.Group, mgl64.Vec3{0, 0, -20 - 10*float64(i)},
			img.Texture("energyRing"), radius*2, radius*2, true)
		if err != nil {
			return nil, fmt.Errorf("portal: ring %d: %w", i, err)
		}
		h.Transform.SetScale(base)
		portal.Rings = append(portal.Rings, &Ring{Handle: *h, Index: i, BaseScale: base})
	}

	for _, kind := range particle.PortalKinds {
		pool, err := CreatePool(em, portal.Group, specs[kind], countFor(cfg.Counts, kind), radius, rng, img)
		if err != nil {
			return nil, fmt.Errorf("portal: %w", err)
		}
		portal.Pools = append(portal.Pools, pool)
	}
	return portal, nil
}
