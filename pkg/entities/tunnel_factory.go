package entities

import (
	"fmt"
	"math/rand"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// Tunnel 隧道粒子场，沿门户轴线向相机流动
type Tunnel struct {
	Group  ecs.EntityID
	Origin mgl64.Vec3 // 组的世界坐标，粒子本地 Z 加上 Origin.Z() 即世界 Z
	Pool   *Pool
}

// NewTunnel 创建隧道粒子场
//
// 隧道组位于门户中心的 X/Y、世界 Z=0 处，粒子从远端（负 Z）流向相机。
func NewTunnel(em *ecs.EntityManager, cfg config.SceneConfig, spec particle.PoolSpec, rng *rand.Rand, img ImageSource) (*Tunnel, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if spec.Kind != particle.KindTunnel {
		return nil, fmt.Errorf("tunnel: expected %s pool definition, got %s", particle.KindTunnel, spec.Kind)
	}
	if cfg.Counts.Tunnel < 0 {
		return nil, fmt.Errorf("tunnel: count cannot be negative, got %d", cfg.Counts.Tunnel)
	}

	origin := mgl64.Vec3{cfg.Portal.Position.X(), cfg.Portal.Position.Y(), 0}
	group, _ := NewGroupEntity(em, 0, origin)
	pool, err := CreatePool(em, group, spec, cfg.Counts.Tunnel, 0, rng, img)
	if err != nil {
		return nil, fmt.Errorf("tunnel: %w", err)
	}
	return &Tunnel{Group: group, Origin: origin, Pool: pool}, nil
}
