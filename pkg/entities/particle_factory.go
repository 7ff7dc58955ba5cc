package entities

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/components"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// 特殊纹理名称：按粒子单独选择图像
const (
	// TextureGlyph 每个粒子随机一个小号字符
	TextureGlyph = "glyph"
	// TextureTunnel 混合纹理：<0.4 尘埃、<0.7 火花（加法），其余暗云（普通混合）
	TextureTunnel = "tunnel"
)

// Particle 粒子句柄
type Particle struct {
	Handle
	State *components.ParticleComponent

	// Level 时间轴给出的当前基础透明度，动画系统在此基础上调制闪烁/脉冲
	Level float64
}

// Polar 按当前角度、给定半径和深度计算局部位置
func (p *Particle) Polar(radius, z float64) mgl64.Vec3 {
	a := p.State.Params.Angle
	return mgl64.Vec3{math.Cos(a) * radius, math.Sin(a) * radius, z}
}

// ApplySnapshot 还原到创建时刻的状态：位置、角度、旋转、缩放，透明度归零
func (p *Particle) ApplySnapshot() {
	init := p.State.Initial
	p.State.Params.Angle = init.Angle
	p.State.Params.Radius = init.Radius
	p.State.Params.BaseZ = init.Z
	p.Transform.Position = mgl64.Vec3{
		math.Cos(init.Angle) * init.Radius,
		math.Sin(init.Angle) * init.Radius,
		init.Z,
	}
	p.Transform.Rotation = init.Rotation
	p.Transform.SetScale(1)
	p.Level = 0
	p.Material.SetOpacity(0)
}

// Pool 一类粒子的集合，由所属的效果集合独占
type Pool struct {
	Kind particle.Kind
	Spec particle.PoolSpec

	particles []*Particle
}

// Len 粒子数量
func (p *Pool) Len() int {
	return len(p.particles)
}

// Particles 返回粒子列表（调用方不应修改切片本身）
func (p *Pool) Particles() []*Particle {
	return p.particles
}

// Reset 全部粒子还原到创建快照，透明度为 0
func (p *Pool) Reset() {
	for _, pt := range p.particles {
		pt.ApplySnapshot()
	}
}

// SetVisible 设置整个池的可见性
func (p *Pool) SetVisible(v bool) {
	for _, pt := range p.particles {
		pt.SetVisible(v)
	}
}

// SetOpacity 设置整个池的基础透明度
//
// base 是该类粒子的目标透明度，progress 是渐显进度（0-1）。
// 每个粒子按自己的错峰偏移计算进度，progress 为 1 时全部达到 base。
func (p *Pool) SetOpacity(base, progress float64) {
	for _, pt := range p.particles {
		level := base * particle.Staggered(progress, pt.State.Params.Stagger, p.Spec.Stagger)
		pt.Level = level
		pt.Material.SetOpacity(level)
	}
}

// CreatePool 按池定义创建 count 个粒子
//
// 参数:
//   - em: 实体管理器（渲染列表）
//   - parent: 父实体（门户组或隧道组）
//   - spec: 池定义（分布规则和参数区间）
//   - count: 粒子数量，负数返回错误且不创建任何实体
//   - baseRadius: 门户基础半径，分布半径 = baseRadius*RadiusScale + RadiusOffset
//   - rng: 随机源，全部随机量在创建时一次抽取
//   - img: 纹理来源
//
// 返回的每个粒子透明度为 0，快照等于初始位置。
func CreatePool(em *ecs.EntityManager, parent ecs.EntityID, spec particle.PoolSpec, count int, baseRadius float64, rng *rand.Rand, img ImageSource) (*Pool, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if count < 0 {
		return nil, fmt.Errorf("%s pool: count cannot be negative, got %d", spec.Kind, count)
	}
	if rng == nil || img == nil {
		return nil, fmt.Errorf("%s pool: rng and image source are required", spec.Kind)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := checkTextures(spec.Texture, img); err != nil {
		return nil, fmt.Errorf("%s pool: %w", spec.Kind, err)
	}

	pool := &Pool{
		Kind:      spec.Kind,
		Spec:      spec,
		particles: make([]*Particle, 0, count),
	}

	for i := 0; i < count; i++ {
		params := sampleParams(spec, i, count, baseRadius, rng)
		rotation := initialRotation(spec.Kind, params.Angle, rng)
		image, additive := pickImage(spec, rng, img)

		pos := mgl64.Vec3{
			math.Cos(params.Angle) * params.Radius,
			math.Sin(params.Angle) * params.Radius,
			params.BaseZ,
		}
		h, err := NewSpriteEntity(em, parent, pos, image, params.Width, params.Height, additive)
		if err != nil {
			return nil, fmt.Errorf("%s pool: particle %d: %w", spec.Kind, i, err)
		}
		h.Transform.Rotation = rotation

		state := &components.ParticleComponent{
			Kind:   spec.Kind,
			Params: params,
			Initial: components.Snapshot{
				Angle:    params.Angle,
				Radius:   params.Radius,
				Z:        params.BaseZ,
				Rotation: rotation,
			},
		}
		em.AddComponent(h.ID, state)
		pool.particles = append(pool.particles, &Particle{Handle: *h, State: state})
	}
	return pool, nil
}

// sampleParams 抽取一个粒子的全部随机参数，抽取顺序固定以保证同一种子结果一致
func sampleParams(spec particle.PoolSpec, i, count int, baseRadius float64, rng *rand.Rand) components.AnimationParams {
	var angle float64
	switch spec.Placement {
	case particle.PlacementSpokes:
		angle = float64(i)/float64(count)*2*math.Pi + spec.AngleJitter.Sample(rng)
	default:
		angle = rng.Float64() * 2 * math.Pi
	}

	radius := baseRadius*spec.RadiusScale.Sample(rng) + spec.RadiusOffset.Sample(rng)
	z := spec.Z.Sample(rng)
	width := spec.Width.Sample(rng)
	height := width
	if !spec.Height.IsZero() {
		height = spec.Height.Sample(rng)
	}

	return components.AnimationParams{
		Angle:         angle,
		Radius:        radius,
		BaseZ:         z,
		Width:         width,
		Height:        height,
		OrbitSpeed:    spec.OrbitSpeed.Sample(rng),
		WobbleSpeed:   spec.WobbleSpeed.Sample(rng),
		WobbleAmount:  spec.WobbleAmount.Sample(rng),
		Phase:         rng.Float64() * 2 * math.Pi,
		FlickerSpeed:  spec.FlickerSpeed.Sample(rng),
		RotationSpeed: spec.RotationSpeed.Sample(rng),
		PulseSpeed:    spec.PulseSpeed.Sample(rng),
		SpiralSpeed:   spec.SpiralSpeed.Sample(rng),
		StreamSpeed:   spec.StreamSpeed.Sample(rng),
		Stagger:       rng.Float64() * spec.Stagger,
	}
}

// initialRotation 拖尾和光线沿切向，暗云和尘埃随机朝向
func initialRotation(kind particle.Kind, angle float64, rng *rand.Rand) float64 {
	switch kind {
	case particle.KindSparkTrail, particle.KindLightRay:
		return angle + math.Pi/2
	case particle.KindDarkCloud, particle.KindDust:
		return rng.Float64() * 2 * math.Pi
	}
	return 0
}

func pickImage(spec particle.PoolSpec, rng *rand.Rand, img ImageSource) (*ebiten.Image, bool) {
	switch spec.Texture {
	case TextureGlyph:
		return img.Glyph(img.RandomRune(), true), spec.Additive
	case TextureTunnel:
		choice := rng.Float64()
		switch {
		case choice < 0.4:
			return img.Texture("dust"), true
		case choice < 0.7:
			return img.Texture("spark"), true
		default:
			return img.Texture("darkCloud"), false
		}
	}
	return img.Texture(spec.Texture), spec.Additive
}

// checkTextures 在创建任何实体之前确认纹理存在
func checkTextures(name string, img ImageSource) error {
	var names []string
	switch name {
	case TextureGlyph:
		return nil
	case TextureTunnel:
		names = []string{"dust", "spark", "darkCloud"}
	default:
		names = []string{name}
	}
	for _, n := range names {
		if img.Texture(n) == nil {
			return fmt.Errorf("texture %q not available", n)
		}
	}
	return nil
}
