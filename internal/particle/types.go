// Package particle provides the particle pool definitions used by the monolith
// scene: particle classes, placement rules and the randomized parameter ranges
// each pool draws from at creation time.
//
// Definitions live in data/particles.yaml. Every numeric field accepts the same
// value formats:
//   - Fixed value: "1500" or 1500
//   - Range: "[0.7 0.9]" (uniform random value between min and max)
//   - YAML sequence: [0.7, 0.9]
package particle

import "fmt"

// Kind 粒子类别
type Kind int

const (
	KindDust Kind = iota
	KindDarkCloud
	KindSpark
	KindSparkTrail
	KindGlyph
	KindLightRay
	KindCenterGlow
	KindTunnel
)

// PortalKinds 门户集合拥有的七个粒子池（隧道粒子由隧道场单独拥有）
var PortalKinds = []Kind{
	KindDarkCloud,
	KindDust,
	KindSpark,
	KindSparkTrail,
	KindGlyph,
	KindLightRay,
	KindCenterGlow,
}

var kindNames = map[Kind]string{
	KindDust:       "dust",
	KindDarkCloud:  "darkCloud",
	KindSpark:      "spark",
	KindSparkTrail: "sparkTrail",
	KindGlyph:      "glyph",
	KindLightRay:   "lightRay",
	KindCenterGlow: "centerGlow",
	KindTunnel:     "tunnel",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind 将 YAML 中的名称转换为 Kind
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown particle kind %q", name)
}

// Placement 极坐标分布规则
type Placement string

const (
	// PlacementScatter 随机角度（环带、圆盘、隧道）
	PlacementScatter Placement = "scatter"
	// PlacementSpokes 均匀分布的角度加少量抖动（光线）
	PlacementSpokes Placement = "spokes"
)

// PoolSpec describes how one particle pool is generated.
//
// Radius is drawn as BaseRadius*RadiusScale + RadiusOffset, where BaseRadius is
// the portal radius supplied by the scene. A dust ring band [R-30, R+30] is
// therefore RadiusScale "1" with RadiusOffset "[-30 30]"; the centre-glow disk
// is RadiusScale "0" with RadiusOffset "[0 80]".
type PoolSpec struct {
	Kind Kind `yaml:"-"`

	// Rendering
	Texture     string  `yaml:"texture"`     // 贴图名称（见 internal/texture）
	Additive    bool    `yaml:"additive"`    // 加法混合
	BaseOpacity float64 `yaml:"baseOpacity"` // 完全显现时的透明度

	// Placement (分布)
	Placement    Placement `yaml:"placement"`
	RadiusScale  Range     `yaml:"radiusScale"`
	RadiusOffset Range     `yaml:"radiusOffset"`
	AngleJitter  Range     `yaml:"angleJitter"`
	Z            Range     `yaml:"z"`
	Width        Range     `yaml:"width"`
	Height       Range     `yaml:"height"` // 为空时与宽度相同（正方形）

	// Motion (运动参数，单位：弧度/秒、世界单位)
	OrbitSpeed    Range `yaml:"orbitSpeed"`
	WobbleSpeed   Range `yaml:"wobbleSpeed"`
	WobbleAmount  Range `yaml:"wobbleAmount"`
	RotationSpeed Range `yaml:"rotationSpeed"`
	FlickerSpeed  Range `yaml:"flickerSpeed"`
	PulseSpeed    Range `yaml:"pulseSpeed"`
	SpiralSpeed   Range `yaml:"spiralSpeed"`
	StreamSpeed   Range `yaml:"streamSpeed"`

	// Stagger 渐显错峰跨度（0-1，占阶段窗口的比例）
	Stagger float64 `yaml:"stagger"`
}

// Validate 检查定义是否自洽
func (s PoolSpec) Validate() error {
	if s.Texture == "" {
		return fmt.Errorf("%s: texture cannot be empty", s.Kind)
	}
	if s.Placement != PlacementScatter && s.Placement != PlacementSpokes {
		return fmt.Errorf("%s: unknown placement %q", s.Kind, s.Placement)
	}
	if s.BaseOpacity < 0 || s.BaseOpacity > 1 {
		return fmt.Errorf("%s: baseOpacity must be within [0,1], got %v", s.Kind, s.BaseOpacity)
	}
	if s.Stagger < 0 || s.Stagger >= 1 {
		return fmt.Errorf("%s: stagger must be within [0,1), got %v", s.Kind, s.Stagger)
	}
	if s.Width.Min <= 0 {
		return fmt.Errorf("%s: width must be positive", s.Kind)
	}
	ranges := map[string]Range{
		"radiusScale":  s.RadiusScale,
		"radiusOffset": s.RadiusOffset,
		"angleJitter":  s.AngleJitter,
		"z":            s.Z,
		"width":        s.Width,
		"height":       s.Height,
		"orbitSpeed":   s.OrbitSpeed,
		"wobbleSpeed":  s.WobbleSpeed,
		"wobbleAmount": s.WobbleAmount,
		"flickerSpeed": s.FlickerSpeed,
		"pulseSpeed":   s.PulseSpeed,
		"spiralSpeed":  s.SpiralSpeed,
		"streamSpeed":  s.StreamSpeed,
	}
	for name, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("%s: %s min %v greater than max %v", s.Kind, name, r.Min, r.Max)
		}
	}
	if s.WobbleAmount.Min < 0 {
		return fmt.Errorf("%s: wobbleAmount cannot be negative", s.Kind)
	}
	return nil
}
