package particle

import (
	"fmt"
	"sort"

	"github.com/decker502/monolith/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultPoolsPath 嵌入资源中的粒子池定义文件
const DefaultPoolsPath = "data/particles.yaml"

// poolsFile is the on-disk layout of data/particles.yaml.
type poolsFile struct {
	Pools map[string]yaml.Node `yaml:"pools"`
}

// DefaultPoolSpecs returns the built-in pool definitions.
// They are the baseline that data/particles.yaml overrides field by field.
func DefaultPoolSpecs() map[Kind]PoolSpec {
	return map[Kind]PoolSpec{
		KindDarkCloud: {
			Kind: KindDarkCloud, Texture: "darkCloud", Additive: false, BaseOpacity: 0.7,
			Placement:   PlacementScatter,
			RadiusScale: Between(0.5, 1.2), Z: Between(-40, 40), Width: Between(60, 160),
			OrbitSpeed: Between(0.15, 0.35), WobbleSpeed: Between(0.5, 1.5), WobbleAmount: Between(15, 40),
			RotationSpeed: Between(-0.25, 0.25),
			Stagger:       0.3,
		},
		KindDust: {
			Kind: KindDust, Texture: "dust", Additive: true, BaseOpacity: 0.5,
			Placement:   PlacementScatter,
			RadiusScale: Fixed(1), RadiusOffset: Between(-30, 30), Z: Between(-25, 25), Width: Between(10, 35),
			OrbitSpeed: Between(0.3, 0.7), WobbleSpeed: Between(1, 3), WobbleAmount: Between(10, 30),
			RotationSpeed: Between(-1, 1),
			Stagger:       0.3,
		},
		KindSpark: {
			Kind: KindSpark, Texture: "spark", Additive: true, BaseOpacity: 0.9,
			Placement:   PlacementScatter,
			RadiusScale: Fixed(1), RadiusOffset: Between(-40, 40), Z: Between(-20, 20), Width: Between(4, 12),
			OrbitSpeed: Between(0.6, 1.4), FlickerSpeed: Between(8, 23), WobbleAmount: Fixed(10),
			Stagger: 0.2,
		},
		KindSparkTrail: {
			Kind: KindSparkTrail, Texture: "sparkTrail", Additive: true, BaseOpacity: 0.7,
			Placement:   PlacementScatter,
			RadiusScale: Fixed(1), RadiusOffset: Between(-30, 30), Z: Between(-15, 15),
			Width: Fixed(3), Height: Between(20, 60),
			OrbitSpeed: Between(0.7, 1.2), FlickerSpeed: Between(6, 16),
			Stagger: 0.2,
		},
		KindGlyph: {
			Kind: KindGlyph, Texture: "glyph", Additive: true, BaseOpacity: 0.6,
			Placement:   PlacementScatter,
			RadiusScale: Between(0.3, 1.2), Z: Between(-30, 30), Width: Fixed(8),
			OrbitSpeed: Between(0.3, 0.8), WobbleSpeed: Between(2, 5), WobbleAmount: Between(5, 20),
			Stagger: 0.3,
		},
		KindLightRay: {
			Kind: KindLightRay, Texture: "lightRay", Additive: true, BaseOpacity: 0.5,
			Placement: PlacementSpokes,
			AngleJitter: Between(0, 0.2), Z: Fixed(-25),
			Width: Between(3, 7), Height: Between(80, 200),
			PulseSpeed: Between(2, 4),
			Stagger:    0.4,
		},
		KindCenterGlow: {
			Kind: KindCenterGlow, Texture: "dust", Additive: true, BaseOpacity: 0.4,
			Placement:    PlacementScatter,
			RadiusOffset: Between(0, 80), Z: Between(-35, -15), Width: Between(15, 45),
			OrbitSpeed: Between(0.4, 0.8), PulseSpeed: Between(1, 3),
			Stagger: 0.3,
		},
		KindTunnel: {
			Kind: KindTunnel, Texture: "tunnel", Additive: true, BaseOpacity: 0.7,
			Placement:    PlacementScatter,
			RadiusOffset: Between(50, 250), Z: Between(-2000, -500), Width: Between(5, 20),
			SpiralSpeed: Between(1, 3), StreamSpeed: Between(800, 1400),
		},
	}
}

// ParsePoolSpecs parses pool definitions from YAML bytes.
//
// Each entry under "pools" is decoded on top of the built-in default for its
// kind, so a file only needs to list the fields it changes. Unknown kinds and
// invalid definitions are errors.
func ParsePoolSpecs(data []byte) (map[Kind]PoolSpec, error) {
	specs := DefaultPoolSpecs()

	var file poolsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse particle pools YAML: %w", err)
	}

	names := make([]string, 0, len(file.Pools))
	for name := range file.Pools {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		kind, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		node := file.Pools[name]
		spec := specs[kind]
		if err := node.Decode(&spec); err != nil {
			return nil, fmt.Errorf("failed to decode pool %q: %w", name, err)
		}
		spec.Kind = kind
		specs[kind] = spec
	}

	for _, kind := range sortedKinds(specs) {
		if err := specs[kind].Validate(); err != nil {
			return nil, fmt.Errorf("invalid pool definition: %w", err)
		}
	}
	return specs, nil
}

// LoadPoolSpecs 从嵌入资源读取粒子池定义
//
// 参数:
//   - path: 以 "data/" 开头的资源路径，通常为 DefaultPoolsPath
func LoadPoolSpecs(path string) (map[Kind]PoolSpec, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read particle pools file %s: %w", path, err)
	}
	specs, err := ParsePoolSpecs(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

func sortedKinds(specs map[Kind]PoolSpec) []Kind {
	kinds := make([]Kind, 0, len(specs))
	for k := range specs {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
