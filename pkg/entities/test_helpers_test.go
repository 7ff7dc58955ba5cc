package entities

import (
	"math/rand"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// fakeImages 实现 ImageSource，所有纹理共享同一张小图
type fakeImages struct {
	img     *ebiten.Image
	missing map[string]bool
	runes   []rune
	next    int
}

func newFakeImages() *fakeImages {
	return &fakeImages{
		img:     ebiten.NewImage(4, 4),
		missing: map[string]bool{},
		runes:   []rune{'A', 'B', 'C', 'Σ'},
	}
}

func (f *fakeImages) Texture(name string) *ebiten.Image {
	if f.missing[name] {
		return nil
	}
	return f.img
}

func (f *fakeImages) Glyph(r rune, small bool) *ebiten.Image {
	return f.img
}

func (f *fakeImages) RandomRune() rune {
	r := f.runes[f.next%len(f.runes)]
	f.next++
	return r
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// smallConfig 缩小数量的默认配置，加快测试
func smallConfig() config.SceneConfig {
	cfg := config.DefaultSceneConfig()
	cfg.Counts = config.ParticleCounts{
		DarkCloud:  20,
		Dust:       20,
		Spark:      10,
		SparkTrail: 10,
		Glyph:      15,
		LightRay:   8,
		CenterGlow: 6,
		Tunnel:     30,
	}
	return cfg
}

func defaultSpec(kind particle.Kind) particle.PoolSpec {
	return particle.DefaultPoolSpecs()[kind]
}
