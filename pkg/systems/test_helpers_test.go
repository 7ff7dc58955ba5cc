package systems

import (
	"math/rand"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/ecs"
	"github.com/decker502/monolith/pkg/entities"
	"github.com/hajimehoshi/ebiten/v2"
)

// stubImages 所有纹理共享一张 4x4 图像，字符轮流取用
type stubImages struct {
	img   *ebiten.Image
	runes []rune
	next  int
}

func newStubImages() *stubImages {
	return &stubImages{img: ebiten.NewImage(4, 4), runes: []rune{'0', '1', 'X', 'Z'}}
}

func (s *stubImages) Texture(string) *ebiten.Image { return s.img }
func (s *stubImages) Glyph(rune, bool) *ebiten.Image { return s.img }

func (s *stubImages) RandomRune() rune {
	r := s.runes[s.next%len(s.runes)]
	s.next++
	return r
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

func testConfig() config.SceneConfig {
	cfg := config.DefaultSceneConfig()
	cfg.Counts = config.ParticleCounts{
		DarkCloud:  60,
		Dust:       20,
		Spark:      10,
		SparkTrail: 10,
		Glyph:      10,
		LightRay:   8,
		CenterGlow: 6,
		Tunnel:     40,
	}
	return cfg
}

func newTestPortal(cfg config.SceneConfig) (*ecs.EntityManager, *entities.Portal) {
	em := ecs.NewEntityManager()
	portal, err := entities.NewPortal(em, cfg, particle.DefaultPoolSpecs(), testRand(), newStubImages())
	if err != nil {
		panic(err)
	}
	return em, portal
}

func newTestTunnel(cfg config.SceneConfig) *entities.Tunnel {
	em := ecs.NewEntityManager()
	tunnel, err := entities.NewTunnel(em, cfg, particle.DefaultPoolSpecs()[particle.KindTunnel], testRand(), newStubImages())
	if err != nil {
		panic(err)
	}
	return tunnel
}

func newTestMatrix(cfg config.SceneConfig, images entities.ImageSource) *entities.Matrix {
	em := ecs.NewEntityManager()
	m, err := entities.NewMatrix(em, cfg, testRand(), images)
	if err != nil {
		panic(err)
	}
	return m
}
