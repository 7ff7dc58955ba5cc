package texture

import (
	"image"
	"math/rand"
	"testing"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	gen, err := NewGenerator(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	return gen
}

func alphaAt(img *image.NRGBA, x, y int) uint8 {
	return img.NRGBAAt(x, y).A
}

func maxAlpha(img *image.NRGBA) uint8 {
	var m uint8
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > m {
			m = img.Pix[i]
		}
	}
	return m
}

// TestRadialTextures 径向纹理：中心不透明度高，四角完全透明
func TestRadialTextures(t *testing.T) {
	gen := newTestGenerator(t)

	tests := []struct {
		name      string
		img       *image.NRGBA
		size      int
		minCenter uint8
	}{
		{"dust", gen.Dust(), DustSize, 150},
		{"darkCloud", gen.DarkCloud(), DarkCloudSize, 100},
		{"spark", gen.Spark(), SparkSize, 200},
		{"vortex", gen.Vortex(), VortexSize, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.img.Bounds()
			if b.Dx() != tt.size || b.Dy() != tt.size {
				t.Fatalf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.size, tt.size)
			}
			c := tt.size / 2
			if a := alphaAt(tt.img, c, c); a < tt.minCenter {
				t.Errorf("center alpha = %d, want >= %d", a, tt.minCenter)
			}
			corners := [][2]int{{0, 0}, {tt.size - 1, 0}, {0, tt.size - 1}, {tt.size - 1, tt.size - 1}}
			for _, p := range corners {
				if a := alphaAt(tt.img, p[0], p[1]); a != 0 {
					t.Errorf("corner %v alpha = %d, want 0", p, a)
				}
			}
		})
	}
}

// TestStreakTextures 拖尾和光线：两端和两侧接近透明，中心最亮
func TestStreakTextures(t *testing.T) {
	gen := newTestGenerator(t)

	tests := []struct {
		name string
		img  *image.NRGBA
		w, h int
	}{
		{"sparkTrail", gen.SparkTrail(), TrailWidth, TrailHeight},
		{"lightRay", gen.LightRay(), RayWidth, RayHeight},
		{"slitGlow", gen.SlitGlow(), SlitWidth, SlitHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.img.Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Fatalf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
			center := alphaAt(tt.img, tt.w/2, tt.h/2)
			if center < 150 {
				t.Errorf("center alpha = %d, want >= 150", center)
			}
			if a := alphaAt(tt.img, tt.w/2, 0); a > 10 {
				t.Errorf("top alpha = %d, want near 0", a)
			}
			if a := alphaAt(tt.img, tt.w/2, tt.h-1); a > 10 {
				t.Errorf("bottom alpha = %d, want near 0", a)
			}
			if a := alphaAt(tt.img, 0, tt.h/2); a >= center/2 {
				t.Errorf("left edge alpha = %d, should be masked well below center %d", a, center)
			}
			if a := alphaAt(tt.img, tt.w-1, tt.h/2); a >= center/2 {
				t.Errorf("right edge alpha = %d, should be masked well below center %d", a, center)
			}
		})
	}
}

func TestGlyph(t *testing.T) {
	gen := newTestGenerator(t)

	for _, small := range []bool{false, true} {
		img := gen.Glyph('Ω', small)
		want := GlyphSize
		if small {
			want = SmallGlyphSize
		}
		if b := img.Bounds(); b.Dx() != want || b.Dy() != want {
			t.Fatalf("small=%v: size = %dx%d, want %d", small, b.Dx(), b.Dy(), want)
		}
		if m := maxAlpha(img); m < 200 {
			t.Errorf("small=%v: glyph body alpha = %d, want >= 200", small, m)
		}
		if a := alphaAt(img, 0, 0); a > 30 {
			t.Errorf("small=%v: corner alpha = %d, want near 0", small, a)
		}
	}
}

func TestEnergyRing(t *testing.T) {
	gen := newTestGenerator(t)
	img := gen.EnergyRing()

	if b := img.Bounds(); b.Dx() != RingSize || b.Dy() != RingSize {
		t.Fatalf("size = %v", b)
	}
	half := RingSize / 2
	if a := alphaAt(img, half+100, half); a < 150 {
		t.Errorf("ring stroke alpha = %d, want >= 150", a)
	}
	if a := alphaAt(img, half, half); a != 0 {
		t.Errorf("ring center alpha = %d, want 0", a)
	}
	if a := alphaAt(img, 0, 0); a != 0 {
		t.Errorf("ring corner alpha = %d, want 0", a)
	}
}

func TestMonolith(t *testing.T) {
	gen := newTestGenerator(t)
	img := gen.Monolith()

	if b := img.Bounds(); b.Dx() != MonolithWidth || b.Dy() != MonolithHeight {
		t.Fatalf("size = %v", b)
	}
	if a := alphaAt(img, 44, 500); a != 255 {
		t.Errorf("left face alpha = %d, want 255", a)
	}
	if a := alphaAt(img, 84, 500); a != 255 {
		t.Errorf("right face alpha = %d, want 255", a)
	}
	// 顶部更窄
	if a := alphaAt(img, 2, 2); a != 0 {
		t.Errorf("top corner alpha = %d, want 0 (wedge tapers)", a)
	}
	if a := alphaAt(img, MonolithWidth/2, 256); a > 64 {
		t.Errorf("slit alpha = %d, want mostly transparent", a)
	}
}

func TestBackdropOpaque(t *testing.T) {
	gen := newTestGenerator(t)
	img := gen.Backdrop()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("backdrop pixel %d alpha = %d, want 255", i/4, img.Pix[i])
		}
	}
}

func TestAbout(t *testing.T) {
	gen := newTestGenerator(t)

	img, err := gen.About(800, 600)
	if err != nil {
		t.Fatalf("About failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("size = %v, want 800x600", b)
	}
	if a := alphaAt(img, 400, 300); a != 255 {
		t.Errorf("about panel should be opaque, alpha = %d", a)
	}

	if _, err := gen.About(0, 600); err == nil {
		t.Error("zero width should fail")
	}
}

func TestRender(t *testing.T) {
	gen := newTestGenerator(t)
	for _, name := range Names {
		if name == NameAbout {
			continue
		}
		img, err := gen.Render(name)
		if err != nil {
			t.Errorf("Render(%q) failed: %v", name, err)
			continue
		}
		if maxAlpha(img) == 0 {
			t.Errorf("Render(%q) produced an empty image", name)
		}
	}
	if _, err := gen.Render("nope"); err == nil {
		t.Error("unknown texture name should fail")
	}
}

// TestSeededGeneration 相同种子生成相同的噪声纹理
func TestSeededGeneration(t *testing.T) {
	a := newTestGenerator(t).Dust()
	b := newTestGenerator(t).Dust()
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("byte %d differs between identically seeded generators", i)
		}
	}
}

func TestCharset(t *testing.T) {
	seen := make(map[rune]bool, len(Charset))
	for _, r := range Charset {
		if seen[r] {
			t.Errorf("duplicate rune %q", r)
		}
		seen[r] = true
	}
	gen := newTestGenerator(t)
	for i := 0; i < 100; i++ {
		if r := gen.RandomRune(); !seen[r] {
			t.Fatalf("RandomRune returned %q outside the charset", r)
		}
	}
}

// TestGlyphGlowSpreads 发光层让字形的不透明区域明显大于清晰字形本身
func TestGlyphGlowSpreads(t *testing.T) {
	gen := newTestGenerator(t)

	covered := func(img image.Image) int {
		n := 0
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
					n++
				}
			}
		}
		return n
	}

	sharp := covered(glyphLayer(gen.glyphFace, 'M', GlyphSize, glyphBody))
	glowing := covered(gen.Glyph('M', false))
	if sharp == 0 {
		t.Fatal("sharp glyph layer is empty")
	}
	if glowing <= sharp {
		t.Errorf("glowing glyph covers %d pixels, want more than the sharp glyph's %d", glowing, sharp)
	}
}

// TestStreakMaskKeepsCenterColumn 遮罩只收窄两侧，中心列保留纵向渐变
func TestStreakMaskKeepsCenterColumn(t *testing.T) {
	img := streak(16, 64, []ColorStop{
		stop(0, 255, 255, 255, 1),
		stop(1, 255, 255, 255, 1),
	}, []ColorStop{
		stop(0, 0, 0, 0, 0),
		stop(0.5, 255, 255, 255, 1),
		stop(1, 0, 0, 0, 0),
	})
	if a := alphaAt(img, 8, 32); a < 200 {
		t.Errorf("center alpha = %d, want >= 200", a)
	}
	if a := alphaAt(img, 0, 32); a > 40 {
		t.Errorf("edge alpha = %d, want near 0", a)
	}
}
