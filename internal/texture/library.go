package texture

import (
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// 纹理名称（粒子池定义里的 texture 字段引用这些名称）
const (
	NameDust       = "dust"
	NameDarkCloud  = "darkCloud"
	NameSpark      = "spark"
	NameSparkTrail = "sparkTrail"
	NameLightRay   = "lightRay"
	NameVortex     = "vortex"
	NameEnergyRing = "energyRing"
	NameMonolith   = "monolith"
	NameSlitGlow   = "slitGlow"
	NameBackdrop   = "backdrop"
	NameAbout      = "about"
)

// Names 所有具名纹理，按生成顺序排列
var Names = []string{
	NameDust, NameDarkCloud, NameSpark, NameSparkTrail, NameLightRay,
	NameVortex, NameEnergyRing, NameMonolith, NameSlitGlow, NameBackdrop, NameAbout,
}

// Render 按名称生成纹理，about 面板使用默认分辨率
func (g *Generator) Render(name string) (*image.NRGBA, error) {
	switch name {
	case NameDust:
		return g.Dust(), nil
	case NameDarkCloud:
		return g.DarkCloud(), nil
	case NameSpark:
		return g.Spark(), nil
	case NameSparkTrail:
		return g.SparkTrail(), nil
	case NameLightRay:
		return g.LightRay(), nil
	case NameVortex:
		return g.Vortex(), nil
	case NameEnergyRing:
		return g.EnergyRing(), nil
	case NameMonolith:
		return g.Monolith(), nil
	case NameSlitGlow:
		return g.SlitGlow(), nil
	case NameBackdrop:
		return g.Backdrop(), nil
	case NameAbout:
		return g.About(AboutWidth, AboutHeight)
	}
	return nil, fmt.Errorf("unknown texture %q", name)
}

type glyphKey struct {
	r     rune
	small bool
}

// Library 持有上传到 GPU 的纹理，供所有精灵共享
//
// 具名纹理在 NewLibrary 中一次性生成；字符纹理按需生成并按字符缓存。
// 所有纹理只读，直到 Dispose。
type Library struct {
	gen    *Generator
	named  map[string]*ebiten.Image
	glyphs map[glyphKey]*ebiten.Image
}

// NewLibrary 生成全部具名纹理
//
// 参数:
//   - gen: 纹理生成器
//   - aboutW, aboutH: 关于面板的像素尺寸（随视口宽高比变化）
func NewLibrary(gen *Generator, aboutW, aboutH int) (*Library, error) {
	lib := &Library{
		gen:    gen,
		named:  make(map[string]*ebiten.Image, len(Names)),
		glyphs: make(map[glyphKey]*ebiten.Image),
	}
	for _, name := range Names {
		var (
			img *image.NRGBA
			err error
		)
		if name == NameAbout {
			img, err = gen.About(aboutW, aboutH)
		} else {
			img, err = gen.Render(name)
		}
		if err != nil {
			lib.Dispose()
			return nil, fmt.Errorf("failed to generate texture %s: %w", name, err)
		}
		lib.named[name] = ebiten.NewImageFromImage(img)
	}
	log.Printf("[TextureLibrary] Generated %d textures (about panel %dx%d)", len(lib.named), aboutW, aboutH)
	return lib, nil
}

// Texture 返回具名纹理，未知名称返回 nil
func (l *Library) Texture(name string) *ebiten.Image {
	return l.named[name]
}

// Glyph 返回字符纹理，首次请求时生成
func (l *Library) Glyph(r rune, small bool) *ebiten.Image {
	key := glyphKey{r: r, small: small}
	if img, ok := l.glyphs[key]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(l.gen.Glyph(r, small))
	l.glyphs[key] = img
	return img
}

// RandomRune 从字符集中随机取一个字符
func (l *Library) RandomRune() rune {
	return l.gen.RandomRune()
}

// GlyphCount 已缓存的字符纹理数量
func (l *Library) GlyphCount() int {
	return len(l.glyphs)
}

// Dispose 释放全部 GPU 纹理
func (l *Library) Dispose() {
	for name, img := range l.named {
		img.Deallocate()
		delete(l.named, name)
	}
	for key, img := range l.glyphs {
		img.Deallocate()
		delete(l.glyphs, key)
	}
}
