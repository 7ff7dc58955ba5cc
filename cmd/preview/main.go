// Package main 在终端里预览滚动序列
//
// 场景照常构建和推进，RenderSystem 投影后的绘制列表按透明度累加到字符网格，
// 用于在没有窗口的环境（SSH、CI 机器）上检查时间轴和粒子分布。
//
// Usage:
//
//	go run ./cmd/preview [--progress 0.6] [--seed 7]
//
// Controls:
//
//	j/k, ↓/↑          - 滚动 ±1%
//	PgDn/PgUp         - 滚动一个视口高度
//	g/G, Home/End     - 跳到开头/结尾
//	Space             - 自动播放
//	Ctrl-C/Escape/q   - 退出
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/scenes"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// autoPlaySpeed 自动播放时每秒推进的进度
	autoPlaySpeed = 0.04
	frameInterval = 33 * time.Millisecond
)

// ramp 亮度梯度，从暗到亮
var ramp = []rune(" .:-=+*#%@")

var (
	configPath = flag.String("config", "", "场景配置文件（为空使用内置默认值）")
	seed       = flag.Int64("seed", 7, "随机种子")
	progress   = flag.Float64("progress", 0, "初始滚动进度 [0,1]")
)

// solidImages 所有纹理共用一张小图，终端预览只关心位置和透明度
type solidImages struct {
	img   *ebiten.Image
	rng   *rand.Rand
	runes []rune
}

func newSolidImages(rng *rand.Rand) *solidImages {
	return &solidImages{
		img:   ebiten.NewImage(4, 4),
		rng:   rng,
		runes: []rune("0123456789ABCDEFアイウエオカキクケコ"),
	}
}

func (s *solidImages) Texture(string) *ebiten.Image { return s.img }
func (s *solidImages) Glyph(rune, bool) *ebiten.Image { return s.img }
func (s *solidImages) RandomRune() rune { return s.runes[s.rng.Intn(len(s.runes))] }

// cell 单个字符格的累加亮度
type cell struct {
	normal   float64
	additive float64
}

// Preview 终端预览
type Preview struct {
	screen tcell.Screen
	scene  *scenes.MonolithScene

	width, height int
	cells         []cell
	sprites       int
	playing       bool
	last          time.Time
}

func main() {
	flag.Parse()
	log.SetOutput(io.Discard)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.DefaultSceneConfig()
	if *configPath != "" {
		loaded, err := config.LoadSceneConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Seed = *seed

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	w, h := screen.Size()
	rng := rand.New(rand.NewSource(*seed))
	scene, err := scenes.NewMonolithScene(scenes.Options{
		Config:        cfg,
		Pools:         particle.DefaultPoolSpecs(),
		Rand:          rng,
		Images:        newSolidImages(rng),
		StartProgress: *progress,
		Width:         w,
		Height:        h * 2,
	})
	if err != nil {
		return err
	}
	defer scene.Close()

	p := &Preview{screen: screen, scene: scene, last: time.Now()}
	p.resize()
	p.loop()
	return nil
}

func (p *Preview) resize() {
	p.width, p.height = p.screen.Size()
	p.cells = make([]cell, p.width*p.height)
	// 终端字符格约为 1:2，按两倍行数投影保持宽高比
	p.scene.SetViewport(p.width, p.height*2)
	p.screen.Sync()
}

func (p *Preview) loop() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !p.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(p.last).Seconds()
			p.last = now

			scroll := p.scene.Scroll()
			if p.playing {
				scroll.Jump(scroll.Progress() + autoPlaySpeed*dt)
				if scroll.Progress() >= 1 {
					p.playing = false
				}
			}
			scroll.Advance(dt)
			p.scene.Step(dt)
			p.draw()
		}
	}
}

func (p *Preview) handleInput(ev tcell.Event) bool {
	scroll := p.scene.Scroll()
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown:
			scroll.ScrollBy(config.KeyScrollStep)
		case tcell.KeyUp:
			scroll.ScrollBy(-config.KeyScrollStep)
		case tcell.KeyPgDn:
			scroll.ScrollBy(config.PageScrollStep)
		case tcell.KeyPgUp:
			scroll.ScrollBy(-config.PageScrollStep)
		case tcell.KeyHome:
			scroll.ScrollTo(0)
		case tcell.KeyEnd:
			scroll.ScrollTo(1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'j':
				scroll.ScrollBy(config.KeyScrollStep)
			case 'k':
				scroll.ScrollBy(-config.KeyScrollStep)
			case 'g':
				scroll.ScrollTo(0)
			case 'G':
				scroll.ScrollTo(1)
			case ' ':
				p.playing = !p.playing
			}
		}
	case *tcell.EventResize:
		p.resize()
	}
	return true
}

func (p *Preview) draw() {
	for i := range p.cells {
		p.cells[i] = cell{}
	}

	items := p.scene.Render().Collect(float64(p.width), float64(p.height*2))
	p.sprites = len(items)
	for i := range items {
		it := &items[i]
		p.splat(it.Corners, it.Opacity, it.Additive)
	}

	p.screen.Clear()
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			c := p.cells[y*p.width+x]
			total := c.normal + c.additive
			if total <= 0.02 {
				continue
			}
			idx := int(total * float64(len(ramp)-1))
			if idx >= len(ramp) {
				idx = len(ramp) - 1
			}
			p.screen.SetContent(x, y, ramp[idx], nil, tcell.StyleDefault.Foreground(shade(c)))
		}
	}
	p.drawStatus()
	p.screen.Show()
}

// splat 把精灵覆盖的字符格累加上透明度
func (p *Preview) splat(corners [4][2]float64, opacity float64, additive bool) {
	r := image.Rect(
		int(min4(corners, 0)), int(min4(corners, 1)/2),
		int(max4(corners, 0))+1, int(max4(corners, 1)/2)+1,
	).Intersect(image.Rect(0, 0, p.width, p.height))
	if r.Empty() {
		return
	}
	// 大精灵（背景、面板）按面积摊薄，避免铺满整个屏幕
	area := float64(r.Dx() * r.Dy())
	weight := opacity
	if area > 4 {
		weight = opacity * 4 / area
		if weight < opacity*0.15 {
			weight = opacity * 0.15
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := &p.cells[y*p.width+x]
			if additive {
				c.additive += weight
			} else {
				c.normal += weight
			}
		}
	}
}

// shade 加法混合的精灵（光效）显示为绿色，普通精灵显示为灰色
func shade(c cell) tcell.Color {
	if c.additive >= c.normal {
		g := int32(120 + 135*clamp01(c.additive))
		return tcell.NewRGBColor(g/3, g, g/2)
	}
	v := int32(80 + 120*clamp01(c.normal))
	return tcell.NewRGBColor(v, v, v)
}

func (p *Preview) drawStatus() {
	st := p.scene.State()
	status := fmt.Sprintf(" p=%.3f target=%.3f  %s  sprites=%d ", st.Progress, p.scene.Scroll().Target(), st.Phase, p.sprites)
	if p.playing {
		status += " ▶"
	}
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range []rune(status) {
		if i >= p.width {
			break
		}
		p.screen.SetContent(i, p.height-1, r, nil, style)
	}
}

func min4(c [4][2]float64, axis int) float64 {
	m := c[0][axis]
	for _, v := range c[1:] {
		m = min(m, v[axis])
	}
	return m
}

func max4(c [4][2]float64, axis int) float64 {
	m := c[0][axis]
	for _, v := range c[1:] {
		m = max(m, v[axis])
	}
	return m
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
