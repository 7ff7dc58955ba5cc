package timeline

import (
	"math"
	"testing"

	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/components"
	"github.com/decker502/monolith/pkg/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTimeline(t *testing.T) (*Timeline, config.SceneConfig) {
	t.Helper()
	cfg := config.DefaultSceneConfig()
	tl, err := NewDefault(cfg)
	require.NoError(t, err)
	return tl, cfg
}

func TestDefaultPhases(t *testing.T) {
	phases := DefaultPhases(config.DefaultSceneConfig().Phases)
	require.Len(t, phases, 10)

	want := []struct {
		id         PhaseID
		start, end float64
	}{
		{PhaseDolly, 0, 0.10},
		{PhaseGlyphFadeIn, 0.10, 0.25},
		{PhaseDim, 0.25, 0.35},
		{PhaseFloat, 0.35, 0.45},
		{PhaseFly, 0.45, 0.55},
		{PhasePortal, 0.55, 0.65},
		{PhaseApproach, 0.65, 0.75},
		{PhaseTunnel, 0.75, 0.85},
		{PhaseFade, 0.85, 0.92},
		{PhaseAbout, 0.92, 1},
	}
	for i, w := range want {
		assert.Equal(t, w.id, phases[i].ID)
		assert.Equal(t, w.id.String(), phases[i].Name)
		assert.Equal(t, w.start, phases[i].Start)
		assert.Equal(t, w.end, phases[i].End)
	}
}

func TestNew_InvalidPhases(t *testing.T) {
	cfg := config.DefaultSceneConfig()

	tests := []struct {
		name   string
		mutate func([]Phase) []Phase
	}{
		{"缺少阶段", func(ph []Phase) []Phase { return ph[:9] }},
		{"不从 0 开始", func(ph []Phase) []Phase { ph[0].Start = 0.01; return ph }},
		{"不到 1 结束", func(ph []Phase) []Phase { ph[9].End = 0.99; return ph }},
		{"顺序错误", func(ph []Phase) []Phase { ph[2], ph[3] = ph[3], ph[2]; return ph }},
		{"区间反向", func(ph []Phase) []Phase { ph[4].End = ph[4].Start; ph[5].Start = ph[4].Start; return ph }},
		{"有间隙", func(ph []Phase) []Phase { ph[6].Start += 0.01; return ph }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phases := tt.mutate(DefaultPhases(cfg.Phases))
			_, err := New(phases, cfg)
			assert.Error(t, err)
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	tl, _ := newTestTimeline(t)

	first := tl.Evaluate(0.5)
	// 经过其他位置后再次求值，结果必须完全一致
	tl.Evaluate(0.9)
	tl.Evaluate(0.1)
	second := tl.Evaluate(0.5)
	assert.Equal(t, first, second)

	for _, p := range []float64{0, 0.1, 0.33, 0.55, 0.8, 0.92, 1} {
		assert.Equal(t, tl.Evaluate(p), tl.Evaluate(p), "p=%v", p)
	}
}

func TestEvaluate_Boundaries(t *testing.T) {
	tl, _ := newTestTimeline(t)

	tests := []struct {
		p                                             float64
		dolly, glyph, portal, tunnel, disperse, about bool
		phase                                         PhaseID
	}{
		{0, true, false, false, false, false, false, PhaseDolly},
		{0.0999, true, false, false, false, false, false, PhaseDolly},
		{0.10, false, true, false, false, false, false, PhaseGlyphFadeIn},
		{0.55, false, true, true, false, false, false, PhasePortal},
		{0.6499, false, true, true, false, false, false, PhasePortal},
		{0.65, false, false, true, false, false, false, PhaseApproach},
		{0.75, false, false, true, true, false, false, PhaseTunnel},
		{0.85, false, false, true, true, true, false, PhaseFade},
		{0.9199, false, false, true, true, true, false, PhaseFade},
		{0.92, false, false, false, false, false, true, PhaseAbout},
		{1, false, false, false, false, false, true, PhaseAbout},
	}
	for _, tt := range tests {
		st := tl.Evaluate(tt.p)
		assert.Equal(t, tt.dolly, st.CameraDolly, "CameraDolly at %v", tt.p)
		assert.Equal(t, tt.glyph, st.GlyphActive, "GlyphActive at %v", tt.p)
		assert.Equal(t, tt.portal, st.PortalActive, "PortalActive at %v", tt.p)
		assert.Equal(t, tt.tunnel, st.TunnelActive, "TunnelActive at %v", tt.p)
		assert.Equal(t, tt.disperse, st.Dispersing, "Dispersing at %v", tt.p)
		assert.Equal(t, tt.about, st.AboutActive, "AboutActive at %v", tt.p)
		assert.Equal(t, tt.phase, st.Phase, "Phase at %v", tt.p)
	}
}

func TestEvaluate_Endpoints(t *testing.T) {
	tl, cfg := newTestTimeline(t)

	start := tl.Evaluate(0)
	assert.Equal(t, mgl64.Vec3{0, 0, cfg.Camera.StartZ}, start.Camera)
	assert.Equal(t, 1.0, start.BackdropOpacity)
	assert.Equal(t, 1.0, start.MonolithOpacity)
	assert.Equal(t, 1.0, start.MonolithScale)
	assert.Equal(t, 0.0, start.SlitOpacity)
	assert.Equal(t, 0.0, start.GlyphReveal)
	assert.Equal(t, 0.0, start.AboutOpacity)
	assert.Equal(t, 0.0, start.Portal.Reveal)
	assert.Equal(t, components.GlyphScrolling, start.GlyphPhase)

	end := tl.Evaluate(1)
	assert.Equal(t, 1.0, end.AboutOpacity)
	assert.Equal(t, cfg.About.EndZ, end.AboutZ)
	assert.Equal(t, 0.0, end.MonolithOpacity)
	assert.Equal(t, 0.0, end.TunnelOpacity)
	assert.Equal(t, 0.0, end.BackdropOpacity)
	assert.False(t, end.StageVisible)
	for _, kind := range particle.PortalKinds {
		assert.Equal(t, 0.0, end.Portal.Level(kind), "%s should be faded out", kind)
	}
	// 相机停在关于面板前 AboutDistance 处
	assert.InDelta(t, config.AboutDistance, end.Camera.Z()-end.AboutZ, 1e-9)
	assert.InDelta(t, cfg.Portal.Position.X(), end.Camera.X(), 1e-9)
	assert.InDelta(t, cfg.Portal.Position.Y(), end.Camera.Y(), 1e-9)
}

func TestEvaluate_Clamp(t *testing.T) {
	tl, _ := newTestTimeline(t)

	assert.Equal(t, tl.Evaluate(0), tl.Evaluate(-3))
	assert.Equal(t, tl.Evaluate(0), tl.Evaluate(math.NaN()))
	assert.Equal(t, tl.Evaluate(1), tl.Evaluate(7))
	assert.Equal(t, tl.Evaluate(1), tl.Evaluate(math.Inf(1)))
}

func TestEvaluate_CameraPath(t *testing.T) {
	tl, cfg := newTestTimeline(t)
	portal := cfg.Portal.Position

	tests := []struct {
		name string
		p    float64
		want mgl64.Vec3
	}{
		{"推进结束", 0.10, mgl64.Vec3{0, 0, 850}},
		{"字符显现结束", 0.25, mgl64.Vec3{0, 0, 700}},
		{"停留", 0.5, mgl64.Vec3{0, 0, 700}},
		{"接近门户", 0.75, mgl64.Vec3{portal.X() * 0.4, portal.Y() * 0.4, 450}},
		{"穿过门户", 0.85, mgl64.Vec3{portal.X(), portal.Y(), portal.Z() + 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tl.Evaluate(tt.p).Camera
			assert.True(t, got.ApproxEqualThreshold(tt.want, 1e-9), "camera at %v = %v, want %v", tt.p, got, tt.want)
		})
	}
}

func TestEvaluate_GlyphPhases(t *testing.T) {
	tl, _ := newTestTimeline(t)

	assert.Equal(t, components.GlyphScrolling, tl.Evaluate(0.3).GlyphPhase)
	assert.Equal(t, components.GlyphFloating, tl.Evaluate(0.35).GlyphPhase)
	assert.Equal(t, components.GlyphFlying, tl.Evaluate(0.45).GlyphPhase)

	st := tl.Evaluate(0.40)
	assert.InDelta(t, 0.5, st.FloatProgress, 1e-9)
	assert.Equal(t, 0.0, st.FlyProgress)
	assert.Equal(t, 1.0, st.GlyphReveal)
	assert.Equal(t, 1.0, st.GlyphFade)

	// 门户阶段结束时字符已完全淡出
	assert.Equal(t, 0.0, tl.Evaluate(0.65).GlyphFade)
}

func TestEvaluate_PortalTargets(t *testing.T) {
	tl, cfg := newTestTimeline(t)

	formed := tl.Evaluate(0.65)
	assert.Equal(t, 1.0, formed.Portal.Reveal)
	// 门户成形后各类别倍率为 1，实际亮度由池定义的 baseOpacity 决定
	for _, kind := range particle.PortalKinds {
		assert.InDelta(t, 1.0, formed.Portal.Level(kind), 1e-9, "%s", kind)
	}
	assert.Equal(t, 1.0, formed.Portal.Vortex)
	assert.Equal(t, 1.0, formed.Portal.Rings)
	assert.Equal(t, 1.0, formed.Portal.Spread)

	intense := tl.Evaluate(0.85)
	assert.InDelta(t, CloudBoost, intense.Portal.DarkCloud, 1e-9)
	assert.InDelta(t, SparkBoost, intense.Portal.Spark, 1e-9)
	assert.InDelta(t, RayBoost, intense.Portal.LightRay, 1e-9)
	assert.InDelta(t, 1.0, intense.Portal.Dust, 1e-9)
	assert.InDelta(t, cfg.Portal.PushZ, intense.Portal.OffsetZ, 1e-9)
	assert.InDelta(t, 1.0, intense.TunnelOpacity, 1e-9)

	// 默认 baseOpacity 下增强后的亮度与成形前的设计值一致
	specs := particle.DefaultPoolSpecs()
	assert.InDelta(t, 0.85, specs[particle.KindDarkCloud].BaseOpacity*intense.Portal.DarkCloud, 1e-9)
	assert.InDelta(t, 1.0, specs[particle.KindSpark].BaseOpacity*intense.Portal.Spark, 1e-9)
	assert.InDelta(t, 0.7, specs[particle.KindLightRay].BaseOpacity*intense.Portal.LightRay, 1e-9)

	dispersing := tl.Evaluate(0.9)
	assert.Greater(t, dispersing.Portal.Spread, 1.0)
	assert.LessOrEqual(t, dispersing.Portal.Spread, 3.0)
	assert.Less(t, dispersing.Portal.Dust, 1.0)
}

func TestEvaluate_OpacitiesInRange(t *testing.T) {
	tl, _ := newTestTimeline(t)

	for i := 0; i <= 1000; i++ {
		p := float64(i) / 1000
		st := tl.Evaluate(p)
		values := []float64{
			st.BackdropOpacity, st.MonolithOpacity, st.SlitOpacity, st.GlyphReveal, st.GlyphFade,
			st.Portal.Reveal, st.Portal.Dust, st.Portal.SparkTrail,
			st.Portal.Glyph, st.Portal.CenterGlow, st.Portal.Vortex, st.Portal.Rings,
			st.TunnelOpacity, st.AboutOpacity, st.FloatProgress, st.FlyProgress,
		}
		for j, v := range values {
			if v < 0 || v > 1 {
				t.Fatalf("value %d at p=%v out of [0,1]: %v", j, p, v)
			}
		}
		boosted := []struct {
			v, max float64
		}{
			{st.Portal.DarkCloud, CloudBoost},
			{st.Portal.Spark, SparkBoost},
			{st.Portal.LightRay, RayBoost},
		}
		for j, b := range boosted {
			if b.v < 0 || b.v > b.max+1e-12 {
				t.Fatalf("boosted level %d at p=%v out of [0,%v]: %v", j, p, b.max, b.v)
			}
		}
	}
}

func TestPhaseAt(t *testing.T) {
	tl, _ := newTestTimeline(t)
	assert.Equal(t, PhaseDolly, tl.PhaseAt(-1).ID)
	assert.Equal(t, PhaseDim, tl.PhaseAt(0.3).ID)
	assert.Equal(t, PhaseAbout, tl.PhaseAt(1).ID)
	assert.Equal(t, "PhaseID(42)", PhaseID(42).String())
}
