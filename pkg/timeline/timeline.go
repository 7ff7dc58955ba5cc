package timeline

import (
	"fmt"

	"github.com/decker502/monolith/pkg/components"
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/utils"
)

// Timeline 滚动时间轴
//
// 构造后只读，Evaluate 可以在任意 p 上以任意顺序调用。
type Timeline struct {
	phases []Phase

	camX, camY, camZ *track
	backdrop         *track
	monolith         *track
	monolithScale    *track
	slit             *track
	glyphReveal      *track
	glyphFade        *track

	portalReveal *track
	cloud        *track
	spark        *track
	ray          *track
	portalFade   *track
	spread       *track
	offsetZ      *track

	tunnel *track
	about  *track
	aboutZ *track
}

// New 创建时间轴，阶段无效时返回错误
func New(phases []Phase, cfg config.SceneConfig) (*Timeline, error) {
	if err := validatePhases(phases); err != nil {
		return nil, fmt.Errorf("invalid timeline: %w", err)
	}
	tl := &Timeline{phases: append([]Phase(nil), phases...)}
	tl.build(cfg)
	return tl, nil
}

// NewDefault 使用配置中的阶段边界创建时间轴
func NewDefault(cfg config.SceneConfig) (*Timeline, error) {
	return New(DefaultPhases(cfg.Phases), cfg)
}

// Phases 返回阶段列表的副本
func (tl *Timeline) Phases() []Phase {
	return append([]Phase(nil), tl.phases...)
}

// PhaseAt 返回 p 所在的阶段（p 先截断到 [0,1]）
func (tl *Timeline) PhaseAt(p float64) Phase {
	p = utils.Clamp01(p)
	for _, ph := range tl.phases {
		if ph.Contains(p) {
			return ph
		}
	}
	return tl.phases[len(tl.phases)-1]
}

func (tl *Timeline) start(id PhaseID) float64 { return tl.phases[id].Start }
func (tl *Timeline) end(id PhaseID) float64 { return tl.phases[id].End }

func (tl *Timeline) build(cfg config.SceneConfig) {
	var (
		linear    = utils.EaseLinear
		p1InOut   = utils.EaseInOutQuad
		p1Out     = utils.EaseOutQuad
		p1In      = utils.EaseInQuad
		p2Out     = utils.EaseOutCubic
		p2In      = utils.EaseInCubic
		portal    = cfg.Portal.Position
		approachX = portal.X() * 0.4
		approachY = portal.Y() * 0.4
	)

	s, e := tl.start, tl.end

	// 相机：推进 → 停留 → 接近门户 → 穿过门户 → 停在关于面板前
	tl.camX = newTrack(0).
		to(s(PhaseApproach), e(PhaseApproach), approachX, p1InOut).
		to(s(PhaseTunnel), e(PhaseTunnel), portal.X(), p2In)
	tl.camY = newTrack(0).
		to(s(PhaseApproach), e(PhaseApproach), approachY, p1InOut).
		to(s(PhaseTunnel), e(PhaseTunnel), portal.Y(), p2In)
	tl.camZ = newTrack(cfg.Camera.StartZ).
		to(s(PhaseDolly), e(PhaseDolly), cfg.Camera.StartZ-150, p1InOut).
		to(s(PhaseGlyphFadeIn), e(PhaseGlyphFadeIn), cfg.Camera.StartZ-300, p2Out).
		to(s(PhaseApproach), e(PhaseApproach), 450, p1InOut).
		to(s(PhaseTunnel), e(PhaseTunnel), portal.Z()+50, p2In).
		to(s(PhaseAbout), e(PhaseAbout), cfg.About.EndZ+config.AboutDistance, p2Out)

	// 舞台
	tl.backdrop = newTrack(1).
		to(s(PhaseDim), e(PhaseDim), 0.75, p2Out).
		to(s(PhaseFly), e(PhaseFly), 0.3, p2Out).
		to(s(PhaseFade), e(PhaseFade), 0, p2Out)
	tl.monolith = newTrack(1).
		to(s(PhaseApproach), e(PhaseApproach), 0, p2Out)
	tl.monolithScale = newTrack(1).
		to(s(PhaseDolly), e(PhaseDolly), 1.08, p1InOut).
		to(s(PhaseApproach), e(PhaseApproach), 2.2, p1InOut)
	tl.slit = newTrack(0).
		to(s(PhaseGlyphFadeIn), e(PhaseGlyphFadeIn), 0.7, p2Out).
		to(s(PhaseApproach), e(PhaseApproach), 0, p2Out)

	// 矩阵字符流
	tl.glyphReveal = newTrack(0).
		to(s(PhaseGlyphFadeIn), e(PhaseGlyphFadeIn), 1, p1Out)
	tl.glyphFade = newTrack(1).
		to(s(PhasePortal), e(PhasePortal), 0, p2Out)

	// 门户：强度为相对池 baseOpacity 的倍率，接近阶段黑云、火花和光线增强
	tl.portalReveal = newTrack(0).
		to(s(PhasePortal), e(PhasePortal), 1, p2Out)
	tl.cloud = newTrack(1).
		to(s(PhaseApproach), e(PhaseApproach), CloudBoost, linear)
	tl.spark = newTrack(1).
		to(s(PhaseApproach), e(PhaseApproach), SparkBoost, p1In)
	tl.ray = newTrack(1).
		to(s(PhaseApproach), e(PhaseApproach), RayBoost, linear)
	tl.portalFade = newTrack(1).
		to(s(PhaseFade), e(PhaseFade), 0, p2Out)
	tl.spread = newTrack(1).
		to(s(PhaseFade), e(PhaseFade), 3, p2Out)
	tl.offsetZ = newTrack(0).
		to(s(PhaseTunnel), e(PhaseTunnel), cfg.Portal.PushZ, p2In)

	// 隧道：进入隧道阶段的前四分之一内渐显，消散阶段淡出
	tunnelIn := s(PhaseTunnel) + (e(PhaseTunnel)-s(PhaseTunnel))*0.25
	tl.tunnel = newTrack(0).
		to(s(PhaseTunnel), tunnelIn, 1, p2Out).
		to(s(PhaseFade), e(PhaseFade), 0, p2Out)

	// 关于面板
	tl.about = newTrack(0).
		to(s(PhaseAbout), e(PhaseAbout), 1, p2Out)
	tl.aboutZ = newTrack(cfg.About.StartZ).
		to(s(PhaseAbout), e(PhaseAbout), cfg.About.EndZ, p2Out)
}

// Evaluate 计算 p 处的动画状态
//
// p 截断到 [0,1]，NaN 视为 0。不修改接收者，不会 panic。
func (tl *Timeline) Evaluate(p float64) AnimationState {
	p = utils.Clamp01(p)
	s := tl.start

	st := AnimationState{
		Progress: p,
		Phase:    tl.PhaseAt(p).ID,

		CameraDolly:  p < s(PhaseGlyphFadeIn),
		GlyphActive:  p >= s(PhaseGlyphFadeIn) && p < s(PhaseApproach),
		PortalActive: p >= s(PhasePortal) && p < s(PhaseAbout),
		TunnelActive: p >= s(PhaseTunnel) && p < s(PhaseAbout),
		Dispersing:   p >= s(PhaseFade) && p < s(PhaseAbout),
		AboutActive:  p >= s(PhaseAbout),
	}

	st.Camera[0] = tl.camX.at(p)
	st.Camera[1] = tl.camY.at(p)
	st.Camera[2] = tl.camZ.at(p)

	st.BackdropOpacity = tl.backdrop.at(p)
	st.MonolithOpacity = tl.monolith.at(p)
	st.MonolithScale = tl.monolithScale.at(p)
	st.SlitOpacity = tl.slit.at(p)
	st.StageVisible = !st.AboutActive

	switch {
	case p >= s(PhaseFly):
		st.GlyphPhase = components.GlyphFlying
	case p >= s(PhaseFloat):
		st.GlyphPhase = components.GlyphFloating
	}
	st.GlyphReveal = tl.glyphReveal.at(p)
	st.GlyphFade = tl.glyphFade.at(p)
	st.FloatProgress = tl.phases[PhaseFloat].Progress(p)
	st.FlyProgress = tl.phases[PhaseFly].Progress(p)

	fade := tl.portalFade.at(p)
	st.Portal = PortalTargets{
		Reveal:     tl.portalReveal.at(p),
		DarkCloud:  tl.cloud.at(p) * fade,
		Dust:       fade,
		Spark:      tl.spark.at(p) * fade,
		SparkTrail: fade,
		Glyph:      fade,
		LightRay:   tl.ray.at(p) * fade,
		CenterGlow: fade,
		Vortex:     fade,
		Rings:      fade,
		Spread:     tl.spread.at(p),
		OffsetZ:    tl.offsetZ.at(p),
	}

	st.TunnelOpacity = tl.tunnel.at(p)
	st.AboutOpacity = tl.about.at(p)
	st.AboutZ = tl.aboutZ.at(p)
	return st
}
