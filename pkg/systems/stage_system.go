package systems

import (
	"github.com/decker502/monolith/pkg/entities"
	"github.com/decker502/monolith/pkg/timeline"
)

// StageSystem 应用舞台元素（背景、方尖碑、缝隙、关于面板）的时间轴目标
type StageSystem struct {
	stage *entities.Stage
}

// NewStageSystem 创建舞台系统
func NewStageSystem(stage *entities.Stage) *StageSystem {
	return &StageSystem{stage: stage}
}

// Apply 写入透明度、缩放和关于面板位置
func (s *StageSystem) Apply(st timeline.AnimationState) {
	stage := s.stage

	stage.Backdrop.SetOpacity(st.BackdropOpacity)

	stage.Monolith.SetVisible(st.StageVisible)
	stage.Monolith.SetOpacity(st.MonolithOpacity)
	stage.Monolith.Transform.SetScale(st.MonolithScale)

	stage.Slit.SetVisible(st.StageVisible)
	stage.Slit.SetOpacity(st.SlitOpacity)

	stage.About.SetVisible(st.AboutActive)
	stage.About.SetOpacity(st.AboutOpacity)
	stage.About.Transform.Position[2] = st.AboutZ
}
