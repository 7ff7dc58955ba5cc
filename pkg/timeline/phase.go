// Package timeline 把滚动进度 p ∈ [0,1] 映射为整个场景的动画状态
//
// 时间轴由一组有序、首尾相接的阶段构成。Evaluate 是 p 的纯函数：
// 同一个 p 无论从哪个方向滚动到达，得到的状态都完全相同。
package timeline

import (
	"fmt"

	"github.com/decker502/monolith/pkg/config"
)

// PhaseID 阶段标识
type PhaseID int

const (
	PhaseDolly PhaseID = iota
	PhaseGlyphFadeIn
	PhaseDim
	PhaseFloat
	PhaseFly
	PhasePortal
	PhaseApproach
	PhaseTunnel
	PhaseFade
	PhaseAbout

	phaseCount
)

var phaseNames = [phaseCount]string{
	"dolly", "glyphFadeIn", "dim", "float", "fly",
	"portal", "approach", "tunnel", "fade", "about",
}

func (id PhaseID) String() string {
	if id >= 0 && id < phaseCount {
		return phaseNames[id]
	}
	return fmt.Sprintf("PhaseID(%d)", int(id))
}

// Phase 时间轴上的一个区间 [Start, End)，最后一个阶段包含 1
type Phase struct {
	ID    PhaseID
	Name  string
	Start float64
	End   float64
}

// Contains 判断 p 是否落在阶段内（左闭右开）
func (ph Phase) Contains(p float64) bool {
	return p >= ph.Start && p < ph.End
}

// Progress 阶段内的归一化进度
func (ph Phase) Progress(p float64) float64 {
	if p <= ph.Start {
		return 0
	}
	if p >= ph.End {
		return 1
	}
	return (p - ph.Start) / (ph.End - ph.Start)
}

// DefaultPhases 根据配置的阶段起点构造十个阶段
func DefaultPhases(pc config.PhaseConfig) []Phase {
	bounds := pc.Bounds()
	phases := make([]Phase, 0, phaseCount)
	for id := PhaseID(0); id < phaseCount; id++ {
		phases = append(phases, Phase{
			ID:    id,
			Name:  id.String(),
			Start: bounds[id],
			End:   bounds[id+1],
		})
	}
	return phases
}

// validatePhases 检查阶段按 ID 顺序排列、首尾相接并覆盖 [0,1]
func validatePhases(phases []Phase) error {
	if len(phases) != int(phaseCount) {
		return fmt.Errorf("timeline requires %d phases, got %d", phaseCount, len(phases))
	}
	if phases[0].Start != 0 {
		return fmt.Errorf("first phase must start at 0, got %v", phases[0].Start)
	}
	if phases[len(phases)-1].End != 1 {
		return fmt.Errorf("last phase must end at 1, got %v", phases[len(phases)-1].End)
	}
	for i, ph := range phases {
		if ph.ID != PhaseID(i) {
			return fmt.Errorf("phase %d has id %s, want %s", i, ph.ID, PhaseID(i))
		}
		if ph.End <= ph.Start {
			return fmt.Errorf("phase %s is empty or reversed: [%v, %v)", ph.ID, ph.Start, ph.End)
		}
		if i > 0 && ph.Start != phases[i-1].End {
			return fmt.Errorf("phase %s starts at %v but %s ends at %v", ph.ID, ph.Start, phases[i-1].ID, phases[i-1].End)
		}
	}
	return nil
}
