package timeline

import (
	"github.com/decker502/monolith/internal/particle"
	"github.com/decker502/monolith/pkg/utils"
)

// track 一条关键帧轨道，时间为绝对滚动进度
//
// eases[i] 作用于 keys[i] → keys[i+1] 这一段。
type track struct {
	keys  []particle.Keyframe
	eases []utils.Easing
}

func newTrack(initial float64) *track {
	return &track{keys: []particle.Keyframe{{Time: 0, Value: initial}}}
}

// to 在 [start, end] 内缓动到 value，start 之前保持上一个值
func (t *track) to(start, end, value float64, ease utils.Easing) *track {
	last := t.keys[len(t.keys)-1]
	if start > last.Time {
		t.keys = append(t.keys, particle.Keyframe{Time: start, Value: last.Value})
		t.eases = append(t.eases, utils.EaseLinear)
	}
	t.keys = append(t.keys, particle.Keyframe{Time: end, Value: value})
	t.eases = append(t.eases, ease)
	return t
}

// at 求轨道在 p 处的值；关键帧边界上取后一段的起点值
func (t *track) at(p float64) float64 {
	if p <= t.keys[0].Time {
		return t.keys[0].Value
	}
	for i := 0; i < len(t.keys)-1; i++ {
		k0, k1 := t.keys[i], t.keys[i+1]
		if p < k1.Time {
			r := utils.Progress(p, k0.Time, k1.Time)
			return utils.Lerp(k0.Value, k1.Value, t.eases[i](r))
		}
	}
	return t.keys[len(t.keys)-1].Value
}
