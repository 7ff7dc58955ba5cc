package systems

import (
	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/timeline"
)

// FrameDriver 每帧的调度顺序
//
//  1. 截断帧间隔
//  2. 应用时间轴目标（相机、舞台、字符流、门户、隧道）
//  3. 推进处于激活状态的效果集合
//
// 绘制由场景的 Draw 调用 RenderSystem 完成。
type FrameDriver struct {
	Camera *CameraSystem
	Stage  *StageSystem
	Matrix *MatrixSystem
	Portal *PortalSystem
	Tunnel *TunnelSystem

	frames int
}

// Frames 已执行的帧数
func (d *FrameDriver) Frames() int {
	return d.frames
}

// Tick 执行一帧
//
// 参数:
//   - st: 本帧进度对应的动画状态
//   - dt: 帧间隔（秒），超过 MaxFrameDelta 的部分被丢弃
//   - elapsed: 场景运行总时间（秒）
func (d *FrameDriver) Tick(st timeline.AnimationState, dt, elapsed float64) {
	dt = clampDelta(dt, config.MaxFrameDelta)
	d.frames++

	if d.Camera != nil {
		d.Camera.Apply(st)
	}
	if d.Stage != nil {
		d.Stage.Apply(st)
	}
	if d.Matrix != nil {
		d.Matrix.Apply(st)
	}
	if d.Portal != nil {
		d.Portal.Apply(st)
	}
	if d.Tunnel != nil {
		d.Tunnel.Apply(st)
	}

	if st.GlyphActive && d.Matrix != nil {
		d.Matrix.Update(dt)
	}
	if st.PortalActive && d.Portal != nil {
		d.Portal.Update(dt, elapsed)
	}
	if st.TunnelActive && d.Tunnel != nil {
		d.Tunnel.Update(dt)
	}
}

// Reset 所有效果集合还原到创建状态
func (d *FrameDriver) Reset() {
	if d.Matrix != nil {
		d.Matrix.Reset()
	}
	if d.Portal != nil {
		d.Portal.Reset()
	}
	if d.Tunnel != nil {
		d.Tunnel.Reset()
	}
	d.frames = 0
}
