package components

// MaterialComponent 精灵的材质状态
type MaterialComponent struct {
	// Opacity 透明度，始终位于 [0,1]，请通过 SetOpacity 修改
	Opacity float64
	// Additive 是否使用加法混合（否则为普通 alpha 混合）
	Additive bool
	// Visible 为 false 时不参与渲染
	Visible bool
}

// SetOpacity 设置透明度并截断到 [0,1]，NaN 视为 0
func (m *MaterialComponent) SetOpacity(v float64) {
	switch {
	case v != v || v < 0:
		m.Opacity = 0
	case v > 1:
		m.Opacity = 1
	default:
		m.Opacity = v
	}
}
