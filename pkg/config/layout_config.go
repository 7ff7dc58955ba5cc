package config

// 布局配置常量
// 本文件定义窗口尺寸、滚动手感等编译期常量；场景参数见 scene_config.go

// Window Configuration (窗口配置)
const (
	// WindowWidth 默认窗口宽度（像素）
	WindowWidth = 1280

	// WindowHeight 默认窗口高度（像素）
	WindowHeight = 720

	// WindowTitle 窗口标题
	WindowTitle = "Monolith"

	// FullscreenResetDelay F11 切换全屏后等待窗口稳定的帧数
	FullscreenResetDelay = 3
)

// Scroll Configuration (滚动配置)
// 整个序列对应 9 个视口高度的滚动距离
const (
	// ScrollLengthScreens 序列总长度（视口高度的倍数）
	ScrollLengthScreens = 9.0

	// WheelPixelsPerNotch 滚轮每格对应的像素距离
	WheelPixelsPerNotch = 100.0

	// WheelMultiplier 滚轮灵敏度倍率
	WheelMultiplier = 0.6

	// TouchMultiplier 触摸拖动倍率
	TouchMultiplier = 1.0

	// ScrollSmoothDuration 平滑滚动的时长（秒）
	ScrollSmoothDuration = 1.8

	// KeyScrollStep 方向键单次滚动的进度增量
	KeyScrollStep = 0.01

	// PageScrollStep PgUp/PgDn/空格单次滚动的进度增量（一个视口高度）
	PageScrollStep = 1.0 / ScrollLengthScreens
)

// Frame Configuration (帧配置)
const (
	// MaxFrameDelta 单帧最大时间步长（秒），长帧会被截断
	MaxFrameDelta = 0.1

	// AboutDistance 关于面板最终停留位置与相机的距离（世界单位）
	AboutDistance = 1000.0
)

// ScrollLengthPixels 返回给定视口高度下序列的像素长度
func ScrollLengthPixels(viewportHeight int) float64 {
	if viewportHeight <= 0 {
		viewportHeight = WindowHeight
	}
	return ScrollLengthScreens * float64(viewportHeight)
}
