package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a top-level scene driven by the app loop.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，场景在程序退出或被替换时释放资源
//
// 实现此接口的场景会在以下时机被调用 Close()：
//   - 窗口关闭
//   - SceneManager 切换到另一个场景
type Closer interface {
	Close() error
}

// Resizer 是一个可选接口，场景需要知道逻辑视口尺寸时实现
type Resizer interface {
	// SetViewport 在视口尺寸变化时调用
	SetViewport(width, height int)
}
