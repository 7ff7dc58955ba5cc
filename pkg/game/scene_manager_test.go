package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.currentScene != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerSwitchTo verifies that SwitchTo correctly changes the active scene.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}

	sm.SwitchTo(mockScene)

	if sm.currentScene != mockScene {
		t.Error("SwitchTo did not set the current scene correctly")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerUpdateNoScene verifies that Update handles nil scene gracefully.
func TestSceneManagerUpdateNoScene(t *testing.T) {
	sm := NewSceneManager()
	// Don't set any scene, currentScene should be nil
	sm.Update(0.016) // Should not panic
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	// Create a dummy screen image
	screen := ebiten.NewImage(800, 600)
	sm.Draw(screen)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerDrawNoScene verifies that Draw handles nil scene gracefully.
func TestSceneManagerDrawNoScene(t *testing.T) {
	sm := NewSceneManager()
	screen := ebiten.NewImage(800, 600)
	// Don't set any scene, currentScene should be nil
	sm.Draw(screen) // Should not panic
}

// TestSceneManagerSwitchBetweenScenes verifies switching between multiple scenes.
func TestSceneManagerSwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	// Switch to scene1
	sm.SwitchTo(scene1)
	sm.Update(0.016)

	if !scene1.updateCalled {
		t.Error("Scene1's Update was not called")
	}
	if scene2.updateCalled {
		t.Error("Scene2's Update should not have been called yet")
	}

	// Switch to scene2
	sm.SwitchTo(scene2)
	sm.Update(0.016)

	if !scene2.updateCalled {
		t.Error("Scene2's Update was not called after switching")
	}
}

// closingScene 记录 Close 和 SetViewport 调用
type closingScene struct {
	MockScene
	closed        int
	width, height int
}

func (c *closingScene) Close() error {
	c.closed++
	return nil
}

func (c *closingScene) SetViewport(width, height int) {
	c.width, c.height = width, height
}

// TestSceneManagerClosesPreviousScene 切换场景时关闭旧场景
func TestSceneManagerClosesPreviousScene(t *testing.T) {
	sm := NewSceneManager()
	first := &closingScene{}
	second := &closingScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(first) // 重复切换到同一场景不关闭
	if first.closed != 0 {
		t.Errorf("first closed %d times before switch, want 0", first.closed)
	}

	sm.SwitchTo(second)
	if first.closed != 1 {
		t.Errorf("first closed %d times, want 1", first.closed)
	}

	sm.Close()
	if second.closed != 1 {
		t.Errorf("second closed %d times, want 1", second.closed)
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Close should clear the current scene")
	}
}

// TestSceneManagerViewport 视口尺寸转发给场景
func TestSceneManagerViewport(t *testing.T) {
	sm := NewSceneManager()
	sm.SetViewport(1280, 720) // 没有场景时只记录

	scene := &closingScene{}
	sm.SwitchTo(scene)
	if scene.width != 1280 || scene.height != 720 {
		t.Errorf("viewport on switch = %dx%d, want 1280x720", scene.width, scene.height)
	}

	sm.SetViewport(800, 600)
	if scene.width != 800 || scene.height != 600 {
		t.Errorf("viewport after resize = %dx%d, want 800x600", scene.width, scene.height)
	}
}
