// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	// State 当前拖拽状态
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// PrevY 上一帧的纵坐标，用于计算每帧滚动量
	PrevY int
	// TouchID 当前跟踪的触摸ID（-1 表示鼠标）
	TouchID ebiten.TouchID
	// IsTouchInput 是否为触摸输入（区分触摸和鼠标）
	IsTouchInput bool
}

// DragManager 拖拽管理器
// 跟踪触摸/鼠标的纵向拖拽，转换为滚动量
type DragManager struct {
	info DragInfo
}

// NewDragManager 创建拖拽管理器
func NewDragManager() *DragManager {
	return &DragManager{info: DragInfo{State: DragStateNone, TouchID: -1}}
}

// Update 更新拖拽状态（每帧调用一次）
func (dm *DragManager) Update() {
	currentTouchIDs := ebiten.AppendTouchIDs(nil)
	dm.info.PrevY = dm.info.CurrentY

	switch dm.info.State {
	case DragStateNone:
		dm.checkDragStart()

	case DragStateStarted:
		dm.info.State = DragStateDragging
		dm.updateCurrentPosition(currentTouchIDs)

	case DragStateDragging:
		if dm.checkDragEnd(currentTouchIDs) {
			dm.info.State = DragStateEnded
		} else {
			dm.updateCurrentPosition(currentTouchIDs)
		}

	case DragStateEnded:
		// 结束状态只持续一帧，下一帧重置
		dm.Reset()
	}
}

// checkDragStart 检测拖拽开始，优先检测触摸输入
func (dm *DragManager) checkDragStart() {
	justPressedTouchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(justPressedTouchIDs) > 0 {
		touchID := justPressedTouchIDs[0]
		x, y := ebiten.TouchPosition(touchID)
		dm.begin(x, y, touchID, true)
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		dm.begin(x, y, -1, false)
	}
}

func (dm *DragManager) begin(x, y int, id ebiten.TouchID, touch bool) {
	dm.info = DragInfo{
		State:        DragStateStarted,
		StartX:       x,
		StartY:       y,
		CurrentX:     x,
		CurrentY:     y,
		PrevY:        y,
		TouchID:      id,
		IsTouchInput: touch,
	}
}

// checkDragEnd 检测拖拽结束
func (dm *DragManager) checkDragEnd(currentTouchIDs []ebiten.TouchID) bool {
	if dm.info.IsTouchInput {
		for _, id := range currentTouchIDs {
			if id == dm.info.TouchID {
				return false
			}
		}
		return true
	}
	return !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// updateCurrentPosition 更新当前位置
func (dm *DragManager) updateCurrentPosition(currentTouchIDs []ebiten.TouchID) {
	if dm.info.IsTouchInput {
		for _, id := range currentTouchIDs {
			if id == dm.info.TouchID {
				dm.info.CurrentX, dm.info.CurrentY = ebiten.TouchPosition(id)
				return
			}
		}
		return
	}
	dm.info.CurrentX, dm.info.CurrentY = ebiten.CursorPosition()
}

// Reset 重置拖拽状态
func (dm *DragManager) Reset() {
	dm.info = DragInfo{
		State:   DragStateNone,
		TouchID: -1,
	}
}

// GetState 获取当前拖拽状态
func (dm *DragManager) GetState() DragState {
	return dm.info.State
}

// IsDragging 是否正在拖拽
func (dm *DragManager) IsDragging() bool {
	return dm.info.State == DragStateDragging
}

// FrameDeltaY 本帧的纵向移动量（像素），仅在拖拽中非零
// 手指上滑（dy < 0）对应向前滚动
func (dm *DragManager) FrameDeltaY() int {
	if dm.info.State != DragStateDragging {
		return 0
	}
	return dm.info.CurrentY - dm.info.PrevY
}
