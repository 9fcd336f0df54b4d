// Package ui 封装 ebiten 的输入读取与文本测量
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态
// 统一处理鼠标与触摸输入（触摸优先）
type PointerState struct {
	// Held 鼠标左键或任意触摸是否按住
	Held bool
	// X, Y 屏幕坐标（逻辑像素）
	X, Y int
	// IsTouch 当前指针是否来自触摸
	IsTouch bool
}

// 保存最后一次触摸位置（触摸松开后仍需要瞄准点）
var lastTouchX, lastTouchY int

// GetPointerState 获取指针的完整状态
func GetPointerState() PointerState {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		lastTouchX, lastTouchY = ebiten.TouchPosition(touchIDs[0])
		return PointerState{Held: true, X: lastTouchX, Y: lastTouchY, IsTouch: true}
	}

	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return PointerState{X: lastTouchX, Y: lastTouchY, IsTouch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		Held: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:    x,
		Y:    y,
	}
}

// AnyKeyPressed 任意一个键按住即返回 true
func AnyKeyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// AnyKeyJustPressed 任意一个键在本帧刚按下即返回 true
func AnyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
