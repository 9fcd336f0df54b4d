package scenes

import (
	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/gonewx/pigeondash/pkg/ui"
	"github.com/gonewx/pigeondash/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 按键绑定
var (
	keysUp    = []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}
	keysDown  = []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}
	keysLeft  = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	keysRight = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	keysDash  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyShiftLeft}
)

// readInputIntent 轮询键盘、鼠标和触摸，折叠为 InputIntent
// 瞄准点取指针位置（转换为世界坐标）；边沿由 Simulation 推导
func readInputIntent(cam utils.Camera) gameplay.InputIntent {
	pointer := ui.GetPointerState()
	dir := utils.AxisVector(
		ui.AnyKeyPressed(keysUp...),
		ui.AnyKeyPressed(keysDown...),
		ui.AnyKeyPressed(keysLeft...),
		ui.AnyKeyPressed(keysRight...),
	)
	held := pointer.Held || ui.AnyKeyPressed(keysDash...)
	return buildInputIntent(dir, held, float64(pointer.X), float64(pointer.Y), cam)
}

// buildInputIntent 由已折叠的输入构造意图
func buildInputIntent(dir utils.Vec2, dashHeld bool, screenX, screenY float64, cam utils.Camera) gameplay.InputIntent {
	return gameplay.InputIntent{
		Direction: dir,
		DashHeld:  dashHeld,
		Aim:       cam.ScreenToWorld(screenX, screenY),
	}
}
