package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 场景接口（对局、结算等）
// 同一时刻只有一个场景的 Update/Draw 会被调用
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为距上一帧的真实时间（秒）
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口: 程序退出时保存状态（最高分、设置）
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
