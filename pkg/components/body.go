package components

import "github.com/gonewx/pigeondash/pkg/utils"

// BodyComponent 运动学刚体（飞行者、无人机、核爆共用）
//
// 速度分为两份：TargetVelocity 是"意图速度"，由能力状态机和移动系统写入；
// CurrentVelocity 是平滑后真正用于位移的速度，只由 LocomotionSystem 写入。
type BodyComponent struct {
	Position        utils.Vec2
	CurrentVelocity utils.Vec2
	TargetVelocity  utils.Vec2
	// Radius 碰撞圆半径，必须 > 0
	Radius float64
}

// SetVelocity 同时设置当前速度与目标速度（击退、反弹时使用）
func (b *BodyComponent) SetVelocity(v utils.Vec2) {
	b.CurrentVelocity = v
	b.TargetVelocity = v
}
