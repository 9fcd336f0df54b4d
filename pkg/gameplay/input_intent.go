package gameplay

import "github.com/gonewx/pigeondash/pkg/utils"

// InputIntent 每帧由表现层提供的输入意图
// 原始键鼠轮询被折叠为方向向量 + 布尔意图
type InputIntent struct {
	// Direction 归一化的移动方向，无输入时为零向量
	Direction utils.Vec2
	// DashHeld 冲刺键是否按住
	DashHeld bool
	// Aim 瞄准点的世界坐标
	Aim utils.Vec2

	// DashPressed / DashReleased 按下与松开的边沿，由 Simulation 根据
	// 相邻两帧的 DashHeld 推导，调用方无需填写
	DashPressed  bool
	DashReleased bool
}

// WithEdges 根据上一帧的按住状态补全边沿
func (in InputIntent) WithEdges(prevHeld bool) InputIntent {
	in.DashPressed = in.DashHeld && !prevHeld
	in.DashReleased = !in.DashHeld && prevHeld
	return in
}
