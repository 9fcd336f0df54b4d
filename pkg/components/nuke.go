package components

// NukeComponent 核爆范围伤害
// 存在期间每帧对所有重叠的无人机造成伤害；寿命由 LifetimeComponent 控制
type NukeComponent struct {
	// Combo 本次核爆的连击数（继承触发它的冲刺效果）
	Combo uint32
}
