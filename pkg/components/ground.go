package components

// GroundState 落地状态
type GroundState int

const (
	// Airborne 在空中
	Airborne GroundState = iota
	// Grounded 在地面
	Grounded
)

// String 便于日志输出
func (s GroundState) String() string {
	if s == Grounded {
		return "grounded"
	}
	return "airborne"
}

// GroundStateComponent 落地状态组件
// State 只由 LocomotionSystem 的落地判定修改（初始生成除外）
type GroundStateComponent struct {
	State GroundState
	// GravityExempt 不受重力影响（悬停的无人机、核爆）
	GravityExempt bool
	// JustLanded 本帧是否发生了 空中→地面 的转换（每次落地判定都会重写）
	JustLanded bool
}

// IsGrounded 是否在地面
func (g *GroundStateComponent) IsGrounded() bool {
	return g.State == Grounded
}
