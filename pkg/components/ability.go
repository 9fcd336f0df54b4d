package components

import "github.com/gonewx/pigeondash/pkg/utils"

// AbilityPhase 冲刺能力状态机的阶段
//
//	Idle ──按下──▶ Charging ──松开──▶ Dashing ──计时结束──▶ Idle
//
// DashEffect 是独立的计时状态：在松开时开启，比 Dashing 持续更久，
// 可能被核爆提前终止。
type AbilityPhase int

const (
	AbilityIdle AbilityPhase = iota
	AbilityCharging
	AbilityDashing
)

// String 便于日志输出
func (p AbilityPhase) String() string {
	switch p {
	case AbilityCharging:
		return "charging"
	case AbilityDashing:
		return "dashing"
	default:
		return "idle"
	}
}

// ChargeState 蓄力数据（仅在 Charging 阶段有效）
type ChargeState struct {
	// Direction 指向瞄准点的单位向量，蓄力期间每帧更新
	Direction utils.Vec2
	// Power 累计蓄力，内部不封顶，消耗时限制到 [0,1]
	Power float64
}

// Level 返回限制到 [0,1] 的蓄力值
func (c ChargeState) Level() float64 {
	return utils.Clamp(c.Power, 0, 1)
}

// DashState 冲刺数据（仅在 Dashing 阶段有效）
type DashState struct {
	// Power 方向 × 蓄力值
	Power utils.Vec2
	// Remaining 剩余时间（秒）
	Remaining float64
}

// DashEffect 冲刺后的免伤 + 击杀窗口
type DashEffect struct {
	Direction utils.Vec2
	Power     float64
	Remaining float64
	// Combo 本窗口内的连续击杀数
	Combo uint32
}

// AbilityComponent 飞行者的能力状态
type AbilityComponent struct {
	Phase  AbilityPhase
	Charge ChargeState
	Dash   DashState

	Effect       DashEffect
	EffectActive bool

	// Cooldown 距离允许再次蓄力的剩余时间
	Cooldown float64
}

// IsCharging 是否在蓄力
func (a *AbilityComponent) IsCharging() bool {
	return a.Phase == AbilityCharging
}

// IsDashing 是否在冲刺
func (a *AbilityComponent) IsDashing() bool {
	return a.Phase == AbilityDashing
}

// ClearEffect 结束冲刺效果窗口
func (a *AbilityComponent) ClearEffect() {
	a.Effect = DashEffect{}
	a.EffectActive = false
}
