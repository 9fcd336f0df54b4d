package systems

import (
	"log"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/entities"
	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// AbilitySystem 冲刺能力状态机
//
// 阶段转换:
//   - Idle → Charging: 冲刺键按下沿（且冷却结束）
//   - Charging → Dashing: 冲刺键松开沿，同时开启 DashEffect
//   - Dashing → Idle: 冲刺计时结束，目标速度回落到水平速度上限
//   - DashEffect 独立计时，满蓄力下冲从空中落地时转换为核爆（见 ResolveLanding）
//
// 没有飞行者时所有操作都是空操作。
type AbilitySystem struct {
	em  *ecs.EntityManager
	cfg *config.GameConfig
	bus *gameplay.EventBus
}

// NewAbilitySystem 创建能力系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 模拟参数
//   - bus: 事件总线（发布冲刺、核爆事件），可以为 nil
func NewAbilitySystem(em *ecs.EntityManager, cfg *config.GameConfig, bus *gameplay.EventBus) *AbilitySystem {
	return &AbilitySystem{em: em, cfg: cfg, bus: bus}
}

// Update 推进状态机一帧
func (s *AbilitySystem) Update(deltaTime float64, in gameplay.InputIntent) {
	id, ok := entities.FindFlier(s.em)
	if !ok {
		return
	}
	ability, ok := ecs.GetComponent[*components.AbilityComponent](s.em, id)
	if !ok {
		return
	}
	body, ok := ecs.GetComponent[*components.BodyComponent](s.em, id)
	if !ok {
		return
	}

	if ability.Cooldown > 0 {
		ability.Cooldown = max(ability.Cooldown-deltaTime, 0)
	}
	s.tickEffect(ability, deltaTime)

	switch ability.Phase {
	case components.AbilityIdle:
		if in.DashPressed && ability.Cooldown <= 0 {
			ability.Phase = components.AbilityCharging
			ability.Charge = components.ChargeState{
				Direction: in.Aim.Sub(body.Position).NormalizeOrZero(),
			}
			body.TargetVelocity = utils.Vec2Zero
		}

	case components.AbilityCharging:
		if !in.DashHeld {
			s.release(id, ability)
			return
		}
		if dir := in.Aim.Sub(body.Position).NormalizeOrZero(); !dir.IsZero() {
			ability.Charge.Direction = dir
		}
		ability.Charge.Power += deltaTime / s.cfg.ChargeDuration

	case components.AbilityDashing:
		body.TargetVelocity = ability.Dash.Power.Scale(s.cfg.DashSpeed)
		ability.Dash.Remaining -= deltaTime
		if ability.Dash.Remaining <= 0 {
			body.TargetVelocity = ability.Dash.Power.NormalizeOrZero().Scale(s.cfg.PlayerMaxXSpeed)
			ability.Phase = components.AbilityIdle
			ability.Dash = components.DashState{}
			ability.Cooldown = s.cfg.AbilityCooldown
		}
	}
}

// tickEffect 推进冲刺效果计时
func (s *AbilitySystem) tickEffect(ability *components.AbilityComponent, deltaTime float64) {
	if !ability.EffectActive {
		return
	}
	ability.Effect.Remaining -= deltaTime
	if ability.Effect.Remaining <= 0 {
		ability.ClearEffect()
	}
}

// release 松开蓄力：开始冲刺并开启效果窗口（替换尚未结束的旧窗口）
func (s *AbilitySystem) release(id ecs.EntityID, ability *components.AbilityComponent) {
	level := ability.Charge.Level()
	dir := ability.Charge.Direction

	ability.Phase = components.AbilityDashing
	ability.Dash = components.DashState{
		Power:     dir.Scale(level),
		Remaining: s.cfg.DashDuration,
	}
	ability.Effect = components.DashEffect{
		Direction: dir,
		Power:     level,
		Remaining: s.cfg.DashImmunityDuration * level,
	}
	ability.EffectActive = ability.Effect.Remaining > 0
	ability.Charge = components.ChargeState{}

	log.Printf("[AbilitySystem] 冲刺释放: 实体=%d, 方向=(%.2f, %.2f), 蓄力=%.2f", id, dir.X, dir.Y, level)
	if s.bus != nil {
		s.bus.Publish(gameplay.EventDashReleased, gameplay.DashReleasedPayload{Direction: dir, Power: level})
	}
}

// ResolveLanding 核爆判定
// 必须在 LocomotionSystem 之后调用，读取本帧积分后的位置。
// 条件: 冲刺效果有效、方向向下、满蓄力、飞行者本帧从空中落地。
// 已经站在地面上释放的冲刺不会触发。
// 满足时在飞行者位置生成核爆，并立即结束冲刺与冲刺效果。
//
// 返回:
//   - ecs.EntityID: 生成的核爆实体，未触发时为 InvalidEntity
func (s *AbilitySystem) ResolveLanding() ecs.EntityID {
	id, ok := entities.FindFlier(s.em)
	if !ok {
		return ecs.InvalidEntity
	}
	ability, ok := ecs.GetComponent[*components.AbilityComponent](s.em, id)
	if !ok || !ability.EffectActive {
		return ecs.InvalidEntity
	}
	body, ok := ecs.GetComponent[*components.BodyComponent](s.em, id)
	if !ok {
		return ecs.InvalidEntity
	}

	effect := ability.Effect
	if effect.Direction.Y >= 0 || effect.Power < 1 {
		return ecs.InvalidEntity
	}
	ground, ok := ecs.GetComponent[*components.GroundStateComponent](s.em, id)
	if !ok || !ground.JustLanded {
		return ecs.InvalidEntity
	}

	nukeID, err := entities.NewNukeEntity(s.em, s.cfg, body.Position, effect.Combo)
	if err != nil {
		log.Printf("[AbilitySystem] 生成核爆失败: %v", err)
		return ecs.InvalidEntity
	}

	ability.Phase = components.AbilityIdle
	ability.Dash = components.DashState{}
	ability.ClearEffect()
	ability.Cooldown = s.cfg.AbilityCooldown

	log.Printf("[AbilitySystem] 核爆触发: 位置=(%.1f, %.1f), 继承连击=%d", body.Position.X, body.Position.Y, effect.Combo)
	if s.bus != nil {
		s.bus.Publish(gameplay.EventNukeSpawned, gameplay.NukeSpawnedPayload{
			Entity:   nukeID,
			Position: body.Position,
			Radius:   s.cfg.NukeRadius,
		})
	}
	return nukeID
}
