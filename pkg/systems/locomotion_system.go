package systems

import (
	"log"
	"math"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// LocomotionSystem 运动积分
//
// 每个刚体每帧依次执行: 重力 → 摩擦 → 平滑 → 积分 → 落地判定 → 边界修正。
// 所有实体积分完成后碰撞系统才会运行。
type LocomotionSystem struct {
	em  *ecs.EntityManager
	cfg *config.GameConfig
	bus *gameplay.EventBus
}

// NewLocomotionSystem 创建运动系统
func NewLocomotionSystem(em *ecs.EntityManager, cfg *config.GameConfig, bus *gameplay.EventBus) *LocomotionSystem {
	return &LocomotionSystem{em: em, cfg: cfg, bus: bus}
}

// Update 积分所有刚体
func (s *LocomotionSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.BodyComponent](s.em) {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.em, id)
		ground, _ := ecs.GetComponent[*components.GroundStateComponent](s.em, id)
		ability, _ := ecs.GetComponent[*components.AbilityComponent](s.em, id)

		s.applyForces(body, ground, ability, deltaTime)
		SmoothVelocity(body, s.cfg.MovementSmoothing, deltaTime)
		body.Position = body.Position.Add(body.CurrentVelocity.Scale(deltaTime))

		if ground != nil && !ground.GravityExempt {
			if landed, impact := ApplyGrounding(body, ground, s.cfg.FloorY, s.cfg.FloorEpsilon); landed {
				log.Printf("[LocomotionSystem] 实体 %d 落地, 冲击速度=%.1f", id, impact)
				if s.bus != nil {
					s.bus.Publish(gameplay.EventLanded, gameplay.LandedPayload{Entity: id, ImpactVelocity: impact})
				}
			}
		}

		if ecs.HasComponent[*components.PlayerComponent](s.em, id) {
			s.applyBounds(body)
		}
	}
}

// applyForces 重力与摩擦（只修改目标速度）
// 冲刺期间目标速度由 AbilitySystem 强制写入，两者都不生效
func (s *LocomotionSystem) applyForces(body *components.BodyComponent, ground *components.GroundStateComponent,
	ability *components.AbilityComponent, deltaTime float64) {

	if ability != nil && ability.IsDashing() {
		return
	}

	grounded := ground != nil && ground.IsGrounded()
	exempt := ground != nil && ground.GravityExempt
	charging := ability != nil && ability.IsCharging()

	if !grounded && !exempt {
		multiplier := 1.0
		if charging {
			multiplier = s.cfg.ChargingGravityMultiplier
		}
		body.TargetVelocity.Y += s.cfg.Gravity * multiplier * deltaTime
	}

	friction := s.cfg.AirFriction
	if grounded {
		friction = s.cfg.GroundFriction
	}
	if charging {
		friction = max(friction, s.cfg.ChargingFriction)
	}
	body.TargetVelocity = body.TargetVelocity.Scale(math.Max(1-friction*deltaTime, 0))
}

// applyBounds 水平边界与天花板回拉（仅飞行者）
func (s *LocomotionSystem) applyBounds(body *components.BodyComponent) {
	if body.Position.X < -s.cfg.XLimit || body.Position.X > s.cfg.XLimit {
		body.Position.X = utils.Clamp(body.Position.X, -s.cfg.XLimit, s.cfg.XLimit)
		body.CurrentVelocity.X = 0
		body.TargetVelocity.X = 0
	}

	overstep := body.Position.Y - s.cfg.CeilingY
	if overstep > 0 {
		body.TargetVelocity.Y = utils.Clamp(-overstep*s.cfg.SpringForce, s.cfg.MaxPull, 0)
	}
}

// SmoothVelocity 当前速度向目标速度做线性插值
// 插值系数 min(smoothing*dt, 1)，保证不会越过目标
func SmoothVelocity(body *components.BodyComponent, smoothing, deltaTime float64) {
	t := math.Min(smoothing*deltaTime, 1)
	body.CurrentVelocity = body.CurrentVelocity.Lerp(body.TargetVelocity, t)
}

// ApplyGrounding 落地判定
//
// 位置不高于地面且正在下落（或静止）时: 吸附到地面、清零竖直速度并设为 Grounded；
// 高于地面 epsilon 以上时设为 Airborne。两者之间的滞回带内保持原状态。
// ground.JustLanded 记录本次调用的 landed 结果。
//
// 返回:
//   - landed: 本次调用是否发生了 空中→地面 的转换
//   - impact: 落地瞬间的竖直速度大小
func ApplyGrounding(body *components.BodyComponent, ground *components.GroundStateComponent, floorY, epsilon float64) (landed bool, impact float64) {
	ground.JustLanded = false
	if body.Position.Y <= floorY && body.CurrentVelocity.Y <= 0 {
		impact = math.Abs(body.CurrentVelocity.Y)
		body.Position.Y = floorY
		body.CurrentVelocity.Y = 0
		body.TargetVelocity.Y = 0
		if ground.State != components.Grounded {
			ground.State = components.Grounded
			ground.JustLanded = true
			return true, impact
		}
		return false, impact
	}

	if body.Position.Y > floorY+epsilon {
		ground.State = components.Airborne
	}
	return false, 0
}
