package systems

import (
	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// MovementSystem 把方向输入转换为飞行者的目标速度
//
// 蓄力和冲刺期间由 AbilitySystem 接管目标速度，本系统不做任何修改。
type MovementSystem struct {
	em  *ecs.EntityManager
	cfg *config.GameConfig
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, cfg *config.GameConfig) *MovementSystem {
	return &MovementSystem{em: em, cfg: cfg}
}

// Update 按方向意图加速并限制目标速度
func (s *MovementSystem) Update(deltaTime float64, in gameplay.InputIntent) {
	ids := ecs.GetEntitiesWith3[
		*components.PlayerComponent,
		*components.BodyComponent,
		*components.AbilityComponent,
	](s.em)

	for _, id := range ids {
		ability, _ := ecs.GetComponent[*components.AbilityComponent](s.em, id)
		if ability.Phase != components.AbilityIdle {
			continue
		}
		body, _ := ecs.GetComponent[*components.BodyComponent](s.em, id)

		target := body.TargetVelocity
		target.X += in.Direction.X * s.cfg.PlayerXAcceleration * deltaTime
		target.Y += in.Direction.Y * s.cfg.PlayerYAcceleration * deltaTime
		target.X = utils.Clamp(target.X, -s.cfg.PlayerMaxXSpeed, s.cfg.PlayerMaxXSpeed)
		target.Y = utils.Clamp(target.Y, s.cfg.PlayerMinFallSpeed, s.cfg.PlayerMaxRiseSpeed)
		body.TargetVelocity = target
	}
}
