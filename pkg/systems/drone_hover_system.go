package systems

import (
	"math"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// DroneHoverSystem 无人机悬停
//
// 目标速度指向 "锚点 + 正弦摆动偏移"，大小与偏离量成正比，
// 被击退后会自动回到锚点附近。碰撞免疫期间不干预，让击退速度自然衰减。
type DroneHoverSystem struct {
	em      *ecs.EntityManager
	cfg     *config.GameConfig
	elapsed float64
}

// NewDroneHoverSystem 创建悬停系统
func NewDroneHoverSystem(em *ecs.EntityManager, cfg *config.GameConfig) *DroneHoverSystem {
	return &DroneHoverSystem{em: em, cfg: cfg}
}

// Update 更新所有悬停无人机的目标速度
func (s *DroneHoverSystem) Update(deltaTime float64) {
	s.elapsed += deltaTime

	ids := ecs.GetEntitiesWith2[*components.HoverComponent, *components.BodyComponent](s.em)
	for _, id := range ids {
		if ecs.HasComponent[*components.CollisionImmunityComponent](s.em, id) {
			continue
		}
		hover, _ := ecs.GetComponent[*components.HoverComponent](s.em, id)
		body, _ := ecs.GetComponent[*components.BodyComponent](s.em, id)

		body.TargetVelocity = s.desiredPosition(hover).Sub(body.Position).Scale(s.cfg.HoverStiffness)
	}
}

// desiredPosition 当前时刻的悬停目标位置
func (s *DroneHoverSystem) desiredPosition(hover *components.HoverComponent) utils.Vec2 {
	bob := s.cfg.HoverAmplitude * math.Sin(2*math.Pi*s.cfg.HoverFrequency*s.elapsed+hover.Phase)
	return hover.Anchor.Add(utils.NewVec2(0, bob))
}

// Reset 重置摆动时间
func (s *DroneHoverSystem) Reset() {
	s.elapsed = 0
}
