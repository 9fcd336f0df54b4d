package systems

import (
	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/ecs"
)

// BlinkHiddenAlpha 闪烁"隐藏"帧的透明度
const BlinkHiddenAlpha = 0.3

// ImmunitySystem 推进碰撞免疫与闪烁计时
// 免疫结束时移除免疫和闪烁组件，并恢复完全不透明
type ImmunitySystem struct {
	em *ecs.EntityManager
}

// NewImmunitySystem 创建免疫系统
func NewImmunitySystem(em *ecs.EntityManager) *ImmunitySystem {
	return &ImmunitySystem{em: em}
}

// Update 推进所有免疫计时器
func (s *ImmunitySystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CollisionImmunityComponent](s.em) {
		immunity, _ := ecs.GetComponent[*components.CollisionImmunityComponent](s.em, id)
		immunity.Elapsed += deltaTime

		if immunity.Finished() {
			ecs.RemoveComponent[*components.CollisionImmunityComponent](s.em, id)
			ecs.RemoveComponent[*components.BlinkComponent](s.em, id)
			if appearance, ok := ecs.GetComponent[*components.AppearanceComponent](s.em, id); ok {
				appearance.Alpha = 1
			}
			continue
		}

		blink, ok := ecs.GetComponent[*components.BlinkComponent](s.em, id)
		if !ok || blink.Interval <= 0 {
			continue
		}
		blink.Elapsed += deltaTime
		for blink.Elapsed >= blink.Interval {
			blink.Elapsed -= blink.Interval
			blink.Visible = !blink.Visible
		}
		if appearance, ok := ecs.GetComponent[*components.AppearanceComponent](s.em, id); ok {
			if blink.Visible {
				appearance.Alpha = 1
			} else {
				appearance.Alpha = BlinkHiddenAlpha
			}
		}
	}
}
