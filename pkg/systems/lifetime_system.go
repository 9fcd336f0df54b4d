package systems

import (
	"log"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/ecs"
)

// LifetimeSystem 管理限时实体（核爆）的生命周期
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 推进所有生命周期计时器，标记过期实体待删除
//
// 返回:
//   - int: 本帧过期的实体数量
func (s *LifetimeSystem) Update(deltaTime float64) int {
	expired := 0
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		// 过期实体延迟到帧末统一删除
		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
			expired++
			if ecs.HasComponent[*components.NukeComponent](s.entityManager, id) {
				log.Printf("[LifetimeSystem] 核爆 %d 结束", id)
			}
		}
	}
	return expired
}

// Progress 返回实体生命周期进度 [0,1]，无生命周期组件时返回 0
func Progress(em *ecs.EntityManager, id ecs.EntityID) float64 {
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !ok || lifetime.MaxLifetime <= 0 {
		return 0
	}
	return min(lifetime.CurrentLifetime/lifetime.MaxLifetime, 1)
}
