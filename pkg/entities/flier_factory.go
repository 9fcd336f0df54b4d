package entities

import (
	"fmt"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// NewFlierEntity 创建飞行者实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 模拟参数（半径、生命值）
//   - pos: 出生位置（世界坐标）
//
// 返回:
//   - ecs.EntityID: 创建的实体ID
//   - error: 参数无效时返回错误
func NewFlierEntity(em *ecs.EntityManager, cfg *config.GameConfig, pos utils.Vec2) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return ecs.InvalidEntity, fmt.Errorf("game config cannot be nil")
	}
	if cfg.PlayerRadius <= 0 {
		return ecs.InvalidEntity, fmt.Errorf("player radius must be > 0, got %.2f", cfg.PlayerRadius)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PlayerComponent{})
	ecs.AddComponent(em, id, &components.BodyComponent{
		Position: pos,
		Radius:   cfg.PlayerRadius,
	})
	ecs.AddComponent(em, id, &components.GroundStateComponent{State: components.Airborne})
	ecs.AddComponent(em, id, &components.AbilityComponent{Phase: components.AbilityIdle})
	ecs.AddComponent(em, id, components.NewHealth(cfg.PlayerHealth))
	ecs.AddComponent(em, id, &components.AppearanceComponent{Alpha: 1})

	return id, nil
}

// FindFlier 返回当前存活的飞行者；不存在时返回 false
func FindFlier(em *ecs.EntityManager) (ecs.EntityID, bool) {
	ids := ecs.GetEntitiesWith1[*components.PlayerComponent](em)
	if len(ids) == 0 {
		return ecs.InvalidEntity, false
	}
	return ids[0], true
}
