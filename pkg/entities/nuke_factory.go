package entities

import (
	"fmt"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// NewNukeEntity 在指定位置创建核爆
// 核爆静止、不受重力，寿命到期后由 LifetimeSystem 回收
//
// 参数:
//   - em: 实体管理器
//   - cfg: 模拟参数（半径、持续时间）
//   - pos: 核爆中心
//   - combo: 继承的连击数
func NewNukeEntity(em *ecs.EntityManager, cfg *config.GameConfig, pos utils.Vec2, combo uint32) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil || cfg.NukeRadius <= 0 {
		return ecs.InvalidEntity, fmt.Errorf("nuke radius must be > 0")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.NukeComponent{Combo: combo})
	ecs.AddComponent(em, id, &components.BodyComponent{
		Position: pos,
		Radius:   cfg.NukeRadius,
	})
	ecs.AddComponent(em, id, &components.GroundStateComponent{
		State:         components.Grounded,
		GravityExempt: true,
	})
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: cfg.NukeDuration})

	return id, nil
}
