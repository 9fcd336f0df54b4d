package entities

import (
	"fmt"
	"math"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/types"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// NewWeakSpot 由方位推导弱点几何（方向、半尺寸、旋转）
//
// 参数:
//   - loc: 弱点方位
//   - width: 切线方向的宽度
//   - depth: 法线方向的厚度
func NewWeakSpot(loc types.WeakSpotLocation, width, depth float64) *components.WeakSpotComponent {
	rotation := loc.Rotation()
	sin, cos := math.Sincos(rotation)
	return &components.WeakSpotComponent{
		Location:    loc,
		Direction:   loc.Direction(),
		HalfExtents: utils.NewVec2(width/2, depth/2),
		Rotation:    rotation,
		Sin:         sin,
		Cos:         cos,
	}
}

// NewDroneEntity 创建无人机实体
// spawn 中为 0 的字段（半径、生命值）取 cfg 的默认值
//
// 参数:
//   - em: 实体管理器
//   - cfg: 模拟参数
//   - spawn: 初始状态
//   - phase: 悬停相位（错开各无人机的摆动）
//
// 返回:
//   - ecs.EntityID: 创建的实体ID
//   - error: 参数无效时返回错误
func NewDroneEntity(em *ecs.EntityManager, cfg *config.GameConfig, spawn config.DroneSpawn, phase float64) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return ecs.InvalidEntity, fmt.Errorf("game config cannot be nil")
	}

	radius := spawn.Radius
	if radius == 0 {
		radius = cfg.DroneRadius
	}
	if radius <= 0 {
		return ecs.InvalidEntity, fmt.Errorf("drone radius must be > 0, got %.2f", radius)
	}

	hp := spawn.Health
	if hp == 0 {
		hp = cfg.DroneHealth
	}

	pos := utils.NewVec2(spawn.X, spawn.Y)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.EnemyComponent{})
	ecs.AddComponent(em, id, &components.BodyComponent{
		Position: pos,
		Radius:   radius,
	})
	ecs.AddComponent(em, id, &components.GroundStateComponent{
		State:         components.Airborne,
		GravityExempt: true,
	})
	ecs.AddComponent(em, id, NewWeakSpot(spawn.WeakSpot, cfg.WeakSpotWidth, cfg.WeakSpotDepth))
	ecs.AddComponent(em, id, components.NewHealth(hp))
	ecs.AddComponent(em, id, &components.AppearanceComponent{Alpha: 1})
	if spawn.HoverEnabled() {
		ecs.AddComponent(em, id, &components.HoverComponent{Anchor: pos, Phase: phase})
	}

	return id, nil
}
