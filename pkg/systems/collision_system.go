package systems

import (
	"log"
	"math"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/entities"
	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// CollisionSystem 碰撞结算
//
// 每帧在所有实体积分完成后运行一次，顺序固定:
//  1. 机体碰撞（飞行者 vs 无人机，每帧最多一次）
//  2. 弱点碰撞（冲刺效果期间）
//  3. 核爆碰撞（每架无人机最多被一个核爆结算）
//
// 查询结果按实体 ID 升序，"先命中者生效"在同一输入下是确定的。
type CollisionSystem struct {
	em     *ecs.EntityManager
	cfg    *config.GameConfig
	ledger *gameplay.ScoreLedger
	bus    *gameplay.EventBus
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 模拟参数（伤害、击退、免疫时长）
//   - ledger: 分数账本，由调用方持有
//   - bus: 事件总线，可以为 nil
func NewCollisionSystem(em *ecs.EntityManager, cfg *config.GameConfig, ledger *gameplay.ScoreLedger, bus *gameplay.EventBus) *CollisionSystem {
	return &CollisionSystem{em: em, cfg: cfg, ledger: ledger, bus: bus}
}

// Update 执行全部碰撞检测
func (s *CollisionSystem) Update() {
	if id, ok := entities.FindFlier(s.em); ok {
		s.resolveBodyCollision(id)
		s.resolveWeakSpotCollision(id)
	}
	s.resolveNukeCollision()
}

// CirclesOverlap 圆-圆相交检测（相切视为相交）
func CirclesOverlap(posA utils.Vec2, radiusA float64, posB utils.Vec2, radiusB float64) bool {
	r := radiusA + radiusB
	return posA.DistanceSquared(posB) <= r*r
}

// WeakSpotHit 圆与有向矩形（弱点）的相交检测
//
// 把圆心变换到弱点的局部坐标系，夹到半尺寸内得到矩形上的最近点，
// 再比较距离平方与半径平方。
func WeakSpotHit(flierPos utils.Vec2, flierRadius float64, dronePos utils.Vec2, droneRadius float64, ws *components.WeakSpotComponent) bool {
	center := ws.Center(dronePos, droneRadius)
	local := ws.ToLocal(flierPos, center)
	closest := utils.NewVec2(
		utils.Clamp(local.X, -ws.HalfExtents.X, ws.HalfExtents.X),
		utils.Clamp(local.Y, -ws.HalfExtents.Y, ws.HalfExtents.Y),
	)
	return local.DistanceSquared(closest) <= flierRadius*flierRadius
}

// resolveBodyCollision 机体碰撞
// 飞行者处于碰撞免疫或冲刺效果期间时跳过；免疫中的无人机也跳过
func (s *CollisionSystem) resolveBodyCollision(flierID ecs.EntityID) {
	if ecs.HasComponent[*components.CollisionImmunityComponent](s.em, flierID) {
		return
	}
	ability, _ := ecs.GetComponent[*components.AbilityComponent](s.em, flierID)
	if ability != nil && ability.EffectActive {
		return
	}
	flierBody, ok := ecs.GetComponent[*components.BodyComponent](s.em, flierID)
	if !ok {
		return
	}

	drones := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.BodyComponent](s.em)
	for _, droneID := range drones {
		if ecs.HasComponent[*components.CollisionImmunityComponent](s.em, droneID) {
			continue
		}
		droneBody, _ := ecs.GetComponent[*components.BodyComponent](s.em, droneID)
		if !CirclesOverlap(flierBody.Position, flierBody.Radius, droneBody.Position, droneBody.Radius) {
			continue
		}

		remaining := uint8(0)
		fatal := false
		if health, ok := ecs.GetComponent[*components.HealthComponent](s.em, flierID); ok {
			health.Damage(s.cfg.CollisionDamage)
			remaining = health.Current
			fatal = remaining == 0
		}

		// 致命一击不再附加免疫与闪烁，由 HealthSystem 结束本局
		if !fatal {
			GrantImmunity(s.em, flierID, s.cfg.CollisionImmunityDuration, s.cfg.BlinkInterval)
		}
		GrantImmunity(s.em, droneID, s.cfg.CollisionImmunityDuration, 0)
		s.knockback(flierBody, droneBody, true)

		log.Printf("[CollisionSystem] 飞行者撞上无人机 %d, 剩余生命=%d", droneID, remaining)
		if s.bus != nil {
			s.bus.Publish(gameplay.EventTookDamage, gameplay.TookDamagePayload{
				Entity:    flierID,
				Damage:    s.cfg.CollisionDamage,
				Remaining: remaining,
			})
		}
		break
	}
}

// resolveWeakSpotCollision 弱点碰撞（需要冲刺效果，且飞行者不在碰撞免疫中）
func (s *CollisionSystem) resolveWeakSpotCollision(flierID ecs.EntityID) {
	ability, ok := ecs.GetComponent[*components.AbilityComponent](s.em, flierID)
	if !ok || !ability.EffectActive {
		return
	}
	if ecs.HasComponent[*components.CollisionImmunityComponent](s.em, flierID) {
		return
	}
	flierBody, ok := ecs.GetComponent[*components.BodyComponent](s.em, flierID)
	if !ok {
		return
	}

	drones := ecs.GetEntitiesWith3[
		*components.EnemyComponent,
		*components.BodyComponent,
		*components.WeakSpotComponent,
	](s.em)

	for _, droneID := range drones {
		if ecs.HasComponent[*components.CollisionImmunityComponent](s.em, droneID) {
			continue
		}
		droneBody, _ := ecs.GetComponent[*components.BodyComponent](s.em, droneID)
		ws, _ := ecs.GetComponent[*components.WeakSpotComponent](s.em, droneID)
		if !WeakSpotHit(flierBody.Position, flierBody.Radius, droneBody.Position, droneBody.Radius, ws) {
			continue
		}

		killed := true
		if health, ok := ecs.GetComponent[*components.HealthComponent](s.em, droneID); ok {
			health.Damage(s.cfg.WeakSpotDamage)
			killed = health.IsDead()
		}

		if killed {
			s.kill(droneID, droneBody.Position, ability.Effect.Combo, gameplay.CauseWeakSpot)
			ability.Effect.Combo++
		} else {
			GrantImmunity(s.em, droneID, s.cfg.CollisionImmunityDuration, 0)
			log.Printf("[CollisionSystem] 弱点命中无人机 %d, 未击毁", droneID)
		}

		// 未蓄满的冲刺无法穿透，与机体碰撞一样被弹开
		if ability.Effect.Power < 1 {
			s.knockback(flierBody, droneBody, false)
			break
		}
	}
}

// resolveNukeCollision 核爆碰撞
// 外层遍历无人机、内层遍历核爆；每架无人机只被第一个重叠的核爆结算
func (s *CollisionSystem) resolveNukeCollision() {
	nukes := ecs.GetEntitiesWith2[*components.NukeComponent, *components.BodyComponent](s.em)
	if len(nukes) == 0 {
		return
	}

	drones := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.BodyComponent](s.em)
	for _, droneID := range drones {
		droneBody, _ := ecs.GetComponent[*components.BodyComponent](s.em, droneID)
		for _, nukeID := range nukes {
			nukeBody, _ := ecs.GetComponent[*components.BodyComponent](s.em, nukeID)
			if !CirclesOverlap(nukeBody.Position, nukeBody.Radius, droneBody.Position, droneBody.Radius) {
				continue
			}
			nuke, _ := ecs.GetComponent[*components.NukeComponent](s.em, nukeID)
			s.kill(droneID, droneBody.Position, nuke.Combo, gameplay.CauseNuke)
			nuke.Combo++
			break
		}
	}
}

// kill 销毁无人机并记分
func (s *CollisionSystem) kill(droneID ecs.EntityID, pos utils.Vec2, combo uint32, cause gameplay.DestroyCause) {
	s.em.DestroyEntity(droneID)

	points := uint32(1 + combo)
	if s.ledger != nil {
		points = s.ledger.AwardKill(combo)
	}

	log.Printf("[CollisionSystem] 击毁无人机 %d (%s), 得分=%d, 连击=%d", droneID, cause, points, combo+1)
	if s.bus != nil {
		s.bus.Publish(gameplay.EventEnemyDestroyed, gameplay.EnemyDestroyedPayload{
			Entity:   droneID,
			Position: pos,
			Points:   points,
			Combo:    combo + 1,
			Cause:    cause,
		})
	}
}

// knockback 击退
//
// 飞行者在分离方向的主轴上速度反向，并叠加沿分离方向的击退速度；
// symmetric 为 true 时无人机获得反方向的击退速度。
func (s *CollisionSystem) knockback(flier, drone *components.BodyComponent, symmetric bool) {
	sep := flier.Position.Sub(drone.Position).NormalizeOrZero()
	if sep.IsZero() {
		sep = utils.NewVec2(0, 1)
	}

	v := flier.CurrentVelocity
	if math.Abs(sep.X) >= math.Abs(sep.Y) {
		v.X = -v.X
	} else {
		v.Y = -v.Y
	}
	flier.SetVelocity(v.Add(sep.Scale(s.cfg.RepulsionForce)))

	if symmetric {
		drone.SetVelocity(sep.Scale(-s.cfg.RepulsionForce))
	}
}

// GrantImmunity 为实体附加碰撞免疫（已存在时重新计时）
// blinkInterval > 0 时同时附加闪烁计时器
func GrantImmunity(em *ecs.EntityManager, id ecs.EntityID, duration, blinkInterval float64) {
	ecs.AddComponent(em, id, &components.CollisionImmunityComponent{Duration: duration})
	if blinkInterval > 0 {
		ecs.AddComponent(em, id, &components.BlinkComponent{Interval: blinkInterval, Visible: true})
	}
}
