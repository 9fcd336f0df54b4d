package simulation

import (
	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/entities"
	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/gonewx/pigeondash/pkg/systems"
	"github.com/gonewx/pigeondash/pkg/types"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// FlierSnapshot 飞行者的只读快照
type FlierSnapshot struct {
	Entity          ecs.EntityID
	Position        utils.Vec2
	CurrentVelocity utils.Vec2
	TargetVelocity  utils.Vec2
	Radius          float64
	Grounded        bool

	Phase components.AbilityPhase
	// AimDirection / ChargeLevel 供瞄准箭头使用（仅蓄力时有效）
	AimDirection  utils.Vec2
	ChargeLevel   float64
	DashRemaining float64

	EffectActive    bool
	EffectPower     float64
	EffectRemaining float64
	Combo           uint32

	Health    uint8
	MaxHealth uint8
	Immune    bool
	Alpha     float64
}

// DroneSnapshot 无人机的只读快照
type DroneSnapshot struct {
	Entity   ecs.EntityID
	Position utils.Vec2
	Radius   float64

	WeakSpot       types.WeakSpotLocation
	WeakSpotCenter utils.Vec2
	WeakSpotHalf   utils.Vec2
	WeakSpotAngle  float64

	Health uint8
	Immune bool
}

// NukeSnapshot 核爆的只读快照
type NukeSnapshot struct {
	Entity   ecs.EntityID
	Position utils.Vec2
	Radius   float64
	// Progress 生命周期进度 [0,1]
	Progress float64
	Combo    uint32
}

// Snapshot 一帧的只读视图，供渲染、HUD 与音效使用
type Snapshot struct {
	// HasFlier 为 false 时 Flier 为零值
	HasFlier bool
	Flier    FlierSnapshot
	Drones   []DroneSnapshot
	Nukes    []NukeSnapshot

	Score     uint32
	Kills     uint32
	LastCombo uint32
	BestCombo uint32
	Wave      int
	State     gameplay.SessionState
	Ticks     uint64
}

// Snapshot 生成当前状态的快照（值拷贝，可安全跨帧保存）
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Score:     s.ledger.Score,
		Kills:     s.ledger.Kills,
		LastCombo: s.ledger.LastCombo,
		BestCombo: s.ledger.BestCombo,
		Wave:      s.waves.Wave(),
		State:     s.session.State,
		Ticks:     s.ticks,
	}

	if id, ok := entities.FindFlier(s.em); ok {
		snap.HasFlier = s.flierSnapshot(id, &snap.Flier)
	}

	drones := ecs.GetEntitiesWith3[
		*components.EnemyComponent,
		*components.BodyComponent,
		*components.WeakSpotComponent,
	](s.em)
	snap.Drones = make([]DroneSnapshot, 0, len(drones))
	for _, id := range drones {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.em, id)
		ws, _ := ecs.GetComponent[*components.WeakSpotComponent](s.em, id)
		d := DroneSnapshot{
			Entity:         id,
			Position:       body.Position,
			Radius:         body.Radius,
			WeakSpot:       ws.Location,
			WeakSpotCenter: ws.Center(body.Position, body.Radius),
			WeakSpotHalf:   ws.HalfExtents,
			WeakSpotAngle:  ws.Rotation,
			Immune:         ecs.HasComponent[*components.CollisionImmunityComponent](s.em, id),
		}
		if health, ok := ecs.GetComponent[*components.HealthComponent](s.em, id); ok {
			d.Health = health.Current
		}
		snap.Drones = append(snap.Drones, d)
	}

	nukes := ecs.GetEntitiesWith2[*components.NukeComponent, *components.BodyComponent](s.em)
	snap.Nukes = make([]NukeSnapshot, 0, len(nukes))
	for _, id := range nukes {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.em, id)
		nuke, _ := ecs.GetComponent[*components.NukeComponent](s.em, id)
		snap.Nukes = append(snap.Nukes, NukeSnapshot{
			Entity:   id,
			Position: body.Position,
			Radius:   body.Radius,
			Progress: systems.Progress(s.em, id),
			Combo:    nuke.Combo,
		})
	}

	return snap
}

func (s *Simulation) flierSnapshot(id ecs.EntityID, out *FlierSnapshot) bool {
	body, ok := ecs.GetComponent[*components.BodyComponent](s.em, id)
	if !ok {
		return false
	}
	*out = FlierSnapshot{
		Entity:          id,
		Position:        body.Position,
		CurrentVelocity: body.CurrentVelocity,
		TargetVelocity:  body.TargetVelocity,
		Radius:          body.Radius,
		Immune:          ecs.HasComponent[*components.CollisionImmunityComponent](s.em, id),
		Alpha:           1,
	}

	if ground, ok := ecs.GetComponent[*components.GroundStateComponent](s.em, id); ok {
		out.Grounded = ground.IsGrounded()
	}
	if ability, ok := ecs.GetComponent[*components.AbilityComponent](s.em, id); ok {
		out.Phase = ability.Phase
		if ability.IsCharging() {
			out.AimDirection = ability.Charge.Direction
			out.ChargeLevel = ability.Charge.Level()
		}
		if ability.IsDashing() {
			out.DashRemaining = ability.Dash.Remaining
		}
		out.EffectActive = ability.EffectActive
		if ability.EffectActive {
			out.EffectPower = ability.Effect.Power
			out.EffectRemaining = ability.Effect.Remaining
			out.Combo = ability.Effect.Combo
		}
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](s.em, id); ok {
		out.Health = health.Current
		out.MaxHealth = health.Max
	}
	if appearance, ok := ecs.GetComponent[*components.AppearanceComponent](s.em, id); ok {
		out.Alpha = appearance.Alpha
	}
	return true
}
