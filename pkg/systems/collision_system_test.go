package systems

import (
	"testing"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/entities"
	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/gonewx/pigeondash/pkg/types"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// TestCollisionSystem_BodyHit 飞行者(0,0)与无人机(30,0)，半径均为16: 相交并扣血
func TestCollisionSystem_BodyHit(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	bus := gameplay.NewEventBus()
	system := NewCollisionSystem(em, cfg, &gameplay.ScoreLedger{}, bus)

	flierID, _ := spawnFlier(t, em, cfg, 0, 0)
	droneID := spawnDrone(t, em, cfg, 30, 0, types.WeakSpotSouth)

	system.Update()

	health, _ := ecs.GetComponent[*components.HealthComponent](em, flierID)
	if health.Current != cfg.PlayerHealth-cfg.CollisionDamage {
		t.Errorf("Health = %d, want %d", health.Current, cfg.PlayerHealth-cfg.CollisionDamage)
	}
	if !ecs.HasComponent[*components.CollisionImmunityComponent](em, flierID) {
		t.Error("flier should have CollisionImmunity")
	}
	if !ecs.HasComponent[*components.BlinkComponent](em, flierID) {
		t.Error("flier should have Blink")
	}
	if !ecs.HasComponent[*components.CollisionImmunityComponent](em, droneID) {
		t.Error("drone should have CollisionImmunity")
	}

	events := pendingOfType(bus, gameplay.EventTookDamage)
	if len(events) != 1 {
		t.Fatalf("TookDamage events = %d, want 1", len(events))
	}
	if p := events[0].Payload.(gameplay.TookDamagePayload); p.Remaining != health.Current {
		t.Errorf("payload remaining = %d, want %d", p.Remaining, health.Current)
	}

	// 免疫期间不再受伤
	system.Update()
	if health.Current != cfg.PlayerHealth-cfg.CollisionDamage {
		t.Errorf("immune flier took extra damage: %d", health.Current)
	}
}

// TestCollisionSystem_FatalBodyHit 致命撞击只扣血，不附加免疫与闪烁
func TestCollisionSystem_FatalBodyHit(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	cfg.PlayerHealth = 1
	bus := gameplay.NewEventBus()
	system := NewCollisionSystem(em, cfg, &gameplay.ScoreLedger{}, bus)

	flierID, _ := spawnFlier(t, em, cfg, 0, 0)
	spawnDrone(t, em, cfg, 30, 0, types.WeakSpotSouth)

	system.Update()

	health, _ := ecs.GetComponent[*components.HealthComponent](em, flierID)
	if health.Current != 0 {
		t.Fatalf("Health = %d, want 0", health.Current)
	}
	if ecs.HasComponent[*components.CollisionImmunityComponent](em, flierID) {
		t.Error("fatal hit should not grant CollisionImmunity")
	}
	if ecs.HasComponent[*components.BlinkComponent](em, flierID) {
		t.Error("fatal hit should not grant Blink")
	}
	events := pendingOfType(bus, gameplay.EventTookDamage)
	if len(events) != 1 || events[0].Payload.(gameplay.TookDamagePayload).Remaining != 0 {
		t.Errorf("TookDamage events = %+v, want one with remaining 0", events)
	}
}

// TestCollisionSystem_BodyKnockback 击退: 主轴速度反向并叠加分离方向的击退速度
func TestCollisionSystem_BodyKnockback(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	system := NewCollisionSystem(em, cfg, nil, nil)

	_, flierBody := spawnFlier(t, em, cfg, 0, 0)
	flierBody.SetVelocity(utils.NewVec2(100, 20))
	droneID := spawnDrone(t, em, cfg, 30, 0, types.WeakSpotSouth)

	system.Update()

	want := utils.NewVec2(-100-cfg.RepulsionForce, 20)
	if flierBody.CurrentVelocity != want || flierBody.TargetVelocity != want {
		t.Errorf("flier velocity = %+v / %+v, want %+v", flierBody.CurrentVelocity, flierBody.TargetVelocity, want)
	}
	droneBody, _ := ecs.GetComponent[*components.BodyComponent](em, droneID)
	if droneBody.CurrentVelocity != utils.NewVec2(cfg.RepulsionForce, 0) {
		t.Errorf("drone velocity = %+v, want (%.0f, 0)", droneBody.CurrentVelocity, cfg.RepulsionForce)
	}
}

// TestCollisionSystem_BodyHitSkipped 冲刺效果、免疫、不相交时不结算
func TestCollisionSystem_BodyHitSkipped(t *testing.T) {
	cfg := config.DefaultGameConfig()

	tests := []struct {
		name   string
		setup  func(em *ecs.EntityManager, flierID, droneID ecs.EntityID)
		droneX float64
	}{
		{
			name: "冲刺效果期间",
			setup: func(em *ecs.EntityManager, flierID, _ ecs.EntityID) {
				ability, _ := ecs.GetComponent[*components.AbilityComponent](em, flierID)
				ability.EffectActive = true
				ability.Effect = components.DashEffect{Power: 1, Remaining: 1}
			},
			droneX: 30,
		},
		{
			name: "飞行者免疫",
			setup: func(em *ecs.EntityManager, flierID, _ ecs.EntityID) {
				GrantImmunity(em, flierID, 1, 0)
			},
			droneX: 30,
		},
		{
			name: "无人机免疫",
			setup: func(em *ecs.EntityManager, _, droneID ecs.EntityID) {
				GrantImmunity(em, droneID, 1, 0)
			},
			droneX: 30,
		},
		{
			name:   "距离大于半径和",
			setup:  func(*ecs.EntityManager, ecs.EntityID, ecs.EntityID) {},
			droneX: 32.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			system := NewCollisionSystem(em, cfg, nil, nil)
			flierID, _ := spawnFlier(t, em, cfg, 0, 0)
			droneID := spawnDrone(t, em, cfg, tt.droneX, 100, types.WeakSpotNorth)
			droneBody, _ := ecs.GetComponent[*components.BodyComponent](em, droneID)
			droneBody.Position.Y = 0
			tt.setup(em, flierID, droneID)

			system.Update()

			health, _ := ecs.GetComponent[*components.HealthComponent](em, flierID)
			if health.Current != cfg.PlayerHealth {
				t.Errorf("Health = %d, want %d", health.Current, cfg.PlayerHealth)
			}
		})
	}
}

// TestCollisionSystem_OneBodyHitPerTick 同时与两架无人机相交时只结算一次
func TestCollisionSystem_OneBodyHitPerTick(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	bus := gameplay.NewEventBus()
	system := NewCollisionSystem(em, cfg, nil, bus)

	flierID, _ := spawnFlier(t, em, cfg, 0, 0)
	first := spawnDrone(t, em, cfg, 20, 0, types.WeakSpotNorth)
	second := spawnDrone(t, em, cfg, -20, 0, types.WeakSpotNorth)

	system.Update()

	health, _ := ecs.GetComponent[*components.HealthComponent](em, flierID)
	if health.Current != cfg.PlayerHealth-cfg.CollisionDamage {
		t.Errorf("Health = %d, want one hit", health.Current)
	}
	if !ecs.HasComponent[*components.CollisionImmunityComponent](em, first) {
		t.Error("lowest-ID drone should be the one processed")
	}
	if ecs.HasComponent[*components.CollisionImmunityComponent](em, second) {
		t.Error("second drone should not be processed in the same tick")
	}
	if n := len(pendingOfType(bus, gameplay.EventTookDamage)); n != 1 {
		t.Errorf("TookDamage events = %d, want 1", n)
	}
}

// TestWeakSpotHit_RotationCorrect 沿弱点局部法线/切线方向，半径-ε命中、半径+ε不命中
func TestWeakSpotHit_RotationCorrect(t *testing.T) {
	const (
		eps         = 1e-3
		flierRadius = 16.0
		droneRadius = 16.0
	)
	dronePos := utils.NewVec2(40, -25)
	locations := []types.WeakSpotLocation{
		types.WeakSpotSouth, types.WeakSpotNorth, types.WeakSpotEast, types.WeakSpotWest,
		types.WeakSpotNorthEast, types.WeakSpotNorthWest, types.WeakSpotSouthEast, types.WeakSpotSouthWest,
	}

	for _, loc := range locations {
		t.Run(loc.String(), func(t *testing.T) {
			ws := entities.NewWeakSpot(loc, 16, 8)
			center := ws.Center(dronePos, droneRadius)
			normal := ws.Direction
			tangent := utils.NewVec2(1, 0).RotateSinCos(ws.Sin, ws.Cos)

			cases := []struct {
				name string
				axis utils.Vec2
				half float64
			}{
				{name: "normal", axis: normal, half: ws.HalfExtents.Y},
				{name: "tangent", axis: tangent, half: ws.HalfExtents.X},
			}
			for _, c := range cases {
				inside := center.Add(c.axis.Scale(c.half + flierRadius - eps))
				outside := center.Add(c.axis.Scale(c.half + flierRadius + eps))
				if !WeakSpotHit(inside, flierRadius, dronePos, droneRadius, ws) {
					t.Errorf("%s: expected hit at radius-eps", c.name)
				}
				if WeakSpotHit(outside, flierRadius, dronePos, droneRadius, ws) {
					t.Errorf("%s: expected miss at radius+eps", c.name)
				}
			}
		})
	}
}

// TestCollisionSystem_ComboScore 一次冲刺效果内连续击毁3架: 1 + 2 + 3 = 6
func TestCollisionSystem_ComboScore(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	ledger := &gameplay.ScoreLedger{}
	bus := gameplay.NewEventBus()
	system := NewCollisionSystem(em, cfg, ledger, bus)

	flierID, flierBody := spawnFlier(t, em, cfg, 0, -400)
	ability := abilityOf(t, em, flierID)
	ability.EffectActive = true
	ability.Effect = components.DashEffect{Direction: utils.NewVec2(0, 1), Power: 1, Remaining: 1}

	drones := []ecs.EntityID{
		spawnDrone(t, em, cfg, -200, 100, types.WeakSpotSouth),
		spawnDrone(t, em, cfg, 0, 100, types.WeakSpotSouth),
		spawnDrone(t, em, cfg, 200, 100, types.WeakSpotSouth),
	}

	for _, droneID := range drones {
		droneBody, _ := ecs.GetComponent[*components.BodyComponent](em, droneID)
		flierBody.Position = droneBody.Position.Add(utils.NewVec2(0, -droneBody.Radius-10))
		system.Update()
		if em.IsAlive(droneID) {
			t.Fatalf("drone %d should be destroyed", droneID)
		}
	}

	if ledger.Score != 6 {
		t.Errorf("Score = %d, want 6", ledger.Score)
	}
	if ledger.Kills != 3 || ledger.BestCombo != 3 {
		t.Errorf("ledger = %+v, want 3 kills, best combo 3", ledger)
	}
	if ability.Effect.Combo != 3 {
		t.Errorf("Effect.Combo = %d, want 3", ability.Effect.Combo)
	}

	destroyed := pendingOfType(bus, gameplay.EventEnemyDestroyed)
	if len(destroyed) != 3 {
		t.Fatalf("EnemyDestroyed events = %d, want 3", len(destroyed))
	}
	for i, ev := range destroyed {
		p := ev.Payload.(gameplay.EnemyDestroyedPayload)
		if p.Points != uint32(i+1) || p.Cause != gameplay.CauseWeakSpot {
			t.Errorf("event %d payload = %+v", i, p)
		}
	}
}

// TestCollisionSystem_WeakSpotRequiresEffect 没有冲刺效果时弱点接触不击杀
func TestCollisionSystem_WeakSpotRequiresEffect(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	ledger := &gameplay.ScoreLedger{}
	system := NewCollisionSystem(em, cfg, ledger, nil)

	flierID, _ := spawnFlier(t, em, cfg, 0, 74)
	GrantImmunity(em, flierID, 10, 0)
	droneID := spawnDrone(t, em, cfg, 0, 100, types.WeakSpotSouth)

	system.Update()

	if !em.IsAlive(droneID) || ledger.Score != 0 {
		t.Errorf("drone should survive without dash effect, score=%d", ledger.Score)
	}
}

// TestCollisionSystem_PartialPowerKnockback 未蓄满的冲刺命中弱点后被弹开
func TestCollisionSystem_PartialPowerKnockback(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	ledger := &gameplay.ScoreLedger{}
	system := NewCollisionSystem(em, cfg, ledger, nil)

	flierID, flierBody := spawnFlier(t, em, cfg, 0, 74)
	flierBody.SetVelocity(utils.NewVec2(0, 300))
	ability := abilityOf(t, em, flierID)
	ability.EffectActive = true
	ability.Effect = components.DashEffect{Direction: utils.NewVec2(0, 1), Power: 0.5, Remaining: 0.5}
	droneID := spawnDrone(t, em, cfg, 0, 100, types.WeakSpotSouth)

	system.Update()

	if em.IsAlive(droneID) {
		t.Error("drone should be destroyed")
	}
	if ledger.Score != 1 {
		t.Errorf("Score = %d, want 1", ledger.Score)
	}
	want := utils.NewVec2(0, -300-cfg.RepulsionForce)
	if flierBody.CurrentVelocity != want {
		t.Errorf("flier velocity = %+v, want %+v", flierBody.CurrentVelocity, want)
	}
}

// TestCollisionSystem_ToughDrone 生命值高于弱点伤害的无人机只受伤并获得免疫
func TestCollisionSystem_ToughDrone(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	ledger := &gameplay.ScoreLedger{}
	system := NewCollisionSystem(em, cfg, ledger, nil)

	flierID, _ := spawnFlier(t, em, cfg, 0, 74)
	ability := abilityOf(t, em, flierID)
	ability.EffectActive = true
	ability.Effect = components.DashEffect{Direction: utils.NewVec2(0, 1), Power: 1, Remaining: 1}

	noHover := false
	droneID, err := entities.NewDroneEntity(em, cfg, config.DroneSpawn{X: 0, Y: 100, Health: 5, Hover: &noHover}, 0)
	if err != nil {
		t.Fatalf("NewDroneEntity() error = %v", err)
	}

	system.Update()
	system.Update()

	health, _ := ecs.GetComponent[*components.HealthComponent](em, droneID)
	if health.Current != 5-cfg.WeakSpotDamage {
		t.Errorf("drone health = %d, want %d (one hit)", health.Current, 5-cfg.WeakSpotDamage)
	}
	if !em.IsAlive(droneID) || ledger.Score != 0 {
		t.Errorf("drone should survive unscored, score=%d", ledger.Score)
	}
	if !ecs.HasComponent[*components.CollisionImmunityComponent](em, droneID) {
		t.Error("damaged drone should become immune")
	}
}

// TestCollisionSystem_Nuke 核爆结算所有重叠无人机，每架只结算一次
func TestCollisionSystem_Nuke(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	ledger := &gameplay.ScoreLedger{}
	bus := gameplay.NewEventBus()
	system := NewCollisionSystem(em, cfg, ledger, bus)

	first, err := entities.NewNukeEntity(em, cfg, utils.NewVec2(0, cfg.FloorY), 1)
	if err != nil {
		t.Fatalf("NewNukeEntity() error = %v", err)
	}
	if _, err := entities.NewNukeEntity(em, cfg, utils.NewVec2(10, cfg.FloorY), 0); err != nil {
		t.Fatalf("NewNukeEntity() error = %v", err)
	}

	inA := spawnDrone(t, em, cfg, 50, cfg.FloorY+50, types.WeakSpotSouth)
	inB := spawnDrone(t, em, cfg, -80, cfg.FloorY+20, types.WeakSpotNorth)
	out := spawnDrone(t, em, cfg, 600, 200, types.WeakSpotSouth)

	system.Update()

	if em.IsAlive(inA) || em.IsAlive(inB) {
		t.Error("overlapping drones should be destroyed")
	}
	if !em.IsAlive(out) {
		t.Error("distant drone should survive")
	}
	if ledger.Kills != 2 {
		t.Errorf("Kills = %d, want 2", ledger.Kills)
	}
	// 第一个核爆继承连击 1: (1+1) + (1+2)
	if ledger.Score != 5 {
		t.Errorf("Score = %d, want 5", ledger.Score)
	}
	nuke, _ := ecs.GetComponent[*components.NukeComponent](em, first)
	if nuke.Combo != 3 {
		t.Errorf("nuke combo = %d, want 3", nuke.Combo)
	}

	em.RemoveMarkedEntities()
	system.Update()
	if ledger.Kills != 2 {
		t.Errorf("destroyed drones must not be scored again, kills=%d", ledger.Kills)
	}
	for _, ev := range pendingOfType(bus, gameplay.EventEnemyDestroyed) {
		if ev.Payload.(gameplay.EnemyDestroyedPayload).Cause != gameplay.CauseNuke {
			t.Errorf("unexpected cause %v", ev.Payload)
		}
	}
}
