package systems

import (
	"math"
	"testing"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// inputSequence 依次生成带边沿的输入
type inputSequence struct {
	prevHeld bool
}

func (s *inputSequence) next(held bool, aim utils.Vec2) gameplay.InputIntent {
	in := gameplay.InputIntent{DashHeld: held, Aim: aim}.WithEdges(s.prevHeld)
	s.prevHeld = held
	return in
}

// TestAbilitySystem_StartCharge 按下沿进入蓄力：清零目标速度、朝向瞄准点
func TestAbilitySystem_StartCharge(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	system := NewAbilitySystem(em, cfg, nil)

	id, body := spawnFlier(t, em, cfg, 10, 10)
	body.SetVelocity(utils.NewVec2(120, -40))

	var seq inputSequence
	system.Update(testDT, seq.next(true, utils.NewVec2(13, 14)))

	ability := abilityOf(t, em, id)
	if !ability.IsCharging() {
		t.Fatalf("Phase = %v, want charging", ability.Phase)
	}
	if !body.TargetVelocity.IsZero() {
		t.Errorf("TargetVelocity = %+v, want zero", body.TargetVelocity)
	}
	want := utils.NewVec2(0.6, 0.8)
	if math.Abs(ability.Charge.Direction.X-want.X) > 1e-9 || math.Abs(ability.Charge.Direction.Y-want.Y) > 1e-9 {
		t.Errorf("Direction = %+v, want %+v", ability.Charge.Direction, want)
	}
	if ability.Charge.Power != 0 {
		t.Errorf("Power = %.3f, want 0", ability.Charge.Power)
	}
}

// TestAbilitySystem_ChargeMonotonicAndClamped 按住期间蓄力单调不减，释放时限制到 1
func TestAbilitySystem_ChargeMonotonicAndClamped(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	bus := gameplay.NewEventBus()
	system := NewAbilitySystem(em, cfg, bus)

	id, _ := spawnFlier(t, em, cfg, 0, 0)
	ability := abilityOf(t, em, id)
	aim := utils.NewVec2(0, -100)

	var seq inputSequence
	system.Update(testDT, seq.next(true, aim))

	prev := ability.Charge.Power
	for i := 0; i < 180; i++ {
		system.Update(testDT, seq.next(true, aim))
		if ability.Charge.Power < prev {
			t.Fatalf("tick %d: power decreased %.4f -> %.4f", i, prev, ability.Charge.Power)
		}
		prev = ability.Charge.Power
	}
	if prev <= 1 {
		t.Fatalf("raw power should exceed 1 after 3s of charging, got %.3f", prev)
	}

	system.Update(testDT, seq.next(false, aim))

	if !ability.IsDashing() {
		t.Fatalf("Phase = %v, want dashing", ability.Phase)
	}
	if math.Abs(ability.Dash.Power.Length()-1) > 1e-9 {
		t.Errorf("dash power length = %.4f, want 1", ability.Dash.Power.Length())
	}
	if ability.Effect.Power != 1 || !ability.EffectActive {
		t.Errorf("Effect = %+v active=%v, want power 1", ability.Effect, ability.EffectActive)
	}
	if ability.Effect.Remaining != cfg.DashImmunityDuration {
		t.Errorf("Effect.Remaining = %.3f, want %.3f", ability.Effect.Remaining, cfg.DashImmunityDuration)
	}
	if ability.Effect.Combo != 0 {
		t.Errorf("Effect.Combo = %d, want 0", ability.Effect.Combo)
	}

	released := pendingOfType(bus, gameplay.EventDashReleased)
	if len(released) != 1 || released[0].Payload.(gameplay.DashReleasedPayload).Power != 1 {
		t.Errorf("DashReleased events = %+v", released)
	}
}

// TestAbilitySystem_PartialCharge 部分蓄力按比例缩放效果时长
func TestAbilitySystem_PartialCharge(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	system := NewAbilitySystem(em, cfg, nil)

	id, _ := spawnFlier(t, em, cfg, 0, 0)
	ability := abilityOf(t, em, id)
	aim := utils.NewVec2(100, 0)

	var seq inputSequence
	system.Update(testDT, seq.next(true, aim))
	for i := 0; i < 15; i++ {
		system.Update(testDT, seq.next(true, aim))
	}
	level := ability.Charge.Level()
	system.Update(testDT, seq.next(false, aim))

	if level <= 0 || level >= 1 {
		t.Fatalf("expected partial charge, got %.3f", level)
	}
	if math.Abs(ability.Effect.Power-level) > 1e-9 {
		t.Errorf("Effect.Power = %.4f, want %.4f", ability.Effect.Power, level)
	}
	if math.Abs(ability.Effect.Remaining-cfg.DashImmunityDuration*level) > 1e-9 {
		t.Errorf("Effect.Remaining = %.4f, want %.4f", ability.Effect.Remaining, cfg.DashImmunityDuration*level)
	}
	if math.Abs(ability.Dash.Power.X-level) > 1e-9 || ability.Dash.Power.Y != 0 {
		t.Errorf("Dash.Power = %+v, want (%.4f, 0)", ability.Dash.Power, level)
	}
}

// TestAbilitySystem_DashLifecycle 冲刺期间强制目标速度，结束后回落到水平速度上限
func TestAbilitySystem_DashLifecycle(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	system := NewAbilitySystem(em, cfg, nil)

	id, body := spawnFlier(t, em, cfg, 0, 0)
	ability := abilityOf(t, em, id)
	ability.Phase = components.AbilityDashing
	ability.Dash = components.DashState{Power: utils.NewVec2(0.5, 0), Remaining: cfg.DashDuration}

	system.Update(testDT, gameplay.InputIntent{})
	if body.TargetVelocity.X != 0.5*cfg.DashSpeed {
		t.Errorf("TargetVelocity.X = %.1f, want %.1f", body.TargetVelocity.X, 0.5*cfg.DashSpeed)
	}

	for i := 0; i < 20 && ability.IsDashing(); i++ {
		system.Update(testDT, gameplay.InputIntent{})
	}
	if ability.Phase != components.AbilityIdle {
		t.Fatalf("Phase = %v, want idle", ability.Phase)
	}
	if body.TargetVelocity != utils.NewVec2(cfg.PlayerMaxXSpeed, 0) {
		t.Errorf("bleed velocity = %+v, want (%.1f, 0)", body.TargetVelocity, cfg.PlayerMaxXSpeed)
	}
}

// TestAbilitySystem_EffectExpires 效果窗口计时结束后清除
func TestAbilitySystem_EffectExpires(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	system := NewAbilitySystem(em, cfg, nil)

	id, _ := spawnFlier(t, em, cfg, 0, 0)
	ability := abilityOf(t, em, id)
	ability.Effect = components.DashEffect{Direction: utils.NewVec2(1, 0), Power: 0.5, Remaining: 0.1, Combo: 2}
	ability.EffectActive = true

	for i := 0; i < 7; i++ {
		system.Update(testDT, gameplay.InputIntent{})
	}
	if ability.EffectActive || ability.Effect.Combo != 0 {
		t.Errorf("effect should be cleared, got %+v active=%v", ability.Effect, ability.EffectActive)
	}
}

// TestAbilitySystem_NoOps 无效输入与无飞行者均为空操作
func TestAbilitySystem_NoOps(t *testing.T) {
	t.Run("空闲时松开", func(t *testing.T) {
		em := ecs.NewEntityManager()
		cfg := config.DefaultGameConfig()
		system := NewAbilitySystem(em, cfg, nil)
		id, _ := spawnFlier(t, em, cfg, 0, 0)

		system.Update(testDT, gameplay.InputIntent{DashHeld: false}.WithEdges(true))
		if ability := abilityOf(t, em, id); ability.Phase != components.AbilityIdle {
			t.Errorf("Phase = %v, want idle", ability.Phase)
		}
	})

	t.Run("没有飞行者", func(t *testing.T) {
		em := ecs.NewEntityManager()
		system := NewAbilitySystem(em, config.DefaultGameConfig(), nil)
		system.Update(testDT, gameplay.InputIntent{DashHeld: true}.WithEdges(false))
		if nuke := system.ResolveLanding(); nuke != ecs.InvalidEntity {
			t.Errorf("ResolveLanding() = %d, want InvalidEntity", nuke)
		}
	})
}

// TestAbilitySystem_Cooldown 冷却期间忽略按下沿
func TestAbilitySystem_Cooldown(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	cfg.AbilityCooldown = 0.5
	system := NewAbilitySystem(em, cfg, nil)

	id, _ := spawnFlier(t, em, cfg, 0, 0)
	ability := abilityOf(t, em, id)
	ability.Cooldown = 0.5

	system.Update(testDT, gameplay.InputIntent{DashHeld: true}.WithEdges(false))
	if ability.IsCharging() {
		t.Fatal("press during cooldown should be ignored")
	}

	for i := 0; i < 40; i++ {
		system.Update(testDT, gameplay.InputIntent{})
	}
	system.Update(testDT, gameplay.InputIntent{DashHeld: true}.WithEdges(false))
	if !ability.IsCharging() {
		t.Error("press after cooldown should start charging")
	}
}

// TestAbilitySystem_ResolveLanding 满蓄力下冲从空中落地生成核爆；站在地面上释放不会触发
func TestAbilitySystem_ResolveLanding(t *testing.T) {
	cfg := config.DefaultGameConfig()
	down := utils.NewVec2(0, -1)

	tests := []struct {
		name     string
		dir      utils.Vec2
		power    float64
		y        float64
		grounded bool
		landed   bool
		wantNuke bool
	}{
		{name: "满蓄力下冲落地", dir: down, power: 1, y: cfg.FloorY, grounded: true, landed: true, wantNuke: true},
		{name: "未蓄满", dir: down, power: 0.9, y: cfg.FloorY, grounded: true, landed: true, wantNuke: false},
		{name: "方向向上", dir: utils.NewVec2(0, 1), power: 1, y: cfg.FloorY, grounded: true, landed: true, wantNuke: false},
		{name: "尚未落地", dir: down, power: 1, y: cfg.FloorY + 20, wantNuke: false},
		{name: "已在地面上释放", dir: down, power: 1, y: cfg.FloorY, grounded: true, landed: false, wantNuke: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			bus := gameplay.NewEventBus()
			system := NewAbilitySystem(em, cfg, bus)

			id, _ := spawnFlier(t, em, cfg, 25, tt.y)
			ability := abilityOf(t, em, id)
			ability.Phase = components.AbilityDashing
			ability.Dash = components.DashState{Power: tt.dir.Scale(tt.power), Remaining: 0.05}
			ability.Effect = components.DashEffect{Direction: tt.dir, Power: tt.power, Remaining: 0.5, Combo: 2}
			ability.EffectActive = true
			ground, _ := ecs.GetComponent[*components.GroundStateComponent](em, id)
			if tt.grounded {
				ground.State = components.Grounded
			}
			ground.JustLanded = tt.landed

			nukeID := system.ResolveLanding()
			if (nukeID != ecs.InvalidEntity) != tt.wantNuke {
				t.Fatalf("ResolveLanding() = %d, wantNuke %v", nukeID, tt.wantNuke)
			}
			if !tt.wantNuke {
				if !ability.EffectActive {
					t.Error("effect should remain active when no nuke spawns")
				}
				return
			}

			nuke, ok := ecs.GetComponent[*components.NukeComponent](em, nukeID)
			if !ok || nuke.Combo != 2 {
				t.Errorf("nuke = %+v, want inherited combo 2", nuke)
			}
			nukeBody, _ := ecs.GetComponent[*components.BodyComponent](em, nukeID)
			if nukeBody.Position != utils.NewVec2(25, tt.y) {
				t.Errorf("nuke position = %+v", nukeBody.Position)
			}
			if ability.EffectActive || ability.IsDashing() {
				t.Errorf("dash and effect should end, got phase=%v active=%v", ability.Phase, ability.EffectActive)
			}
			if n := len(pendingOfType(bus, gameplay.EventNukeSpawned)); n != 1 {
				t.Errorf("NukeSpawned events = %d, want 1", n)
			}
			if again := system.ResolveLanding(); again != ecs.InvalidEntity {
				t.Error("second ResolveLanding should not spawn another nuke")
			}
		})
	}
}
