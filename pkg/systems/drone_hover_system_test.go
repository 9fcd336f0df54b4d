package systems

import (
	"math"
	"testing"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/entities"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// TestDroneHoverSystem_PullsTowardAnchor 偏离锚点的无人机目标速度指向锚点
func TestDroneHoverSystem_PullsTowardAnchor(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	cfg.HoverAmplitude = 0
	system := NewDroneHoverSystem(em, cfg)

	id, err := entities.NewDroneEntity(em, cfg, config.DroneSpawn{X: 0, Y: 100}, 0)
	if err != nil {
		t.Fatalf("NewDroneEntity() error = %v", err)
	}
	body, _ := ecs.GetComponent[*components.BodyComponent](em, id)
	body.Position = utils.NewVec2(30, 60)

	system.Update(testDT)

	want := utils.NewVec2(-30, 40).Scale(cfg.HoverStiffness)
	if math.Abs(body.TargetVelocity.X-want.X) > 1e-9 || math.Abs(body.TargetVelocity.Y-want.Y) > 1e-9 {
		t.Errorf("TargetVelocity = %+v, want %+v", body.TargetVelocity, want)
	}
}

// TestDroneHoverSystem_Bob 锚点处的无人机按正弦摆动
func TestDroneHoverSystem_Bob(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	system := NewDroneHoverSystem(em, cfg)

	id, _ := entities.NewDroneEntity(em, cfg, config.DroneSpawn{X: 0, Y: 100}, 0)
	body, _ := ecs.GetComponent[*components.BodyComponent](em, id)

	// 四分之一周期时摆动偏移达到振幅
	quarter := 1 / (4 * cfg.HoverFrequency)
	system.Update(quarter)

	want := cfg.HoverAmplitude * cfg.HoverStiffness
	if math.Abs(body.TargetVelocity.Y-want) > 1e-9 || body.TargetVelocity.X != 0 {
		t.Errorf("TargetVelocity = %+v, want (0, %.2f)", body.TargetVelocity, want)
	}
}

// TestDroneHoverSystem_SkipsImmune 免疫中的无人机保留击退速度
func TestDroneHoverSystem_SkipsImmune(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	system := NewDroneHoverSystem(em, cfg)

	id, _ := entities.NewDroneEntity(em, cfg, config.DroneSpawn{X: 0, Y: 100}, 0)
	body, _ := ecs.GetComponent[*components.BodyComponent](em, id)
	body.SetVelocity(utils.NewVec2(200, 0))
	GrantImmunity(em, id, 1, 0)

	system.Update(testDT)
	if body.TargetVelocity != utils.NewVec2(200, 0) {
		t.Errorf("TargetVelocity = %+v, want knockback preserved", body.TargetVelocity)
	}
}
