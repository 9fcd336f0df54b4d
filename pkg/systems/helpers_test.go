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

const testDT = 1.0 / 60.0

// spawnFlier 在指定位置创建飞行者并返回其刚体
func spawnFlier(t *testing.T, em *ecs.EntityManager, cfg *config.GameConfig, x, y float64) (ecs.EntityID, *components.BodyComponent) {
	t.Helper()
	id, err := entities.NewFlierEntity(em, cfg, utils.NewVec2(x, y))
	if err != nil {
		t.Fatalf("NewFlierEntity() error = %v", err)
	}
	body, _ := ecs.GetComponent[*components.BodyComponent](em, id)
	return id, body
}

// spawnDrone 创建不悬停的无人机
func spawnDrone(t *testing.T, em *ecs.EntityManager, cfg *config.GameConfig, x, y float64, loc types.WeakSpotLocation) ecs.EntityID {
	t.Helper()
	noHover := false
	id, err := entities.NewDroneEntity(em, cfg, config.DroneSpawn{X: x, Y: y, WeakSpot: loc, Hover: &noHover}, 0)
	if err != nil {
		t.Fatalf("NewDroneEntity() error = %v", err)
	}
	return id
}

// abilityOf 获取飞行者的能力组件
func abilityOf(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.AbilityComponent {
	t.Helper()
	ability, ok := ecs.GetComponent[*components.AbilityComponent](em, id)
	if !ok {
		t.Fatal("flier should have AbilityComponent")
	}
	return ability
}

// pendingOfType 统计总线中指定类型的待投递事件
func pendingOfType(bus *gameplay.EventBus, eventType gameplay.EventType) []gameplay.Event {
	var out []gameplay.Event
	for _, ev := range bus.Pending() {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}
