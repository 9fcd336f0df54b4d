package simulation

import (
	"fmt"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/ecs"
)

// assertInvariant 条件不成立时 panic
func assertInvariant(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Sprintf("invariant violated: "+format, args...))
	}
}

// checkInvariants 检查刚体半径与生命值上限
func (s *Simulation) checkInvariants() {
	for _, id := range ecs.GetEntitiesWith1[*components.BodyComponent](s.em) {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.em, id)
		assertInvariant(body.Radius > 0, "entity %d radius %.3f <= 0", id, body.Radius)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.HealthComponent](s.em) {
		health, _ := ecs.GetComponent[*components.HealthComponent](s.em, id)
		assertInvariant(health.Current <= health.Max, "entity %d health %d > max %d", id, health.Current, health.Max)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.AbilityComponent](s.em) {
		ability, _ := ecs.GetComponent[*components.AbilityComponent](s.em, id)
		assertInvariant(ability.Charge.Power >= 0, "entity %d charge power %.3f < 0", id, ability.Charge.Power)
	}
}
