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

// TestMovementSystem 方向输入加速并限制在速度范围内
func TestMovementSystem(t *testing.T) {
	cfg := config.DefaultGameConfig()

	tests := []struct {
		name  string
		start utils.Vec2
		dir   utils.Vec2
		phase components.AbilityPhase
		want  utils.Vec2
	}{
		{
			name:  "向右加速",
			dir:   utils.NewVec2(1, 0),
			phase: components.AbilityIdle,
			want:  utils.NewVec2(cfg.PlayerXAcceleration*testDT, 0),
		},
		{
			name:  "水平限速",
			start: utils.NewVec2(-235, 0),
			dir:   utils.NewVec2(-1, 0),
			phase: components.AbilityIdle,
			want:  utils.NewVec2(-cfg.PlayerMaxXSpeed, 0),
		},
		{
			name:  "上升限速",
			start: utils.NewVec2(0, 270),
			dir:   utils.NewVec2(0, 1),
			phase: components.AbilityIdle,
			want:  utils.NewVec2(0, cfg.PlayerMaxRiseSpeed),
		},
		{
			name:  "下落限速",
			start: utils.NewVec2(0, -600),
			phase: components.AbilityIdle,
			want:  utils.NewVec2(0, cfg.PlayerMinFallSpeed),
		},
		{
			name:  "蓄力时忽略",
			start: utils.NewVec2(5, 5),
			dir:   utils.NewVec2(1, 0),
			phase: components.AbilityCharging,
			want:  utils.NewVec2(5, 5),
		},
		{
			name:  "冲刺时忽略",
			start: utils.NewVec2(3000, 0),
			dir:   utils.NewVec2(-1, 0),
			phase: components.AbilityDashing,
			want:  utils.NewVec2(3000, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			system := NewMovementSystem(em, cfg)
			id, body := spawnFlier(t, em, cfg, 0, 0)
			body.TargetVelocity = tt.start
			abilityOf(t, em, id).Phase = tt.phase

			system.Update(testDT, gameplay.InputIntent{Direction: tt.dir})

			if math.Abs(body.TargetVelocity.X-tt.want.X) > 1e-9 || math.Abs(body.TargetVelocity.Y-tt.want.Y) > 1e-9 {
				t.Errorf("TargetVelocity = %+v, want %+v", body.TargetVelocity, tt.want)
			}
		})
	}
}
