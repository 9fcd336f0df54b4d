package main

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/gonewx/pigeondash/pkg/simulation"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// step 脚本中的一段：以同一输入连续运行 Ticks 步
type step struct {
	Ticks  int
	Intent func(snap simulation.Snapshot) gameplay.InputIntent
}

// scenario 可重放的输入脚本
type scenario struct {
	Description string
	Steps       []step
}

// constant 返回固定输入
func constant(in gameplay.InputIntent) func(simulation.Snapshot) gameplay.InputIntent {
	return func(simulation.Snapshot) gameplay.InputIntent { return in }
}

// aimAtNearestWeakSpot 瞄准最近一架无人机的弱点
func aimAtNearestWeakSpot(held bool) func(simulation.Snapshot) gameplay.InputIntent {
	return func(snap simulation.Snapshot) gameplay.InputIntent {
		in := gameplay.InputIntent{DashHeld: held}
		if !snap.HasFlier || len(snap.Drones) == 0 {
			return in
		}
		best := snap.Drones[0].WeakSpotCenter
		for _, d := range snap.Drones[1:] {
			if d.WeakSpotCenter.DistanceSquared(snap.Flier.Position) < best.DistanceSquared(snap.Flier.Position) {
				best = d.WeakSpotCenter
			}
		}
		in.Aim = best
		return in
	}
}

// chargeTicks 蓄满所需的步数
// 按下那一步只进入蓄力，另加一步吸收浮点累加误差
func chargeTicks(sim *simulation.Simulation) int {
	cfg := sim.Config()
	return int(math.Ceil(cfg.ChargeDuration/cfg.FixedTimestep)) + 2
}

// scenarios 内置脚本
func scenarios(sim *simulation.Simulation) map[string]scenario {
	full := chargeTicks(sim)
	down := utils.NewVec2(0, -1000)

	return map[string]scenario{
		"idle": {
			Description: "不操作，观察下落、落地和无人机悬停",
			Steps:       []step{{Ticks: 240, Intent: constant(gameplay.InputIntent{})}},
		},
		"nuke": {
			Description: "满蓄力后向下冲刺触发核爆",
			Steps: []step{
				{Ticks: full, Intent: constant(gameplay.InputIntent{DashHeld: true, Aim: down})},
				{Ticks: 60, Intent: constant(gameplay.InputIntent{Aim: down})},
			},
		},
		"weakspot": {
			Description: "瞄准最近的弱点满蓄力冲刺",
			Steps: []step{
				{Ticks: full, Intent: aimAtNearestWeakSpot(true)},
				{Ticks: 90, Intent: aimAtNearestWeakSpot(false)},
			},
		},
		"tap": {
			Description: "连续轻点冲刺（未蓄满，不会触发核爆）",
			Steps: slices.Repeat([]step{
				{Ticks: 5, Intent: constant(gameplay.InputIntent{DashHeld: true, Aim: utils.NewVec2(0, 1000)})},
				{Ticks: 25, Intent: constant(gameplay.InputIntent{Aim: utils.NewVec2(0, 1000)})},
			}, 6),
		},
		"ram": {
			Description: "向上撞击正上方的无人机机体",
			Steps:       []step{{Ticks: 180, Intent: constant(gameplay.InputIntent{Direction: utils.NewVec2(0, 1)})}},
		},
	}
}

// scenarioNames 按字母序返回脚本名
func scenarioNames(all map[string]scenario) []string {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// run 执行脚本，返回带步数前缀的事件记录
func run(sim *simulation.Simulation, sc scenario) []string {
	var lines []string
	sim.Events().SubscribeAll(func(ev gameplay.Event) {
		lines = append(lines, fmt.Sprintf("[tick %4d] %-16s %+v", sim.Ticks(), ev.Type, ev.Payload))
	})

	dt := sim.Config().FixedTimestep
	for _, st := range sc.Steps {
		for i := 0; i < st.Ticks; i++ {
			if sim.State() == gameplay.SessionGameOver {
				return lines
			}
			sim.Tick(dt, st.Intent(sim.Snapshot()))
		}
	}
	return lines
}
