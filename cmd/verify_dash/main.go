// verify_dash 以固定输入脚本无界面运行模拟并打印事件记录
//
// 用法:
//
//	go run ./cmd/verify_dash -scenario nuke
//	go run ./cmd/verify_dash -scenario weakspot -level data/levels/duel.yaml -verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/simulation"
)

var (
	scenarioName = flag.String("scenario", "nuke", "脚本名称（-list 查看全部）")
	configPath   = flag.String("config", "", "模拟参数文件（默认使用内置参数）")
	levelPath    = flag.String("level", "", "关卡文件（默认使用内置关卡）")
	list         = flag.Bool("list", false, "列出全部脚本")
	verbose      = flag.Bool("verbose", false, "显示系统日志")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	sim, err := newSimulation()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sim.Debug = true

	all := scenarios(sim)
	if *list {
		for _, name := range scenarioNames(all) {
			fmt.Printf("%-10s %s\n", name, all[name].Description)
		}
		return
	}

	sc, ok := all[*scenarioName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q (available: %v)\n", *scenarioName, scenarioNames(all))
		os.Exit(2)
	}

	fmt.Printf("== %s: %s\n", *scenarioName, sc.Description)
	for _, line := range run(sim, sc) {
		fmt.Println(line)
	}

	snap := sim.Snapshot()
	fmt.Printf("== ticks=%d state=%s score=%d kills=%d best_combo=%d wave=%d drones=%d\n",
		snap.Ticks, snap.State, snap.Score, snap.Kills, snap.BestCombo, snap.Wave, len(snap.Drones))
	if snap.HasFlier {
		f := snap.Flier
		fmt.Printf("== flier pos=(%.1f, %.1f) health=%d/%d phase=%s\n",
			f.Position.X, f.Position.Y, f.Health, f.MaxHealth, f.Phase)
	}
}

// newSimulation 按命令行参数加载配置并创建模拟
func newSimulation() (*simulation.Simulation, error) {
	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	level := config.DefaultLevelConfig()
	if *levelPath != "" {
		loaded, err := config.LoadLevelConfig(*levelPath)
		if err != nil {
			return nil, err
		}
		level = loaded
	}

	return simulation.New(cfg, level)
}
