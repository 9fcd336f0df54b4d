package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gonewx/pigeondash/pkg/app"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	configPath := flag.String("config", "", "Path to a game config YAML (default: built-in data/game_config.yaml)")
	level := flag.String("level", "", "Level file path or built-in level name")
	listLevels := flag.Bool("levels", false, "List built-in levels and exit")
	debug := flag.Bool("debug", false, "Check simulation invariants every tick (panics on violation)")
	mute := flag.Bool("mute", false, "Disable audio")
	flag.Parse()

	embedded.Init(dataFS)

	if *listLevels {
		fmt.Println(strings.Join(app.AvailableLevels(), "\n"))
		return
	}

	a, err := app.NewApp(app.Config{
		Verbose:        *verbose,
		GameConfigPath: *configPath,
		Level:          *level,
		Debug:          *debug,
		Mute:           *mute,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(a)

	// 退出时保存设置（最高分、音量）
	if !a.GetSceneManager().SaveOnExit() {
		log.Printf("[Main] Warning: failed to save settings on exit")
	}

	if runErr != nil {
		log.Fatal(runErr)
	}
}
