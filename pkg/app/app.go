// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、打开设置存储、
// 创建音频与场景管理器，并实现 ebiten.Game 接口。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/embedded"
	"github.com/gonewx/pigeondash/pkg/game"
	"github.com/gonewx/pigeondash/pkg/scenes"
	"github.com/gonewx/pigeondash/pkg/simulation"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// AppName gdata 存储使用的应用名
	AppName = "pigeondash"

	// DefaultLevel 未指定关卡时加载的内置关卡名
	DefaultLevel = "default"

	audioSampleRate = 48000
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// GameConfigPath 模拟参数文件路径，为空使用内置 data/game_config.yaml
	GameConfigPath string
	// Level 关卡：磁盘上的 YAML 文件路径，或内置关卡名（见 AvailableLevels），为空使用默认关卡
	Level string
	// Debug 开启模拟不变量检查
	Debug bool
	// Mute 禁用音频上下文
	Mute bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          Config
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	audioManager *game.AudioManager

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	settings := game.OpenSettingsManager(AppName)

	var audioContext *audio.Context
	if !cfg.Mute {
		audioContext = audio.NewContext(audioSampleRate)
	}
	audioManager := game.NewAudioManager(audioContext, settings)
	log.Printf("[App] AudioManager initialized")

	a := &App{
		cfg:          cfg,
		settings:     settings,
		audioManager: audioManager,
		sceneManager: game.NewSceneManager(),
	}
	a.sceneManager.SetSceneFactory(a.createGameScene)

	levelToLoad := cfg.Level
	if levelToLoad == "" {
		levelToLoad = DefaultLevel
	}
	log.Printf("[App] Starting level: %s", levelToLoad)

	if !a.sceneManager.LoadLevel(levelToLoad) {
		// 用同样的参数再创建一次以拿到具体错误
		_, err := a.createGameScene(levelToLoad)
		return nil, fmt.Errorf("关卡加载失败: %w", err)
	}

	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)
	return a, nil
}

// createGameScene 场景工厂：每次调用都重新读取配置文件（F5 重新加载依赖这一点）
func (a *App) createGameScene(levelName string) (game.Scene, error) {
	gameCfg, err := LoadGameConfig(a.cfg.GameConfigPath)
	if err != nil {
		return nil, err
	}
	level, err := LoadLevel(levelName)
	if err != nil {
		return nil, err
	}

	sim, err := simulation.New(gameCfg, level)
	if err != nil {
		return nil, err
	}
	sim.Debug = a.cfg.Debug
	a.audioManager.Attach(sim.Events())

	return scenes.NewGameScene(sim, a.settings, a.sceneManager), nil
}

// LoadGameConfig 加载模拟参数
// path 为空时使用内置 data/game_config.yaml
func LoadGameConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载模拟参数: %s", path)
		return config.LoadGameConfig(path)
	}

	data, err := embedded.ReadFile("data/game_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded game config: %w", err)
	}
	return config.ParseGameConfig(data)
}

// LoadLevel 加载关卡
//
// 解析顺序：
//  1. 磁盘上存在的文件路径
//  2. "default" -> 内置 data/level.yaml
//  3. 其他名称 -> 内置 data/levels/<name>.yaml
func LoadLevel(name string) (*config.LevelConfig, error) {
	if _, err := os.Stat(name); err == nil {
		log.Printf("[Config] 加载关卡文件: %s", name)
		return config.LoadLevelConfig(name)
	}

	embeddedPath := "data/level.yaml"
	if name != "" && name != DefaultLevel {
		embeddedPath = path.Join("data/levels", name+".yaml")
	}

	data, err := embedded.ReadFile(embeddedPath)
	if err != nil {
		return nil, fmt.Errorf("unknown level %q (available: %s): %w",
			name, strings.Join(AvailableLevels(), ", "), err)
	}
	return config.ParseLevelConfig(data)
}

// AvailableLevels 列出内置关卡名
func AvailableLevels() []string {
	levels := []string{DefaultLevel}
	matches, err := embedded.Glob("data/levels/*.yaml")
	if err != nil {
		return levels
	}
	for _, m := range matches {
		levels = append(levels, strings.TrimSuffix(path.Base(m), ".yaml"))
	}
	return levels
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(ebiten.IsFullscreen())
	}

	// 模拟内部以固定步长累计，这里传入本帧的名义时长
	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.cfg.Verbose
}
