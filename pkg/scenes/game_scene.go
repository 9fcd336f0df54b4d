package scenes

import (
	"bytes"
	"fmt"
	"log"

	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/game"
	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/gonewx/pigeondash/pkg/simulation"
	"github.com/gonewx/pigeondash/pkg/ui"
	"github.com/gonewx/pigeondash/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// comboPopup 击杀后浮现的得分提示
type comboPopup struct {
	Position utils.Vec2
	Text     string
	Age      float64
}

// GameScene 对局场景
//
// 职责：
//   - 每帧把键鼠输入折叠为 InputIntent 并以固定步长推进模拟
//   - 订阅模拟事件驱动震屏、连击提示和最高分记录
//   - 从快照绘制世界和 HUD
//
// 场景本身不修改模拟状态，重开通过 Simulation.Reset 完成。
type GameScene struct {
	sim          *simulation.Simulation
	settings     *game.SettingsManager
	sceneManager *game.SceneManager

	camera utils.Camera
	shake  *ScreenShake

	popups []comboPopup

	// 结算信息（GameOver 事件写入）
	finalScore uint32
	newBest    bool

	// 最近一次快照，Draw 使用
	snapshot simulation.Snapshot

	hudFont   *text.GoTextFace
	titleFont *text.GoTextFace
}

// NewGameScene 创建对局场景
//
// 参数：
//   - sim: 模拟实例（场景会订阅其事件总线）
//   - settings: 设置管理器，可为 nil
//   - sm: 场景管理器，用于 F5 重新加载关卡，可为 nil
func NewGameScene(sim *simulation.Simulation, settings *game.SettingsManager, sm *game.SceneManager) *GameScene {
	cfg := sim.Config()
	s := &GameScene{
		sim:          sim,
		settings:     settings,
		sceneManager: sm,
		camera: utils.Camera{
			FloorY:      cfg.FloorY,
			Width:       config.GameWindowWidth,
			Height:      config.GameWindowHeight,
			FloorMargin: config.FloorScreenMargin,
		},
		shake: NewScreenShake(config.ShakeDuration),
	}

	s.loadFonts()
	s.subscribe(sim.Events())
	s.snapshot = sim.Snapshot()

	log.Printf("[GameScene] 场景已创建 (敌机: %d)", len(s.snapshot.Drones))
	return s
}

// loadFonts 加载内置的 Go Regular 字体
// 加载失败时 HUD 退化为 ebitenutil 调试文字
func (s *GameScene) loadFonts() {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("[GameScene] Warning: 字体加载失败: %v", err)
		return
	}
	s.hudFont = &text.GoTextFace{Source: source, Size: config.HUDFontSize}
	s.titleFont = &text.GoTextFace{Source: source, Size: config.HUDTitleFontSize}
}

// subscribe 订阅表现层关心的模拟事件
func (s *GameScene) subscribe(bus *gameplay.EventBus) {
	bus.Subscribe(gameplay.EventLanded, func(ev gameplay.Event) {
		p, _ := ev.Payload.(gameplay.LandedPayload)
		s.shake.Trigger(gameplay.LandingShake(p.ImpactVelocity))
	})
	bus.Subscribe(gameplay.EventNukeSpawned, func(gameplay.Event) {
		s.shake.Trigger(gameplay.LandingShakeMax)
	})
	bus.Subscribe(gameplay.EventEnemyDestroyed, func(ev gameplay.Event) {
		p, _ := ev.Payload.(gameplay.EnemyDestroyedPayload)
		label := fmt.Sprintf("+%d", p.Points)
		if p.Combo > 1 {
			label = fmt.Sprintf("+%d  x%d", p.Points, p.Combo)
		}
		s.popups = append(s.popups, comboPopup{Position: p.Position, Text: label})
	})
	bus.Subscribe(gameplay.EventGameOver, func(ev gameplay.Event) {
		p, _ := ev.Payload.(gameplay.GameOverPayload)
		s.finalScore = p.Score
		if s.settings != nil {
			s.newBest = s.settings.RecordScore(p.Score)
		}
		log.Printf("[GameScene] 游戏结束: 得分 %d (新纪录: %v)", p.Score, s.newBest)
	})
}

// Update 读取输入并推进模拟
func (s *GameScene) Update(deltaTime float64) {
	s.handleHotkeys()
	s.step(deltaTime, readInputIntent(s.camera))
}

// handleHotkeys 处理与模拟无关的按键（重开、调试、静音、重新加载）
func (s *GameScene) handleHotkeys() {
	if ui.AnyKeyJustPressed(ebiten.KeyF3) && s.settings != nil {
		log.Printf("[GameScene] 调试显示: %v", s.settings.ToggleDebug())
	}
	if ui.AnyKeyJustPressed(ebiten.KeyM) && s.settings != nil {
		enabled := !s.settings.GetSettings().SoundEnabled
		s.settings.SetSoundEnabled(enabled)
		log.Printf("[GameScene] 音效: %v", enabled)
	}
	if ui.AnyKeyJustPressed(ebiten.KeyF5) && s.sceneManager != nil {
		s.sceneManager.ReloadLevel()
		return
	}
	if ui.AnyKeyJustPressed(ebiten.KeyR) && s.sim.State() == gameplay.SessionGameOver {
		s.Restart()
	}
}

// step 以给定输入推进一帧（可在测试中直接调用）
func (s *GameScene) step(deltaTime float64, in gameplay.InputIntent) {
	s.sim.Advance(deltaTime, in)
	s.snapshot = s.sim.Snapshot()

	if s.snapshot.HasFlier {
		s.camera.Follow(s.snapshot.Flier.Position.X, s.sim.Config().XLimit)
	}
	s.shake.Update(deltaTime)
	s.camera.Offset = s.shake.Offset()
	s.updatePopups(deltaTime)
}

// updatePopups 推进得分提示并移除过期的
func (s *GameScene) updatePopups(deltaTime float64) {
	kept := s.popups[:0]
	for _, p := range s.popups {
		p.Age += deltaTime
		if p.Age < config.ComboPopupDuration {
			kept = append(kept, p)
		}
	}
	s.popups = kept
}

// Restart 重新开始一局
func (s *GameScene) Restart() {
	s.sim.Reset()
	s.shake.Reset()
	s.popups = s.popups[:0]
	s.finalScore = 0
	s.newBest = false
	s.snapshot = s.sim.Snapshot()
}

// SaveOnExit 退出时保存设置（最高分）
func (s *GameScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[GameScene] Warning: 保存设置失败: %v", err)
		return false
	}
	return true
}

// Draw 绘制世界与 HUD
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.ColorBackground)

	s.drawArena(screen)
	s.drawNukes(screen)
	s.drawDrones(screen)
	s.drawFlier(screen)
	s.drawPopups(screen)

	s.drawHUD(screen)
	if s.settings != nil && s.settings.GetSettings().ShowDebug {
		s.drawDebug(screen)
	}
	if s.snapshot.State == gameplay.SessionGameOver {
		s.drawGameOverOverlay(screen)
	}
}
