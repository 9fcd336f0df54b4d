package scenes

import (
	"fmt"
	"image/color"

	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ui"
	"github.com/gonewx/pigeondash/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawText 用 HUD 字体绘制文字；字体不可用时退化为调试文字
func drawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawHUD 绘制分数、连击、波次和生命值
func (s *GameScene) drawHUD(screen *ebiten.Image) {
	snap := s.snapshot
	x, y := config.HUDMarginX, config.HUDMarginY

	drawText(screen, fmt.Sprintf("SCORE %d", snap.Score), s.hudFont, x, y, config.ColorText)
	y += config.HUDLineSpacing
	drawText(screen, fmt.Sprintf("WAVE %d", snap.Wave), s.hudFont, x, y, config.ColorText)
	y += config.HUDLineSpacing
	if snap.BestCombo > 1 {
		drawText(screen, fmt.Sprintf("BEST COMBO x%d", snap.BestCombo), s.hudFont, x, y, config.ColorText)
	}

	if s.settings != nil {
		best := fmt.Sprintf("BEST %d", s.settings.GetSettings().BestScore)
		bx := config.GameWindowWidth - config.HUDMarginX - ui.MeasureTextWidth(best, s.hudFont)
		drawText(screen, best, s.hudFont, bx, config.HUDMarginY, config.ColorText)
	}

	if !snap.HasFlier {
		return
	}
	f := snap.Flier
	const pip = 14.0
	for i := uint8(0); i < f.MaxHealth; i++ {
		clr := config.ColorHealthEmpty
		if i < f.Health {
			clr = config.ColorHealthFull
		}
		px := config.HUDMarginX + float64(i)*(pip+6)
		py := config.GameWindowHeight - config.FloorScreenMargin/2 - pip/2
		vector.DrawFilledRect(screen, float32(px), float32(py), pip, pip, clr, false)
	}

	if f.EffectActive && f.Combo > 0 {
		combo := fmt.Sprintf("COMBO x%d", f.Combo)
		drawText(screen, combo, s.hudFont, ui.CenteredX(combo, s.hudFont, config.GameWindowWidth),
			config.HUDMarginY, config.ColorFlierEffect)
	}
}

// drawPopups 绘制击杀得分提示（向上漂移并淡出）
func (s *GameScene) drawPopups(screen *ebiten.Image) {
	for _, p := range s.popups {
		t := p.Age / config.ComboPopupDuration
		pos := p.Position.Add(utils.NewVec2(0, 40*utils.EaseOutCubic(t)))
		x, y := s.camera.WorldToScreen(pos)
		clr := withAlpha(config.ColorFlierEffect, 1-t)
		drawText(screen, p.Text, s.hudFont, x-ui.MeasureTextWidth(p.Text, s.hudFont)/2, y, clr)
	}
}

// drawGameOverOverlay 绘制结算覆盖层
func (s *GameScene) drawGameOverOverlay(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight, config.ColorOverlay, false)

	cy := config.GameWindowHeight/2 - config.HUDTitleFontSize
	title := "GAME OVER"
	drawText(screen, title, s.titleFont, ui.CenteredX(title, s.titleFont, config.GameWindowWidth), cy, config.ColorText)

	cy += config.HUDTitleFontSize + 12
	score := fmt.Sprintf("SCORE %d", s.finalScore)
	if s.newBest {
		score += "  NEW BEST!"
	}
	drawText(screen, score, s.hudFont, ui.CenteredX(score, s.hudFont, config.GameWindowWidth), cy, config.ColorText)

	cy += config.HUDLineSpacing
	hint := "Press R to restart"
	drawText(screen, hint, s.hudFont, ui.CenteredX(hint, s.hudFont, config.GameWindowWidth), cy, config.ColorText)
}

// drawDebug 绘制调试信息（F3 切换）
func (s *GameScene) drawDebug(screen *ebiten.Image) {
	snap := s.snapshot
	lines := []string{
		fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		fmt.Sprintf("tick: %d  state: %s", snap.Ticks, snap.State),
		fmt.Sprintf("drones: %d  nukes: %d  kills: %d", len(snap.Drones), len(snap.Nukes), snap.Kills),
	}
	if snap.HasFlier {
		f := snap.Flier
		lines = append(lines,
			fmt.Sprintf("pos: (%.1f, %.1f)  grounded: %v", f.Position.X, f.Position.Y, f.Grounded),
			fmt.Sprintf("vel: (%.1f, %.1f)  target: (%.1f, %.1f)",
				f.CurrentVelocity.X, f.CurrentVelocity.Y, f.TargetVelocity.X, f.TargetVelocity.Y),
			fmt.Sprintf("phase: %s  charge: %.2f  dash: %.3f", f.Phase, f.ChargeLevel, f.DashRemaining),
			fmt.Sprintf("effect: %v  power: %.2f  remaining: %.2f  combo: %d",
				f.EffectActive, f.EffectPower, f.EffectRemaining, f.Combo),
			fmt.Sprintf("health: %d/%d  immune: %v", f.Health, f.MaxHealth, f.Immune),
		)
	}

	y := config.GameWindowHeight / 3
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(config.HUDMarginX), y)
		y += 16
	}

	// 碰撞形状
	for _, d := range snap.Drones {
		x, yy := s.camera.WorldToScreen(d.Position)
		vector.StrokeCircle(screen, float32(x), float32(yy), float32(d.Radius), 1, config.ColorText, false)
		label := fmt.Sprintf("#%d hp%d %s", d.Entity, d.Health, d.WeakSpot)
		ebitenutil.DebugPrintAt(screen, label, int(x+d.Radius), int(yy-d.Radius))
	}
	if snap.HasFlier {
		x, yy := s.camera.WorldToScreen(snap.Flier.Position)
		vector.StrokeCircle(screen, float32(x), float32(yy), float32(snap.Flier.Radius), 1, config.ColorText, false)
	}
}
