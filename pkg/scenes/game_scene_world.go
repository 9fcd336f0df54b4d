package scenes

import (
	"image/color"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawArena 绘制地面、天花板和水平边界
func (s *GameScene) drawArena(screen *ebiten.Image) {
	cfg := s.sim.Config()

	_, floorY := s.camera.WorldToScreen(utils.NewVec2(0, cfg.FloorY))
	vector.DrawFilledRect(screen, 0, float32(floorY), config.GameWindowWidth,
		float32(config.GameWindowHeight-floorY+8), config.ColorFloor, false)

	_, ceilY := s.camera.WorldToScreen(utils.NewVec2(0, cfg.CeilingY))
	if ceilY > 0 {
		vector.StrokeLine(screen, 0, float32(ceilY), config.GameWindowWidth, float32(ceilY), 1, config.ColorCeiling, false)
	}

	for _, x := range []float64{-cfg.XLimit, cfg.XLimit} {
		sx, _ := s.camera.WorldToScreen(utils.NewVec2(x, cfg.FloorY))
		if sx >= 0 && sx <= config.GameWindowWidth {
			vector.StrokeLine(screen, float32(sx), 0, float32(sx), float32(floorY), 2, config.ColorCeiling, false)
		}
	}
}

// drawFlier 绘制飞行者、蓄力瞄准箭头和蓄力条
func (s *GameScene) drawFlier(screen *ebiten.Image) {
	if !s.snapshot.HasFlier {
		return
	}
	f := s.snapshot.Flier
	x, y := s.camera.WorldToScreen(f.Position)

	body := config.ColorFlier
	if f.EffectActive {
		body = config.ColorFlierEffect
	}
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(f.Radius), withAlpha(body, f.Alpha), true)

	if f.EffectActive {
		ring := f.Radius + 4 + 6*f.EffectPower
		vector.StrokeCircle(screen, float32(x), float32(y), float32(ring), 2, withAlpha(config.ColorFlierEffect, 0.6), true)
	}

	if f.Phase != components.AbilityCharging {
		return
	}

	// 瞄准箭头：长度随蓄力增长
	length := config.AimArrowLength * (0.3 + 0.7*f.ChargeLevel)
	tip := f.Position.Add(f.AimDirection.Scale(f.Radius + length))
	tx, ty := s.camera.WorldToScreen(tip)
	vector.StrokeLine(screen, float32(x), float32(y), float32(tx), float32(ty), 3, config.ColorAimArrow, true)

	for _, side := range []float64{0.5, -0.5} {
		wing := tip.Sub(f.AimDirection.Rotate(side).Scale(12))
		wx, wy := s.camera.WorldToScreen(wing)
		vector.StrokeLine(screen, float32(tx), float32(ty), float32(wx), float32(wy), 3, config.ColorAimArrow, true)
	}

	barX := float32(x - config.ChargeBarWidth/2)
	barY := float32(y + f.Radius + 8)
	vector.DrawFilledRect(screen, barX, barY, config.ChargeBarWidth, config.ChargeBarHeight, config.ColorChargeBarBg, false)
	vector.DrawFilledRect(screen, barX, barY, float32(config.ChargeBarWidth*f.ChargeLevel), config.ChargeBarHeight, config.ColorChargeBar, false)
}

// drawDrones 绘制无人机机体与弱点
// 弱点矩形用一条粗线段表示：线段沿表面切线，线宽等于弱点厚度
func (s *GameScene) drawDrones(screen *ebiten.Image) {
	for _, d := range s.snapshot.Drones {
		x, y := s.camera.WorldToScreen(d.Position)
		alpha := 1.0
		if d.Immune {
			alpha = 0.5
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(d.Radius), withAlpha(config.ColorDrone, alpha), true)

		tangent := utils.NewVec2(1, 0).Rotate(d.WeakSpotAngle).Scale(d.WeakSpotHalf.X)
		ax, ay := s.camera.WorldToScreen(d.WeakSpotCenter.Sub(tangent))
		bx, by := s.camera.WorldToScreen(d.WeakSpotCenter.Add(tangent))
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by),
			float32(d.WeakSpotHalf.Y*2), config.ColorWeakSpot, true)
	}
}

// drawNukes 绘制核爆光环：半径按 EaseOutCubic 扩张，透明度线性衰减
func (s *GameScene) drawNukes(screen *ebiten.Image) {
	for _, n := range s.snapshot.Nukes {
		x, y := s.camera.WorldToScreen(n.Position)
		r := n.Radius * utils.EaseOutCubic(n.Progress)
		fade := 1 - n.Progress
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), withAlpha(config.ColorNuke, 0.25*fade), true)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(r), 3, withAlpha(config.ColorNuke, fade), true)
	}
}

// withAlpha 按比例缩放颜色透明度（预乘 alpha）
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	alpha = utils.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
