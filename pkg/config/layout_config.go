package config

import "image/color"

// 布局配置常量
// 本文件定义窗口尺寸、地面位置与 HUD 布局；只影响表现层，不参与模拟。

// 窗口
const (
	// GameWindowWidth 逻辑画面宽度（Layout 返回值）
	GameWindowWidth = 960
	// GameWindowHeight 逻辑画面高度
	GameWindowHeight = 540
	// GameWindowTitle 窗口标题
	GameWindowTitle = "Pigeon Dash"

	// FloorScreenMargin 地面线到窗口底部的距离（像素）
	FloorScreenMargin = 40.0
)

// HUD
const (
	HUDMarginX = 16.0
	HUDMarginY = 12.0
	// HUDFontSize 分数、连击等常规文字字号
	HUDFontSize = 20.0
	// HUDTitleFontSize 结算标题字号
	HUDTitleFontSize = 48.0
	// HUDLineSpacing 行距
	HUDLineSpacing = 26.0

	// ChargeBarWidth / ChargeBarHeight 蓄力条尺寸（绘制在飞行者下方）
	ChargeBarWidth  = 48.0
	ChargeBarHeight = 6.0
	// AimArrowLength 满蓄力时瞄准箭头长度
	AimArrowLength = 72.0

	// ComboPopupDuration 击杀连击提示显示时长（秒）
	ComboPopupDuration = 0.8
	// ShakeDuration 震屏衰减时长（秒）
	ShakeDuration = 0.35
)

// 配色
var (
	ColorBackground  = color.RGBA{R: 0x1b, G: 0x1f, B: 0x2e, A: 0xff}
	ColorFloor       = color.RGBA{R: 0x5c, G: 0x6b, B: 0x4a, A: 0xff}
	ColorCeiling     = color.RGBA{R: 0x3a, G: 0x40, B: 0x58, A: 0xff}
	ColorFlier       = color.RGBA{R: 0xe8, G: 0xe4, B: 0xd8, A: 0xff}
	ColorFlierEffect = color.RGBA{R: 0xff, G: 0xd1, B: 0x4a, A: 0xff}
	ColorDrone       = color.RGBA{R: 0x8a, G: 0x93, B: 0xa8, A: 0xff}
	ColorWeakSpot    = color.RGBA{R: 0xf0, G: 0x4e, B: 0x4e, A: 0xff}
	ColorNuke        = color.RGBA{R: 0xff, G: 0x9a, B: 0x2e, A: 0xff}
	ColorAimArrow    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}
	ColorChargeBar   = color.RGBA{R: 0x4e, G: 0xc9, B: 0xf0, A: 0xff}
	ColorChargeBarBg = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x80}
	ColorText        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorOverlay     = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xa0}
	ColorHealthFull  = color.RGBA{R: 0xf0, G: 0x4e, B: 0x6a, A: 0xff}
	ColorHealthEmpty = color.RGBA{R: 0x50, G: 0x50, B: 0x58, A: 0xff}
)
