package ui

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MeasureTextWidth 测量单行文本宽度（像素）
// font 为 nil 时返回 0
func MeasureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}

// CenteredX 返回使文本在 [0, areaWidth] 内水平居中的起始 X
func CenteredX(textStr string, font *text.GoTextFace, areaWidth float64) float64 {
	return (areaWidth - MeasureTextWidth(textStr, font)) / 2
}
