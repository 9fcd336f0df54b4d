package scenes

import (
	"math"

	"github.com/gonewx/pigeondash/pkg/utils"
)

// ScreenShake 落地震屏
// 幅度在 duration 内按 EaseOutQuad 衰减到 0；抖动图案由时间确定，不使用随机数。
type ScreenShake struct {
	amplitude float64
	duration  float64
	elapsed   float64
}

// NewScreenShake 创建震屏效果，duration 为单次震屏的衰减时长（秒）
func NewScreenShake(duration float64) *ScreenShake {
	return &ScreenShake{duration: duration, elapsed: duration}
}

// Trigger 开始一次震屏
// 正在进行的震屏比新的更强时保留当前震屏
func (s *ScreenShake) Trigger(amplitude float64) {
	if amplitude <= 0 {
		return
	}
	if s.Current() >= amplitude {
		return
	}
	s.amplitude = amplitude
	s.elapsed = 0
}

// Update 推进衰减
func (s *ScreenShake) Update(dt float64) {
	if s.elapsed < s.duration {
		s.elapsed = min(s.elapsed+dt, s.duration)
	}
}

// Current 当前幅度（像素）
func (s *ScreenShake) Current() float64 {
	if s.duration <= 0 || s.elapsed >= s.duration {
		return 0
	}
	return s.amplitude * (1 - utils.EaseOutQuad(s.elapsed/s.duration))
}

// Offset 当前帧的屏幕偏移
func (s *ScreenShake) Offset() utils.Vec2 {
	amp := s.Current()
	if amp == 0 {
		return utils.Vec2Zero
	}
	return utils.NewVec2(amp*math.Sin(s.elapsed*83), amp*math.Cos(s.elapsed*71))
}

// Reset 立即停止
func (s *ScreenShake) Reset() {
	s.amplitude = 0
	s.elapsed = s.duration
}
