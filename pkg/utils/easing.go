package utils

import "math"

// 缓动函数
//
// 输入进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 用于表现层（震屏衰减、核爆光环扩张），模拟核心不使用。

// EaseOutCubic 三次方缓出: 1 - (1-t)³
// 开始快，结束慢
func EaseOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuad 二次方缓出: 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	t = Clamp(t, 0, 1)
	return 1 - (1-t)*(1-t)
}

// Lerp 标量线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
