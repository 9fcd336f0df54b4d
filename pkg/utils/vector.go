// Package utils 提供通用工具函数
package utils

import "math"

// Vec2 二维向量（世界坐标，Y 轴向上）
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec2Zero 零向量
var Vec2Zero = Vec2{}

// NewVec2 构造向量
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add 向量加法
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 向量减法
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 数乘
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot 点积
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length 向量长度
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSquared 长度的平方（比较距离时避免开方）
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// DistanceSquared 两点距离的平方
func (v Vec2) DistanceSquared(o Vec2) float64 {
	return v.Sub(o).LengthSquared()
}

// Distance 两点距离
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Length()
}

// NormalizeOrZero 归一化；长度为 0（或非有限值）时返回零向量
func (v Vec2) NormalizeOrZero() Vec2 {
	length := v.Length()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Vec2Zero
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Lerp 线性插值: v + (target - v) * t
func (v Vec2) Lerp(target Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (target.X-v.X)*t,
		Y: v.Y + (target.Y-v.Y)*t,
	}
}

// Rotate 绕原点逆时针旋转 angle 弧度
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return v.RotateSinCos(sin, cos)
}

// RotateSinCos 使用预计算的 sin/cos 旋转（热路径使用）
func (v Vec2) RotateSinCos(sin, cos float64) Vec2 {
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// IsZero 是否为零向量
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Clamp 将 value 限制在 [min, max] 区间
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// AxisVector 把四个方向键状态折叠为归一化方向（Y 轴向上）
// 相反方向同时按住时互相抵消
func AxisVector(up, down, left, right bool) Vec2 {
	var v Vec2
	if up {
		v.Y++
	}
	if down {
		v.Y--
	}
	if right {
		v.X++
	}
	if left {
		v.X--
	}
	return v.NormalizeOrZero()
}
