package components

import (
	"github.com/gonewx/pigeondash/pkg/types"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// EnemyComponent 敌人标记
type EnemyComponent struct{}

// WeakSpotComponent 无人机弱点（有向矩形）
//
// 几何数据在生成时由 Location 推导一次，之后不再修改。
type WeakSpotComponent struct {
	Location types.WeakSpotLocation
	// Direction 从无人机中心指向弱点中心的单位向量
	Direction utils.Vec2
	// HalfExtents 局部坐标系下的半宽（切线方向）与半厚（法线方向）
	HalfExtents utils.Vec2
	// Rotation 矩形旋转角（弧度），sin/cos 预计算
	Rotation float64
	Sin, Cos float64
}

// Center 弱点中心的世界坐标
func (w *WeakSpotComponent) Center(dronePos utils.Vec2, droneRadius float64) utils.Vec2 {
	return dronePos.Add(w.Direction.Scale(droneRadius))
}

// ToLocal 把世界坐标点变换到弱点矩形的局部坐标系（逆旋转）
func (w *WeakSpotComponent) ToLocal(point, center utils.Vec2) utils.Vec2 {
	return point.Sub(center).RotateSinCos(-w.Sin, w.Cos)
}

// HoverComponent 无人机悬停参数
type HoverComponent struct {
	// Anchor 悬停中心
	Anchor utils.Vec2
	// Phase 正弦相位（弧度），错开各无人机的摆动
	Phase float64
}
