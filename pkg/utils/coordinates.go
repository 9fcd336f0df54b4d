package utils

// 坐标系统
//
// 世界坐标: 原点在关卡中心，Y 轴向上，单位为像素。
// 屏幕坐标: 原点在窗口左上角，Y 轴向下（ebiten 约定）。
//
// 转换由 Camera 完成:
//
//	screenX = (worldX - CenterX) + Width/2
//	screenY = Height - FloorMargin - (worldY - FloorY)
//
// 地面始终绘制在距窗口底部 FloorMargin 像素处；摄像机只在水平方向跟随。

// Camera 世界坐标与屏幕坐标之间的转换
type Camera struct {
	// CenterX 屏幕中心对应的世界 X
	CenterX float64
	// FloorY 地面的世界 Y
	FloorY float64
	// Width, Height 屏幕逻辑尺寸
	Width, Height float64
	// FloorMargin 地面到窗口底部的距离
	FloorMargin float64
	// Offset 额外的屏幕偏移（震屏）
	Offset Vec2
}

// WorldToScreen 世界坐标 -> 屏幕坐标
func (c Camera) WorldToScreen(p Vec2) (screenX, screenY float64) {
	screenX = p.X - c.CenterX + c.Width/2 + c.Offset.X
	screenY = c.Height - c.FloorMargin - (p.Y - c.FloorY) + c.Offset.Y
	return screenX, screenY
}

// ScreenToWorld 屏幕坐标 -> 世界坐标（WorldToScreen 的逆变换）
func (c Camera) ScreenToWorld(screenX, screenY float64) Vec2 {
	return Vec2{
		X: screenX - c.Offset.X - c.Width/2 + c.CenterX,
		Y: c.Height - c.FloorMargin - (screenY - c.Offset.Y) + c.FloorY,
	}
}

// Follow 让摄像机水平跟随目标，但不越过 [-limit, limit] 的关卡边界
// 关卡比屏幕窄时固定在 0
func (c *Camera) Follow(targetX, limit float64) {
	half := c.Width / 2
	if limit <= half {
		c.CenterX = 0
		return
	}
	c.CenterX = Clamp(targetX, -limit+half, limit-half)
}
