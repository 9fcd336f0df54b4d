package components

// CollisionImmunityComponent 碰撞免疫
// 存在期间该实体不参与机体碰撞检测
type CollisionImmunityComponent struct {
	Duration float64
	Elapsed  float64
}

// Finished 计时是否结束
func (c *CollisionImmunityComponent) Finished() bool {
	return c.Elapsed >= c.Duration
}

// BlinkComponent 与免疫配对的闪烁计时器（重复计时）
// 只驱动表现层的透明度，不影响模拟
type BlinkComponent struct {
	Interval float64
	Elapsed  float64
	Visible  bool
}

// AppearanceComponent 供渲染读取的外观状态
type AppearanceComponent struct {
	// Alpha 透明度 0.0 ~ 1.0
	Alpha float64
}
