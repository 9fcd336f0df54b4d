package components

// HealthComponent 存储实体的生命值信息
// 不变量: Current <= Max；Current == 0 的实体会被 HealthSystem 处理
type HealthComponent struct {
	Current uint8
	Max     uint8
}

// NewHealth 创建满血的生命值组件
func NewHealth(value uint8) *HealthComponent {
	return &HealthComponent{Current: value, Max: value}
}

// Damage 扣除生命值（不会低于 0），返回实际扣除量
func (h *HealthComponent) Damage(amount uint8) uint8 {
	if amount > h.Current {
		amount = h.Current
	}
	h.Current -= amount
	return amount
}

// IsDead 生命值是否归零
func (h *HealthComponent) IsDead() bool {
	return h.Current == 0
}
