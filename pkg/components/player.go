package components

// PlayerComponent 飞行者标记
type PlayerComponent struct{}
