package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// GameConfig 模拟核心的全部可调参数
//
// 启动时加载一次，之后作为只读快照传给各系统；模拟过程中从不修改。
// 坐标系: 世界坐标，Y 轴向上，单位为像素；时间单位为秒。
//
// 配置文件位置: data/game_config.yaml
// 文件中缺失的键保留 DefaultGameConfig() 的默认值。
type GameConfig struct {
	// ===== 重力与阻尼 =====

	// Gravity 重力加速度（负值向下）
	Gravity float64 `yaml:"gravity"`
	// ChargingGravityMultiplier 蓄力冲刺时的重力倍率
	ChargingGravityMultiplier float64 `yaml:"charging_gravity_multiplier"`
	// MovementSmoothing 当前速度逼近目标速度的平滑系数
	MovementSmoothing float64 `yaml:"movement_smoothing"`
	// AirFriction 空中摩擦率
	AirFriction float64 `yaml:"air_friction"`
	// GroundFriction 地面摩擦率
	GroundFriction float64 `yaml:"ground_friction"`
	// ChargingFriction 蓄力期间的最小摩擦率（0 表示沿用空中/地面摩擦）
	ChargingFriction float64 `yaml:"charging_friction"`

	// ===== 关卡边界 =====

	// FloorY 地面高度
	FloorY float64 `yaml:"floor_y"`
	// FloorEpsilon 离地判定的滞回带宽度
	FloorEpsilon float64 `yaml:"floor_epsilon"`
	// XLimit 水平边界 [-XLimit, XLimit]
	XLimit float64 `yaml:"x_limit"`
	// CeilingY 软天花板高度，超出后被弹簧拉回
	CeilingY float64 `yaml:"ceiling_y"`
	// SpringForce 天花板回拉系数（与超出量成正比）
	SpringForce float64 `yaml:"spring_force"`
	// MaxPull 回拉速度上限（负值，向下）
	MaxPull float64 `yaml:"max_pull"`

	// ===== 飞行者移动 =====

	PlayerXAcceleration float64 `yaml:"player_x_acceleration"`
	PlayerYAcceleration float64 `yaml:"player_y_acceleration"`
	PlayerMaxXSpeed     float64 `yaml:"player_max_x_speed"`
	PlayerMinFallSpeed  float64 `yaml:"player_min_fall_speed"`
	PlayerMaxRiseSpeed  float64 `yaml:"player_max_rise_speed"`
	PlayerRadius        float64 `yaml:"player_radius"`
	PlayerHealth        uint8   `yaml:"player_health"`

	// ===== 冲刺能力 =====

	// ChargeDuration 蓄满一次冲刺所需时间
	ChargeDuration float64 `yaml:"charge_duration"`
	// DashDuration 冲刺（强制速度）持续时间
	DashDuration float64 `yaml:"dash_duration"`
	// DashImmunityDuration 满蓄力时冲刺效果（免伤+可击杀）持续时间，按蓄力比例缩放
	DashImmunityDuration float64 `yaml:"dash_immunity_duration"`
	// DashSpeed 冲刺速度
	DashSpeed float64 `yaml:"dash_speed"`
	// AbilityCooldown 冲刺结束后再次蓄力前的冷却（0 表示无冷却）
	AbilityCooldown float64 `yaml:"ability_cooldown"`

	// ===== 核爆 =====

	NukeRadius   float64 `yaml:"nuke_radius"`
	NukeDuration float64 `yaml:"nuke_duration"`

	// ===== 碰撞与受击反馈 =====

	// CollisionDamage 机体碰撞对飞行者造成的伤害
	CollisionDamage uint8 `yaml:"collision_damage"`
	// CollisionImmunityDuration 受击后的碰撞免疫时长
	CollisionImmunityDuration float64 `yaml:"collision_immunity_duration"`
	// BlinkInterval 免疫期间闪烁的周期
	BlinkInterval float64 `yaml:"blink_interval"`
	// RepulsionForce 碰撞时沿分离方向施加的击退速度
	RepulsionForce float64 `yaml:"repulsion_force"`
	// WeakSpotDamage 冲刺命中弱点造成的伤害
	WeakSpotDamage uint8 `yaml:"weak_spot_damage"`

	// ===== 无人机 =====

	DroneRadius    float64 `yaml:"drone_radius"`
	DroneHealth    uint8   `yaml:"drone_health"`
	WeakSpotWidth  float64 `yaml:"weak_spot_width"`
	WeakSpotDepth  float64 `yaml:"weak_spot_depth"`
	HoverAmplitude float64 `yaml:"hover_amplitude"`
	HoverFrequency float64 `yaml:"hover_frequency"`
	HoverStiffness float64 `yaml:"hover_stiffness"`

	// ===== 时间步 =====

	// FixedTimestep 固定模拟步长
	FixedTimestep float64 `yaml:"fixed_timestep"`
	// MaxFrameTime 单帧最多累计的真实时间（防止卡顿后追帧雪崩）
	MaxFrameTime float64 `yaml:"max_frame_time"`
}

// DefaultGameConfig 返回默认参数
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Gravity:                   -42.0,
		ChargingGravityMultiplier: 0.2,
		MovementSmoothing:         8.0,
		AirFriction:               2.0,
		GroundFriction:            6.0,
		ChargingFriction:          0.0,

		FloorY:       -160.0,
		FloorEpsilon: 0.01,
		XLimit:       1000.0,
		CeilingY:     300.0,
		SpringForce:  6.0,
		MaxPull:      -280.0,

		PlayerXAcceleration: 3200.0,
		PlayerYAcceleration: 2200.0,
		PlayerMaxXSpeed:     240.0,
		PlayerMinFallSpeed:  -280.0,
		PlayerMaxRiseSpeed:  280.0,
		PlayerRadius:        16.0,
		PlayerHealth:        3,

		ChargeDuration:       0.75,
		DashDuration:         0.12,
		DashImmunityDuration: 1.0,
		DashSpeed:            3000.0,
		AbilityCooldown:      0.0,

		NukeRadius:   160.0,
		NukeDuration: 0.4,

		CollisionDamage:           1,
		CollisionImmunityDuration: 1.0,
		BlinkInterval:             0.05,
		RepulsionForce:            200.0,
		WeakSpotDamage:            3,

		DroneRadius:    16.0,
		DroneHealth:    1,
		WeakSpotWidth:  16.0,
		WeakSpotDepth:  8.0,
		HoverAmplitude: 12.0,
		HoverFrequency: 1.5,
		HoverStiffness: 4.0,

		FixedTimestep: 1.0 / 60.0,
		MaxFrameTime:  0.25,
	}
}

// LoadGameConfig 加载模拟参数
//
// 参数:
//   - path: 配置文件路径（如 "data/game_config.yaml"）
//
// 返回:
//   - *GameConfig: 以默认值为底、被文件覆盖后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 从 YAML 字节解析模拟参数
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查会导致模拟不变量被破坏的取值：
//   - 半径、持续时间、时间步必须为正
//   - 摩擦率、平滑系数不能为负
//   - 生命值必须大于 0
//   - 天花板必须高于地面
func (c *GameConfig) Validate() error {
	var errs []error

	positive := map[string]float64{
		"player_radius":               c.PlayerRadius,
		"drone_radius":                c.DroneRadius,
		"nuke_radius":                 c.NukeRadius,
		"charge_duration":             c.ChargeDuration,
		"dash_duration":               c.DashDuration,
		"dash_immunity_duration":      c.DashImmunityDuration,
		"nuke_duration":               c.NukeDuration,
		"collision_immunity_duration": c.CollisionImmunityDuration,
		"blink_interval":              c.BlinkInterval,
		"fixed_timestep":              c.FixedTimestep,
		"max_frame_time":              c.MaxFrameTime,
		"weak_spot_width":             c.WeakSpotWidth,
		"weak_spot_depth":             c.WeakSpotDepth,
	}
	for _, name := range sortedKeys(positive) {
		if positive[name] <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %.3f", name, positive[name]))
		}
	}

	nonNegative := map[string]float64{
		"movement_smoothing": c.MovementSmoothing,
		"air_friction":       c.AirFriction,
		"ground_friction":    c.GroundFriction,
		"charging_friction":  c.ChargingFriction,
		"floor_epsilon":      c.FloorEpsilon,
		"spring_force":       c.SpringForce,
		"ability_cooldown":   c.AbilityCooldown,
		"repulsion_force":    c.RepulsionForce,
	}
	for _, name := range sortedKeys(nonNegative) {
		if nonNegative[name] < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %.3f", name, nonNegative[name]))
		}
	}

	if c.PlayerHealth == 0 {
		errs = append(errs, errors.New("player_health must be > 0"))
	}
	if c.DroneHealth == 0 {
		errs = append(errs, errors.New("drone_health must be > 0"))
	}
	if c.CeilingY <= c.FloorY {
		errs = append(errs, fmt.Errorf("ceiling_y(%.1f) must be above floor_y(%.1f)", c.CeilingY, c.FloorY))
	}
	if c.MaxPull > 0 {
		errs = append(errs, fmt.Errorf("max_pull must be <= 0, got %.1f", c.MaxPull))
	}
	if c.PlayerMinFallSpeed > c.PlayerMaxRiseSpeed {
		errs = append(errs, fmt.Errorf("player_min_fall_speed(%.1f) > player_max_rise_speed(%.1f)",
			c.PlayerMinFallSpeed, c.PlayerMaxRiseSpeed))
	}

	return errors.Join(errs...)
}

// sortedKeys 按字母序返回键，保证错误信息顺序稳定
func sortedKeys(m map[string]float64) []string {
	return slices.Sorted(maps.Keys(m))
}
