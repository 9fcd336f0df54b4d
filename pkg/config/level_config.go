package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gonewx/pigeondash/pkg/types"
	"gopkg.in/yaml.v3"
)

// LevelConfig 关卡配置
// 只描述无人机的初始状态（位置、弱点方位、生命值），不包含任何随机生成策略。
//
// 配置文件位置: data/level.yaml
type LevelConfig struct {
	Name string `yaml:"name"`

	// Drones 每一波生成的无人机列表
	Drones []DroneSpawn `yaml:"drones"`

	// RespawnDelay 清空后重新生成一波的延迟（秒），<0 表示不再生成
	RespawnDelay float64 `yaml:"respawn_delay"`
}

// DroneSpawn 单个无人机的初始状态
// 数值为 0 的字段在生成时使用 GameConfig 中的默认值
type DroneSpawn struct {
	X        float64                `yaml:"x"`
	Y        float64                `yaml:"y"`
	WeakSpot types.WeakSpotLocation `yaml:"weak_spot"`
	Health   uint8                  `yaml:"health"`
	Radius   float64                `yaml:"radius"`
	// Hover 是否悬停摆动（默认 true）
	Hover *bool `yaml:"hover"`
}

// HoverEnabled 返回是否悬停（未配置时默认悬停）
func (d DroneSpawn) HoverEnabled() bool {
	return d.Hover == nil || *d.Hover
}

// DefaultLevelConfig 内置关卡：在玩家上方放置一架南向弱点无人机，
// 再在两侧各放一架，便于测试连击与核爆
func DefaultLevelConfig() *LevelConfig {
	return &LevelConfig{
		Name: "default",
		Drones: []DroneSpawn{
			{X: 0, Y: 200, WeakSpot: types.WeakSpotSouth},
			{X: -260, Y: 40, WeakSpot: types.WeakSpotEast},
			{X: 260, Y: 40, WeakSpot: types.WeakSpotWest},
		},
		RespawnDelay: 2.0,
	}
}

// LoadLevelConfig 从YAML文件加载关卡配置
//
// 参数:
//   - path: 关卡配置文件路径
//
// 返回:
//   - *LevelConfig: 解析后的关卡配置
//   - error: 文件读取、解析或验证失败时返回错误
func LoadLevelConfig(path string) (*LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", path, err)
	}

	level, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return level, nil
}

// ParseLevelConfig 从 YAML 字节解析关卡配置
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	var level LevelConfig
	if err := yaml.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML: %w", err)
	}

	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level config: %w", err)
	}

	return &level, nil
}

// Validate 验证关卡配置
func (l *LevelConfig) Validate() error {
	if len(l.Drones) == 0 {
		return errors.New("level must define at least one drone")
	}
	for i, d := range l.Drones {
		if d.Radius < 0 {
			return fmt.Errorf("drone[%d]: radius must be >= 0, got %.1f", i, d.Radius)
		}
	}
	return nil
}
