package types

import (
	"fmt"
	"math"
	"strings"

	"github.com/gonewx/pigeondash/pkg/utils"
	"gopkg.in/yaml.v3"
)

// WeakSpotLocation 无人机弱点所在的方位
//
// 方位是相对无人机中心的罗盘方向（世界坐标 Y 轴向上）:
// North=+Y, South=-Y, East=+X, West=-X，斜向为归一化的对角方向。
type WeakSpotLocation int

const (
	// WeakSpotSouth 底部（默认）
	WeakSpotSouth WeakSpotLocation = iota
	WeakSpotNorth
	WeakSpotEast
	WeakSpotWest
	WeakSpotNorthEast
	WeakSpotNorthWest
	WeakSpotSouthEast
	WeakSpotSouthWest
)

var weakSpotNames = map[WeakSpotLocation]string{
	WeakSpotSouth:     "south",
	WeakSpotNorth:     "north",
	WeakSpotEast:      "east",
	WeakSpotWest:      "west",
	WeakSpotNorthEast: "north_east",
	WeakSpotNorthWest: "north_west",
	WeakSpotSouthEast: "south_east",
	WeakSpotSouthWest: "south_west",
}

// String 返回配置文件中使用的名称
func (l WeakSpotLocation) String() string {
	if name, ok := weakSpotNames[l]; ok {
		return name
	}
	return fmt.Sprintf("WeakSpotLocation(%d)", int(l))
}

// ParseWeakSpotLocation 解析方位名称（大小写不敏感，允许 "-" 分隔）
func ParseWeakSpotLocation(name string) (WeakSpotLocation, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if normalized == "" {
		return WeakSpotSouth, nil
	}
	for loc, n := range weakSpotNames {
		if n == normalized {
			return loc, nil
		}
	}
	return WeakSpotSouth, fmt.Errorf("unknown weak spot location %q", name)
}

// UnmarshalYAML 支持在 YAML 中直接写方位名称
func (l *WeakSpotLocation) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	loc, err := ParseWeakSpotLocation(name)
	if err != nil {
		return err
	}
	*l = loc
	return nil
}

// MarshalYAML 输出方位名称
func (l WeakSpotLocation) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// Direction 返回从无人机中心指向弱点的单位向量
func (l WeakSpotLocation) Direction() utils.Vec2 {
	const d = math.Sqrt2 / 2
	switch l {
	case WeakSpotNorth:
		return utils.NewVec2(0, 1)
	case WeakSpotEast:
		return utils.NewVec2(1, 0)
	case WeakSpotWest:
		return utils.NewVec2(-1, 0)
	case WeakSpotNorthEast:
		return utils.NewVec2(d, d)
	case WeakSpotNorthWest:
		return utils.NewVec2(-d, d)
	case WeakSpotSouthEast:
		return utils.NewVec2(d, -d)
	case WeakSpotSouthWest:
		return utils.NewVec2(-d, -d)
	default:
		return utils.NewVec2(0, -1)
	}
}

// Rotation 返回弱点矩形的旋转角（弧度）
//
// 矩形局部坐标系: +X 沿无人机表面切线（宽度方向），+Y 为外法线（厚度方向）。
// 北向弱点不旋转；其余方位的旋转使局部 +Y 对齐 Direction()。
func (l WeakSpotLocation) Rotation() float64 {
	dir := l.Direction()
	return math.Atan2(dir.Y, dir.X) - math.Pi/2
}
