// Package gameplay 模拟核心与表现层共用的事件、计分、输入意图和会话状态（不依赖 ebiten）
package gameplay

import (
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// EventType 模拟核心对外发布的离散事件类型
type EventType int

const (
	// EventTookDamage 飞行者受到机体撞击
	// Payload: TookDamagePayload
	EventTookDamage EventType = iota

	// EventLanded 从空中落地
	// Payload: LandedPayload
	EventLanded

	// EventEnemyDestroyed 无人机被摧毁（弱点命中或核爆）
	// Payload: EnemyDestroyedPayload
	EventEnemyDestroyed

	// EventGameOver 飞行者生命值归零
	// Payload: GameOverPayload
	EventGameOver

	// EventDashReleased 松开蓄力，开始冲刺
	// Payload: DashReleasedPayload
	EventDashReleased

	// EventNukeSpawned 满蓄力下冲落地触发核爆
	// Payload: NukeSpawnedPayload
	EventNukeSpawned

	// EventWaveSpawned 生成了一波无人机
	// Payload: WaveSpawnedPayload
	EventWaveSpawned
)

var eventTypeNames = map[EventType]string{
	EventTookDamage:     "took_damage",
	EventLanded:         "landed",
	EventEnemyDestroyed: "enemy_destroyed",
	EventGameOver:       "game_over",
	EventDashReleased:   "dash_released",
	EventNukeSpawned:    "nuke_spawned",
	EventWaveSpawned:    "wave_spawned",
}

// String 事件名称
func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// DestroyCause 无人机被摧毁的原因
type DestroyCause int

const (
	CauseWeakSpot DestroyCause = iota
	CauseNuke
)

// String 便于日志输出
func (c DestroyCause) String() string {
	if c == CauseNuke {
		return "nuke"
	}
	return "weak_spot"
}

// Event 单个事件
type Event struct {
	Type    EventType
	Payload any
}

// TookDamagePayload 受伤事件数据
type TookDamagePayload struct {
	Entity    ecs.EntityID
	Damage    uint8
	Remaining uint8
}

// LandedPayload 落地事件数据
type LandedPayload struct {
	Entity ecs.EntityID
	// ImpactVelocity 落地瞬间的竖直速度大小
	ImpactVelocity float64
}

// EnemyDestroyedPayload 击杀事件数据
type EnemyDestroyedPayload struct {
	Entity   ecs.EntityID
	Position utils.Vec2
	Points   uint32
	Combo    uint32
	Cause    DestroyCause
}

// GameOverPayload 游戏结束事件数据
type GameOverPayload struct {
	Score uint32
}

// DashReleasedPayload 冲刺事件数据
type DashReleasedPayload struct {
	Direction utils.Vec2
	Power     float64
}

// NukeSpawnedPayload 核爆事件数据
type NukeSpawnedPayload struct {
	Entity   ecs.EntityID
	Position utils.Vec2
	Radius   float64
}

// WaveSpawnedPayload 波次事件数据
type WaveSpawnedPayload struct {
	Wave   int
	Drones int
}
