package systems

import (
	"log"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/entities"
	"github.com/gonewx/pigeondash/pkg/gameplay"
)

// hoverPhaseStep 相邻无人机悬停相位差（弧度）
const hoverPhaseStep = 0.7

// WaveSpawnSystem 波次生成系统
//
// 职责：
//   - 按关卡配置生成一波无人机
//   - 场上无人机全部被消灭后，等待 RespawnDelay 秒再生成下一波
//
// RespawnDelay < 0 时只生成第一波。
type WaveSpawnSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameConfig
	levelConfig   *config.LevelConfig
	bus           *gameplay.EventBus

	wave       int
	clearTimer float64
}

// NewWaveSpawnSystem 创建波次生成系统
//
// 参数：
//
//	em - 实体管理器
//	cfg - 模拟参数（无人机默认半径、生命值）
//	lc - 关卡配置
//	bus - 事件总线，可以为 nil
func NewWaveSpawnSystem(em *ecs.EntityManager, cfg *config.GameConfig, lc *config.LevelConfig, bus *gameplay.EventBus) *WaveSpawnSystem {
	return &WaveSpawnSystem{
		entityManager: em,
		cfg:           cfg,
		levelConfig:   lc,
		bus:           bus,
	}
}

// Wave 返回已生成的波次数
func (s *WaveSpawnSystem) Wave() int {
	return s.wave
}

// SpawnWave 立即生成一波无人机
//
// 返回：
//
//	成功生成的无人机数量
func (s *WaveSpawnSystem) SpawnWave() int {
	if s.levelConfig == nil {
		return 0
	}

	spawned := 0
	for i, spawn := range s.levelConfig.Drones {
		if _, err := entities.NewDroneEntity(s.entityManager, s.cfg, spawn, float64(i)*hoverPhaseStep); err != nil {
			log.Printf("[WaveSpawnSystem] 生成无人机失败 (index=%d): %v", i, err)
			continue
		}
		spawned++
	}

	s.wave++
	s.clearTimer = 0
	log.Printf("[WaveSpawnSystem] 第 %d 波: 生成 %d 架无人机", s.wave, spawned)
	if s.bus != nil {
		s.bus.Publish(gameplay.EventWaveSpawned, gameplay.WaveSpawnedPayload{Wave: s.wave, Drones: spawned})
	}
	return spawned
}

// Update 场上清空后计时并生成下一波
func (s *WaveSpawnSystem) Update(deltaTime float64) {
	if s.levelConfig == nil || s.levelConfig.RespawnDelay < 0 {
		return
	}
	if len(ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager)) > 0 {
		s.clearTimer = 0
		return
	}

	s.clearTimer += deltaTime
	if s.clearTimer >= s.levelConfig.RespawnDelay {
		s.SpawnWave()
	}
}

// Reset 清零波次计数
func (s *WaveSpawnSystem) Reset() {
	s.wave = 0
	s.clearTimer = 0
}
