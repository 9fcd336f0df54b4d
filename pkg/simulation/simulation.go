// Package simulation 组装飞行者模拟核心: 固定顺序的单线程 tick 流水线。
package simulation

import (
	"fmt"
	"log"

	"github.com/gonewx/pigeondash/pkg/config"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/entities"
	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/gonewx/pigeondash/pkg/systems"
	"github.com/gonewx/pigeondash/pkg/utils"
)

// Simulation 模拟核心
//
// 每次 Tick 按固定顺序运行各系统，每个阶段完成并提交修改后下一个阶段才开始；
// 碰撞与核爆判定读取的都是本帧已经积分完成的位置。
// Simulation 不是并发安全的，只能在单个 goroutine（游戏循环）中使用。
type Simulation struct {
	cfg   *config.GameConfig
	level *config.LevelConfig

	em      *ecs.EntityManager
	bus     *gameplay.EventBus
	ledger  *gameplay.ScoreLedger
	session *gameplay.Session

	ability    *systems.AbilitySystem
	movement   *systems.MovementSystem
	hover      *systems.DroneHoverSystem
	locomotion *systems.LocomotionSystem
	collision  *systems.CollisionSystem
	health     *systems.HealthSystem
	immunity   *systems.ImmunitySystem
	lifetime   *systems.LifetimeSystem
	waves      *systems.WaveSpawnSystem

	prevHeld    bool
	accumulator float64
	ticks       uint64

	// Debug 开启后每帧检查不变量，违反时 panic
	Debug bool
}

// New 创建模拟并生成飞行者与第一波无人机
//
// 参数:
//   - cfg: 模拟参数，模拟期间只读
//   - level: 关卡配置（无人机初始状态）
//
// 返回:
//   - *Simulation: 模拟实例
//   - error: 配置无效时返回错误
func New(cfg *config.GameConfig, level *config.LevelConfig) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if level == nil {
		level = config.DefaultLevelConfig()
	}
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level config: %w", err)
	}

	em := ecs.NewEntityManager()
	bus := gameplay.NewEventBus()
	ledger := &gameplay.ScoreLedger{}
	session := &gameplay.Session{}

	s := &Simulation{
		cfg:     cfg,
		level:   level,
		em:      em,
		bus:     bus,
		ledger:  ledger,
		session: session,

		ability:    systems.NewAbilitySystem(em, cfg, bus),
		movement:   systems.NewMovementSystem(em, cfg),
		hover:      systems.NewDroneHoverSystem(em, cfg),
		locomotion: systems.NewLocomotionSystem(em, cfg, bus),
		collision:  systems.NewCollisionSystem(em, cfg, ledger, bus),
		health:     systems.NewHealthSystem(em, session, ledger, bus),
		immunity:   systems.NewImmunitySystem(em),
		lifetime:   systems.NewLifetimeSystem(em),
		waves:      systems.NewWaveSpawnSystem(em, cfg, level, bus),
	}

	if err := s.populate(); err != nil {
		return nil, err
	}
	return s, nil
}

// populate 生成飞行者和第一波无人机
func (s *Simulation) populate() error {
	if _, err := entities.NewFlierEntity(s.em, s.cfg, SpawnPoint(s.cfg)); err != nil {
		return fmt.Errorf("failed to spawn flier: %w", err)
	}
	s.waves.SpawnWave()
	return nil
}

// SpawnPoint 飞行者出生点: 地面上方的场地中央
func SpawnPoint(cfg *config.GameConfig) utils.Vec2 {
	return utils.NewVec2(0, cfg.FloorY+cfg.PlayerRadius*4)
}

// Tick 推进一个模拟步长
//
// 游戏结束后为空操作。帧末移除待删除实体，然后按发布顺序投递事件。
func (s *Simulation) Tick(dt float64, in gameplay.InputIntent) {
	if s.session.IsOver() {
		return
	}

	in = in.WithEdges(s.prevHeld)
	s.prevHeld = in.DashHeld

	s.ability.Update(dt, in)
	s.movement.Update(dt, in)
	s.hover.Update(dt)
	s.locomotion.Update(dt)
	s.ability.ResolveLanding()
	s.collision.Update()
	s.health.Update()
	s.immunity.Update(dt)
	s.lifetime.Update(dt)
	if !s.session.IsOver() {
		s.waves.Update(dt)
	}

	s.em.RemoveMarkedEntities()
	s.ticks++

	if s.Debug {
		s.checkInvariants()
	}

	s.bus.Dispatch()
}

// Advance 累计真实帧时间并运行整数个固定步长
// 单帧累计时间上限为 MaxFrameTime，避免卡顿后追帧雪崩。
//
// 返回:
//   - int: 本次运行的步数
func (s *Simulation) Advance(frameTime float64, in gameplay.InputIntent) int {
	if frameTime < 0 {
		frameTime = 0
	}
	s.accumulator += min(frameTime, s.cfg.MaxFrameTime)

	steps := 0
	for s.accumulator >= s.cfg.FixedTimestep {
		s.Tick(s.cfg.FixedTimestep, in)
		s.accumulator -= s.cfg.FixedTimestep
		steps++
	}
	return steps
}

// Reset 重新开始一局: 清空实体、分数与会话状态，重新生成飞行者和第一波无人机
// 事件订阅保留。
func (s *Simulation) Reset() {
	s.em.Clear()
	s.bus.Clear()
	s.ledger.Reset()
	s.session.State = gameplay.SessionRunning
	s.hover.Reset()
	s.waves.Reset()
	s.prevHeld = false
	s.accumulator = 0
	s.ticks = 0

	if err := s.populate(); err != nil {
		// 配置在 New 中已经校验过，这里失败说明程序有误
		panic(err)
	}
	log.Printf("[Simulation] 重新开始")
}

// Ledger 返回分数账本的副本
func (s *Simulation) Ledger() gameplay.ScoreLedger {
	return *s.ledger
}

// Events 返回事件总线，用于订阅
func (s *Simulation) Events() *gameplay.EventBus {
	return s.bus
}

// State 返回会话状态
func (s *Simulation) State() gameplay.SessionState {
	return s.session.State
}

// Config 返回模拟参数（只读）
func (s *Simulation) Config() *config.GameConfig {
	return s.cfg
}

// Ticks 返回已运行的步数
func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

// EntityManager 返回底层实体管理器（测试与调试工具使用）
func (s *Simulation) EntityManager() *ecs.EntityManager {
	return s.em
}
