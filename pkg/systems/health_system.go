package systems

import (
	"log"

	"github.com/gonewx/pigeondash/pkg/components"
	"github.com/gonewx/pigeondash/pkg/ecs"
	"github.com/gonewx/pigeondash/pkg/gameplay"
)

// HealthSystem 生命值归零的处理
//
//   - 飞行者归零: 会话进入 GameOver，发布 EventGameOver（只发布一次）
//   - 无人机归零: 销毁（正常情况下碰撞系统已经销毁并记分，这里只兜底）
type HealthSystem struct {
	em      *ecs.EntityManager
	session *gameplay.Session
	ledger  *gameplay.ScoreLedger
	bus     *gameplay.EventBus
}

// NewHealthSystem 创建生命值系统
func NewHealthSystem(em *ecs.EntityManager, session *gameplay.Session, ledger *gameplay.ScoreLedger, bus *gameplay.EventBus) *HealthSystem {
	return &HealthSystem{em: em, session: session, ledger: ledger, bus: bus}
}

// Update 检查所有生命值组件
func (s *HealthSystem) Update() {
	for _, id := range ecs.GetEntitiesWith1[*components.HealthComponent](s.em) {
		health, _ := ecs.GetComponent[*components.HealthComponent](s.em, id)
		if !health.IsDead() {
			continue
		}

		if ecs.HasComponent[*components.PlayerComponent](s.em, id) {
			s.endSession()
			continue
		}

		if ecs.HasComponent[*components.EnemyComponent](s.em, id) {
			log.Printf("[HealthSystem] 无人机 %d 生命值归零，移除", id)
			s.em.DestroyEntity(id)
		}
	}
}

func (s *HealthSystem) endSession() {
	if s.session == nil || !s.session.End() {
		return
	}

	var score uint32
	if s.ledger != nil {
		score = s.ledger.Score
	}
	log.Printf("[HealthSystem] 飞行者阵亡，游戏结束。得分=%d", score)
	if s.bus != nil {
		s.bus.Publish(gameplay.EventGameOver, gameplay.GameOverPayload{Score: score})
	}
}
