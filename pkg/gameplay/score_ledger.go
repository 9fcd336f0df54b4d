package gameplay

// ScoreLedger 分数账本
//
// 由 Simulation 持有，以指针传给碰撞系统；没有全局单例。
// 连击数本身保存在各自的冲刺效果/核爆上，账本只负责累加分数并记录连击统计。
type ScoreLedger struct {
	Score     uint32
	Kills     uint32
	LastCombo uint32
	BestCombo uint32
}

// AwardKill 记一次击杀：得分 1 + combo，返回本次得分
// combo 是击杀前窗口内已有的连击数
func (l *ScoreLedger) AwardKill(combo uint32) uint32 {
	points := 1 + combo
	l.Score += points
	l.Kills++
	l.LastCombo = combo + 1
	if l.LastCombo > l.BestCombo {
		l.BestCombo = l.LastCombo
	}
	return points
}

// Reset 清零（重新开始一局）
func (l *ScoreLedger) Reset() {
	*l = ScoreLedger{}
}
