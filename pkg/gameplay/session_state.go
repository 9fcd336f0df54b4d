package gameplay

// SessionState 一局游戏的状态
type SessionState int

const (
	// SessionRunning 进行中
	SessionRunning SessionState = iota
	// SessionGameOver 飞行者阵亡，模拟停止推进
	SessionGameOver
)

// String 便于日志与 HUD 输出
func (s SessionState) String() string {
	if s == SessionGameOver {
		return "game_over"
	}
	return "running"
}

// Session 会话状态持有者，传给 HealthSystem 以切换到结束状态
type Session struct {
	State SessionState
}

// IsOver 是否已结束
func (s *Session) IsOver() bool {
	return s.State == SessionGameOver
}

// End 进入结束状态，返回是否为本次调用导致的切换
func (s *Session) End() bool {
	if s.State == SessionGameOver {
		return false
	}
	s.State = SessionGameOver
	return true
}
