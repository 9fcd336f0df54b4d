package gameplay

// EventHandler 事件处理函数
type EventHandler func(Event)

// EventBus 单线程事件总线
//
// 模拟过程中各系统只 Publish（入队），帧末由 Simulation 调用 Dispatch
// 按发布顺序投递给订阅者。订阅者（音效、HUD、震屏）是否存在、是否成功，
// 都不影响模拟结果。
type EventBus struct {
	pending  []Event
	handlers map[EventType][]EventHandler
	all      []EventHandler
}

// NewEventBus 创建事件总线
func NewEventBus() *EventBus {
	return &EventBus{
		pending:  make([]Event, 0, 16),
		handlers: make(map[EventType][]EventHandler),
	}
}

// Publish 入队一个事件
func (b *EventBus) Publish(eventType EventType, payload any) {
	b.pending = append(b.pending, Event{Type: eventType, Payload: payload})
}

// Subscribe 订阅指定类型的事件
func (b *EventBus) Subscribe(eventType EventType, handler EventHandler) {
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll 订阅全部事件（调试、记录用）
func (b *EventBus) SubscribeAll(handler EventHandler) {
	b.all = append(b.all, handler)
}

// Pending 返回尚未投递的事件（只读）
func (b *EventBus) Pending() []Event {
	return b.pending
}

// Dispatch 按发布顺序投递全部待处理事件，返回投递数量
// 处理函数中再次 Publish 的事件会在下一次 Dispatch 时投递
func (b *EventBus) Dispatch() int {
	if len(b.pending) == 0 {
		return 0
	}

	batch := b.pending
	b.pending = make([]Event, 0, cap(batch))

	for _, ev := range batch {
		for _, h := range b.handlers[ev.Type] {
			h(ev)
		}
		for _, h := range b.all {
			h(ev)
		}
	}
	return len(batch)
}

// Clear 丢弃未投递的事件
func (b *EventBus) Clear() {
	b.pending = b.pending[:0]
}
