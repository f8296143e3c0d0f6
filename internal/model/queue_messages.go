package model

// ProfileCreatedMessage 资料创建事件，worker 用它预热资料缓存
type ProfileCreatedMessage struct {
	MessageID  string  `json:"message_id"` // 消息唯一ID，用于幂等性检查
	ProfileID  string  `json:"profile_id"`
	OccurredAt string  `json:"occurred_at"`
	Profile    Profile `json:"profile"`
}
