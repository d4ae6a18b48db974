package model

import "time"

// ModerationEvent 审核结果事件，写入 Kafka 由消费者异步处理
type ModerationEvent struct {
	RecipeID    uint64           `json:"recipe_id"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	OwnerID     uint64           `json:"owner_id"`
	ModeratorID uint64           `json:"moderator_id"`
	Status      ModerationStatus `json:"status"`
	OccurredAt  time.Time        `json:"occurred_at"`
}
