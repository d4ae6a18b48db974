package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotifyRecipeApproved int8 = 1
	NotifyRecipeRejected int8 = 2
)

// Notification 站内通知模型
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID uint64             `bson:"receiver_id" json:"receiverId"` // 菜谱作者
	Type       int8               `bson:"type" json:"type"`              // 1-审核通过, 2-审核驳回
	TargetID   uint64             `bson:"target_id" json:"targetId"`     // 菜谱ID
	Content    string             `bson:"content" json:"content"`
	Payload    map[string]any     `bson:"payload" json:"payload"` // 菜谱 slug、名称快照
	IsRead     bool               `bson:"is_read" json:"isRead"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
