package dto

// NotificationDTO 站内通知返回对象
type NotificationDTO struct {
	ID        string         `json:"id"`
	Type      int8           `json:"type"` // 1-审核通过, 2-审核驳回
	TargetID  uint64         `json:"target_id"`
	Content   string         `json:"content"`
	Payload   map[string]any `json:"payload"`
	IsRead    bool           `json:"is_read"`
	CreatedAt string         `json:"created_at"`
}

type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}
