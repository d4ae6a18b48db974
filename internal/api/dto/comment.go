package dto

import (
	"time"
)

type CommentCreateDTO struct {
	Recipe string `json:"recipe" validate:"required"`
	Text   string `json:"text" validate:"required,min=1,max=2000"`
}

type CommentUpdateDTO struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

type CommentActivateDTO struct {
	Active *bool `json:"active" validate:"required"`
}

type CommentDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"user"`
	Recipe    string    `json:"recipe"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentAdminDTO 管理视图，带作者 id 与启用状态
type CommentAdminDTO struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user"`
	Recipe    string    `json:"recipe"`
	Text      string    `json:"text"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
