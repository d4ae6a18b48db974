package service

import (
	"RecipeHub/internal/model"
	"context"
	"io"
)

// PhotoStorage 图片对象存储
type PhotoStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// EventPublisher 审核事件发布
type EventPublisher interface {
	PublishModeration(ctx context.Context, ev *model.ModerationEvent) error
}
