package api

import (
	"RecipeHub/internal/api/handler"
	"RecipeHub/internal/service"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	Tokens              service.TokenService
	BaseURL             string
	RecipeHandler       *handler.RecipeHandler
	ActionHandler       *handler.ActionHandler
	AccountHandler      *handler.AccountHandler
	CommentHandler      *handler.CommentHandler
	CategoryHandler     *handler.CategoryHandler
	NotificationHandler *handler.NotificationHandler
}
