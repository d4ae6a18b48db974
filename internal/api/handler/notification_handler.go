package handler

import (
	"RecipeHub/internal/pkg/response"
	"RecipeHub/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// GetNotifications 分页获取站内通知
func (s *NotificationHandler) GetNotifications(c *gin.Context) {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "page_size", 20)

	list, err := s.notificationSvc.GetNotificationList(c.Request.Context(), principal(c).UserID, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NotificationHandler) GetUnreadCount(c *gin.Context) {
	res, err := s.notificationSvc.GetUnreadCount(c.Request.Context(), principal(c).UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *NotificationHandler) MarkRead(c *gin.Context) {
	if err := s.notificationSvc.MarkRead(c.Request.Context(), principal(c).UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (s *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := s.notificationSvc.MarkAllRead(c.Request.Context(), principal(c).UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
