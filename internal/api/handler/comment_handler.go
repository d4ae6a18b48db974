package handler

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/pkg/response"
	"RecipeHub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

// ListAll 全部评论，仅 staff
func (s *CommentHandler) ListAll(c *gin.Context) {
	list, err := s.commentSvc.ListAll(c.Request.Context(), principal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *CommentHandler) ListByRecipe(c *gin.Context) {
	list, err := s.commentSvc.ListByRecipe(c.Request.Context(), principal(c), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *CommentHandler) MyComments(c *gin.Context) {
	list, err := s.commentSvc.ListMine(c.Request.Context(), principal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	comment, err := s.commentSvc.CreateComment(c.Request.Context(), principal(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

func (s *CommentHandler) UpdateComment(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CommentUpdateDTO
	if err = bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	comment, err := s.commentSvc.UpdateComment(c.Request.Context(), principal(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.commentSvc.DeleteComment(c.Request.Context(), principal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Activate 启用或停用评论
func (s *CommentHandler) Activate(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CommentActivateDTO
	if err = bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.Active == nil {
		response.Error(c, service.ErrMissingFields)
		return
	}
	comment, err := s.commentSvc.SetActive(c.Request.Context(), principal(c), id, *req.Active)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}
