package handler

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/response"
	"RecipeHub/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categorySvc service.CategoryService
}

func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// ListCategories 每页数量参数为 page-size
func (s *CategoryHandler) ListCategories(c *gin.Context) {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	size := queryInt(c, "page-size", consts.CategoryPageSize)
	if size < 1 {
		size = consts.CategoryPageSize
	}
	if size > consts.CategoryMaxPageSize {
		size = consts.CategoryMaxPageSize
	}

	list, total, err := s.categorySvc.ListCategories(c.Request.Context(), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, total, page, size, "page-size", list)
}

func (s *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, service.ErrCategoryNotFound)
		return
	}
	category, err := s.categorySvc.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryCreateDTO
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	category, err := s.categorySvc.CreateCategory(c.Request.Context(), principal(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

func (s *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, service.ErrCategoryNotFound)
		return
	}
	var req dto.CategoryCreateDTO
	if err = bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	category, err := s.categorySvc.UpdateCategory(c.Request.Context(), principal(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, service.ErrCategoryNotFound)
		return
	}
	if err = s.categorySvc.DeleteCategory(c.Request.Context(), principal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
