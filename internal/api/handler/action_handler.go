package handler

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/pkg/response"
	"RecipeHub/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

// ActionHandler 页面使用的 JSON 接口：收藏切换、评分、收藏页
type ActionHandler struct {
	favoriteSvc service.FavoriteService
	reviewSvc   service.ReviewService
}

func NewActionHandler(favoriteSvc service.FavoriteService, reviewSvc service.ReviewService) *ActionHandler {
	return &ActionHandler{
		favoriteSvc: favoriteSvc,
		reviewSvc:   reviewSvc,
	}
}

func bindSlug(c *gin.Context) (string, error) {
	var req dto.SlugDTO
	if err := bindJSON(c, &req); err != nil {
		return "", err
	}
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return "", service.ErrMissingFields
	}
	return slug, nil
}

// SaveRecipe 收藏状态切换
func (s *ActionHandler) SaveRecipe(c *gin.Context) {
	slug, err := bindSlug(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	favorited, err := s.favoriteSvc.ToggleFavorite(c.Request.Context(), principal(c), slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToggleFavoriteDTO{Status: "ok", IsFavorited: favorited})
}

// SendReview 创建或更新评分
func (s *ActionHandler) SendReview(c *gin.Context) {
	var req dto.SendReviewDTO
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Slug == "" || req.Rating == nil {
		response.Error(c, service.ErrMissingFields)
		return
	}
	res, err := s.reviewSvc.SubmitReview(c.Request.Context(), principal(c), req.Slug, *req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// SavedRecipes 当前用户的收藏列表
func (s *ActionHandler) SavedRecipes(c *gin.Context) {
	list, err := s.favoriteSvc.ListSaved(c.Request.Context(), principal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *ActionHandler) RemoveSavedRecipe(c *gin.Context) {
	slug, err := bindSlug(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	removed, err := s.favoriteSvc.RemoveSaved(c.Request.Context(), principal(c), slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.RemoveFavoriteDTO{Status: "ok", Removed: removed})
}
