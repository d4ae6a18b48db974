package handler

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/response"
	"RecipeHub/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	recipeSvc     service.RecipeService
	bestSvc       service.BestRecipeService
	moderationSvc service.ModerationService
	favoriteSvc   service.FavoriteService
	reviewSvc     service.ReviewService
	searchSvc     service.SearchService
}

func NewRecipeHandler(
	recipeSvc service.RecipeService,
	bestSvc service.BestRecipeService,
	moderationSvc service.ModerationService,
	favoriteSvc service.FavoriteService,
	reviewSvc service.ReviewService,
	searchSvc service.SearchService,
) *RecipeHandler {
	return &RecipeHandler{
		recipeSvc:     recipeSvc,
		bestSvc:       bestSvc,
		moderationSvc: moderationSvc,
		favoriteSvc:   favoriteSvc,
		reviewSvc:     reviewSvc,
		searchSvc:     searchSvc,
	}
}

// ListRecipes 分页查询菜谱，支持搜索、分类、烹饪时间过滤与排序
func (s *RecipeHandler) ListRecipes(c *gin.Context) {
	q := &dto.RecipeListQuery{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Category: c.Query("category"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", consts.RecipePageSize),
	}
	if raw := c.Query("cooking_time_gte"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		q.CookingTimeGte = &v
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > consts.RecipeMaxPageSize {
		q.PageSize = consts.RecipePageSize
	}

	list, total, err := s.recipeSvc.ListRecipes(c.Request.Context(), principal(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, total, q.Page, q.PageSize, "page_size", list)
}

// Builder 按食材组合查找菜谱
func (s *RecipeHandler) Builder(c *gin.Context) {
	list, err := s.recipeSvc.BuildByIngredients(c.Request.Context(), principal(c), c.Query("ingredients"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.RecipeBuilderDTO{Recipes: list})
}

// Search 全文检索
func (s *RecipeHandler) Search(c *gin.Context) {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	list, err := s.searchSvc.Search(c.Request.Context(), principal(c), c.Query("q"), page, consts.RecipePageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *RecipeHandler) MyRecipes(c *gin.Context) {
	list, err := s.recipeSvc.ListMyRecipes(c.Request.Context(), principal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *RecipeHandler) BestRecipes(c *gin.Context) {
	list, err := s.bestSvc.GetBestRecipes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// InProcess 待审核菜谱，仅 staff
func (s *RecipeHandler) InProcess(c *gin.Context) {
	list, err := s.moderationSvc.ListInProcess(c.Request.Context(), principal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetRecipe 菜谱详情，同时记录浏览
func (s *RecipeHandler) GetRecipe(c *gin.Context) {
	detail, err := s.recipeSvc.GetRecipeDetail(c.Request.Context(), principal(c), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

func (s *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req dto.RecipeCreateDTO
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	recipe, err := s.recipeSvc.CreateRecipe(c.Request.Context(), principal(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, recipe)
}

// UpdateRecipe PUT 需要完整字段，PATCH 只修改出现的字段
func (s *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var update *dto.RecipeUpdateDTO
	if c.Request.Method == http.MethodPut {
		var req dto.RecipeCreateDTO
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
		update = req.ToUpdate()
	} else {
		update = &dto.RecipeUpdateDTO{}
		if err := bindJSON(c, update); err != nil {
			response.Error(c, err)
			return
		}
	}

	recipe, err := s.recipeSvc.UpdateRecipe(c.Request.Context(), principal(c), c.Param("slug"), update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, recipe)
}

func (s *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := s.recipeSvc.DeleteRecipe(c.Request.Context(), principal(c), c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Moderate 修改审核状态
func (s *RecipeHandler) Moderate(c *gin.Context) {
	var req dto.ModerateDTO
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.moderationSvc.Moderate(c.Request.Context(), principal(c), c.Param("slug"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *RecipeHandler) AddFavorite(c *gin.Context) {
	if err := s.favoriteSvc.AddFavorite(c.Request.Context(), principal(c), c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToggleFavoriteDTO{Status: "ok", IsFavorited: true})
}

func (s *RecipeHandler) RemoveFavorite(c *gin.Context) {
	if err := s.favoriteSvc.RemoveFavorite(c.Request.Context(), principal(c), c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UploadPhoto multipart 字段名 photo
func (s *RecipeHandler) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, service.ErrMissingFields)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	res, err := s.recipeSvc.UploadPhoto(c.Request.Context(), principal(c), c.Param("slug"),
		fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *RecipeHandler) Reviews(c *gin.Context) {
	list, err := s.reviewSvc.ListReviews(c.Request.Context(), principal(c), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
