package api

import (
	"RecipeHub/internal/api/middleware"
	"RecipeHub/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.BaseURLMiddleware(group.BaseURL))
	logger.SetupGin(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := middleware.AuthMiddleware(group.Tokens)
	optional := middleware.AuthOptionalMiddleware(group.Tokens)
	staff := middleware.CheckStaff()

	recipe := group.RecipeHandler
	comment := group.CommentHandler
	category := group.CategoryHandler
	action := group.ActionHandler

	recipeGroup := r.Group("/recipes")
	{
		// 无需登录即可访问的接口，staff Token 可见全部状态
		publicGroup := recipeGroup.Group("")
		publicGroup.Use(optional)
		{
			publicGroup.GET("", recipe.ListRecipes)
			publicGroup.GET("/builder", recipe.Builder)
			publicGroup.GET("/search", recipe.Search)
		}

		authGroup := recipeGroup.Group("")
		authGroup.Use(authed)
		{
			authGroup.POST("", recipe.CreateRecipe)
			authGroup.GET("/my-recipes", recipe.MyRecipes)
			authGroup.GET("/best-recipes", recipe.BestRecipes)
			authGroup.GET("/in-process", staff, recipe.InProcess)
			authGroup.GET("/:slug", recipe.GetRecipe)
			authGroup.PUT("/:slug", recipe.UpdateRecipe)
			authGroup.PATCH("/:slug", recipe.UpdateRecipe)
			authGroup.DELETE("/:slug", recipe.DeleteRecipe)
			authGroup.PATCH("/:slug/moderate", recipe.Moderate)
			authGroup.POST("/:slug/favorite", recipe.AddFavorite)
			authGroup.DELETE("/:slug/favorite", recipe.RemoveFavorite)
			authGroup.POST("/:slug/photo", recipe.UploadPhoto)
			authGroup.GET("/:slug/reviews", recipe.Reviews)
			authGroup.GET("/:slug/comments", comment.ListByRecipe)
		}
	}

	// 页面 JSON 接口，非 POST 请求先于鉴权返回 405
	r.Any("/save-recipe/", middleware.RequirePOST(), authed, action.SaveRecipe)
	r.Any("/send-review/", middleware.RequirePOST(), authed, action.SendReview)

	accountGroup := r.Group("/accounts")
	{
		accountGroup.GET("/saved-recipes", authed, action.SavedRecipes)
		accountGroup.Any("/remove-saved-recipe/", middleware.RequirePOST(), authed, action.RemoveSavedRecipe)
		accountGroup.POST("/logout", authed, group.AccountHandler.Logout)
	}

	commentGroup := r.Group("/comments")
	commentGroup.Use(authed)
	{
		commentGroup.GET("", staff, comment.ListAll)
		commentGroup.GET("/my-comments", comment.MyComments)
		commentGroup.POST("", comment.CreateComment)
		commentGroup.PUT("/:id", comment.UpdateComment)
		commentGroup.PATCH("/:id", comment.UpdateComment)
		commentGroup.DELETE("/:id", comment.DeleteComment)
		commentGroup.PATCH("/:id/activate", staff, comment.Activate)
	}

	categoryGroup := r.Group("/categories")
	{
		categoryGroup.GET("", category.ListCategories)
		categoryGroup.GET("/:id", category.GetCategory)

		// 需要登录 & 拥有 staff 角色
		adminGroup := categoryGroup.Group("")
		adminGroup.Use(authed, staff)
		{
			adminGroup.POST("", category.CreateCategory)
			adminGroup.PUT("/:id", category.UpdateCategory)
			adminGroup.DELETE("/:id", category.DeleteCategory)
		}
	}

	notificationGroup := r.Group("/notifications")
	notificationGroup.Use(authed)
	{
		notificationGroup.GET("", group.NotificationHandler.GetNotifications)
		notificationGroup.GET("/unread-count", group.NotificationHandler.GetUnreadCount)
		notificationGroup.PUT("/read-all", group.NotificationHandler.MarkAllRead)
		notificationGroup.PUT("/:id/read", group.NotificationHandler.MarkRead)
	}

	return r
}
