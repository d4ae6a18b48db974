package consts

import "fmt"

const (
	RecipeRatingsKey = "recipe:ratings"
	BestRecipesKey   = "recipe:best"
	TokenBlacklist   = "token:blacklist:"
)

const (
	LeaderboardRebuildLock = "lock:recipe:ratings:rebuild"
)

// RecipeViewsKey 菜谱总浏览量
func RecipeViewsKey(recipeID uint64) string {
	return fmt.Sprintf("recipe:%d:views", recipeID)
}

// RecipeViewerKey 用户是否浏览过菜谱的标记
func RecipeViewerKey(userID, recipeID uint64) string {
	return fmt.Sprintf("user:%d:recipe:%d:view", userID, recipeID)
}
