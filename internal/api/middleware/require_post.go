package middleware

import (
	"RecipeHub/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequirePOST 旧版 JSON 接口只接受 POST
func RequirePOST() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			response.Fail(c, http.StatusMethodNotAllowed, "POST required")
			return
		}
		c.Next()
	}
}
