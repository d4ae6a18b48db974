package middleware

import (
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入身份，失败或缺失则按匿名处理
func AuthOptionalMiddleware(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(consts.ContextUserID, uint64(0))
		c.Set(consts.ContextStaff, false)

		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		if claims, err := tokens.Authenticate(c.Request.Context(), token); err == nil {
			setIdentity(c, claims)
		}
		c.Next()
	}
}
