package middleware

import (
	"RecipeHub/internal/pkg/consts"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// BaseURLMiddleware 确定分页链接使用的站点地址，未配置时取请求的 Host
func BaseURLMiddleware(configured string) gin.HandlerFunc {
	configured = strings.TrimRight(configured, "/")
	return func(c *gin.Context) {
		baseURL := configured
		if baseURL == "" {
			scheme := "http"
			if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
				scheme = "https"
			}
			baseURL = fmt.Sprintf("%s://%s", scheme, c.Request.Host)
		}
		c.Set(consts.ContextBase, baseURL)
		c.Next()
	}
}
