package middleware

import (
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/response"
	"RecipeHub/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户是否拥有至少一个指定的角色
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice(consts.ContextRoles)

		hasPermission := false
		for _, required := range requiredRoles {
			for _, userRole := range roles {
				if required == userRole {
					hasPermission = true
					break
				}
			}
			if hasPermission {
				break
			}
		}

		if !hasPermission {
			response.Fail(c, http.StatusForbidden, service.ErrPermissionDenied.Error())
			return
		}

		c.Next()
	}
}

// CheckStaff 管理员或审核员
func CheckStaff() gin.HandlerFunc {
	return CheckRoles(consts.RoleAdmin, consts.RoleModerator)
}
