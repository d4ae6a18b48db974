package middleware

import (
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/response"
	"RecipeHub/internal/pkg/security"
	"RecipeHub/internal/service"
	"context"
	"errors"
	log "log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func setIdentity(c *gin.Context, claims *security.UserClaims) {
	c.Set(consts.ContextUserID, claims.UserID)
	c.Set(consts.ContextRoles, claims.Roles)
	c.Set(consts.ContextStaff, consts.IsStaff(claims.Roles))

	newCtx := context.WithValue(c.Request.Context(), consts.ContextUserID, claims.UserID)
	c.Request = c.Request.WithContext(newCtx)
}

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, service.ErrUnauthorized.Error())
			return
		}

		claims, err := tokens.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrTokenInvalid) {
				log.WarnContext(c.Request.Context(), "authenticate failed", "err", err)
			}
			response.Fail(c, http.StatusUnauthorized, service.ErrTokenInvalid.Error())
			return
		}

		setIdentity(c, claims)
		c.Set(consts.ContextToken, token)
		c.Next()
	}
}
