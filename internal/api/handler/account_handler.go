package handler

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/response"
	"RecipeHub/internal/service"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	tokenSvc service.TokenService
}

func NewAccountHandler(tokenSvc service.TokenService) *AccountHandler {
	return &AccountHandler{tokenSvc: tokenSvc}
}

// Logout 注销当前 Token
func (s *AccountHandler) Logout(c *gin.Context) {
	if err := s.tokenSvc.Logout(c.Request.Context(), c.GetString(consts.ContextToken)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.StatusDTO{Status: "ok"})
}
