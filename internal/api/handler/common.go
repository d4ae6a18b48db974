package handler

import (
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// principal 由鉴权中间件注入的身份构造调用者
func principal(c *gin.Context) service.Principal {
	return service.Principal{
		UserID: c.GetUint64(consts.ContextUserID),
		Staff:  c.GetBool(consts.ContextStaff),
	}
}

// bindJSON 请求体不是合法 JSON 时统一返回 ErrInvalidJSON
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return service.ErrInvalidJSON
	}
	return nil
}

func parseID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}
