package response

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/logger"
	"RecipeHub/internal/pkg/util"
	"RecipeHub/internal/service"
	"errors"
	log "log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 200 返回
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail 失败返回 {"error": message}
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}

// Error 按错误类型选择状态码，未知错误统一返回 500
func Error(c *gin.Context, err error) {
	var fieldErr *util.ValidationError
	if errors.As(err, &fieldErr) {
		Fail(c, http.StatusBadRequest, fieldErr.Error())
		return
	}

	var ingredientErr *util.IngredientError
	if errors.As(err, &ingredientErr) {
		Fail(c, http.StatusBadRequest, ingredientErr.Error())
		return
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, util.FirstFieldError(ve).Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, http.StatusBadRequest, service.ErrInvalidJSON.Error())
		return
	}

	code, ok := service.StatusOf(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "unhandled error",
			"err", err,
			"path", c.Request.URL.Path,
			"trace_id", logger.TraceID(c.Request.Context()),
		)
		Fail(c, http.StatusInternalServerError, service.UnExpectedError.Error())
		return
	}
	if code == http.StatusInternalServerError {
		log.ErrorContext(c.Request.Context(), "internal error", "err", err)
	}
	Fail(c, code, err.Error())
}

// Page 分页返回，sizeParam 为当前接口的每页数量参数名
func Page(c *gin.Context, count int64, page, size int, sizeParam string, results any) {
	res := dto.PageDTO{Count: count, Results: results}
	if int64(page*size) < count {
		next := pageURL(c, page+1, sizeParam, size)
		res.Next = &next
	}
	if page > 1 {
		prev := pageURL(c, page-1, sizeParam, size)
		res.Previous = &prev
	}
	c.JSON(http.StatusOK, res)
}

// pageURL 第一页不携带 page 参数
func pageURL(c *gin.Context, page int, sizeParam string, size int) string {
	q := url.Values{}
	for k, v := range c.Request.URL.Query() {
		q[k] = append([]string(nil), v...)
	}
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	if q.Has(sizeParam) {
		q.Set(sizeParam, strconv.Itoa(size))
	}

	u := baseURL(c) + c.Request.URL.Path
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func baseURL(c *gin.Context) string {
	if v, ok := c.Get(consts.ContextBase); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
