package service

import (
	"RecipeHub/internal/model"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("Invalid request")
	ErrInvalidJSON          = errors.New("Invalid JSON")
	ErrMissingFields        = errors.New("Missing fields")
	ErrInvalidRating        = errors.New("Rating must be between 1 and 5")
	ErrRecipeNotFound       = errors.New("Recipe not found")
	ErrCategoryNotFound     = errors.New("Category not found")
	ErrCategoryInvalid      = errors.New("Invalid category")
	ErrCategoryExist        = errors.New("Category already exists")
	ErrCategoryInUse        = errors.New("Category still has recipes")
	ErrCommentNotFound      = errors.New("Comment not found")
	ErrNotificationNotFound = errors.New("Notification not found")
	ErrSelfFavorite         = errors.New("You cannot add your recipe to favorites")
	ErrAlreadyFavorited     = errors.New("Recipe is already in favorites")
	ErrNotFavorited         = errors.New("Recipe is not in favorites")
	ErrSelfReview           = errors.New("You can't review yourself")
	ErrFileNotSupported     = errors.New("Only jpg, jpeg and png files are allowed")
	ErrPermissionDenied     = errors.New("You do not have permission to perform this action")
	ErrUnauthorized         = errors.New("Authentication credentials were not provided")
	ErrTokenInvalid         = errors.New("Invalid or expired token")
	UnExpectedError         = errors.New("Internal server error")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:              BadRequest,
	ErrInvalidJSON:               BadRequest,
	ErrMissingFields:             BadRequest,
	ErrInvalidRating:             BadRequest,
	ErrRecipeNotFound:            NotFound,
	ErrCategoryNotFound:          NotFound,
	ErrCategoryInvalid:           BadRequest,
	ErrCategoryExist:             BadRequest,
	ErrCategoryInUse:             BadRequest,
	ErrCommentNotFound:           NotFound,
	ErrNotificationNotFound:      NotFound,
	ErrSelfFavorite:              BadRequest,
	ErrAlreadyFavorited:          BadRequest,
	ErrNotFavorited:              BadRequest,
	ErrSelfReview:                BadRequest,
	ErrFileNotSupported:          BadRequest,
	ErrPermissionDenied:          Forbidden,
	ErrUnauthorized:              Unauthorized,
	ErrTokenInvalid:              Unauthorized,
	model.ErrTransitionForbidden: Forbidden,
	model.ErrInvalidTransition:   BadRequest,
	UnExpectedError:              InternalServerError,
}

// StatusOf 解析错误对应的 HTTP 状态码，支持被包装的错误
func StatusOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return 0, false
}
