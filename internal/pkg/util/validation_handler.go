package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidationError 字段级校验错误
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s failed on %s", e.Field, e.Tag)
}

// ValidateDTO 校验结构体，返回第一个失败字段
func ValidateDTO(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	return FirstFieldError(vErrs)
}

// FirstFieldError 将 validator 错误转为 ValidationError
func FirstFieldError(vErrs validator.ValidationErrors) error {
	if len(vErrs) == 0 {
		return nil
	}
	first := vErrs[0]
	return &ValidationError{Field: strings.ToLower(first.Field()), Tag: first.Tag()}
}
