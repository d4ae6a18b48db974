package util

import (
	"fmt"
	"strings"
	"unicode"
)

// IngredientError 食材格式错误，Message 直接返回给调用方
type IngredientError struct {
	Message string
}

func (e *IngredientError) Error() string {
	return e.Message
}

// NormalizeIngredients 校验每行 "名称 - 数量" 格式并将名称转为小写
func NormalizeIngredients(raw string) (string, error) {
	raw = strings.TrimRight(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if raw == "" {
		return "", nil
	}

	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		name, quantity, ok := strings.Cut(line, "-")
		if !ok {
			return "", &IngredientError{Message: "Each line must be in format: ingredient - quantity"}
		}
		name = strings.TrimSpace(name)
		quantity = strings.TrimSpace(quantity)

		if !isIngredientName(name) {
			return "", &IngredientError{Message: fmt.Sprintf("Invalid ingredient name: %s", name)}
		}
		if quantity == "" {
			return "", &IngredientError{Message: fmt.Sprintf("Quantity is missing for ingredient: %s", name)}
		}
		out = append(out, strings.ToLower(name)+" - "+quantity)
	}
	return strings.Join(out, "\n"), nil
}

func isIngredientName(name string) bool {
	letters := 0
	for _, r := range name {
		if r == ' ' {
			continue
		}
		if !unicode.IsLetter(r) {
			return false
		}
		letters++
	}
	return letters > 0
}

// ParseIngredientNames 解析构建器参数 "milk, chocolate" 为小写名称列表
func ParseIngredientNames(raw string) []string {
	names := SplitCSV(raw)
	for i, n := range names {
		names[i] = strings.ToLower(n)
	}
	return names
}

// IngredientNames 从已规范化的食材文本中取出名称部分
func IngredientNames(normalized string) []string {
	if normalized == "" {
		return []string{}
	}
	lines := strings.Split(normalized, "\n")
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		name, _, _ := strings.Cut(line, "-")
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
