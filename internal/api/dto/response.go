package dto

// ErrorResponse 错误返回体
type ErrorResponse struct {
	Error string `json:"error"`
}

// PageDTO 分页返回体，Next/Previous 为绝对地址
type PageDTO struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// StatusDTO JSON 接口的通用成功返回
type StatusDTO struct {
	Status string `json:"status"`
}
