package dto

// SlugDTO 只带 slug 的 JSON 请求体
type SlugDTO struct {
	Slug string `json:"slug"`
}

type ToggleFavoriteDTO struct {
	Status      string `json:"status"`
	IsFavorited bool   `json:"is_favorited"`
}

type RemoveFavoriteDTO struct {
	Status  string `json:"status"`
	Removed bool   `json:"removed"`
}
