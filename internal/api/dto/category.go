package dto

type CategoryDTO struct {
	ID   uint64 `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryCreateDTO struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
