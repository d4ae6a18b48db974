package service

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/model"

	"github.com/jinzhu/copier"
)

// RecipeProjector 按调用者角色生成两种视图
type RecipeProjector struct {
	photoURL func(key string) string
}

func NewRecipeProjector(photos PhotoStorage) *RecipeProjector {
	return &RecipeProjector{photoURL: photos.PublicURL}
}

func (p *RecipeProjector) Public(r *model.Recipe) *dto.RecipeDTO {
	d := &dto.RecipeDTO{}
	_ = copier.Copy(d, r)
	d.Username = r.User.Username
	d.CategoryID = r.CategoryID
	d.CategoryName = r.Category.Name
	d.Photo = p.photoURL(r.Photo)
	return d
}

func (p *RecipeProjector) Staff(r *model.Recipe) *dto.RecipeStaffDTO {
	d := &dto.RecipeStaffDTO{}
	_ = copier.Copy(d, r)
	d.Username = r.User.Username
	d.CategoryID = r.CategoryID
	d.CategoryName = r.Category.Name
	d.Photo = p.photoURL(r.Photo)
	return d
}

func (p *RecipeProjector) For(r *model.Recipe, staff bool) any {
	if staff {
		return p.Staff(r)
	}
	return p.Public(r)
}

func (p *RecipeProjector) List(recipes []*model.Recipe, staff bool) []any {
	out := make([]any, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, p.For(r, staff))
	}
	return out
}
