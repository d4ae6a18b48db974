package service

import (
	"RecipeHub/internal/api/dto"
	"RecipeHub/internal/model"
	"RecipeHub/internal/pkg/util"
	"RecipeHub/internal/repository"
	"context"
	"strings"
)

type CommentService interface {
	ListAll(ctx context.Context, p Principal) ([]*dto.CommentAdminDTO, error)
	ListByRecipe(ctx context.Context, p Principal, slug string) ([]any, error)
	ListMine(ctx context.Context, p Principal) ([]*dto.CommentDTO, error)
	CreateComment(ctx context.Context, p Principal, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, p Principal, id uint64, req *dto.CommentUpdateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, p Principal, id uint64) error
	SetActive(ctx context.Context, p Principal, id uint64, active bool) (*dto.CommentAdminDTO, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	recipeRepo  repository.RecipeRepo
}

func NewCommentService(commentRepo repository.CommentRepo, recipeRepo repository.RecipeRepo) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		recipeRepo:  recipeRepo,
	}
}

func toCommentDTO(c *model.Comment) *dto.CommentDTO {
	return &dto.CommentDTO{
		ID:        c.ID,
		Username:  c.User.Username,
		Recipe:    c.Recipe.Slug,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func toCommentAdminDTO(c *model.Comment) *dto.CommentAdminDTO {
	return &dto.CommentAdminDTO{
		ID:        c.ID,
		UserID:    c.UserID,
		Recipe:    c.Recipe.Slug,
		Text:      c.Text,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}

func (s *commentServiceImpl) ListAll(ctx context.Context, p Principal) ([]*dto.CommentAdminDTO, error) {
	if !p.Staff {
		return nil, ErrPermissionDenied
	}
	comments, err := s.commentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CommentAdminDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentAdminDTO(c))
	}
	return out, nil
}

// ListByRecipe 普通用户只看到启用中的评论
func (s *commentServiceImpl) ListByRecipe(ctx context.Context, p Principal, slug string) ([]any, error) {
	recipe, err := visibleRecipe(ctx, s.recipeRepo, p, slug)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByRecipe(ctx, recipe.ID, !p.Staff)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(comments))
	for _, c := range comments {
		c.Recipe = *recipe
		if p.Staff {
			out = append(out, toCommentAdminDTO(c))
		} else {
			out = append(out, toCommentDTO(c))
		}
	}
	return out, nil
}

func (s *commentServiceImpl) ListMine(ctx context.Context, p Principal) ([]*dto.CommentDTO, error) {
	comments, err := s.commentRepo.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentDTO(c))
	}
	return out, nil
}

func (s *commentServiceImpl) CreateComment(ctx context.Context, p Principal, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	recipe, err := visibleRecipe(ctx, s.recipeRepo, p, req.Recipe)
	if err != nil {
		return nil, err
	}
	comment := &model.Comment{
		RecipeID: recipe.ID,
		UserID:   p.UserID,
		Text:     req.Text,
		Active:   true,
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	created, err := s.commentRepo.GetCommentByID(ctx, comment.ID)
	if err != nil || created == nil {
		comment.Recipe = *recipe
		created = comment
	}
	return toCommentDTO(created), nil
}

func (s *commentServiceImpl) owned(ctx context.Context, p Principal, id uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if !p.CanManage(comment.UserID) {
		return nil, ErrPermissionDenied
	}
	return comment, nil
}

func (s *commentServiceImpl) UpdateComment(ctx context.Context, p Principal, id uint64, req *dto.CommentUpdateDTO) (*dto.CommentDTO, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	comment, err := s.owned(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err = s.commentRepo.UpdateText(ctx, id, req.Text); err != nil {
		return nil, err
	}
	comment.Text = req.Text
	return toCommentDTO(comment), nil
}

func (s *commentServiceImpl) DeleteComment(ctx context.Context, p Principal, id uint64) error {
	if _, err := s.owned(ctx, p, id); err != nil {
		return err
	}
	return s.commentRepo.DeleteComment(ctx, id)
}

// SetActive 软审核评论，仅 staff
func (s *commentServiceImpl) SetActive(ctx context.Context, p Principal, id uint64, active bool) (*dto.CommentAdminDTO, error) {
	if !p.Staff {
		return nil, ErrPermissionDenied
	}
	comment, err := s.commentRepo.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if err = s.commentRepo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	comment.Active = active
	return toCommentAdminDTO(comment), nil
}
