package es

import (
	"RecipeHub/internal/pkg/util"
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// MaxSearchDepth 深分页上限
const MaxSearchDepth = 400

type RecipeRepo interface {
	SearchRecipeIDs(ctx context.Context, queryText string, from, size int) ([]uint64, error)
	IndexRecipe(ctx context.Context, recipe *RecipeES) error
	DeleteRecipe(ctx context.Context, id uint64) error
}

type RecipeRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewRecipeRepo(client *elasticsearch.TypedClient) RecipeRepo {
	return &RecipeRepoImpl{client: client}
}

// SearchRecipeIDs 全文检索，返回按相关度排序的菜谱 ID
func (s *RecipeRepoImpl) SearchRecipeIDs(ctx context.Context, queryText string, from, size int) ([]uint64, error) {
	if queryText == "" || from >= MaxSearchDepth {
		return []uint64{}, nil
	}

	query := &types.Query{
		Bool: &types.BoolQuery{
			Should: []types.Query{
				{
					MultiMatch: &types.MultiMatchQuery{
						Query:  queryText,
						Fields: []string{"name^3", "ingredients^2", "announcement_text", "recipe_text"},
						Boost:  util.PtrFloat32(2.0),
					},
				},
				{
					MultiMatch: &types.MultiMatchQuery{
						Query:     queryText,
						Fields:    []string{"name", "recipe_text"},
						Fuzziness: util.PtrStr("AUTO"),
						Boost:     util.PtrFloat32(0.5),
					},
				},
			},
		},
	}

	resp, err := s.client.Search().
		Index(RecipeIndex).
		Query(query).
		Source_(&types.SourceFilter{Includes: []string{"id"}}).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Id_ == nil {
			continue
		}
		id, err := strconv.ParseUint(*hit.Id_, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *RecipeRepoImpl) IndexRecipe(ctx context.Context, recipe *RecipeES) error {
	docID := strconv.FormatUint(recipe.ID, 10)
	_, err := s.client.Index(RecipeIndex).
		Id(docID).
		Document(recipe).
		Do(ctx)
	return err
}

// DeleteRecipe 文档不存在时视为成功
func (s *RecipeRepoImpl) DeleteRecipe(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(RecipeIndex, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}
	return nil
}
