package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipebox/internal/client/client"
	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"golang.org/x/sync/errgroup"
)

// RecipeFilter narrows a recipe listing. UserID is applied by the backend,
// CategoryID locally. Zero values mean no filter.
type RecipeFilter struct {
	UserID     int64
	CategoryID int64
}

// RecipeForm is what the recipe screens need on entry: the category catalog
// and, for view and edit, the recipe itself.
type RecipeForm struct {
	Catalog []models.Category
	Recipe  *models.Recipe
}

type RecipeService interface {
	List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	Get(ctx context.Context, id int64) (*models.Recipe, error)
	Form(ctx context.Context, id int64) (*RecipeForm, error)
	Create(ctx context.Context, in models.RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error)
	Delete(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]models.Category, error)
}

type recipeService struct {
	client client.Client
}

func NewRecipeService(client client.Client) RecipeService {
	return &recipeService{client: client}
}

func (s *recipeService) List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	recipes, err := s.client.ListRecipes(ctx, filter.UserID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	if filter.CategoryID == 0 {
		return recipes, nil
	}

	out := recipes[:0:0]
	for _, r := range recipes {
		if r.HasCategory(filter.CategoryID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *recipeService) Get(ctx context.Context, id int64) (*models.Recipe, error) {
	r, err := s.client.GetRecipe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return r, nil
}

// Form fetches the catalog and, when id > 0, the recipe, concurrently.
// Neither request cancels the other; all failures are joined.
func (s *recipeService) Form(ctx context.Context, id int64) (*RecipeForm, error) {
	form := &RecipeForm{}
	var g errgroup.Group
	var catalogErr, recipeErr error

	g.Go(func() error {
		cats, err := s.client.ListCategories(ctx)
		if err != nil {
			catalogErr = fmt.Errorf("list categories: %w", err)
			return nil
		}
		form.Catalog = cats
		return nil
	})
	if id > 0 {
		g.Go(func() error {
			r, err := s.client.GetRecipe(ctx, id)
			if err != nil {
				recipeErr = fmt.Errorf("get recipe %d: %w", id, err)
				return nil
			}
			form.Recipe = r
			return nil
		})
	}

	_ = g.Wait()
	if err := errors.Join(catalogErr, recipeErr); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *recipeService) Create(ctx context.Context, in models.RecipeInput) (*models.Recipe, error) {
	if f := in.MissingField(); f != "" {
		return nil, fmt.Errorf("%w: %s", common.ErrRequiredField, f)
	}
	r, err := s.client.CreateRecipe(ctx, normalize(in))
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return r, nil
}

func (s *recipeService) Update(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error) {
	if f := in.MissingField(); f != "" {
		return nil, fmt.Errorf("%w: %s", common.ErrRequiredField, f)
	}
	r, err := s.client.UpdateRecipe(ctx, id, normalize(in))
	if err != nil {
		return nil, fmt.Errorf("update recipe %d: %w", id, err)
	}
	return r, nil
}

func (s *recipeService) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteRecipe(ctx, id); err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	return nil
}

func (s *recipeService) Categories(ctx context.Context) ([]models.Category, error) {
	cats, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// normalize sends an empty array rather than null for "no categories".
func normalize(in models.RecipeInput) models.RecipeInput {
	if in.CategoryIDs == nil {
		in.CategoryIDs = []int64{}
	}
	return in
}
