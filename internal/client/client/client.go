package client

import (
	"context"

	"github.com/dmitrijs2005/recipebox/internal/client/models"
)

// Client is the backend API surface. Implementations attach the session's
// bearer token to every call that accepts one.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Signup(ctx context.Context, reg models.Registration) error

	ListRecipes(ctx context.Context, userID int64) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id int64) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetUser(ctx context.Context, id int64) (*models.PublicUser, error)
}

// TokenSource yields the bearer token of the current session, or "" when
// anonymous.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) string

func (f TokenFunc) Token(ctx context.Context) string { return f(ctx) }
