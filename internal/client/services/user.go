package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipebox/internal/client/client"
	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// Profile is a user's public record plus the recipes they own.
type Profile struct {
	User    *models.PublicUser
	Recipes []models.Recipe
}

type UserService interface {
	Profile(ctx context.Context, userID int64) (*Profile, error)
}

type userService struct {
	client client.Client
}

func NewUserService(client client.Client) UserService {
	return &userService{client: client}
}

// Profile fetches the user and their recipes concurrently. Both requests
// always run to completion and every failure is reported, so a 401 from one
// is never hidden behind an error from the other.
func (s *userService) Profile(ctx context.Context, userID int64) (*Profile, error) {
	p := &Profile{}
	var g errgroup.Group
	var userErr, recipesErr error

	g.Go(func() error {
		u, err := s.client.GetUser(ctx, userID)
		if err != nil {
			userErr = fmt.Errorf("get user %d: %w", userID, err)
			return nil
		}
		p.User = u
		return nil
	})
	g.Go(func() error {
		rs, err := s.client.ListRecipes(ctx, userID)
		if err != nil {
			recipesErr = fmt.Errorf("list recipes of %d: %w", userID, err)
			return nil
		}
		p.Recipes = rs
		return nil
	})

	_ = g.Wait()
	if err := errors.Join(userErr, recipesErr); err != nil {
		return nil, err
	}
	return p, nil
}
