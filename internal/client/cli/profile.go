package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recipebox/internal/client/router"
)

// Profile shows the signed-in user's profile, or userID's when given.
func (a *App) Profile(ctx context.Context, userID string) error {
	r := router.Route{Kind: router.Profile}
	if userID != "" {
		id, err := parseIDArg(userID)
		if err != nil {
			return err
		}
		r.UserID = id
	}
	a.navigate(ctx, r)
	return nil
}

func (a *App) profileScreen(ctx context.Context, r router.Route) (*router.Route, error) {
	viewer := a.currentUserID()
	target := r.UserID
	if target == 0 {
		target = viewer
	}
	self := target == viewer

	p, err := a.userService.Profile(ctx, target)
	if err != nil {
		return nil, failure("Failed to load profile", err)
	}

	a.println(headerStyle.Render(p.User.Username))
	if self && p.User.Email != "" {
		a.printf("Email: %s\n", p.User.Email)
	}

	a.printf("\n%s\n", titleStyle.Render(fmt.Sprintf("Recipes (%d)", len(p.Recipes))))
	if len(p.Recipes) == 0 {
		if self {
			a.println("You haven't created any recipes yet. Type 'new' to create one now.")
		} else {
			a.println("No recipes yet.")
		}
		return nil, nil
	}
	for _, rec := range p.Recipes {
		a.printf("  #%d %s\n", rec.ID, rec.Title)
	}
	return nil, nil
}
