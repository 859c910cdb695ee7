package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recipebox/internal/client/router"
	"github.com/dmitrijs2005/recipebox/internal/client/services"
	"github.com/dmitrijs2005/recipebox/internal/common"
)

// List shows the recipe list. args may be "mine", "user <id>" or
// "category <id>", and combinations of them.
func (a *App) List(ctx context.Context, args []string) error {
	r := router.Route{Kind: router.RecipeList}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "mine":
			r.UserID = a.currentUserID()
		case "user", "category":
			if i+1 >= len(args) {
				return usage("list [mine|user <id>|category <id>]")
			}
			id, err := parseIDArg(args[i+1])
			if err != nil {
				return err
			}
			if args[i] == "user" {
				r.UserID = id
			} else {
				r.CategoryID = id
			}
			i++
		default:
			return usage("list [mine|user <id>|category <id>]")
		}
	}
	a.navigate(ctx, r)
	return nil
}

func (a *App) listScreen(ctx context.Context, r router.Route) (*router.Route, error) {
	recipes, err := a.recipeService.List(ctx, services.RecipeFilter{UserID: r.UserID, CategoryID: r.CategoryID})
	if err != nil {
		return nil, failure("Failed to load recipes", err)
	}

	viewer := a.currentUserID()
	var title []string
	switch {
	case r.UserID != 0 && r.UserID == viewer:
		title = append(title, "My recipes")
	case r.UserID != 0:
		title = append(title, fmt.Sprintf("Recipes by user %d", r.UserID))
	default:
		title = append(title, "All recipes")
	}
	if r.CategoryID != 0 {
		title = append(title, fmt.Sprintf("in category %d", r.CategoryID))
	}
	a.println(headerStyle.Render(strings.Join(title, " ")))

	if len(recipes) == 0 {
		a.println("No recipes found. Type 'new' to create one.")
		return nil, nil
	}
	for _, rec := range recipes {
		a.println(renderCard(rec, rec.OwnedBy(viewer)))
	}
	return nil, nil
}

// Delete removes a recipe the viewer owns after confirmation and then
// re-fetches the list. Recipes of other users are refused before any
// request is made, so the delete action never appears for them.
func (a *App) Delete(ctx context.Context, idArg string) error {
	id, err := parseIDArg(idArg)
	if err != nil {
		return err
	}
	listRoute := router.Route{Kind: router.RecipeList}
	if a.current.Kind == router.RecipeList {
		listRoute = a.current
	}
	if !a.isAuthenticated() {
		a.navigate(ctx, listRoute)
		return nil
	}

	rec, err := a.recipeService.Get(ctx, id)
	if err != nil {
		a.afterDeleteError(ctx, listRoute, err)
		return nil
	}
	if !rec.OwnedBy(a.currentUserID()) {
		a.println("You can only delete your own recipes.")
		return nil
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %q?", rec.Title), a.out)
	if err != nil {
		return nil
	}
	if !ok {
		a.handleError(ctx, listRoute, common.ErrCancelled)
		return nil
	}

	if err := a.recipeService.Delete(ctx, id); err != nil {
		a.afterDeleteError(ctx, listRoute, err)
		return nil
	}
	a.println("Recipe deleted.")
	a.navigate(ctx, listRoute)
	return nil
}

func (a *App) afterDeleteError(ctx context.Context, list router.Route, err error) {
	if next := a.handleError(ctx, list, failure("Failed to delete recipe", err)); next != nil {
		a.navigate(ctx, *next)
	}
}
