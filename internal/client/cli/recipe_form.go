package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/dmitrijs2005/recipebox/internal/client/router"
)

func (a *App) New(ctx context.Context) error {
	a.navigate(ctx, router.Route{Kind: router.RecipeCreate})
	return nil
}

func (a *App) View(ctx context.Context, idArg string) error {
	id, err := parseIDArg(idArg)
	if err != nil {
		return err
	}
	a.navigate(ctx, router.Route{Kind: router.RecipeView, RecipeID: id})
	return nil
}

func (a *App) Edit(ctx context.Context, idArg string) error {
	id, err := parseIDArg(idArg)
	if err != nil {
		return err
	}
	a.navigate(ctx, router.Route{Kind: router.RecipeEdit, RecipeID: id})
	return nil
}

func (a *App) viewScreen(ctx context.Context, r router.Route) (*router.Route, error) {
	form, err := a.recipeService.Form(ctx, r.RecipeID)
	if err != nil {
		return nil, failure("Failed to load recipe", err)
	}

	rec := form.Recipe
	selected := models.FilterCategories(form.Catalog, rec.SelectedCategoryIDs())
	a.println(renderRecipe(*rec, selected, rec.OwnedBy(a.currentUserID())))
	return nil, nil
}

func (a *App) createScreen(ctx context.Context, _ router.Route) (*router.Route, error) {
	form, err := a.recipeService.Form(ctx, 0)
	if err != nil {
		return nil, failure("Failed to load categories", err)
	}

	a.println(headerStyle.Render("New recipe"))
	in, err := a.promptRecipe(models.RecipeInput{}, form.Catalog)
	if err != nil {
		return nil, err
	}

	if _, err := a.recipeService.Create(ctx, in); err != nil {
		return nil, failure("Failed to create recipe", err)
	}
	a.println("Recipe created.")
	return &router.Route{Kind: router.RecipeList}, nil
}

// editScreen pre-populates every prompt with the fetched recipe. Only the
// owner may edit; anyone else is sent to the read-only view.
func (a *App) editScreen(ctx context.Context, r router.Route) (*router.Route, error) {
	form, err := a.recipeService.Form(ctx, r.RecipeID)
	if err != nil {
		return nil, failure("Failed to load recipe", err)
	}

	rec := form.Recipe
	if !rec.OwnedBy(a.currentUserID()) {
		a.println("You can only edit your own recipes.")
		return &router.Route{Kind: router.RecipeView, RecipeID: rec.ID}, nil
	}

	a.println(headerStyle.Render(fmt.Sprintf("Edit recipe #%d", rec.ID)))
	in, err := a.promptRecipe(rec.Input(), form.Catalog)
	if err != nil {
		return nil, err
	}

	if _, err := a.recipeService.Update(ctx, rec.ID, in); err != nil {
		return nil, failure("Failed to update recipe", err)
	}
	a.println("Recipe updated.")
	return &router.Route{Kind: router.RecipeList}, nil
}

// promptRecipe asks for every field, offering current values as defaults.
func (a *App) promptRecipe(current models.RecipeInput, catalog []models.Category) (models.RecipeInput, error) {
	var (
		in  models.RecipeInput
		err error
	)
	if in.Title, err = GetRequiredText(a.reader, "Title", current.Title, a.out); err != nil {
		return in, err
	}
	if in.Description, err = GetRequiredText(a.reader, "Description", current.Description, a.out); err != nil {
		return in, err
	}
	if in.Ingredients, err = a.promptRequiredMultiline("Ingredients (one per line)", current.Ingredients); err != nil {
		return in, err
	}
	if in.Instructions, err = a.promptRequiredMultiline("Instructions", current.Instructions); err != nil {
		return in, err
	}
	if in.CategoryIDs, err = a.promptCategories(catalog, current.CategoryIDs); err != nil {
		return in, err
	}
	return in, nil
}

func (a *App) promptRequiredMultiline(prompt, current string) (string, error) {
	for {
		text, err := GetMultiline(a.reader, prompt, current, a.out)
		if err != nil {
			return "", err
		}
		if text != "" {
			return text, nil
		}
		a.println("This field is required.")
	}
}

// promptCategories shows the catalog with the current selection marked and
// reads a new selection. Ids outside the catalog are rejected.
func (a *App) promptCategories(catalog []models.Category, current []int64) ([]int64, error) {
	if len(catalog) == 0 {
		return []int64{}, nil
	}

	a.println("Categories:")
	a.printf("%s", renderCatalog(catalog, current))

	known := make(map[int64]bool, len(catalog))
	for _, c := range catalog {
		known[c.ID] = true
	}

	def := ""
	if current != nil {
		def = formatIDList(current)
	}
	for {
		text, err := GetTextWithDefault(a.reader, "Category ids, comma separated ('-' for none)", def, a.out)
		if err != nil {
			return nil, err
		}
		ids, err := ParseIDList(text)
		if err != nil {
			a.println("Enter numeric category ids, e.g. 1,3")
			continue
		}
		unknown := int64(0)
		for _, id := range ids {
			if !known[id] {
				unknown = id
				break
			}
		}
		if unknown != 0 {
			a.printf("Unknown category %d.\n", unknown)
			continue
		}
		return ids, nil
	}
}
