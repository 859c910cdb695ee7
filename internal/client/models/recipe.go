package models

import "strings"

// Category is a tag attached many-to-many to recipes.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Recipe is a recipe as returned by the recipes endpoints.
type Recipe struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Ingredients  string     `json:"ingredients"`
	Instructions string     `json:"instructions"`
	UserID       int64      `json:"user_id"`
	Author       string     `json:"author,omitempty"`
	Categories   []Category `json:"categories,omitempty"`
	CategoryIDs  []int64    `json:"category_ids,omitempty"`
	CreatedAt    string     `json:"created_at,omitempty"`
	UpdatedAt    string     `json:"updated_at,omitempty"`
}

// OwnedBy reports whether userID may see the owner-only controls.
func (r Recipe) OwnedBy(userID int64) bool {
	return userID > 0 && r.UserID == userID
}

// SelectedCategoryIDs returns category_ids when the backend sent them and
// otherwise the ids of the embedded categories.
func (r Recipe) SelectedCategoryIDs() []int64 {
	if len(r.CategoryIDs) > 0 {
		return r.CategoryIDs
	}
	ids := make([]int64, 0, len(r.Categories))
	for _, c := range r.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// HasCategory reports whether the recipe is tagged with categoryID.
func (r Recipe) HasCategory(categoryID int64) bool {
	for _, id := range r.SelectedCategoryIDs() {
		if id == categoryID {
			return true
		}
	}
	return false
}

// CategoryNames joins the embedded category names for display.
func (r Recipe) CategoryNames() string {
	names := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

// Input returns the editable part of r, used to pre-populate the edit form.
func (r Recipe) Input() RecipeInput {
	return RecipeInput{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		CategoryIDs:  append([]int64(nil), r.SelectedCategoryIDs()...),
	}
}

// RecipeInput is the create/update request body.
type RecipeInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Ingredients  string  `json:"ingredients"`
	Instructions string  `json:"instructions"`
	CategoryIDs  []int64 `json:"category_ids"`
}

// MissingField returns the name of the first empty required field, or "".
func (in RecipeInput) MissingField() string {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return "title"
	case strings.TrimSpace(in.Description) == "":
		return "description"
	case strings.TrimSpace(in.Ingredients) == "":
		return "ingredients"
	case strings.TrimSpace(in.Instructions) == "":
		return "instructions"
	}
	return ""
}

// FilterCategories returns the catalog entries whose id is in ids, in
// catalog order.
func FilterCategories(catalog []Category, ids []int64) []Category {
	out := make([]Category, 0, len(ids))
	for _, c := range catalog {
		for _, id := range ids {
			if c.ID == id {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
