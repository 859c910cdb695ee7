package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipe_OwnedBy(t *testing.T) {
	r := Recipe{ID: 7, Title: "Soup", UserID: 3, CategoryIDs: []int64{1, 2}}

	assert.True(t, r.OwnedBy(3))
	assert.False(t, r.OwnedBy(9))
	assert.False(t, Recipe{}.OwnedBy(0), "anonymous viewer never owns an unowned record")
}

func TestRecipe_SelectedCategoryIDs(t *testing.T) {
	explicit := Recipe{CategoryIDs: []int64{1, 2}, Categories: []Category{{ID: 5}}}
	assert.Equal(t, []int64{1, 2}, explicit.SelectedCategoryIDs())

	embedded := Recipe{Categories: []Category{{ID: 4, Name: "Dinner"}, {ID: 6, Name: "Vegan"}}}
	assert.Equal(t, []int64{4, 6}, embedded.SelectedCategoryIDs())
	assert.True(t, embedded.HasCategory(6))
	assert.False(t, embedded.HasCategory(1))

	assert.Empty(t, Recipe{}.SelectedCategoryIDs())
}

func TestRecipe_DecodesBackendPayload(t *testing.T) {
	payload := `{
		"id": 7, "title": "Soup", "description": "Warm", "ingredients": "water\nsalt",
		"instructions": "boil", "user_id": 3, "author": "alice",
		"created_at": "2024-01-01 10:00:00", "updated_at": "2024-01-02 10:00:00",
		"categories": [{"id": 1, "name": "Lunch"}, {"id": 2, "name": "Dinner"}]
	}`

	var r Recipe
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	want := Recipe{
		ID: 7, Title: "Soup", Description: "Warm", Ingredients: "water\nsalt",
		Instructions: "boil", UserID: 3, Author: "alice",
		CreatedAt: "2024-01-01 10:00:00", UpdatedAt: "2024-01-02 10:00:00",
		Categories: []Category{{ID: 1, Name: "Lunch"}, {ID: 2, Name: "Dinner"}},
	}
	assert.Empty(t, cmp.Diff(want, r))
	assert.Equal(t, "Lunch, Dinner", r.CategoryNames())
}

func TestRecipe_InputCopiesEveryField(t *testing.T) {
	r := Recipe{
		Title: "Soup", Description: "Warm", Ingredients: "water", Instructions: "boil",
		Categories: []Category{{ID: 1}, {ID: 2}},
	}
	in := r.Input()

	want := RecipeInput{Title: "Soup", Description: "Warm", Ingredients: "water", Instructions: "boil", CategoryIDs: []int64{1, 2}}
	assert.Empty(t, cmp.Diff(want, in))

	in.CategoryIDs[0] = 99
	assert.Equal(t, int64(1), r.SelectedCategoryIDs()[0], "input must not alias the recipe")
}

func TestRecipeInput_MissingField(t *testing.T) {
	full := RecipeInput{Title: "t", Description: "d", Ingredients: "i", Instructions: "s"}
	assert.Equal(t, "", full.MissingField())

	noTitle := full
	noTitle.Title = "  "
	assert.Equal(t, "title", noTitle.MissingField())

	noSteps := full
	noSteps.Instructions = ""
	assert.Equal(t, "instructions", noSteps.MissingField())
}

func TestRecipeInput_EncodesCategoryIDs(t *testing.T) {
	b, err := json.Marshal(RecipeInput{Title: "t", CategoryIDs: []int64{3}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","description":"","ingredients":"","instructions":"","category_ids":[3]}`, string(b))
}

func TestFilterCategories(t *testing.T) {
	catalog := []Category{{ID: 1, Name: "Breakfast"}, {ID: 2, Name: "Lunch"}, {ID: 3, Name: "Dinner"}}

	got := FilterCategories(catalog, []int64{3, 1, 42})
	assert.Equal(t, []Category{{ID: 1, Name: "Breakfast"}, {ID: 3, Name: "Dinner"}}, got)

	assert.Empty(t, FilterCategories(catalog, nil))
}

func TestUser_Valid(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.Valid())
	assert.False(t, (&User{ID: 1}).Valid())
	assert.False(t, (&User{Token: "t"}).Valid())
	assert.True(t, (&User{ID: 1, Token: "t"}).Valid())
}
