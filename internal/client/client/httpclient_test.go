package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/client/client"
	"github.com/dmitrijs2005/recipebox/internal/client/fakeapi"
	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, baseURL string, token *string) *client.HTTPClient {
	t.Helper()
	c, err := client.NewHTTPClient(baseURL, 5*time.Second, client.TokenFunc(func(context.Context) string {
		if token == nil {
			return ""
		}
		return *token
	}), nil)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsBadScheme(t *testing.T) {
	_, err := client.NewHTTPClient("ftp://example.com", time.Second, nil, nil)
	require.Error(t, err)

	_, err = client.NewHTTPClient("://bad", time.Second, nil, nil)
	require.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	want := srv.AddUser("alice", "alice@example.com", "secret1")

	c := newClient(t, srv.URL, nil)
	got, err := c.Login(context.Background(), models.Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, want, *got)
	assert.True(t, got.Valid())

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Authorization, "login must not send a token")
	_, err = uuid.Parse(reqs[0].RequestID)
	assert.NoError(t, err, "request id should be a uuid")
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.AddUser("alice", "alice@example.com", "secret1")

	c := newClient(t, srv.URL, nil)
	_, err := c.Login(context.Background(), models.Credentials{Username: "alice", Password: "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "Invalid username or password", client.ServerMessage(err, "Login failed"))
}

func TestLogin_SuccessWithoutUserIsFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Login successful"}`))
	}))
	defer ts.Close()

	c := newClient(t, ts.URL, nil)
	_, err := c.Login(context.Background(), models.Credentials{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.Equal(t, "Authentication failed", client.ServerMessage(err, "Login failed"))
}

func TestSignup_ErrorFieldOn200(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.AddUser("alice", "alice@example.com", "secret1")

	c := newClient(t, srv.URL, nil)
	err := c.Signup(context.Background(), models.Registration{Username: "alice", Email: "x@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "Username already exists", client.ServerMessage(err, ""))

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	require.NoError(t, c.Signup(context.Background(), models.Registration{Username: "bob", Email: "bob@example.com", Password: "secret2"}))
	_, err = c.Login(context.Background(), models.Credentials{Username: "bob", Password: "secret2"})
	require.NoError(t, err)
}

func TestRecipes_CRUD(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	u := srv.AddUser("alice", "alice@example.com", "secret1")
	token := u.Token
	c := newClient(t, srv.URL, &token)
	ctx := context.Background()

	in := models.RecipeInput{
		Title:        "Pancakes",
		Description:  "Fluffy",
		Ingredients:  "flour, eggs, milk",
		Instructions: "mix and fry",
		CategoryIDs:  []int64{1, 4},
	}
	created, err := c.CreateRecipe(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, u.ID, created.UserID)
	assert.Equal(t, []int64{1, 4}, created.SelectedCategoryIDs())

	got, err := c.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Title)
	assert.Equal(t, "alice", got.Author)

	in.Title = "Crepes"
	in.CategoryIDs = []int64{2}
	updated, err := c.UpdateRecipe(ctx, created.ID, in)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Crepes", updated.Title)
	assert.Equal(t, []int64{2}, updated.SelectedCategoryIDs())

	list, err := c.ListRecipes(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, c.DeleteRecipe(ctx, created.ID))
	_, err = c.GetRecipe(ctx, created.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)

	for _, r := range srv.Requests() {
		if r.Path != "/categories" {
			assert.Equal(t, "Bearer "+token, r.Authorization, "%s %s", r.Method, r.Path)
		}
	}
}

func TestListRecipes_UserFilter(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.AddRecipe(models.Recipe{ID: 1, Title: "A", UserID: 3})
	srv.AddRecipe(models.Recipe{ID: 2, Title: "B", UserID: 9})

	c := newClient(t, srv.URL, nil)
	list, err := c.ListRecipes(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "user_id=9", reqs[0].Query)
	assert.Empty(t, reqs[0].Authorization, "anonymous calls carry no token")
}

func TestUpdateRecipe_NonOwnerIsForbidden(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.AddUser("owner", "o@example.com", "secret1")
	other := srv.AddUser("other", "x@example.com", "secret2")
	rec := srv.AddRecipe(models.Recipe{Title: "Soup", UserID: 1})

	token := other.Token
	c := newClient(t, srv.URL, &token)
	_, err := c.UpdateRecipe(context.Background(), rec.ID, rec.Input())
	assert.ErrorIs(t, err, client.ErrForbidden)
	assert.NotErrorIs(t, err, client.ErrUnauthorized)

	err = c.DeleteRecipe(context.Background(), rec.ID)
	assert.ErrorIs(t, err, client.ErrForbidden)
	assert.Equal(t, 1, srv.RecipeCount())
}

func TestExpiredToken_IsUnauthorized(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	u := srv.AddUser("alice", "alice@example.com", "secret1")
	srv.ExpireTokens()

	token := u.Token
	c := newClient(t, srv.URL, &token)
	_, err := c.ListRecipes(context.Background(), 0)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestGetUser_EmailOnlyForSelf(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	alice := srv.AddUser("alice", "alice@example.com", "secret1")
	bob := srv.AddUser("bob", "bob@example.com", "secret2")

	token := alice.Token
	c := newClient(t, srv.URL, &token)

	self, err := c.GetUser(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", self.Email)

	other, err := c.GetUser(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", other.Username)
	assert.Empty(t, other.Email)

	_, err = c.GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestListCategories(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	c := newClient(t, srv.URL, nil)
	cats, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 4)
	assert.Equal(t, "Breakfast", cats[0].Name)
}

func TestServerError_KeepsStatus(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.FailNext(1)

	c := newClient(t, srv.URL, nil)
	_, err := c.ListCategories(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "internal error", apiErr.Message)
}

func TestUnreachable_IsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := newClient(t, url, nil)
	_, err := c.ListCategories(context.Background())
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestCancelledContext_PassesThrough(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newClient(t, srv.URL, nil)
	_, err := c.ListCategories(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, client.ErrUnavailable)
}

func TestAPIError_Message(t *testing.T) {
	err := &client.APIError{StatusCode: 403}
	assert.True(t, strings.Contains(err.Error(), "Forbidden"))
	assert.Equal(t, "fallback", client.ServerMessage(err, "fallback"))
	assert.Equal(t, "fallback", client.ServerMessage(errors.New("x"), "fallback"))
}
