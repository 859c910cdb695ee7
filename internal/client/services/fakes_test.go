package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/client/models"
)

// ---- fake client ----

// fakeClient implements client.Client for unit tests. Each method returns
// its preset result and records its arguments.
type fakeClient struct {
	mu sync.Mutex

	LoginRet  *models.User
	LoginErr  error
	SignupErr error

	ListRet   []models.Recipe
	ListErr   error
	GetRet    *models.Recipe
	GetErr    error
	WriteRet  *models.Recipe
	WriteErr  error
	DeleteErr error

	CategoriesRet []models.Category
	CategoriesErr error

	UserRet *models.PublicUser
	UserErr error

	// Delays hold a read call back; a context cancelled meanwhile wins.
	ListDelay       time.Duration
	GetDelay        time.Duration
	CategoriesDelay time.Duration
	UserDelay       time.Duration

	// for argument checks
	LastCreds      models.Credentials
	LastReg        *models.Registration
	LastListUserID int64
	LastGetID      int64
	LastWriteID    int64
	LastInput      models.RecipeInput
	LastDeleteID   int64
	LastUserID     int64
	Calls          []string
}

func (f *fakeClient) call(name string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, name)
	f.mu.Unlock()
}

func wait(ctx context.Context, d time.Duration) error {
	if d == 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	f.call("login")
	f.LastCreds = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Signup(ctx context.Context, reg models.Registration) error {
	f.call("signup")
	f.LastReg = &reg
	return f.SignupErr
}

func (f *fakeClient) ListRecipes(ctx context.Context, userID int64) ([]models.Recipe, error) {
	f.call("list")
	f.mu.Lock()
	f.LastListUserID = userID
	f.mu.Unlock()
	if err := wait(ctx, f.ListDelay); err != nil {
		return nil, err
	}
	return f.ListRet, f.ListErr
}

func (f *fakeClient) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	f.call("get")
	f.mu.Lock()
	f.LastGetID = id
	f.mu.Unlock()
	if err := wait(ctx, f.GetDelay); err != nil {
		return nil, err
	}
	return f.GetRet, f.GetErr
}

func (f *fakeClient) CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error) {
	f.call("create")
	f.LastInput = in
	return f.WriteRet, f.WriteErr
}

func (f *fakeClient) UpdateRecipe(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error) {
	f.call("update")
	f.LastWriteID = id
	f.LastInput = in
	return f.WriteRet, f.WriteErr
}

func (f *fakeClient) DeleteRecipe(ctx context.Context, id int64) error {
	f.call("delete")
	f.LastDeleteID = id
	return f.DeleteErr
}

func (f *fakeClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	f.call("categories")
	if err := wait(ctx, f.CategoriesDelay); err != nil {
		return nil, err
	}
	return f.CategoriesRet, f.CategoriesErr
}

func (f *fakeClient) GetUser(ctx context.Context, id int64) (*models.PublicUser, error) {
	f.call("user")
	f.mu.Lock()
	f.LastUserID = id
	f.mu.Unlock()
	if err := wait(ctx, f.UserDelay); err != nil {
		return nil, err
	}
	return f.UserRet, f.UserErr
}

// ---- fake session ----

type fakeSession struct {
	user    *models.User
	SaveErr error
	saves   int
	clears  int
}

func (s *fakeSession) Save(ctx context.Context, u *models.User) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.saves++
	c := *u
	s.user = &c
	return nil
}

func (s *fakeSession) Load(ctx context.Context) (*models.User, error) { return s.user, nil }

func (s *fakeSession) Clear(ctx context.Context) error {
	s.clears++
	s.user = nil
	return nil
}
