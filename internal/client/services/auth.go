// Package services contains the application services behind the recipebox
// screens. They orchestrate the API client and the session store and know
// nothing about terminal I/O.
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/recipebox/internal/client/client"
	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/dmitrijs2005/recipebox/internal/common"
)

// SessionStore is the part of the session store the services need.
type SessionStore interface {
	Save(ctx context.Context, user *models.User) error
	Load(ctx context.Context) (*models.User, error)
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the returned user.
//   - Register: create an account, then log in with the same credentials.
//   - Logout: clear the stored session.
//   - CurrentUser: the signed-in user, or nil.
//
// The store broadcast on Save/Clear is what flips the shell's
// authenticated state; these methods do not signal anything themselves.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	Register(ctx context.Context, username, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

type authService struct {
	client  client.Client
	session SessionStore
}

func NewAuthService(client client.Client, session SessionStore) AuthService {
	return &authService{client: client, session: session}
}

// Login posts the credentials and stores the user on success. On failure the
// session is left untouched.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	if username == "" || len(password) == 0 {
		return nil, fmt.Errorf("%w: username and password", common.ErrRequiredField)
	}

	user, err := a.client.Login(ctx, models.Credentials{Username: username, Password: string(password)})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if !user.Valid() {
		return nil, fmt.Errorf("login error: %w", &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Authentication failed"})
	}

	if err := a.session.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return user, nil
}

// Register creates the account and signs in with the same credentials.
func (a *authService) Register(ctx context.Context, username, email string, password []byte) (*models.User, error) {
	if username == "" || email == "" || len(password) == 0 {
		return nil, fmt.Errorf("%w: username, email and password", common.ErrRequiredField)
	}

	reg := models.Registration{Username: username, Email: email, Password: string(password)}
	if err := a.client.Signup(ctx, reg); err != nil {
		return nil, fmt.Errorf("signup error: %w", err)
	}
	return a.Login(ctx, username, password)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.session.Load(ctx)
}
