package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/client/client"
	"github.com/dmitrijs2005/recipebox/internal/client/router"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login shows the login screen, or the list when already signed in.
func (a *App) Login(ctx context.Context) error {
	a.navigate(ctx, router.Route{Kind: router.Login})
	return nil
}

// Register shows the registration screen, or the list when already signed in.
func (a *App) Register(ctx context.Context) error {
	a.navigate(ctx, router.Route{Kind: router.Register})
	return nil
}

// Logout clears the session and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.println("Signed out.")
	a.navigate(ctx, router.Route{Kind: router.Login})
	return nil
}

// loginScreen prompts for credentials and signs in. An empty username
// leaves the screen. A rejected login prints the server's message; it is
// not a session expiry and must not reach handleError.
func (a *App) loginScreen(ctx context.Context, _ router.Route) (*router.Route, error) {
	a.println("Log in (leave the username empty to cancel, or type 'register' to create an account)")

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, nil
	}
	if username == "register" {
		return &router.Route{Kind: router.Register}, nil
	}

	password, err := getPassword(a.out)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, username, password)
	if err != nil {
		a.log.Info(ctx, "login failed", "username", username, "error", err)
		a.println(loginFailureMessage(err, "Login failed"))
		return nil, nil
	}

	a.printf("Welcome, %s!\n", user.Username)
	return &router.Route{Kind: router.RecipeList}, nil
}

func (a *App) registerScreen(ctx context.Context, _ router.Route) (*router.Route, error) {
	a.println("Create an account (leave the username empty to cancel)")

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil || username == "" {
		return nil, err
	}
	email, err := GetRequiredText(a.reader, "Email", "", a.out)
	if err != nil {
		return nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Register(ctx, username, email, password)
	if err != nil {
		a.log.Info(ctx, "registration failed", "username", username, "error", err)
		a.println(loginFailureMessage(err, "Registration failed"))
		return nil, nil
	}

	a.printf("Account created. Welcome, %s!\n", user.Username)
	return &router.Route{Kind: router.RecipeList}, nil
}

func loginFailureMessage(err error, fallback string) string {
	if errors.Is(err, common.ErrRequiredField) {
		return "Please fill out all fields"
	}
	return client.ServerMessage(err, fallback)
}

// WhoAmI prints the signed-in account. Claims of a JWT token are decoded
// for display only; the token is never verified locally.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.currentUser()
	if u == nil {
		a.println("Not signed in.")
		return nil
	}

	a.printf("Signed in as %s (id %d)\n", u.Username, u.ID)
	if u.Email != "" {
		a.printf("Email: %s\n", u.Email)
	}
	if at, err := a.session.SavedAt(ctx); err == nil && !at.IsZero() {
		a.printf("Since: %s\n", at.Local().Format(time.DateTime))
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(u.Token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			state := "valid until"
			if exp.Before(time.Now()) {
				state = "expired at"
			}
			a.printf("Token %s %s\n", state, exp.Local().Format(time.DateTime))
		}
	}
	return nil
}
