package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/recipebox/internal/client/client"
	"github.com/dmitrijs2005/recipebox/internal/client/router"
	"github.com/dmitrijs2005/recipebox/internal/common"
)

// maxRedirects bounds one navigation. Screens only ever hand back a short
// chain (form, list, login), so hitting it means a loop.
const maxRedirects = 8

const (
	msgSessionExpired = "Your session has expired. Please log in again."
	msgForbidden      = "You do not have permission to perform this action"
	msgRecipeNotFound = "Recipe not found."
)

// screenError carries the message shown to the user when err is not one of
// the cases handleError treats specially.
type screenError struct {
	msg string
	err error
}

func (e *screenError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *screenError) Unwrap() error { return e.err }

func failure(msg string, err error) error {
	return &screenError{msg: msg, err: err}
}

// screenFunc renders one route. A non-nil route is where to go next.
type screenFunc func(ctx context.Context, r router.Route) (*router.Route, error)

func (a *App) screen(kind router.Kind) screenFunc {
	switch kind {
	case router.Login:
		return a.loginScreen
	case router.Register:
		return a.registerScreen
	case router.RecipeList:
		return a.listScreen
	case router.RecipeCreate:
		return a.createScreen
	case router.RecipeView:
		return a.viewScreen
	case router.RecipeEdit:
		return a.editScreen
	case router.Profile:
		return a.profileScreen
	}
	return nil
}

// navigate shows target after the guard has had its say, then follows the
// routes the screens hand back.
func (a *App) navigate(ctx context.Context, target router.Route) {
	for i := 0; i < maxRedirects; i++ {
		r := router.Guard(target, a.isAuthenticated())
		if r != target {
			a.log.Debug(ctx, "redirect", "from", target.Path(), "to", r.Path())
		}
		a.current = r

		render := a.screen(r.Kind)
		if render == nil {
			a.println(router.ErrNotFound.Error())
			return
		}

		next, err := render(ctx, r)
		if err != nil {
			next = a.handleError(ctx, r, err)
		}
		if next == nil {
			return
		}
		target = *next
	}
	a.log.Warn(ctx, "navigation stopped after too many redirects", "route", target.Path())
	a.println("Too many redirects.")
}

// handleError maps a screen failure to what the user sees and, possibly,
// where they are sent.
func (a *App) handleError(ctx context.Context, r router.Route, err error) *router.Route {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.log.Info(ctx, "session rejected by the server, signing out", "route", r.Path())
		if cerr := a.authService.Logout(ctx); cerr != nil {
			a.log.Error(ctx, "failed to clear session", "error", cerr)
		}
		a.println(msgSessionExpired)
		return &router.Route{Kind: router.Login}

	case errors.Is(err, client.ErrForbidden):
		a.println(msgForbidden)
		return nil

	case errors.Is(err, client.ErrNotFound) && (r.Kind == router.RecipeView || r.Kind == router.RecipeEdit):
		a.println(msgRecipeNotFound)
		return &router.Route{Kind: router.RecipeList}

	case errors.Is(err, common.ErrRequiredField):
		a.println("Please fill out all required fields.")
		return nil

	case errors.Is(err, common.ErrCancelled):
		a.println("Cancelled.")
		return nil

	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		return nil
	}

	a.log.Error(ctx, "screen failed", "route", r.Path(), "error", err)
	var se *screenError
	if errors.As(err, &se) {
		a.println(se.msg + ".")
	} else {
		a.println("Something went wrong. Please try again.")
	}
	return nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// Go navigates to an arbitrary path.
func (a *App) Go(ctx context.Context, path string) error {
	r, err := router.Resolve(path)
	if err != nil {
		return err
	}
	a.navigate(ctx, r)
	return nil
}

func parseIDArg(s string) (int64, error) {
	id, err := common.ParseID(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, s)
	}
	return id, nil
}
