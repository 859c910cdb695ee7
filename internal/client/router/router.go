// Package router maps REPL paths onto explicit screen variants and applies
// the authentication guard.
//
// Paths mirror the web routes of the service (/recipes/7/edit and so on), so
// a path copied from a browser works verbatim in the terminal.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/go-chi/chi/v5"
)

// Kind is the screen a path resolves to.
type Kind int

const (
	Unknown Kind = iota
	Home
	Login
	Register
	RecipeList
	RecipeCreate
	RecipeView
	RecipeEdit
	Profile
)

var kindNames = map[Kind]string{
	Unknown:      "unknown",
	Home:         "home",
	Login:        "login",
	Register:     "register",
	RecipeList:   "recipe-list",
	RecipeCreate: "recipe-create",
	RecipeView:   "recipe-view",
	RecipeEdit:   "recipe-edit",
	Profile:      "profile",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

var ErrNotFound = errors.New("page not found")

// Route is a resolved path. Only the fields meaningful for Kind are set:
// RecipeID for view/edit, UserID for a foreign profile or a list filter,
// CategoryID for a list filter.
type Route struct {
	Kind       Kind
	RecipeID   int64
	UserID     int64
	CategoryID int64
}

// Protected reports whether the route requires a session.
func (r Route) Protected() bool {
	switch r.Kind {
	case RecipeList, RecipeCreate, RecipeView, RecipeEdit, Profile:
		return true
	}
	return false
}

// AnonymousOnly reports whether a signed-in user is sent away from the route.
func (r Route) AnonymousOnly() bool {
	return r.Kind == Login || r.Kind == Register
}

// Path renders the route back to its canonical path.
func (r Route) Path() string {
	switch r.Kind {
	case Home:
		return "/"
	case Login:
		return "/login"
	case Register:
		return "/register"
	case RecipeList:
		q := url.Values{}
		if r.UserID > 0 {
			q.Set("user_id", strconv.FormatInt(r.UserID, 10))
		}
		if r.CategoryID > 0 {
			q.Set("category", strconv.FormatInt(r.CategoryID, 10))
		}
		if len(q) > 0 {
			return "/recipes?" + q.Encode()
		}
		return "/recipes"
	case RecipeCreate:
		return "/recipes/new"
	case RecipeView:
		return fmt.Sprintf("/recipes/%d", r.RecipeID)
	case RecipeEdit:
		return fmt.Sprintf("/recipes/%d/edit", r.RecipeID)
	case Profile:
		if r.UserID > 0 {
			return fmt.Sprintf("/users/%d", r.UserID)
		}
		return "/profile"
	}
	return ""
}

func (r Route) String() string { return r.Path() }

var table = map[string]Kind{
	"/":                  Home,
	"/login":             Login,
	"/register":          Register,
	"/recipes":           RecipeList,
	"/recipes/new":       RecipeCreate,
	"/recipes/{id}":      RecipeView,
	"/recipes/{id}/edit": RecipeEdit,
	"/profile":           Profile,
	"/users/{userId}":    Profile,
}

// mux holds the patterns of table. Matching goes through Mux.Find, so the
// handlers are never invoked.
var mux = func() *chi.Mux {
	m := chi.NewRouter()
	noop := func(http.ResponseWriter, *http.Request) {}
	for pattern := range table {
		m.Get(pattern, noop)
	}
	return m
}()

// Resolve matches path against the route table.
func Resolve(path string) (Route, error) {
	u, err := url.Parse(path)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	p := "/" + strings.Trim(u.Path, "/")

	rctx := chi.NewRouteContext()
	pattern := mux.Find(rctx, http.MethodGet, p)
	kind, ok := table[pattern]
	if !ok {
		return Route{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	r := Route{Kind: kind}
	switch kind {
	case RecipeView, RecipeEdit:
		if r.RecipeID, err = common.ParseID(rctx.URLParam("id")); err != nil {
			return Route{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
	case Profile:
		if v := rctx.URLParam("userId"); v != "" {
			if r.UserID, err = common.ParseID(v); err != nil {
				return Route{}, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
		}
	case RecipeList:
		q := u.Query()
		if v := q.Get("user_id"); v != "" {
			if r.UserID, err = common.ParseID(v); err != nil {
				return Route{}, fmt.Errorf("user_id: %w", err)
			}
		}
		if v := q.Get("category"); v != "" {
			if r.CategoryID, err = common.ParseID(v); err != nil {
				return Route{}, fmt.Errorf("category: %w", err)
			}
		}
	}
	return r, nil
}

// Guard returns where the shell should actually go for r: protected routes
// need a session, login and register are for anonymous users only, and the
// root path always redirects.
func Guard(r Route, authenticated bool) Route {
	switch {
	case r.Kind == Home && authenticated:
		return Route{Kind: RecipeList}
	case r.Kind == Home:
		return Route{Kind: Login}
	case r.Protected() && !authenticated:
		return Route{Kind: Login}
	case r.AnonymousOnly() && authenticated:
		return Route{Kind: RecipeList}
	}
	return r
}
