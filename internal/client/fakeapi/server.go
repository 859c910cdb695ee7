// Package fakeapi is an in-memory recipe backend used by tests. It speaks the
// same JSON/HTTP contract as the real service, including its quirks: signup
// failures come back as 200 with an "error" field, and mutations by a
// non-owner answer 403.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/go-chi/chi/v5"
)

// Request is a recorded inbound request.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
}

type account struct {
	user     models.User
	password string
}

// Server is a fake backend. All methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	accounts   map[int64]*account
	tokens     map[string]int64
	recipes    map[int64]models.Recipe
	categories []models.Category
	nextUserID int64
	nextRecipe int64
	requests   []Request
	failNext   int
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

type httpError struct {
	code int
	msg  string
}

func (e *httpError) Error() string { return e.msg }

func errorf(code int, format string, args ...any) error {
	return &httpError{code: code, msg: fmt.Sprintf(format, args...)}
}

// New starts a fake backend seeded with a few categories.
func New() *Server {
	s := &Server{
		accounts:   make(map[int64]*account),
		tokens:     make(map[string]int64),
		recipes:    make(map[int64]models.Recipe),
		nextUserID: 1,
		nextRecipe: 1,
		categories: []models.Category{
			{ID: 1, Name: "Breakfast", Description: "Morning meals and brunch recipes"},
			{ID: 2, Name: "Lunch", Description: "Midday meals and light dishes"},
			{ID: 3, Name: "Dinner", Description: "Evening meals and main courses"},
			{ID: 4, Name: "Dessert", Description: "Sweet treats and desserts"},
		},
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Post("/login", s.handle(s.login))
	r.Post("/signup", s.handle(s.signup))
	r.Get("/categories", s.handle(s.listCategories))
	r.Get("/users/{id}", s.handle(s.getUser))
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", s.handle(s.listRecipes))
		r.Post("/", s.handle(s.createRecipe))
		r.Get("/{id}", s.handle(s.getRecipe))
		r.Put("/{id}", s.handle(s.updateRecipe))
		r.Delete("/{id}", s.handle(s.deleteRecipe))
	})

	s.Server = httptest.NewServer(r)
	return s
}

// AddUser registers an account and returns it with a valid token.
func (s *Server) AddUser(username, email, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, email, password)
}

func (s *Server) addUserLocked(username, email, password string) models.User {
	id := s.nextUserID
	s.nextUserID++
	u := models.User{ID: id, Username: username, Email: email, Token: fmt.Sprintf("token-%d-%s", id, username)}
	s.accounts[id] = &account{user: u, password: password}
	s.tokens[u.Token] = id
	return u
}

// AddRecipe stores r as-is, assigning an id when r.ID is zero.
func (s *Server) AddRecipe(r models.Recipe) models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == 0 {
		r.ID = s.nextRecipe
	}
	if r.ID >= s.nextRecipe {
		s.nextRecipe = r.ID + 1
	}
	r = s.decorateLocked(r, r.SelectedCategoryIDs())
	s.recipes[r.ID] = r
	return r
}

// Recipe returns the stored recipe with the given id.
func (s *Server) Recipe(id int64) (models.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[id]
	return r, ok
}

// RecipeCount reports how many recipes are stored.
func (s *Server) RecipeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recipes)
}

// ExpireTokens invalidates every issued token; subsequent requests that
// present one receive 401.
func (s *Server) ExpireTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]int64)
}

// FailNext makes the next n requests answer 500.
func (s *Server) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// ResetRequests clears the request log.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		fail := s.failNext > 0
		if fail {
			s.failNext--
		}
		s.mu.Unlock()

		if fail {
			respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			code := http.StatusInternalServerError
			if he, ok := err.(*httpError); ok {
				code = he.code
			}
			respondJSON(w, code, map[string]string{"error": err.Error()})
		}
	}
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// viewer resolves the bearer token. A presented but unknown token is a 401;
// no token at all yields (0, nil).
func (s *Server) viewer(r *http.Request) (int64, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return 0, nil
	}
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return 0, errorf(http.StatusUnauthorized, "Invalid authorization header")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return 0, errorf(http.StatusUnauthorized, "Session expired")
	}
	return id, nil
}

func (s *Server) requireViewer(r *http.Request) (int64, error) {
	id, err := s.viewer(r)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errorf(http.StatusUnauthorized, "Authentication required")
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, errorf(http.StatusNotFound, "Not found")
	}
	return id, nil
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) error {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "Please fill out all fields", "success": false})
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.user.Username == creds.Username && a.password == creds.Password {
			if _, ok := s.tokens[a.user.Token]; !ok {
				a.user.Token = fmt.Sprintf("token-%d-%s-%d", a.user.ID, a.user.Username, len(s.tokens)+1)
				s.tokens[a.user.Token] = a.user.ID
			}
			respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Login successful", "user": a.user})
			return nil
		}
	}
	respondJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid username or password", "success": false})
	return nil
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) error {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		return errorf(http.StatusBadRequest, "Invalid request payload")
	}

	fail := func(msg string) error {
		respondJSON(w, http.StatusOK, map[string]string{"error": msg})
		return nil
	}
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		return fail("Please fill out all fields")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.user.Username == reg.Username {
			return fail("Username already exists")
		}
		if a.user.Email == reg.Email {
			return fail("Email already exists")
		}
	}
	if len(reg.Password) < 6 {
		return fail("Password must be at least 6 characters")
	}
	if !strings.Contains(reg.Email, "@") {
		return fail("Please enter a valid email address")
	}
	s.addUserLocked(reg.Username, reg.Email, reg.Password)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Registration successful! Please log in."})
	return nil
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) error {
	s.mu.Lock()
	out := append([]models.Category(nil), s.categories...)
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, out)
	return nil
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) error {
	viewer, err := s.requireViewer(r)
	if err != nil {
		return err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	s.mu.Lock()
	a, ok := s.accounts[id]
	s.mu.Unlock()
	if !ok {
		return errorf(http.StatusNotFound, "User not found")
	}

	out := models.PublicUser{ID: a.user.ID, Username: a.user.Username}
	if viewer == id {
		out.Email = a.user.Email
	}
	respondJSON(w, http.StatusOK, out)
	return nil
}

func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request) error {
	if _, err := s.viewer(r); err != nil {
		return err
	}
	var filter int64
	if v := r.URL.Query().Get("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errorf(http.StatusBadRequest, "invalid user_id")
		}
		filter = id
	}

	s.mu.Lock()
	out := make([]models.Recipe, 0, len(s.recipes))
	for _, rec := range s.recipes {
		if filter == 0 || rec.UserID == filter {
			out = append(out, rec)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respondJSON(w, http.StatusOK, out)
	return nil
}

func (s *Server) getRecipe(w http.ResponseWriter, r *http.Request) error {
	if _, err := s.viewer(r); err != nil {
		return err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	rec, ok := s.Recipe(id)
	if !ok {
		return errorf(http.StatusNotFound, "Recipe not found")
	}
	respondJSON(w, http.StatusOK, rec)
	return nil
}

func (s *Server) createRecipe(w http.ResponseWriter, r *http.Request) error {
	viewer, err := s.requireViewer(r)
	if err != nil {
		return err
	}
	var in models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.MissingField() != "" {
		return errorf(http.StatusBadRequest, "Missing required fields")
	}

	s.mu.Lock()
	rec := models.Recipe{
		ID:           s.nextRecipe,
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		UserID:       viewer,
	}
	s.nextRecipe++
	rec = s.decorateLocked(rec, in.CategoryIDs)
	s.recipes[rec.ID] = rec
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, rec)
	return nil
}

func (s *Server) updateRecipe(w http.ResponseWriter, r *http.Request) error {
	viewer, err := s.requireViewer(r)
	if err != nil {
		return err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	var in models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return errorf(http.StatusBadRequest, "Invalid request payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recipes[id]
	if !ok {
		return errorf(http.StatusNotFound, "Recipe not found")
	}
	if rec.UserID != viewer {
		return errorf(http.StatusForbidden, "Unauthorized")
	}
	rec.Title, rec.Description = in.Title, in.Description
	rec.Ingredients, rec.Instructions = in.Ingredients, in.Instructions
	rec = s.decorateLocked(rec, in.CategoryIDs)
	s.recipes[id] = rec

	respondJSON(w, http.StatusOK, map[string]any{"message": "Recipe updated successfully", "recipe": rec})
	return nil
}

func (s *Server) deleteRecipe(w http.ResponseWriter, r *http.Request) error {
	viewer, err := s.requireViewer(r)
	if err != nil {
		return err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recipes[id]
	if !ok {
		return errorf(http.StatusNotFound, "Recipe not found")
	}
	if rec.UserID != viewer {
		return errorf(http.StatusForbidden, "Unauthorized")
	}
	delete(s.recipes, id)

	respondJSON(w, http.StatusOK, map[string]string{"message": "Recipe deleted successfully"})
	return nil
}

// decorateLocked fills author and categories the way the backend does.
func (s *Server) decorateLocked(rec models.Recipe, categoryIDs []int64) models.Recipe {
	rec.Author = "Unknown"
	if a, ok := s.accounts[rec.UserID]; ok {
		rec.Author = a.user.Username
	}
	rec.CategoryIDs = nil
	rec.Categories = nil
	for _, c := range models.FilterCategories(s.categories, categoryIDs) {
		rec.Categories = append(rec.Categories, models.Category{ID: c.ID, Name: c.Name})
	}
	return rec
}
