package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// HTTPClient talks to the recipe backend over JSON/HTTP.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// requestIDTransport stamps every outbound request with a fresh X-Request-ID
// and asks for JSON.
type requestIDTransport struct {
	next http.RoundTripper
}

func (t requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	req.Header.Set("Accept", "application/json")
	return t.next.RoundTrip(req)
}

// NewHTTPClient builds a client for the backend at baseURL. A zero timeout
// disables the per-request deadline.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url: unsupported scheme %q", u.Scheme)
	}
	if tokens == nil {
		tokens = TokenFunc(func(context.Context) string { return "" })
	}
	if log == nil {
		log = logging.Discard()
	}

	return &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: requestIDTransport{next: http.DefaultTransport},
		},
		tokens: tokens,
		log:    log,
	}, nil
}

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Error   string       `json:"error"`
	User    *models.User `json:"user"`
}

type signupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type updateRecipeResponse struct {
	Message string         `json:"message"`
	Recipe  *models.Recipe `json:"recipe"`
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, false, creds, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.User == nil {
		msg := resp.Error
		if msg == "" {
			msg = "Authentication failed"
		}
		return nil, &APIError{StatusCode: http.StatusUnauthorized, Message: msg}
	}
	return resp.User, nil
}

// Signup registers an account. The backend reports validation failures as
// 200 responses with an "error" field; those are returned as *APIError with
// status 400.
func (c *HTTPClient) Signup(ctx context.Context, reg models.Registration) error {
	var resp signupResponse
	if err := c.do(ctx, http.MethodPost, "/signup", nil, false, reg, &resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return &APIError{StatusCode: http.StatusBadRequest, Message: resp.Error}
	}
	return nil
}

// ListRecipes returns all recipes, or only userID's when userID > 0.
func (c *HTTPClient) ListRecipes(ctx context.Context, userID int64) ([]models.Recipe, error) {
	var q url.Values
	if userID > 0 {
		q = url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	}
	var out []models.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes", q, true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	var out models.Recipe
	if err := c.do(ctx, http.MethodGet, recipePath(id), nil, true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error) {
	var out models.Recipe
	if err := c.do(ctx, http.MethodPost, "/recipes", nil, true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateRecipe(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error) {
	var out updateRecipeResponse
	if err := c.do(ctx, http.MethodPut, recipePath(id), nil, true, in, &out); err != nil {
		return nil, err
	}
	return out.Recipe, nil
}

func (c *HTTPClient) DeleteRecipe(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, recipePath(id), nil, true, nil, nil)
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, false, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.PublicUser, error) {
	var out models.PublicUser
	if err := c.do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), nil, true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func recipePath(id int64) string {
	return "/recipes/" + strconv.FormatInt(id, 10)
}

// do performs one request. When withAuth is set and the session has a token
// it is sent as a bearer credential. A nil out discards the body.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, withAuth bool, body, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	endpoint.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "api request failed", "method", method, "path", path, "error", err)
		return c.mapError(err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api request", "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// mapError classifies transport failures. Caller cancellation is passed
// through unchanged; everything else means the backend could not be reached.
func (c *HTTPClient) mapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &payload) == nil {
		apiErr.Message = payload.Error
		if apiErr.Message == "" {
			apiErr.Message = payload.Message
		}
	}
	return apiErr
}
