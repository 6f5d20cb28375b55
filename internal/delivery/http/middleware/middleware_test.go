package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobify/internal/config"
	"jobify/internal/domain/user"
	"jobify/internal/pkg/jwt"
	"jobify/internal/pkg/response"
)

type stubResolver struct {
	users map[primitive.ObjectID]user.User
}

func (s stubResolver) FindByID(_ context.Context, id primitive.ObjectID) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(false, log.New(discard{}, "", 0)).Middleware())
	return app
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func decodeBody(t *testing.T, res *http.Response) response.SemanticResponse {
	t.Helper()
	var body response.SemanticResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestAuthMiddleware_HappyPath(t *testing.T) {
	id := primitive.NewObjectID()
	resolver := stubResolver{users: map[primitive.ObjectID]user.User{
		id: {ID: id, Name: "Jane", Role: user.RoleUser, Password: "hash"},
	}}
	tokens := jwt.NewHMACService("test-secret", time.Hour)

	app := newTestApp()
	app.Get("/protected", NewAuthMiddleware(tokens, resolver).Middleware(), func(c fiber.Ctx) error {
		u, ok := CurrentUser(c)
		if !ok {
			t.Fatalf("expected current user in locals")
		}
		if u.Password != "" {
			t.Fatalf("locals identity must be sanitized")
		}
		return response.Success(c, fiber.StatusOK, "ok", fiber.Map{"id": u.ID.Hex()})
	})

	token, err := tokens.Generate(id.Hex())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	id := primitive.NewObjectID()
	resolver := stubResolver{users: map[primitive.ObjectID]user.User{id: {ID: id}}}
	tokens := jwt.NewHMACService("test-secret", time.Hour)

	app := newTestApp()
	app.Get("/protected", NewAuthMiddleware(tokens, resolver).Middleware(), func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, "ok", nil)
	})

	validToken, _ := tokens.Generate(id.Hex())
	deletedToken, _ := tokens.Generate(primitive.NewObjectID().Hex())
	foreignToken, _ := jwt.NewHMACService("other-secret", time.Hour).Generate(id.Hex())

	cases := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing header", "", fiber.StatusUnauthorized, "You are not logged in"},
		{"not bearer", "Basic " + validToken, fiber.StatusUnauthorized, "You are not logged in"},
		{"bad signature", "Bearer " + foreignToken, fiber.StatusUnauthorized, "Invalid token"},
		{"deleted user", "Bearer " + deletedToken, fiber.StatusUnauthorized, "User belonging to this token no longer exists"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			res, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if res.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, res.StatusCode)
			}
			if body := decodeBody(t, res); body.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, body.Message)
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	id := primitive.NewObjectID()
	tokens := jwt.NewHMACService("test-secret", time.Millisecond)
	resolver := stubResolver{users: map[primitive.ObjectID]user.User{id: {ID: id}}}

	app := newTestApp()
	app.Get("/protected", NewAuthMiddleware(tokens, resolver).Middleware(), func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, "ok", nil)
	})

	token, _ := tokens.Generate(id.Hex())
	time.Sleep(5 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
	if body := decodeBody(t, res); body.Message != "Token expired" {
		t.Fatalf("expected expiry message, got %q", body.Message)
	}
}

func TestRestrictTo(t *testing.T) {
	app := newTestApp()
	app.Get("/admin", func(c fiber.Ctx) error {
		c.Locals(ctxUserKey, user.User{ID: primitive.NewObjectID(), Role: user.Role(c.Get("X-Test-Role"))})
		return c.Next()
	}, RestrictTo(user.RoleAdmin), func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, "ok", nil)
	})

	app.Get("/anonymous", RestrictTo(user.RoleAdmin), func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, "ok", nil)
	})

	cases := []struct {
		role   string
		status int
	}{
		{"admin", fiber.StatusOK},
		{"user", fiber.StatusForbidden},
		{"employer", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Test-Role", tc.role)
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if res.StatusCode != tc.status {
			t.Fatalf("role %q: expected %d, got %d", tc.role, tc.status, res.StatusCode)
		}
	}

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/anonymous", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("no identity: expected 401, got %d", res.StatusCode)
	}
}

// memCounter is a fixed-window counter backed by a map.
type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memCounter) IncrWindow(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memCounter) TTL(context.Context, string) (time.Duration, error) {
	return 30 * time.Second, nil
}

func TestRateLimit_Enforced(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Max: 2, Window: time.Minute}
	app := newTestApp()
	app.Use(NewRateLimit(cfg, &memCounter{}, nil))
	app.Get("/", func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, "ok", nil)
	})

	for i := 0; i < 2; i++ {
		res, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if res.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, res.StatusCode)
		}
	}

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", res.StatusCode)
	}
	if res.Header.Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Max: 1, Window: time.Minute}
	app := newTestApp()
	app.Use(NewRateLimit(cfg, &memCounter{err: errors.New("redis down")}, nil))
	app.Get("/", func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, "ok", nil)
	})

	for i := 0; i < 3; i++ {
		res, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if res.StatusCode != fiber.StatusOK {
			t.Fatalf("counter failure must not reject requests, got %d", res.StatusCode)
		}
	}
}

func TestErrorMiddleware_AppError(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "User already exists", nil, errors.New("dup key"))
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", res.StatusCode)
	}
	if body := decodeBody(t, res); body.Message != "User already exists" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestErrorMiddleware_MasksServerErrorsInProduction(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(true, nil).Middleware())
	app.Get("/", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db exploded: secret dsn", nil, errors.New("dsn=admin:pw"))
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.StatusCode)
	}
	body := decodeBody(t, res)
	if body.Message != response.MessageInternalServerError {
		t.Fatalf("5xx detail must be masked, got %q", body.Message)
	}
	if body.Data != nil {
		t.Fatalf("5xx data must be dropped in production, got %v", body.Data)
	}
}

func TestErrorMiddleware_RecoversPanics(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(true, log.New(discard{}, "", 0)).Middleware())
	app.Get("/", func(c fiber.Ctx) error {
		panic("boom")
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.StatusCode)
	}
	body := decodeBody(t, res)
	if body.Data != nil {
		t.Fatalf("stack must not leak in production, got %v", body.Data)
	}
}
