package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/observability"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	return app
}

type errorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func decodeError(t *testing.T, app *fiber.App, method, path, bearer string) (int, errorBody) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp.StatusCode, body
}

func TestErrorMiddlewareDomainError(t *testing.T) {
	app := newTestApp()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("tutor")
	})

	status, body := decodeError(t, app, "GET", "/missing", "")
	if status != 404 {
		t.Fatalf("status = %d, want 404", status)
	}
	if body.Error != "tutor not found" || body.Status != 404 {
		t.Errorf("body = %+v", body)
	}
}

func TestErrorMiddlewareHidesInternalDetail(t *testing.T) {
	app := newTestApp()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewInternalError(fiber.ErrTeapot)
	})

	status, body := decodeError(t, app, "GET", "/boom", "")
	if status != 500 {
		t.Fatalf("status = %d, want 500", status)
	}
	if body.Error != "internal server error" {
		t.Errorf("internal detail leaked: %+v", body)
	}
}

func TestErrorMiddlewareRecoversPanic(t *testing.T) {
	app := newTestApp()
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected")
	})

	status, body := decodeError(t, app, "GET", "/panic", "")
	if status != 500 {
		t.Fatalf("status = %d, want 500", status)
	}
	if body.Error != "internal server error" || body.Status != 500 {
		t.Errorf("body = %+v", body)
	}
}

func TestAuthMiddlewareChain(t *testing.T) {
	app := newTestApp()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	middleware := auth.NewMiddleware(tokens)
	app.Get("/protected", middleware.Handle, auth.RequireRole(domain.RoleTutor), func(c *fiber.Ctx) error {
		claims, _ := auth.ClaimsFromContext(c)
		return c.JSON(fiber.Map{"subject": claims.Subject})
	})

	status, body := decodeError(t, app, "GET", "/protected", "")
	if status != 401 {
		t.Fatalf("no header: status = %d, want 401 (%+v)", status, body)
	}

	status, _ = decodeError(t, app, "GET", "/protected", "not-a-token")
	if status != 401 {
		t.Fatalf("garbage token: status = %d, want 401", status)
	}

	studentToken, _, err := tokens.GenerateToken("user-1", "s@example.com", domain.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	status, _ = decodeError(t, app, "GET", "/protected", studentToken)
	if status != 403 {
		t.Fatalf("wrong role: status = %d, want 403", status)
	}

	tutorToken, _, err := tokens.GenerateToken("user-2", "t@example.com", domain.RoleTutor)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tutorToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("tutor token: status = %d, want 200", resp.StatusCode)
	}
	var ok struct {
		Subject string `json:"subject"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ok.Subject != "user-2" {
		t.Errorf("subject = %q, want user-2", ok.Subject)
	}
}
