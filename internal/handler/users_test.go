package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-reservation/internal/middleware"
	"github.com/iliyamo/movie-reservation/internal/utils"
)

// TestMe_ThroughJWTMiddleware issues a real access token and runs the request
// through the JWT middleware, so the claim plumbing is covered end to end.
func TestMe_ThroughJWTMiddleware(t *testing.T) {
	const secret = "test-secret"
	access, err := utils.NewAccessToken(secret, 7, "a@b.com", 15)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := echo.New()
	h := middleware.JWTAuth(secret)(NewUserHandler().Me)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Sub   uint64 `json:"sub"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Sub != 7 || out.Email != "a@b.com" {
		t.Fatalf("unexpected profile: %+v", out)
	}
}

func TestMe_RejectsMissingOrInvalidToken(t *testing.T) {
	e := echo.New()
	h := middleware.JWTAuth("test-secret")(NewUserHandler().Me)

	// No Authorization header at all.
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	// Token signed with a different secret.
	access, err := utils.NewAccessToken("other-secret", 7, "a@b.com", 15)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	rec = httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", rec.Code)
	}
}
