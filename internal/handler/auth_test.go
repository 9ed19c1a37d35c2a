package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-reservation/internal/config"
	"github.com/iliyamo/movie-reservation/internal/repository"
	"github.com/iliyamo/movie-reservation/internal/utils"
)

// fakeUserStore keeps users in memory keyed by email.
type fakeUserStore struct {
	nextID uint64
	byMail map[string]repository.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, byMail: map[string]repository.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, email, password string, cost int) (uint64, error) {
	if _, ok := s.byMail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	u := repository.User{ID: s.nextID, Email: email, PasswordHash: hash}
	s.byMail[email] = u
	s.nextID++
	return u.ID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := s.byMail[email]
	if !ok {
		return repository.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (repository.User, error) {
	for _, u := range s.byMail {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, sql.ErrNoRows
}

// fakeTokenStore keeps refresh token hashes in memory.
type fakeTokenStore struct {
	active map[string]uint64
}

func newFakeTokenStore() *fakeTokenStore { return &fakeTokenStore{active: map[string]uint64{}} }

func (s *fakeTokenStore) StoreRefresh(_ context.Context, userID uint64, hash string, _ time.Time) error {
	s.active[hash] = userID
	return nil
}

func (s *fakeTokenStore) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	id, ok := s.active[hash]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return id, nil
}

func (s *fakeTokenStore) RevokeByHash(_ context.Context, hash string) error {
	delete(s.active, hash)
	return nil
}

func testAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	cfg := config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4, // bcrypt minimum, keeps tests fast
	}
	return NewAuthHandler(cfg, newFakeUserStore(), newFakeTokenStore())
}

func postJSON(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegister(t *testing.T) {
	h := testAuthHandler(t)

	c, rec := postJSON(t, "/auth/register", `{"email":"John.Doe@Example.com","password":"test1234"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	// Email is normalized to lower case.
	if !strings.Contains(rec.Body.String(), `"john.doe@example.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := testAuthHandler(t)

	c, _ := postJSON(t, "/auth/register", `{"email":"a@b.com","password":"test1234"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	c, rec := postJSON(t, "/auth/register", `{"email":"a@b.com","password":"other123"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRegister_Validation(t *testing.T) {
	h := testAuthHandler(t)

	for _, body := range []string{
		`{"email":"","password":"test1234"}`,
		`{"email":"not-an-email","password":"test1234"}`,
		`{"email":"a@b.com","password":"short"}`,
		`{"email":"a@b.com","password":"` + strings.Repeat("x", 33) + `"}`,
	} {
		c, rec := postJSON(t, "/auth/register", body)
		if err := h.Register(c); err != nil {
			t.Fatalf("register: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	h := testAuthHandler(t)

	c, _ := postJSON(t, "/auth/register", `{"email":"a@b.com","password":"test1234"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	c, rec := postJSON(t, "/auth/login", `{"email":"a@b.com","password":"test1234"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp loginResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens in response")
	}

	// The access token must carry sub and email claims.
	tok, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse access token: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["email"] != "a@b.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
	if claims["sub"].(float64) != 1 {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := testAuthHandler(t)

	c, _ := postJSON(t, "/auth/register", `{"email":"a@b.com","password":"test1234"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, body := range []string{
		`{"email":"a@b.com","password":"wrong-pass"}`,
		`{"email":"nobody@b.com","password":"test1234"}`,
	} {
		c, rec := postJSON(t, "/auth/login", body)
		if err := h.Login(c); err != nil {
			t.Fatalf("login: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: expected 401, got %d", body, rec.Code)
		}
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	h := testAuthHandler(t)

	c, _ := postJSON(t, "/auth/register", `{"email":"a@b.com","password":"test1234"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	c, rec := postJSON(t, "/auth/login", `{"email":"a@b.com","password":"test1234"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	var first loginResp
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}

	c, rec = postJSON(t, "/auth/refresh", `{"refreshToken":"`+first.RefreshToken+`"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// The old token was revoked by the rotation.
	c, rec = postJSON(t, "/auth/refresh", `{"refreshToken":"`+first.RefreshToken+`"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for reused refresh token, got %d", rec.Code)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	h := testAuthHandler(t)

	c, _ := postJSON(t, "/auth/register", `{"email":"a@b.com","password":"test1234"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	c, rec := postJSON(t, "/auth/login", `{"email":"a@b.com","password":"test1234"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	var resp loginResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	c, rec = postJSON(t, "/auth/logout", `{"refreshToken":"`+resp.RefreshToken+`"}`)
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, rec = postJSON(t, "/auth/refresh", `{"refreshToken":"`+resp.RefreshToken+`"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}
