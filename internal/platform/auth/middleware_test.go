package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestContext(method, path, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	return c, rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestBearerMiddleware_MissingHeader(t *testing.T) {
	signer := NewSigner(testSecret)
	mw := BearerMiddleware(signer, nil)

	c, _ := newTestContext(http.MethodGet, "/api/records", "")
	err := mw(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "Authentication failed: No token provided" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestBearerMiddleware_BadFormat(t *testing.T) {
	signer := NewSigner(testSecret)
	mw := BearerMiddleware(signer, nil)

	for _, header := range []string{"Basic abc", "Bearer", "token-without-scheme"} {
		c, _ := newTestContext(http.MethodGet, "/api/records", header)
		err := mw(okHandler)(c)

		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestBearerMiddleware_InvalidToken(t *testing.T) {
	signer := NewSigner(testSecret)
	mw := BearerMiddleware(signer, nil)

	c, _ := newTestContext(http.MethodGet, "/api/records", "Bearer garbage")
	err := mw(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "Authentication failed: Invalid token" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestBearerMiddleware_ExpiredToken(t *testing.T) {
	past := time.Now().Add(-31 * 24 * time.Hour)
	issuer := NewSignerWithClock(testSecret, func() time.Time { return past })
	token, err := issuer.Issue("user-1", "a@x.com", "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mw := BearerMiddleware(NewSigner(testSecret), nil)
	c, _ := newTestContext(http.MethodGet, "/api/records", "Bearer "+token)
	err = mw(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "Authentication failed: Token expired" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestBearerMiddleware_ValidTokenSetsSession(t *testing.T) {
	signer := NewSigner(testSecret)
	token, err := signer.Issue("user-1", "alice@example.com", "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got *Session
	handler := func(c echo.Context) error {
		got = SessionFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}

	mw := BearerMiddleware(signer, nil)
	c, _ := newTestContext(http.MethodGet, "/api/records", "Bearer "+token)
	if err := mw(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got == nil {
		t.Fatal("expected session in request context")
	}
	if got.UserID != "user-1" || got.Email != "alice@example.com" || got.Name != "Alice" {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestBearerMiddleware_SkipperBypassesAuth(t *testing.T) {
	signer := NewSigner(testSecret)
	mw := BearerMiddleware(signer, AuthSkipper)

	c, rec := newTestContext(http.MethodPost, "/api/auth/signin", "")
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("expected skipper to bypass auth, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAuthSkipper(t *testing.T) {
	for path, want := range map[string]bool{
		"/api/auth/signup": true,
		"/api/auth/signin": true,
		"/health":          true,
		"/api/auth/me":     false,
		"/api/records":     false,
	} {
		if got := IsPublicPath(path); got != want {
			t.Errorf("IsPublicPath(%q) = %v, want %v", path, got, want)
		}
	}
}
