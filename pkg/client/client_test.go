package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignInSetsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/signin" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(Credentials{
			ID: "u1", Name: "Alice", Email: "alice@example.com", Token: "tok123",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	u, err := c.SignIn(context.Background(), "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if u.Name != "Alice" {
		t.Errorf("user = %+v", u)
	}
	if !c.Session().SignedIn() || c.Session().Token() != "tok123" {
		t.Error("session not established")
	}
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(User{ID: "u1"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Session().Set(&User{ID: "u1"}, "tok123")
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestAPIErrorDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SignIn(context.Background(), "alice@example.com", "wrong")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid credentials" {
		t.Errorf("got %+v", apiErr)
	}
}

func TestShareRecordExpireInDays(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(Grant{ID: "g1"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	before := time.Now().AddDate(0, 0, 7).Add(-time.Minute)
	if _, err := c.ShareRecord(context.Background(), "r1", "friend@example.com", SharePermissions{}, 7); err != nil {
		t.Fatalf("ShareRecord: %v", err)
	}
	after := time.Now().AddDate(0, 0, 7).Add(time.Minute)

	raw, ok := body["expiration"].(string)
	if !ok {
		t.Fatalf("expiration missing: %v", body)
	}
	exp, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t.Fatalf("expiration %q: %v", raw, err)
	}
	if exp.Before(before) || exp.After(after) {
		t.Errorf("expiration %v not ~7 days out", exp)
	}

	// Permissions were omitted; the server owns the defaults.
	for _, key := range []string{"viewPermission", "downloadPermission", "resharePermission"} {
		if _, present := body[key]; present {
			t.Errorf("%s should be omitted", key)
		}
	}
}

func TestShareRecordNoExpiration(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(Grant{ID: "g1"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	view := false
	if _, err := c.ShareRecord(context.Background(), "r1", "friend@example.com",
		SharePermissions{View: &view}, 0); err != nil {
		t.Fatalf("ShareRecord: %v", err)
	}
	if _, present := body["expiration"]; present {
		t.Error("expiration should be omitted for a non-expiring share")
	}
	if v, _ := body["viewPermission"].(bool); v {
		t.Error("viewPermission should be false")
	}
}

func TestDeleteAccountClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "Account deleted successfully"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Session().Set(&User{ID: "u1"}, "tok123")
	if err := c.DeleteAccount(context.Background()); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if c.Session().SignedIn() {
		t.Error("session should be cleared")
	}
}
