package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func protectedEcho(t *testing.T, wantUserID string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := UserIDFromContext(r.Context()); got != wantUserID {
			t.Errorf("user id in context = %q, want %q", got, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireUser_ValidToken(t *testing.T) {
	tokens := NewTokens("test-secret")
	mw := NewMiddleware(tokens)

	tok, err := tokens.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", tok)
	rec := httptest.NewRecorder()
	mw.RequireUser(protectedEcho(t, "user-123")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireUser_BearerPrefixAccepted(t *testing.T) {
	tokens := NewTokens("test-secret")
	mw := NewMiddleware(tokens)

	tok, err := tokens.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	mw.RequireUser(protectedEcho(t, "user-123")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireUser_MissingHeader(t *testing.T) {
	mw := NewMiddleware(NewTokens("test-secret"))

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	mw.RequireUser(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("handler ran despite missing token")
	}
}

func TestRequireUser_BadToken(t *testing.T) {
	mw := NewMiddleware(NewTokens("test-secret"))

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	mw.RequireUser(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("handler ran despite bad token")
	}
}

func TestRequireUser_TokenFromDifferentSecret(t *testing.T) {
	mw := NewMiddleware(NewTokens("server-secret"))

	tok, err := NewTokens("other-secret").Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", tok)
	rec := httptest.NewRecorder()
	mw.RequireUser(http.NotFoundHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
