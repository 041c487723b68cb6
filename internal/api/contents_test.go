package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/secondbrain-dev/secondbrain/internal/api"
)

func TestContent_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice", "Passw0rd!")
	token := seedToken(t, env, user.ID)

	body := `{"link":"https://go.dev/blog","type":"article","title":"Go blog"}`
	req := httptest.NewRequest("POST", "/api/v1/content", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("create: status = %d; body: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/v1/content", nil)
	authRequest(req, token)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var resp api.ContentListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Content) != 1 {
		t.Fatalf("len(content) = %d, want 1", len(resp.Content))
	}
	item := resp.Content[0]
	if item.Title != "Go blog" || item.Link != "https://go.dev/blog" || item.Type != "article" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Owner.Username != "alice" {
		t.Errorf("owner username = %q, want %q", item.Owner.Username, "alice")
	}
	if item.Tags == nil || len(item.Tags) != 0 {
		t.Errorf("tags = %v, want empty list", item.Tags)
	}
}

func TestContent_CreateAcceptsAnything(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice", "Passw0rd!")
	token := seedToken(t, env, user.ID)

	// No validation on the content path: empty everything is accepted.
	req := httptest.NewRequest("POST", "/api/v1/content", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestContent_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct {
		method, path string
	}{
		{"POST", "/api/v1/content"},
		{"GET", "/api/v1/content"},
		{"DELETE", "/api/v1/content?contentId=x"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		env.Router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestContent_DeleteValidation(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice", "Passw0rd!")
	token := seedToken(t, env, user.ID)

	// Missing contentId.
	req := httptest.NewRequest("DELETE", "/api/v1/content", nil)
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing id: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	// Malformed contentId.
	req = httptest.NewRequest("DELETE", "/api/v1/content?contentId=not-a-uuid", nil)
	authRequest(req, token)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestContent_DeleteOwnItem(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice", "Passw0rd!")
	token := seedToken(t, env, user.ID)

	item, err := env.ContentStore.Create(context.Background(), user.ID, "Title", "https://example.com", "link")
	if err != nil {
		t.Fatalf("create content: %v", err)
	}

	req := httptest.NewRequest("DELETE", "/api/v1/content?contentId="+item.ID, nil)
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}

	items, err := env.ContentStore.ListByOwner(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("item still present after delete")
	}
}

func TestContent_DeleteOtherUsersItem(t *testing.T) {
	env := newTestEnv(t)
	alice := seedUser(t, env, "alice", "Passw0rd!")
	bob := seedUser(t, env, "bob", "Passw0rd!")
	aliceToken := seedToken(t, env, alice.ID)

	item, err := env.ContentStore.Create(context.Background(), bob.ID, "Bob item", "https://b.example", "link")
	if err != nil {
		t.Fatalf("create content: %v", err)
	}

	// Alice holds a valid id but does not own the row; the response must be
	// indistinguishable from a missing id.
	req := httptest.NewRequest("DELETE", "/api/v1/content?contentId="+item.ID, nil)
	authRequest(req, aliceToken)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	items, err := env.ContentStore.ListByOwner(context.Background(), bob.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("bob's content did not survive alice's delete attempt")
	}
}

func TestContent_DeleteUnknownID(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice", "Passw0rd!")
	token := seedToken(t, env, user.ID)

	req := httptest.NewRequest("DELETE", "/api/v1/content?contentId=11111111-2222-3333-4444-555555555555", nil)
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
