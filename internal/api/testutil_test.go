package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/secondbrain-dev/secondbrain/internal/api"
	"github.com/secondbrain-dev/secondbrain/internal/auth"
	"github.com/secondbrain-dev/secondbrain/internal/store"
	"github.com/secondbrain-dev/secondbrain/internal/testutil"
)

// fakeGoogleVerifier returns canned claims per raw token, standing in for
// Google's verification service.
type fakeGoogleVerifier struct {
	claims map[string]*auth.GoogleClaims
}

func (f *fakeGoogleVerifier) Verify(_ context.Context, raw string) (*auth.GoogleClaims, error) {
	if c, ok := f.claims[raw]; ok {
		return c, nil
	}
	return nil, errors.New("token not recognized")
}

// testEnv holds all stores and helpers needed for API integration tests.
type testEnv struct {
	Router         http.Handler
	Tokens         *auth.Tokens
	Google         *fakeGoogleVerifier
	UserStore      *store.UserStore
	ContentStore   *store.ContentStore
	ShareLinkStore *store.ShareLinkStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full router with real stores and a fake Google verifier.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	us := store.NewUserStore(db)
	cs := store.NewContentStore(db)
	ss := store.NewShareLinkStore(db)
	tokens := auth.NewTokens("test-secret")
	google := &fakeGoogleVerifier{claims: map[string]*auth.GoogleClaims{}}

	router := api.NewRouter(api.Deps{
		AuthMiddleware: auth.NewMiddleware(tokens),
		Tokens:         tokens,
		Google:         google,
		UserStore:      us,
		ContentStore:   cs,
		ShareLinkStore: ss,
	})

	return &testEnv{
		Router:         router,
		Tokens:         tokens,
		Google:         google,
		UserStore:      us,
		ContentStore:   cs,
		ShareLinkStore: ss,
	}
}

// seedUser creates a local user with a hashed password and returns the record.
func seedUser(t *testing.T, env *testEnv, username, password string) *store.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := env.UserStore.Create(context.Background(), username, hash)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedToken issues an identity token for a user.
func seedToken(t *testing.T, env *testEnv, userID string) string {
	t.Helper()
	tok, err := env.Tokens.Issue(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// authRequest adds an identity token to the request.
func authRequest(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}
