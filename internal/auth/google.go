package auth

import (
	"context"
	"fmt"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
)

const googleIssuer = "https://accounts.google.com"

// GoogleClaims are the verified claims extracted from a Google ID token.
type GoogleClaims struct {
	Subject string
	Email   string
	Name    string
}

// GoogleVerifier verifies a raw Google ID token and returns its claims.
// Implementations must reject tokens whose audience does not match the
// configured client ID.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*GoogleClaims, error)
}

// googleVerifier verifies tokens against Google's published keys via OIDC
// discovery.
type googleVerifier struct {
	verifier *gooidc.IDTokenVerifier
}

// NewGoogleVerifier performs OIDC discovery against accounts.google.com and
// returns a verifier bound to clientID as the expected audience.
func NewGoogleVerifier(ctx context.Context, clientID string) (GoogleVerifier, error) {
	provider, err := gooidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("OIDC provider discovery failed for %s: %w", googleIssuer, err)
	}
	return &googleVerifier{
		verifier: provider.Verifier(&gooidc.Config{ClientID: clientID}),
	}, nil
}

func (g *googleVerifier) Verify(ctx context.Context, rawIDToken string) (*GoogleClaims, error) {
	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("id_token verification: %w", err)
	}

	var c struct {
		Email string `json:"email,omitempty"`
		Name  string `json:"name,omitempty"`
	}
	if err := idToken.Claims(&c); err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return &GoogleClaims{
		Subject: idToken.Subject,
		Email:   c.Email,
		Name:    c.Name,
	}, nil
}
