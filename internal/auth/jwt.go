package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity token claims. The user id rides in the "id" claim.
// Tokens carry no expiry: a token stays valid until the signing secret
// rotates.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HMAC-signed identity tokens.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Issue signs an identity token for the given user id.
func (t *Tokens) Issue(userID string) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: userID})
	return tok.SignedString(t.secret)
}

// Verify parses and verifies a token string and returns the embedded user id.
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !tok.Valid || claims.UserID == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.UserID, nil
}
