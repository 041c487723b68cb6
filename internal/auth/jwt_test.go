package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret")

	tok, err := tokens.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokens_VerifyRejectsWrongSecret(t *testing.T) {
	tok, err := NewTokens("secret-a").Issue("user-123")
	require.NoError(t, err)

	_, err = NewTokens("secret-b").Verify(tok)
	assert.Error(t, err)
}

func TestTokens_VerifyRejectsGarbage(t *testing.T) {
	tokens := NewTokens("test-secret")

	_, err := tokens.Verify("not.a.token")
	assert.Error(t, err)

	_, err = tokens.Verify("")
	assert.Error(t, err)
}

func TestTokens_VerifyRejectsTampered(t *testing.T) {
	tokens := NewTokens("test-secret")

	tok, err := tokens.Issue("user-123")
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = tokens.Verify(tampered)
	assert.Error(t, err)
}
