package auth

import "golang.org/x/crypto/bcrypt"

// Existing stored hashes were generated at cost 5; keep in sync.
const bcryptCost = 5

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches the stored hash. An empty
// hash (provider-only account with no local password) always fails closed.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
