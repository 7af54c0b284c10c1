package utils

import "golang.org/x/crypto/bcrypt"

// Cost 12 keeps a single verification in the low hundreds of milliseconds,
// slow enough to blunt offline guessing against leaked hashes
const bcryptCost = 12

// HashPassword derives a bcrypt hash for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches the stored hash
func ComparePassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
