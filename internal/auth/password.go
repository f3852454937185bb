package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the rest of the stack was provisioned
// for. bcrypt embeds the salt and cost in the digest, so verification needs
// no extra state.
const bcryptCost = 10

func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword reports whether password matches the stored digest. A
// malformed digest is treated as a mismatch, never an error to the caller.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
