package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost matches the work factor existing hashes were produced with.
const Cost = 10

var ErrEmptyPassword = errors.New("empty_password")

// Hash returns the bcrypt hash stored for a user.
func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify checks whether password matches the stored bcrypt hash.
func Verify(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
