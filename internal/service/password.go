package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	defaultPasswordLength = 6

	// bcryptCost targets interactive login latency.
	bcryptCost = 10
)

// dummyPasswordHash is compared against on lookup-miss login paths so the
// response time does not reveal whether the identifier exists. It matches no
// issued password.
const dummyPasswordHash = "$2a$10$k87L/MF28Q673VKh8/cPi.SUl7MU/rWuSiIDDFayrKk/1tBsSQu4u"

// generateDefaultPassword draws a 6-character one-time password from the
// 62-symbol alphanumeric alphabet, one uniform draw per character. The
// keyspace (62^6) is well below modern credential-strength recommendations;
// the password is a one-time bootstrap credential delivered by email and
// meant to be changed at first login.
func generateDefaultPassword() (string, error) {
	alphabetSize := big.NewInt(int64(len(passwordAlphabet)))
	password := make([]byte, defaultPasswordLength)
	for i := range password {
		index, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to draw password character: %w", err)
		}
		password[i] = passwordAlphabet[index.Int64()]
	}
	return string(password), nil
}

func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
