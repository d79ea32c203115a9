package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token audiences distinguish the two account populations; each signs with
// its own secret.
const (
	TokenAudienceAdmin   = "admin"
	TokenAudienceStudent = "student"
)

// AccessClaims is the payload carried by issued session tokens.
type AccessClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs session tokens bound to an internal account id.
type TokenIssuer struct {
	secret   []byte
	audience string
	ttl      time.Duration
}

// NewTokenIssuer constructs an issuer for one audience. A zero ttl defaults
// to 24 hours.
func NewTokenIssuer(secret, audience string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		audience: audience,
		ttl:      ttl,
	}
}

// Issue signs an HS256 token for the given subject id.
func (t *TokenIssuer) Issue(subjectID uint, role string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subjectID), 10),
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
