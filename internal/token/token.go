// Package token issues and verifies the signed bearer tokens that tie
// a request to a user id. Tokens are stateless: validity is determined
// entirely by signature and expiry, never by server-side state.
package token

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is the only verification error. Malformed, forged, and
// expired tokens are indistinguishable to callers so that responses
// cannot be used as an oracle.
var ErrInvalid = errors.New("invalid token")

// Service signs and verifies HS256 tokens with a process-wide secret.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue produces a signed token whose subject is the user id and whose
// expiry is now+ttl.
func (s *Service) Issue(userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, structure, and expiry, and returns the user
// id carried in the subject claim.
func (s *Service) Verify(tokenString string) (int, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, ErrInvalid
	}

	userID, err := strconv.Atoi(strings.TrimSpace(claims.Subject))
	if err != nil || userID < 1 {
		return 0, ErrInvalid
	}
	return userID, nil
}
