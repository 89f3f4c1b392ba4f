package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret")

	tokenString, err := svc.Issue(42, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if tokenString == "" {
		t.Fatal("Issue() returned empty token")
	}

	userID, err := svc.Verify(tokenString)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() userID = %d, want 42", userID)
	}
}

func TestVerifyRejectsInvalidTokens(t *testing.T) {
	svc := NewService("test-secret")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "random string", token: "not.a.valid.token"},
		{name: "malformed jwt", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Verify() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tokenString, err := NewService("secret-one").Issue(1, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = NewService("secret-two").Verify(tokenString)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Verify() error = %v, want ErrInvalid", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := NewService("test-secret")

	tokenString, err := svc.Issue(1, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tokenString)
	}
	// Swap in a foreign payload while keeping the original signature.
	other, err := svc.Issue(2, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	tampered := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrInvalid) {
		t.Errorf("Verify() error = %v, want ErrInvalid", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-secret")

	tokenString, err := svc.Issue(1, -time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = svc.Verify(tokenString)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Verify() error = %v, want ErrInvalid", err)
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	svc := NewService("test-secret")

	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign with none: %v", err)
	}

	if _, err := svc.Verify(unsigned); !errors.Is(err, ErrInvalid) {
		t.Errorf("Verify() error = %v, want ErrInvalid", err)
	}
}

func TestVerifyRejectsNonNumericSubject(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc := NewService("test-secret")
	if _, err := svc.Verify(tokenString); !errors.Is(err, ErrInvalid) {
		t.Errorf("Verify() error = %v, want ErrInvalid", err)
	}
}
