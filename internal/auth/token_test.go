package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"github.com/golang-jwt/jwt/v5"
)

func TestNewTokenManagerRejectsEmptySecret(t *testing.T) {
	for _, secret := range []string{"", "   "} {
		if _, err := NewTokenManager(secret); !errors.Is(err, ErrEmptySecret) {
			t.Fatalf("NewTokenManager(%q) error = %v, want ErrEmptySecret", secret, err)
		}
	}
}

func TestIssueAndParse(t *testing.T) {
	manager, err := NewTokenManager("secret")
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := manager.Issue(types.User{ID: 42, Name: "Ada", Role: types.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	identity, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if identity.UserID != 42 || identity.Name != "Ada" || identity.Role != types.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestIssueDefaultsRole(t *testing.T) {
	manager, _ := NewTokenManager("secret")
	token, err := manager.Issue(types.User{ID: 1}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	identity, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if identity.Role != types.RoleUser {
		t.Fatalf("role = %q, want %q", identity.Role, types.RoleUser)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager, _ := NewTokenManager("secret")
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issued }

	token, err := manager.Issue(types.User{ID: 1}, time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	manager.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := manager.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	issuer, _ := NewTokenManager("one")
	verifier, _ := NewTokenManager("two")

	token, err := issuer.Issue(types.User{ID: 1}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse error = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsMalformedSubject(t *testing.T) {
	manager, _ := NewTokenManager("secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	if _, err := manager.Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse error = %v, want ErrInvalidToken", err)
	}
	if _, err := manager.Parse("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse garbage error = %v, want ErrInvalidToken", err)
	}
}
