package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret  = errors.New("auth: signing secret is empty")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Identity is the caller recovered from a verified token.
type Identity struct {
	UserID int
	Role   string
	Name   string
}

type claims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

func NewTokenManager(secret string) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	return &TokenManager{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for user that expires after ttl.
func (m *TokenManager) Issue(user types.User, ttl time.Duration) (string, error) {
	issuedAt := m.now()
	role := user.Role
	if role == "" {
		role = types.RoleUser
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role,
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	})
	return token.SignedString(m.secret)
}

// Parse verifies the signature and expiry of tokenString.
func (m *TokenManager) Parse(tokenString string) (Identity, error) {
	var parsed claims
	token, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := strconv.Atoi(strings.TrimSpace(parsed.Subject))
	if err != nil || userID < 1 {
		return Identity{}, ErrInvalidToken
	}
	role := parsed.Role
	if role == "" {
		role = types.RoleUser
	}
	return Identity{UserID: userID, Role: role, Name: parsed.Name}, nil
}
