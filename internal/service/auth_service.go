package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"holomeet/internal/model"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthService mints display identities. There is no password and no
// registry lookup: login exists only so clients get a stable user id
// and a session token to carry it. The realtime plane still trusts
// whatever identity a connection declares on join.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
	}
}

// Login mints an identity for the given display name and returns it
// with a signed session token.
func (s *AuthService) Login(name, specialization string) (*model.LoginResponse, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	userID := uuid.New().String()

	claims := &model.SessionClaims{
		UserID:         userID,
		Name:           name,
		Specialization: specialization,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		ID:             userID,
		Name:           name,
		Specialization: specialization,
		Token:          tokenString,
	}, nil
}

// ValidateToken validates a session JWT and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*model.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
