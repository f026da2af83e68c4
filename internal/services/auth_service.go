package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"voidwebsite/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 12 * time.Hour

type Claims struct {
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt models.Timestamp  `json:"expiresAt"`
	User      *models.AdminUser `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ParseToken(token string) (*Claims, error)
}

type authService struct {
	users  UserService
	secret []byte
	now    func() time.Time
}

func NewAuthService(users UserService, secret string) AuthService {
	return &authService{users: users, secret: []byte(secret), now: time.Now}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expires := now.Add(tokenTTL)
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: models.NewTimestamp(expires), User: user}, nil
}

func (s *authService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
