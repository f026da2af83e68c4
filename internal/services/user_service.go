package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"voidwebsite/internal/models"
	"voidwebsite/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnauthorized = errors.New("invalid email or password")

type UserService interface {
	CreateAdmin(ctx context.Context, user *models.AdminUser, password string) error
	// EnsureAdmin creates the admin account if no user has this email.
	EnsureAdmin(ctx context.Context, email, name, password string) (*models.AdminUser, bool, error)
	GetUserByID(ctx context.Context, id string) (*models.AdminUser, error)
	Authenticate(ctx context.Context, email, password string) (*models.AdminUser, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateAdmin(ctx context.Context, user *models.AdminUser, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = models.Admin
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.PasswordHash = string(hashedPassword)
	user.IsActive = true
	return s.userRepo.Create(ctx, user)
}

func (s *userService) EnsureAdmin(ctx context.Context, email, name, password string) (*models.AdminUser, bool, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	user := &models.AdminUser{Email: email, Name: name, Role: models.SuperAdmin}
	if err := s.CreateAdmin(ctx, user, password); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*models.AdminUser, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Authenticate answers ErrUnauthorized for an unknown email, a wrong
// password and an inactive account alike.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.AdminUser, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}
