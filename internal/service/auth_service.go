package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"plantstore/internal/config"
	"plantstore/internal/domain"
	"plantstore/internal/repository"
	"plantstore/pkg/token"
)

// minPasswordLength is the weakest password accepted at registration.
const minPasswordLength = 8

const bcryptCost = 10

// AuthService covers user registration and login plus the separate
// admin login backed by configured credentials.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LoginAdmin(ctx context.Context, email, password string) (string, error)
	Users(ctx context.Context) ([]domain.User, error)
	UserByID(ctx context.Context, id string) (*domain.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *token.Manager
	cfg    *config.AuthConfig
	log    *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *token.Manager, cfg *config.AuthConfig, log *zap.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		cfg:    cfg,
		log:    log,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: please enter a strong password", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Date:     time.Now(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(created.Email, "user")
	if err != nil {
		return nil, "", err
	}

	s.log.Info("User registered", zap.String("email", created.Email))

	return created, tok, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.Email, "user")
	if err != nil {
		return nil, "", err
	}

	return user, tok, nil
}

// LoginAdmin checks the configured admin credentials and issues an
// admin-role token. Admins are not stored in the user collection.
func (s *authService) LoginAdmin(_ context.Context, email, password string) (string, error) {
	if email != s.cfg.AdminEmail || password != s.cfg.AdminPassword {
		return "", domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(email, token.RoleAdmin)
	if err != nil {
		return "", err
	}

	s.log.Info("Admin logged in", zap.String("email", email))

	return tok, nil
}

func (s *authService) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.ListAll(ctx)
}

func (s *authService) UserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}
