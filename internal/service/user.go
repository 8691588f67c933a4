package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/workdayz/workdayz-api/internal/domain"
	"github.com/workdayz/workdayz-api/internal/repository"
)

// bcryptCost is kept moderate: login is on the hot path of every session
const bcryptCost = 10

// UserService handles registration, login and profile management
type UserService struct {
	userRepo repository.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
	}
}

// Register creates a new user and returns it with a signed token
func (s *UserService) Register(ctx context.Context, user *domain.User, password string) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user.UserID = domain.NewID()
	if err := s.userRepo.Create(ctx, user, string(hash)); err != nil {
		return nil, "", fmt.Errorf("registering user: %w", err)
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, passwordHash, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Only a missing user reads as bad credentials; store failures propagate
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("logging in: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Update changes profile fields; email and password are not updatable here
func (s *UserService) Update(ctx context.Context, userID string, upd domain.UserUpdate) error {
	if err := s.userRepo.Update(ctx, userID, upd); err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	return nil
}

// Search finds users by full name, job title or skills
func (s *UserService) Search(ctx context.Context, query string) ([]*domain.User, error) {
	users, err := s.userRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
