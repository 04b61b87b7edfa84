package services

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ecofinds/internal/auth"
	"ecofinds/internal/domain"
	"ecofinds/internal/repos"
)

type AuthService struct {
	Users  *repos.UserRepo
	Secret string
}

func (s *AuthService) Register(email, name, password string) (*domain.User, error) {
	if existing, err := s.Users.ByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Hash:      string(h),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login verifies credentials and mints a bearer token. Unknown email and bad
// password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	tok, err := auth.GenerateToken(s.Secret, u.ID, u.Name)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *AuthService) Profile(userID string) (*domain.User, error) {
	u, err := s.Users.ByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return u, nil
}
