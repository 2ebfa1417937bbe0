package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/ivanmarin/orbit/internal/domain"
	"github.com/ivanmarin/orbit/internal/repository"
)

var (
	ErrEmailTaken   = errors.New("user already exists")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type SignupInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ProfileImage string `json:"profile_image"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates a user and its join activity in one transaction. The
// email uniqueness check runs up front for the common case; the unique
// index still catches a concurrent duplicate.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		ProfileImage: "default.png",
		ThemePref:    "light",
		CreatedAt:    now,
	}
	if input.ProfileImage != "" {
		user.ProfileImage = input.ProfileImage
	}

	joined := &domain.Activity{
		ID:          uuid.New(),
		UserID:      user.ID,
		Type:        domain.ActivityJoin,
		Description: "Joined",
		Timestamp:   now,
	}

	if err := s.userRepo.Create(ctx, user, joined); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCreds
	}

	if !verifyPassword(input.Password, user.PasswordHash) {
		return "", ErrInvalidCreds
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return token, nil
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	return fmt.Sprintf("%s:%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPassword(password, encoded string) bool {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1
}
