package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ivanmarin/orbit/internal/domain"
)

// Storage sentinels. Unique-constraint violations surface as these so the
// services can translate them without knowing about SQLSTATEs.
var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrDuplicateFollow = errors.New("follow edge already exists")
)

// Mutations that take an *domain.Activity append it in the same transaction
// as the primary write; on any failure the whole request rolls back.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User, joined *domain.Activity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User, logged *domain.Activity) error
	List(ctx context.Context) ([]domain.User, error)
}

type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow, logged *domain.Activity) error
	Get(ctx context.Context, followerID, followedID uuid.UUID) (*domain.Follow, error)
	Delete(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int, error)
	List(ctx context.Context) ([]domain.Follow, error)
}

type ActivityRepository interface {
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Activity, error)
}
