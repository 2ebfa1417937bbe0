package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ivanmarin/orbit/internal/domain"
	"github.com/ivanmarin/orbit/internal/repository"
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrTargetNotFound   = errors.New("user not found")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following this user")
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifier   Notifier
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, notifier Notifier) *FollowService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// Follow creates the edge and the follower's activity entry in one
// transaction. The unique pair constraint decides the winner when two
// identical follows race; the loser sees ErrAlreadyFollowing.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uuid.UUID) (*domain.Follow, error) {
	if followerID == targetID {
		return nil, ErrSelfFollow
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if target == nil {
		return nil, ErrTargetNotFound
	}

	existing, err := s.followRepo.Get(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyFollowing
	}

	now := time.Now()
	follow := &domain.Follow{
		ID:         uuid.New(),
		FollowerID: followerID,
		FollowedID: targetID,
		CreatedAt:  now,
	}
	logged := &domain.Activity{
		ID:          uuid.New(),
		UserID:      followerID,
		Type:        domain.ActivityFollow,
		Description: fmt.Sprintf("Started following %s", target.Name),
		Timestamp:   now,
	}

	if err := s.followRepo.Create(ctx, follow, logged); err != nil {
		if errors.Is(err, repository.ErrDuplicateFollow) {
			return nil, ErrAlreadyFollowing
		}
		return nil, fmt.Errorf("creating follow: %w", err)
	}

	if follower, err := s.userRepo.GetByID(ctx, followerID); err == nil && follower != nil {
		s.notifier.NotifyFollowed(targetID, follower)
	}
	s.notifier.NotifyActivity(logged)

	return follow, nil
}

// Unfollow removes the edge if present.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error {
	removed, err := s.followRepo.Delete(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFollowing
	}
	return nil
}

// FollowerCount reports incoming edges, computed on demand.
func (s *FollowService) FollowerCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.followRepo.CountFollowers(ctx, userID)
}

// FollowingCount reports outgoing edges, computed on demand.
func (s *FollowService) FollowingCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.followRepo.CountFollowing(ctx, userID)
}
