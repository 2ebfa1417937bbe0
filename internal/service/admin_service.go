package service

import (
	"context"

	"github.com/ivanmarin/orbit/internal/domain"
	"github.com/ivanmarin/orbit/internal/repository"
)

type AdminService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewAdminService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *AdminService {
	return &AdminService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// ListUserSummaries returns the compact admin listing in store order.
func (s *AdminService) ListUserSummaries(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, domain.UserSummary{
			ID:      u.ID,
			Email:   u.Email,
			IsAdmin: u.IsAdmin,
		})
	}
	return summaries, nil
}

// ListUsers returns full owner-shaped records for every user.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.ProfileView, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.ProfileView, 0, len(users))
	for i := range users {
		view := domain.OwnerView(&users[i])
		view.Followers, err = s.followRepo.CountFollowers(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		view.Following, err = s.followRepo.CountFollowing(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		view.Activities = []domain.Activity{}
		views = append(views, view)
	}
	return views, nil
}

// ListFollows returns every follow edge in store order.
func (s *AdminService) ListFollows(ctx context.Context) ([]domain.Follow, error) {
	follows, err := s.followRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if follows == nil {
		follows = []domain.Follow{}
	}
	return follows, nil
}
