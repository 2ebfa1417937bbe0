package handlers

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ivanmarin/orbit/internal/domain"
	"github.com/ivanmarin/orbit/internal/repository"
)

// memStore backs the in-memory repositories used by the API tests.
type memStore struct {
	users      []*domain.User
	follows    []domain.Follow
	activities []domain.Activity
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, user *domain.User, joined *domain.Activity) error {
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *user
	r.s.users = append(r.s.users, &cp)
	if joined != nil {
		r.s.activities = append(r.s.activities, *joined)
	}
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User, logged *domain.Activity) error {
	for i, u := range r.s.users {
		if u.ID == user.ID {
			cp := *user
			r.s.users[i] = &cp
			if logged != nil {
				r.s.activities = append(r.s.activities, *logged)
			}
			return nil
		}
	}
	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, *u)
	}
	return users, nil
}

type memFollowRepo struct{ s *memStore }

func (r *memFollowRepo) Create(_ context.Context, follow *domain.Follow, logged *domain.Activity) error {
	for _, f := range r.s.follows {
		if f.FollowerID == follow.FollowerID && f.FollowedID == follow.FollowedID {
			return repository.ErrDuplicateFollow
		}
	}
	r.s.follows = append(r.s.follows, *follow)
	if logged != nil {
		r.s.activities = append(r.s.activities, *logged)
	}
	return nil
}

func (r *memFollowRepo) Get(_ context.Context, followerID, followedID uuid.UUID) (*domain.Follow, error) {
	for _, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			cp := f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memFollowRepo) Delete(_ context.Context, followerID, followedID uuid.UUID) (bool, error) {
	for i, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			r.s.follows = append(r.s.follows[:i], r.s.follows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memFollowRepo) CountFollowers(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, f := range r.s.follows {
		if f.FollowedID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memFollowRepo) CountFollowing(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, f := range r.s.follows {
		if f.FollowerID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memFollowRepo) List(_ context.Context) ([]domain.Follow, error) {
	return append([]domain.Follow(nil), r.s.follows...), nil
}

type memActivityRepo struct{ s *memStore }

func (r *memActivityRepo) ListRecent(_ context.Context, userID uuid.UUID, limit int) ([]domain.Activity, error) {
	var entries []domain.Activity
	for _, a := range r.s.activities {
		if a.UserID == userID {
			entries = append(entries, a)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
