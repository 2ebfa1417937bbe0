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
	ErrProfileNotFound = errors.New("profile not found")
	ErrPrivateProfile  = errors.New("this profile is private")
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
)

// activityFeedLimit bounds the embedded activity feed.
const activityFeedLimit = 10

type ProfileService struct {
	userRepo     repository.UserRepository
	followRepo   repository.FollowRepository
	activityRepo repository.ActivityRepository
	notifier     Notifier
}

func NewProfileService(userRepo repository.UserRepository, followRepo repository.FollowRepository, activityRepo repository.ActivityRepository, notifier Notifier) *ProfileService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ProfileService{
		userRepo:     userRepo,
		followRepo:   followRepo,
		activityRepo: activityRepo,
		notifier:     notifier,
	}
}

// UpdateInput is a sparse patch. A nil field keeps the stored value; a
// present empty string clears it. date_of_birth must be YYYY-MM-DD and ""
// clears the date.
type UpdateInput struct {
	Name         *string `json:"name"`
	Bio          *string `json:"bio"`
	Location     *string `json:"location"`
	Website      *string `json:"website"`
	Career       *string `json:"career"`
	Linkedin     *string `json:"linkedin"`
	Github       *string `json:"github"`
	Twitter      *string `json:"twitter"`
	ThemePref    *string `json:"theme_pref"`
	ProfileImage *string `json:"profile_image"`
	IsPrivate    *bool   `json:"is_private"`
	DateOfBirth  *string `json:"date_of_birth"`
}

// Get returns the target's profile as seen by viewer. The owner always
// sees the full view; everyone else is rejected when the profile is
// private and otherwise gets the public subset.
func (s *ProfileService) Get(ctx context.Context, viewerID, targetID uuid.UUID) (*domain.ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}

	if user.IsPrivate && viewerID != targetID {
		return nil, ErrPrivateProfile
	}

	var view domain.ProfileView
	if viewerID == targetID {
		view = domain.OwnerView(user)
	} else {
		view = domain.PublicView(user)
	}
	if err := s.decorate(ctx, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Update validates the whole patch before touching anything, then writes
// the changed fields and the profile_update activity in one transaction.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, patch UpdateInput) (*domain.ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}

	var dob *time.Time
	if patch.DateOfBirth != nil && *patch.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", *patch.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDate
		}
		dob = &parsed
	}

	applyString(&user.Name, patch.Name)
	applyString(&user.Bio, patch.Bio)
	applyString(&user.Location, patch.Location)
	applyString(&user.Website, patch.Website)
	applyString(&user.Career, patch.Career)
	applyString(&user.Linkedin, patch.Linkedin)
	applyString(&user.Github, patch.Github)
	applyString(&user.Twitter, patch.Twitter)
	applyString(&user.ThemePref, patch.ThemePref)
	applyString(&user.ProfileImage, patch.ProfileImage)
	if patch.IsPrivate != nil {
		user.IsPrivate = *patch.IsPrivate
	}
	if patch.DateOfBirth != nil {
		user.DateOfBirth = dob
	}

	logged := &domain.Activity{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        domain.ActivityProfileUpdate,
		Description: "Profile updated",
		Timestamp:   time.Now(),
	}

	if err := s.userRepo.Update(ctx, user, logged); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	s.notifier.NotifyActivity(logged)

	view := domain.OwnerView(user)
	if err := s.decorate(ctx, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// ListActivity returns the user's newest entries, newest first. A fresh
// call re-queries; the sequence is bounded, not restartable.
func (s *ProfileService) ListActivity(ctx context.Context, userID uuid.UUID) ([]domain.Activity, error) {
	entries, err := s.activityRepo.ListRecent(ctx, userID, activityFeedLimit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.Activity{}
	}
	return entries, nil
}

// decorate fills the computed counts and the embedded activity feed.
func (s *ProfileService) decorate(ctx context.Context, view *domain.ProfileView) error {
	followers, err := s.followRepo.CountFollowers(ctx, view.ID)
	if err != nil {
		return err
	}
	following, err := s.followRepo.CountFollowing(ctx, view.ID)
	if err != nil {
		return err
	}
	activities, err := s.ListActivity(ctx, view.ID)
	if err != nil {
		return err
	}
	view.Followers = followers
	view.Following = following
	view.Activities = activities
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
