package service

import (
	"github.com/google/uuid"

	"github.com/ivanmarin/orbit/internal/domain"
)

// Notifier pushes best-effort live events to connected clients. Failures
// never affect the outcome of the operation that triggered them.
type Notifier interface {
	NotifyFollowed(followedID uuid.UUID, follower *domain.User)
	NotifyActivity(activity *domain.Activity)
}

// NopNotifier is the default when no live transport is wired.
type NopNotifier struct{}

func (NopNotifier) NotifyFollowed(uuid.UUID, *domain.User) {}

func (NopNotifier) NotifyActivity(*domain.Activity) {}
