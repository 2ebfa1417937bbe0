package ws

import (
	"github.com/google/uuid"

	"github.com/ivanmarin/orbit/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyFollowed(followedID uuid.UUID, follower *domain.User) {
	evt, err := NewEvent(EventTypeFollowNotification, FollowPayload{
		FollowerID:   follower.ID,
		FollowerName: follower.Name,
	})
	if err != nil {
		n.hub.log.Error("ws notifier: marshal error", "error", err)
		return
	}
	n.hub.SendToUser(followedID, evt)
}

func (n *HubNotifier) NotifyActivity(activity *domain.Activity) {
	evt, err := NewEvent(EventTypeActivityNew, ActivityPayload{Activity: *activity})
	if err != nil {
		n.hub.log.Error("ws notifier: marshal error", "error", err)
		return
	}
	n.hub.SendToUser(activity.UserID, evt)
}
