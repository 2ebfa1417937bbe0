package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ivanmarin/orbit/internal/domain"
)

// Event types - Client → Server
const (
	EventTypePing = "ping"
)

// Event types - Server → Client
const (
	EventTypeFollowNotification = "notification.follow"
	EventTypeActivityNew        = "activity.new"
	EventTypePong               = "pong"
	EventTypeError              = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// FollowPayload announces a new follower to the followed user.
type FollowPayload struct {
	FollowerID   uuid.UUID `json:"follower_id"`
	FollowerName string    `json:"follower_name"`
}

// ActivityPayload echoes a freshly logged activity entry to its owner.
type ActivityPayload struct {
	domain.Activity
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
