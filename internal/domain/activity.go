package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity types.
const (
	ActivityJoin          = "join"
	ActivityFollow        = "follow"
	ActivityProfileUpdate = "profile_update"
)

// Activity is an append-only audit record of a user-visible account
// event. Entries are never mutated or deleted.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
