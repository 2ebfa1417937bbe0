package domain

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge: the follower watches the followed user's
// activity. At most one edge exists per ordered pair, and a user never
// follows themselves; both rules are backed by constraints in the store.
type Follow struct {
	ID         uuid.UUID `json:"id"`
	FollowerID uuid.UUID `json:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}
