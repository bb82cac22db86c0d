package activitylog

import "context"

type ActivityLogService interface {
	Recent(ctx context.Context, limit int) ([]EntryResponse, error)
}

type EntryResponse struct {
	ID         string  `json:"id"`
	ActorID    string  `json:"actor_id"`
	ActorEmail *string `json:"actor_email,omitempty"`
	Action     string  `json:"action"`
	EntityType string  `json:"entity_type"`
	EntityID   *string `json:"entity_id,omitempty"`
	Detail     *string `json:"detail,omitempty"`
	CreatedAt  string  `json:"created_at"`
}
