package activitylog

import (
	"context"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
)

type ActivityLogServiceImpl struct {
	activityLogRepo activitylog.ActivityLogRepository
}

func NewActivityLogService(activityLogRepo activitylog.ActivityLogRepository) activitylog.ActivityLogService {
	return &ActivityLogServiceImpl{activityLogRepo: activityLogRepo}
}

func (s *ActivityLogServiceImpl) Recent(ctx context.Context, limit int) ([]activitylog.EntryResponse, error) {
	entries, err := s.activityLogRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity log: %w", err)
	}

	responses := make([]activitylog.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, activitylog.EntryResponse{
			ID:         e.ID,
			ActorID:    e.ActorID,
			ActorEmail: e.ActorEmail,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		})
	}

	return responses, nil
}
