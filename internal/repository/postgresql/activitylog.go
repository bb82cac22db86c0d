package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
)

type activityLogRepository struct {
	db *database.DB
}

func NewActivityLogRepository(db *database.DB) activitylog.ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Append(ctx context.Context, entry activitylog.Entry) error {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO activity_logs (id, actor_id, action, entity_type, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		entry.ID, entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, entry.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}

	return nil
}

func (r *activityLogRepository) List(ctx context.Context, limit int) ([]activitylog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
		SELECT l.id, l.actor_id, u.email, l.action, l.entity_type, l.entity_id, l.detail, l.created_at
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.actor_id
		ORDER BY l.created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	var entries []activitylog.Entry
	for rows.Next() {
		var e activitylog.Entry
		if err := rows.Scan(
			&e.ID, &e.ActorID, &e.ActorEmail, &e.Action, &e.EntityType,
			&e.EntityID, &e.Detail, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
