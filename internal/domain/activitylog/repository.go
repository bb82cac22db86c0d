package activitylog

import "context"

type ActivityLogRepository interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}
