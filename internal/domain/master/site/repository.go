package site

import "context"

type SiteRepository interface {
	Create(ctx context.Context, s Site) (Site, error)
	GetByID(ctx context.Context, id string) (Site, error)
	List(ctx context.Context, activeOnly bool) ([]Site, error)
	SetActive(ctx context.Context, id string, active bool) error
}
