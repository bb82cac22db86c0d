package site

import "context"

type SiteService interface {
	Create(ctx context.Context, req CreateSiteRequest, actorID string) (SiteResponse, error)
	List(ctx context.Context, activeOnly bool) ([]SiteResponse, error)
	SetActive(ctx context.Context, id string, active bool, actorID string) error
}
