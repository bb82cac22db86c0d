package master

import (
	"context"
	"fmt"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/master/site"
)

type SiteServiceImpl struct {
	siteRepo    site.SiteRepository
	activityLog activitylog.ActivityLogRepository
}

func NewSiteService(
	siteRepo site.SiteRepository,
	activityLog activitylog.ActivityLogRepository,
) site.SiteService {
	return &SiteServiceImpl{
		siteRepo:    siteRepo,
		activityLog: activityLog,
	}
}

func (s *SiteServiceImpl) Create(ctx context.Context, req site.CreateSiteRequest, actorID string) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	created, err := s.siteRepo.Create(ctx, site.Site{
		Name:     req.Name,
		URL:      req.URL,
		IsActive: true,
	})
	if err != nil {
		return site.SiteResponse{}, err
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionCreate,
		EntityType: "site",
		EntityID:   &created.ID,
	})

	return mapToResponse(created), nil
}

func (s *SiteServiceImpl) List(ctx context.Context, activeOnly bool) ([]site.SiteResponse, error) {
	sites, err := s.siteRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	responses := make([]site.SiteResponse, 0, len(sites))
	for _, x := range sites {
		responses = append(responses, mapToResponse(x))
	}

	return responses, nil
}

func (s *SiteServiceImpl) SetActive(ctx context.Context, id string, active bool, actorID string) error {
	if err := s.siteRepo.SetActive(ctx, id, active); err != nil {
		return err
	}

	detail := fmt.Sprintf("is_active=%t", active)
	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionUpdate,
		EntityType: "site",
		EntityID:   &id,
		Detail:     &detail,
	})

	return nil
}

func mapToResponse(x site.Site) site.SiteResponse {
	return site.SiteResponse{
		ID:       x.ID,
		Name:     x.Name,
		URL:      x.URL,
		IsActive: x.IsActive,
	}
}
