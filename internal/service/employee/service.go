package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/employee"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	activityLog  activitylog.ActivityLogRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	activityLog activitylog.ActivityLogRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		activityLog:  activityLog,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest, actorID string) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hiredAt := time.Now()
	if req.HiredAt != nil {
		if parsed, ok := validator.IsValidDate(*req.HiredAt); ok {
			hiredAt = parsed
		}
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FullName:       req.FullName,
		Email:          req.Email,
		Role:           user.Role(req.Role),
		PercentageRate: req.PercentageRate,
		IsActive:       true,
		HiredAt:        hiredAt,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionCreate,
		EntityType: "employee",
		EntityID:   &created.ID,
	})

	return mapToResponse(created), nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToResponse(e), nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest, actorID string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.employeeRepo.Update(ctx, req.ID, req); err != nil {
		return err
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionUpdate,
		EntityType: "employee",
		EntityID:   &req.ID,
	})

	return nil
}

func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string, actorID string) error {
	if err := s.employeeRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	detail := "deactivated"
	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionUpdate,
		EntityType: "employee",
		EntityID:   &id,
		Detail:     &detail,
	})

	return nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, mapToResponse(e))
	}

	return responses, nil
}

func mapToResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:             e.ID,
		FullName:       e.FullName,
		Email:          e.Email,
		Role:           string(e.Role),
		PercentageRate: e.PercentageRate,
		IsActive:       e.IsActive,
		HiredAt:        e.HiredAt.Format("2006-01-02"),
	}
}
