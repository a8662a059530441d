// FILE: internal/service/continuity_service.go
package service

import (
	"context"
	"errors"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/unitofwork"
	"offerstack-be/pkg/admin/continuity"
	"offerstack-be/pkg/admin/guarantee"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IContinuityService interface {
	CreatePlan(ctx context.Context, req *dto.CreateContinuityPlanRequest, createdBy *uuid.UUID) (*dto.ContinuityPlanResponse, error)
	UpdatePlan(ctx context.Context, planId uuid.UUID, req *dto.UpdateContinuityPlanRequest) (*dto.ContinuityPlanResponse, error)
	GetPlan(ctx context.Context, planId uuid.UUID) (*dto.ContinuityPlanResponse, error)
	GetPlans(ctx context.Context, page, limit int, activeOnly bool) ([]dto.ContinuityPlanResponse, error)
	DeactivatePlan(ctx context.Context, planId uuid.UUID) error

	GetSubscriptions(ctx context.Context, page, limit int, status, clientEmail string) ([]dto.ClientSubscriptionResponse, error)
}

type continuityService struct {
	uowFactory unitofwork.RepositoryFactory
	manager    *continuity.Manager
}

func NewContinuityService(uowFactory unitofwork.RepositoryFactory, manager *continuity.Manager) IContinuityService {
	return &continuityService{
		uowFactory: uowFactory,
		manager:    manager,
	}
}

func mapContinuityError(err error) error {
	if errors.Is(err, continuity.ErrPlanNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return err
}

func (s *continuityService) CreatePlan(ctx context.Context, req *dto.CreateContinuityPlanRequest, createdBy *uuid.UUID) (*dto.ContinuityPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.manager.CreatePlan(ctx, uow, *req, createdBy)
	if err != nil {
		return nil, mapContinuityError(err)
	}
	resp := toPlanResponse(plan)
	return &resp, nil
}

func (s *continuityService) UpdatePlan(ctx context.Context, planId uuid.UUID, req *dto.UpdateContinuityPlanRequest) (*dto.ContinuityPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.manager.UpdatePlan(ctx, uow, planId, *req)
	if err != nil {
		return nil, mapContinuityError(err)
	}
	resp := toPlanResponse(plan)
	return &resp, nil
}

func (s *continuityService) GetPlan(ctx context.Context, planId uuid.UUID) (*dto.ContinuityPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.manager.GetPlan(ctx, uow, planId)
	if err != nil {
		return nil, mapContinuityError(err)
	}
	resp := toPlanResponse(plan)
	return &resp, nil
}

func (s *continuityService) GetPlans(ctx context.Context, page, limit int, activeOnly bool) ([]dto.ContinuityPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := s.manager.GetPlans(ctx, uow, page, limit, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ContinuityPlanResponse, 0, len(plans))
	for _, p := range plans {
		responses = append(responses, toPlanResponse(p))
	}
	return responses, nil
}

func (s *continuityService) DeactivatePlan(ctx context.Context, planId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.manager.DeactivatePlan(ctx, uow, planId); err != nil {
		return mapContinuityError(err)
	}
	return nil
}

func (s *continuityService) GetSubscriptions(ctx context.Context, page, limit int, status, clientEmail string) ([]dto.ClientSubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subs, err := s.manager.GetSubscriptions(ctx, uow, page, limit, status, clientEmail)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ClientSubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		responses = append(responses, toSubscriptionResponse(sub))
	}
	return responses, nil
}

// --- DTO assembly ---

func toPlanResponse(p *entity.ContinuityPlan) dto.ContinuityPlanResponse {
	return dto.ContinuityPlanResponse{
		Id:                   p.Id,
		Name:                 p.Name,
		Description:          p.Description,
		ServiceId:            p.ServiceId,
		BillingInterval:      string(p.BillingInterval),
		BillingIntervalCount: p.BillingIntervalCount,
		AmountPerInterval:    p.AmountPerInterval,
		Currency:             p.Currency,
		MinCommitmentCycles:  p.MinCommitmentCycles,
		MaxCycles:            p.MaxCycles,
		TrialDays:            p.TrialDays,
		Features:             p.Features,
		CancellationPolicy:   p.CancellationPolicy,
		IsActive:             p.IsActive,
		CreatedAt:            p.CreatedAt,
	}
}

func toSubscriptionResponse(sub *entity.ClientSubscription) dto.ClientSubscriptionResponse {
	planName := ""
	cyclesCovered := 0
	if sub.Plan != nil {
		planName = sub.Plan.Name
		cyclesCovered = guarantee.CreditCyclesCovered(sub.CreditTotal, sub.Plan.AmountPerInterval)
	}

	return dto.ClientSubscriptionResponse{
		Id:                  sub.Id,
		PlanName:            planName,
		ClientEmail:         sub.ClientEmail,
		Status:              string(sub.Status),
		CreditTotal:         sub.CreditTotal,
		CreditRemaining:     sub.CreditRemaining,
		CreditCyclesCovered: cyclesCovered,
		CyclesCompleted:     sub.CyclesCompleted,
		CurrentPeriodEnd:    sub.CurrentPeriodEnd,
		CreatedAt:           sub.CreatedAt,
	}
}
