package continuity

import (
	"context"
	"errors"
	"strings"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/pkg/logger"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrPlanNotFound = errors.New("continuity plan not found")

// Manager owns continuity plan authoring and the subscriptions created from
// direct signups or guarantee rollovers.
type Manager struct {
	logger logger.ILogger
}

func NewManager(log logger.ILogger) *Manager {
	return &Manager{logger: log}
}

// CreatePlan stores a new recurring-billing plan. Currency defaults to USD,
// interval count to 1.
func (m *Manager) CreatePlan(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateContinuityPlanRequest, createdBy *uuid.UUID) (*entity.ContinuityPlan, error) {
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}
	intervalCount := req.BillingIntervalCount
	if intervalCount < 1 {
		intervalCount = 1
	}

	plan := &entity.ContinuityPlan{
		Id:                   uuid.New(),
		Name:                 strings.TrimSpace(req.Name),
		Description:          req.Description,
		ServiceId:            req.ServiceId,
		BillingInterval:      entity.BillingInterval(req.BillingInterval),
		BillingIntervalCount: intervalCount,
		AmountPerInterval:    req.AmountPerInterval,
		Currency:             currency,
		MinCommitmentCycles:  req.MinCommitmentCycles,
		MaxCycles:            req.MaxCycles,
		TrialDays:            req.TrialDays,
		Features:             req.Features,
		CancellationPolicy:   req.CancellationPolicy,
		IsActive:             true,
		CreatedBy:            createdBy,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ContinuityPlanRepository().Create(ctx, plan); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Created Continuity Plan", map[string]interface{}{
		"planId":   plan.Id.String(),
		"name":     plan.Name,
		"interval": string(plan.BillingInterval),
	})

	return plan, nil
}

// UpdatePlan applies a partial update; nil pointer fields are left untouched.
func (m *Manager) UpdatePlan(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID, req dto.UpdateContinuityPlanRequest) (*entity.ContinuityPlan, error) {
	plan, err := uow.ContinuityPlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	if req.Name != nil {
		plan.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.ServiceId != nil {
		plan.ServiceId = req.ServiceId
	}
	if req.BillingInterval != nil {
		plan.BillingInterval = entity.BillingInterval(*req.BillingInterval)
	}
	if req.BillingIntervalCount != nil {
		plan.BillingIntervalCount = *req.BillingIntervalCount
	}
	if req.AmountPerInterval != nil {
		plan.AmountPerInterval = *req.AmountPerInterval
	}
	if req.MinCommitmentCycles != nil {
		plan.MinCommitmentCycles = *req.MinCommitmentCycles
	}
	if req.MaxCycles != nil {
		plan.MaxCycles = req.MaxCycles
	}
	if req.TrialDays != nil {
		plan.TrialDays = *req.TrialDays
	}
	if req.Features != nil {
		plan.Features = req.Features
	}
	if req.CancellationPolicy != nil {
		plan.CancellationPolicy = *req.CancellationPolicy
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ContinuityPlanRepository().Update(ctx, plan); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return plan, nil
}

func (m *Manager) GetPlan(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID) (*entity.ContinuityPlan, error) {
	plan, err := uow.ContinuityPlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (m *Manager) GetPlans(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, activeOnly bool) ([]*entity.ContinuityPlan, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var specs []specification.Specification
	if activeOnly {
		specs = append(specs, specification.ActiveOnly{})
	}
	specs = append(specs,
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
		specification.OrderBy{Field: "created_at", Desc: true},
	)

	return uow.ContinuityPlanRepository().FindAll(ctx, specs...)
}

// DeactivatePlan retires a plan from new signups. Existing subscriptions keep
// billing, so plans are never hard-deleted once referenced.
func (m *Manager) DeactivatePlan(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID) error {
	plan, err := uow.ContinuityPlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrPlanNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	plan.IsActive = false
	if err := uow.ContinuityPlanRepository().Update(ctx, plan); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	m.logger.Info("ADMIN", "Deactivated Continuity Plan", map[string]interface{}{
		"planId": planId.String(),
	})
	return nil
}

// GetSubscriptions lists client subscriptions with their plan preloaded,
// optionally filtered by status or client email.
func (m *Manager) GetSubscriptions(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status, clientEmail string) ([]*entity.ClientSubscription, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var specs []specification.Specification
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}
	if clientEmail != "" {
		specs = append(specs, specification.ByClientEmail{Email: clientEmail})
	}
	specs = append(specs,
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
		specification.OrderBy{Field: "created_at", Desc: true},
	)

	return uow.ClientSubscriptionRepository().FindAllWithPlan(ctx, specs...)
}
