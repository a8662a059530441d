package implementation

import (
	"context"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/model"
	"offerstack-be/internal/repository/contract"
	"offerstack-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type continuityPlanRepositoryImpl struct {
	db *gorm.DB
}

func NewContinuityPlanRepository(db *gorm.DB) contract.ContinuityPlanRepository {
	return &continuityPlanRepositoryImpl{db: db}
}

func (r *continuityPlanRepositoryImpl) Create(ctx context.Context, plan *entity.ContinuityPlan) error {
	m := &model.ContinuityPlan{
		Id:                   plan.Id,
		Name:                 plan.Name,
		Description:          plan.Description,
		ServiceId:            plan.ServiceId,
		BillingInterval:      string(plan.BillingInterval),
		BillingIntervalCount: plan.BillingIntervalCount,
		AmountPerInterval:    plan.AmountPerInterval,
		Currency:             plan.Currency,
		MinCommitmentCycles:  plan.MinCommitmentCycles,
		MaxCycles:            plan.MaxCycles,
		TrialDays:            plan.TrialDays,
		Features:             datatypes.NewJSONSlice(plan.Features),
		CancellationPolicy:   plan.CancellationPolicy,
		IsActive:             plan.IsActive,
		CreatedBy:            plan.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	plan.Id = m.Id
	plan.CreatedAt = m.CreatedAt
	return nil
}

func (r *continuityPlanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContinuityPlan, error) {
	var m model.ContinuityPlan
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&m), nil
}

func (r *continuityPlanRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContinuityPlan, error) {
	var ms []*model.ContinuityPlan
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var plans []*entity.ContinuityPlan
	for _, m := range ms {
		plans = append(plans, r.mapToEntity(m))
	}

	return plans, nil
}

func (r *continuityPlanRepositoryImpl) Update(ctx context.Context, plan *entity.ContinuityPlan) error {
	return r.db.WithContext(ctx).Model(&model.ContinuityPlan{}).
		Where("id = ?", plan.Id).
		Updates(map[string]interface{}{
			"name":                   plan.Name,
			"description":            plan.Description,
			"service_id":             plan.ServiceId,
			"billing_interval":       string(plan.BillingInterval),
			"billing_interval_count": plan.BillingIntervalCount,
			"amount_per_interval":    plan.AmountPerInterval,
			"min_commitment_cycles":  plan.MinCommitmentCycles,
			"max_cycles":             plan.MaxCycles,
			"trial_days":             plan.TrialDays,
			"features":               datatypes.NewJSONSlice(plan.Features),
			"cancellation_policy":    plan.CancellationPolicy,
			"is_active":              plan.IsActive,
		}).Error
}

func (r *continuityPlanRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ContinuityPlan{}, id).Error
}

func (r *continuityPlanRepositoryImpl) mapToEntity(m *model.ContinuityPlan) *entity.ContinuityPlan {
	return &entity.ContinuityPlan{
		Id:                   m.Id,
		Name:                 m.Name,
		Description:          m.Description,
		ServiceId:            m.ServiceId,
		BillingInterval:      entity.BillingInterval(m.BillingInterval),
		BillingIntervalCount: m.BillingIntervalCount,
		AmountPerInterval:    m.AmountPerInterval,
		Currency:             m.Currency,
		MinCommitmentCycles:  m.MinCommitmentCycles,
		MaxCycles:            m.MaxCycles,
		TrialDays:            m.TrialDays,
		Features:             m.Features,
		CancellationPolicy:   m.CancellationPolicy,
		IsActive:             m.IsActive,
		CreatedBy:            m.CreatedBy,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// --- Client Subscription Repository ---

type clientSubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewClientSubscriptionRepository(db *gorm.DB) contract.ClientSubscriptionRepository {
	return &clientSubscriptionRepositoryImpl{db: db}
}

func (r *clientSubscriptionRepositoryImpl) Create(ctx context.Context, sub *entity.ClientSubscription) error {
	m := &model.ClientSubscription{
		Id:                  sub.Id,
		ContinuityPlanId:    sub.ContinuityPlanId,
		ClientEmail:         sub.ClientEmail,
		ClientName:          sub.ClientName,
		OrderId:             sub.OrderId,
		GuaranteeInstanceId: sub.GuaranteeInstanceId,
		GatewayCustomerRef:  sub.GatewayCustomerRef,
		GatewaySubscription: sub.GatewaySubscription,
		Status:              string(sub.Status),
		CurrentPeriodStart:  sub.CurrentPeriodStart,
		CurrentPeriodEnd:    sub.CurrentPeriodEnd,
		CyclesCompleted:     sub.CyclesCompleted,
		CreditRemaining:     sub.CreditRemaining,
		CreditTotal:         sub.CreditTotal,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	sub.Id = m.Id
	sub.CreatedAt = m.CreatedAt
	return nil
}

func (r *clientSubscriptionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ClientSubscription, error) {
	var m model.ClientSubscription
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&m), nil
}

func (r *clientSubscriptionRepositoryImpl) FindAllWithPlan(ctx context.Context, specs ...specification.Specification) ([]*entity.ClientSubscription, error) {
	var ms []*model.ClientSubscription
	query := r.db.WithContext(ctx).Preload("Plan")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var subs []*entity.ClientSubscription
	for _, m := range ms {
		sub := r.mapToEntity(m)
		if m.Plan.Id != uuid.Nil {
			plan := (&continuityPlanRepositoryImpl{}).mapToEntity(&m.Plan)
			sub.Plan = plan
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

func (r *clientSubscriptionRepositoryImpl) Update(ctx context.Context, sub *entity.ClientSubscription) error {
	return r.db.WithContext(ctx).Model(&model.ClientSubscription{}).
		Where("id = ?", sub.Id).
		Updates(map[string]interface{}{
			"status":               string(sub.Status),
			"current_period_start": sub.CurrentPeriodStart,
			"current_period_end":   sub.CurrentPeriodEnd,
			"cycles_completed":     sub.CyclesCompleted,
			"credit_remaining":     sub.CreditRemaining,
			"cancel_at_period_end": sub.CancelAtPeriodEnd,
			"canceled_at":          sub.CanceledAt,
		}).Error
}

func (r *clientSubscriptionRepositoryImpl) mapToEntity(m *model.ClientSubscription) *entity.ClientSubscription {
	return &entity.ClientSubscription{
		Id:                  m.Id,
		ContinuityPlanId:    m.ContinuityPlanId,
		ClientEmail:         m.ClientEmail,
		ClientName:          m.ClientName,
		OrderId:             m.OrderId,
		GuaranteeInstanceId: m.GuaranteeInstanceId,
		GatewayCustomerRef:  m.GatewayCustomerRef,
		GatewaySubscription: m.GatewaySubscription,
		Status:              entity.ClientSubscriptionStatus(m.Status),
		CurrentPeriodStart:  m.CurrentPeriodStart,
		CurrentPeriodEnd:    m.CurrentPeriodEnd,
		CyclesCompleted:     m.CyclesCompleted,
		CreditRemaining:     m.CreditRemaining,
		CreditTotal:         m.CreditTotal,
		CancelAtPeriodEnd:   m.CancelAtPeriodEnd,
		CanceledAt:          m.CanceledAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
