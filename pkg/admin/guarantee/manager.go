package guarantee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/pkg/logger"
	"offerstack-be/internal/pkg/mailer"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"
	adminEvents "offerstack-be/pkg/admin/events"
	"offerstack-be/pkg/payment"

	"github.com/google/uuid"
)

// EvalResult carries the outcome of an evaluation pass over one instance.
type EvalResult struct {
	InstanceId        uuid.UUID
	Status            entity.GuaranteeInstanceStatus
	PendingConditions []string
	PayoutAmount      *float64
	Message           string
}

// PayoutResult contains the artifacts a payout choice produced.
type PayoutResult struct {
	InstanceId     uuid.UUID
	Status         entity.GuaranteeInstanceStatus
	PayoutAmount   float64
	DiscountCode   string
	SubscriptionId *uuid.UUID
	Message        string
}

// Manager handles the guarantee lifecycle: template authoring, instance
// activation, milestone verification and payout resolution.
type Manager struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
	gateway   payment.Gateway
	mailer    mailer.IEmailService
}

func NewManager(logger logger.ILogger, publisher adminEvents.Publisher, gateway payment.Gateway, mail mailer.IEmailService) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
		gateway:   gateway,
		mailer:    mail,
	}
}

// CreateTemplate validates and stores a new guarantee template.
func (m *Manager) CreateTemplate(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateGuaranteeTemplateRequest, createdBy *uuid.UUID) (*entity.GuaranteeTemplate, error) {
	if err := ValidateTemplateInput(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	conditions, err := BuildConditions(req.Conditions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	guaranteeType := entity.GuaranteeType(req.GuaranteeType)
	if guaranteeType == "" {
		guaranteeType = entity.GuaranteeTypeConditional
	}
	amountType := entity.PayoutAmountType(req.PayoutAmountType)
	if amountType == "" {
		amountType = entity.PayoutAmountFull
	}
	multiplier := 1.0
	if req.RolloverBonusMultiplier != nil {
		multiplier = *req.RolloverBonusMultiplier
	}

	template := &entity.GuaranteeTemplate{
		Id:                       uuid.New(),
		Name:                     strings.TrimSpace(req.Name),
		Description:              req.Description,
		GuaranteeType:            guaranteeType,
		DurationDays:             req.DurationDays,
		Conditions:               conditions,
		DefaultPayoutType:        entity.PayoutType(req.DefaultPayoutType),
		PayoutAmountType:         amountType,
		PayoutAmountValue:        req.PayoutAmountValue,
		RolloverUpsellServiceIds: req.RolloverUpsellServiceIds,
		RolloverContinuityPlanId: req.RolloverContinuityPlanId,
		RolloverBonusMultiplier:  multiplier,
		IsActive:                 true,
		CreatedBy:                createdBy,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.GuaranteeTemplateRepository().Create(ctx, template); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Created Guarantee Template", map[string]interface{}{
		"templateId": template.Id.String(),
		"name":       template.Name,
		"conditions": len(template.Conditions),
	})

	return template, nil
}

// GetTemplates returns templates newest-first with pagination.
func (m *Manager) GetTemplates(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, activeOnly bool) ([]*entity.GuaranteeTemplate, error) {
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

	return uow.GuaranteeTemplateRepository().FindAll(ctx, specs...)
}

// DeactivateTemplate retires a template; existing instances keep their
// snapshot and are unaffected.
func (m *Manager) DeactivateTemplate(ctx context.Context, uow unitofwork.UnitOfWork, templateId uuid.UUID) error {
	template, err := uow.GuaranteeTemplateRepository().FindOne(ctx, specification.ByID{ID: templateId})
	if err != nil {
		return err
	}
	if template == nil {
		return ErrTemplateNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	template.IsActive = false
	if err := uow.GuaranteeTemplateRepository().Update(ctx, template); err != nil {
		return err
	}

	return uow.Commit()
}

// CreateInstance activates a guarantee for a purchase: snapshots the
// template's conditions, seeds one pending milestone per condition and opens
// the duration window.
func (m *Manager) CreateInstance(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateGuaranteeInstanceRequest) (*entity.GuaranteeInstance, error) {
	template, err := uow.GuaranteeTemplateRepository().FindOne(ctx, specification.ByID{ID: req.GuaranteeTemplateId})
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	if !template.IsActive {
		return nil, ErrTemplateInactive
	}

	payoutType := template.DefaultPayoutType
	if req.PayoutType != "" {
		payoutType = entity.PayoutType(req.PayoutType)
	}

	now := time.Now()
	instance := &entity.GuaranteeInstance{
		Id:                  uuid.New(),
		GuaranteeTemplateId: template.Id,
		OrderId:             req.OrderId,
		ClientEmail:         strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		ClientName:          req.ClientName,
		PurchaseAmount:      req.PurchaseAmount,
		PayoutType:          payoutType,
		Status:              entity.InstanceStatusActive,
		ConditionsSnapshot:  template.Conditions,
		StartsAt:            now,
		ExpiresAt:           now.AddDate(0, 0, template.DurationDays),
	}

	milestones := make([]*entity.GuaranteeMilestone, 0, len(template.Conditions))
	for _, c := range template.Conditions {
		milestones = append(milestones, &entity.GuaranteeMilestone{
			Id:                  uuid.New(),
			GuaranteeInstanceId: instance.Id,
			ConditionId:         c.Id,
			ConditionLabel:      c.Label,
			Status:              entity.MilestoneStatusPending,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.GuaranteeInstanceRepository().Create(ctx, instance); err != nil {
		return nil, err
	}
	if len(milestones) > 0 {
		if err := uow.GuaranteeMilestoneRepository().CreateBatch(ctx, milestones); err != nil {
			return nil, err
		}
	}

	// Unconditional guarantees have nothing to verify; they are claimable
	// from day one.
	if template.GuaranteeType == entity.GuaranteeTypeUnconditional {
		instance.Status = entity.InstanceStatusConditionsMet
		if err := uow.GuaranteeInstanceRepository().Update(ctx, instance); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Activated Guarantee Instance", map[string]interface{}{
		"instanceId":  instance.Id.String(),
		"templateId":  template.Id.String(),
		"clientEmail": instance.ClientEmail,
		"expiresAt":   instance.ExpiresAt,
	})

	m.publisher.PublishGuaranteeActivated(ctx, instance.Id, template.Id, instance.ClientEmail, instance.PurchaseAmount)

	if m.mailer != nil {
		if err := m.mailer.SendGuaranteeActivated(instance.ClientEmail, instance.ClientName, template.Name, template.DurationDays); err != nil {
			m.logger.Warn("ADMIN", "Activation email failed", map[string]interface{}{
				"instanceId": instance.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	for _, ms := range milestones {
		instance.Milestones = append(instance.Milestones, *ms)
	}
	instance.Template = template
	return instance, nil
}

// GetInstance loads one instance with its template and milestones.
func (m *Manager) GetInstance(ctx context.Context, uow unitofwork.UnitOfWork, instanceId uuid.UUID) (*entity.GuaranteeInstance, error) {
	instance, err := uow.GuaranteeInstanceRepository().FindOneWithDetails(ctx, specification.ByID{ID: instanceId})
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, ErrInstanceNotFound
	}
	return instance, nil
}

// GetInstances lists instances, optionally filtered by status or client email.
func (m *Manager) GetInstances(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status, clientEmail string) ([]*entity.GuaranteeInstance, error) {
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

	return uow.GuaranteeInstanceRepository().FindAllWithDetails(ctx, specs...)
}

// VerifyMilestone moves one pending milestone to met, not_met or waived.
// Terminal milestones never transition again. When the last required
// condition is satisfied the instance advances to conditions_met.
func (m *Manager) VerifyMilestone(ctx context.Context, uow unitofwork.UnitOfWork, instanceId, milestoneId uuid.UUID, req dto.VerifyMilestoneRequest, adminId *uuid.UUID) (*entity.GuaranteeMilestone, entity.GuaranteeInstanceStatus, error) {
	instance, err := uow.GuaranteeInstanceRepository().FindOne(ctx, specification.ByID{ID: instanceId})
	if err != nil {
		return nil, "", err
	}
	if instance == nil {
		return nil, "", ErrInstanceNotFound
	}
	if instance.Status != entity.InstanceStatusActive {
		return nil, "", ErrInstanceNotActive
	}

	milestone, err := uow.GuaranteeMilestoneRepository().FindOne(ctx, specification.ByID{ID: milestoneId})
	if err != nil {
		return nil, "", err
	}
	if milestone == nil || milestone.GuaranteeInstanceId != instanceId {
		return nil, "", ErrMilestoneNotFound
	}
	if milestone.Status.IsTerminal() {
		return nil, "", ErrMilestoneAlreadyResolved
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, "", err
	}
	defer uow.Rollback()

	now := time.Now()
	milestone.Status = entity.MilestoneStatus(req.Status)
	milestone.AdminNotes = req.AdminNotes
	milestone.VerifiedBy = adminId
	milestone.VerifiedAt = &now

	if err := uow.GuaranteeMilestoneRepository().Update(ctx, milestone); err != nil {
		return nil, "", err
	}

	all, err := uow.GuaranteeMilestoneRepository().FindAllByInstance(ctx, instanceId)
	if err != nil {
		return nil, "", err
	}
	milestones := make([]entity.GuaranteeMilestone, 0, len(all))
	for _, ms := range all {
		milestones = append(milestones, *ms)
	}

	if AllRequiredSatisfied(instance.ConditionsSnapshot, milestones) {
		instance.Status = entity.InstanceStatusConditionsMet
		if err := uow.GuaranteeInstanceRepository().Update(ctx, instance); err != nil {
			return nil, "", err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, "", err
	}

	m.logger.Info("ADMIN", "Verified Guarantee Milestone", map[string]interface{}{
		"instanceId":  instanceId.String(),
		"milestoneId": milestoneId.String(),
		"status":      req.Status,
	})

	return milestone, instance.Status, nil
}

// SubmitEvidence records client-supplied proof on a self-report condition.
// Evidence never changes the milestone status; an admin still verifies it.
func (m *Manager) SubmitEvidence(ctx context.Context, uow unitofwork.UnitOfWork, instanceId uuid.UUID, req dto.SubmitEvidenceRequest) (*entity.GuaranteeMilestone, error) {
	instance, err := uow.GuaranteeInstanceRepository().FindOne(ctx, specification.ByID{ID: instanceId})
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, ErrInstanceNotFound
	}
	if !strings.EqualFold(instance.ClientEmail, strings.TrimSpace(req.ClientEmail)) {
		return nil, ErrEmailMismatch
	}
	if instance.Status != entity.InstanceStatusActive {
		return nil, ErrInstanceNotActive
	}

	var condition *entity.GuaranteeCondition
	for i := range instance.ConditionsSnapshot {
		if instance.ConditionsSnapshot[i].Id == req.ConditionId {
			condition = &instance.ConditionsSnapshot[i]
			break
		}
	}
	if condition == nil {
		return nil, ErrMilestoneNotFound
	}
	if condition.VerificationMethod != entity.VerificationSelfReport {
		return nil, ErrSelfReportOnly
	}

	all, err := uow.GuaranteeMilestoneRepository().FindAllByInstance(ctx, instanceId)
	if err != nil {
		return nil, err
	}
	var milestone *entity.GuaranteeMilestone
	for _, ms := range all {
		if ms.ConditionId == req.ConditionId {
			milestone = ms
			break
		}
	}
	if milestone == nil {
		return nil, ErrMilestoneNotFound
	}
	if milestone.Status.IsTerminal() {
		return nil, ErrMilestoneAlreadyResolved
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	milestone.ClientEvidence = req.Evidence
	milestone.ClientSubmittedAt = &now

	if err := uow.GuaranteeMilestoneRepository().Update(ctx, milestone); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return milestone, nil
}

// Evaluate reconciles an instance against the clock and its milestones.
// Expired windows close the instance; satisfied refund/credit payouts execute
// immediately; rollover payouts park at conditions_met until the client
// chooses.
func (m *Manager) Evaluate(ctx context.Context, uow unitofwork.UnitOfWork, instanceId uuid.UUID) (*EvalResult, error) {
	instance, err := uow.GuaranteeInstanceRepository().FindOneWithDetails(ctx, specification.ByID{ID: instanceId})
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, ErrInstanceNotFound
	}

	if instance.Status.IsResolved() {
		return &EvalResult{
			InstanceId: instance.Id,
			Status:     instance.Status,
			Message:    "guarantee already resolved",
		}, nil
	}

	// Window closed without the conditions being met.
	if instance.Status == entity.InstanceStatusActive && time.Now().After(instance.ExpiresAt) {
		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		defer uow.Rollback()

		now := time.Now()
		instance.Status = entity.InstanceStatusExpired
		instance.ResolvedAt = &now
		instance.ResolutionNotes = "guarantee window expired with conditions unmet"
		if err := uow.GuaranteeInstanceRepository().Update(ctx, instance); err != nil {
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}

		m.publisher.PublishGuaranteeResolved(ctx, instance.Id, instance.ClientEmail, string(instance.Status), 0)

		return &EvalResult{
			InstanceId: instance.Id,
			Status:     instance.Status,
			Message:    "guarantee window expired",
		}, nil
	}

	if instance.Status == entity.InstanceStatusActive {
		pending := PendingConditionLabels(instance.ConditionsSnapshot, instance.Milestones)
		return &EvalResult{
			InstanceId:        instance.Id,
			Status:            instance.Status,
			PendingConditions: pending,
			Message:           fmt.Sprintf("%d condition(s) still pending", len(pending)),
		}, nil
	}

	// conditions_met from here.
	payout := m.payoutFor(instance)

	switch instance.PayoutType {
	case entity.PayoutTypeRefund:
		result, err := m.executeRefund(ctx, uow, instance, payout)
		if err != nil {
			return nil, err
		}
		return &EvalResult{InstanceId: instance.Id, Status: result.Status, PayoutAmount: &payout, Message: result.Message}, nil
	case entity.PayoutTypeCredit:
		result, err := m.executeCredit(ctx, uow, instance, payout)
		if err != nil {
			return nil, err
		}
		return &EvalResult{InstanceId: instance.Id, Status: result.Status, PayoutAmount: &payout, Message: result.Message}, nil
	default:
		// Rollover payouts wait for the client's ChoosePayout call.
		return &EvalResult{
			InstanceId:   instance.Id,
			Status:       instance.Status,
			PayoutAmount: &payout,
			Message:      "conditions met; awaiting client payout choice",
		}, nil
	}
}

// ChoosePayout lets the client pick how a conditions_met guarantee pays out.
func (m *Manager) ChoosePayout(ctx context.Context, uow unitofwork.UnitOfWork, instanceId uuid.UUID, req dto.ChoosePayoutRequest) (*PayoutResult, error) {
	instance, err := uow.GuaranteeInstanceRepository().FindOneWithDetails(ctx, specification.ByID{ID: instanceId})
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, ErrInstanceNotFound
	}
	if !strings.EqualFold(instance.ClientEmail, strings.TrimSpace(req.ClientEmail)) {
		return nil, ErrEmailMismatch
	}
	if instance.Status.IsResolved() {
		return nil, ErrInstanceAlreadyResolved
	}
	if instance.Status != entity.InstanceStatusConditionsMet {
		return nil, ErrConditionsNotMet
	}

	instance.PayoutType = entity.PayoutType(req.PayoutType)
	payout := m.payoutFor(instance)

	switch instance.PayoutType {
	case entity.PayoutTypeRefund:
		return m.executeRefund(ctx, uow, instance, payout)
	case entity.PayoutTypeCredit:
		return m.executeCredit(ctx, uow, instance, payout)
	case entity.PayoutTypeRolloverUpsell:
		return m.executeRolloverUpsell(ctx, uow, instance, payout)
	case entity.PayoutTypeRolloverContinuity:
		return m.executeRolloverContinuity(ctx, uow, instance, payout, req.ContinuityPlanId)
	default:
		return nil, fmt.Errorf("unsupported payout type %q", req.PayoutType)
	}
}

func (m *Manager) payoutFor(instance *entity.GuaranteeInstance) float64 {
	amountType := entity.PayoutAmountFull
	var value *float64
	if instance.Template != nil {
		amountType = instance.Template.PayoutAmountType
		value = instance.Template.PayoutAmountValue
	}
	return PayoutAmount(amountType, value, instance.PurchaseAmount)
}

func (m *Manager) executeRefund(ctx context.Context, uow unitofwork.UnitOfWork, instance *entity.GuaranteeInstance, payout float64) (*PayoutResult, error) {
	if instance.OrderId == nil {
		return nil, ErrNoPaymentReference
	}
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: *instance.OrderId})
	if err != nil {
		return nil, err
	}
	if order == nil || order.GatewayPaymentId == "" {
		return nil, ErrNoPaymentReference
	}

	refundRef, err := m.gateway.Refund(ctx, order.GatewayPaymentId, payout, "guarantee payout")
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	instance.Status = entity.InstanceStatusRefundIssued
	instance.ResolvedAt = &now
	instance.GatewayRefundId = &refundRef
	instance.ResolutionNotes = fmt.Sprintf("refund of %.2f issued via gateway", payout)
	if err := uow.GuaranteeInstanceRepository().Update(ctx, instance); err != nil {
		return nil, err
	}

	order.Status = entity.OrderStatusRefunded
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.finishResolution(ctx, instance, payout, "")

	return &PayoutResult{
		InstanceId:   instance.Id,
		Status:       instance.Status,
		PayoutAmount: payout,
		Message:      "refund issued",
	}, nil
}

func (m *Manager) executeCredit(ctx context.Context, uow unitofwork.UnitOfWork, instance *entity.GuaranteeInstance, payout float64) (*PayoutResult, error) {
	code := m.mintDiscountCode(payout)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DiscountCodeRepository().Create(ctx, code); err != nil {
		return nil, err
	}

	now := time.Now()
	instance.Status = entity.InstanceStatusCreditIssued
	instance.ResolvedAt = &now
	instance.DiscountCodeId = &code.Id
	instance.ResolutionNotes = fmt.Sprintf("store credit %s issued for %.2f", code.Code, payout)
	if err := uow.GuaranteeInstanceRepository().Update(ctx, instance); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.finishResolution(ctx, instance, payout, code.Code)

	return &PayoutResult{
		InstanceId:   instance.Id,
		Status:       instance.Status,
		PayoutAmount: payout,
		DiscountCode: code.Code,
		Message:      "store credit issued",
	}, nil
}

// executeRolloverUpsell mints a bonus-multiplied credit code the client spends
// on one of the template's eligible services.
func (m *Manager) executeRolloverUpsell(ctx context.Context, uow unitofwork.UnitOfWork, instance *entity.GuaranteeInstance, payout float64) (*PayoutResult, error) {
	if instance.Template == nil || len(instance.Template.RolloverUpsellServiceIds) == 0 {
		return nil, ErrRolloverTargetMissing
	}

	credit := RolloverCredit(payout, instance.Template.RolloverBonusMultiplier)
	code := m.mintDiscountCode(credit)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DiscountCodeRepository().Create(ctx, code); err != nil {
		return nil, err
	}

	now := time.Now()
	instance.Status = entity.InstanceStatusRolloverUpsellApplied
	instance.ResolvedAt = &now
	instance.DiscountCodeId = &code.Id
	instance.RolloverCreditAmount = &credit
	instance.ResolutionNotes = fmt.Sprintf("rollover credit %s issued for %.2f (%.1fx bonus)", code.Code, credit, instance.Template.RolloverBonusMultiplier)
	if err := uow.GuaranteeInstanceRepository().Update(ctx, instance); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.finishResolution(ctx, instance, credit, code.Code)

	return &PayoutResult{
		InstanceId:   instance.Id,
		Status:       instance.Status,
		PayoutAmount: credit,
		DiscountCode: code.Code,
		Message:      "rollover credit issued toward an eligible service",
	}, nil
}

// executeRolloverContinuity opens a subscription on the target plan carrying
// the bonus-multiplied credit as prepaid balance.
func (m *Manager) executeRolloverContinuity(ctx context.Context, uow unitofwork.UnitOfWork, instance *entity.GuaranteeInstance, payout float64, planOverride *uuid.UUID) (*PayoutResult, error) {
	planId := planOverride
	if planId == nil && instance.Template != nil {
		planId = instance.Template.RolloverContinuityPlanId
	}
	if planId == nil {
		return nil, ErrRolloverTargetMissing
	}

	plan, err := uow.ContinuityPlanRepository().FindOne(ctx, specification.ByID{ID: *planId})
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, ErrRolloverTargetMissing
	}

	multiplier := 1.0
	if instance.Template != nil {
		multiplier = instance.Template.RolloverBonusMultiplier
	}
	credit := RolloverCredit(payout, multiplier)
	cycles := CreditCyclesCovered(credit, plan.AmountPerInterval)

	gatewayRef := ""
	if m.gateway != nil {
		gatewayRef, err = m.gateway.CreateSubscription(ctx, plan.Name, instance.ClientEmail, plan.AmountPerInterval, string(plan.BillingInterval), plan.BillingIntervalCount)
		if err != nil {
			// The subscription still opens on credit; the gateway link can be
			// repaired once the credit runs out.
			m.logger.Warn("ADMIN", "Gateway subscription deferred", map[string]interface{}{
				"instanceId": instance.Id.String(),
				"planId":     planId.String(),
				"error":      err.Error(),
			})
			gatewayRef = ""
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	periodEnd := addInterval(now, plan.BillingInterval, plan.BillingIntervalCount)
	sub := &entity.ClientSubscription{
		Id:                  uuid.New(),
		ContinuityPlanId:    plan.Id,
		ClientEmail:         instance.ClientEmail,
		ClientName:          instance.ClientName,
		OrderId:             instance.OrderId,
		GuaranteeInstanceId: &instance.Id,
		GatewaySubscription: gatewayRef,
		Status:              entity.ClientSubscriptionActive,
		CurrentPeriodStart:  &now,
		CurrentPeriodEnd:    &periodEnd,
		CreditRemaining:     credit,
		CreditTotal:         credit,
	}
	if err := uow.ClientSubscriptionRepository().Create(ctx, sub); err != nil {
		return nil, err
	}

	instance.Status = entity.InstanceStatusRolloverContinuityApplied
	instance.ResolvedAt = &now
	instance.SubscriptionId = &sub.Id
	instance.RolloverCreditAmount = &credit
	instance.ResolutionNotes = fmt.Sprintf("rolled %.2f credit into plan %q covering %d cycle(s)", credit, plan.Name, cycles)
	if err := uow.GuaranteeInstanceRepository().Update(ctx, instance); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.finishResolution(ctx, instance, credit, "")

	return &PayoutResult{
		InstanceId:     instance.Id,
		Status:         instance.Status,
		PayoutAmount:   credit,
		SubscriptionId: &sub.Id,
		Message:        fmt.Sprintf("credit covers %d billing cycle(s) on %s", cycles, plan.Name),
	}, nil
}

// finishResolution emits the resolved event and the payout email.
func (m *Manager) finishResolution(ctx context.Context, instance *entity.GuaranteeInstance, amount float64, discountCode string) {
	m.logger.Info("ADMIN", "Resolved Guarantee Instance", map[string]interface{}{
		"instanceId": instance.Id.String(),
		"status":     string(instance.Status),
		"amount":     amount,
	})

	m.publisher.PublishGuaranteeResolved(ctx, instance.Id, instance.ClientEmail, string(instance.Status), amount)

	if m.mailer != nil {
		if err := m.mailer.SendPayoutResolved(instance.ClientEmail, instance.ClientName, string(instance.PayoutType), amount, discountCode); err != nil {
			m.logger.Warn("ADMIN", "Payout email failed", map[string]interface{}{
				"instanceId": instance.Id.String(),
				"error":      err.Error(),
			})
		}
	}
}

func (m *Manager) mintDiscountCode(amount float64) *entity.DiscountCode {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	expires := time.Now().AddDate(1, 0, 0)
	return &entity.DiscountCode{
		Id:            uuid.New(),
		Code:          "GUAR-" + raw[:8],
		DiscountType:  entity.DiscountTypeFixed,
		DiscountValue: amount,
		MaxUses:       1,
		ExpiresAt:     &expires,
		IsActive:      true,
	}
}

func addInterval(from time.Time, interval entity.BillingInterval, count int) time.Time {
	if count < 1 {
		count = 1
	}
	switch interval {
	case entity.BillingIntervalWeek:
		return from.AddDate(0, 0, 7*count)
	case entity.BillingIntervalQuarter:
		return from.AddDate(0, 3*count, 0)
	case entity.BillingIntervalYear:
		return from.AddDate(count, 0, 0)
	default:
		return from.AddDate(0, count, 0)
	}
}
