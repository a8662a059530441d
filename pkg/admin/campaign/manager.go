package campaign

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/pkg/logger"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"
	adminEvents "offerstack-be/pkg/admin/events"
	"offerstack-be/pkg/admin/guarantee"
	"offerstack-be/pkg/payment"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// ResolveResult carries the artifacts of an enrollment payout.
type ResolveResult struct {
	EnrollmentId uuid.UUID
	Status       entity.EnrollmentStatus
	PayoutAmount *float64
	DiscountCode string
	Message      string
}

// Manager runs attraction campaigns: authoring, enrollment with personalized
// criteria, progress verification and payout resolution.
type Manager struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
	gateway   payment.Gateway
}

func NewManager(logger logger.ILogger, publisher adminEvents.Publisher, gateway payment.Gateway) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
		gateway:   gateway,
	}
}

// Slugify derives a URL slug from a campaign name.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CreateCampaign stores a new campaign in draft status.
func (m *Manager) CreateCampaign(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateCampaignRequest, createdBy *uuid.UUID) (*entity.AttractionCampaign, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("campaign name must not be empty")
	}

	campaignType := entity.CampaignType(req.CampaignType)
	if campaignType == "" {
		campaignType = entity.CampaignTypeWinMoneyBack
	}
	payoutType := entity.PayoutType(req.PayoutType)
	if payoutType == "" {
		payoutType = entity.PayoutTypeRefund
	}
	amountType := entity.PayoutAmountType(req.PayoutAmountType)
	if amountType == "" {
		amountType = entity.PayoutAmountFull
	}
	multiplier := 1.0
	if req.RolloverBonusMultiplier != nil && *req.RolloverBonusMultiplier > 1 {
		multiplier = *req.RolloverBonusMultiplier
	}

	campaign := &entity.AttractionCampaign{
		Id:                      uuid.New(),
		Name:                    name,
		Slug:                    Slugify(name),
		Description:             req.Description,
		CampaignType:            campaignType,
		Status:                  entity.CampaignStatusDraft,
		StartsAt:                req.StartsAt,
		EndsAt:                  req.EndsAt,
		EnrollmentDeadline:      req.EnrollmentDeadline,
		CompletionWindowDays:    req.CompletionWindowDays,
		MinPurchaseAmount:       req.MinPurchaseAmount,
		PayoutType:              payoutType,
		PayoutAmountType:        amountType,
		PayoutAmountValue:       req.PayoutAmountValue,
		RolloverBonusMultiplier: multiplier,
		PromoCopy:               req.PromoCopy,
		CreatedBy:               createdBy,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CampaignRepository().Create(ctx, campaign); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Created Campaign", map[string]interface{}{
		"campaignId": campaign.Id.String(),
		"slug":       campaign.Slug,
		"type":       string(campaign.CampaignType),
	})

	return campaign, nil
}

// UpdateCampaign applies partial updates; only non-nil fields change.
func (m *Manager) UpdateCampaign(ctx context.Context, uow unitofwork.UnitOfWork, campaignId uuid.UUID, req dto.UpdateCampaignRequest) (*entity.AttractionCampaign, error) {
	campaign, err := uow.CampaignRepository().FindOne(ctx, specification.ByID{ID: campaignId})
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	if req.Name != nil {
		campaign.Name = strings.TrimSpace(*req.Name)
		campaign.Slug = Slugify(campaign.Name)
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.Status != nil {
		campaign.Status = entity.CampaignStatus(*req.Status)
	}
	if req.StartsAt != nil {
		campaign.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		campaign.EndsAt = req.EndsAt
	}
	if req.EnrollmentDeadline != nil {
		campaign.EnrollmentDeadline = req.EnrollmentDeadline
	}
	if req.CompletionWindowDays != nil {
		campaign.CompletionWindowDays = *req.CompletionWindowDays
	}
	if req.MinPurchaseAmount != nil {
		campaign.MinPurchaseAmount = *req.MinPurchaseAmount
	}
	if req.PayoutType != nil {
		campaign.PayoutType = entity.PayoutType(*req.PayoutType)
	}
	if req.PayoutAmountType != nil {
		campaign.PayoutAmountType = entity.PayoutAmountType(*req.PayoutAmountType)
	}
	if req.PayoutAmountValue != nil {
		campaign.PayoutAmountValue = req.PayoutAmountValue
	}
	if req.RolloverBonusMultiplier != nil {
		campaign.RolloverBonusMultiplier = *req.RolloverBonusMultiplier
		if campaign.RolloverBonusMultiplier < 1 {
			campaign.RolloverBonusMultiplier = 1
		}
	}
	if req.PromoCopy != nil {
		campaign.PromoCopy = *req.PromoCopy
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CampaignRepository().Update(ctx, campaign); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return campaign, nil
}

// GetCampaigns lists campaigns newest-first with an optional status filter.
func (m *Manager) GetCampaigns(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.AttractionCampaign, error) {
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
	specs = append(specs,
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
		specification.OrderBy{Field: "created_at", Desc: true},
	)

	return uow.CampaignRepository().FindAll(ctx, specs...)
}

// GetCampaign loads one campaign with its criteria templates, plus its
// enrollment count.
func (m *Manager) GetCampaign(ctx context.Context, uow unitofwork.UnitOfWork, campaignId uuid.UUID) (*entity.AttractionCampaign, int64, error) {
	campaign, err := uow.CampaignRepository().FindOneWithTemplates(ctx, specification.ByID{ID: campaignId})
	if err != nil {
		return nil, 0, err
	}
	if campaign == nil {
		return nil, 0, ErrCampaignNotFound
	}
	count, err := uow.CampaignRepository().CountEnrollments(ctx, campaignId)
	if err != nil {
		return nil, 0, err
	}
	return campaign, count, nil
}

// AddCriteriaTemplate attaches a personalized criterion blueprint to a campaign.
func (m *Manager) AddCriteriaTemplate(ctx context.Context, uow unitofwork.UnitOfWork, campaignId uuid.UUID, req dto.CreateCriteriaTemplateRequest) (*entity.CampaignCriteriaTemplate, error) {
	campaign, err := uow.CampaignRepository().FindOne(ctx, specification.ByID{ID: campaignId})
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	criteriaType := entity.CriteriaType(req.CriteriaType)
	if criteriaType == "" {
		criteriaType = entity.CriteriaTypeAction
	}
	trackingSource := entity.TrackingSource(req.TrackingSource)
	if trackingSource == "" {
		trackingSource = entity.TrackingManual
	}
	required := true
	if req.Required != nil {
		required = *req.Required
	}

	var config map[string]interface{}
	if len(req.TrackingConfig) > 0 {
		config = make(map[string]interface{}, len(req.TrackingConfig))
		for k, v := range req.TrackingConfig {
			config[k] = v
		}
	}

	tpl := &entity.CampaignCriteriaTemplate{
		Id:                  uuid.New(),
		CampaignId:          campaignId,
		LabelTemplate:       strings.TrimSpace(req.LabelTemplate),
		DescriptionTemplate: req.DescriptionTemplate,
		CriteriaType:        criteriaType,
		TrackingSource:      trackingSource,
		TrackingConfig:      config,
		ThresholdSource:     req.ThresholdSource,
		ThresholdDefault:    req.ThresholdDefault,
		Required:            required,
		DisplayOrder:        req.DisplayOrder,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CriteriaTemplateRepository().Create(ctx, tpl); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return tpl, nil
}

// Enroll puts a client into a campaign: validates eligibility, materializes
// the criteria templates against the client's personalization context and
// seeds pending progress rows.
func (m *Manager) Enroll(ctx context.Context, uow unitofwork.UnitOfWork, campaignId uuid.UUID, req dto.EnrollClientRequest) (*entity.CampaignEnrollment, error) {
	campaign, err := uow.CampaignRepository().FindOneWithTemplates(ctx, specification.ByID{ID: campaignId})
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.Status != entity.CampaignStatusActive {
		return nil, ErrCampaignNotActive
	}

	now := time.Now()
	if campaign.EnrollmentDeadline != nil && now.After(*campaign.EnrollmentDeadline) {
		return nil, ErrEnrollmentDeadlinePassed
	}
	if campaign.MinPurchaseAmount > 0 {
		if req.PurchaseAmount == nil || *req.PurchaseAmount < campaign.MinPurchaseAmount {
			return nil, ErrBelowMinPurchase
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.ClientEmail))
	existing, err := uow.EnrollmentRepository().FindOne(ctx,
		specification.Filter("campaign_id", campaignId),
		specification.ByClientEmail{Email: email},
		specification.ByStatus{Status: string(entity.EnrollmentStatusActive)},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEnrollment
	}

	source := entity.EnrollmentSource(req.EnrollmentSource)
	if source == "" {
		source = entity.EnrollmentSourceAdminManual
	}

	enrollment := &entity.CampaignEnrollment{
		Id:                     uuid.New(),
		CampaignId:             campaign.Id,
		ClientEmail:            email,
		ClientName:             req.ClientName,
		OrderId:                req.OrderId,
		BundleId:               req.BundleId,
		PurchaseAmount:         req.PurchaseAmount,
		EnrollmentSource:       source,
		Status:                 entity.EnrollmentStatusActive,
		EnrolledAt:             now,
		DeadlineAt:             now.AddDate(0, 0, campaign.CompletionWindowDays),
		PersonalizationContext: req.PersonalizationContext,
	}

	templates := make([]*entity.CampaignCriteriaTemplate, 0, len(campaign.CriteriaTemplates))
	for i := range campaign.CriteriaTemplates {
		templates = append(templates, &campaign.CriteriaTemplates[i])
	}
	criteria := Materialize(templates, enrollment.Id, req.PersonalizationContext)

	progressRows := make([]*entity.CampaignProgress, 0, len(criteria))
	for _, c := range criteria {
		progressRows = append(progressRows, &entity.CampaignProgress{
			Id:           uuid.New(),
			EnrollmentId: enrollment.Id,
			CriterionId:  c.Id,
			Status:       entity.ProgressStatusPending,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.EnrollmentRepository().Create(ctx, enrollment); err != nil {
		return nil, err
	}
	if len(criteria) > 0 {
		if err := uow.EnrollmentCriterionRepository().CreateBatch(ctx, criteria); err != nil {
			return nil, err
		}
		if err := uow.CampaignProgressRepository().CreateBatch(ctx, progressRows); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Enrolled Client In Campaign", map[string]interface{}{
		"enrollmentId": enrollment.Id.String(),
		"campaignId":   campaign.Id.String(),
		"clientEmail":  email,
		"criteria":     len(criteria),
	})

	m.publisher.PublishEnrollmentCreated(ctx, enrollment.Id, campaign.Id, email, string(source))

	for _, c := range criteria {
		enrollment.Criteria = append(enrollment.Criteria, *c)
	}
	for _, p := range progressRows {
		enrollment.Progress = append(enrollment.Progress, *p)
	}
	enrollment.Campaign = campaign
	return enrollment, nil
}

// GetEnrollment loads an enrollment with campaign, criteria and progress.
func (m *Manager) GetEnrollment(ctx context.Context, uow unitofwork.UnitOfWork, enrollmentId uuid.UUID) (*entity.CampaignEnrollment, error) {
	enrollment, err := uow.EnrollmentRepository().FindOneWithDetails(ctx, specification.ByID{ID: enrollmentId})
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrEnrollmentNotFound
	}
	return enrollment, nil
}

// GetEnrollments lists enrollments for a campaign, optionally by status.
func (m *Manager) GetEnrollments(ctx context.Context, uow unitofwork.UnitOfWork, campaignId uuid.UUID, page, limit int, status string) ([]*entity.CampaignEnrollment, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	specs := []specification.Specification{
		specification.Filter("campaign_id", campaignId),
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}
	specs = append(specs,
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
		specification.OrderBy{Field: "enrolled_at", Desc: true},
	)

	return uow.EnrollmentRepository().FindAll(ctx, specs...)
}

// VerifyProgress moves one criterion's progress to met, not_met or waived.
// When the last required criterion is satisfied the enrollment advances to
// criteria_met.
func (m *Manager) VerifyProgress(ctx context.Context, uow unitofwork.UnitOfWork, enrollmentId, criterionId uuid.UUID, req dto.VerifyProgressRequest, adminId *uuid.UUID) (int, entity.EnrollmentStatus, error) {
	enrollment, err := uow.EnrollmentRepository().FindOne(ctx, specification.ByID{ID: enrollmentId})
	if err != nil {
		return 0, "", err
	}
	if enrollment == nil {
		return 0, "", ErrEnrollmentNotFound
	}
	if enrollment.Status != entity.EnrollmentStatusActive {
		return 0, "", ErrEnrollmentNotActive
	}

	row, err := uow.CampaignProgressRepository().FindOne(ctx,
		specification.Filter("enrollment_id", enrollmentId),
		specification.Filter("criterion_id", criterionId),
	)
	if err != nil {
		return 0, "", err
	}
	if row == nil {
		return 0, "", ErrProgressNotFound
	}
	if row.Status.IsTerminal() {
		return 0, "", ErrProgressAlreadyResolved
	}

	if err := uow.Begin(ctx); err != nil {
		return 0, "", err
	}
	defer uow.Rollback()

	now := time.Now()
	row.Status = entity.ProgressStatus(req.Status)
	row.AdminNotes = req.AdminNotes
	row.AdminVerifiedBy = adminId
	row.AdminVerifiedAt = &now
	if req.CurrentValue != "" {
		row.CurrentValue = req.CurrentValue
	}

	if err := uow.CampaignProgressRepository().Update(ctx, row); err != nil {
		return 0, "", err
	}

	allProgress, err := uow.CampaignProgressRepository().FindAllByEnrollment(ctx, enrollmentId)
	if err != nil {
		return 0, "", err
	}
	allCriteria, err := uow.EnrollmentCriterionRepository().FindAllByEnrollment(ctx, enrollmentId)
	if err != nil {
		return 0, "", err
	}

	progress := make([]entity.CampaignProgress, 0, len(allProgress))
	for _, p := range allProgress {
		progress = append(progress, *p)
	}
	criteria := make([]entity.EnrollmentCriterion, 0, len(allCriteria))
	for _, c := range allCriteria {
		criteria = append(criteria, *c)
	}

	overall := OverallProgress(progress)
	if AllRequiredSatisfied(criteria, progress) {
		enrollment.Status = entity.EnrollmentStatusCriteriaMet
		if err := uow.EnrollmentRepository().Update(ctx, enrollment); err != nil {
			return 0, "", err
		}
	}

	if err := uow.Commit(); err != nil {
		return 0, "", err
	}

	m.logger.Info("ADMIN", "Verified Campaign Progress", map[string]interface{}{
		"enrollmentId": enrollmentId.String(),
		"criterionId":  criterionId.String(),
		"status":       req.Status,
		"overall":      overall,
	})

	return overall, enrollment.Status, nil
}

// TrackProgress records an automated signal against a criterion without
// resolving it; admins still verify. Pending rows move to in_progress.
func (m *Manager) TrackProgress(ctx context.Context, uow unitofwork.UnitOfWork, enrollmentId, criterionId uuid.UUID, currentValue, sourceRef string) error {
	row, err := uow.CampaignProgressRepository().FindOne(ctx,
		specification.Filter("enrollment_id", enrollmentId),
		specification.Filter("criterion_id", criterionId),
	)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrProgressNotFound
	}
	if row.Status.IsTerminal() {
		return ErrProgressAlreadyResolved
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	row.CurrentValue = currentValue
	row.AutoTracked = true
	row.AutoSourceRef = sourceRef
	if row.Status == entity.ProgressStatusPending {
		row.Status = entity.ProgressStatusInProgress
	}

	if err := uow.CampaignProgressRepository().Update(ctx, row); err != nil {
		return err
	}
	return uow.Commit()
}

// Resolve pays out a criteria_met enrollment per the campaign's payout
// configuration, or closes out an enrollment whose deadline lapsed.
func (m *Manager) Resolve(ctx context.Context, uow unitofwork.UnitOfWork, enrollmentId uuid.UUID, req dto.ResolveEnrollmentRequest) (*ResolveResult, error) {
	enrollment, err := uow.EnrollmentRepository().FindOneWithDetails(ctx, specification.ByID{ID: enrollmentId})
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrEnrollmentNotFound
	}
	if enrollment.Status.IsResolved() {
		return nil, ErrEnrollmentAlreadyDone
	}

	campaign := enrollment.Campaign
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	now := time.Now()

	// Deadline lapsed without the criteria being met.
	if enrollment.Status == entity.EnrollmentStatusActive {
		if now.After(enrollment.DeadlineAt) {
			return m.close(ctx, uow, enrollment, entity.EnrollmentStatusExpired, nil, nil, "completion window expired", req.ResolutionNotes)
		}
		return nil, ErrCriteriaNotMet
	}

	purchase := 0.0
	if enrollment.PurchaseAmount != nil {
		purchase = *enrollment.PurchaseAmount
	}
	payout := guarantee.PayoutAmount(campaign.PayoutAmountType, campaign.PayoutAmountValue, purchase)

	switch campaign.PayoutType {
	case entity.PayoutTypeRefund:
		if enrollment.OrderId == nil {
			return nil, ErrNoPaymentReference
		}
		order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: *enrollment.OrderId})
		if err != nil {
			return nil, err
		}
		if order == nil || order.GatewayPaymentId == "" {
			return nil, ErrNoPaymentReference
		}
		if _, err := m.gateway.Refund(ctx, order.GatewayPaymentId, payout, "campaign payout"); err != nil {
			return nil, err
		}
		return m.close(ctx, uow, enrollment, entity.EnrollmentStatusRefundIssued, &payout, nil, "refund issued", req.ResolutionNotes)

	case entity.PayoutTypeCredit:
		code := mintDiscountCode(payout)
		return m.close(ctx, uow, enrollment, entity.EnrollmentStatusCreditIssued, &payout, code, "store credit issued", req.ResolutionNotes)

	default:
		// Rollover payouts fold the bonus multiplier into a credit code.
		credit := guarantee.RolloverCredit(payout, campaign.RolloverBonusMultiplier)
		code := mintDiscountCode(credit)
		return m.close(ctx, uow, enrollment, entity.EnrollmentStatusRolloverApplied, &credit, code, "rollover credit issued", req.ResolutionNotes)
	}
}

// Withdraw pulls a client out of a campaign before resolution.
func (m *Manager) Withdraw(ctx context.Context, uow unitofwork.UnitOfWork, enrollmentId uuid.UUID, notes string) error {
	enrollment, err := uow.EnrollmentRepository().FindOne(ctx, specification.ByID{ID: enrollmentId})
	if err != nil {
		return err
	}
	if enrollment == nil {
		return ErrEnrollmentNotFound
	}
	if enrollment.Status.IsResolved() {
		return ErrEnrollmentAlreadyDone
	}

	_, err = m.close(ctx, uow, enrollment, entity.EnrollmentStatusWithdrawn, nil, nil, "enrollment withdrawn", notes)
	return err
}

// close persists the terminal status (and any minted discount code) in one
// transaction, then emits the resolved event.
func (m *Manager) close(ctx context.Context, uow unitofwork.UnitOfWork, enrollment *entity.CampaignEnrollment, status entity.EnrollmentStatus, payout *float64, code *entity.DiscountCode, message, notes string) (*ResolveResult, error) {
	now := time.Now()
	enrollment.Status = status
	enrollment.ResolvedAt = &now
	enrollment.ResolutionNotes = notes

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()
	if code != nil {
		if err := uow.DiscountCodeRepository().Create(ctx, code); err != nil {
			return nil, err
		}
	}
	if err := uow.EnrollmentRepository().Update(ctx, enrollment); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Resolved Campaign Enrollment", map[string]interface{}{
		"enrollmentId": enrollment.Id.String(),
		"status":       string(status),
	})
	m.publisher.PublishEnrollmentResolved(ctx, enrollment.Id, enrollment.CampaignId, enrollment.ClientEmail, string(status))

	result := &ResolveResult{
		EnrollmentId: enrollment.Id,
		Status:       status,
		PayoutAmount: payout,
		Message:      message,
	}
	if code != nil {
		result.DiscountCode = code.Code
	}
	return result, nil
}

func mintDiscountCode(amount float64) *entity.DiscountCode {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	expires := time.Now().AddDate(1, 0, 0)
	return &entity.DiscountCode{
		Id:            uuid.New(),
		Code:          "CAMP-" + raw[:8],
		DiscountType:  entity.DiscountTypeFixed,
		DiscountValue: amount,
		MaxUses:       1,
		ExpiresAt:     &expires,
		IsActive:      true,
	}
}
