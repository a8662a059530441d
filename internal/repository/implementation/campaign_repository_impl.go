package implementation

import (
	"context"
	"encoding/json"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/model"
	"offerstack-be/internal/repository/contract"
	"offerstack-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// --- Campaign Repository ---

type campaignRepositoryImpl struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) contract.CampaignRepository {
	return &campaignRepositoryImpl{db: db}
}

func (r *campaignRepositoryImpl) Create(ctx context.Context, campaign *entity.AttractionCampaign) error {
	m := &model.AttractionCampaign{
		Id:                      campaign.Id,
		Name:                    campaign.Name,
		Slug:                    campaign.Slug,
		Description:             campaign.Description,
		CampaignType:            string(campaign.CampaignType),
		Status:                  string(campaign.Status),
		StartsAt:                campaign.StartsAt,
		EndsAt:                  campaign.EndsAt,
		EnrollmentDeadline:      campaign.EnrollmentDeadline,
		CompletionWindowDays:    campaign.CompletionWindowDays,
		MinPurchaseAmount:       campaign.MinPurchaseAmount,
		PayoutType:              string(campaign.PayoutType),
		PayoutAmountType:        string(campaign.PayoutAmountType),
		PayoutAmountValue:       campaign.PayoutAmountValue,
		RolloverBonusMultiplier: campaign.RolloverBonusMultiplier,
		PromoCopy:               campaign.PromoCopy,
		CreatedBy:               campaign.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	campaign.Id = m.Id
	campaign.CreatedAt = m.CreatedAt
	return nil
}

func (r *campaignRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AttractionCampaign, error) {
	return r.findOne(r.db.WithContext(ctx), specs...)
}

func (r *campaignRepositoryImpl) FindOneWithTemplates(ctx context.Context, specs ...specification.Specification) (*entity.AttractionCampaign, error) {
	query := r.db.WithContext(ctx).
		Preload("CriteriaTemplates", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		})
	return r.findOne(query, specs...)
}

func (r *campaignRepositoryImpl) findOne(query *gorm.DB, specs ...specification.Specification) (*entity.AttractionCampaign, error) {
	var m model.AttractionCampaign

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&m)
}

func (r *campaignRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AttractionCampaign, error) {
	var ms []*model.AttractionCampaign
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var campaigns []*entity.AttractionCampaign
	for _, m := range ms {
		c, err := r.mapToEntity(m)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, nil
}

func (r *campaignRepositoryImpl) Update(ctx context.Context, campaign *entity.AttractionCampaign) error {
	return r.db.WithContext(ctx).Model(&model.AttractionCampaign{}).
		Where("id = ?", campaign.Id).
		Updates(map[string]interface{}{
			"name":                      campaign.Name,
			"description":               campaign.Description,
			"status":                    string(campaign.Status),
			"starts_at":                 campaign.StartsAt,
			"ends_at":                   campaign.EndsAt,
			"enrollment_deadline":       campaign.EnrollmentDeadline,
			"completion_window_days":    campaign.CompletionWindowDays,
			"min_purchase_amount":       campaign.MinPurchaseAmount,
			"payout_type":               string(campaign.PayoutType),
			"payout_amount_type":        string(campaign.PayoutAmountType),
			"payout_amount_value":       campaign.PayoutAmountValue,
			"rollover_bonus_multiplier": campaign.RolloverBonusMultiplier,
			"promo_copy":                campaign.PromoCopy,
		}).Error
}

func (r *campaignRepositoryImpl) CountEnrollments(ctx context.Context, campaignId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CampaignEnrollment{}).
		Where("campaign_id = ?", campaignId).
		Count(&count).Error
	return count, err
}

func (r *campaignRepositoryImpl) mapToEntity(m *model.AttractionCampaign) (*entity.AttractionCampaign, error) {
	c := &entity.AttractionCampaign{
		Id:                      m.Id,
		Name:                    m.Name,
		Slug:                    m.Slug,
		Description:             m.Description,
		CampaignType:            entity.CampaignType(m.CampaignType),
		Status:                  entity.CampaignStatus(m.Status),
		StartsAt:                m.StartsAt,
		EndsAt:                  m.EndsAt,
		EnrollmentDeadline:      m.EnrollmentDeadline,
		CompletionWindowDays:    m.CompletionWindowDays,
		MinPurchaseAmount:       m.MinPurchaseAmount,
		PayoutType:              entity.PayoutType(m.PayoutType),
		PayoutAmountType:        entity.PayoutAmountType(m.PayoutAmountType),
		PayoutAmountValue:       m.PayoutAmountValue,
		RolloverBonusMultiplier: m.RolloverBonusMultiplier,
		PromoCopy:               m.PromoCopy,
		CreatedBy:               m.CreatedBy,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
	for _, mt := range m.CriteriaTemplates {
		tpl, err := mapCriteriaTemplateToEntity(&mt)
		if err != nil {
			return nil, err
		}
		c.CriteriaTemplates = append(c.CriteriaTemplates, *tpl)
	}
	return c, nil
}

// --- Criteria Template Repository ---

type criteriaTemplateRepositoryImpl struct {
	db *gorm.DB
}

func NewCriteriaTemplateRepository(db *gorm.DB) contract.CriteriaTemplateRepository {
	return &criteriaTemplateRepositoryImpl{db: db}
}

func (r *criteriaTemplateRepositoryImpl) Create(ctx context.Context, tpl *entity.CampaignCriteriaTemplate) error {
	config, err := json.Marshal(tpl.TrackingConfig)
	if err != nil {
		return err
	}
	m := &model.CampaignCriteriaTemplate{
		Id:                  tpl.Id,
		CampaignId:          tpl.CampaignId,
		LabelTemplate:       tpl.LabelTemplate,
		DescriptionTemplate: tpl.DescriptionTemplate,
		CriteriaType:        string(tpl.CriteriaType),
		TrackingSource:      string(tpl.TrackingSource),
		TrackingConfig:      datatypes.JSON(config),
		ThresholdSource:     tpl.ThresholdSource,
		ThresholdDefault:    tpl.ThresholdDefault,
		Required:            tpl.Required,
		DisplayOrder:        tpl.DisplayOrder,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tpl.Id = m.Id
	return nil
}

func (r *criteriaTemplateRepositoryImpl) FindAllByCampaign(ctx context.Context, campaignId uuid.UUID) ([]*entity.CampaignCriteriaTemplate, error) {
	var ms []*model.CampaignCriteriaTemplate
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignId).
		Order("display_order ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var templates []*entity.CampaignCriteriaTemplate
	for _, m := range ms {
		tpl, err := mapCriteriaTemplateToEntity(m)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

func (r *criteriaTemplateRepositoryImpl) Update(ctx context.Context, tpl *entity.CampaignCriteriaTemplate) error {
	config, err := json.Marshal(tpl.TrackingConfig)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.CampaignCriteriaTemplate{}).
		Where("id = ?", tpl.Id).
		Updates(map[string]interface{}{
			"label_template":       tpl.LabelTemplate,
			"description_template": tpl.DescriptionTemplate,
			"criteria_type":        string(tpl.CriteriaType),
			"tracking_source":      string(tpl.TrackingSource),
			"tracking_config":      datatypes.JSON(config),
			"threshold_source":     tpl.ThresholdSource,
			"threshold_default":    tpl.ThresholdDefault,
			"required":             tpl.Required,
			"display_order":        tpl.DisplayOrder,
		}).Error
}

func (r *criteriaTemplateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CampaignCriteriaTemplate{}, id).Error
}

func mapCriteriaTemplateToEntity(m *model.CampaignCriteriaTemplate) (*entity.CampaignCriteriaTemplate, error) {
	var config map[string]interface{}
	if len(m.TrackingConfig) > 0 {
		if err := json.Unmarshal(m.TrackingConfig, &config); err != nil {
			return nil, err
		}
	}
	return &entity.CampaignCriteriaTemplate{
		Id:                  m.Id,
		CampaignId:          m.CampaignId,
		LabelTemplate:       m.LabelTemplate,
		DescriptionTemplate: m.DescriptionTemplate,
		CriteriaType:        entity.CriteriaType(m.CriteriaType),
		TrackingSource:      entity.TrackingSource(m.TrackingSource),
		TrackingConfig:      config,
		ThresholdSource:     m.ThresholdSource,
		ThresholdDefault:    m.ThresholdDefault,
		Required:            m.Required,
		DisplayOrder:        m.DisplayOrder,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}

// --- Enrollment Repository ---

type enrollmentRepositoryImpl struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) contract.EnrollmentRepository {
	return &enrollmentRepositoryImpl{db: db}
}

func (r *enrollmentRepositoryImpl) Create(ctx context.Context, enrollment *entity.CampaignEnrollment) error {
	pctx, err := json.Marshal(enrollment.PersonalizationContext)
	if err != nil {
		return err
	}
	m := &model.CampaignEnrollment{
		Id:                     enrollment.Id,
		CampaignId:             enrollment.CampaignId,
		ClientEmail:            enrollment.ClientEmail,
		ClientName:             enrollment.ClientName,
		OrderId:                enrollment.OrderId,
		BundleId:               enrollment.BundleId,
		PurchaseAmount:         enrollment.PurchaseAmount,
		EnrollmentSource:       string(enrollment.EnrollmentSource),
		Status:                 string(enrollment.Status),
		EnrolledAt:             enrollment.EnrolledAt,
		DeadlineAt:             enrollment.DeadlineAt,
		PersonalizationContext: datatypes.JSON(pctx),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	enrollment.Id = m.Id
	enrollment.CreatedAt = m.CreatedAt
	return nil
}

func (r *enrollmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CampaignEnrollment, error) {
	return r.findOne(r.db.WithContext(ctx), specs...)
}

func (r *enrollmentRepositoryImpl) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.CampaignEnrollment, error) {
	query := r.db.WithContext(ctx).
		Preload("Campaign").
		Preload("Criteria", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Progress")
	return r.findOne(query, specs...)
}

func (r *enrollmentRepositoryImpl) findOne(query *gorm.DB, specs ...specification.Specification) (*entity.CampaignEnrollment, error) {
	var m model.CampaignEnrollment

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&m)
}

func (r *enrollmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CampaignEnrollment, error) {
	var ms []*model.CampaignEnrollment
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var enrollments []*entity.CampaignEnrollment
	for _, m := range ms {
		e, err := r.mapToEntity(m)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, nil
}

func (r *enrollmentRepositoryImpl) Update(ctx context.Context, enrollment *entity.CampaignEnrollment) error {
	return r.db.WithContext(ctx).Model(&model.CampaignEnrollment{}).
		Where("id = ?", enrollment.Id).
		Updates(map[string]interface{}{
			"status":           string(enrollment.Status),
			"resolved_at":      enrollment.ResolvedAt,
			"resolution_notes": enrollment.ResolutionNotes,
		}).Error
}

func (r *enrollmentRepositoryImpl) mapToEntity(m *model.CampaignEnrollment) (*entity.CampaignEnrollment, error) {
	var pctx map[string]interface{}
	if len(m.PersonalizationContext) > 0 {
		if err := json.Unmarshal(m.PersonalizationContext, &pctx); err != nil {
			return nil, err
		}
	}

	e := &entity.CampaignEnrollment{
		Id:                     m.Id,
		CampaignId:             m.CampaignId,
		ClientEmail:            m.ClientEmail,
		ClientName:             m.ClientName,
		OrderId:                m.OrderId,
		BundleId:               m.BundleId,
		PurchaseAmount:         m.PurchaseAmount,
		EnrollmentSource:       entity.EnrollmentSource(m.EnrollmentSource),
		Status:                 entity.EnrollmentStatus(m.Status),
		EnrolledAt:             m.EnrolledAt,
		DeadlineAt:             m.DeadlineAt,
		ResolvedAt:             m.ResolvedAt,
		ResolutionNotes:        m.ResolutionNotes,
		PersonalizationContext: pctx,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}

	if m.Campaign.Id != uuid.Nil {
		e.Campaign = &entity.AttractionCampaign{
			Id:                      m.Campaign.Id,
			Name:                    m.Campaign.Name,
			Slug:                    m.Campaign.Slug,
			CampaignType:            entity.CampaignType(m.Campaign.CampaignType),
			Status:                  entity.CampaignStatus(m.Campaign.Status),
			PayoutType:              entity.PayoutType(m.Campaign.PayoutType),
			PayoutAmountType:        entity.PayoutAmountType(m.Campaign.PayoutAmountType),
			PayoutAmountValue:       m.Campaign.PayoutAmountValue,
			RolloverBonusMultiplier: m.Campaign.RolloverBonusMultiplier,
		}
	}
	for _, mc := range m.Criteria {
		c, err := mapEnrollmentCriterionToEntity(&mc)
		if err != nil {
			return nil, err
		}
		e.Criteria = append(e.Criteria, *c)
	}
	for _, mp := range m.Progress {
		e.Progress = append(e.Progress, *mapProgressToEntity(&mp))
	}

	return e, nil
}

// --- Enrollment Criterion Repository ---

type enrollmentCriterionRepositoryImpl struct {
	db *gorm.DB
}

func NewEnrollmentCriterionRepository(db *gorm.DB) contract.EnrollmentCriterionRepository {
	return &enrollmentCriterionRepositoryImpl{db: db}
}

func (r *enrollmentCriterionRepositoryImpl) CreateBatch(ctx context.Context, criteria []*entity.EnrollmentCriterion) error {
	if len(criteria) == 0 {
		return nil
	}
	ms := make([]*model.EnrollmentCriterion, 0, len(criteria))
	for _, c := range criteria {
		config, err := json.Marshal(c.TrackingConfig)
		if err != nil {
			return err
		}
		ms = append(ms, &model.EnrollmentCriterion{
			Id:                  c.Id,
			EnrollmentId:        c.EnrollmentId,
			TemplateCriterionId: c.TemplateCriterionId,
			Label:               c.Label,
			Description:         c.Description,
			CriteriaType:        string(c.CriteriaType),
			TrackingSource:      string(c.TrackingSource),
			TrackingConfig:      datatypes.JSON(config),
			TargetValue:         c.TargetValue,
			Required:            c.Required,
			DisplayOrder:        c.DisplayOrder,
		})
	}
	if err := r.db.WithContext(ctx).Create(&ms).Error; err != nil {
		return err
	}
	for i, m := range ms {
		criteria[i].Id = m.Id
	}
	return nil
}

func (r *enrollmentCriterionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EnrollmentCriterion, error) {
	var m model.EnrollmentCriterion
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

	return mapEnrollmentCriterionToEntity(&m)
}

func (r *enrollmentCriterionRepositoryImpl) FindAllByEnrollment(ctx context.Context, enrollmentId uuid.UUID) ([]*entity.EnrollmentCriterion, error) {
	var ms []*model.EnrollmentCriterion
	if err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentId).
		Order("display_order ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var criteria []*entity.EnrollmentCriterion
	for _, m := range ms {
		c, err := mapEnrollmentCriterionToEntity(m)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}
	return criteria, nil
}

func mapEnrollmentCriterionToEntity(m *model.EnrollmentCriterion) (*entity.EnrollmentCriterion, error) {
	var config map[string]interface{}
	if len(m.TrackingConfig) > 0 {
		if err := json.Unmarshal(m.TrackingConfig, &config); err != nil {
			return nil, err
		}
	}
	return &entity.EnrollmentCriterion{
		Id:                  m.Id,
		EnrollmentId:        m.EnrollmentId,
		TemplateCriterionId: m.TemplateCriterionId,
		Label:               m.Label,
		Description:         m.Description,
		CriteriaType:        entity.CriteriaType(m.CriteriaType),
		TrackingSource:      entity.TrackingSource(m.TrackingSource),
		TrackingConfig:      config,
		TargetValue:         m.TargetValue,
		Required:            m.Required,
		DisplayOrder:        m.DisplayOrder,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}

// --- Campaign Progress Repository ---

type campaignProgressRepositoryImpl struct {
	db *gorm.DB
}

func NewCampaignProgressRepository(db *gorm.DB) contract.CampaignProgressRepository {
	return &campaignProgressRepositoryImpl{db: db}
}

func (r *campaignProgressRepositoryImpl) CreateBatch(ctx context.Context, rows []*entity.CampaignProgress) error {
	if len(rows) == 0 {
		return nil
	}
	ms := make([]*model.CampaignProgress, 0, len(rows))
	for _, p := range rows {
		ms = append(ms, &model.CampaignProgress{
			Id:           p.Id,
			EnrollmentId: p.EnrollmentId,
			CriterionId:  p.CriterionId,
			Status:       string(p.Status),
			AutoTracked:  p.AutoTracked,
		})
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}

func (r *campaignProgressRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CampaignProgress, error) {
	var m model.CampaignProgress
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

	return mapProgressToEntity(&m), nil
}

func (r *campaignProgressRepositoryImpl) FindAllByEnrollment(ctx context.Context, enrollmentId uuid.UUID) ([]*entity.CampaignProgress, error) {
	var ms []*model.CampaignProgress
	if err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentId).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var rows []*entity.CampaignProgress
	for _, m := range ms {
		rows = append(rows, mapProgressToEntity(m))
	}
	return rows, nil
}

func (r *campaignProgressRepositoryImpl) Update(ctx context.Context, row *entity.CampaignProgress) error {
	return r.db.WithContext(ctx).Model(&model.CampaignProgress{}).
		Where("id = ?", row.Id).
		Updates(map[string]interface{}{
			"status":            string(row.Status),
			"current_value":     row.CurrentValue,
			"auto_source_ref":   row.AutoSourceRef,
			"client_evidence":   row.ClientEvidence,
			"client_submitted":  row.ClientSubmitted,
			"admin_verified_by": row.AdminVerifiedBy,
			"admin_verified_at": row.AdminVerifiedAt,
			"admin_notes":       row.AdminNotes,
		}).Error
}

func mapProgressToEntity(m *model.CampaignProgress) *entity.CampaignProgress {
	return &entity.CampaignProgress{
		Id:              m.Id,
		EnrollmentId:    m.EnrollmentId,
		CriterionId:     m.CriterionId,
		Status:          entity.ProgressStatus(m.Status),
		CurrentValue:    m.CurrentValue,
		AutoTracked:     m.AutoTracked,
		AutoSourceRef:   m.AutoSourceRef,
		ClientEvidence:  m.ClientEvidence,
		ClientSubmitted: m.ClientSubmitted,
		AdminVerifiedBy: m.AdminVerifiedBy,
		AdminVerifiedAt: m.AdminVerifiedAt,
		AdminNotes:      m.AdminNotes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
