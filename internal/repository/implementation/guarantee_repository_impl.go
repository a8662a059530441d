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

// --- Template Repository ---

type guaranteeTemplateRepositoryImpl struct {
	db *gorm.DB
}

func NewGuaranteeTemplateRepository(db *gorm.DB) contract.GuaranteeTemplateRepository {
	return &guaranteeTemplateRepositoryImpl{db: db}
}

func (r *guaranteeTemplateRepositoryImpl) Create(ctx context.Context, template *entity.GuaranteeTemplate) error {
	m, err := r.mapToModel(template)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	template.Id = m.Id
	template.CreatedAt = m.CreatedAt
	return nil
}

func (r *guaranteeTemplateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuaranteeTemplate, error) {
	var m model.GuaranteeTemplate
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

	return r.mapToEntity(&m)
}

func (r *guaranteeTemplateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GuaranteeTemplate, error) {
	var ms []*model.GuaranteeTemplate
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var templates []*entity.GuaranteeTemplate
	for _, m := range ms {
		t, err := r.mapToEntity(m)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return templates, nil
}

func (r *guaranteeTemplateRepositoryImpl) Update(ctx context.Context, template *entity.GuaranteeTemplate) error {
	conditions, err := json.Marshal(template.Conditions)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.GuaranteeTemplate{}).
		Where("id = ?", template.Id).
		Updates(map[string]interface{}{
			"name":                        template.Name,
			"description":                 template.Description,
			"duration_days":               template.DurationDays,
			"conditions":                  datatypes.JSON(conditions),
			"default_payout_type":         template.DefaultPayoutType,
			"payout_amount_type":          template.PayoutAmountType,
			"payout_amount_value":         template.PayoutAmountValue,
			"rollover_continuity_plan_id": template.RolloverContinuityPlanId,
			"rollover_bonus_multiplier":   template.RolloverBonusMultiplier,
			"is_active":                   template.IsActive,
		}).Error
}

func (r *guaranteeTemplateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GuaranteeTemplate{}, id).Error
}

func (r *guaranteeTemplateRepositoryImpl) mapToModel(t *entity.GuaranteeTemplate) (*model.GuaranteeTemplate, error) {
	conditions, err := json.Marshal(t.Conditions)
	if err != nil {
		return nil, err
	}
	return &model.GuaranteeTemplate{
		Id:                       t.Id,
		Name:                     t.Name,
		Description:              t.Description,
		GuaranteeType:            string(t.GuaranteeType),
		DurationDays:             t.DurationDays,
		Conditions:               datatypes.JSON(conditions),
		DefaultPayoutType:        string(t.DefaultPayoutType),
		PayoutAmountType:         string(t.PayoutAmountType),
		PayoutAmountValue:        t.PayoutAmountValue,
		RolloverUpsellServiceIds: datatypes.NewJSONSlice(t.RolloverUpsellServiceIds),
		RolloverContinuityPlanId: t.RolloverContinuityPlanId,
		RolloverBonusMultiplier:  t.RolloverBonusMultiplier,
		IsActive:                 t.IsActive,
		CreatedBy:                t.CreatedBy,
	}, nil
}

func (r *guaranteeTemplateRepositoryImpl) mapToEntity(m *model.GuaranteeTemplate) (*entity.GuaranteeTemplate, error) {
	var conditions []entity.GuaranteeCondition
	if len(m.Conditions) > 0 {
		if err := json.Unmarshal(m.Conditions, &conditions); err != nil {
			return nil, err
		}
	}
	return &entity.GuaranteeTemplate{
		Id:                       m.Id,
		Name:                     m.Name,
		Description:              m.Description,
		GuaranteeType:            entity.GuaranteeType(m.GuaranteeType),
		DurationDays:             m.DurationDays,
		Conditions:               conditions,
		DefaultPayoutType:        entity.PayoutType(m.DefaultPayoutType),
		PayoutAmountType:         entity.PayoutAmountType(m.PayoutAmountType),
		PayoutAmountValue:        m.PayoutAmountValue,
		RolloverUpsellServiceIds: m.RolloverUpsellServiceIds,
		RolloverContinuityPlanId: m.RolloverContinuityPlanId,
		RolloverBonusMultiplier:  m.RolloverBonusMultiplier,
		IsActive:                 m.IsActive,
		CreatedBy:                m.CreatedBy,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}, nil
}

// --- Instance Repository ---

type guaranteeInstanceRepositoryImpl struct {
	db *gorm.DB
}

func NewGuaranteeInstanceRepository(db *gorm.DB) contract.GuaranteeInstanceRepository {
	return &guaranteeInstanceRepositoryImpl{db: db}
}

func (r *guaranteeInstanceRepositoryImpl) Create(ctx context.Context, instance *entity.GuaranteeInstance) error {
	snapshot, err := json.Marshal(instance.ConditionsSnapshot)
	if err != nil {
		return err
	}
	m := &model.GuaranteeInstance{
		Id:                  instance.Id,
		GuaranteeTemplateId: instance.GuaranteeTemplateId,
		OrderId:             instance.OrderId,
		ClientEmail:         instance.ClientEmail,
		ClientName:          instance.ClientName,
		PurchaseAmount:      instance.PurchaseAmount,
		PayoutType:          string(instance.PayoutType),
		Status:              string(instance.Status),
		ConditionsSnapshot:  datatypes.JSON(snapshot),
		StartsAt:            instance.StartsAt,
		ExpiresAt:           instance.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	instance.Id = m.Id
	instance.CreatedAt = m.CreatedAt
	return nil
}

func (r *guaranteeInstanceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuaranteeInstance, error) {
	return r.findOne(ctx, r.db.WithContext(ctx), specs...)
}

func (r *guaranteeInstanceRepositoryImpl) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.GuaranteeInstance, error) {
	query := r.db.WithContext(ctx).
		Preload("Template").
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	return r.findOne(ctx, query, specs...)
}

func (r *guaranteeInstanceRepositoryImpl) findOne(ctx context.Context, query *gorm.DB, specs ...specification.Specification) (*entity.GuaranteeInstance, error) {
	var m model.GuaranteeInstance

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

func (r *guaranteeInstanceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GuaranteeInstance, error) {
	return r.findAll(ctx, r.db.WithContext(ctx), specs...)
}

func (r *guaranteeInstanceRepositoryImpl) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.GuaranteeInstance, error) {
	query := r.db.WithContext(ctx).
		Preload("Template").
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	return r.findAll(ctx, query, specs...)
}

func (r *guaranteeInstanceRepositoryImpl) findAll(ctx context.Context, query *gorm.DB, specs ...specification.Specification) ([]*entity.GuaranteeInstance, error) {
	var ms []*model.GuaranteeInstance

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var instances []*entity.GuaranteeInstance
	for _, m := range ms {
		inst, err := r.mapToEntity(m)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}

	return instances, nil
}

func (r *guaranteeInstanceRepositoryImpl) Update(ctx context.Context, instance *entity.GuaranteeInstance) error {
	return r.db.WithContext(ctx).Model(&model.GuaranteeInstance{}).
		Where("id = ?", instance.Id).
		Updates(map[string]interface{}{
			"status":                 string(instance.Status),
			"resolved_at":            instance.ResolvedAt,
			"resolution_notes":       instance.ResolutionNotes,
			"gateway_refund_id":      instance.GatewayRefundId,
			"discount_code_id":       instance.DiscountCodeId,
			"subscription_id":        instance.SubscriptionId,
			"rollover_credit_amount": instance.RolloverCreditAmount,
		}).Error
}

func (r *guaranteeInstanceRepositoryImpl) mapToEntity(m *model.GuaranteeInstance) (*entity.GuaranteeInstance, error) {
	var snapshot []entity.GuaranteeCondition
	if len(m.ConditionsSnapshot) > 0 {
		if err := json.Unmarshal(m.ConditionsSnapshot, &snapshot); err != nil {
			return nil, err
		}
	}

	inst := &entity.GuaranteeInstance{
		Id:                   m.Id,
		GuaranteeTemplateId:  m.GuaranteeTemplateId,
		OrderId:              m.OrderId,
		ClientEmail:          m.ClientEmail,
		ClientName:           m.ClientName,
		PurchaseAmount:       m.PurchaseAmount,
		PayoutType:           entity.PayoutType(m.PayoutType),
		Status:               entity.GuaranteeInstanceStatus(m.Status),
		ConditionsSnapshot:   snapshot,
		StartsAt:             m.StartsAt,
		ExpiresAt:            m.ExpiresAt,
		ResolvedAt:           m.ResolvedAt,
		ResolutionNotes:      m.ResolutionNotes,
		GatewayRefundId:      m.GatewayRefundId,
		DiscountCodeId:       m.DiscountCodeId,
		SubscriptionId:       m.SubscriptionId,
		RolloverCreditAmount: m.RolloverCreditAmount,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}

	if m.Template.Id != uuid.Nil {
		inst.Template = &entity.GuaranteeTemplate{
			Id:                       m.Template.Id,
			Name:                     m.Template.Name,
			GuaranteeType:            entity.GuaranteeType(m.Template.GuaranteeType),
			DurationDays:             m.Template.DurationDays,
			DefaultPayoutType:        entity.PayoutType(m.Template.DefaultPayoutType),
			PayoutAmountType:         entity.PayoutAmountType(m.Template.PayoutAmountType),
			PayoutAmountValue:        m.Template.PayoutAmountValue,
			RolloverUpsellServiceIds: m.Template.RolloverUpsellServiceIds,
			RolloverContinuityPlanId: m.Template.RolloverContinuityPlanId,
			RolloverBonusMultiplier:  m.Template.RolloverBonusMultiplier,
		}
	}
	for _, mm := range m.Milestones {
		inst.Milestones = append(inst.Milestones, *mapMilestoneToEntity(&mm))
	}

	return inst, nil
}

// --- Milestone Repository ---

type guaranteeMilestoneRepositoryImpl struct {
	db *gorm.DB
}

func NewGuaranteeMilestoneRepository(db *gorm.DB) contract.GuaranteeMilestoneRepository {
	return &guaranteeMilestoneRepositoryImpl{db: db}
}

func (r *guaranteeMilestoneRepositoryImpl) CreateBatch(ctx context.Context, milestones []*entity.GuaranteeMilestone) error {
	if len(milestones) == 0 {
		return nil
	}
	ms := make([]*model.GuaranteeMilestone, 0, len(milestones))
	for _, e := range milestones {
		ms = append(ms, &model.GuaranteeMilestone{
			Id:                  e.Id,
			GuaranteeInstanceId: e.GuaranteeInstanceId,
			ConditionId:         e.ConditionId,
			ConditionLabel:      e.ConditionLabel,
			Status:              string(e.Status),
		})
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}

func (r *guaranteeMilestoneRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuaranteeMilestone, error) {
	var m model.GuaranteeMilestone
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

	return mapMilestoneToEntity(&m), nil
}

func (r *guaranteeMilestoneRepositoryImpl) FindAllByInstance(ctx context.Context, instanceId uuid.UUID) ([]*entity.GuaranteeMilestone, error) {
	var ms []*model.GuaranteeMilestone
	if err := r.db.WithContext(ctx).
		Where("guarantee_instance_id = ?", instanceId).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var milestones []*entity.GuaranteeMilestone
	for _, m := range ms {
		milestones = append(milestones, mapMilestoneToEntity(m))
	}
	return milestones, nil
}

func (r *guaranteeMilestoneRepositoryImpl) Update(ctx context.Context, milestone *entity.GuaranteeMilestone) error {
	return r.db.WithContext(ctx).Model(&model.GuaranteeMilestone{}).
		Where("id = ?", milestone.Id).
		Updates(map[string]interface{}{
			"status":              string(milestone.Status),
			"verified_by":         milestone.VerifiedBy,
			"verified_at":         milestone.VerifiedAt,
			"admin_notes":         milestone.AdminNotes,
			"client_evidence":     milestone.ClientEvidence,
			"client_submitted_at": milestone.ClientSubmittedAt,
		}).Error
}

func mapMilestoneToEntity(m *model.GuaranteeMilestone) *entity.GuaranteeMilestone {
	return &entity.GuaranteeMilestone{
		Id:                  m.Id,
		GuaranteeInstanceId: m.GuaranteeInstanceId,
		ConditionId:         m.ConditionId,
		ConditionLabel:      m.ConditionLabel,
		Status:              entity.MilestoneStatus(m.Status),
		VerifiedBy:          m.VerifiedBy,
		VerifiedAt:          m.VerifiedAt,
		AdminNotes:          m.AdminNotes,
		ClientEvidence:      m.ClientEvidence,
		ClientSubmittedAt:   m.ClientSubmittedAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
