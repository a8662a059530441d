// FILE: internal/service/guarantee_service.go
package service

import (
	"context"
	"errors"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/unitofwork"
	"offerstack-be/pkg/admin/guarantee"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGuaranteeService interface {
	CreateTemplate(ctx context.Context, req *dto.CreateGuaranteeTemplateRequest, createdBy *uuid.UUID) (*dto.GuaranteeTemplateResponse, error)
	GetTemplates(ctx context.Context, page, limit int, activeOnly bool) ([]dto.GuaranteeTemplateResponse, error)
	DeactivateTemplate(ctx context.Context, templateId uuid.UUID) error

	CreateInstance(ctx context.Context, req *dto.CreateGuaranteeInstanceRequest) (*dto.GuaranteeInstanceResponse, error)
	GetInstance(ctx context.Context, instanceId uuid.UUID) (*dto.GuaranteeInstanceResponse, error)
	GetInstances(ctx context.Context, page, limit int, status, clientEmail string) ([]dto.GuaranteeInstanceResponse, error)

	VerifyMilestone(ctx context.Context, instanceId, milestoneId uuid.UUID, req *dto.VerifyMilestoneRequest, adminId *uuid.UUID) (*dto.VerifyMilestoneResponse, error)
	SubmitEvidence(ctx context.Context, instanceId uuid.UUID, req *dto.SubmitEvidenceRequest) (*dto.GuaranteeMilestoneResponse, error)
	Evaluate(ctx context.Context, instanceId uuid.UUID) (*dto.EvaluateGuaranteeResponse, error)
	ChoosePayout(ctx context.Context, instanceId uuid.UUID, req *dto.ChoosePayoutRequest) (*dto.ChoosePayoutResponse, error)
}

type guaranteeService struct {
	uowFactory unitofwork.RepositoryFactory
	manager    *guarantee.Manager
}

func NewGuaranteeService(uowFactory unitofwork.RepositoryFactory, manager *guarantee.Manager) IGuaranteeService {
	return &guaranteeService{
		uowFactory: uowFactory,
		manager:    manager,
	}
}

// mapGuaranteeError translates domain sentinels into transport errors. Anything
// unmapped bubbles up and the error middleware masks it as a 500.
func mapGuaranteeError(err error) error {
	switch {
	case errors.Is(err, guarantee.ErrTemplateNotFound),
		errors.Is(err, guarantee.ErrInstanceNotFound),
		errors.Is(err, guarantee.ErrMilestoneNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, guarantee.ErrMilestoneAlreadyResolved),
		errors.Is(err, guarantee.ErrInstanceAlreadyResolved),
		errors.Is(err, guarantee.ErrConditionsNotMet):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, guarantee.ErrEmailMismatch):
		// A mismatched email gets the same answer as a missing guarantee so
		// the public endpoints don't confirm what exists for a probed email.
		return fiber.NewError(fiber.StatusNotFound, guarantee.ErrInstanceNotFound.Error())
	case errors.Is(err, guarantee.ErrTemplateInactive),
		errors.Is(err, guarantee.ErrInstanceNotActive),
		errors.Is(err, guarantee.ErrSelfReportOnly),
		errors.Is(err, guarantee.ErrNoPaymentReference),
		errors.Is(err, guarantee.ErrRolloverTargetMissing):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, guarantee.ErrInvalidTemplate):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}

func (s *guaranteeService) CreateTemplate(ctx context.Context, req *dto.CreateGuaranteeTemplateRequest, createdBy *uuid.UUID) (*dto.GuaranteeTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	template, err := s.manager.CreateTemplate(ctx, uow, *req, createdBy)
	if err != nil {
		return nil, mapGuaranteeError(err)
	}
	resp := toTemplateResponse(template)
	return &resp, nil
}

func (s *guaranteeService) GetTemplates(ctx context.Context, page, limit int, activeOnly bool) ([]dto.GuaranteeTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	templates, err := s.manager.GetTemplates(ctx, uow, page, limit, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GuaranteeTemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, toTemplateResponse(t))
	}
	return responses, nil
}

func (s *guaranteeService) DeactivateTemplate(ctx context.Context, templateId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.manager.DeactivateTemplate(ctx, uow, templateId); err != nil {
		return mapGuaranteeError(err)
	}
	return nil
}

func (s *guaranteeService) CreateInstance(ctx context.Context, req *dto.CreateGuaranteeInstanceRequest) (*dto.GuaranteeInstanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	instance, err := s.manager.CreateInstance(ctx, uow, *req)
	if err != nil {
		return nil, mapGuaranteeError(err)
	}
	resp := toInstanceResponse(instance)
	return &resp, nil
}

func (s *guaranteeService) GetInstance(ctx context.Context, instanceId uuid.UUID) (*dto.GuaranteeInstanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	instance, err := s.manager.GetInstance(ctx, uow, instanceId)
	if err != nil {
		return nil, mapGuaranteeError(err)
	}
	resp := toInstanceResponse(instance)
	return &resp, nil
}

func (s *guaranteeService) GetInstances(ctx context.Context, page, limit int, status, clientEmail string) ([]dto.GuaranteeInstanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	instances, err := s.manager.GetInstances(ctx, uow, page, limit, status, clientEmail)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GuaranteeInstanceResponse, 0, len(instances))
	for _, instance := range instances {
		responses = append(responses, toInstanceResponse(instance))
	}
	return responses, nil
}

func (s *guaranteeService) VerifyMilestone(ctx context.Context, instanceId, milestoneId uuid.UUID, req *dto.VerifyMilestoneRequest, adminId *uuid.UUID) (*dto.VerifyMilestoneResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	milestone, instanceStatus, err := s.manager.VerifyMilestone(ctx, uow, instanceId, milestoneId, *req, adminId)
	if err != nil {
		return nil, mapGuaranteeError(err)
	}

	return &dto.VerifyMilestoneResponse{
		MilestoneId:    milestone.Id,
		Status:         string(milestone.Status),
		InstanceStatus: string(instanceStatus),
	}, nil
}

func (s *guaranteeService) SubmitEvidence(ctx context.Context, instanceId uuid.UUID, req *dto.SubmitEvidenceRequest) (*dto.GuaranteeMilestoneResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	milestone, err := s.manager.SubmitEvidence(ctx, uow, instanceId, *req)
	if err != nil {
		return nil, mapGuaranteeError(err)
	}
	resp := toMilestoneResponse(*milestone)
	return &resp, nil
}

func (s *guaranteeService) Evaluate(ctx context.Context, instanceId uuid.UUID) (*dto.EvaluateGuaranteeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.manager.Evaluate(ctx, uow, instanceId)
	if err != nil {
		return nil, mapGuaranteeError(err)
	}

	return &dto.EvaluateGuaranteeResponse{
		InstanceId:        result.InstanceId,
		Status:            string(result.Status),
		PendingConditions: result.PendingConditions,
		PayoutAmount:      result.PayoutAmount,
		Message:           result.Message,
	}, nil
}

func (s *guaranteeService) ChoosePayout(ctx context.Context, instanceId uuid.UUID, req *dto.ChoosePayoutRequest) (*dto.ChoosePayoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.manager.ChoosePayout(ctx, uow, instanceId, *req)
	if err != nil {
		return nil, mapGuaranteeError(err)
	}

	return &dto.ChoosePayoutResponse{
		InstanceId:     result.InstanceId,
		Status:         string(result.Status),
		PayoutAmount:   result.PayoutAmount,
		DiscountCode:   result.DiscountCode,
		SubscriptionId: result.SubscriptionId,
		Message:        result.Message,
	}, nil
}

// --- DTO assembly ---

func toTemplateResponse(t *entity.GuaranteeTemplate) dto.GuaranteeTemplateResponse {
	conditions := make([]dto.GuaranteeConditionResponse, 0, len(t.Conditions))
	for _, c := range t.Conditions {
		conditions = append(conditions, dto.GuaranteeConditionResponse{
			Id:                 c.Id,
			Label:              c.Label,
			Description:        c.Description,
			VerificationMethod: string(c.VerificationMethod),
			Required:           c.Required,
		})
	}

	return dto.GuaranteeTemplateResponse{
		Id:                       t.Id,
		Name:                     t.Name,
		Description:              t.Description,
		GuaranteeType:            string(t.GuaranteeType),
		DurationDays:             t.DurationDays,
		Conditions:               conditions,
		DefaultPayoutType:        string(t.DefaultPayoutType),
		PayoutAmountType:         string(t.PayoutAmountType),
		PayoutAmountValue:        t.PayoutAmountValue,
		RolloverUpsellServiceIds: t.RolloverUpsellServiceIds,
		RolloverContinuityPlanId: t.RolloverContinuityPlanId,
		RolloverBonusMultiplier:  t.RolloverBonusMultiplier,
		IsActive:                 t.IsActive,
		CreatedAt:                t.CreatedAt,
	}
}

func toMilestoneResponse(m entity.GuaranteeMilestone) dto.GuaranteeMilestoneResponse {
	return dto.GuaranteeMilestoneResponse{
		Id:                m.Id,
		ConditionId:       m.ConditionId,
		ConditionLabel:    m.ConditionLabel,
		Status:            string(m.Status),
		VerifiedAt:        m.VerifiedAt,
		AdminNotes:        m.AdminNotes,
		ClientEvidence:    m.ClientEvidence,
		ClientSubmittedAt: m.ClientSubmittedAt,
	}
}

func toInstanceResponse(i *entity.GuaranteeInstance) dto.GuaranteeInstanceResponse {
	milestones := make([]dto.GuaranteeMilestoneResponse, 0, len(i.Milestones))
	for _, m := range i.Milestones {
		milestones = append(milestones, toMilestoneResponse(m))
	}

	templateName := ""
	if i.Template != nil {
		templateName = i.Template.Name
	}

	return dto.GuaranteeInstanceResponse{
		Id:                   i.Id,
		TemplateName:         templateName,
		ClientEmail:          i.ClientEmail,
		ClientName:           i.ClientName,
		PurchaseAmount:       i.PurchaseAmount,
		PayoutType:           string(i.PayoutType),
		Status:               string(i.Status),
		StartsAt:             i.StartsAt,
		ExpiresAt:            i.ExpiresAt,
		ResolvedAt:           i.ResolvedAt,
		ResolutionNotes:      i.ResolutionNotes,
		RolloverCreditAmount: i.RolloverCreditAmount,
		Milestones:           milestones,
	}
}
