// FILE: internal/service/campaign_service.go
package service

import (
	"context"
	"errors"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/unitofwork"
	"offerstack-be/pkg/admin/campaign"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICampaignService interface {
	CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, createdBy *uuid.UUID) (*dto.CampaignResponse, error)
	UpdateCampaign(ctx context.Context, campaignId uuid.UUID, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error)
	GetCampaigns(ctx context.Context, page, limit int, status string) ([]dto.CampaignResponse, error)
	GetCampaign(ctx context.Context, campaignId uuid.UUID) (*dto.CampaignResponse, []dto.CriteriaTemplateResponse, error)
	AddCriteriaTemplate(ctx context.Context, campaignId uuid.UUID, req *dto.CreateCriteriaTemplateRequest) (*dto.CriteriaTemplateResponse, error)

	Enroll(ctx context.Context, campaignId uuid.UUID, req *dto.EnrollClientRequest) (*dto.EnrollmentResponse, error)
	GetEnrollment(ctx context.Context, enrollmentId uuid.UUID) (*dto.EnrollmentResponse, error)
	GetEnrollments(ctx context.Context, campaignId uuid.UUID, page, limit int, status string) ([]dto.EnrollmentResponse, error)

	VerifyProgress(ctx context.Context, enrollmentId, criterionId uuid.UUID, req *dto.VerifyProgressRequest, adminId *uuid.UUID) (*dto.VerifyProgressResponse, error)
	TrackProgress(ctx context.Context, req *dto.TrackProgressRequest) error
	Resolve(ctx context.Context, enrollmentId uuid.UUID, req *dto.ResolveEnrollmentRequest) (*dto.ResolveEnrollmentResponse, error)
	Withdraw(ctx context.Context, enrollmentId uuid.UUID, notes string) error
}

type campaignService struct {
	uowFactory unitofwork.RepositoryFactory
	manager    *campaign.Manager
}

func NewCampaignService(uowFactory unitofwork.RepositoryFactory, manager *campaign.Manager) ICampaignService {
	return &campaignService{
		uowFactory: uowFactory,
		manager:    manager,
	}
}

func mapCampaignError(err error) error {
	switch {
	case errors.Is(err, campaign.ErrCampaignNotFound),
		errors.Is(err, campaign.ErrEnrollmentNotFound),
		errors.Is(err, campaign.ErrProgressNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, campaign.ErrDuplicateEnrollment),
		errors.Is(err, campaign.ErrProgressAlreadyResolved),
		errors.Is(err, campaign.ErrEnrollmentAlreadyDone),
		errors.Is(err, campaign.ErrCriteriaNotMet):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, campaign.ErrCampaignNotActive),
		errors.Is(err, campaign.ErrEnrollmentDeadlinePassed),
		errors.Is(err, campaign.ErrBelowMinPurchase),
		errors.Is(err, campaign.ErrEnrollmentNotActive),
		errors.Is(err, campaign.ErrNoPaymentReference):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return err
}

func (s *campaignService) CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, createdBy *uuid.UUID) (*dto.CampaignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	created, err := s.manager.CreateCampaign(ctx, uow, *req, createdBy)
	if err != nil {
		return nil, mapCampaignError(err)
	}
	resp := toCampaignResponse(created, 0)
	return &resp, nil
}

func (s *campaignService) UpdateCampaign(ctx context.Context, campaignId uuid.UUID, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	updated, err := s.manager.UpdateCampaign(ctx, uow, campaignId, *req)
	if err != nil {
		return nil, mapCampaignError(err)
	}
	resp := toCampaignResponse(updated, 0)
	return &resp, nil
}

func (s *campaignService) GetCampaigns(ctx context.Context, page, limit int, status string) ([]dto.CampaignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	campaigns, err := s.manager.GetCampaigns(ctx, uow, page, limit, status)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		responses = append(responses, toCampaignResponse(c, 0))
	}
	return responses, nil
}

func (s *campaignService) GetCampaign(ctx context.Context, campaignId uuid.UUID) (*dto.CampaignResponse, []dto.CriteriaTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	found, enrollments, err := s.manager.GetCampaign(ctx, uow, campaignId)
	if err != nil {
		return nil, nil, mapCampaignError(err)
	}

	resp := toCampaignResponse(found, enrollments)
	templates := make([]dto.CriteriaTemplateResponse, 0, len(found.CriteriaTemplates))
	for _, t := range found.CriteriaTemplates {
		tpl := t
		templates = append(templates, toCriteriaTemplateResponse(&tpl))
	}
	return &resp, templates, nil
}

func (s *campaignService) AddCriteriaTemplate(ctx context.Context, campaignId uuid.UUID, req *dto.CreateCriteriaTemplateRequest) (*dto.CriteriaTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tpl, err := s.manager.AddCriteriaTemplate(ctx, uow, campaignId, *req)
	if err != nil {
		return nil, mapCampaignError(err)
	}
	resp := toCriteriaTemplateResponse(tpl)
	return &resp, nil
}

func (s *campaignService) Enroll(ctx context.Context, campaignId uuid.UUID, req *dto.EnrollClientRequest) (*dto.EnrollmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	enrollment, err := s.manager.Enroll(ctx, uow, campaignId, *req)
	if err != nil {
		return nil, mapCampaignError(err)
	}
	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

func (s *campaignService) GetEnrollment(ctx context.Context, enrollmentId uuid.UUID) (*dto.EnrollmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	enrollment, err := s.manager.GetEnrollment(ctx, uow, enrollmentId)
	if err != nil {
		return nil, mapCampaignError(err)
	}
	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

func (s *campaignService) GetEnrollments(ctx context.Context, campaignId uuid.UUID, page, limit int, status string) ([]dto.EnrollmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	enrollments, err := s.manager.GetEnrollments(ctx, uow, campaignId, page, limit, status)
	if err != nil {
		return nil, mapCampaignError(err)
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		responses = append(responses, toEnrollmentResponse(e))
	}
	return responses, nil
}

func (s *campaignService) VerifyProgress(ctx context.Context, enrollmentId, criterionId uuid.UUID, req *dto.VerifyProgressRequest, adminId *uuid.UUID) (*dto.VerifyProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	overall, enrollmentStatus, err := s.manager.VerifyProgress(ctx, uow, enrollmentId, criterionId, *req, adminId)
	if err != nil {
		return nil, mapCampaignError(err)
	}

	return &dto.VerifyProgressResponse{
		CriterionId:      criterionId,
		Status:           req.Status,
		OverallProgress:  overall,
		EnrollmentStatus: string(enrollmentStatus),
	}, nil
}

func (s *campaignService) TrackProgress(ctx context.Context, req *dto.TrackProgressRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.manager.TrackProgress(ctx, uow, req.EnrollmentId, req.CriterionId, req.CurrentValue, req.SourceRef); err != nil {
		return mapCampaignError(err)
	}
	return nil
}

func (s *campaignService) Resolve(ctx context.Context, enrollmentId uuid.UUID, req *dto.ResolveEnrollmentRequest) (*dto.ResolveEnrollmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.manager.Resolve(ctx, uow, enrollmentId, *req)
	if err != nil {
		return nil, mapCampaignError(err)
	}

	return &dto.ResolveEnrollmentResponse{
		EnrollmentId: result.EnrollmentId,
		Status:       string(result.Status),
		PayoutAmount: result.PayoutAmount,
		DiscountCode: result.DiscountCode,
		Message:      result.Message,
	}, nil
}

func (s *campaignService) Withdraw(ctx context.Context, enrollmentId uuid.UUID, notes string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.manager.Withdraw(ctx, uow, enrollmentId, notes); err != nil {
		return mapCampaignError(err)
	}
	return nil
}

// --- DTO assembly ---

func toCampaignResponse(c *entity.AttractionCampaign, enrollmentCount int64) dto.CampaignResponse {
	return dto.CampaignResponse{
		Id:                   c.Id,
		Name:                 c.Name,
		Slug:                 c.Slug,
		Description:          c.Description,
		CampaignType:         string(c.CampaignType),
		Status:               string(c.Status),
		StartsAt:             c.StartsAt,
		EndsAt:               c.EndsAt,
		EnrollmentDeadline:   c.EnrollmentDeadline,
		CompletionWindowDays: c.CompletionWindowDays,
		MinPurchaseAmount:    c.MinPurchaseAmount,
		PayoutType:           string(c.PayoutType),
		PayoutAmountType:     string(c.PayoutAmountType),
		PayoutAmountValue:    c.PayoutAmountValue,
		PromoCopy:            c.PromoCopy,
		EnrollmentCount:      enrollmentCount,
		CreatedAt:            c.CreatedAt,
	}
}

func toCriteriaTemplateResponse(t *entity.CampaignCriteriaTemplate) dto.CriteriaTemplateResponse {
	return dto.CriteriaTemplateResponse{
		Id:                  t.Id,
		LabelTemplate:       t.LabelTemplate,
		DescriptionTemplate: t.DescriptionTemplate,
		CriteriaType:        string(t.CriteriaType),
		TrackingSource:      string(t.TrackingSource),
		ThresholdSource:     t.ThresholdSource,
		ThresholdDefault:    t.ThresholdDefault,
		Required:            t.Required,
		DisplayOrder:        t.DisplayOrder,
	}
}

func toEnrollmentResponse(e *entity.CampaignEnrollment) dto.EnrollmentResponse {
	criteria := make([]dto.EnrollmentCriterionResponse, 0, len(e.Criteria))
	for _, c := range e.Criteria {
		criteria = append(criteria, dto.EnrollmentCriterionResponse{
			Id:             c.Id,
			Label:          c.Label,
			Description:    c.Description,
			CriteriaType:   string(c.CriteriaType),
			TrackingSource: string(c.TrackingSource),
			TargetValue:    c.TargetValue,
			Required:       c.Required,
			DisplayOrder:   c.DisplayOrder,
		})
	}

	progress := make([]dto.ProgressResponse, 0, len(e.Progress))
	for _, p := range e.Progress {
		progress = append(progress, dto.ProgressResponse{
			CriterionId:     p.CriterionId,
			Status:          string(p.Status),
			CurrentValue:    p.CurrentValue,
			AutoTracked:     p.AutoTracked,
			ClientEvidence:  p.ClientEvidence,
			AdminVerifiedAt: p.AdminVerifiedAt,
			AdminNotes:      p.AdminNotes,
		})
	}

	campaignName := ""
	if e.Campaign != nil {
		campaignName = e.Campaign.Name
	}

	return dto.EnrollmentResponse{
		Id:              e.Id,
		CampaignId:      e.CampaignId,
		CampaignName:    campaignName,
		ClientEmail:     e.ClientEmail,
		ClientName:      e.ClientName,
		Status:          string(e.Status),
		EnrolledAt:      e.EnrolledAt,
		DeadlineAt:      e.DeadlineAt,
		ResolvedAt:      e.ResolvedAt,
		OverallProgress: campaign.OverallProgress(e.Progress),
		Criteria:        criteria,
		Progress:        progress,
	}
}
