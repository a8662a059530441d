// FILE: internal/service/lead_service.go
package service

import (
	"context"
	"strings"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/pkg/logger"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"
	adminEvents "offerstack-be/pkg/admin/events"
	"offerstack-be/pkg/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILeadService interface {
	Create(ctx context.Context, req *dto.CreateLeadRequest, createdBy *uuid.UUID) (*dto.LeadResponse, error)
	List(ctx context.Context, page, limit int, status string) ([]dto.LeadResponse, error)
}

type leadService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  adminEvents.Publisher
	bus        *workflow.Bus
	logger     logger.ILogger
}

func NewLeadService(uowFactory unitofwork.RepositoryFactory, publisher adminEvents.Publisher, bus *workflow.Bus, log logger.ILogger) ILeadService {
	return &leadService{
		uowFactory: uowFactory,
		publisher:  publisher,
		bus:        bus,
		logger:     log,
	}
}

func (s *leadService) Create(ctx context.Context, req *dto.CreateLeadRequest, createdBy *uuid.UUID) (*dto.LeadResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	handle := strings.TrimSpace(req.LinkedInHandle)

	if email == "" && handle == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "A lead needs an email or a LinkedIn handle")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.LeadRepository().FindDuplicate(ctx, email, handle)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Lead already exists")
	}

	lead := &entity.Lead{
		Id:             uuid.New(),
		Email:          email,
		FullName:       req.FullName,
		Company:        req.Company,
		LinkedInHandle: handle,
		Source:         entity.LeadSourceOutreach,
		Status:         entity.LeadStatusNew,
		Notes:          req.Notes,
		CreatedBy:      createdBy,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.LeadRepository().Create(ctx, lead); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("OUTREACH", "Created Lead", map[string]interface{}{
		"leadId": lead.Id.String(),
		"source": string(lead.Source),
	})

	s.publisher.PublishLeadCreated(ctx, lead.Id, lead.Email, lead.LinkedInHandle, string(lead.Source))

	// Queue the qualification workflow; the dispatcher retries delivery so a
	// flaky engine never fails the create.
	s.bus.PublishLead(ctx, workflow.LeadEvent{
		LeadId:         lead.Id.String(),
		Email:          lead.Email,
		LinkedInHandle: lead.LinkedInHandle,
		Name:           lead.FullName,
		CompanyName:    lead.Company,
		Source:         string(lead.Source),
		Notes:          lead.Notes,
	})

	resp := toLeadResponse(lead)
	return &resp, nil
}

func (s *leadService) List(ctx context.Context, page, limit int, status string) ([]dto.LeadResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}
	specs = append(specs,
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
		specification.OrderBy{Field: "created_at", Desc: true},
	)

	leads, err := uow.LeadRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		responses = append(responses, toLeadResponse(lead))
	}
	return responses, nil
}

func toLeadResponse(lead *entity.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		Id:             lead.Id,
		Email:          lead.Email,
		FullName:       lead.FullName,
		Company:        lead.Company,
		LinkedInHandle: lead.LinkedInHandle,
		Source:         string(lead.Source),
		Status:         string(lead.Status),
		Notes:          lead.Notes,
		CreatedAt:      lead.CreatedAt,
	}
}
