// FILE: internal/service/catalog_service.go
package service

import (
	"context"
	"sort"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/pkg/logger"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"
	"offerstack-be/pkg/admin/bundle"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ICatalogService is the admin side of the catalog: the unified content list
// with offer-role classification, and the upsert that assigns a row its place
// in the offer structure. The public storefront reads live on IStoreService.
type ICatalogService interface {
	GetContent(ctx context.Context, contentType, role string, activeOnly bool) ([]dto.ContentRoleResponse, error)
	UpsertContentRole(ctx context.Context, req *dto.UpsertContentRoleRequest) (*dto.ContentRoleResponse, error)
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *bundle.Resolver
	logger     logger.ILogger
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory, resolver *bundle.Resolver, log logger.ILogger) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		resolver:   resolver,
		logger:     log,
	}
}

func (s *catalogService) GetContent(ctx context.Context, contentType, role string, activeOnly bool) ([]dto.ContentRoleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if activeOnly {
		specs = append(specs, specification.ActiveOnly{})
	}
	if role != "" {
		specs = append(specs, specification.Filter("offer_role", role))
	}
	specs = append(specs, specification.OrderBy{Field: "display_order", Desc: false})

	var rows []dto.ContentRoleResponse

	if contentType == "" || contentType == string(entity.ContentTypeProduct) {
		products, err := uow.ProductRepository().FindAll(ctx, specs...)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			rows = append(rows, contentFromProduct(p))
		}
	}

	if contentType == "" || contentType == string(entity.ContentTypeService) {
		services, err := uow.ServiceRepository().FindAll(ctx, specs...)
		if err != nil {
			return nil, err
		}
		for _, svc := range services {
			rows = append(rows, contentFromService(svc))
		}
	}

	sortContentRows(rows)
	return rows, nil
}

func (s *catalogService) UpsertContentRole(ctx context.Context, req *dto.UpsertContentRoleRequest) (*dto.ContentRoleResponse, error) {
	switch req.ContentType {
	case string(entity.ContentTypeProduct):
		return s.upsertProduct(ctx, req)
	case string(entity.ContentTypeService):
		return s.upsertService(ctx, req)
	}
	return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Unknown content type")
}

func (s *catalogService) upsertProduct(ctx context.Context, req *dto.UpsertContentRoleRequest) (*dto.ContentRoleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var product *entity.Product
	if req.ContentId != nil {
		found, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: *req.ContentId})
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "Content not found")
		}
		product = found
	} else {
		if req.Title == nil || *req.Title == "" {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "A new content row needs a title")
		}
		product = &entity.Product{Id: uuid.New(), IsActive: true}
	}
	applyProductClassification(product, req)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	var err error
	if req.ContentId != nil {
		err = uow.ProductRepository().Update(ctx, product)
	} else {
		err = uow.ProductRepository().Create(ctx, product)
	}
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.finishUpsert(ctx, entity.ContentTypeProduct, product.Id, string(product.OfferRole))
	resp := contentFromProduct(product)
	return &resp, nil
}

func (s *catalogService) upsertService(ctx context.Context, req *dto.UpsertContentRoleRequest) (*dto.ContentRoleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var svc *entity.Service
	if req.ContentId != nil {
		found, err := uow.ServiceRepository().FindOne(ctx, specification.ByID{ID: *req.ContentId})
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "Content not found")
		}
		svc = found
	} else {
		if req.Title == nil || *req.Title == "" {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "A new content row needs a title")
		}
		svc = &entity.Service{Id: uuid.New(), IsActive: true}
	}
	applyServiceClassification(svc, req)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	var err error
	if req.ContentId != nil {
		err = uow.ServiceRepository().Update(ctx, svc)
	} else {
		err = uow.ServiceRepository().Create(ctx, svc)
	}
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.finishUpsert(ctx, entity.ContentTypeService, svc.Id, string(svc.OfferRole))
	resp := contentFromService(svc)
	return &resp, nil
}

// finishUpsert drops the cached price so bundle resolution picks up the new
// values on the next read.
func (s *catalogService) finishUpsert(ctx context.Context, contentType entity.ContentType, id uuid.UUID, role string) {
	s.resolver.InvalidateCatalogEntry(ctx, contentType, id.String())
	s.logger.Info("CATALOG", "Classified content", map[string]interface{}{
		"contentType": string(contentType),
		"contentId":   id.String(),
		"offerRole":   role,
	})
}

// --- Classification & assembly ---

func applyProductClassification(p *entity.Product, req *dto.UpsertContentRoleRequest) {
	p.OfferRole = entity.OfferRole(req.OfferRole)
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.PerceivedValue != nil {
		p.PerceivedValue = req.PerceivedValue
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.DisplayOrder != nil {
		p.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}

func applyServiceClassification(svc *entity.Service, req *dto.UpsertContentRoleRequest) {
	svc.OfferRole = entity.OfferRole(req.OfferRole)
	if req.Title != nil {
		svc.Title = *req.Title
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.PerceivedValue != nil {
		svc.PerceivedValue = req.PerceivedValue
	}
	if req.ImageURL != nil {
		svc.ImageURL = *req.ImageURL
	}
	if req.DisplayOrder != nil {
		svc.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
}

func contentFromProduct(p *entity.Product) dto.ContentRoleResponse {
	return dto.ContentRoleResponse{
		ContentType:    string(entity.ContentTypeProduct),
		ContentId:      p.Id,
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price,
		PerceivedValue: p.PerceivedValue,
		OfferRole:      string(p.OfferRole),
		ImageURL:       p.ImageURL,
		IsActive:       p.IsActive,
		DisplayOrder:   p.DisplayOrder,
		CreatedAt:      p.CreatedAt,
	}
}

func contentFromService(svc *entity.Service) dto.ContentRoleResponse {
	return dto.ContentRoleResponse{
		ContentType:    string(entity.ContentTypeService),
		ContentId:      svc.Id,
		Title:          svc.Title,
		Description:    svc.Description,
		Price:          svc.Price,
		PerceivedValue: svc.PerceivedValue,
		OfferRole:      string(svc.OfferRole),
		ImageURL:       svc.ImageURL,
		IsActive:       svc.IsActive,
		DisplayOrder:   svc.DisplayOrder,
		CreatedAt:      svc.CreatedAt,
	}
}

// sortContentRows keeps the merged list grouped by content type, then by the
// admin-assigned display order within each group.
func sortContentRows(rows []dto.ContentRoleResponse) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ContentType != rows[j].ContentType {
			return rows[i].ContentType < rows[j].ContentType
		}
		return rows[i].DisplayOrder < rows[j].DisplayOrder
	})
}
