// FILE: internal/service/sales_service.go
package service

import (
	"context"
	"errors"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/unitofwork"
	"offerstack-be/pkg/admin/bundle"
	"offerstack-be/pkg/admin/salesrec"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ISalesService fronts the sales toolkit: offer bundles, the recommendation
// scorer and upsell-path authoring.
type ISalesService interface {
	CreateBundle(ctx context.Context, req *dto.CreateBundleRequest, createdBy *uuid.UUID) (*dto.BundleResponse, error)
	GetBundle(ctx context.Context, bundleId uuid.UUID) (*dto.BundleResponse, error)
	ListBundles(ctx context.Context, page, limit int, activeOnly bool) ([]dto.BundleResponse, error)
	UpdateBundle(ctx context.Context, bundleId uuid.UUID, req *dto.UpdateBundleRequest) (*dto.BundleResponse, error)
	SaveBundleAs(ctx context.Context, req *dto.SaveBundleAsRequest, createdBy *uuid.UUID) (*dto.BundleResponse, error)
	DeleteBundle(ctx context.Context, bundleId uuid.UUID) error

	Recommend(ctx context.Context, req *dto.RecommendRequest) (*dto.RecommendResponse, error)

	CreateUpsellPath(ctx context.Context, req *dto.CreateUpsellPathRequest) (*dto.UpsellPathResponse, error)
	ListUpsellPaths(ctx context.Context, page, limit int, activeOnly bool) ([]dto.UpsellPathResponse, error)
	DeactivateUpsellPath(ctx context.Context, pathId uuid.UUID) error
	DeleteUpsellPath(ctx context.Context, pathId uuid.UUID) error
}

type salesService struct {
	uowFactory unitofwork.RepositoryFactory
	bundles    *bundle.Manager
	recs       *salesrec.Manager
}

func NewSalesService(uowFactory unitofwork.RepositoryFactory, bundles *bundle.Manager, recs *salesrec.Manager) ISalesService {
	return &salesService{
		uowFactory: uowFactory,
		bundles:    bundles,
		recs:       recs,
	}
}

func mapSalesError(err error) error {
	switch {
	case errors.Is(err, bundle.ErrBundleNotFound),
		errors.Is(err, salesrec.ErrUpsellPathNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, bundle.ErrBaseBundleNotFound),
		errors.Is(err, bundle.ErrEmptyName),
		errors.Is(err, salesrec.ErrUnknownObjection):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return err
}

// --- Bundles ---

func (s *salesService) CreateBundle(ctx context.Context, req *dto.CreateBundleRequest, createdBy *uuid.UUID) (*dto.BundleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	created, err := s.bundles.Create(ctx, uow, *req, createdBy)
	if err != nil {
		return nil, mapSalesError(err)
	}
	return s.resolveBundleResponse(ctx, uow, created)
}

func (s *salesService) GetBundle(ctx context.Context, bundleId uuid.UUID) (*dto.BundleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	found, items, err := s.bundles.Get(ctx, uow, bundleId)
	if err != nil {
		return nil, mapSalesError(err)
	}
	resp := toBundleResponse(found, items, false)
	return &resp, nil
}

func (s *salesService) ListBundles(ctx context.Context, page, limit int, activeOnly bool) ([]dto.BundleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bundles, resolved, truncated, err := s.bundles.List(ctx, uow, page, limit, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.BundleResponse, 0, len(bundles))
	for _, b := range bundles {
		responses = append(responses, toBundleResponse(b, resolved[b.Id], truncated[b.Id]))
	}
	return responses, nil
}

func (s *salesService) UpdateBundle(ctx context.Context, bundleId uuid.UUID, req *dto.UpdateBundleRequest) (*dto.BundleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	updated, err := s.bundles.Update(ctx, uow, bundleId, *req)
	if err != nil {
		return nil, mapSalesError(err)
	}
	return s.resolveBundleResponse(ctx, uow, updated)
}

func (s *salesService) SaveBundleAs(ctx context.Context, req *dto.SaveBundleAsRequest, createdBy *uuid.UUID) (*dto.BundleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	forked, err := s.bundles.SaveAs(ctx, uow, *req, createdBy)
	if err != nil {
		return nil, mapSalesError(err)
	}
	return s.resolveBundleResponse(ctx, uow, forked)
}

func (s *salesService) DeleteBundle(ctx context.Context, bundleId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.bundles.Delete(ctx, uow, bundleId); err != nil {
		return mapSalesError(err)
	}
	return nil
}

func (s *salesService) resolveBundleResponse(ctx context.Context, uow unitofwork.UnitOfWork, b *entity.OfferBundle) (*dto.BundleResponse, error) {
	items, _, err := s.bundles.Resolver().ResolveItems(ctx, uow, b.Items, 0)
	if err != nil {
		return nil, err
	}
	resp := toBundleResponse(b, items, false)
	return &resp, nil
}

// --- Recommendations ---

func (s *salesService) Recommend(ctx context.Context, req *dto.RecommendRequest) (*dto.RecommendResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	recommendations, err := s.recs.Recommend(ctx, uow, *req)
	if err != nil {
		return nil, mapSalesError(err)
	}
	return &dto.RecommendResponse{Recommendations: recommendations}, nil
}

// --- Upsell Paths ---

func (s *salesService) CreateUpsellPath(ctx context.Context, req *dto.CreateUpsellPathRequest) (*dto.UpsellPathResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	path, err := s.recs.CreateUpsellPath(ctx, uow, *req)
	if err != nil {
		return nil, mapSalesError(err)
	}
	resp := toUpsellPathResponse(path)
	return &resp, nil
}

func (s *salesService) ListUpsellPaths(ctx context.Context, page, limit int, activeOnly bool) ([]dto.UpsellPathResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	paths, err := s.recs.ListUpsellPaths(ctx, uow, page, limit, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UpsellPathResponse, 0, len(paths))
	for _, p := range paths {
		responses = append(responses, toUpsellPathResponse(p))
	}
	return responses, nil
}

func (s *salesService) DeactivateUpsellPath(ctx context.Context, pathId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.recs.DeactivateUpsellPath(ctx, uow, pathId); err != nil {
		return mapSalesError(err)
	}
	return nil
}

func (s *salesService) DeleteUpsellPath(ctx context.Context, pathId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.recs.DeleteUpsellPath(ctx, uow, pathId); err != nil {
		return mapSalesError(err)
	}
	return nil
}

// --- DTO assembly ---

func toBundleResponse(b *entity.OfferBundle, items []dto.ResolvedBundleItem, truncated bool) dto.BundleResponse {
	retail, perceived := bundle.Totals(items)

	return dto.BundleResponse{
		Id:                  b.Id,
		Name:                b.Name,
		Slug:                b.Slug,
		Description:         b.Description,
		Price:               bundle.EffectivePrice(b.Price, retail),
		TotalRetailValue:    retail,
		TotalPerceivedValue: perceived,
		ParentBundleId:      b.ParentBundleId,
		ServiceId:           b.ServiceId,
		IsActive:            b.IsActive,
		Items:               items,
		ItemsTruncated:      truncated,
		CreatedAt:           b.CreatedAt,
	}
}

func toUpsellPathResponse(p *entity.UpsellPath) dto.UpsellPathResponse {
	steps := make([]dto.UpsellStepPayload, 0, len(p.PointOfSaleSteps))
	for _, step := range p.PointOfSaleSteps {
		steps = append(steps, dto.UpsellStepPayload{
			Title:         step.Title,
			TalkingPoints: step.TalkingPoints,
		})
	}

	return dto.UpsellPathResponse{
		Id:                       p.Id,
		SourceContentType:        string(p.SourceContentType),
		SourceContentId:          p.SourceContentId,
		SourceTitle:              p.SourceTitle,
		UpsellContentType:        string(p.UpsellContentType),
		UpsellContentId:          p.UpsellContentId,
		UpsellTitle:              p.UpsellTitle,
		NextProblem:              p.NextProblem,
		ValueFrameText:           p.ValueFrameText,
		PointOfSaleSteps:         steps,
		CreditPreviousInvestment: p.CreditPreviousInvestment,
		IsActive:                 p.IsActive,
		CreatedAt:                p.CreatedAt,
	}
}
