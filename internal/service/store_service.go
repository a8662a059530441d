// FILE: internal/service/store_service.go
package service

import (
	"context"
	"strings"
	"time"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"
	"offerstack-be/pkg/admin/bundle"

	"github.com/google/uuid"
)

// IStoreService serves the public storefront reads: active catalog rows,
// bundles attached to a service page, and discount-code validation.
type IStoreService interface {
	GetProducts(ctx context.Context) ([]dto.ProductResponse, error)
	GetServices(ctx context.Context) ([]dto.ServiceResponse, error)
	GetBundlesByService(ctx context.Context, serviceId uuid.UUID) ([]dto.BundleResponse, error)
	ValidateDiscount(ctx context.Context, req *dto.ValidateDiscountRequest) (*dto.ValidateDiscountResponse, error)
}

type storeService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *bundle.Resolver
}

func NewStoreService(uowFactory unitofwork.RepositoryFactory, resolver *bundle.Resolver) IStoreService {
	return &storeService{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

func (s *storeService) GetProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	products, err := uow.ProductRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "display_order", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, dto.ProductResponse{
			Id:             p.Id,
			Title:          p.Title,
			Description:    p.Description,
			Price:          p.Price,
			PerceivedValue: p.PerceivedValue,
			OfferRole:      string(p.OfferRole),
			ImageURL:       p.ImageURL,
			IsFeatured:     p.IsFeatured,
			DisplayOrder:   p.DisplayOrder,
		})
	}
	return responses, nil
}

func (s *storeService) GetServices(ctx context.Context) ([]dto.ServiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	services, err := uow.ServiceRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "display_order", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ServiceResponse, 0, len(services))
	for _, svc := range services {
		responses = append(responses, dto.ServiceResponse{
			Id:             svc.Id,
			Title:          svc.Title,
			Description:    svc.Description,
			Price:          svc.Price,
			PerceivedValue: svc.PerceivedValue,
			OfferRole:      string(svc.OfferRole),
			ImageURL:       svc.ImageURL,
			DisplayOrder:   svc.DisplayOrder,
		})
	}
	return responses, nil
}

func (s *storeService) GetBundlesByService(ctx context.Context, serviceId uuid.UUID) ([]dto.BundleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bundles, err := uow.BundleRepository().FindAllWithItems(ctx,
		specification.ActiveOnly{},
		specification.Filter("service_id", serviceId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.BundleResponse, 0, len(bundles))
	for _, b := range bundles {
		items, _, err := s.resolver.ResolveItems(ctx, uow, b.Items, 0)
		if err != nil {
			return nil, err
		}
		responses = append(responses, toBundleResponse(b, items, false))
	}
	return responses, nil
}

// ValidateDiscount checks a code at checkout. Invalid codes come back as
// valid=false with a reason rather than an error; the storefront renders the
// reason inline.
func (s *storeService) ValidateDiscount(ctx context.Context, req *dto.ValidateDiscountRequest) (*dto.ValidateDiscountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	normalized := strings.ToUpper(strings.TrimSpace(req.Code))

	code, err := uow.DiscountCodeRepository().FindByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}

	reject := func(reason string) *dto.ValidateDiscountResponse {
		return &dto.ValidateDiscountResponse{
			Valid:  false,
			Code:   normalized,
			Reason: reason,
		}
	}

	switch {
	case code == nil:
		return reject("Code not found"), nil
	case !code.IsActive:
		return reject("Code is no longer active"), nil
	case code.ExpiresAt != nil && time.Now().After(*code.ExpiresAt):
		return reject("Code has expired"), nil
	case code.MaxUses > 0 && code.TimesUsed >= code.MaxUses:
		return reject("Code has already been used"), nil
	}

	return &dto.ValidateDiscountResponse{
		Valid:         true,
		Code:          code.Code,
		DiscountType:  string(code.DiscountType),
		DiscountValue: code.DiscountValue,
	}, nil
}
