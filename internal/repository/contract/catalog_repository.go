package contract

import (
	"context"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
}

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Service, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
}

// OrderRepository is read-mostly: orders are written by the payment pipeline
// upstream, this backend looks them up for guarantees and flips their status
// on refunds.
type OrderRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
}

type DiscountCodeRepository interface {
	Create(ctx context.Context, code *entity.DiscountCode) error
	FindByCode(ctx context.Context, code string) (*entity.DiscountCode, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	Update(ctx context.Context, code *entity.DiscountCode) error
}
