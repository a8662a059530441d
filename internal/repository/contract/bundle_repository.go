package contract

import (
	"context"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BundleRepository interface {
	Create(ctx context.Context, bundle *entity.OfferBundle) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OfferBundle, error)
	// FindOneWithItems preloads items ordered by display_order.
	FindOneWithItems(ctx context.Context, specs ...specification.Specification) (*entity.OfferBundle, error)
	FindAllWithItems(ctx context.Context, specs ...specification.Specification) ([]*entity.OfferBundle, error)
	Update(ctx context.Context, bundle *entity.OfferBundle) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BundleItemRepository interface {
	CreateBatch(ctx context.Context, items []*entity.BundleItem) error
	DeleteAllByBundle(ctx context.Context, bundleId uuid.UUID) error
}
