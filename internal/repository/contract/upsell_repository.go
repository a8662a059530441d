package contract

import (
	"context"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UpsellPathRepository interface {
	Create(ctx context.Context, path *entity.UpsellPath) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UpsellPath, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UpsellPath, error)
	// FindActiveBySources matches active paths whose source content appears in
	// the presented (type, id) pairs.
	FindActiveBySources(ctx context.Context, sources []entity.ContentKey) ([]*entity.UpsellPath, error)
	Update(ctx context.Context, path *entity.UpsellPath) error
	Delete(ctx context.Context, id uuid.UUID) error
}
