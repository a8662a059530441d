package contract

import (
	"context"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GuaranteeTemplateRepository interface {
	Create(ctx context.Context, template *entity.GuaranteeTemplate) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuaranteeTemplate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GuaranteeTemplate, error)
	Update(ctx context.Context, template *entity.GuaranteeTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GuaranteeInstanceRepository interface {
	Create(ctx context.Context, instance *entity.GuaranteeInstance) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuaranteeInstance, error)
	// FindOneWithDetails preloads the template and milestones.
	FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.GuaranteeInstance, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GuaranteeInstance, error)
	FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.GuaranteeInstance, error)
	Update(ctx context.Context, instance *entity.GuaranteeInstance) error
}

type GuaranteeMilestoneRepository interface {
	CreateBatch(ctx context.Context, milestones []*entity.GuaranteeMilestone) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuaranteeMilestone, error)
	FindAllByInstance(ctx context.Context, instanceId uuid.UUID) ([]*entity.GuaranteeMilestone, error)
	Update(ctx context.Context, milestone *entity.GuaranteeMilestone) error
}
