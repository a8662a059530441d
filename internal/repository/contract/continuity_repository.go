package contract

import (
	"context"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ContinuityPlanRepository interface {
	Create(ctx context.Context, plan *entity.ContinuityPlan) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContinuityPlan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContinuityPlan, error)
	Update(ctx context.Context, plan *entity.ContinuityPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClientSubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.ClientSubscription) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ClientSubscription, error)
	FindAllWithPlan(ctx context.Context, specs ...specification.Specification) ([]*entity.ClientSubscription, error)
	Update(ctx context.Context, sub *entity.ClientSubscription) error
}
