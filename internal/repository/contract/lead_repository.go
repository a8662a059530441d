package contract

import (
	"context"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/specification"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	// FindDuplicate looks up an existing lead by lowercased email or, when the
	// email is empty, by LinkedIn handle. Returns nil when neither matches.
	FindDuplicate(ctx context.Context, email, linkedInHandle string) (*entity.Lead, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
}
