package contract

import (
	"context"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.AttractionCampaign) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AttractionCampaign, error)
	// FindOneWithTemplates preloads criteria templates ordered by display_order.
	FindOneWithTemplates(ctx context.Context, specs ...specification.Specification) (*entity.AttractionCampaign, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AttractionCampaign, error)
	Update(ctx context.Context, campaign *entity.AttractionCampaign) error
	CountEnrollments(ctx context.Context, campaignId uuid.UUID) (int64, error)
}

type CriteriaTemplateRepository interface {
	Create(ctx context.Context, tpl *entity.CampaignCriteriaTemplate) error
	FindAllByCampaign(ctx context.Context, campaignId uuid.UUID) ([]*entity.CampaignCriteriaTemplate, error)
	Update(ctx context.Context, tpl *entity.CampaignCriteriaTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entity.CampaignEnrollment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CampaignEnrollment, error)
	// FindOneWithDetails preloads campaign, criteria and progress rows.
	FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.CampaignEnrollment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CampaignEnrollment, error)
	Update(ctx context.Context, enrollment *entity.CampaignEnrollment) error
}

type EnrollmentCriterionRepository interface {
	CreateBatch(ctx context.Context, criteria []*entity.EnrollmentCriterion) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EnrollmentCriterion, error)
	FindAllByEnrollment(ctx context.Context, enrollmentId uuid.UUID) ([]*entity.EnrollmentCriterion, error)
}

type CampaignProgressRepository interface {
	CreateBatch(ctx context.Context, rows []*entity.CampaignProgress) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CampaignProgress, error)
	FindAllByEnrollment(ctx context.Context, enrollmentId uuid.UUID) ([]*entity.CampaignProgress, error)
	Update(ctx context.Context, row *entity.CampaignProgress) error
}
