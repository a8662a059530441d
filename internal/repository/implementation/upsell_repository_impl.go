package implementation

import (
	"context"
	"encoding/json"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/model"
	"offerstack-be/internal/repository/contract"
	"offerstack-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type upsellPathRepositoryImpl struct {
	db *gorm.DB
}

func NewUpsellPathRepository(db *gorm.DB) contract.UpsellPathRepository {
	return &upsellPathRepositoryImpl{db: db}
}

func (r *upsellPathRepositoryImpl) Create(ctx context.Context, path *entity.UpsellPath) error {
	steps, err := json.Marshal(path.PointOfSaleSteps)
	if err != nil {
		return err
	}
	m := &model.UpsellPath{
		Id:                       path.Id,
		SourceContentType:        string(path.SourceContentType),
		SourceContentId:          path.SourceContentId,
		SourceTitle:              path.SourceTitle,
		UpsellContentType:        string(path.UpsellContentType),
		UpsellContentId:          path.UpsellContentId,
		UpsellTitle:              path.UpsellTitle,
		NextProblem:              path.NextProblem,
		ValueFrameText:           path.ValueFrameText,
		PointOfSaleSteps:         datatypes.JSON(steps),
		CreditPreviousInvestment: path.CreditPreviousInvestment,
		IsActive:                 path.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	path.Id = m.Id
	path.CreatedAt = m.CreatedAt
	return nil
}

func (r *upsellPathRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UpsellPath, error) {
	var m model.UpsellPath
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&m)
}

func (r *upsellPathRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UpsellPath, error) {
	var ms []*model.UpsellPath
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	return r.mapAll(ms)
}

func (r *upsellPathRepositoryImpl) FindActiveBySources(ctx context.Context, sources []entity.ContentKey) ([]*entity.UpsellPath, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	pairs := r.db.Session(&gorm.Session{NewDB: true})
	for _, s := range sources {
		pairs = pairs.Or("source_content_type = ? AND source_content_id = ?", string(s.ContentType), s.ContentId)
	}
	query = query.Where(pairs)

	var ms []*model.UpsellPath
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	return r.mapAll(ms)
}

func (r *upsellPathRepositoryImpl) Update(ctx context.Context, path *entity.UpsellPath) error {
	steps, err := json.Marshal(path.PointOfSaleSteps)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.UpsellPath{}).
		Where("id = ?", path.Id).
		Updates(map[string]interface{}{
			"source_title":               path.SourceTitle,
			"upsell_content_type":        string(path.UpsellContentType),
			"upsell_content_id":          path.UpsellContentId,
			"upsell_title":               path.UpsellTitle,
			"next_problem":               path.NextProblem,
			"value_frame_text":           path.ValueFrameText,
			"point_of_sale_steps":        datatypes.JSON(steps),
			"credit_previous_investment": path.CreditPreviousInvestment,
			"is_active":                  path.IsActive,
		}).Error
}

func (r *upsellPathRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.UpsellPath{}, id).Error
}

func (r *upsellPathRepositoryImpl) mapAll(ms []*model.UpsellPath) ([]*entity.UpsellPath, error) {
	var paths []*entity.UpsellPath
	for _, m := range ms {
		p, err := r.mapToEntity(m)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (r *upsellPathRepositoryImpl) mapToEntity(m *model.UpsellPath) (*entity.UpsellPath, error) {
	var steps []entity.UpsellStep
	if len(m.PointOfSaleSteps) > 0 {
		if err := json.Unmarshal(m.PointOfSaleSteps, &steps); err != nil {
			return nil, err
		}
	}
	return &entity.UpsellPath{
		Id:                       m.Id,
		SourceContentType:        entity.ContentType(m.SourceContentType),
		SourceContentId:          m.SourceContentId,
		SourceTitle:              m.SourceTitle,
		UpsellContentType:        entity.ContentType(m.UpsellContentType),
		UpsellContentId:          m.UpsellContentId,
		UpsellTitle:              m.UpsellTitle,
		NextProblem:              m.NextProblem,
		ValueFrameText:           m.ValueFrameText,
		PointOfSaleSteps:         steps,
		CreditPreviousInvestment: m.CreditPreviousInvestment,
		IsActive:                 m.IsActive,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}, nil
}
